package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TopicPetEvents carries pet lifecycle events.
const TopicPetEvents = "petfriends.pets"

// Event types.
const (
	PetCreated  = "pet.created"
	PetUpdated  = "pet.updated"
	PetPhotoSet = "pet.photo_set"
	PetDeleted  = "pet.deleted"
)

// PetEvent is a CloudEvents-style envelope.
type PetEvent struct {
	ID     string          `json:"id"`
	Source string          `json:"source"`
	Type   string          `json:"type"`
	Time   time.Time       `json:"time"`
	Data   json.RawMessage `json:"data"`
}

// PetEventData is the payload of every pet event.
type PetEventData struct {
	PetID      uuid.UUID `json:"pet_id"`
	OwnerID    uuid.UUID `json:"owner_id"`
	Name       string    `json:"name"`
	AnimalType string    `json:"animal_type"`
	Age        string    `json:"age"`
	HasPhoto   bool      `json:"has_photo"`
}

// NewPetEvent wraps data in an envelope.
func NewPetEvent(source, eventType string, data PetEventData) (PetEvent, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return PetEvent{}, fmt.Errorf("marshaling %s data: %w", eventType, err)
	}
	return PetEvent{
		ID:     uuid.New().String(),
		Source: source,
		Type:   eventType,
		Time:   time.Now().UTC(),
		Data:   raw,
	}, nil
}

// ParsePetEvent decodes an envelope from a message value.
func ParsePetEvent(b []byte) (PetEvent, error) {
	var evt PetEvent
	if err := json.Unmarshal(b, &evt); err != nil {
		return PetEvent{}, fmt.Errorf("parsing pet event: %w", err)
	}
	return evt, nil
}

// ParseData decodes the payload.
func (e PetEvent) ParseData() (PetEventData, error) {
	var d PetEventData
	if err := json.Unmarshal(e.Data, &d); err != nil {
		return PetEventData{}, fmt.Errorf("parsing %s data: %w", e.Type, err)
	}
	return d, nil
}
