package photo

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// MaxSize is the largest accepted image.
const MaxSize = 5 << 20

// Photo is an image attached to a pet.
type Photo struct {
	contentType string
	data        []byte
}

// NewPhoto detects the content type of data and accepts only images.
func NewPhoto(data []byte) (*Photo, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("photo is empty")
	}
	if len(data) > MaxSize {
		return nil, fmt.Errorf("photo exceeds %d bytes", MaxSize)
	}

	mt := mimetype.Detect(data)
	if !strings.HasPrefix(mt.String(), "image/") {
		return nil, fmt.Errorf("unsupported photo type: %s", mt.String())
	}

	return &Photo{contentType: mt.String(), data: data}, nil
}

// Reconstruct rebuilds a Photo from persistence.
func Reconstruct(contentType string, data []byte) *Photo {
	return &Photo{contentType: contentType, data: data}
}

func (p *Photo) ContentType() string { return p.contentType }
func (p *Photo) Data() []byte        { return p.data }

// DataURI renders the photo the way the API exposes it in pet_photo.
func (p *Photo) DataURI() string {
	return "data:" + p.contentType + ";base64," + base64.StdEncoding.EncodeToString(p.data)
}
