package petfriends

import "net/url"

// Endpoints contains the API path patterns.
type Endpoints struct{}

// NewEndpoints creates a new Endpoints instance.
func NewEndpoints() *Endpoints {
	return &Endpoints{}
}

func (e *Endpoints) APIKey() string { return "/api/key" }

func (e *Endpoints) Pets() string { return "/api/pets" }

func (e *Endpoints) CreatePetSimple() string { return "/api/create_pet_simple" }

// Pet is used for update and delete. An empty id yields the collection path
// with a trailing slash, which the service does not route.
func (e *Endpoints) Pet(petID string) string {
	return "/api/pets/" + url.PathEscape(petID)
}

func (e *Endpoints) SetPhoto(petID string) string {
	return "/api/pets/set_photo/" + url.PathEscape(petID)
}
