package petfriends

import (
	"context"
	"net/http"
	"net/url"
	"strings"
)

const formContentType = "application/x-www-form-urlencoded"

// GetAPIKey exchanges credentials for an auth key. On success the body holds
// the token under AuthKeyField; on bad credentials the service answers 403.
func (c *Client) GetAPIKey(ctx context.Context, email, password string) (*Response, error) {
	return c.do(ctx, request{
		method: http.MethodGet,
		path:   c.endpoints.APIKey(),
		headers: map[string]string{
			"email":    email,
			"password": password,
		},
	})
}

// ListPets lists all pets (FilterAll) or the caller's pets (FilterMyPets).
func (c *Client) ListPets(ctx context.Context, key AuthKey, filter Filter) (*Response, error) {
	return c.do(ctx, request{
		method:  http.MethodGet,
		path:    c.endpoints.Pets(),
		query:   map[string]string{"filter": string(filter)},
		headers: authHeader(key),
	})
}

// AddPet creates a pet from multipart form data. A zero photo omits the file part.
// Field values are sent verbatim, empty strings included.
func (c *Client) AddPet(ctx context.Context, key AuthKey, name, animalType, age string, photo Photo) (*Response, error) {
	body, contentType, err := multipartForm(petFields(name, animalType, age), photo)
	if err != nil {
		return nil, err
	}
	return c.do(ctx, request{
		method:      http.MethodPost,
		path:        c.endpoints.Pets(),
		headers:     authHeader(key),
		body:        body,
		contentType: contentType,
	})
}

// AddPetSimple creates a pet without a photo.
func (c *Client) AddPetSimple(ctx context.Context, key AuthKey, name, animalType, age string) (*Response, error) {
	return c.do(ctx, request{
		method:      http.MethodPost,
		path:        c.endpoints.CreatePetSimple(),
		headers:     authHeader(key),
		body:        petForm(name, animalType, age),
		contentType: formContentType,
	})
}

// SetPhoto attaches an image to an existing pet.
func (c *Client) SetPhoto(ctx context.Context, key AuthKey, petID string, photo Photo) (*Response, error) {
	body, contentType, err := multipartForm(nil, photo)
	if err != nil {
		return nil, err
	}
	return c.do(ctx, request{
		method:      http.MethodPost,
		path:        c.endpoints.SetPhoto(petID),
		headers:     authHeader(key),
		body:        body,
		contentType: contentType,
	})
}

// UpdatePet replaces the name, type and age of a pet.
func (c *Client) UpdatePet(ctx context.Context, key AuthKey, petID, name, animalType, age string) (*Response, error) {
	return c.do(ctx, request{
		method:      http.MethodPut,
		path:        c.endpoints.Pet(petID),
		headers:     authHeader(key),
		body:        petForm(name, animalType, age),
		contentType: formContentType,
	})
}

// DeletePet removes a pet.
func (c *Client) DeletePet(ctx context.Context, key AuthKey, petID string) (*Response, error) {
	return c.do(ctx, request{
		method:  http.MethodDelete,
		path:    c.endpoints.Pet(petID),
		headers: authHeader(key),
	})
}

func authHeader(key AuthKey) map[string]string {
	return map[string]string{"auth_key": key.Key()}
}

func petFields(name, animalType, age string) [][2]string {
	return [][2]string{
		{"name", name},
		{"animal_type", animalType},
		{"age", age},
	}
}

func petForm(name, animalType, age string) *strings.Reader {
	v := url.Values{}
	for _, f := range petFields(name, animalType, age) {
		v.Set(f[0], f[1])
	}
	return strings.NewReader(v.Encode())
}
