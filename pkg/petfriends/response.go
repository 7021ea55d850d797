package petfriends

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// AuthKeyField is the key under which the API returns the auth token.
const AuthKeyField = "key"

// AuthKey is the token mapping returned by GetAPIKey and passed to every other call.
type AuthKey map[string]string

// Key returns the bearer string, or "" when absent.
func (k AuthKey) Key() string { return k[AuthKeyField] }

// Filter selects the listing scope.
type Filter string

const (
	FilterAll    Filter = ""
	FilterMyPets Filter = "my_pets"
)

// Age holds a pet age which the API may send as a JSON string or number.
type Age string

// UnmarshalJSON accepts both "3" and 3.
func (a *Age) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*a = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*a = Age(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("age: %w", err)
	}
	*a = Age(n.String())
	return nil
}

// Pet is a pet record as returned by the API.
type Pet struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	AnimalType string `json:"animal_type"`
	Age        Age    `json:"age"`
	PetPhoto   string `json:"pet_photo"`
	UserID     string `json:"user_id"`
	CreatedAt  string `json:"created_at"`
}

// Response is the normalized (status, body) pair of one API call.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
	// JSON is set when Body is a JSON object; otherwise the body is text.
	JSON map[string]any
}

func newResponse(status int, header http.Header, body []byte) *Response {
	r := &Response{StatusCode: status, Header: header, Body: body}
	var m map[string]any
	if err := json.Unmarshal(body, &m); err == nil {
		r.JSON = m
	}
	return r
}

// IsJSON reports whether the body parsed as a JSON object.
func (r *Response) IsJSON() bool { return r.JSON != nil }

// Text returns the raw body.
func (r *Response) Text() string { return string(r.Body) }

// Has reports whether the JSON body contains key.
func (r *Response) Has(key string) bool {
	if r.JSON == nil {
		return false
	}
	_, ok := r.JSON[key]
	return ok
}

// Contains reports whether the raw body contains substr.
func (r *Response) Contains(substr string) bool {
	return strings.Contains(string(r.Body), substr)
}

// String returns the JSON value under key rendered as text.
func (r *Response) String(key string) string {
	if r.JSON == nil {
		return ""
	}
	switch v := r.JSON[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

// Decode unmarshals the body into v.
func (r *Response) Decode(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("decoding response (status %d): %w", r.StatusCode, err)
	}
	return nil
}

// AuthKey extracts the token mapping from an authenticate response.
func (r *Response) AuthKey() (AuthKey, bool) {
	key := r.String(AuthKeyField)
	if !r.Has(AuthKeyField) || key == "" {
		return nil, false
	}
	return AuthKey{AuthKeyField: key}, true
}

// Pet decodes a single pet record.
func (r *Response) Pet() (Pet, error) {
	if r.JSON == nil {
		return Pet{}, errors.New("response body is not a JSON object")
	}
	var p Pet
	if err := r.Decode(&p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

// Pets decodes the "pets" collection of a listing response.
func (r *Response) Pets() ([]Pet, error) {
	if r.JSON == nil {
		return nil, errors.New("response body is not a JSON object")
	}
	var out struct {
		Pets []Pet `json:"pets"`
	}
	if err := r.Decode(&out); err != nil {
		return nil, err
	}
	return out.Pets, nil
}
