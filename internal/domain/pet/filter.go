package pet

import (
	"fmt"

	"github.com/Kilat-Pet-Delivery/petfriends/internal/domain"
)

// Filter selects the scope of a pet listing.
type Filter string

const (
	FilterAll    Filter = ""
	FilterMyPets Filter = "my_pets"
)

// ParseFilter accepts "" and "my_pets".
func ParseFilter(s string) (Filter, error) {
	switch Filter(s) {
	case FilterAll, FilterMyPets:
		return Filter(s), nil
	default:
		return "", domain.NewValidationError(fmt.Sprintf("Filter value is incorrect: %q", s))
	}
}
