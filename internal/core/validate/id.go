// Package validate holds the local checks run before any call reaches the
// remote employee service.
package validate

import (
	"strings"

	"github.com/google/uuid"
	"github.com/vietddude/employees/internal/core/domain"
)

// canonicalUUIDLen is the length of the 8-4-4-4-12 form.
const canonicalUUIDLen = 36

// ID checks that id is a canonical UUID. It never touches the network.
func ID(id string) error {
	if strings.TrimSpace(id) == "" {
		return domain.NewInvalidIdentifier(id, "employee id cannot be null or empty")
	}

	// uuid.Parse also accepts braced, urn and unhyphenated forms.
	if len(id) != canonicalUUIDLen {
		return domain.NewInvalidIdentifier(id, "invalid employee id format, expected a valid UUID")
	}
	if _, err := uuid.Parse(id); err != nil {
		e := domain.NewInvalidIdentifier(id, "invalid employee id format, expected a valid UUID")
		e.Err = err
		return e
	}
	return nil
}
