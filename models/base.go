package models

import (
	"github.com/google/uuid"
)

// assignID gives a record a UUID v4 unless the caller already chose one.
func assignID(id *string) {
	if *id == "" {
		*id = uuid.NewString()
	}
}
