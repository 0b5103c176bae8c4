package model

import "github.com/google/uuid"

// NewID returns a fresh opaque task identifier.
func NewID() string {
	return uuid.NewString()
}
