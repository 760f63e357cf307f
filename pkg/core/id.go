package core

import (
	"encoding/hex"

	"github.com/google/uuid"
)

// IDLength is the number of hex characters kept from a random UUID.
const IDLength = 8

// maxIDAttempts bounds regeneration when a candidate collides with an existing note.
const maxIDAttempts = 64

// IDGenerator produces candidate note IDs.
type IDGenerator func() string

// NewID returns the first IDLength hex characters of a version 4 UUID.
func NewID() string {
	u := uuid.New()
	return hex.EncodeToString(u[:])[:IDLength]
}
