// Package objectid validates and generates the 24-character hexadecimal
// document identifiers used by both collections.
package objectid

import (
	"encoding/hex"

	"github.com/google/uuid"
)

// Length is the number of characters in a well-formed identifier.
const Length = 24

// IsValid reports whether id is a well-formed 24-character hex identifier.
// It says nothing about whether a document with this id exists.
func IsValid(id string) bool {
	if len(id) != Length {
		return false
	}
	for i := 0; i < len(id); i++ {
		c := id[i]
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}

// New returns a fresh well-formed identifier. The 12 bytes of entropy come
// from a random UUID, hex-encoded to the identifier width.
func New() string {
	u := uuid.New()
	return hex.EncodeToString(u[:Length/2])
}
