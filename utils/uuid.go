package utils

import (
	"github.com/google/uuid"
)

// GenerateID returns a new unique identifier string
func GenerateID() string {
	return uuid.New().String()
}

// GeneratePrefixedID returns a unique identifier of the form "<prefix>-<uuid>"
func GeneratePrefixedID(prefix string) string {
	return prefix + "-" + GenerateID()
}
