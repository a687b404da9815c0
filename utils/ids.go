package utils

import "github.com/google/uuid"

// NewInstanceID returns a random identifier for a running application
func NewInstanceID() string {
	return uuid.NewString()
}

func IsValidUUID(u string) bool {
	_, err := uuid.Parse(u)
	return err == nil
}
