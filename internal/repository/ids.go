package repository

import "github.com/google/uuid"

// isUUID reports whether id can be compared against a UUID key column.
// Lookups with anything else are answered as not found without a round trip.
func isUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
