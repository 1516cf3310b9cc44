package utils

import (
	"strings"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

var newUUIDv7 = uuid.NewV7

// GenerateUUIDv7 generates a new UUID v7
func GenerateUUIDv7() uuid.UUID {
	id, err := newUUIDv7()
	if err != nil {
		return uuid.New()
	}
	return id
}

// ParseUUIDs parses raw identifiers, dropping blanks and values that are
// not UUIDs, and returns the distinct ids in first-seen order.
func ParseUUIDs(raw []string) []uuid.UUID {
	ids := lo.FilterMap(raw, func(s string, _ int) (uuid.UUID, bool) {
		id, err := uuid.Parse(strings.TrimSpace(s))
		return id, err == nil
	})
	return lo.Uniq(ids)
}
