package idgen

import (
	"encoding/binary"

	"github.com/google/uuid"
)

// Generator mints process-unique identifiers for sessions, views and actions.
type Generator interface {
	NewID() string
}

type UUIDGenerator struct{}

func NewUUIDGenerator() *UUIDGenerator { return &UUIDGenerator{} }

func (g *UUIDGenerator) NewID() string {
	return uuid.NewString()
}

// BaseID folds an identifier into the 64-bit base the deterministic sampler
// hashes. Non-UUID identifiers fall back to a FNV-style fold so the result
// stays a pure function of the input.
func BaseID(id string) uint64 {
	parsed, err := uuid.Parse(id)
	if err != nil {
		var h uint64 = 14695981039346656037
		for i := 0; i < len(id); i++ {
			h ^= uint64(id[i])
			h *= 1099511628211
		}
		return h
	}
	return binary.BigEndian.Uint64(parsed[:8])
}
