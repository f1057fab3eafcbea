package repos

import (
	"github.com/google/uuid"
	"github.com/jaevor/go-nanoid"
)

// newShortIDGenerator returns the generator used for ids nested inside a
// record (offers, order bumps, upsells).
func newShortIDGenerator() func() string {
	gen, err := nanoid.Standard(15)
	if err != nil {
		return uuid.NewString
	}
	return gen
}
