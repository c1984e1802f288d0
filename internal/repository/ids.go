package repository

import (
	"encoding/binary"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const idLength = 9

// 36^9, the number of distinct 9 character base-36 ids.
const idSpace = 101559956668416

// IDGenerator returns a fresh opaque record id.
type IDGenerator func() string

// NewID returns 9 lowercase base-36 characters drawn from a random UUID.
func NewID() string {
	u := uuid.New()
	n := binary.BigEndian.Uint64(u[:8]) % idSpace
	id := strconv.FormatUint(n, 36)
	if len(id) < idLength {
		id = strings.Repeat("0", idLength-len(id)) + id
	}
	return id
}

// uniqueID draws ids until one is not already taken.
func uniqueID(gen IDGenerator, taken func(string) bool) string {
	for {
		id := gen()
		if id != "" && !taken(id) {
			return id
		}
	}
}

// RegistrationNumber renders "<year>-<NNN>" with NNN in [100, 998].
func RegistrationNumber(now time.Time, intN func(int) int) string {
	return fmt.Sprintf("%d-%d", now.Year(), 100+intN(899))
}

func defaultIntN(n int) int {
	return rand.IntN(n)
}
