package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
)

// keyDelimiter separates arguments before hashing. It must not occur inside
// individual arguments; addresses and coordinate strings never contain it.
const keyDelimiter = "|"

// keyLogPrefix is how many key characters appear in debug logs.
const keyLogPrefix = 16

// coordPrecision is the number of decimal places used when rendering
// coordinates for key derivation. Six places is roughly 0.1m, well below
// geocoding accuracy.
const coordPrecision = 6

// Key derives a deterministic cache key from an ordered argument list.
// Argument order matters: Key("a", "b") != Key("b", "a").
func Key(args ...string) string {
	sum := sha256.Sum256([]byte(strings.Join(args, keyDelimiter)))
	return hex.EncodeToString(sum[:])
}

// CoordinateArg renders a lon/lat pair in the canonical fixed-precision form
// used for key derivation. Callers must use this on both read and write paths
// so equal coordinates from different sources land on the same key.
func CoordinateArg(coords [2]float64) string {
	return strconv.FormatFloat(coords[0], 'f', coordPrecision, 64) +
		"," +
		strconv.FormatFloat(coords[1], 'f', coordPrecision, 64)
}

// shortKey returns the loggable prefix of a cache key.
func shortKey(key string) string {
	if len(key) <= keyLogPrefix {
		return key
	}
	return key[:keyLogPrefix]
}
