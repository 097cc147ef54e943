package cache

import (
	"crypto/sha256"
	"encoding/hex"
)

// Key derives the cache key for a (prompt, model) pair.
// The NUL separator cannot occur in either field, so distinct pairs
// never produce the same digest input.
func Key(prompt, model string) string {
	h := sha256.New()
	h.Write([]byte(prompt))
	h.Write([]byte{0})
	h.Write([]byte(model))
	return hex.EncodeToString(h.Sum(nil))
}
