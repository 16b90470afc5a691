// Package ordernum generates human-readable order numbers.
package ordernum

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// Generate returns an order number of the form ORD-<millis>-<12 hex chars>.
// The suffix comes from crypto/rand, so collisions under concurrent
// checkouts are practically impossible; the database still carries a unique
// constraint as the final arbiter.
func Generate() (string, error) {
	suffix := make([]byte, 6)
	if _, err := rand.Read(suffix); err != nil {
		return "", fmt.Errorf("generate order number: %w", err)
	}
	return fmt.Sprintf("ORD-%d-%s", time.Now().UnixMilli(), hex.EncodeToString(suffix)), nil
}
