// Package utils holds small helpers shared across services.
package utils

import "math/rand"

// RandomFloat returns a random float64 in [0.0, 1.0). It is the default roll
// source for lucky-proc checks.
func RandomFloat() float64 {
	return rand.Float64() //nolint:gosec // reward rolls, not security critical
}
