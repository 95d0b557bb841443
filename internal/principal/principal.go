// Package principal defines the opaque caller identity used across the tracker.
package principal

import (
	"errors"
	"strings"
)

// Principal identifies a caller or payee. It is opaque and comparable; the
// tracker never interprets its contents beyond equality.
type Principal string

// Burn is the reserved sink identity. Value sent to it is unrecoverable, so
// it can never be designated as the oracle contract.
const Burn Principal = "burn"

const maxLen = 128

var (
	ErrEmptyPrincipal   = errors.New("empty_principal")
	ErrPrincipalTooLong = errors.New("principal_too_long")
)

// Parse normalizes and validates a raw principal string.
func Parse(raw string) (Principal, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return "", ErrEmptyPrincipal
	}
	if len(value) > maxLen {
		return "", ErrPrincipalTooLong
	}
	return Principal(value), nil
}

func (p Principal) IsZero() bool { return p == "" }

func (p Principal) IsBurn() bool { return p == Burn }

func (p Principal) String() string { return string(p) }
