package plan

import (
	"fmt"
	"strings"
)

//go:generate go tool stringer -type=Mode -trimprefix=Mode -output=mode_string.go

// Mode selects how a top-level storage mapping treats the source identity.
type Mode int

const (
	ModeInherit    Mode = iota // take the mode from the next configuration layer
	ModeUpsert                 // update when the identity is set, insert otherwise
	ModeInsert                 // always insert
	ModeUpdate                 // always update, the identity must be set
	ModeMemoryOnly             // mapping is not allowed against storage
)

var modeNames = map[Mode]string{
	ModeUpsert:     "upsert",
	ModeInsert:     "insert",
	ModeUpdate:     "update",
	ModeMemoryOnly: "memory_only",
}

// ConfigName returns the spelling used in configuration files.
func (m Mode) ConfigName() string {
	return modeNames[m]
}

// ParseMode parses a configuration file spelling. The empty string is
// ModeInherit.
func ParseMode(s string) (Mode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ModeInherit, nil
	}

	for m, name := range modeNames {
		if name == s || strings.ReplaceAll(name, "_", "") == s {
			return m, nil
		}
	}

	return ModeInherit, fmt.Errorf("%w: unknown mode %q", ErrInvalidConfiguration, s)
}

// Or returns m unless it is ModeInherit.
func (m Mode) Or(fallback Mode) Mode {
	if m == ModeInherit {
		return fallback
	}

	return m
}
