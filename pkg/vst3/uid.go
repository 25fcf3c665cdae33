package vst3

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// UID is a 16-byte class or interface identifier.
type UID uuid.UUID

// NilUID is the all-zero identifier.
var NilUID UID

// UIDFromString parses 32 hex digits. Dashes and surrounding braces are
// accepted so GUID-style strings from other tools work as well.
func UIDFromString(s string) (UID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return NilUID, fmt.Errorf("empty UID")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return NilUID, fmt.Errorf("parse UID %q: %w", s, err)
	}
	return UID(u), nil
}

// MustUID is like UIDFromString but panics on malformed input. Intended for
// package-level class identifiers.
func MustUID(s string) UID {
	uid, err := UIDFromString(s)
	if err != nil {
		panic(err)
	}
	return uid
}

// String returns the identifier as 32 upper-case hex digits, the form used in
// preset files and module metadata.
func (u UID) String() string {
	return strings.ToUpper(hex.EncodeToString(u[:]))
}

// IsNil reports whether u is the all-zero identifier.
func (u UID) IsNil() bool {
	return u == NilUID
}
