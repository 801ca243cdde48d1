package abi

import (
	"fmt"

	"github.com/wippyai/rofi-mode/errors"
)

// NameKeyLen is the width of the configuration key field in the table.
const NameKeyLen = 128

// NameKey is the NUL-padded configuration key buffer.
type NameKey [NameKeyLen]byte

// MakeNameKey copies key into a zero-padded buffer. The key must leave room
// for at least one terminating NUL and must not contain NUL itself.
func MakeNameKey(key string) (NameKey, error) {
	var k NameKey
	if len(key) >= NameKeyLen {
		return k, errors.InvalidInput(errors.PhaseInit,
			fmt.Sprintf("name key %q is %d bytes, limit is %d", key, len(key), NameKeyLen-1))
	}
	for i := 0; i < len(key); i++ {
		if key[i] == 0 {
			return k, errors.InvalidInput(errors.PhaseInit,
				fmt.Sprintf("name key %q contains NUL at %d", key, i))
		}
	}
	copy(k[:], key)
	return k, nil
}

// MustNameKey is like MakeNameKey but panics on an invalid key.
// Intended for package-level table declarations built from literals.
func MustNameKey(key string) NameKey {
	k, err := MakeNameKey(key)
	if err != nil {
		panic(err)
	}
	return k
}

// String returns the key up to the first NUL.
func (k NameKey) String() string {
	for i, b := range k {
		if b == 0 {
			return string(k[:i])
		}
	}
	return string(k[:])
}
