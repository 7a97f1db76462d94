package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// KeyOpts holds the options that change the outcome of a parse or
// conversion and therefore belong in its key.
type KeyOpts struct {
	Control   int  `json:"control"`   // unsafe-translation control bits
	Translate bool `json:"translate"` // aliases translated before parsing
}

// Keyer derives cache keys.
type Keyer interface {
	// SpecKey is the key of a parsed unit specification.
	SpecKey(unitstr string, opts KeyOpts) string
	// ConversionKey is the key of the conversion between two specifications.
	ConversionKey(have, want string, opts KeyOpts) string
}

// DefaultKeyer hashes the unit strings and options into fixed-length keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// SpecKey returns "spec:<sha256>".
func (DefaultKeyer) SpecKey(unitstr string, opts KeyOpts) string {
	return hashKey("spec", unitstr, opts)
}

// ConversionKey returns "conv:<sha256>".
func (DefaultKeyer) ConversionKey(have, want string, opts KeyOpts) string {
	return hashKey("conv", have, want, opts)
}

// ScopedKeyer prefixes every key produced by an inner Keyer, giving each
// scope its own namespace in a shared cache.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix. A nil inner keyer defaults
// to [DefaultKeyer].
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// SpecKey returns the prefixed spec key.
func (k *ScopedKeyer) SpecKey(unitstr string, opts KeyOpts) string {
	return k.prefix + k.inner.SpecKey(unitstr, opts)
}

// ConversionKey returns the prefixed conversion key.
func (k *ScopedKeyer) ConversionKey(have, want string, opts KeyOpts) string {
	return k.prefix + k.inner.ConversionKey(have, want, opts)
}

// hashKey generates a cache key by hashing the components.
// The key format is: prefix:hash(parts...)
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	sum := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(sum[:]))
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
