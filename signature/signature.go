// Package signature finds wildcard byte patterns in process memory.
package signature

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrNotFound is returned when no window of the scanned range matches
	ErrNotFound = errors.New("signature not found")

	ErrEmptySignature = errors.New("empty signature")
)

// Matcher is one position of a signature: either an exact byte or a wildcard
type Matcher struct {
	value    byte
	wildcard bool
}

// Exact matches only b
func Exact(b byte) Matcher {
	return Matcher{value: b}
}

// Any matches every byte value
func Any() Matcher {
	return Matcher{wildcard: true}
}

func (m Matcher) IsWildcard() bool {
	return m.wildcard
}

// Value is the byte an exact matcher expects, 0 for wildcards
func (m Matcher) Value() byte {
	return m.value
}

func (m Matcher) Matches(b byte) bool {
	return m.wildcard || m.value == b
}

func (m Matcher) String() string {
	if m.wildcard {
		return "??"
	}
	return fmt.Sprintf("%02X", m.value)
}

// Signature is an immutable, fixed-length sequence of matchers
type Signature struct {
	matchers []Matcher
}

// New builds a signature from matchers
func New(matchers ...Matcher) Signature {
	m := make([]Matcher, len(matchers))
	copy(m, matchers)
	return Signature{matchers: m}
}

// Parse reads the usual AOB notation: hex bytes and "??" wildcards separated
// by spaces or commas. Adjacent bytes may be written together, so
// "3D ???????? 0F" is a 6-byte signature. A lone "?" is one wildcard.
func Parse(s string) (Signature, error) {
	tokens := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})

	var matchers []Matcher
	for _, tok := range tokens {
		if tok == "?" {
			matchers = append(matchers, Any())
			continue
		}

		if len(tok)%2 != 0 {
			return Signature{}, fmt.Errorf("odd length token %q", tok)
		}

		for i := 0; i < len(tok); i += 2 {
			pair := tok[i : i+2]
			if pair == "??" {
				matchers = append(matchers, Any())
				continue
			}

			v, err := strconv.ParseUint(pair, 16, 8)
			if err != nil {
				return Signature{}, fmt.Errorf("invalid hex byte %q in %q", pair, tok)
			}
			matchers = append(matchers, Exact(byte(v)))
		}
	}

	if len(matchers) == 0 {
		return Signature{}, ErrEmptySignature
	}

	return Signature{matchers: matchers}, nil
}

// MustParse is Parse for package-level signature literals
func MustParse(s string) Signature {
	sig, err := Parse(s)
	if err != nil {
		panic(fmt.Sprintf("signature %q: %v", s, err))
	}
	return sig
}

func (s Signature) Len() int {
	return len(s.matchers)
}

// At returns the matcher at position i
func (s Signature) At(i int) Matcher {
	return s.matchers[i]
}

func (s Signature) String() string {
	parts := make([]string, len(s.matchers))
	for i, m := range s.matchers {
		parts[i] = m.String()
	}
	return strings.Join(parts, " ")
}

// MatchAt reports whether the signature matches buf starting at off
func (s Signature) MatchAt(buf []byte, off int) bool {
	if len(s.matchers) == 0 || off < 0 || off+len(s.matchers) > len(buf) {
		return false
	}

	for j, m := range s.matchers {
		if !m.Matches(buf[off+j]) {
			return false
		}
	}
	return true
}

// Find returns the lowest offset in buf where the signature matches
func (s Signature) Find(buf []byte) (int, bool) {
	for i := 0; i+len(s.matchers) <= len(buf); i++ {
		if s.MatchAt(buf, i) {
			return i, true
		}
	}
	return 0, false
}
