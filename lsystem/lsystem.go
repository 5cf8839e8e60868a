package lsystem

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Alphabet symbols.
const (
	Segment     byte = '0'
	Trunk       byte = '1'
	Mark        byte = '+'
	Restore     byte = '-'
	BranchOpen  byte = '['
	BranchClose byte = ']'
)

const alphabet = "01+-[]"

var (
	ErrNegativeIterations = errors.New("lsystem: negative iteration count")
	ErrTooLarge           = errors.New("lsystem: expansion too large")
	ErrInvalidRule        = errors.New("lsystem: invalid rule")
)

// IsSymbol reports whether b belongs to the instruction alphabet.
func IsSymbol(b byte) bool {
	return strings.IndexByte(alphabet, b) >= 0
}

// Rules maps a symbol to its replacement. Symbols without an entry are copied
// through unchanged.
type Rules map[byte]string

// DefaultRules returns the ternary tree grammar.
func DefaultRules() Rules {
	return Rules{
		Trunk:   "11",
		Segment: "1+0-[0]0",
	}
}

// Validate requires every rule key to be an alphabet symbol and every
// replacement to be well-bracketed.
func (r Rules) Validate() error {
	for k, v := range r {
		if !IsSymbol(k) {
			return fmt.Errorf("%w: key %q is not a symbol", ErrInvalidRule, k)
		}
		if err := CheckBalanced(v); err != nil {
			return fmt.Errorf("%w: %q -> %q: %v", ErrInvalidRule, k, v, err)
		}
	}
	return nil
}

// Expand rewrites seed with the default rules.
func Expand(seed string, iterations int) (string, error) {
	return DefaultRules().Expand(seed, iterations)
}

// Expand applies the rules to seed iterations times.
func (r Rules) Expand(seed string, iterations int) (string, error) {
	if iterations < 0 {
		return "", ErrNegativeIterations
	}
	if iterations == 0 {
		return seed, nil
	}
	n, err := r.Len(seed, iterations)
	if err != nil {
		return "", err
	}
	if n == math.MaxInt {
		return "", ErrTooLarge
	}

	cur := seed
	for i := 0; i < iterations; i++ {
		var b strings.Builder
		b.Grow(passLen(r, cur))
		changed := false
		for j := 0; j < len(cur); j++ {
			c := cur[j]
			if rep, ok := r[c]; ok {
				b.WriteString(rep)
				changed = true
				continue
			}
			b.WriteByte(c)
		}
		cur = b.String()
		if !changed {
			// No symbol has a rule; further passes are the identity.
			break
		}
	}
	return cur, nil
}

func passLen(r Rules, s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		if rep, ok := r[s[i]]; ok {
			n += len(rep)
		} else {
			n++
		}
	}
	return n
}

// Len predicts len(r.Expand(seed, iterations)) without building the string.
// The result saturates at math.MaxInt.
func (r Rules) Len(seed string, iterations int) (int, error) {
	if iterations < 0 {
		return 0, ErrNegativeIterations
	}

	// lens[c] is the length a single c grows to after the passes so far.
	var lens, next [256]int
	for i := range lens {
		lens[i] = 1
	}
	for k := 0; k < iterations; k++ {
		for c := range next {
			rep, ok := r[byte(c)]
			if !ok {
				next[c] = lens[c]
				continue
			}
			n := 0
			for j := 0; j < len(rep); j++ {
				n = satAdd(n, lens[rep[j]])
			}
			next[c] = n
		}
		if next == lens {
			break
		}
		lens = next
	}

	total := 0
	for i := 0; i < len(seed); i++ {
		total = satAdd(total, lens[seed[i]])
	}
	return total, nil
}

func satAdd(a, b int) int {
	if a > math.MaxInt-b {
		return math.MaxInt
	}
	return a + b
}
