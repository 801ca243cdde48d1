package pattern

import (
	"time"

	"github.com/dlclark/regexp2"

	"github.com/wippyai/rofi-mode/errors"
)

// MatchTimeout bounds a single regex evaluation.
var MatchTimeout = 100 * time.Millisecond

// Pattern is one matcher token.
type Pattern struct {
	Regex  *regexp2.Regexp
	Token  string
	Invert bool
}

// Compile builds a token from a regular expression.
func Compile(expr string, invert bool, opts regexp2.RegexOptions) (*Pattern, error) {
	re, err := regexp2.Compile(expr, opts)
	if err != nil {
		return nil, errors.InvalidPattern(expr, err)
	}
	re.MatchTimeout = MatchTimeout
	return &Pattern{Regex: re, Token: expr, Invert: invert}, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(expr string, invert bool, opts regexp2.RegexOptions) *Pattern {
	p, err := Compile(expr, invert, opts)
	if err != nil {
		panic(err)
	}
	return p
}

// Match reports whether text satisfies the token, honoring Invert.
// A regex that fails to evaluate (timeout) counts as not matching.
func (p *Pattern) Match(text string) bool {
	ok, err := p.Regex.MatchString(text)
	if err != nil {
		ok = false
	}
	return ok != p.Invert
}

func (p *Pattern) String() string {
	if p.Invert {
		return "-" + p.Token
	}
	return p.Token
}

// MatchOne reports whether text satisfies a single token.
func MatchOne(p *Pattern, text string) bool {
	return MatchAll([]*Pattern{p}, text)
}

// MatchAll reports whether text satisfies every token, stopping at the
// first nil entry. An empty list matches everything.
func MatchAll(patterns []*Pattern, text string) bool {
	for _, p := range patterns {
		if p == nil {
			break
		}
		if !p.Match(text) {
			return false
		}
	}
	return true
}

// MatchAny reports whether text satisfies at least one token. An empty
// list matches everything, as with MatchAll.
func MatchAny(patterns []*Pattern, text string) bool {
	seen := false
	for _, p := range patterns {
		if p == nil {
			break
		}
		seen = true
		if p.Match(text) {
			return true
		}
	}
	return !seen
}
