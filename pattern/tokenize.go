package pattern

import (
	"strings"
	"unicode"

	"github.com/dlclark/regexp2"

	"github.com/wippyai/rofi-mode/errors"
)

// Method selects how a token's text becomes an expression.
type Method int

const (
	MethodNormal Method = iota
	MethodRegex
	MethodGlob
	MethodFuzzy
	MethodPrefix
)

var methodNames = map[Method]string{
	MethodNormal: "normal",
	MethodRegex:  "regex",
	MethodGlob:   "glob",
	MethodFuzzy:  "fuzzy",
	MethodPrefix: "prefix",
}

func (m Method) String() string {
	if s, ok := methodNames[m]; ok {
		return s
	}
	return "unknown"
}

// ParseMethod parses a method name.
func ParseMethod(s string) (Method, error) {
	for m, name := range methodNames {
		if strings.EqualFold(s, name) {
			return m, nil
		}
	}
	return MethodNormal, errors.InvalidInput(errors.PhaseParse, "unknown matching method "+s)
}

// CaseMode selects case sensitivity.
type CaseMode int

const (
	// CaseInsensitive ignores case.
	CaseInsensitive CaseMode = iota
	// CaseSmart ignores case unless the token has an upper-case letter.
	CaseSmart
	// CaseSensitive matches case exactly.
	CaseSensitive
)

// Options controls Tokenize.
type Options struct {
	Method Method
	Case   CaseMode
	// Whole treats the input as a single token instead of splitting on
	// white space.
	Whole bool
}

// Tokenize turns filter input into matcher tokens. A token written as
// "-word" matches entries that do not contain word. Invalid regular
// expressions fall back to literal matching.
func Tokenize(input string, opts Options) ([]*Pattern, error) {
	var words []string
	if opts.Whole {
		if input != "" {
			words = []string{input}
		}
	} else {
		words = strings.Fields(input)
	}

	tokens := make([]*Pattern, 0, len(words))
	for _, w := range words {
		invert := false
		if len(w) > 1 && w[0] == '-' {
			invert = true
			w = w[1:]
		}

		flags := regexp2.None
		switch opts.Case {
		case CaseInsensitive:
			flags = regexp2.IgnoreCase
		case CaseSmart:
			if !hasUpper(w) {
				flags = regexp2.IgnoreCase
			}
		}

		p, err := Compile(expression(w, opts.Method), invert, flags)
		if err != nil && opts.Method == MethodRegex {
			p, err = Compile(regexp2.Escape(w), invert, flags)
		}
		if err != nil {
			return nil, err
		}
		p.Token = w
		tokens = append(tokens, p)
	}
	return tokens, nil
}

func expression(word string, m Method) string {
	switch m {
	case MethodRegex:
		return word
	case MethodGlob:
		return globToRegex(word)
	case MethodFuzzy:
		return fuzzyToRegex(word)
	case MethodPrefix:
		return `(?:^|\b)` + regexp2.Escape(word)
	default:
		return regexp2.Escape(word)
	}
}

func globToRegex(glob string) string {
	var b strings.Builder
	for _, r := range glob {
		switch r {
		case '*':
			b.WriteString(".*")
		case '?':
			b.WriteByte('.')
		default:
			b.WriteString(regexp2.Escape(string(r)))
		}
	}
	return b.String()
}

func fuzzyToRegex(word string) string {
	var b strings.Builder
	first := true
	for _, r := range word {
		if !first {
			b.WriteString(".*?")
		}
		first = false
		b.WriteString(regexp2.Escape(string(r)))
	}
	return b.String()
}

func hasUpper(s string) bool {
	for _, r := range s {
		if unicode.IsUpper(r) {
			return true
		}
	}
	return false
}
