// Package pattern implements the host's matcher tokens.
//
// The host turns the user's filter input into a list of tokens. Each token
// is a compiled regular expression plus an invert flag; an entry matches
// when every token matches its text (inverted tokens must not match):
//
//	tokens, err := pattern.Tokenize("fire -private", pattern.Options{})
//	ok := pattern.MatchAll(tokens, "Firefox")  // true
//
// Expressions use PCRE-style syntax (via regexp2) to follow the host's
// regex engine. Tokenize supports the host's matching methods: plain
// substring, regular expression, glob, fuzzy and word prefix.
//
// Tokens are owned by the host for the duration of one call. Modes
// receive them as a borrowed slice and must not keep it.
package pattern
