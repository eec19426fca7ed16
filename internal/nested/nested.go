// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package nested implements the parenthesized sub-record notation used by
// nested config fields:
//
//	(name="Creative World",difficulty=2,pvp=true)
//
// A decoded value is an ordered list of key=value tokens. Commas inside a
// single or double quoted substring do not separate tokens.
package nested

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/ManuGH/gameconf/internal/value"
)

// TypeString is the sub-field type whose values are re-quoted on encode.
const TypeString = "string"

// Hints maps a sub-key to its declared type.
type Hints map[string]string

// Decode splits a parenthesized token list. Text that is not wrapped in
// parentheses is split the same way on a best-effort basis.
func Decode(text string) []string {
	inner := strings.TrimSpace(text)
	if isWrapped(inner) {
		inner = inner[1 : len(inner)-1]
	}
	return split(inner)
}

// DecodeValue decodes a value produced by a format parser. Strings go through
// Decode; lists pass through, unless they are the comma-split pieces of a
// parenthesized value, in which case they are re-joined and decoded.
func DecodeValue(v any) []string {
	switch t := v.(type) {
	case nil:
		return []string{}
	case string:
		return Decode(t)
	case []string, []any:
		items, _ := Tokens(t)
		if len(items) > 0 && strings.HasPrefix(items[0], "(") && strings.HasSuffix(items[len(items)-1], ")") {
			return Decode(strings.Join(items, ","))
		}
		return items
	}
	return []string{}
}

// Tokens returns v as a token list when it is one.
func Tokens(v any) ([]string, bool) {
	switch t := v.(type) {
	case []string:
		out := make([]string, len(t))
		copy(out, t)
		return out, true
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			out = append(out, value.Format(item))
		}
		return out, true
	}
	return nil, false
}

// Encode joins tokens into the parenthesized notation. Values of sub-keys
// hinted as string are wrapped in double quotes unless empty or already quoted;
// everything else is written as-is.
func Encode(tokens []string, hints Hints) string {
	parts := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		key, val, ok := strings.Cut(tok, "=")
		if ok && hints[key] == TypeString && val != "" && !isDoubleQuoted(val) {
			tok = key + `="` + val + `"`
		}
		parts = append(parts, tok)
	}
	return "(" + strings.Join(parts, ",") + ")"
}

// Pair is one member of a native object (JSON object, TOML table, YAML map).
type Pair struct {
	Key   string
	Value any
}

// FromObject converts the members of a native object into tokens. A string
// is quoted when it contains whitespace, or when its sub-key is declared as
// string and it is non-empty.
func FromObject(pairs []Pair, hints Hints) []string {
	tokens := make([]string, 0, len(pairs))
	for _, p := range pairs {
		tokens = append(tokens, p.Key+"="+formatMember(p.Value, hints[p.Key]))
	}
	return tokens
}

func formatMember(v any, hint string) string {
	switch t := value.Normalize(v).(type) {
	case string:
		if strings.ContainsFunc(t, unicode.IsSpace) || (hint == TypeString && t != "") {
			return `"` + t + `"`
		}
		return t
	case float64:
		s := value.Format(t)
		if !strings.ContainsAny(s, ".eEnN") {
			s += ".0"
		}
		return s
	case nil:
		return ""
	case bool, int64:
		return value.Format(t)
	default:
		return fmt.Sprint(t)
	}
}

// ToObject converts tokens into native object members. Surrounding quotes are
// stripped; declared string sub-keys stay strings, other values become
// booleans, integers or floats when they look like one. Tokens without "="
// are dropped.
func ToObject(tokens []string, hints Hints) []Pair {
	pairs := make([]Pair, 0, len(tokens))
	for _, tok := range tokens {
		key, val, ok := strings.Cut(tok, "=")
		if !ok {
			continue
		}
		val = unquote(val)
		if hints[key] == TypeString {
			pairs = append(pairs, Pair{Key: key, Value: val})
			continue
		}
		pairs = append(pairs, Pair{Key: key, Value: infer(val)})
	}
	return pairs
}

func infer(s string) any {
	switch strings.ToLower(s) {
	case "true":
		return true
	case "false":
		return false
	}
	digits := strings.TrimPrefix(s, "-")
	if digits == "" {
		return s
	}
	dots := 0
	for _, r := range digits {
		switch {
		case r == '.':
			dots++
		case r < '0' || r > '9':
			return s
		}
	}
	switch {
	case dots == 0:
		if i, err := value.ToInt(s); err == nil {
			return i
		}
	case dots == 1 && digits != ".":
		if f, err := value.ToFloat(s); err == nil {
			return f
		}
	}
	return s
}

func isWrapped(s string) bool {
	return len(s) >= 2 && s[0] == '(' && s[len(s)-1] == ')'
}

func isDoubleQuoted(s string) bool {
	return len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"'
}

func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}
