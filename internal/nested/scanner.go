// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package nested

import "strings"

// scanner walks the inner content of a token list one rune at a time.
// quote holds the active quote character, 0 outside quotes; quotes of the
// other kind inside a quoted run are ordinary characters.
type scanner struct {
	src   []rune
	pos   int
	quote rune
}

func (s *scanner) peek() (rune, bool) {
	if s.pos >= len(s.src) {
		return 0, false
	}
	return s.src[s.pos], true
}

// next returns the next raw token, trimmed, and false once input is exhausted.
func (s *scanner) next() (string, bool) {
	if s.pos >= len(s.src) {
		return "", false
	}
	var b strings.Builder
	for {
		r, ok := s.peek()
		if !ok {
			break
		}
		s.pos++
		switch {
		case s.quote == 0 && (r == '"' || r == '\''):
			s.quote = r
		case s.quote != 0 && r == s.quote:
			s.quote = 0
		case s.quote == 0 && r == ',':
			return strings.TrimSpace(b.String()), true
		}
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String()), true
}

func split(inner string) []string {
	tokens := []string{}
	sc := &scanner{src: []rune(inner)}
	for {
		tok, ok := sc.next()
		if !ok {
			break
		}
		if tok != "" {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}
