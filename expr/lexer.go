package expr

import (
	"fmt"
	"strconv"
	"strings"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNumber
	tokIdent
	tokPlus
	tokMinus
	tokStar
	tokSlash
	tokLParen
	tokRParen
)

type token struct {
	kind tokenKind
	text string
	num  float32
}

// lex splits an equation's right-hand side into tokens. It rejects
// characters it does not recognise with a single human-readable
// diagnostic string.
func lex(src string) ([]token, error) {
	var toks []token
	i := 0
	n := len(src)
	for i < n {
		ch := src[i]
		switch {
		case ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n':
			i++
		case ch == '+':
			toks = append(toks, token{kind: tokPlus})
			i++
		case ch == '-':
			toks = append(toks, token{kind: tokMinus})
			i++
		case ch == '*':
			toks = append(toks, token{kind: tokStar})
			i++
		case ch == '/':
			toks = append(toks, token{kind: tokSlash})
			i++
		case ch == '(':
			toks = append(toks, token{kind: tokLParen})
			i++
		case ch == ')':
			toks = append(toks, token{kind: tokRParen})
			i++
		case ch >= '0' && ch <= '9' || ch == '.':
			j := i
			for j < n && (src[j] >= '0' && src[j] <= '9' || src[j] == '.' || src[j] == 'e' || src[j] == 'E' ||
				((src[j] == '+' || src[j] == '-') && j > i && (src[j-1] == 'e' || src[j-1] == 'E'))) {
				j++
			}
			v, err := strconv.ParseFloat(src[i:j], 32)
			if err != nil {
				return nil, fmt.Errorf("malformed number literal %q", src[i:j])
			}
			toks = append(toks, token{kind: tokNumber, num: float32(v)})
			i = j
		case isIdentStart(ch):
			j := i
			for j < n && isIdentPart(src[j]) {
				j++
			}
			toks = append(toks, token{kind: tokIdent, text: src[i:j]})
			i = j
		default:
			return nil, fmt.Errorf("unexpected character %q in equation", ch)
		}
	}
	toks = append(toks, token{kind: tokEOF})
	return toks, nil
}

func isIdentStart(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isIdentPart(ch byte) bool {
	return isIdentStart(ch) || (ch >= '0' && ch <= '9')
}

// stripAssignment drops a leading "Z =" / "Z=" prefix if present, so
// Compile accepts either the bare right-hand side or the full
// "Z = f(Z, C)" form used in configuration files.
func stripAssignment(text string) string {
	trimmed := strings.TrimSpace(text)
	if strings.HasPrefix(trimmed, "Z") {
		rest := strings.TrimSpace(trimmed[1:])
		if strings.HasPrefix(rest, "=") {
			return strings.TrimSpace(rest[1:])
		}
	}
	return trimmed
}
