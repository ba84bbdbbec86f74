package mustache

import "strings"

const (
	openDelim  = "{{"
	closeDelim = "}}"
)

// scan splits template text into an alternating stream of literal text and
// tag tokens, applying standalone-line trimming as it goes. Trimming is
// decided against line boundaries in the original text, so structural tags
// on adjacent lines each trim independently.
//
// scan never fails: an unterminated tag or an unrecognized sigil falls back
// to literal text.
func scan(tmpl string) []token {
	var tokens []token
	pos := 0
	for pos < len(tmpl) {
		rel := strings.Index(tmpl[pos:], openDelim)
		if rel < 0 {
			tokens = append(tokens, token{kind: tokenText, text: tmpl[pos:]})
			break
		}
		start := pos + rel

		tok, end, ok := parseTag(tmpl, start)
		if !ok {
			// No closing delimiter anywhere ahead; the rest is literal.
			tokens = append(tokens, token{kind: tokenText, text: tmpl[pos:]})
			break
		}

		if start > pos {
			tokens = append(tokens, token{kind: tokenText, text: tmpl[pos:start]})
		}

		if tok.kind.structural() {
			if trimEnd, alone := standaloneSpan(tmpl, start, end); alone {
				trimTail(tokens)
				tokens = append(tokens, tok)
				pos = trimEnd
				continue
			}
		}

		tokens = append(tokens, tok)
		pos = end
	}
	return tokens
}

// parseTag reads the tag beginning at start (the "{{" is already verified).
// It returns the token, the offset just past the closing delimiter, and
// whether a closing delimiter was found at all.
func parseTag(tmpl string, start int) (token, int, bool) {
	if strings.HasPrefix(tmpl[start:], "{{{") {
		if rel := strings.Index(tmpl[start+3:], "}}}"); rel >= 0 {
			name := strings.TrimSpace(tmpl[start+3 : start+3+rel])
			return token{kind: tokenVar, name: name, escaped: false}, start + 3 + rel + 3, true
		}
		// A "{{{" without a "}}}" may still close as a normal tag below.
	}

	rel := strings.Index(tmpl[start+2:], closeDelim)
	if rel < 0 {
		return token{}, 0, false
	}
	body := strings.TrimSpace(tmpl[start+2 : start+2+rel])
	end := start + 2 + rel + 2

	if body == "" {
		// "{{}}" names nothing and renders empty.
		return token{kind: tokenVar, escaped: true}, end, true
	}

	sigil := body[0]
	name := strings.TrimSpace(body[1:])
	switch sigil {
	case '#':
		return token{kind: tokenSectionOpen, name: name}, end, true
	case '^':
		return token{kind: tokenInvertedOpen, name: name}, end, true
	case '/':
		return token{kind: tokenSectionClose, name: name}, end, true
	case '!':
		return token{kind: tokenComment}, end, true
	case '>':
		return token{kind: tokenPartial, name: name}, end, true
	case '&':
		return token{kind: tokenVar, name: name, escaped: false}, end, true
	}
	if !tagNameByte(sigil) {
		// Unsupported tag type (e.g. a "{{=...=}}" delimiter change).
		// Emit the raw tag text instead of failing the whole render.
		return token{kind: tokenText, text: tmpl[start:end]}, end, true
	}
	return token{kind: tokenVar, name: body, escaped: true}, end, true
}

// tagNameByte reports whether c can begin a variable name.
func tagNameByte(c byte) bool {
	return c == '.' || c == '_' || c == '-' ||
		('0' <= c && c <= '9') ||
		('a' <= c && c <= 'z') ||
		('A' <= c && c <= 'Z') ||
		c >= 0x80
}

// standaloneSpan reports whether the tag spanning [start, end) sits on a
// source line of its own, with only whitespace around it. If so it returns
// the offset just past that line, including the trailing newline when one
// is present, so the caller can drop the entire line from the output.
func standaloneSpan(tmpl string, start, end int) (int, bool) {
	lineStart := strings.LastIndex(tmpl[:start], "\n") + 1
	lineEnd := len(tmpl)
	if rel := strings.Index(tmpl[end:], "\n"); rel >= 0 {
		lineEnd = end + rel
	}
	if strings.TrimSpace(tmpl[lineStart:start]) != "" || strings.TrimSpace(tmpl[end:lineEnd]) != "" {
		return 0, false
	}
	if lineEnd < len(tmpl) {
		lineEnd++
	}
	return lineEnd, true
}

// trimTail removes the standalone line's leading whitespace from the most
// recently emitted text token, cutting back to (and keeping) its last
// newline. The standalone check already guarantees that everything past the
// newline is whitespace.
func trimTail(tokens []token) {
	if len(tokens) == 0 {
		return
	}
	last := &tokens[len(tokens)-1]
	if last.kind != tokenText {
		return
	}
	if cut := strings.LastIndex(last.text, "\n"); cut >= 0 {
		last.text = last.text[:cut+1]
	} else {
		last.text = ""
	}
}
