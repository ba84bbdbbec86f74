package mustache

// tokenKind discriminates the flat token stream produced by the scanner,
// before section nesting is resolved.
type tokenKind int

const (
	tokenText tokenKind = iota
	tokenVar
	tokenSectionOpen
	tokenInvertedOpen
	tokenSectionClose
	tokenComment
	tokenPartial
)

// token is one scanned unit: a run of literal text or a single {{...}} tag.
// Structural tags carry their own kinds so the tree builder never has to
// inspect name prefixes.
type token struct {
	kind    tokenKind
	text    string // literal output, set only for tokenText
	name    string // tag name with the sigil stripped and whitespace trimmed
	escaped bool   // meaningful only for tokenVar
}

// structural reports whether a token kind takes part in standalone-line
// trimming. Variable tags never trim: their output replaces the tag in place.
func (k tokenKind) structural() bool {
	switch k {
	case tokenSectionOpen, tokenInvertedOpen, tokenSectionClose, tokenComment, tokenPartial:
		return true
	}
	return false
}
