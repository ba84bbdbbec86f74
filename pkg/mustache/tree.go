package mustache

import "strings"

// Node is a single element of a parsed template tree.
type Node interface {
	node()
}

// TextNode emits its text verbatim.
type TextNode struct {
	Text string
}

// VarNode emits the value resolved for a dotted name. The value is
// HTML-escaped unless the tag used the triple-mustache or &-form.
type VarNode struct {
	Name    string
	Escaped bool
}

// PartialNode includes a separately stored template by name at render time.
type PartialNode struct {
	Name string
}

// SectionNode is the content of a {{#name}} or {{^name}} block. Children
// preserve source order and are owned exclusively by their section.
type SectionNode struct {
	Name     string
	Inverted bool
	Children []Node
}

func (*TextNode) node()    {}
func (*VarNode) node()     {}
func (*PartialNode) node() {}
func (*SectionNode) node() {}

// Parse scans template text and builds its node tree. It fails with a
// *StructureError when section tags are mismatched or left unclosed.
func Parse(tmpl string) ([]Node, error) {
	return buildTree(scan(tmpl))
}

// buildTree nests the flat token stream into a tree using an explicit stack
// of open sections. Comments are dropped here; they contribute nothing to
// the tree.
func buildTree(tokens []token) ([]Node, error) {
	var root []Node
	var stack []*SectionNode

	add := func(n Node) {
		if len(stack) > 0 {
			top := stack[len(stack)-1]
			top.Children = append(top.Children, n)
		} else {
			root = append(root, n)
		}
	}

	for _, tok := range tokens {
		switch tok.kind {
		case tokenText:
			if tok.text != "" {
				add(&TextNode{Text: tok.text})
			}
		case tokenVar:
			add(&VarNode{Name: tok.name, Escaped: tok.escaped})
		case tokenPartial:
			add(&PartialNode{Name: tok.name})
		case tokenComment:
			// dropped
		case tokenSectionOpen, tokenInvertedOpen:
			sec := &SectionNode{Name: tok.name, Inverted: tok.kind == tokenInvertedOpen}
			add(sec)
			stack = append(stack, sec)
		case tokenSectionClose:
			if len(stack) == 0 || stack[len(stack)-1].Name != tok.name {
				return nil, &StructureError{Section: tok.name, Reason: "unmatched section close"}
			}
			stack = stack[:len(stack)-1]
		}
	}

	if len(stack) > 0 {
		names := make([]string, len(stack))
		for i, sec := range stack {
			names[i] = sec.Name
		}
		return nil, &StructureError{Section: strings.Join(names, ", "), Reason: "unclosed section"}
	}
	return root, nil
}
