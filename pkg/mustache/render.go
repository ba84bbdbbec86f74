package mustache

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// PartialExt is the file extension tried first when resolving a partial
// name under the renderer's template directory. The literal name is tried
// second, so templates may reference partials by logical name or by exact
// filename.
const PartialExt = ".mustache.html"

// htmlEscaper escapes the four characters that matter in HTML text and
// attribute contexts. Apostrophes are intentionally left alone so rendered
// markup matches common hand-written HTML source.
var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

// Renderer renders templates in the Mustache subset described in the
// package documentation. The zero value renders everything except partials;
// use New to configure a template directory for {{> name}} inclusion.
//
// A Renderer holds no mutable state and is safe for concurrent use; partial
// files are read fresh on every inclusion.
type Renderer struct {
	templateDir string
}

// New returns a Renderer that resolves partials relative to templateDir.
// An empty templateDir disables partials: encountering one fails with a
// *ConfigError.
func New(templateDir string) *Renderer {
	return &Renderer{templateDir: templateDir}
}

// Render parses template text and evaluates it against the root context.
// The context must be plain data: nil, bool, numbers, string, []any and
// map[string]any, nested freely. Parse failures surface as *StructureError;
// partial resolution failures as *ConfigError or *NotFoundError. No output
// is produced on error.
func (r *Renderer) Render(tmpl string, root any) (string, error) {
	nodes, err := Parse(tmpl)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	if err := r.renderNodes(&sb, nodes, contextStack{root}); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func (r *Renderer) renderNodes(sb *strings.Builder, nodes []Node, stack contextStack) error {
	for _, n := range nodes {
		switch node := n.(type) {
		case *TextNode:
			sb.WriteString(node.Text)
		case *VarNode:
			v, ok := stack.resolve(node.Name)
			if !ok || v == nil {
				continue
			}
			s := stringify(v)
			if node.Escaped {
				s = htmlEscaper.Replace(s)
			}
			sb.WriteString(s)
		case *PartialNode:
			if err := r.renderPartial(sb, node.Name, stack); err != nil {
				return err
			}
		case *SectionNode:
			if err := r.renderSection(sb, node, stack); err != nil {
				return err
			}
		}
	}
	return nil
}

// renderSection evaluates one section against the value its name resolves
// to. Sequences render the children once per element with that element
// pushed as the innermost scope; mappings push themselves once; any other
// truthy value renders the children in place, which is what makes plain
// boolean flags usable as sections.
func (r *Renderer) renderSection(sb *strings.Builder, sec *SectionNode, stack contextStack) error {
	v, _ := stack.resolve(sec.Name)

	if sec.Inverted {
		if !isTruthy(v) {
			return r.renderNodes(sb, sec.Children, stack)
		}
		return nil
	}

	switch val := v.(type) {
	case []any:
		for _, item := range val {
			if err := r.renderNodes(sb, sec.Children, append(stack, item)); err != nil {
				return err
			}
		}
	case map[string]any:
		return r.renderNodes(sb, sec.Children, append(stack, val))
	default:
		if isTruthy(v) {
			return r.renderNodes(sb, sec.Children, stack)
		}
	}
	return nil
}

// renderPartial reads the named partial from the template directory and
// renders it against the caller's context stack, so loop-local names stay
// visible inside the included template. Files are read lazily and are not
// cached; a partial that includes itself will recurse until a resource
// limit is hit, avoiding cyclic partial graphs is the caller's job.
func (r *Renderer) renderPartial(sb *strings.Builder, name string, stack contextStack) error {
	if r.templateDir == "" {
		return &ConfigError{Reason: "partial " + name + " requires a template directory"}
	}

	path := filepath.Join(r.templateDir, name+PartialExt)
	if _, err := os.Stat(path); err != nil {
		path = filepath.Join(r.templateDir, name)
		if _, err := os.Stat(path); err != nil {
			return &NotFoundError{Name: name}
		}
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read partial %s: %w", name, err)
	}
	nodes, err := Parse(string(raw))
	if err != nil {
		return err
	}
	return r.renderNodes(sb, nodes, stack)
}

func stringify(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}
