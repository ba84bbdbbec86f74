package mustache

import "fmt"

// StructureError reports a template whose sections do not nest correctly:
// a close tag with no matching open section, or a section still open at the
// end of the template.
type StructureError struct {
	Section string
	Reason  string
}

func (e *StructureError) Error() string {
	return fmt.Sprintf("mustache: %s: %s", e.Reason, e.Section)
}

// ConfigError reports a template feature that requires renderer
// configuration which was not provided, such as a partial tag with no
// template directory to resolve it against.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "mustache: " + e.Reason
}

// NotFoundError reports a partial name that resolves to no file under the
// configured template directory, neither with the partial extension nor as
// a literal filename.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("mustache: partial not found: %s", e.Name)
}
