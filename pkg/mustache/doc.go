/*
Package mustache implements a small, logic-less template engine covering a
practical subset of the Mustache language: escaped and unescaped variables,
dotted name paths, sections and inverted sections, comments, and file-based
partials, with standalone-line trimming for structural tags.

Rendering is a pure, synchronous function of the template text, the root
context and the configured partial directory. Context values are plain Go
data as produced by encoding/json or yaml.v3: nil, bool, numbers, string,
[]any and map[string]any.

For the supported template syntax, see the Renderer documentation.
*/
package mustache
