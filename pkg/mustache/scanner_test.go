package mustache

import (
	"reflect"
	"testing"
)

func TestScanPlainText(t *testing.T) {
	tokens := scan("hello, world\n")
	expected := []token{{kind: tokenText, text: "hello, world\n"}}
	if !reflect.DeepEqual(tokens, expected) {
		t.Errorf("expected %+v, got %+v", expected, tokens)
	}
}

func TestScanTagForms(t *testing.T) {
	tests := []struct {
		name     string
		tmpl     string
		expected []token
	}{
		{
			name:     "escaped variable",
			tmpl:     "{{name}}",
			expected: []token{{kind: tokenVar, name: "name", escaped: true}},
		},
		{
			name:     "escaped variable with padding",
			tmpl:     "{{ name }}",
			expected: []token{{kind: tokenVar, name: "name", escaped: true}},
		},
		{
			name:     "triple mustache",
			tmpl:     "{{{name}}}",
			expected: []token{{kind: tokenVar, name: "name", escaped: false}},
		},
		{
			name:     "ampersand form",
			tmpl:     "{{& name}}",
			expected: []token{{kind: tokenVar, name: "name", escaped: false}},
		},
		{
			name:     "dotted path",
			tmpl:     "{{a.b.c}}",
			expected: []token{{kind: tokenVar, name: "a.b.c", escaped: true}},
		},
		{
			name:     "section open and close",
			tmpl:     "{{#items}}{{/items}}",
			expected: []token{{kind: tokenSectionOpen, name: "items"}, {kind: tokenSectionClose, name: "items"}},
		},
		{
			name:     "inverted section",
			tmpl:     "{{^items}}{{/items}}",
			expected: []token{{kind: tokenInvertedOpen, name: "items"}, {kind: tokenSectionClose, name: "items"}},
		},
		{
			name:     "comment",
			tmpl:     "a{{! ignore me }}b",
			expected: []token{{kind: tokenText, text: "a"}, {kind: tokenComment}, {kind: tokenText, text: "b"}},
		},
		{
			name:     "partial",
			tmpl:     "{{> header}}",
			expected: []token{{kind: tokenPartial, name: "header"}},
		},
		{
			name:     "empty tag",
			tmpl:     "{{}}",
			expected: []token{{kind: tokenVar, escaped: true}},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tokens := scan(tc.tmpl)
			if !reflect.DeepEqual(tokens, tc.expected) {
				t.Errorf("expected %+v, got %+v", tc.expected, tokens)
			}
		})
	}
}

func TestScanUnknownSigilIsLiteral(t *testing.T) {
	tokens := scan("a{{=<% %>=}}b")
	expected := []token{
		{kind: tokenText, text: "a"},
		{kind: tokenText, text: "{{=<% %>=}}"},
		{kind: tokenText, text: "b"},
	}
	if !reflect.DeepEqual(tokens, expected) {
		t.Errorf("expected %+v, got %+v", expected, tokens)
	}
}

func TestScanUnterminatedTagIsLiteral(t *testing.T) {
	tokens := scan("before {{name after")
	expected := []token{{kind: tokenText, text: "before {{name after"}}
	if !reflect.DeepEqual(tokens, expected) {
		t.Errorf("expected %+v, got %+v", expected, tokens)
	}
}

func TestScanStandaloneTrimming(t *testing.T) {
	tests := []struct {
		name     string
		tmpl     string
		expected []token
	}{
		{
			name: "section tags on their own lines vanish",
			tmpl: "{{#s}}\nX\n{{/s}}\n",
			expected: []token{
				{kind: tokenSectionOpen, name: "s"},
				{kind: tokenText, text: "X\n"},
				{kind: tokenSectionClose, name: "s"},
			},
		},
		{
			name: "indented standalone tag trims its whole line",
			tmpl: "a\n  {{#s}}  \nb\n",
			expected: []token{
				{kind: tokenText, text: "a\n"},
				{kind: tokenSectionOpen, name: "s"},
				{kind: tokenText, text: "b\n"},
			},
		},
		{
			name: "inline section tag keeps its surroundings",
			tmpl: "a {{#s}}b{{/s}} c",
			expected: []token{
				{kind: tokenText, text: "a "},
				{kind: tokenSectionOpen, name: "s"},
				{kind: tokenText, text: "b"},
				{kind: tokenSectionClose, name: "s"},
				{kind: tokenText, text: " c"},
			},
		},
		{
			name: "standalone comment line vanishes",
			tmpl: "a\n{{! note }}\nb",
			expected: []token{
				{kind: tokenText, text: "a\n"},
				{kind: tokenComment},
				{kind: tokenText, text: "b"},
			},
		},
		{
			name: "variable tags never trim",
			tmpl: "\n{{v}}\n",
			expected: []token{
				{kind: tokenText, text: "\n"},
				{kind: tokenVar, name: "v", escaped: true},
				{kind: tokenText, text: "\n"},
			},
		},
		{
			name: "adjacent standalone lines trim independently",
			tmpl: "{{#a}}\n{{#b}}\nX\n{{/b}}\n{{/a}}\n",
			expected: []token{
				{kind: tokenSectionOpen, name: "a"},
				{kind: tokenSectionOpen, name: "b"},
				{kind: tokenText, text: "X\n"},
				{kind: tokenSectionClose, name: "b"},
				{kind: tokenSectionClose, name: "a"},
			},
		},
		{
			name: "standalone tag at end of input without newline",
			tmpl: "X\n{{/s}}",
			expected: []token{
				{kind: tokenText, text: "X\n"},
				{kind: tokenSectionClose, name: "s"},
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tokens := scan(tc.tmpl)
			if !reflect.DeepEqual(tokens, tc.expected) {
				t.Errorf("expected %+v, got %+v", tc.expected, tokens)
			}
		})
	}
}
