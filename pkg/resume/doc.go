/*
Package resume extracts structured data from a markdown resume document.

The expected layout is an H1 name followed by H2 sections: Personal Info,
Summary, Skills, Certs & Education, Acknowledgments, Recent Experience and
Keywords. The result is a plain map[string]any / []any tree, exactly the
context shape the mustache package renders against.
*/
package resume
