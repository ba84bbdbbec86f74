package resume

import (
	"errors"
	"html"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
)

// Section titles the extractor looks for, as they appear in the markdown H2
// headings.
const (
	sectionPersonalInfo   = "Personal Info"
	sectionSummary        = "Summary"
	sectionSkills         = "Skills"
	sectionCertsEducation = "Certs & Education"
	sectionAcknowledge    = "Acknowledgments"
	sectionExperience     = "Recent Experience"
	sectionKeywords       = "Keywords"
)

var (
	linkRe     = regexp.MustCompile(`^\[(.+?)\]\((.+?)\)$`)
	infoRe     = regexp.MustCompile(`^-\s+\*\*(.+?)\*\*:\s*(.+)$`)
	skillRe    = regexp.MustCompile(`^(.+?)\s+—\s+(\d+)\s*%$`)
	skillAltRe = regexp.MustCompile(`^(.+?)\s+-\s+(\d+)\s*%$`)
	datesRe    = regexp.MustCompile(`^\*\*Dates:\*\*\s*(.+)$`)
	bulletRe   = regexp.MustCompile(`^\*\*(.+?)\*\*\s*(.+)$`)
)

// ErrNoName is returned when the markdown document has no H1 name heading.
var ErrNoName = errors.New("resume: could not find an H1 '# Name' heading")

// Parser extracts the structured context data consumed by the template
// engine from a markdown resume document.
type Parser struct {
	logger *slog.Logger
}

// NewParser returns a Parser. A nil logger falls back to slog.Default().
func NewParser(logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{logger: logger}
}

// Parse reads the markdown document and returns the context mapping:
// person, personal_info, summary, skills, certs_education, acknowledgments,
// experience and keywords. Unrecognized list lines are skipped, never fatal;
// a missing H1 name is the only hard error.
func (p *Parser) Parse(text string) (map[string]any, error) {
	lines := strings.Split(text, "\n")

	i := 0
	for i < len(lines) && !strings.HasPrefix(lines[i], "# ") {
		i++
	}
	if i >= len(lines) {
		return nil, ErrNoName
	}
	fullName := strings.TrimSpace(lines[i][2:])
	nameParts := strings.Fields(fullName)
	firstName := ""
	lastName := ""
	if len(nameParts) > 0 {
		firstName = nameParts[0]
	}
	if len(nameParts) > 1 {
		lastName = nameParts[len(nameParts)-1]
	}

	sections := splitSections(lines[i+1:])

	return map[string]any{
		"person": map[string]any{
			"full_name":  fullName,
			"first_name": firstName,
			"last_name":  lastName,
		},
		"personal_info":   p.parsePersonalInfo(sections[sectionPersonalInfo]),
		"summary":         joinParagraph(sections[sectionSummary]),
		"skills":          p.parseSkills(sections[sectionSkills]),
		"certs_education": p.parseSimpleList(sectionCertsEducation, sections[sectionCertsEducation]),
		"acknowledgments": p.parseSimpleList(sectionAcknowledge, sections[sectionAcknowledge]),
		"experience":      parseExperience(sections[sectionExperience]),
		"keywords":        joinParagraph(sections[sectionKeywords]),
	}, nil
}

// splitSections groups the lines following each "## Title" heading under
// that title. Lines before the first heading are discarded.
func splitSections(lines []string) map[string][]string {
	sections := make(map[string][]string)
	current := ""
	for _, line := range lines {
		if strings.HasPrefix(line, "## ") {
			current = strings.TrimSpace(line[3:])
			sections[current] = nil
			continue
		}
		if current != "" {
			sections[current] = append(sections[current], line)
		}
	}
	return sections
}

// parseLink splits an optional markdown link into its text and href. Plain
// text comes back with an empty href. Entities in the text are unescaped so
// the renderer can escape them exactly once.
func parseLink(s string) (text, href string) {
	s = strings.TrimSpace(s)
	if m := linkRe.FindStringSubmatch(s); m != nil {
		return html.UnescapeString(strings.TrimSpace(m[1])), strings.TrimSpace(m[2])
	}
	return html.UnescapeString(s), ""
}

// parsePersonalInfo reads "- **Label**: value" lines. The href key is
// always present, nil when the value is not a link, so templates can use
// {{#href}} sections per entry.
func (p *Parser) parsePersonalInfo(lines []string) []any {
	var out []any
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || !strings.HasPrefix(line, "- ") {
			continue
		}
		m := infoRe.FindStringSubmatch(line)
		if m == nil {
			p.logger.Debug("Skipping unrecognized personal info line", "line", line)
			continue
		}
		value, href := parseLink(m[2])
		entry := map[string]any{
			"label": html.UnescapeString(strings.TrimSpace(m[1])),
			"value": value,
			"href":  nil,
		}
		if href != "" {
			entry["href"] = href
		}
		out = append(out, entry)
	}
	return out
}

// parseSkills reads "- Name — 80%" lines, accepting a plain hyphen in place
// of the em dash.
func (p *Parser) parseSkills(lines []string) []any {
	var out []any
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "- ") {
			continue
		}
		item := strings.TrimSpace(line[2:])
		m := skillRe.FindStringSubmatch(item)
		if m == nil {
			m = skillAltRe.FindStringSubmatch(item)
		}
		if m == nil {
			p.logger.Debug("Skipping unrecognized skill line", "line", line)
			continue
		}
		percent, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}
		out = append(out, map[string]any{
			"name":    html.UnescapeString(strings.TrimSpace(m[1])),
			"percent": percent,
		})
	}
	return out
}

// parseSimpleList reads "- item" lines with an optional markdown link. The
// href key is only set when a link is present.
func (p *Parser) parseSimpleList(section string, lines []string) []any {
	var out []any
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "- ") {
			if line != "" {
				p.logger.Debug("Skipping unrecognized list line", "section", section, "line", line)
			}
			continue
		}
		text, href := parseLink(line[2:])
		item := map[string]any{"text": text}
		if href != "" {
			item["href"] = href
		}
		out = append(out, item)
	}
	return out
}

// parseExperience reads repeating job blocks: an "### Title — Company"
// heading, an optional "**Dates:**" line, a description paragraph and a
// list of "- **Lead:** text" bullets.
func parseExperience(lines []string) []any {
	var jobs []any
	j := 0
	for j < len(lines) {
		line := strings.TrimSpace(lines[j])
		if !strings.HasPrefix(line, "### ") {
			j++
			continue
		}

		header := strings.TrimSpace(line[4:])
		title := header
		company := ""
		if idx := strings.Index(header, " — "); idx >= 0 {
			title = strings.TrimSpace(header[:idx])
			company = strings.TrimSpace(header[idx+len(" — "):])
		}
		j++

		for j < len(lines) && strings.TrimSpace(lines[j]) == "" {
			j++
		}
		dates := ""
		if j < len(lines) {
			if m := datesRe.FindStringSubmatch(strings.TrimSpace(lines[j])); m != nil {
				dates = html.UnescapeString(strings.TrimSpace(m[1]))
				j++
			}
		}

		var descParts []string
		for j < len(lines) {
			t := strings.TrimSpace(lines[j])
			if strings.HasPrefix(t, "### ") || strings.HasPrefix(t, "- ") {
				break
			}
			if t != "" {
				descParts = append(descParts, t)
			}
			j++
		}

		var bullets []any
		for j < len(lines) {
			t := strings.TrimSpace(lines[j])
			if strings.HasPrefix(t, "### ") {
				break
			}
			if strings.HasPrefix(t, "- ") {
				b := strings.TrimSpace(t[2:])
				if m := bulletRe.FindStringSubmatch(b); m != nil {
					bullets = append(bullets, map[string]any{
						"lead": html.UnescapeString(strings.TrimSpace(m[1])),
						"text": html.UnescapeString(strings.TrimSpace(m[2])),
					})
				} else {
					bullets = append(bullets, map[string]any{
						"lead": "",
						"text": html.UnescapeString(b),
					})
				}
			}
			j++
		}

		jobs = append(jobs, map[string]any{
			"dates":       dates,
			"title":       html.UnescapeString(title),
			"company":     html.UnescapeString(company),
			"description": html.UnescapeString(strings.Join(descParts, " ")),
			"bullets":     bullets,
		})
	}
	return jobs
}

// joinParagraph collapses a section's non-empty lines into one
// entity-unescaped paragraph.
func joinParagraph(lines []string) string {
	var parts []string
	for _, line := range lines {
		if t := strings.TrimSpace(line); t != "" {
			parts = append(parts, t)
		}
	}
	return html.UnescapeString(strings.Join(parts, " "))
}
