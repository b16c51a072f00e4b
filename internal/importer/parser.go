package importer

import (
	"fmt"
	"strings"

	"patentq/internal/models"
)

// Cells use a tagged-field format, one record per line:
//
//	organization: Acme Corp, city: Austin, state: TX, country: US
//	first name: Jane, last name: Doe, city: , state: , country: US
//
// Fields are separated by commas, so values cannot contain one. Keys are
// case-insensitive and may appear in any order, but each exactly once.

const (
	keyOrganization = "organization"
	keyFirstName    = "first name"
	keyLastName     = "last name"
	keyCity         = "city"
	keyState        = "state"
	keyCountry      = "country"
)

var (
	assigneeKeys = []string{keyOrganization, keyCity, keyState, keyCountry}
	inventorKeys = []string{keyFirstName, keyLastName, keyCity, keyState, keyCountry}

	// keys whose value may be left blank
	optionalKeys = map[string]bool{keyCity: true, keyState: true}
)

// ParseError describes one record that did not match the format.
type ParseError struct {
	Line   int // 1-based line within the cell
	Text   string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d %q: %s", e.Line, e.Text, e.Reason)
}

// ParseAssignee parses an Assignees cell. An empty cell yields nil with no
// error. Only the first non-blank line is read; a patent has at most one
// assignee.
func ParseAssignee(cell string) (*models.Assignee, error) {
	lines := splitLines(cell)
	if len(lines) == 0 {
		return nil, nil
	}
	first := lines[0]
	fields, err := parseFields(first.text, assigneeKeys)
	if err != nil {
		return nil, &ParseError{Line: first.no, Text: first.text, Reason: err.Error()}
	}
	return &models.Assignee{
		Organization: fields[keyOrganization],
		City:         optional(fields[keyCity]),
		State:        optional(fields[keyState]),
		Country:      fields[keyCountry],
	}, nil
}

// ParseInventors parses an Inventors cell holding one inventor per line.
// Malformed lines are skipped and reported; the others are returned in
// cell order.
func ParseInventors(cell string) ([]models.Inventor, []*ParseError) {
	var (
		inventors []models.Inventor
		problems  []*ParseError
	)
	for _, l := range splitLines(cell) {
		fields, err := parseFields(l.text, inventorKeys)
		if err != nil {
			problems = append(problems, &ParseError{Line: l.no, Text: l.text, Reason: err.Error()})
			continue
		}
		inventors = append(inventors, models.Inventor{
			FirstName: fields[keyFirstName],
			LastName:  fields[keyLastName],
			City:      optional(fields[keyCity]),
			State:     optional(fields[keyState]),
			Country:   fields[keyCountry],
		})
	}
	return inventors, problems
}

type line struct {
	no   int
	text string
}

// splitLines splits on \n or \r\n and drops blank lines, keeping the
// original line numbers.
func splitLines(cell string) []line {
	if strings.TrimSpace(cell) == "" {
		return nil
	}
	raw := strings.Split(strings.ReplaceAll(cell, "\r\n", "\n"), "\n")
	out := make([]line, 0, len(raw))
	for i, r := range raw {
		r = strings.TrimSpace(strings.TrimSuffix(r, "\r"))
		if r == "" {
			continue
		}
		out = append(out, line{no: i + 1, text: r})
	}
	return out
}

// parseFields splits a record into its tagged fields and checks them
// against the allowed key set.
func parseFields(record string, keys []string) (map[string]string, error) {
	allowed := make(map[string]bool, len(keys))
	for _, k := range keys {
		allowed[k] = true
	}

	fields := make(map[string]string, len(keys))
	for _, segment := range strings.Split(record, ",") {
		key, value, ok := strings.Cut(segment, ":")
		if !ok {
			if strings.TrimSpace(segment) == "" {
				return nil, fmt.Errorf("empty field")
			}
			return nil, fmt.Errorf("field %q has no key", strings.TrimSpace(segment))
		}
		key = normalizeKey(key)
		if !allowed[key] {
			return nil, fmt.Errorf("unknown field %q", key)
		}
		if _, dup := fields[key]; dup {
			return nil, fmt.Errorf("field %q given twice", key)
		}
		fields[key] = strings.TrimSpace(value)
	}

	for _, k := range keys {
		v, present := fields[k]
		if !present {
			return nil, fmt.Errorf("missing field %q", k)
		}
		if v == "" && !optionalKeys[k] {
			return nil, fmt.Errorf("field %q is empty", k)
		}
	}
	return fields, nil
}

// normalizeKey lower-cases a key and folds underscores and runs of spaces
// into single spaces, so "First_Name" and "first  name" both match.
func normalizeKey(k string) string {
	k = strings.ToLower(strings.ReplaceAll(k, "_", " "))
	return strings.Join(strings.Fields(k), " ")
}

func optional(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
