package discover

import (
	"regexp"
	"strings"
)

var (
	componentMarker  = regexp.MustCompile(`^ \+\+\+ '(.+)' \+\+\+$`)
	configTypeMarker = regexp.MustCompile(`^ === ConfigType '(.+)' : ===$`)
	fieldMarker      = regexp.MustCompile(`^ (.+) = <(.+)>(\s+\[dflt: (.+)\])?$`)
	lineBreak        = regexp.MustCompile(`\r?\n`)
)

// RawField is a field as the tool reports it. Type is the tool's type
// text, e.g. `numeric` or `object of type 'cDataReader'`, and Default is
// the unparsed default text.
type RawField struct {
	Name        string
	Type        string
	Default     string
	HasDefault  bool
	Description string
}

// RawType is a component or config type as the tool reports it. Fields of
// struct-typed fields appear flattened with dotted names.
type RawType struct {
	Name        string
	Description string
	Fields      []RawField
}

// Field returns the field named name.
func (t *RawType) Field(name string) (RawField, bool) {
	for _, f := range t.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return RawField{}, false
}

type section struct {
	match []string
	lines []string
}

// splitSections groups lines into sections that start at each line marker
// matches. Lines before the first marker are dropped.
func splitSections(marker *regexp.Regexp, lines []string) []section {
	var out []section
	for _, line := range lines {
		if m := marker.FindStringSubmatch(line); m != nil {
			out = append(out, section{match: m})
			continue
		}
		if len(out) > 0 {
			last := &out[len(out)-1]
			last.lines = append(last.lines, line)
		}
	}
	return out
}

func describe(lines []string) string {
	trimmed := make([]string, len(lines))
	for i, l := range lines {
		trimmed[i] = strings.TrimSpace(l)
	}
	return strings.TrimSpace(strings.Join(trimmed, "\n"))
}

// ParseComponentList reads the output of the tool's component listing.
func ParseComponentList(output string) []RawType {
	var out []RawType
	for _, s := range splitSections(componentMarker, lineBreak.Split(output, -1)) {
		out = append(out, RawType{Name: s.match[1], Description: describe(s.lines)})
	}
	return out
}

// ParseConfigTypes reads the output of the tool's config type help. Array
// markers are removed from field names; a repeated name replaces the
// earlier field in place.
func ParseConfigTypes(output string) []RawType {
	var out []RawType
	for _, s := range splitSections(configTypeMarker, lineBreak.Split(output, -1)) {
		t := RawType{Name: s.match[1]}
		index := make(map[string]int)
		for _, fs := range splitSections(fieldMarker, s.lines) {
			f := RawField{
				Name:        strings.ReplaceAll(fs.match[1], "[]", ""),
				Type:        fs.match[2],
				Default:     fs.match[4],
				HasDefault:  fs.match[3] != "",
				Description: describe(fs.lines),
			}
			if i, ok := index[f.Name]; ok {
				t.Fields[i] = f
				continue
			}
			index[f.Name] = len(t.Fields)
			t.Fields = append(t.Fields, f)
		}
		out = append(out, t)
	}
	return out
}

// Merge attaches config type fields to the listed components. Config types
// missing from the listing are appended with an empty description.
func Merge(components, configTypes []RawType) []RawType {
	out := append([]RawType(nil), components...)
	index := make(map[string]int, len(out))
	for i, c := range out {
		index[c.Name] = i
	}
	for _, ct := range configTypes {
		if i, ok := index[ct.Name]; ok {
			out[i].Fields = ct.Fields
			continue
		}
		index[ct.Name] = len(out)
		out = append(out, RawType{Name: ct.Name, Fields: ct.Fields})
	}
	return out
}
