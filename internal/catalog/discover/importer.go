package discover

import (
	"encoding/json"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/vk/pipeconf/internal/catalog"
	"github.com/vk/pipeconf/internal/value"
)

var (
	objectType    = regexp.MustCompile(`^object of type '(.+)'$`)
	quotedDefault = regexp.MustCompile(`^'(.*)'$`)
	numberPrefix  = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)
)

const (
	readerType = "object of type 'cDataReader'"
	writerType = "object of type 'cDataWriter'"
	nullText   = "(null)"
)

// importer turns raw tool output into catalog file entries.
type importer struct {
	logger  *slog.Logger
	raw     map[string]*RawType
	bases   *BaseTypes
	objects []catalog.ObjectEntry
	seen    map[string]bool
}

// Import converts discovered types into a catalog file.
//
// Every raw type becomes a component. Fields that a component inherits
// unchanged from its base type are left out. Struct-typed fields produce an
// object entry built from their dotted child fields, and reader or writer
// fields declare the levels the component reads from or writes to.
func Import(logger *slog.Logger, types []RawType, bases *BaseTypes) *catalog.File {
	im := &importer{
		logger: logger,
		raw:    make(map[string]*RawType, len(types)),
		bases:  bases,
		seen:   make(map[string]bool),
	}
	for i := range types {
		im.raw[types[i].Name] = &types[i]
	}

	f := &catalog.File{Version: catalog.FormatVersion, Components: []catalog.ComponentEntry{}}
	for _, t := range types {
		entry := catalog.ComponentEntry{
			Component:   t.Name,
			Description: t.Description,
			Fields:      []catalog.FieldEntry{},
		}
		base, ok := bases.Lookup(t.Name)
		if ok {
			entry.BaseComponent = base
		} else {
			logger.Warn("Could not find base type of component.", "component", t.Name)
		}

		for _, field := range t.Fields {
			if strings.Contains(field.Name, ".") {
				continue
			}
			if out, keep := im.field(field, t.Fields, base); keep {
				entry.Fields = append(entry.Fields, out)
			}
		}
		for _, field := range t.Fields {
			switch field.Type {
			case readerType:
				entry.ReadsFromLevels = append(entry.ReadsFromLevels, field.Name+".dmLevel")
			case writerType:
				entry.WritesToLevels = append(entry.WritesToLevels, field.Name+".dmLevel")
			}
		}
		f.Components = append(f.Components, entry)
	}
	f.Objects = im.objects

	logger.Debug("Imported catalog.", "components", len(f.Components), "objects", len(f.Objects))
	return f
}

// field converts one raw field. siblings holds the fields at the same
// nesting level, used to build object entries for struct-typed fields.
func (im *importer) field(field RawField, siblings []RawField, base string) (catalog.FieldEntry, bool) {
	out := catalog.FieldEntry{Field: field.Name, Description: field.Description}

	if base != "" {
		if baseType, ok := im.raw[base]; ok {
			if inherited, ok := baseType.Field(field.Name); ok {
				if inherited.Description == field.Description &&
					inherited.Default == field.Default &&
					inherited.HasDefault == field.HasDefault &&
					inherited.Type == field.Type {
					return catalog.FieldEntry{}, false
				}
				out.Overridden = true
			}
		}
	}

	switch field.Type {
	case value.TypeNumeric, value.TypeString, value.TypeChar:
		out.Type = field.Type
	default:
		if m := objectType.FindStringSubmatch(field.Type); m != nil {
			out.Type = m[1]
			if _, isComponent := im.raw[m[1]]; !isComponent && !im.seen[m[1]] {
				obj := im.object(m[1], field.Name, siblings)
				im.seen[m[1]] = true
				im.objects = append(im.objects, obj)
			}
		} else {
			im.logger.Warn("Unknown field type.", "type", field.Type, "field", field.Name)
		}
	}

	if field.HasDefault {
		out.Default = im.defaultValue(field)
	}
	return out, true
}

// object builds the entry for struct type name from the direct children of
// container among fields.
func (im *importer) object(name, container string, fields []RawField) catalog.ObjectEntry {
	prefix := container + "."
	var children []RawField
	for _, f := range fields {
		if strings.HasPrefix(f.Name, prefix) {
			child := f
			child.Name = strings.TrimPrefix(f.Name, prefix)
			children = append(children, child)
		}
	}

	obj := catalog.ObjectEntry{Object: name, Fields: []catalog.FieldEntry{}}
	for _, child := range children {
		if strings.Contains(child.Name, ".") {
			continue
		}
		if out, keep := im.field(child, children, ""); keep {
			obj.Fields = append(obj.Fields, out)
		}
	}
	return obj
}

func (im *importer) defaultValue(field RawField) json.RawMessage {
	switch field.Type {
	case value.TypeString, value.TypeChar:
		m := quotedDefault.FindStringSubmatch(field.Default)
		if m == nil {
			im.logger.Warn("Unexpected default value format.", "field", field.Name, "default", field.Default)
			return mustJSON(field.Default)
		}
		if m[1] == nullText {
			return json.RawMessage("null")
		}
		return mustJSON(m[1])
	case value.TypeNumeric:
		n, ok := parseLeadingFloat(field.Default)
		if !ok {
			return json.RawMessage("null")
		}
		return mustJSON(n)
	default:
		return mustJSON(field.Default)
	}
}

// parseLeadingFloat parses the longest numeric prefix of s, ignoring
// leading whitespace.
func parseLeadingFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	prefix := numberPrefix.FindString(s)
	if prefix == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(prefix, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func mustJSON(v any) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		return json.RawMessage("null")
	}
	return data
}
