package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/ghodss/yaml"
	"github.com/spf13/afero"
	"github.com/vk/pipeconf/internal/ctxlog"
	"github.com/vk/pipeconf/internal/value"
	"github.com/zclconf/go-cty/cty"
)

// FormatVersion is the only catalog file version this package understands.
const FormatVersion = "1.0"

// File is the on-disk catalog document.
type File struct {
	Version    string           `json:"version"`
	Components []ComponentEntry `json:"components"`
	Objects    []ObjectEntry    `json:"objects,omitempty"`
}

// ComponentEntry is one component type in a catalog file.
type ComponentEntry struct {
	Component                 string       `json:"component"`
	Description               string       `json:"description,omitempty"`
	BaseComponent             string       `json:"baseComponent,omitempty"`
	Fields                    []FieldEntry `json:"fields"`
	ReadsFromLevels           []string     `json:"readsFromLevels,omitempty"`
	WritesToLevels            []string     `json:"writesToLevels,omitempty"`
	SendsMessagesToComponents []string     `json:"sendsMessagesToComponents,omitempty"`
}

// ObjectEntry is one struct type in a catalog file.
type ObjectEntry struct {
	Object      string       `json:"object"`
	Description string       `json:"description,omitempty"`
	Fields      []FieldEntry `json:"fields"`
}

// FieldEntry is one field of a component or object. Default and
// RecommendedValue stay raw so that an explicit null can be told apart
// from an absent key.
type FieldEntry struct {
	Field            string            `json:"field"`
	Type             string            `json:"type,omitempty"`
	Default          json.RawMessage   `json:"default,omitempty"`
	Description      string            `json:"description,omitempty"`
	Required         bool              `json:"required,omitempty"`
	Visibility       string            `json:"visibility,omitempty"`
	TypeHint         string            `json:"typeHint,omitempty"`
	SuggestedValues  []json.RawMessage `json:"suggestedValues,omitempty"`
	AllowedValues    []json.RawMessage `json:"allowedValues,omitempty"`
	RecommendedValue json.RawMessage   `json:"recommendedValue,omitempty"`
	// Overridden marks a field that redeclares an inherited field.
	Overridden       bool              `json:"overridden,omitempty"`
}

// Decode builds a catalog from a parsed catalog file. It returns nil, with
// no error, when the file's version is not FormatVersion.
func Decode(ctx context.Context, f *File) (*Catalog, error) {
	logger := ctxlog.FromContext(ctx)
	if f.Version != FormatVersion {
		logger.Debug("Ignoring catalog with unrecognized version.", "version", f.Version)
		return nil, nil
	}

	types := make([]*TypeInfo, 0, len(f.Components)+len(f.Objects))
	for _, c := range f.Components {
		fields, err := decodeFields(c.Fields)
		if err != nil {
			return nil, fmt.Errorf("component %q: %w", c.Component, err)
		}
		types = append(types, &TypeInfo{
			Name:                 c.Component,
			Description:          c.Description,
			BaseType:             c.BaseComponent,
			Fields:               fields,
			ReadsFromLevelFields: c.ReadsFromLevels,
			WritesToLevelFields:  c.WritesToLevels,
			SendsMessagesFields:  c.SendsMessagesToComponents,
		})
	}
	for _, o := range f.Objects {
		fields, err := decodeFields(o.Fields)
		if err != nil {
			return nil, fmt.Errorf("object %q: %w", o.Object, err)
		}
		types = append(types, &TypeInfo{
			Name:        o.Object,
			Description: o.Description,
			IsStruct:    true,
			Fields:      fields,
		})
	}

	logger.Debug("Decoded catalog.", "components", len(f.Components), "objects", len(f.Objects))
	return New(types...), nil
}

func decodeFields(entries []FieldEntry) (map[string]*FieldInfo, error) {
	fields := make(map[string]*FieldInfo, len(entries))
	for _, e := range entries {
		fi := &FieldInfo{
			Name:        e.Field,
			Type:        e.Type,
			Description: e.Description,
			Required:    e.Required,
			Visibility:  Visibility(e.Visibility),
			TypeHint:    e.TypeHint,
		}
		if fi.Visibility == "" {
			fi.Visibility = VisibilityPrimary
		}

		var err error
		if fi.Default, err = decodeOptional(e.Default); err != nil {
			return nil, fmt.Errorf("field %q default: %w", e.Field, err)
		}
		if fi.RecommendedValue, err = decodeOptional(e.RecommendedValue); err != nil {
			return nil, fmt.Errorf("field %q recommendedValue: %w", e.Field, err)
		}
		if fi.SuggestedValues, err = decodeList(e.SuggestedValues); err != nil {
			return nil, fmt.Errorf("field %q suggestedValues: %w", e.Field, err)
		}
		if fi.AllowedValues, err = decodeList(e.AllowedValues); err != nil {
			return nil, fmt.Errorf("field %q allowedValues: %w", e.Field, err)
		}
		fields[e.Field] = fi
	}
	return fields, nil
}

func decodeOptional(raw json.RawMessage) (*cty.Value, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	v, err := value.FromJSON(raw)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func decodeList(raws []json.RawMessage) ([]cty.Value, error) {
	if raws == nil {
		return nil, nil
	}
	out := make([]cty.Value, 0, len(raws))
	for _, raw := range raws {
		v, err := value.FromJSON(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// ReadJSON decodes a JSON catalog document.
func ReadJSON(ctx context.Context, r io.Reader) (*Catalog, error) {
	var f File
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("parsing catalog JSON: %w", err)
	}
	return Decode(ctx, &f)
}

// ReadYAML decodes a YAML catalog document. It shares the JSON field names.
func ReadYAML(ctx context.Context, data []byte) (*Catalog, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing catalog YAML: %w", err)
	}
	return Decode(ctx, &f)
}

// LoadFile reads a catalog from fs, choosing the decoder by extension.
// A file with an unrecognized version yields a nil catalog and no error.
func LoadFile(ctx context.Context, fs afero.Fs, path string) (*Catalog, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ReadYAML(ctx, data)
	default:
		return ReadJSON(ctx, strings.NewReader(string(data)))
	}
}

// Encode converts a catalog back into its file form. Types are written in
// name order.
func Encode(c *Catalog) *File {
	f := &File{Version: FormatVersion, Components: []ComponentEntry{}}
	for _, t := range c.Types() {
		fields := encodeFields(t)
		if t.IsStruct {
			f.Objects = append(f.Objects, ObjectEntry{
				Object:      t.Name,
				Description: t.Description,
				Fields:      fields,
			})
			continue
		}
		f.Components = append(f.Components, ComponentEntry{
			Component:                 t.Name,
			Description:               t.Description,
			BaseComponent:             t.BaseType,
			Fields:                    fields,
			ReadsFromLevels:           t.ReadsFromLevelFields,
			WritesToLevels:            t.WritesToLevelFields,
			SendsMessagesToComponents: t.SendsMessagesFields,
		})
	}
	return f
}

func encodeFields(t *TypeInfo) []FieldEntry {
	out := make([]FieldEntry, 0, len(t.Fields))
	for _, f := range t.SortedFields() {
		e := FieldEntry{
			Field:       f.Name,
			Type:        f.Type,
			Description: f.Description,
			Required:    f.Required,
			TypeHint:    f.TypeHint,
		}
		if f.Visibility != "" && f.Visibility != VisibilityPrimary {
			e.Visibility = string(f.Visibility)
		}
		if f.Default != nil {
			e.Default = encodeValue(*f.Default)
		}
		if f.RecommendedValue != nil {
			e.RecommendedValue = encodeValue(*f.RecommendedValue)
		}
		for _, v := range f.SuggestedValues {
			e.SuggestedValues = append(e.SuggestedValues, encodeValue(v))
		}
		for _, v := range f.AllowedValues {
			e.AllowedValues = append(e.AllowedValues, encodeValue(v))
		}
		out = append(out, e)
	}
	return out
}

func encodeValue(v cty.Value) json.RawMessage {
	data, err := json.Marshal(value.ToGo(v))
	if err != nil {
		return json.RawMessage("null")
	}
	return data
}

// WriteJSON writes c as an indented version "1.0" catalog document.
func WriteJSON(w io.Writer, c *Catalog) error {
	return WriteFile(w, Encode(c))
}

// WriteFile writes f as indented JSON.
func WriteFile(w io.Writer, f *File) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(f); err != nil {
		return fmt.Errorf("writing catalog JSON: %w", err)
	}
	return nil
}
