package model

import (
	"bytes"
	"encoding/json"
	"sort"
	"strings"
)

// IDKey is the wire name of the project identifier.
const IDKey = "_id"

// Scalar descriptive fields the operator edits.
const (
	FieldTitle            = "title"
	FieldDescription      = "description"
	FieldClientName       = "clientName"
	FieldProjectType      = "projectType"
	FieldSiteAddress      = "siteAddress"
	FieldDate             = "date"
	FieldConsultingType   = "consultingType"
	FieldConstructionName = "constructionName"
)

type FieldDef struct {
	Name  string `json:"name"`
	Label string `json:"label"`
}

var fieldDefs = []FieldDef{
	{FieldTitle, "Title"},
	{FieldDescription, "Description"},
	{FieldClientName, "Client"},
	{FieldProjectType, "Project Type"},
	{FieldSiteAddress, "Location"},
	{FieldDate, "Date"},
	{FieldConsultingType, "Consulting Type"},
	{FieldConstructionName, "Construction"},
}

// FieldDefs returns the descriptive fields in display order.
func FieldDefs() []FieldDef {
	out := make([]FieldDef, len(fieldDefs))
	copy(out, fieldDefs)
	return out
}

// IsReadOnlyField reports whether the operator may never edit name.
func IsReadOnlyField(name string) bool {
	return strings.TrimSpace(name) == IDKey
}

// Project is an interior project as the API returns it: a flat JSON object with an
// identifier, scalar fields, image slot URLs and whatever else the server adds.
//
// A key is present in Fields/Slots/Extra only if the server sent it. Merge relies on
// that to tell "absent" apart from "empty".
type Project struct {
	ID string
	// Fields holds scalar values keyed by wire name. Numbers and booleans keep their
	// JSON text; null becomes "".
	Fields map[string]string
	// Slots maps a slot to its resource URL ("" = empty).
	Slots map[Slot]string
	// Extra keeps non-scalar keys verbatim. They are never submitted.
	Extra map[string]json.RawMessage
}

func (p Project) Field(name string) (string, bool) {
	v, ok := p.Fields[name]
	return v, ok
}

// Get returns a field value or "" when absent.
func (p Project) Get(name string) string {
	return p.Fields[name]
}

func (p Project) SlotURL(s Slot) string {
	return p.Slots[s]
}

func (p Project) Title() string { return p.Fields[FieldTitle] }

// IsZero reports whether p carries no keys at all.
func (p Project) IsZero() bool {
	return p.ID == "" && len(p.Fields) == 0 && len(p.Slots) == 0 && len(p.Extra) == 0
}

// Clone returns a deep copy. The result always has non-nil maps.
func (p Project) Clone() Project {
	out := Project{
		ID:     p.ID,
		Fields: make(map[string]string, len(p.Fields)),
		Slots:  make(map[Slot]string, len(p.Slots)),
		Extra:  make(map[string]json.RawMessage, len(p.Extra)),
	}
	for k, v := range p.Fields {
		out.Fields[k] = v
	}
	for k, v := range p.Slots {
		out.Slots[k] = v
	}
	for k, v := range p.Extra {
		out.Extra[k] = append(json.RawMessage(nil), v...)
	}
	return out
}

// Equal compares field by field; nil and empty maps are equal.
func (p Project) Equal(o Project) bool {
	if p.ID != o.ID || len(p.Fields) != len(o.Fields) || len(p.Slots) != len(o.Slots) || len(p.Extra) != len(o.Extra) {
		return false
	}
	for k, v := range p.Fields {
		if ov, ok := o.Fields[k]; !ok || ov != v {
			return false
		}
	}
	for k, v := range p.Slots {
		if ov, ok := o.Slots[k]; !ok || ov != v {
			return false
		}
	}
	for k, v := range p.Extra {
		if ov, ok := o.Extra[k]; !ok || !bytes.Equal(ov, v) {
			return false
		}
	}
	return true
}

// FieldNames returns the scalar field names sorted.
func (p Project) FieldNames() []string {
	out := make([]string, 0, len(p.Fields))
	for k := range p.Fields {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Merge overlays patch onto base and returns the result; neither input is modified.
// Keys present in patch win, keys absent from patch keep their base value. An empty
// patch.ID never clears base.ID.
func Merge(base, patch Project) Project {
	out := base.Clone()
	if patch.ID != "" {
		out.ID = patch.ID
	}
	for k, v := range patch.Fields {
		out.Fields[k] = v
		delete(out.Extra, k)
	}
	for k, v := range patch.Slots {
		out.Slots[k] = v
		delete(out.Extra, string(k))
	}
	for k, v := range patch.Extra {
		out.Extra[k] = append(json.RawMessage(nil), v...)
		delete(out.Fields, k)
		delete(out.Slots, Slot(k))
	}
	return out
}

func (p *Project) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		return nil
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	out := Project{
		Fields: map[string]string{},
		Slots:  map[Slot]string{},
		Extra:  map[string]json.RawMessage{},
	}
	for k, v := range raw {
		text, scalar := scalarText(v)
		switch {
		case !scalar:
			out.Extra[k] = append(json.RawMessage(nil), v...)
		case k == IDKey:
			out.ID = text
		case IsSlotKey(k):
			out.Slots[Slot(k)] = text
		default:
			out.Fields[k] = text
		}
	}
	*p = out
	return nil
}

func (p Project) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, 1+len(p.Fields)+len(p.Slots)+len(p.Extra))
	for k, v := range p.Extra {
		m[k] = v
	}
	for k, v := range p.Fields {
		m[k] = v
	}
	for k, v := range p.Slots {
		if v == "" {
			m[string(k)] = nil
			continue
		}
		m[string(k)] = v
	}
	if p.ID != "" {
		m[IDKey] = p.ID
	}
	return json.Marshal(m)
}

// scalarText turns a JSON scalar into its form-field text. Objects and arrays are not
// scalars.
func scalarText(v json.RawMessage) (string, bool) {
	t := bytes.TrimSpace(v)
	if len(t) == 0 {
		return "", false
	}
	switch t[0] {
	case '{', '[':
		return "", false
	case '"':
		var s string
		if err := json.Unmarshal(t, &s); err != nil {
			return "", false
		}
		return s, true
	case 'n':
		return "", true
	default:
		return string(t), true
	}
}
