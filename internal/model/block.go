package model

import (
	"encoding/json"
	"strconv"
	"strings"
)

// ScalarKey is the BlockValue key under which non-object block values are
// stored (rich-text strings, image ids, raw lists).
const ScalarKey = "value"

// Block is one StreamField entry of a page body: a tagged union of a
// block type and its value.
type Block struct {
	// ID is the stable block identifier assigned by Wagtail.
	ID string `json:"id,omitempty"`

	// Type is the block type name as declared in the CMS schema.
	Type string `json:"type"`

	// Value is the block content. Its shape depends on Type.
	Value BlockValue `json:"value"`
}

// BlockValue is the loosely typed content of a block: a mapping from field
// name to a primitive, a nested object, an image reference or a list of
// those.
//
// Design decision: Wagtail emits non-object values for some block types
// (a RichTextBlock is a string, an ImageChooserBlock is an integer). Rather
// than failing on such bodies we wrap them as {"value": <raw>} so the
// extractor can treat every block uniformly.
type BlockValue map[string]any

// UnmarshalJSON decodes any JSON value into a BlockValue.
func (v *BlockValue) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch val := raw.(type) {
	case map[string]any:
		*v = val
	case nil:
		*v = BlockValue{}
	default:
		*v = BlockValue{ScalarKey: val}
	}
	return nil
}

// Has reports whether the key is present with a non-nil value.
func (v BlockValue) Has(key string) bool {
	val, ok := v[key]
	return ok && val != nil
}

// String returns the value at key as a string.
// Numbers and booleans are formatted; anything else yields "".
func (v BlockValue) String(key string) string {
	return scalarString(v[key])
}

// Strings returns the value at key as a list of non-empty strings.
// It accepts plain JSON arrays and Wagtail list-block items of the form
// {"type": "item", "value": "..."}.
func (v BlockValue) Strings(key string) []string {
	list, ok := v[key].([]any)
	if !ok {
		return nil
	}

	out := make([]string, 0, len(list))
	for _, item := range list {
		var s string
		if obj, ok := item.(map[string]any); ok {
			s = scalarString(obj[ScalarKey])
		} else {
			s = scalarString(item)
		}
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Int returns the value at key as an integer.
// The second return value is false if the key is missing or not numeric.
func (v BlockValue) Int(key string) (int, bool) {
	switch n := v[key].(type) {
	case float64:
		return int(n), true
	case int:
		return n, true
	case json.Number:
		i, err := n.Int64()
		return int(i), err == nil
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		return i, err == nil
	default:
		return 0, false
	}
}

// Bool returns the value at key as a boolean; missing or non-boolean values
// are false.
func (v BlockValue) Bool(key string) bool {
	b, ok := v[key].(bool)
	return ok && b
}

// Map returns the nested object at key, or nil.
func (v BlockValue) Map(key string) BlockValue {
	obj, ok := v[key].(map[string]any)
	if !ok {
		return nil
	}
	return obj
}

// List returns the list at key as block values, in order.
// List-block items ({"type": "item", "value": {...}}) are unwrapped and
// scalar items are wrapped under ScalarKey.
func (v BlockValue) List(key string) []BlockValue {
	list, ok := v[key].([]any)
	if !ok {
		return nil
	}

	out := make([]BlockValue, 0, len(list))
	for _, item := range list {
		switch val := item.(type) {
		case map[string]any:
			if inner, ok := val[ScalarKey].(map[string]any); ok && val["type"] == "item" {
				out = append(out, inner)
				continue
			}
			out = append(out, val)
		case nil:
			continue
		default:
			out = append(out, BlockValue{ScalarKey: val})
		}
	}
	return out
}

// Image returns the image reference at key. A bare string is treated as a
// raw URL; anything unrecognised yields an empty ImageRef.
func (v BlockValue) Image(key string) ImageRef {
	switch val := v[key].(type) {
	case map[string]any:
		return NewImageRef(val)
	case string:
		return ImageRef{RawURL: strings.TrimSpace(val)}
	default:
		return ImageRef{}
	}
}

// Document returns the document reference at key. A bare number is treated
// as a document id.
func (v BlockValue) Document(key string) DocumentRef {
	switch val := v[key].(type) {
	case map[string]any:
		return NewDocumentRef(val)
	case float64:
		return DocumentRef{ID: int(val)}
	default:
		return DocumentRef{}
	}
}

// scalarString formats a JSON scalar as a string.
func scalarString(val any) string {
	switch s := val.(type) {
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case int:
		return strconv.Itoa(s)
	case json.Number:
		return s.String()
	case bool:
		return strconv.FormatBool(s)
	default:
		return ""
	}
}
