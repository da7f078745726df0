// Package attrs canonicalizes attribute selections into signatures.
//
// A signature is the serialized form of a selected-attributes mapping with
// a stable key order. Cart lines are keyed by (product, signature), so two
// logically identical selections must serialize to the same bytes.
package attrs

import (
	"encoding/json"
	"sort"
	"strings"
)

// PlaceholderSignature is used for products without any attribute catalog.
const PlaceholderSignature = `{"Options":"Default"}`

// Normalize returns the canonical signature for a raw selection. When raw
// is empty or not a JSON object, a default selection is derived from the
// catalog (first value of each attribute). Products without attributes get
// the fixed placeholder signature.
func Normalize(raw *string, catalog map[string][]string) string {
	if selection, ok := decodeSelection(raw); ok {
		return serialize(selection)
	}
	return serialize(DefaultSelection(catalog))
}

// DefaultSelection picks the first catalog value for every attribute.
func DefaultSelection(catalog map[string][]string) map[string]string {
	selection := map[string]string{}
	for name, values := range catalog {
		if len(values) == 0 {
			continue
		}
		selection[name] = values[0]
	}
	return selection
}

func decodeSelection(raw *string) (map[string]string, bool) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, false
	}
	var loose map[string]any
	if err := json.Unmarshal([]byte(*raw), &loose); err != nil {
		return nil, false
	}
	if len(loose) == 0 {
		return nil, false
	}
	selection := make(map[string]string, len(loose))
	for key, value := range loose {
		switch v := value.(type) {
		case string:
			selection[key] = v
		default:
			encoded, err := json.Marshal(v)
			if err != nil {
				return nil, false
			}
			selection[key] = string(encoded)
		}
	}
	return selection, true
}

// serialize writes the selection as a JSON object with lexicographically
// sorted keys. encoding/json already sorts map keys; the explicit sort
// keeps the contract visible and independent of that detail.
func serialize(selection map[string]string) string {
	if len(selection) == 0 {
		return PlaceholderSignature
	}

	keys := make([]string, 0, len(selection))
	for key := range selection {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteByte('{')
	for i, key := range keys {
		if i > 0 {
			b.WriteByte(',')
		}
		writeJSONString(&b, key)
		b.WriteByte(':')
		writeJSONString(&b, selection[key])
	}
	b.WriteByte('}')
	return b.String()
}

func writeJSONString(b *strings.Builder, value string) {
	encoded, _ := json.Marshal(value)
	b.Write(encoded)
}
