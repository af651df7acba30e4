package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"unicode"
)

// Specs is the technical specification of a product. The catalog carries two
// shapes: a list of short descriptive lines (SpecList) and an ordered map of
// attribute name to value (SpecMap).
type Specs interface {
	// Lines returns the free-text spec lines. Map-form specs have none.
	Lines() []string

	// Pairs returns the specs as display pairs in catalog order.
	Pairs() []SpecPair

	// Contains reports whether text occurs, case-insensitively, in one of
	// the free-text lines.
	Contains(text string) bool
}

// SpecPair is a single displayable spec entry. List-form entries have no Key.
type SpecPair struct {
	Key   string `json:"key,omitempty"`
	Label string `json:"label,omitempty"`
	Value string `json:"value"`
}

// SpecList is the list form of product specs.
type SpecList []string

func (s SpecList) Lines() []string { return s }

func (s SpecList) Pairs() []SpecPair {
	pairs := make([]SpecPair, 0, len(s))
	for _, line := range s {
		pairs = append(pairs, SpecPair{Value: line})
	}
	return pairs
}

func (s SpecList) Contains(text string) bool {
	needle := strings.ToLower(text)
	for _, line := range s {
		if strings.Contains(strings.ToLower(line), needle) {
			return true
		}
	}
	return false
}

// SpecMap is the attribute form of product specs. Order follows the catalog
// document.
type SpecMap []SpecPair

func (m SpecMap) Lines() []string { return nil }

func (m SpecMap) Pairs() []SpecPair {
	pairs := make([]SpecPair, len(m))
	for i, p := range m {
		p.Label = SpecLabel(p.Key)
		pairs[i] = p
	}
	return pairs
}

// Contains is always false: attribute values are not free text and never
// take part in keyword matching.
func (m SpecMap) Contains(string) bool { return false }

// Get returns the value stored under key.
func (m SpecMap) Get(key string) (string, bool) {
	for _, p := range m {
		if p.Key == key {
			return p.Value, true
		}
	}
	return "", false
}

// MarshalJSON writes the map as a JSON object, keeping key order.
func (m SpecMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, p := range m {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(p.Key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(p.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// SpecLabel turns a camelCase attribute key into a display label:
// "refreshRate" becomes "Refresh Rate".
func SpecLabel(key string) string {
	var b strings.Builder
	for i, r := range key {
		if i > 0 && unicode.IsUpper(r) {
			b.WriteByte(' ')
		}
		if i == 0 {
			r = unicode.ToUpper(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}

// DecodeSpecs decodes either spec shape. Null, missing and unrecognised
// values decode to nil, which every filter treats as "no specs".
func DecodeSpecs(raw json.RawMessage) Specs {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil
	}
	switch raw[0] {
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil
		}
		list := make(SpecList, 0, len(items))
		for _, item := range items {
			var line string
			if err := json.Unmarshal(item, &line); err != nil {
				continue
			}
			list = append(list, line)
		}
		return list
	case '{':
		m, err := decodeSpecMap(raw)
		if err != nil {
			return nil
		}
		return m
	default:
		return nil
	}
}

func decodeSpecMap(raw json.RawMessage) (SpecMap, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if _, err := dec.Token(); err != nil {
		return nil, err
	}

	var m SpecMap
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("spec key %v is not a string", tok)
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, err
		}
		m = append(m, SpecPair{Key: key, Value: specValue(value)})
	}
	return m, nil
}

// specValue renders a JSON value as display text: strings unquoted,
// everything else as written in the document.
func specValue(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(bytes.TrimSpace(raw))
}
