package ir

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"unicode/utf16"

	"golang.org/x/text/unicode/norm"
)

// MarshalCanonical produces RFC 8785 canonical JSON for an event
// sequence plus its advisory vector size. This is the ONLY
// serialization used for content-addressed run identity.
//
// Key differences from standard json.Marshal:
//  1. Object keys sorted by UTF-16 code units (not UTF-8 bytes)
//  2. No HTML escaping (< > & are NOT escaped)
//  3. Strings are NFC normalized
//  4. Integers only - the IR has no floats by construction
func MarshalCanonical(events []Event, vectorSize int) ([]byte, error) {
	seq := make([]canonicalObject, len(events))
	for i, ev := range events {
		obj, err := eventObject(ev)
		if err != nil {
			return nil, fmt.Errorf("sequence[%d]: %w", i, err)
		}
		seq[i] = obj
	}

	var buf bytes.Buffer
	root := canonicalObject{
		"sequence":    seq,
		"vector_size": uint64(vectorSize),
	}
	if err := writeCanonical(&buf, root); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// canonicalObject is a JSON object whose values are strings, uint64,
// nested objects, or []canonicalObject.
type canonicalObject map[string]any

// eventObject flattens an event into its canonical wire form, matching
// the validated config schema field-for-field.
func eventObject(ev Event) (canonicalObject, error) {
	obj := canonicalObject{"event": string(ev.Kind())}
	switch e := ev.(type) {
	case Initial:
		obj["value"] = e.Value
	case Set:
		obj["mask"] = e.Mask
		obj["time"] = timeObject(e.Time)
	case Clear:
		obj["mask"] = e.Mask
		obj["time"] = timeObject(e.Time)
	case Toggle:
		obj["mask"] = e.Mask
		obj["time"] = timeObject(e.Time)
	default:
		return nil, fmt.Errorf("unsupported event type %T", ev)
	}
	return obj, nil
}

func timeObject(t Time) canonicalObject {
	switch ts := t.(type) {
	case Relative:
		return canonicalObject{"mode": "rel", "delta": ts.Delta}
	case Absolute:
		return canonicalObject{"mode": "abs", "time": ts.Cycle}
	default:
		panic(fmt.Sprintf("ir: unsupported time type %T", t))
	}
}

func writeCanonical(buf *bytes.Buffer, v any) error {
	switch val := v.(type) {
	case string:
		s, err := canonicalString(val)
		if err != nil {
			return err
		}
		buf.Write(s)
	case uint64:
		buf.WriteString(strconv.FormatUint(val, 10))
	case canonicalObject:
		buf.WriteByte('{')
		for i, k := range sortedKeysRFC8785(val) {
			if i > 0 {
				buf.WriteByte(',')
			}
			ks, err := canonicalString(k)
			if err != nil {
				return err
			}
			buf.Write(ks)
			buf.WriteByte(':')
			if err := writeCanonical(buf, val[k]); err != nil {
				return fmt.Errorf("%q: %w", k, err)
			}
		}
		buf.WriteByte('}')
	case []canonicalObject:
		buf.WriteByte('[')
		for i, elem := range val {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeCanonical(buf, elem); err != nil {
				return fmt.Errorf("[%d]: %w", i, err)
			}
		}
		buf.WriteByte(']')
	default:
		return fmt.Errorf("unsupported type for canonical JSON: %T", v)
	}
	return nil
}

// canonicalString produces a canonical JSON string with NFC
// normalization and HTML escaping disabled. The IR's strings are all
// ASCII kind tags today, but the serialization rules are kept full so
// the hash never changes if that stops being true.
func canonicalString(s string) ([]byte, error) {
	normalized := norm.NFC.String(s)

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(normalized); err != nil {
		return nil, err
	}

	// json.Encoder adds a trailing newline, remove it
	result := buf.Bytes()
	if len(result) > 0 && result[len(result)-1] == '\n' {
		result = result[:len(result)-1]
	}
	return result, nil
}

// sortedKeysRFC8785 returns keys in RFC 8785 canonical order (UTF-16
// code units). Go's sort.Strings uses UTF-8 which produces a different
// order for keys outside the ASCII range.
func sortedKeysRFC8785(obj canonicalObject) []string {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b string) int {
		a16 := utf16.Encode([]rune(a))
		b16 := utf16.Encode([]rune(b))
		return slices.Compare(a16, b16)
	})
	return keys
}
