// Package pack implements a small type-tagged binary serialization
// format for integers, strings, homogeneous lists, and string-to-string
// dictionaries.
//
// Every value is a single tag byte followed by a little-endian payload:
//
//	'i'  integer     8-byte unsigned value
//	's'  string      4-byte length + raw bytes
//	'l'  list        4-byte count + tagged elements (homogeneous)
//	'd'  dictionary  4-byte count + tagged pairs
//	'p'  pair        tagged string key + tagged string value
//
// The run journal uses the format for stored trace blobs, which are
// lists of integers. Pack and Unpack are symmetric: any value produced
// by Pack round-trips through Unpack unchanged.
package pack

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"slices"
)

// Tag bytes for each packable type.
const (
	tagInt    = 'i'
	tagString = 's'
	tagList   = 'l'
	tagDict   = 'd'
	tagPair   = 'p'
)

// Pack serializes a value into its tagged binary form. Supported types
// are uint64, int (non-negative), string, []uint64, []string, []any
// (homogeneous), and map[string]string.
func Pack(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := packValue(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func packValue(buf *bytes.Buffer, v any) error {
	switch val := v.(type) {
	case uint64:
		packInt(buf, val)
	case int:
		if val < 0 {
			return fmt.Errorf("pack: negative integers are not representable")
		}
		packInt(buf, uint64(val))
	case string:
		packString(buf, val)
	case []uint64:
		items := make([]any, len(val))
		for i, u := range val {
			items[i] = u
		}
		return packList(buf, items)
	case []string:
		items := make([]any, len(val))
		for i, s := range val {
			items[i] = s
		}
		return packList(buf, items)
	case []any:
		return packList(buf, val)
	case map[string]string:
		packDict(buf, val)
	default:
		return fmt.Errorf("pack: unsupported type %T", v)
	}
	return nil
}

func packInt(buf *bytes.Buffer, v uint64) {
	buf.WriteByte(tagInt)
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	buf.Write(b[:])
}

func packString(buf *bytes.Buffer, s string) {
	buf.WriteByte(tagString)
	writeCount(buf, len(s))
	buf.WriteString(s)
}

func packList(buf *bytes.Buffer, items []any) error {
	// Lists must be homogeneously typed.
	for i := 1; i < len(items); i++ {
		if fmt.Sprintf("%T", items[i]) != fmt.Sprintf("%T", items[i-1]) {
			return fmt.Errorf("pack: list type must be homogeneous (item %d is %T, item %d is %T)",
				i-1, items[i-1], i, items[i])
		}
	}

	buf.WriteByte(tagList)
	writeCount(buf, len(items))
	for i, item := range items {
		if err := packValue(buf, item); err != nil {
			return fmt.Errorf("list item %d: %w", i, err)
		}
	}
	return nil
}

func packDict(buf *bytes.Buffer, m map[string]string) {
	buf.WriteByte(tagDict)
	writeCount(buf, len(m))

	// Deterministic key order so identical dicts pack identically.
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, k := range keys {
		buf.WriteByte(tagPair)
		packString(buf, k)
		packString(buf, m[k])
	}
}

func writeCount(buf *bytes.Buffer, n int) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], uint32(n))
	buf.Write(b[:])
}

// Unpack deserializes a tagged binary buffer produced by Pack. The
// whole buffer must be consumed; trailing bytes are an error.
// Integers unpack as uint64, lists as []any, dictionaries as
// map[string]string.
func Unpack(data []byte) (any, error) {
	v, rest, err := unpackValue(data)
	if err != nil {
		return nil, err
	}
	if len(rest) > 0 {
		return nil, fmt.Errorf("unpack: %d trailing bytes after value", len(rest))
	}
	return v, nil
}

func unpackValue(data []byte) (any, []byte, error) {
	if len(data) == 0 {
		return nil, nil, fmt.Errorf("unpack: empty buffer")
	}

	tag, body := data[0], data[1:]
	switch tag {
	case tagInt:
		if len(body) < 8 {
			return nil, nil, fmt.Errorf("unpack: truncated integer")
		}
		return binary.LittleEndian.Uint64(body[:8]), body[8:], nil

	case tagString:
		return unpackString(body)

	case tagList:
		count, rest, err := readCount(body, "list")
		if err != nil {
			return nil, nil, err
		}
		items := make([]any, 0, count)
		for i := 0; i < count; i++ {
			var item any
			item, rest, err = unpackValue(rest)
			if err != nil {
				return nil, nil, fmt.Errorf("list item %d: %w", i, err)
			}
			items = append(items, item)
		}
		return items, rest, nil

	case tagDict:
		count, rest, err := readCount(body, "dict")
		if err != nil {
			return nil, nil, err
		}
		m := make(map[string]string, count)
		for i := 0; i < count; i++ {
			if len(rest) == 0 || rest[0] != tagPair {
				return nil, nil, fmt.Errorf("unpack: dict entry %d: expected pair tag", i)
			}
			var key, value any
			key, rest, err = unpackValue(rest[1:])
			if err != nil {
				return nil, nil, fmt.Errorf("dict entry %d key: %w", i, err)
			}
			value, rest, err = unpackValue(rest)
			if err != nil {
				return nil, nil, fmt.Errorf("dict entry %d value: %w", i, err)
			}
			ks, kok := key.(string)
			vs, vok := value.(string)
			if !kok || !vok {
				return nil, nil, fmt.Errorf("unpack: dict entry %d: keys and values must be strings", i)
			}
			m[ks] = vs
		}
		return m, rest, nil

	default:
		return nil, nil, fmt.Errorf("unpack: unknown tag %q", tag)
	}
}

func unpackString(body []byte) (any, []byte, error) {
	n, rest, err := readCount(body, "string")
	if err != nil {
		return nil, nil, err
	}
	if len(rest) < n {
		return nil, nil, fmt.Errorf("unpack: truncated string")
	}
	return string(rest[:n]), rest[n:], nil
}

func readCount(body []byte, what string) (int, []byte, error) {
	if len(body) < 4 {
		return 0, nil, fmt.Errorf("unpack: truncated %s header", what)
	}
	return int(binary.LittleEndian.Uint32(body[:4])), body[4:], nil
}
