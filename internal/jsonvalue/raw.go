package jsonvalue

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/buger/jsonparser"

	"jsonview/internal/viewer"
)

// node is a parsed JSON value. Numbers keep the spelling of the source.
type node struct {
	kind     viewer.Kind
	scalar   string
	elements []viewer.Value
	members  []viewer.Member
}

// Visit implements viewer.Value.
func (n *node) Visit() viewer.Variant {
	switch n.kind {
	case viewer.KindArray:
		return viewer.Array(n.elements...)
	case viewer.KindMap:
		return viewer.Map(n.members...)
	default:
		return viewer.Scalar(n.scalar)
	}
}

const jsonSpace = " \t\r\n"

// Parse parses a single JSON document. Anything but whitespace after the
// document is an error.
func Parse(data []byte) (viewer.Value, error) {
	trimmed := bytes.Trim(data, jsonSpace)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty document")
	}
	lead := len(data) - len(bytes.TrimLeft(data, jsonSpace))
	if err := checkSyntax(trimmed, lead); err != nil {
		return nil, err
	}
	value, typ, end, err := jsonparser.Get(trimmed)
	if err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	if rest := bytes.Trim(trimmed[end:], jsonSpace); len(rest) > 0 {
		return nil, fmt.Errorf("invalid JSON at offset %d: unexpected %q after document", lead+end, truncate(rest, 16))
	}
	n, err := parseValue(value, typ)
	if err != nil {
		return nil, err
	}
	return n, nil
}

func parseValue(value []byte, typ jsonparser.ValueType) (*node, error) {
	switch typ {
	case jsonparser.Null:
		return &node{kind: viewer.KindScalar, scalar: "null"}, nil
	case jsonparser.Boolean:
		b, err := jsonparser.ParseBoolean(value)
		if err != nil {
			return nil, fmt.Errorf("invalid boolean %q: %w", value, err)
		}
		if b {
			return &node{kind: viewer.KindScalar, scalar: "true"}, nil
		}
		return &node{kind: viewer.KindScalar, scalar: "false"}, nil
	case jsonparser.Number:
		return &node{kind: viewer.KindScalar, scalar: string(value)}, nil
	case jsonparser.String:
		s, err := unquote(value)
		if err != nil {
			return nil, fmt.Errorf("invalid string %q: %w", value, err)
		}
		return &node{kind: viewer.KindScalar, scalar: s}, nil
	case jsonparser.Array:
		return parseArray(value)
	case jsonparser.Object:
		return parseObject(value)
	default:
		return nil, fmt.Errorf("unexpected JSON value %q", value)
	}
}

func parseArray(value []byte) (*node, error) {
	n := &node{kind: viewer.KindArray}
	var inner error
	_, err := jsonparser.ArrayEach(value, func(elem []byte, typ jsonparser.ValueType, offset int, err error) {
		if inner != nil {
			return
		}
		if err != nil {
			inner = fmt.Errorf("array element at offset %d: %w", offset, err)
			return
		}
		child, err := parseValue(elem, typ)
		if err != nil {
			inner = fmt.Errorf("array element %d: %w", len(n.elements), err)
			return
		}
		n.elements = append(n.elements, child)
	})
	if inner != nil {
		return nil, inner
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse array: %w", err)
	}
	return n, nil
}

func parseObject(value []byte) (*node, error) {
	n := &node{kind: viewer.KindMap}
	err := jsonparser.ObjectEach(value, func(key, val []byte, typ jsonparser.ValueType, offset int) error {
		k, err := unquote(key)
		if err != nil {
			return fmt.Errorf("invalid key at offset %d: %w", offset, err)
		}
		child, err := parseValue(val, typ)
		if err != nil {
			return fmt.Errorf("member %q: %w", k, err)
		}
		n.members = append(n.members, viewer.Member{Key: k, Value: child})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse object: %w", err)
	}
	return n, nil
}

// checkSyntax validates data against the JSON grammar. jsonparser skims
// values without checking them, so trailing commas, leading zeros and
// trailing garbage would otherwise pass. Offsets are reported relative to
// the untrimmed input.
func checkSyntax(data []byte, lead int) error {
	if json.Valid(data) {
		return nil
	}
	var raw json.RawMessage
	err := json.Unmarshal(data, &raw)
	var se *json.SyntaxError
	if errors.As(err, &se) {
		return fmt.Errorf("invalid JSON at offset %d: %w", lead+int(se.Offset), err)
	}
	if err == nil {
		err = errors.New("malformed document")
	}
	return fmt.Errorf("invalid JSON: %w", err)
}

// unquote decodes the contents of a JSON string. Escaped lone surrogates are
// replaced with U+FFFD as encoding/json does.
func unquote(raw []byte) (string, error) {
	if s, err := jsonparser.ParseString(raw); err == nil {
		return s, nil
	}
	quoted := make([]byte, 0, len(raw)+2)
	quoted = append(quoted, '"')
	quoted = append(quoted, raw...)
	quoted = append(quoted, '"')
	var s string
	if err := json.Unmarshal(quoted, &s); err != nil {
		return "", err
	}
	return s, nil
}

func truncate(b []byte, n int) []byte {
	if len(b) > n {
		return b[:n]
	}
	return b
}
