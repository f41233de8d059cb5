package core

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// Kind identifies the variant held by a Value.
type Kind uint8

// Value kinds, mirroring the JSON data model.
const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindBool
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Value is a single decoded claim value. The zero Value is null.
// Numbers keep their JSON text so they round-trip without precision loss.
type Value struct {
	kind Kind
	text string
	b    bool
	arr  []Value
	obj  Claims
}

// StringValue returns a string Value.
func StringValue(s string) Value { return Value{kind: KindString, text: s} }

// NumberValue returns a number Value.
func NumberValue(n json.Number) Value { return Value{kind: KindNumber, text: n.String()} }

// BoolValue returns a bool Value.
func BoolValue(b bool) Value { return Value{kind: KindBool, b: b} }

// ArrayValue returns an array Value.
func ArrayValue(values ...Value) Value { return Value{kind: KindArray, arr: values} }

// ObjectValue returns an object Value.
func ObjectValue(c Claims) Value { return Value{kind: KindObject, obj: c} }

// ValueOf converts a decoded JSON value into a Value. Accepted inputs are the
// types produced by encoding/json (with or without UseNumber) plus Go integer
// types and []string.
func ValueOf(v any) (Value, error) {
	switch t := v.(type) {
	case nil:
		return Value{}, nil
	case Value:
		return t, nil
	case string:
		return StringValue(t), nil
	case bool:
		return BoolValue(t), nil
	case json.Number:
		return NumberValue(t), nil
	case float64:
		return NumberValue(json.Number(strconv.FormatFloat(t, 'f', -1, 64))), nil
	case float32:
		return NumberValue(json.Number(strconv.FormatFloat(float64(t), 'f', -1, 32))), nil
	case int:
		return NumberValue(json.Number(strconv.FormatInt(int64(t), 10))), nil
	case int32:
		return NumberValue(json.Number(strconv.FormatInt(int64(t), 10))), nil
	case int64:
		return NumberValue(json.Number(strconv.FormatInt(t, 10))), nil
	case uint64:
		return NumberValue(json.Number(strconv.FormatUint(t, 10))), nil
	case []string:
		values := make([]Value, len(t))
		for i, s := range t {
			values[i] = StringValue(s)
		}
		return ArrayValue(values...), nil
	case []any:
		values := make([]Value, len(t))
		for i, item := range t {
			val, err := ValueOf(item)
			if err != nil {
				return Value{}, fmt.Errorf("index %d: %w", i, err)
			}
			values[i] = val
		}
		return ArrayValue(values...), nil
	case map[string]any:
		c, err := ClaimsFromMap(t)
		if err != nil {
			return Value{}, err
		}
		return ObjectValue(c), nil
	default:
		return Value{}, fmt.Errorf("unsupported claim value type %T", v)
	}
}

// Kind returns the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsString returns the string held by v.
func (v Value) AsString() (string, bool) {
	return v.text, v.kind == KindString
}

// AsNumber returns the number held by v as a float64.
func (v Value) AsNumber() (float64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	f, err := strconv.ParseFloat(v.text, 64)
	return f, err == nil
}

// AsInt64 returns the number held by v when it is integral.
func (v Value) AsInt64() (int64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	i, err := strconv.ParseInt(v.text, 10, 64)
	return i, err == nil
}

// AsBool returns the bool held by v.
func (v Value) AsBool() (bool, bool) {
	return v.b, v.kind == KindBool
}

// AsArray returns a copy of the elements held by v.
func (v Value) AsArray() ([]Value, bool) {
	if v.kind != KindArray {
		return nil, false
	}
	return cloneValues(v.arr), true
}

// AsObject returns a copy of the nested claims held by v.
func (v Value) AsObject() (Claims, bool) {
	if v.kind != KindObject {
		return nil, false
	}
	return v.obj.Clone(), true
}

// Interface converts v back to the plain Go representation used by
// encoding/json with UseNumber.
func (v Value) Interface() any {
	switch v.kind {
	case KindString:
		return v.text
	case KindNumber:
		return json.Number(v.text)
	case KindBool:
		return v.b
	case KindArray:
		out := make([]any, len(v.arr))
		for i, item := range v.arr {
			out[i] = item.Interface()
		}
		return out
	case KindObject:
		return v.obj.Map()
	default:
		return nil
	}
}

// Equal reports whether v and o hold the same variant and contents.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindString, KindNumber:
		return v.text == o.text
	case KindBool:
		return v.b == o.b
	case KindArray:
		if len(v.arr) != len(o.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(o.arr[i]) {
				return false
			}
		}
		return true
	case KindObject:
		return v.obj.Equal(o.obj)
	default:
		return true
	}
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Interface())
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(data []byte) error {
	raw, err := decodeJSON(data)
	if err != nil {
		return err
	}
	val, err := ValueOf(raw)
	if err != nil {
		return err
	}
	*v = val
	return nil
}

// Claims is the decoded token payload.
type Claims map[string]Value

// ClaimsFromMap converts a decoded JSON object into Claims.
func ClaimsFromMap(m map[string]any) (Claims, error) {
	c := make(Claims, len(m))
	for k, raw := range m {
		val, err := ValueOf(raw)
		if err != nil {
			return nil, fmt.Errorf("claim %q: %w", k, err)
		}
		c[k] = val
	}
	return c, nil
}

// ParseClaims decodes a JSON object payload into Claims.
func ParseClaims(payload []byte) (Claims, error) {
	raw, err := decodeJSON(payload)
	if err != nil {
		return nil, err
	}
	m, ok := raw.(map[string]any)
	if !ok {
		return nil, errors.New("payload is not a JSON object")
	}
	return ClaimsFromMap(m)
}

// Get returns the claim stored under key.
func (c Claims) Get(key string) (Value, bool) {
	v, ok := c[key]
	return v, ok
}

// GetString returns the claim stored under key when it is a string.
func (c Claims) GetString(key string) (string, bool) {
	v, ok := c[key]
	if !ok {
		return "", false
	}
	return v.AsString()
}

// Map converts c to a plain map.
func (c Claims) Map() map[string]any {
	if c == nil {
		return nil
	}
	out := make(map[string]any, len(c))
	for k, v := range c {
		out[k] = v.Interface()
	}
	return out
}

// Clone returns a deep copy of c.
func (c Claims) Clone() Claims {
	if c == nil {
		return nil
	}
	out := make(Claims, len(c))
	for k, v := range c {
		out[k] = v.clone()
	}
	return out
}

// Equal reports whether c and o hold the same claims.
func (c Claims) Equal(o Claims) bool {
	if len(c) != len(o) {
		return false
	}
	for k, v := range c {
		ov, ok := o[k]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}

func (v Value) clone() Value {
	switch v.kind {
	case KindArray:
		v.arr = cloneValues(v.arr)
	case KindObject:
		v.obj = v.obj.Clone()
	}
	return v
}

func cloneValues(values []Value) []Value {
	if values == nil {
		return nil
	}
	out := make([]Value, len(values))
	for i, v := range values {
		out[i] = v.clone()
	}
	return out
}

func decodeJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("could not decode JSON: %w", err)
	}
	if dec.More() {
		return nil, errors.New("could not decode JSON: trailing data")
	}
	return raw, nil
}
