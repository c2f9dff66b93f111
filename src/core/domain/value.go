package domain

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

// Kind is the shape tag of a Value.
type Kind int

const (
	KindUndefined Kind = iota
	KindNull
	KindNumber
	KindString
	KindObject
	KindArray
)

var kindNames = [...]string{
	KindUndefined: "undefined",
	KindNull:      "null",
	KindNumber:    "number",
	KindString:    "string",
	KindObject:    "object",
	KindArray:     "array",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

// Value is a loosely-typed argument resolved once at the boundary.
// Validation code branches on Kind instead of inspecting Go types.
// The zero Value is undefined.
type Value struct {
	kind   Kind
	num    float64
	str    string
	fields map[string]Value
	elems  []Value
	at     *time.Time
}

// Undefined returns the absent value.
func Undefined() Value { return Value{} }

// Null returns the explicit null value.
func Null() Value { return Value{kind: KindNull} }

// Number returns a numeric value.
func Number(n float64) Value { return Value{kind: KindNumber, num: n} }

// ID is shorthand for a numeric identifier value.
func ID(n int64) Value { return Number(float64(n)) }

// String returns a string value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Object returns a structured value with the given fields. The map is copied.
func Object(fields map[string]Value) Value {
	cp := make(map[string]Value, len(fields))
	for k, v := range fields {
		cp[k] = v
	}
	return Value{kind: KindObject, fields: cp}
}

// Array returns a sequence value.
func Array(elems ...Value) Value {
	cp := make([]Value, len(elems))
	copy(cp, elems)
	return Value{kind: KindArray, elems: cp}
}

// IDs returns an array of numeric identifier values.
func IDs(ids ...int64) Value {
	elems := make([]Value, len(ids))
	for i, id := range ids {
		elems[i] = ID(id)
	}
	return Value{kind: KindArray, elems: elems}
}

// Date returns a timestamp. Timestamps are objects without fields.
func Date(t time.Time) Value {
	return Value{kind: KindObject, at: &t}
}

// ValueOf resolves an arbitrary Go value into a Value.
// Unknown Go types resolve to undefined.
func ValueOf(x any) Value {
	switch v := x.(type) {
	case nil:
		return Null()
	case Value:
		return v
	case *Value:
		if v == nil {
			return Null()
		}
		return *v
	case int:
		return Number(float64(v))
	case int8:
		return Number(float64(v))
	case int16:
		return Number(float64(v))
	case int32:
		return Number(float64(v))
	case int64:
		return Number(float64(v))
	case uint:
		return Number(float64(v))
	case uint8:
		return Number(float64(v))
	case uint16:
		return Number(float64(v))
	case uint32:
		return Number(float64(v))
	case uint64:
		return Number(float64(v))
	case float32:
		return Number(float64(v))
	case float64:
		return Number(v)
	case string:
		return String(v)
	case time.Time:
		return Date(v)
	case *time.Time:
		if v == nil {
			return Null()
		}
		return Date(*v)
	case User:
		return v.Value()
	case *User:
		if v == nil {
			return Null()
		}
		return v.Value()
	case map[string]any:
		fields := make(map[string]Value, len(v))
		for k, f := range v {
			fields[k] = ValueOf(f)
		}
		return Value{kind: KindObject, fields: fields}
	case map[string]Value:
		return Object(v)
	case []any:
		elems := make([]Value, len(v))
		for i, e := range v {
			elems[i] = ValueOf(e)
		}
		return Value{kind: KindArray, elems: elems}
	case []Value:
		return Array(v...)
	case []int:
		elems := make([]Value, len(v))
		for i, e := range v {
			elems[i] = Number(float64(e))
		}
		return Value{kind: KindArray, elems: elems}
	case []int64:
		return IDs(v...)
	case []string:
		elems := make([]Value, len(v))
		for i, e := range v {
			elems[i] = String(e)
		}
		return Value{kind: KindArray, elems: elems}
	default:
		return Undefined()
	}
}

// Kind returns the shape tag.
func (v Value) Kind() Kind { return v.kind }

func (v Value) IsUndefined() bool { return v.kind == KindUndefined }
func (v Value) IsNull() bool      { return v.kind == KindNull }
func (v Value) IsNumber() bool    { return v.kind == KindNumber }
func (v Value) IsObject() bool    { return v.kind == KindObject }
func (v Value) IsArray() bool     { return v.kind == KindArray }

// Num returns the numeric payload and whether v is a number.
func (v Value) Num() (float64, bool) {
	return v.num, v.kind == KindNumber
}

// Str returns the string payload and whether v is a string.
func (v Value) Str() (string, bool) {
	return v.str, v.kind == KindString
}

// Field returns a named field of an object. Missing fields, and fields of
// non-objects, are undefined.
func (v Value) Field(name string) Value {
	if v.kind != KindObject {
		return Undefined()
	}
	return v.fields[name]
}

// Elems returns a copy of the elements of an array, or nil for other kinds.
func (v Value) Elems() []Value {
	if v.kind != KindArray {
		return nil
	}
	cp := make([]Value, len(v.elems))
	copy(cp, v.elems)
	return cp
}

// Time returns the timestamp carried by a Date value.
func (v Value) Time() (time.Time, bool) {
	if v.kind != KindObject || v.at == nil {
		return time.Time{}, false
	}
	return *v.at, true
}

// String renders v for messages and logs.
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindString:
		return strconv.Quote(v.str)
	case KindObject:
		if v.at != nil {
			return v.at.Format(time.RFC3339Nano)
		}
		keys := make([]string, 0, len(v.fields))
		for k := range v.fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = k + ": " + v.fields[k].String()
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case KindArray:
		parts := make([]string, len(v.elems))
		for i, e := range v.elems {
			parts[i] = e.String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return "undefined"
	}
}
