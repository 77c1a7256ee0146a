package protocol

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// Value is the recursive free-form payload shape used for meta and for
// subfields such as ToolUseRequest.parameters and ToolUseResult.result. It
// deliberately has no "string" fallback case: a Go value that does not map
// onto one of these variants is an encode-time error, not a silent
// stringification.
type Value struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	s    string
	bin  []byte
	list []Value
	m    map[string]Value
}

type Kind uint8

const (
	KindNil Kind = iota
	KindBool
	KindInt64
	KindFloat64
	KindString
	KindBinary
	KindList
	KindMap
)

func Nil() Value                 { return Value{kind: KindNil} }
func Bool(b bool) Value          { return Value{kind: KindBool, b: b} }
func Int64(i int64) Value        { return Value{kind: KindInt64, i: i} }
func Float64(f float64) Value    { return Value{kind: KindFloat64, f: f} }
func String(s string) Value      { return Value{kind: KindString, s: s} }
func Binary(b []byte) Value      { return Value{kind: KindBinary, bin: b} }
func List(v []Value) Value       { return Value{kind: KindList, list: v} }
func Map(m map[string]Value) Value { return Value{kind: KindMap, m: m} }

func (v Value) Kind() Kind { return v.kind }
func (v Value) IsNil() bool { return v.kind == KindNil }

func (v Value) Bool() (bool, bool)             { return v.b, v.kind == KindBool }
func (v Value) Int64() (int64, bool)           { return v.i, v.kind == KindInt64 }
func (v Value) Float64() (float64, bool)       { return v.f, v.kind == KindFloat64 }
func (v Value) String() (string, bool)         { return v.s, v.kind == KindString }
func (v Value) Binary() ([]byte, bool)         { return v.bin, v.kind == KindBinary }
func (v Value) List() ([]Value, bool)          { return v.list, v.kind == KindList }
func (v Value) Map() (map[string]Value, bool)  { return v.m, v.kind == KindMap }

// Equal compares two Values structurally; byte slices are compared by
// content, not identity.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNil:
		return true
	case KindBool:
		return v.b == o.b
	case KindInt64:
		return v.i == o.i
	case KindFloat64:
		return v.f == o.f
	case KindString:
		return v.s == o.s
	case KindBinary:
		if len(v.bin) != len(o.bin) {
			return false
		}
		for i := range v.bin {
			if v.bin[i] != o.bin[i] {
				return false
			}
		}
		return true
	case KindList:
		if len(v.list) != len(o.list) {
			return false
		}
		for i := range v.list {
			if !v.list[i].Equal(o.list[i]) {
				return false
			}
		}
		return true
	case KindMap:
		if len(v.m) != len(o.m) {
			return false
		}
		for k, mv := range v.m {
			ov, ok := o.m[k]
			if !ok || !mv.Equal(ov) {
				return false
			}
		}
		return true
	}
	return false
}

// ErrUnrepresentableValue is returned when a Go value given to FromAny has no
// matching Value shape. Values are never silently coerced to a string
// fallback: an unsupported type is a caller bug, not a wire detail to hide.
type ErrUnrepresentableValue struct {
	Got any
}

func (e *ErrUnrepresentableValue) Error() string {
	return fmt.Sprintf("protocol: value of type %T has no wire representation", e.Got)
}

// FromAny converts a generic Go value (as produced by decoding arbitrary
// msgpack, or constructed programmatically) into a Value. It returns
// ErrUnrepresentableValue for anything outside the supported shape set.
func FromAny(a any) (Value, error) {
	switch t := a.(type) {
	case nil:
		return Nil(), nil
	case bool:
		return Bool(t), nil
	case int:
		return Int64(int64(t)), nil
	case int8:
		return Int64(int64(t)), nil
	case int16:
		return Int64(int64(t)), nil
	case int32:
		return Int64(int64(t)), nil
	case int64:
		return Int64(t), nil
	case uint:
		return Int64(int64(t)), nil
	case uint8:
		return Int64(int64(t)), nil
	case uint16:
		return Int64(int64(t)), nil
	case uint32:
		return Int64(int64(t)), nil
	case uint64:
		return Int64(int64(t)), nil
	case float32:
		return Float64(float64(t)), nil
	case float64:
		return Float64(t), nil
	case string:
		return String(t), nil
	case []byte:
		return Binary(t), nil
	case []any:
		out := make([]Value, len(t))
		for i, e := range t {
			cv, err := FromAny(e)
			if err != nil {
				return Value{}, err
			}
			out[i] = cv
		}
		return List(out), nil
	case map[string]any:
		out := make(map[string]Value, len(t))
		for k, e := range t {
			if e == nil {
				continue // nulls dropped per the meta nullability rule
			}
			cv, err := FromAny(e)
			if err != nil {
				return Value{}, err
			}
			out[k] = cv
		}
		return Map(out), nil
	case map[any]any:
		out := make(map[string]Value, len(t))
		for k, e := range t {
			if e == nil {
				continue
			}
			ks, ok := k.(string)
			if !ok {
				return Value{}, &ErrUnrepresentableValue{Got: a}
			}
			cv, err := FromAny(e)
			if err != nil {
				return Value{}, err
			}
			out[ks] = cv
		}
		return Map(out), nil
	default:
		return Value{}, &ErrUnrepresentableValue{Got: a}
	}
}

// Any converts a Value back to a plain Go value suitable for general-purpose
// inspection (e.g. logging, ToolUseResult.result exposed to host code).
func (v Value) Any() any {
	switch v.kind {
	case KindNil:
		return nil
	case KindBool:
		return v.b
	case KindInt64:
		return v.i
	case KindFloat64:
		return v.f
	case KindString:
		return v.s
	case KindBinary:
		return v.bin
	case KindList:
		out := make([]any, len(v.list))
		for i, e := range v.list {
			out[i] = e.Any()
		}
		return out
	case KindMap:
		out := make(map[string]any, len(v.m))
		for k, e := range v.m {
			out[k] = e.Any()
		}
		return out
	}
	return nil
}

func encodeValue(enc *msgpack.Encoder, v Value) error {
	switch v.kind {
	case KindNil:
		return enc.EncodeNil()
	case KindBool:
		return enc.EncodeBool(v.b)
	case KindInt64:
		return enc.EncodeInt(v.i)
	case KindFloat64:
		return enc.EncodeFloat64(v.f)
	case KindString:
		return enc.EncodeString(v.s)
	case KindBinary:
		return enc.EncodeBytes(v.bin)
	case KindList:
		if err := enc.EncodeArrayLen(len(v.list)); err != nil {
			return err
		}
		for _, e := range v.list {
			if err := encodeValue(enc, e); err != nil {
				return err
			}
		}
		return nil
	case KindMap:
		if err := enc.EncodeMapLen(len(v.m)); err != nil {
			return err
		}
		for k, e := range v.m {
			if err := enc.EncodeString(k); err != nil {
				return err
			}
			if err := encodeValue(enc, e); err != nil {
				return err
			}
		}
		return nil
	}
	return fmt.Errorf("protocol: unknown value kind %d", v.kind)
}

// decodeValue decodes one arbitrary wire value using the decoder's generic
// interface{} decoding (which already knows how to tell apart maps, arrays,
// strings, binaries, numbers and booleans), then lifts the result into our
// closed Value shape via FromAny.
func decodeValue(dec *msgpack.Decoder) (Value, error) {
	raw, err := dec.DecodeInterface()
	if err != nil {
		return Value{}, err
	}
	return FromAny(raw)
}
