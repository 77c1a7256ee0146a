package protocol

// Fields is the decoded-but-not-yet-typed representation of a message body:
// a flat map from wire field name to Value. Each catalogue entry's
// fromFields function consumes a Fields to build its typed Go struct,
// producing the declared DecodeError kinds on mismatch.
type Fields map[string]Value

func (f Fields) get(name string) (Value, bool) {
	v, ok := f[name]
	return v, ok
}

// RequireString returns a required string field, or MissingRequiredField /
// FieldTypeMismatch.
func (f Fields) RequireString(name string) (string, error) {
	v, ok := f.get(name)
	if !ok || v.IsNil() {
		return "", newDecodeErr(ErrMissingRequiredField, name, "required string field absent")
	}
	s, ok := v.String()
	if !ok {
		return "", newDecodeErr(ErrFieldTypeMismatch, name, "expected string")
	}
	return s, nil
}

// OptString returns an optional string field, nil if absent or explicitly nil.
func (f Fields) OptString(name string) (*string, error) {
	v, ok := f.get(name)
	if !ok || v.IsNil() {
		return nil, nil
	}
	s, ok := v.String()
	if !ok {
		return nil, newDecodeErr(ErrFieldTypeMismatch, name, "expected string")
	}
	return &s, nil
}

func narrowInt32(name string, i int64) (int32, error) {
	if i < -(1<<31) || i >= (1<<31) {
		return 0, newDecodeErr(ErrIntegerOutOfRange, name, "value out of int32 range")
	}
	return int32(i), nil
}

// RequireInt32 returns a required int32 field with range narrowing.
func (f Fields) RequireInt32(name string) (int32, error) {
	v, ok := f.get(name)
	if !ok || v.IsNil() {
		return 0, newDecodeErr(ErrMissingRequiredField, name, "required int field absent")
	}
	i, ok := v.Int64()
	if !ok {
		return 0, newDecodeErr(ErrFieldTypeMismatch, name, "expected integer")
	}
	return narrowInt32(name, i)
}

// OptInt32 returns an optional int32 field.
func (f Fields) OptInt32(name string) (*int32, error) {
	v, ok := f.get(name)
	if !ok || v.IsNil() {
		return nil, nil
	}
	i, ok := v.Int64()
	if !ok {
		return nil, newDecodeErr(ErrFieldTypeMismatch, name, "expected integer")
	}
	n, err := narrowInt32(name, i)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// RequireInt64 returns a required int64/timestamp-shaped field.
func (f Fields) RequireInt64(name string) (int64, error) {
	v, ok := f.get(name)
	if !ok || v.IsNil() {
		return 0, newDecodeErr(ErrMissingRequiredField, name, "required int field absent")
	}
	i, ok := v.Int64()
	if !ok {
		return 0, newDecodeErr(ErrFieldTypeMismatch, name, "expected integer")
	}
	return i, nil
}

// OptInt64 returns an optional int64 field.
func (f Fields) OptInt64(name string) (*int64, error) {
	v, ok := f.get(name)
	if !ok || v.IsNil() {
		return nil, nil
	}
	i, ok := v.Int64()
	if !ok {
		return nil, newDecodeErr(ErrFieldTypeMismatch, name, "expected integer")
	}
	return &i, nil
}

// RequireBool returns a required bool field.
func (f Fields) RequireBool(name string) (bool, error) {
	v, ok := f.get(name)
	if !ok || v.IsNil() {
		return false, newDecodeErr(ErrMissingRequiredField, name, "required bool field absent")
	}
	b, ok := v.Bool()
	if !ok {
		return false, newDecodeErr(ErrFieldTypeMismatch, name, "expected bool")
	}
	return b, nil
}

// OptBool returns an optional bool field, defaulting to false when absent.
func (f Fields) OptBool(name string) (bool, error) {
	v, ok := f.get(name)
	if !ok || v.IsNil() {
		return false, nil
	}
	b, ok := v.Bool()
	if !ok {
		return false, newDecodeErr(ErrFieldTypeMismatch, name, "expected bool")
	}
	return b, nil
}

func floatOf(v Value) (float64, bool) {
	if f, ok := v.Float64(); ok {
		return f, true
	}
	if i, ok := v.Int64(); ok {
		return float64(i), true
	}
	return 0, false
}

// RequireFloat32 returns a required float field, accepting either f32 or
// f64 wire encoding.
func (f Fields) RequireFloat32(name string) (float32, error) {
	v, ok := f.get(name)
	if !ok || v.IsNil() {
		return 0, newDecodeErr(ErrMissingRequiredField, name, "required float field absent")
	}
	fl, ok := floatOf(v)
	if !ok {
		return 0, newDecodeErr(ErrFieldTypeMismatch, name, "expected float")
	}
	return float32(fl), nil
}

// OptFloat32 returns an optional float field.
func (f Fields) OptFloat32(name string) (*float32, error) {
	v, ok := f.get(name)
	if !ok || v.IsNil() {
		return nil, nil
	}
	fl, ok := floatOf(v)
	if !ok {
		return nil, newDecodeErr(ErrFieldTypeMismatch, name, "expected float")
	}
	out := float32(fl)
	return &out, nil
}

// OptBytes returns an optional binary field.
func (f Fields) OptBytes(name string) ([]byte, error) {
	v, ok := f.get(name)
	if !ok || v.IsNil() {
		return nil, nil
	}
	b, ok := v.Binary()
	if !ok {
		return nil, newDecodeErr(ErrFieldTypeMismatch, name, "expected binary")
	}
	return b, nil
}

// RequireMap returns a required, non-null map field (e.g. ToolUseRequest.parameters).
func (f Fields) RequireMap(name string) (map[string]Value, error) {
	v, ok := f.get(name)
	if !ok || v.IsNil() {
		return nil, newDecodeErr(ErrMissingRequiredField, name, "required map field absent")
	}
	m, ok := v.Map()
	if !ok {
		return nil, newDecodeErr(ErrFieldTypeMismatch, name, "expected map")
	}
	return m, nil
}

// OptMap returns an optional map field.
func (f Fields) OptMap(name string) (map[string]Value, error) {
	v, ok := f.get(name)
	if !ok || v.IsNil() {
		return nil, nil
	}
	m, ok := v.Map()
	if !ok {
		return nil, newDecodeErr(ErrFieldTypeMismatch, name, "expected map")
	}
	return m, nil
}

// OptValue returns the raw Value for a field, for free-form subfields like
// ToolUseResult.result that may legitimately be any supported shape.
func (f Fields) OptValue(name string) Value {
	v, ok := f.get(name)
	if !ok {
		return Nil()
	}
	return v
}

// OptStringList returns an optional list-of-strings field (e.g. Configuration.features).
func (f Fields) OptStringList(name string) ([]string, error) {
	v, ok := f.get(name)
	if !ok || v.IsNil() {
		return nil, nil
	}
	l, ok := v.List()
	if !ok {
		return nil, newDecodeErr(ErrFieldTypeMismatch, name, "expected list")
	}
	out := make([]string, len(l))
	for i, e := range l {
		s, ok := e.String()
		if !ok {
			return nil, newDecodeErr(ErrFieldTypeMismatch, name, "expected list of strings")
		}
		out[i] = s
	}
	return out, nil
}

// RequireEnumStrict decodes a required string enum field where an unknown
// wire value is fatal (ControlVariation.mode is the one spec example).
func RequireEnumStrict[T any](f Fields, name string, fromWire func(string) (T, bool)) (T, error) {
	var zero T
	v, ok := f.get(name)
	if !ok || v.IsNil() {
		return zero, newDecodeErr(ErrMissingRequiredField, name, "required enum field absent")
	}
	s, ok := v.String()
	if !ok {
		return zero, newDecodeErr(ErrFieldTypeMismatch, name, "expected string enum")
	}
	t, ok := fromWire(s)
	if !ok {
		return zero, newDecodeErr(ErrUnknownEnumStrict, name, "unknown enum value: "+s)
	}
	return t, nil
}

// OptEnumLenient decodes an optional string enum field where an unknown or
// absent wire value maps to the declared default.
func OptEnumLenient[T any](f Fields, name string, fromWire func(string) T, deflt T) T {
	v, ok := f.get(name)
	if !ok || v.IsNil() {
		return deflt
	}
	s, ok := v.String()
	if !ok {
		return deflt
	}
	return fromWire(s)
}
