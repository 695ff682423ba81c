package feed

import (
	"bytes"
	"math"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
)

var nullLiteral = []byte("null")

// jsonAPI copies decoded strings so records never alias a pooled read buffer.
var jsonAPI = sonic.ConfigStd

// OptInt is an integer field that may be absent or null in the feed.
// Numeric strings ("12") and floats with no fraction are accepted; any other
// shape decodes as absent instead of failing the whole payload.
type OptInt struct {
	Value int64
	Valid bool
}

// IntOf returns a present OptInt.
func IntOf(v int64) OptInt {
	return OptInt{Value: v, Valid: true}
}

func (o *OptInt) UnmarshalJSON(data []byte) error {
	*o = OptInt{}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, nullLiteral) {
		return nil
	}

	raw := string(trimmed)
	switch trimmed[0] {
	case '"':
		var s string
		if err := jsonAPI.UnmarshalFromString(raw, &s); err != nil {
			return nil
		}
		raw = strings.TrimSpace(s)
	case 't':
		if raw == "true" {
			*o = IntOf(1)
		}
		return nil
	case 'f':
		if raw == "false" {
			*o = IntOf(0)
		}
		return nil
	}
	if raw == "" {
		return nil
	}

	if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
		*o = IntOf(v)
		return nil
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil && f == math.Trunc(f) && !math.IsInf(f, 0) {
		*o = IntOf(int64(f))
	}
	return nil
}

func (o OptInt) MarshalJSON() ([]byte, error) {
	if !o.Valid {
		return nullLiteral, nil
	}
	return strconv.AppendInt(nil, o.Value, 10), nil
}

// OrZero returns the value, or 0 when absent.
func (o OptInt) OrZero() int64 {
	if !o.Valid {
		return 0
	}
	return o.Value
}

// Ptr returns nil when absent.
func (o OptInt) Ptr() *int64 {
	if !o.Valid {
		return nil
	}
	v := o.Value
	return &v
}

// NonZeroPtr returns nil when absent or zero. Used for optional references
// where the feed writes 0 for "none".
func (o OptInt) NonZeroPtr() *int64 {
	if !o.Valid || o.Value == 0 {
		return nil
	}
	return o.Ptr()
}

// OptString is a text field that may be absent or null. Numbers and booleans
// are kept in their literal JSON form.
type OptString struct {
	Value string
	Valid bool
}

// StringOf returns a present OptString.
func StringOf(v string) OptString {
	return OptString{Value: v, Valid: true}
}

func (o *OptString) UnmarshalJSON(data []byte) error {
	*o = OptString{}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, nullLiteral) {
		return nil
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := jsonAPI.Unmarshal(trimmed, &s); err != nil {
			return nil
		}
		*o = StringOf(s)
	case '{', '[':
	default:
		*o = StringOf(string(trimmed))
	}
	return nil
}

func (o OptString) MarshalJSON() ([]byte, error) {
	if !o.Valid {
		return nullLiteral, nil
	}
	return jsonAPI.Marshal(o.Value)
}

func (o OptString) OrEmpty() string {
	if !o.Valid {
		return ""
	}
	return o.Value
}

func (o OptString) Ptr() *string {
	if !o.Valid {
		return nil
	}
	v := o.Value
	return &v
}

// OptBool is a flag that may be absent or null. Numbers are true when
// non-zero; strings use strconv.ParseBool and otherwise count as true when
// non-empty.
type OptBool struct {
	Value bool
	Valid bool
}

func BoolOf(v bool) OptBool {
	return OptBool{Value: v, Valid: true}
}

func (o *OptBool) UnmarshalJSON(data []byte) error {
	*o = OptBool{}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, nullLiteral) {
		return nil
	}

	raw := string(trimmed)
	switch {
	case raw == "true":
		*o = BoolOf(true)
	case raw == "false":
		*o = BoolOf(false)
	case trimmed[0] == '"':
		var s string
		if err := jsonAPI.UnmarshalFromString(raw, &s); err != nil {
			return nil
		}
		if v, err := strconv.ParseBool(strings.TrimSpace(s)); err == nil {
			*o = BoolOf(v)
			return nil
		}
		*o = BoolOf(s != "")
	case trimmed[0] == '{' || trimmed[0] == '[':
	default:
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			*o = BoolOf(f != 0)
		}
	}
	return nil
}

func (o OptBool) MarshalJSON() ([]byte, error) {
	if !o.Valid {
		return nullLiteral, nil
	}
	return strconv.AppendBool(nil, o.Value), nil
}

// Flag returns 1 for a present true value and 0 otherwise.
func (o OptBool) Flag() int {
	if o.Valid && o.Value {
		return 1
	}
	return 0
}
