package param

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind discriminates the decoded representations a parameter can take.
type Kind uint8

const (
	KindInt32 Kind = iota
	KindFloat64
	KindText
	// KindError marks a record whose type code is not decodable. The
	// record is retained so callers can see it existed.
	KindError
)

// Value is the tagged union holding one decoded parameter.
type Value struct {
	Kind  Kind
	Int   int32
	Float float64
	Text  string
	Err   string
}

func errValue(msg string) Value {
	return Value{Kind: KindError, Err: msg}
}

// String renders the value for logs and tables.
func (v Value) String() string {
	switch v.Kind {
	case KindInt32:
		return strconv.FormatInt(int64(v.Int), 10)
	case KindFloat64:
		return strconv.FormatFloat(v.Float, 'g', -1, 64)
	case KindText:
		return v.Text
	case KindError:
		return "[read error: " + v.Err + "]"
	default:
		return fmt.Sprintf("[invalid kind %d]", v.Kind)
	}
}

// AsFloat returns the value as a float64. Integer values widen; text values
// are parsed, since instruments store some numeric parameters as text.
func (v Value) AsFloat() (float64, bool) {
	switch v.Kind {
	case KindFloat64:
		return v.Float, true
	case KindInt32:
		return float64(v.Int), true
	case KindText:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.Text), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// AsInt returns the value as an int32.
func (v Value) AsInt() (int32, bool) {
	if v.Kind != KindInt32 {
		return 0, false
	}
	return v.Int, true
}

// Equal reports whether two values hold the same decoded content.
func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case KindInt32:
		return v.Int == o.Int
	case KindFloat64:
		return v.Float == o.Float
	case KindText:
		return v.Text == o.Text
	case KindError:
		return v.Err == o.Err
	default:
		return false
	}
}
