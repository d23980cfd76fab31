package series

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Kind identifies which variant of Value is populated.
type Kind int

const (
	KindNull Kind = iota
	KindString
	KindInt
	KindFloat
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Value is a single cell of an aggregation row.
type Value struct {
	kind Kind
	s    string
	i    int64
	f    float64
}

// Row is one aggregation result tuple. It may carry fewer than two values.
type Row []Value

func Null() Value { return Value{kind: KindNull} }

func String(s string) Value { return Value{kind: KindString, s: s} }

func Int(i int64) Value { return Value{kind: KindInt, i: i} }

func Float(f float64) Value { return Value{kind: KindFloat, f: f} }

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsNull() bool { return v.kind == KindNull }

// Text renders the value the way it would be printed verbatim.
func (v Value) Text() string {
	switch v.kind {
	case KindString:
		return v.s
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'f', -1, 64)
	default:
		return "null"
	}
}

// FromDriver wraps a value produced by database/sql into a Value. dbType is the
// column's DatabaseTypeName and decides how raw bytes are interpreted: MySQL's
// text protocol and lib/pq's NUMERIC both hand numbers back as []byte.
func FromDriver(src any, dbType string) (Value, error) {
	switch v := src.(type) {
	case nil:
		return Null(), nil
	case int64:
		return Int(v), nil
	case int32:
		return Int(int64(v)), nil
	case int:
		return Int(int64(v)), nil
	case float64:
		return Float(v), nil
	case float32:
		return Float(float64(v)), nil
	case bool:
		if v {
			return String("true"), nil
		}
		return String("false"), nil
	case time.Time:
		return String(v.Format(time.DateOnly)), nil
	case string:
		return parseTyped(v, dbType)
	case []byte:
		return parseTyped(string(v), dbType)
	default:
		return Value{}, fmt.Errorf("%w: unsupported driver value %T", ErrTypeMismatch, src)
	}
}

func parseTyped(raw, dbType string) (Value, error) {
	switch strings.ToUpper(dbType) {
	case "INT", "INT2", "INT4", "INT8", "INTEGER", "BIGINT", "SMALLINT", "TINYINT", "MEDIUMINT",
		"UNSIGNED INT", "UNSIGNED BIGINT", "UNSIGNED SMALLINT", "UNSIGNED TINYINT", "UNSIGNED MEDIUMINT":
		i, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return Value{}, fmt.Errorf("%w: %q is not an integer: %v", ErrTypeMismatch, raw, err)
		}
		return Int(i), nil
	case "NUMERIC", "DECIMAL":
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return Value{}, fmt.Errorf("%w: %q is not a decimal: %v", ErrTypeMismatch, raw, err)
		}
		f, _ := d.Float64()
		return Float(f), nil
	case "FLOAT", "FLOAT4", "FLOAT8", "DOUBLE", "REAL":
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return Value{}, fmt.Errorf("%w: %q is not a float: %v", ErrTypeMismatch, raw, err)
		}
		return Float(f), nil
	default:
		return String(raw), nil
	}
}
