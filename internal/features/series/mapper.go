package series

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// ErrTypeMismatch reports a row value that cannot be read as the declared
// series type. It signals a query/declaration defect, not bad user input.
var ErrTypeMismatch = errors.New("series: type mismatch")

// OtherMonth is the key used for rows without a month.
const OtherMonth = "Other"

// Scalar lists the types a series axis can be declared with.
type Scalar interface {
	string | int64 | float64
}

type DataPoint[K Scalar, V Scalar] struct {
	X *K `json:"x"`
	Y *V `json:"y"`
}

// Series is one chart's worth of labeled pairs.
type Series[K Scalar, V Scalar] struct {
	Label string            `json:"label"`
	Data  []DataPoint[K, V] `json:"data"`
}

// Map turns aggregation rows into a labeled series, one point per row and in
// row order. Missing or null cells stay nil.
func Map[K Scalar, V Scalar](label string, rows []Row) (Series[K, V], error) {
	points := make([]DataPoint[K, V], 0, len(rows))
	for i, row := range rows {
		var point DataPoint[K, V]
		if len(row) > 0 {
			x, err := convert[K](row[0])
			if err != nil {
				return Series[K, V]{}, fmt.Errorf("%s row %d x: %w", label, i, err)
			}
			point.X = x
		}
		if len(row) > 1 {
			y, err := convert[V](row[1])
			if err != nil {
				return Series[K, V]{}, fmt.Errorf("%s row %d y: %w", label, i, err)
			}
			point.Y = y
		}
		points = append(points, point)
	}
	return Series[K, V]{Label: label, Data: points}, nil
}

// MapMonthTrend maps (month ordinal, value) rows. Keys are rendered as short
// English month names and null values become 0.
func MapMonthTrend(label string, rows []Row) (Series[string, float64], error) {
	points := make([]DataPoint[string, float64], 0, len(rows))
	for i, row := range rows {
		key := OtherMonth
		if len(row) > 0 {
			key = MonthName(row[0])
		}

		var y float64
		if len(row) > 1 {
			switch row[1].kind {
			case KindNull:
			case KindInt:
				y = float64(row[1].i)
			case KindFloat:
				y = row[1].f
			default:
				return Series[string, float64]{}, fmt.Errorf("%s row %d y: %w: want number, got %s", label, i, ErrTypeMismatch, row[1].kind)
			}
		}
		points = append(points, DataPoint[string, float64]{X: &key, Y: &y})
	}
	return Series[string, float64]{Label: label, Data: points}, nil
}

// MonthName renders a 1-12 month ordinal as "Jan".."Dec". Null yields
// OtherMonth; anything else is returned as its text form.
func MonthName(v Value) string {
	var n int64
	switch v.kind {
	case KindNull:
		return OtherMonth
	case KindInt:
		n = v.i
	case KindFloat:
		if math.IsNaN(v.f) || math.IsInf(v.f, 0) {
			return v.Text()
		}
		n = int64(v.f)
	default:
		return v.Text()
	}
	if n < 1 || n > 12 {
		return v.Text()
	}
	return time.Month(n).String()[:3]
}

func convert[T Scalar](v Value) (*T, error) {
	if v.kind == KindNull {
		return nil, nil
	}
	var out T
	switch p := any(&out).(type) {
	case *string:
		if v.kind != KindString {
			return nil, mismatch(v, "string")
		}
		*p = v.s
	case *int64:
		if v.kind != KindInt {
			return nil, mismatch(v, "int64")
		}
		*p = v.i
	case *float64:
		if v.kind != KindFloat {
			return nil, mismatch(v, "float64")
		}
		*p = v.f
	}
	return &out, nil
}

func mismatch(v Value, want string) error {
	return fmt.Errorf("%w: want %s, got %s %q", ErrTypeMismatch, want, v.kind, v.Text())
}
