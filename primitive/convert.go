package primitive

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
)

var ErrNotConvertible = errors.New("value is not convertible")

// Converter turns a source scalar value into a value of the target type.
type Converter func(src reflect.Value) (reflect.Value, error)

// Lookup finds an automatic conversion from src to dst restricted to the
// allowed categories. It returns the category that was chosen.
func Lookup(src, dst reflect.Type, allowed CategoryEnum) (Converter, CategoryEnum, bool) {
	from, to := FromReflectType(src), FromReflectType(dst)
	if from == 0 || to == 0 {
		return nil, CategoryNone, false
	}

	member := CategoriesOf(ConversionPair{From: from, To: to})

	for _, c := range orderedCategories {
		if member&c == 0 || allowed&c == 0 {
			continue
		}

		if conv := build(c, src, dst, from, to); conv != nil {
			return conv, c, true
		}
	}

	return nil, CategoryNone, false
}

func build(c CategoryEnum, src, dst reflect.Type, from, to KindEnum) Converter {
	switch c {
	case CategorySafeNumber, CategoryUnsafeNumber, CategoryNanoseconds:
		return func(v reflect.Value) (reflect.Value, error) {
			return v.Convert(dst), nil
		}
	case CategoryTextNumber:
		if to == KindString {
			return formatNumber(from, dst)
		}
		return parseNumber(to, dst)
	case CategoryNumericBool:
		if to == KindBool {
			return func(v reflect.Value) (reflect.Value, error) {
				return reflect.ValueOf(!v.IsZero()).Convert(dst), nil
			}
		}
		return func(v reflect.Value) (reflect.Value, error) {
			out := reflect.New(dst).Elem()
			if v.Bool() {
				out.Set(reflect.ValueOf(1).Convert(dst))
			}
			return out, nil
		}
	case CategoryTextualBool:
		if to == KindBool {
			return func(v reflect.Value) (reflect.Value, error) {
				b, err := parseBool(v.String())
				return reflect.ValueOf(b).Convert(dst), err
			}
		}
		return func(v reflect.Value) (reflect.Value, error) {
			return reflect.ValueOf(strconv.FormatBool(v.Bool())).Convert(dst), nil
		}
	case CategoryDatetime:
		if to == KindTime {
			return func(v reflect.Value) (reflect.Value, error) {
				t, err := time.Parse(time.RFC3339Nano, v.String())
				if err != nil {
					return reflect.Value{}, fmt.Errorf("%w: %w", ErrNotConvertible, err)
				}
				return reflect.ValueOf(t), nil
			}
		}
		return func(v reflect.Value) (reflect.Value, error) {
			t := v.Interface().(time.Time)
			return reflect.ValueOf(t.Format(time.RFC3339Nano)).Convert(dst), nil
		}
	case CategoryTimestamp:
		if to == KindTime {
			return func(v reflect.Value) (reflect.Value, error) {
				secs := v.Convert(reflect.TypeOf(int64(0))).Int()
				return reflect.ValueOf(time.Unix(secs, 0).UTC()), nil
			}
		}
		return func(v reflect.Value) (reflect.Value, error) {
			t := v.Interface().(time.Time)
			return reflect.ValueOf(t.Unix()).Convert(dst), nil
		}
	case CategoryDuration:
		if to == KindDuration {
			return func(v reflect.Value) (reflect.Value, error) {
				d, err := time.ParseDuration(v.String())
				if err != nil {
					return reflect.Value{}, fmt.Errorf("%w: %w", ErrNotConvertible, err)
				}
				return reflect.ValueOf(d), nil
			}
		}
		return func(v reflect.Value) (reflect.Value, error) {
			d := time.Duration(v.Int())
			return reflect.ValueOf(d.String()).Convert(dst), nil
		}
	case CategorySeconds:
		if to == KindDuration {
			return func(v reflect.Value) (reflect.Value, error) {
				return reflect.ValueOf(time.Duration(v.Float() * float64(time.Second))), nil
			}
		}
		return func(v reflect.Value) (reflect.Value, error) {
			return reflect.ValueOf(time.Duration(v.Int()).Seconds()).Convert(dst), nil
		}
	case CategoryEnumString:
		// only between the same underlying kind, int enums have no textual form here
		if src.Kind() != dst.Kind() {
			return nil
		}
		return func(v reflect.Value) (reflect.Value, error) {
			return v.Convert(dst), nil
		}
	}

	return nil
}

func formatNumber(from KindEnum, dst reflect.Type) Converter {
	return func(v reflect.Value) (reflect.Value, error) {
		var s string

		switch {
		case from.IsSigned():
			s = strconv.FormatInt(v.Int(), 10)
		case from.IsUnsigned():
			s = strconv.FormatUint(v.Uint(), 10)
		default:
			s = strconv.FormatFloat(v.Float(), 'g', -1, from.Bits())
		}

		return reflect.ValueOf(s).Convert(dst), nil
	}
}

func parseNumber(to KindEnum, dst reflect.Type) Converter {
	return func(v reflect.Value) (reflect.Value, error) {
		out := reflect.New(dst).Elem()
		text := strings.TrimSpace(v.String())

		var err error

		switch {
		case to.IsSigned():
			var n int64
			if n, err = strconv.ParseInt(text, 10, to.Bits()); err == nil {
				out.SetInt(n)
			}
		case to.IsUnsigned():
			var n uint64
			if n, err = strconv.ParseUint(text, 10, to.Bits()); err == nil {
				out.SetUint(n)
			}
		default:
			var f float64
			if f, err = strconv.ParseFloat(text, to.Bits()); err == nil {
				out.SetFloat(f)
			}
		}

		if err != nil {
			return reflect.Value{}, fmt.Errorf("%w: %w", ErrNotConvertible, err)
		}

		return out, nil
	}
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "on", "true", "1", "y":
		return true, nil
	case "no", "off", "false", "0", "n", "":
		return false, nil
	default:
		return false, fmt.Errorf("%w: %q is not a boolean", ErrNotConvertible, s)
	}
}
