package plan

import (
	"reflect"

	"graph-mapper/node"
	"graph-mapper/primitive"
)

// selectConversion picks how a src value becomes a dst value. Lookup order:
// registered converter, direct assignment, pointer deref/wrap around any of
// these, then automatic primitive conversions.
func (r *Resolver) selectConversion(src, dst reflect.Type) (ConversionStrategy, primitive.Converter, primitive.CategoryEnum, bool) {
	if conv, ok := r.cfg.Converters[node.StructPair{Src: src, Dst: dst}]; ok {
		return StrategyConverter, conv, primitive.CategoryNone, true
	}

	if src.AssignableTo(dst) {
		return StrategyDirectAssign, nil, primitive.CategoryNone, true
	}

	if src.Kind() == reflect.Ptr && dst.Kind() != reflect.Ptr {
		if _, inner, cat, ok := r.selectConversion(src.Elem(), dst); ok {
			return StrategyPointerDeref, derefConverter(inner, dst), cat, true
		}
	}

	if dst.Kind() == reflect.Ptr {
		if _, inner, cat, ok := r.selectConversion(node.Base(src), dst.Elem()); ok {
			if src.Kind() == reflect.Ptr {
				inner = derefConverter(inner, dst.Elem())
			}

			return StrategyPointerWrap, wrapConverter(inner, src, dst), cat, true
		}
	}

	if conv, cat, ok := primitive.Lookup(src, dst, r.cfg.AutoConversions); ok {
		return StrategyConvert, conv, cat, true
	}

	return StrategyDirectAssign, nil, primitive.CategoryNone, false
}

func derefConverter(inner primitive.Converter, dst reflect.Type) primitive.Converter {
	return func(v reflect.Value) (reflect.Value, error) {
		for v.Kind() == reflect.Ptr {
			if v.IsNil() {
				return reflect.Zero(dst), nil
			}

			v = v.Elem()
		}

		if inner == nil {
			return v, nil
		}

		return inner(v)
	}
}

// wrapConverter yields a nil pointer for a nil pointer source so that an
// absent optional value stays absent.
func wrapConverter(inner primitive.Converter, src, dst reflect.Type) primitive.Converter {
	return func(v reflect.Value) (reflect.Value, error) {
		if src.Kind() == reflect.Ptr && v.IsNil() {
			return reflect.Zero(dst), nil
		}

		if inner != nil {
			var err error
			if v, err = inner(v); err != nil {
				return reflect.Value{}, err
			}
		}

		out := reflect.New(dst.Elem())
		out.Elem().Set(v)

		return out, nil
	}
}
