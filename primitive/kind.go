package primitive

import (
	"reflect"
	"strconv"
	"time"
)

//go:generate go tool stringer -type=KindEnum -output=kind_string.go

// KindEnum classifies scalar property types for automatic conversion.
type KindEnum int

const (
	_ KindEnum = iota // skip zero value, use it as a default (invalid) value for KindEnum

	KindInt
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindUint
	KindUint8
	KindUint16
	KindUint32
	KindUint64
	KindFloat32
	KindFloat64
	KindBool
	KindString
	KindTime
	KindDuration
	KindPrimitiveEnum // named type over an integer or string

	// KindTotal is a constant that represents the total number of kinds defined
	KindTotal = int(iota)
)

func (k KindEnum) IsNumber() bool {
	return k.IsInteger() || k.IsFloat()
}

func (k KindEnum) IsInteger() bool {
	return k.IsSigned() || k.IsUnsigned()
}

func (k KindEnum) IsFloat() bool {
	return k == KindFloat32 || k == KindFloat64
}

func (k KindEnum) IsSigned() bool {
	switch k {
	default:
		return false
	case KindInt, KindInt8, KindInt16, KindInt32, KindInt64:
		return true
	}
}

func (k KindEnum) IsUnsigned() bool {
	switch k {
	default:
		return false
	case KindUint, KindUint8, KindUint16, KindUint32, KindUint64:
		return true
	}
}

// Bits returns the width of a numeric kind, as expected by strconv.
func (k KindEnum) Bits() int {
	switch k {
	default:
		panic("only numeric kinds have meaningful bits amount, but requested for: " + k.String())
	case KindInt, KindUint:
		return strconv.IntSize
	case KindInt8, KindUint8:
		return 8
	case KindInt16, KindUint16:
		return 16
	case KindInt32, KindUint32, KindFloat32:
		return 32
	case KindInt64, KindUint64, KindFloat64:
		return 64
	}
}

var exactKinds = map[reflect.Type]KindEnum{
	reflect.TypeOf(int(0)):           KindInt,
	reflect.TypeOf(int8(0)):          KindInt8,
	reflect.TypeOf(int16(0)):         KindInt16,
	reflect.TypeOf(int32(0)):         KindInt32,
	reflect.TypeOf(int64(0)):         KindInt64,
	reflect.TypeOf(uint(0)):          KindUint,
	reflect.TypeOf(uint8(0)):         KindUint8,
	reflect.TypeOf(uint16(0)):        KindUint16,
	reflect.TypeOf(uint32(0)):        KindUint32,
	reflect.TypeOf(uint64(0)):        KindUint64,
	reflect.TypeOf(float32(0)):       KindFloat32,
	reflect.TypeOf(float64(0)):       KindFloat64,
	reflect.TypeOf(false):            KindBool,
	reflect.TypeOf(""):               KindString,
	reflect.TypeOf(time.Time{}):      KindTime,
	reflect.TypeOf(time.Duration(0)): KindDuration,
}

// FromReflectType returns the kind of rtype, or 0 when rtype is not a
// primitive scalar.
func FromReflectType(rtype reflect.Type) KindEnum {
	if rtype == nil {
		return 0
	}

	if k, ok := exactKinds[rtype]; ok {
		return k
	}

	// check if it's a primitive enum type
	switch rtype.Kind() {
	default:
		return 0
	case reflect.Int, reflect.String:
		return KindPrimitiveEnum
	}
}
