package primitive

// CategoryEnum is a bit set of automatic conversion families.
type CategoryEnum int

type ConversionPair struct {
	From, To KindEnum
}

const (
	CategorySafeNumber   CategoryEnum = 1 << iota // int, uint, float without precision loss
	CategoryUnsafeNumber                          // int, uint, float with precision loss
	CategoryTextNumber                            // int, uint, float <-> string: textual number representation
	CategoryNumericBool                           // int <-> bool: 0, 1 representation of boolean values
	CategoryTextualBool                           // string <-> bool: yes, no, on, off, true, false representation of boolean values
	CategoryDatetime                              // string(RFC3339Nano) <-> time.Time: textual date and time representation
	CategoryTimestamp                             // int(Unix seconds) <-> time.Time: Unix timestamp representation
	CategoryDuration                              // string(2h45m) <-> time.Duration: textual duration representation
	CategoryNanoseconds                           // int(nanoseconds) <-> time.Duration: numerical (integer) duration representation
	CategorySeconds                               // float(seconds) <-> time.Duration: numerical (floating-point) duration representation
	CategoryEnumString                            // string <-> enum, enum <-> enum with the same underlying kind

	CategoryAll     = (1 << iota) - 1 //all categories combined
	CategoryNone    = 0               // no categories selected
	CategoryDefault = CategorySafeNumber | CategoryEnumString
)

// orderedCategories fixes the lookup order: the first allowed category a
// pair belongs to decides its conversion.
var orderedCategories = []CategoryEnum{
	CategorySafeNumber,
	CategoryUnsafeNumber,
	CategoryTextNumber,
	CategoryNumericBool,
	CategoryTextualBool,
	CategoryDatetime,
	CategoryTimestamp,
	CategoryDuration,
	CategoryNanoseconds,
	CategorySeconds,
	CategoryEnumString,
}

// CategoriesOf returns every category the pair belongs to.
func CategoriesOf(pair ConversionPair) CategoryEnum {
	var out CategoryEnum

	for _, c := range orderedCategories {
		if belongs(c, pair.From, pair.To) {
			out |= c
		}
	}

	return out
}

func belongs(c CategoryEnum, from, to KindEnum) bool {
	switch c {
	case CategorySafeNumber:
		return from.IsNumber() && to.IsNumber() && isSafeNumber(from, to)
	case CategoryUnsafeNumber:
		return from.IsNumber() && to.IsNumber() && !isSafeNumber(from, to)
	case CategoryTextNumber:
		return from.IsNumber() && to == KindString || from == KindString && to.IsNumber()
	case CategoryNumericBool:
		return from.IsInteger() && to == KindBool || from == KindBool && to.IsInteger()
	case CategoryTextualBool:
		return either(from, to, KindString, KindBool)
	case CategoryDatetime:
		return either(from, to, KindString, KindTime)
	case CategoryTimestamp:
		return from.IsInteger() && to == KindTime || from == KindTime && to.IsInteger()
	case CategoryDuration:
		return either(from, to, KindString, KindDuration)
	case CategoryNanoseconds:
		return from.IsInteger() && from != KindUint64 && to == KindDuration ||
			from == KindDuration && to.IsInteger() && to != KindUint64
	case CategorySeconds:
		return from.IsFloat() && to == KindDuration || from == KindDuration && to.IsFloat()
	case CategoryEnumString:
		return from == KindPrimitiveEnum && (to == KindString || to == KindPrimitiveEnum) ||
			from == KindString && to == KindPrimitiveEnum
	default:
		return false
	}
}

func either(from, to, a, b KindEnum) bool {
	return from == a && to == b || from == b && to == a
}

// isSafeNumber reports whether every value of from is representable in to.
// int and uint are treated as at least 32 and at most 64 bits wide.
func isSafeNumber(from, to KindEnum) bool {
	if from == to {
		return true
	}

	switch {
	case to.IsFloat():
		if from.IsFloat() {
			return from.Bits() <= to.Bits()
		}

		mantissa := 24
		if to == KindFloat64 {
			mantissa = 53
		}

		return maxBits(from) < mantissa
	case from.IsFloat():
		return false
	case from.IsSigned() == to.IsSigned():
		return maxBits(from) <= minBits(to)
	case from.IsUnsigned() && to.IsSigned():
		return maxBits(from) < minBits(to)
	default:
		return false
	}
}

func minBits(k KindEnum) int {
	if k == KindInt || k == KindUint {
		return 32
	}

	return k.Bits()
}

func maxBits(k KindEnum) int {
	if k == KindInt || k == KindUint {
		return 64
	}

	return k.Bits()
}
