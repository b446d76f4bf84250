package node

import (
	"reflect"
	"strings"

	"graph-mapper/internal/match"
)

// TagName is the struct tag that pins a target property to a source property:
//
//	Customer string `map:"CustomerName"`
const TagName = "map"

// FieldMatch is the source property chosen for a target property.
type FieldMatch struct {
	SrcName string
	Found   bool
	// By names the rule that matched: "tag", "json", "exact", "fold", "normalized".
	By string
}

// MatchField tries, in order: `map:"SrcName"` tag, json tag name, exact
// name, case-insensitive name, normalized identifier ("order_id" ~ "OrderID").
// Only exported source fields are considered.
func MatchField(src reflect.Type, dstField reflect.StructField) FieldMatch {
	fields := ExportedFields(src)

	// 1) map tag
	if tag := dstField.Tag.Get(TagName); tag != "" && tag != "-" {
		for _, sf := range fields {
			if sf.Name == tag {
				return FieldMatch{SrcName: tag, Found: true, By: "tag"}
			}
		}
	}

	// 2) json tag (match by json name)
	if dstJSON := jsonTagName(dstField); dstJSON != "" {
		for _, sf := range fields {
			if jsonTagName(sf) == dstJSON {
				return FieldMatch{SrcName: sf.Name, Found: true, By: "json"}
			}
		}
	}

	// 3) exact name
	for _, sf := range fields {
		if sf.Name == dstField.Name {
			return FieldMatch{SrcName: sf.Name, Found: true, By: "exact"}
		}
	}

	// 4) case-insensitive
	for _, sf := range fields {
		if strings.EqualFold(sf.Name, dstField.Name) {
			return FieldMatch{SrcName: sf.Name, Found: true, By: "fold"}
		}
	}

	// 5) normalized identifier
	norm := match.NormalizeIdent(dstField.Name)
	for _, sf := range fields {
		if match.NormalizeIdent(sf.Name) == norm {
			return FieldMatch{SrcName: sf.Name, Found: true, By: "normalized"}
		}
	}

	return FieldMatch{}
}

// Ignored reports whether the target field opts out with `map:"-"`.
func Ignored(f reflect.StructField) bool {
	return f.Tag.Get(TagName) == "-"
}

// ExportedFields lists the exported properties of struct type t, including
// those promoted from embedded structs held by value. Index holds the full
// path for reflect.Value.FieldByIndex.
func ExportedFields(t reflect.Type) []reflect.StructField {
	visible := reflect.VisibleFields(t)
	out := make([]reflect.StructField, 0, len(visible))

	for _, f := range visible {
		if f.Anonymous || !f.IsExported() || throughPointer(t, f.Index) {
			continue
		}

		out = append(out, f)
	}

	return out
}

// throughPointer reports whether reaching the field at index crosses an
// embedded pointer, which would panic on a nil embed.
func throughPointer(t reflect.Type, index []int) bool {
	for _, i := range index[:len(index)-1] {
		f := t.Field(i)
		if f.Type.Kind() == reflect.Ptr {
			return true
		}

		t = f.Type
	}

	return false
}

func jsonTagName(f reflect.StructField) string {
	tag := f.Tag.Get("json")
	if tag == "" || tag == "-" {
		return ""
	}

	name, _, _ := strings.Cut(tag, ",")

	return name
}
