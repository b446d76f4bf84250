package node

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

type matchSource struct {
	OrderID      int64
	CustomerName string `json:"customer"`
	Notes        string
}

type matchTarget struct {
	ID       int64  `map:"OrderID"`
	Customer string `json:"customer"`
	NOTES    string
	Price    int    `map:"Missing"`
	Cents    string `map:"-"`
}

func TestMatchField(t *testing.T) {
	src := reflect.TypeOf(matchSource{})
	dst := reflect.TypeOf(matchTarget{})

	field := func(name string) reflect.StructField {
		f, ok := dst.FieldByName(name)
		if !ok {
			t.Fatalf("no field %s", name)
		}
		return f
	}

	assert.Equal(t, FieldMatch{SrcName: "OrderID", Found: true, By: "tag"}, MatchField(src, field("ID")))
	assert.Equal(t, FieldMatch{SrcName: "CustomerName", Found: true, By: "json"}, MatchField(src, field("Customer")))
	assert.Equal(t, FieldMatch{SrcName: "Notes", Found: true, By: "fold"}, MatchField(src, field("NOTES")))
	assert.False(t, MatchField(src, field("Price")).Found, "tag pointing nowhere and no name match")
	assert.True(t, Ignored(field("Cents")))
}

func TestMatchField_Normalized(t *testing.T) {
	type snake struct {
		Price_Cents int
	}

	type camel struct {
		PriceCents int
	}

	f, _ := reflect.TypeOf(camel{}).FieldByName("PriceCents")
	got := MatchField(reflect.TypeOf(snake{}), f)
	assert.Equal(t, FieldMatch{SrcName: "Price_Cents", Found: true, By: "normalized"}, got)
}

type auditFields struct {
	CreatedBy string
}

type withEmbeds struct {
	auditFields
	*matchSource
	ID   int64
	name string
}

func TestExportedFields(t *testing.T) {
	fields := ExportedFields(reflect.TypeOf(withEmbeds{}))

	names := make([]string, 0, len(fields))
	for _, f := range fields {
		names = append(names, f.Name)
	}

	assert.Equal(t, []string{"CreatedBy", "ID"}, names)
	assert.Equal(t, []int{0, 0}, fields[0].Index)
}
