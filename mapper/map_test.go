package mapper_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"graph-mapper/mapper"
	"graph-mapper/store"
	"graph-mapper/warehouse"
)

var orderedAt = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func sampleOrder() *store.Order {
	return &store.Order{
		ID:         5,
		Number:     "SO-5",
		Status:     store.StatusPaid,
		TotalCents: 4200,
		Notes:      "leave at the door",
		Customer:   &store.Customer{ID: 1, Email: "ada@example.com", FullName: "Ada Lovelace", IsActive: true},
		ShippingAddress: &store.Address{
			ID:         3,
			Street:     "12 Analytical Row",
			City:       "London",
			PostalCode: "N1",
		},
		Items: []*store.OrderItem{
			{ID: 10, ProductSKU: "GEAR-1", Quantity: 2, UnitPrice: 1500},
			{ID: 11, ProductSKU: "CARD-9", Quantity: 3, UnitPrice: 400},
		},
		Tags:      []*store.Tag{{ID: 7, Name: "gift"}},
		OrderedAt: orderedAt,
	}
}

func TestMap_Graph(t *testing.T) {
	m := build(t)

	dst, err := mapper.Map[store.Order, warehouse.Order](m, sampleOrder(), nil)
	require.NoError(t, err)

	assert.Equal(t, int64(5), dst.ID)
	assert.Equal(t, warehouse.StatusPaid, dst.Status)
	assert.Equal(t, orderedAt, dst.OrderedAt)
	assert.Equal(t, "leave at the door", dst.Notes)

	require.NotNil(t, dst.Customer)
	assert.Equal(t, "Ada Lovelace", dst.Customer.FullName)
	assert.Equal(t, int64(1), dst.CustomerID)
	assert.Equal(t, int64(3), dst.ShippingAddressID)
	assert.Empty(t, dst.ShippingAddress.Country)

	require.Len(t, dst.Items, 2)
	for _, item := range dst.Items {
		assert.Same(t, dst, item.Order)
		assert.Equal(t, int64(5), item.OrderID)
	}

	assert.Equal(t, 3, dst.Items[1].Quantity)
	require.Len(t, dst.Tags, 1)
	assert.Equal(t, "gift", dst.Tags[0].Name)
}

func TestMap_NilSource(t *testing.T) {
	m := build(t)

	dst := &warehouse.Order{Number: "kept"}
	got, err := mapper.Map[store.Order](m, nil, dst)
	require.NoError(t, err)
	assert.Same(t, dst, got)
	assert.Equal(t, "kept", got.Number)
}

func TestMap_Unregistered(t *testing.T) {
	m := build(t)

	_, err := mapper.Map(m, &store.Category{ID: 1}, &warehouse.Category{})
	require.ErrorIs(t, err, mapper.ErrUnregisteredMapping)

	var ee *mapper.EntityError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, "warehouse.Category at Category: no mapping registered for type pair: store.Category->warehouse.Category", ee.Error())
}

func TestMap_Idempotent(t *testing.T) {
	m := build(t)
	src := sampleOrder()

	first, err := mapper.Map[store.Order, warehouse.Order](m, src, nil)
	require.NoError(t, err)

	second, err := mapper.Map[store.Order, warehouse.Order](m, src, nil)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	again, err := mapper.Map(m, src, first)
	require.NoError(t, err)
	assert.Same(t, first, again)
	assert.Equal(t, second, again)
	assert.Same(t, first.Items[0], again.Items[0])
	assert.Len(t, again.Items, 2)
}

func TestMap_CollectionDiff(t *testing.T) {
	m := build(t)

	dst, err := mapper.Map[store.Order, warehouse.Order](m, sampleOrder(), nil)
	require.NoError(t, err)

	kept := dst.Items[0]

	src := sampleOrder()
	src.Items = []*store.OrderItem{
		{ID: 10, ProductSKU: "GEAR-1", Quantity: 5, UnitPrice: 1500},
		{ProductSKU: "NEW-1", Quantity: 1, UnitPrice: 99},
	}

	dst, err = mapper.Map(m, src, dst)
	require.NoError(t, err)

	require.Len(t, dst.Items, 2)
	assert.Same(t, kept, dst.Items[0])
	assert.Equal(t, 5, dst.Items[0].Quantity)
	assert.Equal(t, "NEW-1", dst.Items[1].ProductSKU)
	assert.Same(t, dst, dst.Items[1].Order)
}

func TestMap_Cycle(t *testing.T) {
	b := mapper.NewBuilder()
	mapper.RegisterGraph[store.Category, warehouse.Category](b)

	m, err := b.Build()
	require.NoError(t, err)

	root := &store.Category{ID: 1, Name: "root"}
	child := &store.Category{ID: 2, Name: "child", Parent: root}
	leaf := &store.Category{ID: 3, Name: "leaf", Parent: child}
	root.Children = []*store.Category{child}
	child.Children = []*store.Category{leaf}

	dst, err := mapper.Map[store.Category, warehouse.Category](m, root, nil)
	require.NoError(t, err)

	require.Len(t, dst.Children, 1)
	mid := dst.Children[0]
	assert.Equal(t, "child", mid.Name)
	assert.Same(t, dst, mid.Parent)
	assert.Equal(t, int64(1), mid.ParentID)

	require.Len(t, mid.Children, 1)
	assert.Same(t, mid, mid.Children[0].Parent)
	assert.Equal(t, int64(2), mid.Children[0].ParentID)
	assert.Nil(t, dst.Parent)
}

func TestMap_SharedInstance(t *testing.T) {
	m := build(t)
	s := m.NewSession()

	gift := &store.Tag{ID: 7, Name: "gift"}

	first := sampleOrder()
	first.Tags = []*store.Tag{gift, {ID: 7, Name: "gift"}}

	second := sampleOrder()
	second.ID, second.Number = 6, "SO-6"
	second.Tags = []*store.Tag{gift}

	a, err := mapper.MapIn[store.Order, warehouse.Order](s, first, nil)
	require.NoError(t, err)

	b, err := mapper.MapIn[store.Order, warehouse.Order](s, second, nil)
	require.NoError(t, err)

	require.Len(t, a.Tags, 1)
	require.Len(t, b.Tags, 1)
	assert.Same(t, a.Tags[0], b.Tags[0])
	assert.Same(t, a.Customer, b.Customer)
	assert.NotSame(t, a, b)
}

func TestMap_ClearedReferenceInSharedSession(t *testing.T) {
	m := build(t)

	withoutCustomer := func(s *mapper.Session, customer *warehouse.Customer) *warehouse.Order {
		t.Helper()

		src := sampleOrder()
		src.ID, src.Number, src.Customer = 6, "SO-6", nil

		dst, err := mapper.MapIn(s, src, &warehouse.Order{ID: 6, Customer: customer, CustomerID: customer.ID})
		require.NoError(t, err)

		return dst
	}

	s := m.NewSession()
	first, err := mapper.MapIn[store.Order, warehouse.Order](s, sampleOrder(), nil)
	require.NoError(t, err)
	require.NotNil(t, first.Customer)

	shared := withoutCustomer(s, first.Customer)
	assert.Nil(t, shared.Customer)
	assert.Zero(t, shared.CustomerID)
	assert.NotNil(t, first.Customer, "other orders keep the customer")

	fresh := withoutCustomer(m.NewSession(), &warehouse.Customer{ID: 1})
	assert.Nil(t, fresh.Customer)
	assert.Zero(t, fresh.CustomerID)
}

func TestMap_BackReferenceSurvives(t *testing.T) {
	m := build(t)

	dst, err := mapper.Map[store.Order, warehouse.Order](m, sampleOrder(), nil)
	require.NoError(t, err)

	dst, err = mapper.Map(m, sampleOrder(), dst)
	require.NoError(t, err)

	for _, item := range dst.Items {
		assert.Same(t, dst, item.Order)
		assert.Equal(t, int64(5), item.OrderID)
	}
}

func TestMap_NewChildrenShareSource(t *testing.T) {
	m := build(t)

	fresh := &store.Tag{Name: "fresh"}
	src := sampleOrder()
	src.Tags = []*store.Tag{fresh, fresh}

	dst, err := mapper.Map[store.Order, warehouse.Order](m, src, nil)
	require.NoError(t, err)
	require.Len(t, dst.Tags, 1)
	assert.Equal(t, "fresh", dst.Tags[0].Name)
}

func TestMap_CustomProperty(t *testing.T) {
	m := build(t, func(b *mapper.Builder) {
		mapper.ConfigureTypePair[store.Order, warehouse.Order](b).
			MapProperty("Notes", func(src *store.Order, dst *warehouse.Order) {
				dst.Notes = strings.ToUpper(src.Notes)
			})
	})

	dst, err := mapper.Map[store.Order, warehouse.Order](m, sampleOrder(), nil)
	require.NoError(t, err)
	assert.Equal(t, "LEAVE AT THE DOOR", dst.Notes)
}

func TestMap_CustomNavigation(t *testing.T) {
	m := build(t, func(b *mapper.Builder) {
		mapper.ConfigureTypePair[store.Order, warehouse.Order](b).
			MapProperty("Customer", func(src *store.Order, dst *warehouse.Order) {
				dst.Customer = &warehouse.Customer{ID: 99, FullName: "custom"}
			})
	})

	dst, err := mapper.Map[store.Order, warehouse.Order](m, sampleOrder(), nil)
	require.NoError(t, err)
	require.NotNil(t, dst.Customer)
	assert.Equal(t, "custom", dst.Customer.FullName)
	assert.Equal(t, int64(99), dst.Customer.ID)
	assert.Len(t, dst.Items, 2)
}

func TestMap_KeepUnmatched(t *testing.T) {
	m := build(t)

	dst, err := mapper.Map[store.Order, warehouse.Order](m, sampleOrder(), nil)
	require.NoError(t, err)

	src := sampleOrder()
	src.Items = src.Items[:1]

	dst, err = mapper.Map(m, src, dst, mapper.WithKeepUnmatched())
	require.NoError(t, err)
	assert.Len(t, dst.Items, 2)

	dst, err = mapper.Map(m, src, dst)
	require.NoError(t, err)
	assert.Len(t, dst.Items, 1)
}
