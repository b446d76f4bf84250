package plan

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"graph-mapper/node"
	"graph-mapper/primitive"
	"graph-mapper/store"
	"graph-mapper/warehouse"
)

var (
	srcOrder = reflect.TypeOf(store.Order{})
	dstOrder = reflect.TypeOf(warehouse.Order{})
	srcItem  = reflect.TypeOf(store.OrderItem{})
	dstItem  = reflect.TypeOf(warehouse.OrderItem{})
	srcTag   = reflect.TypeOf(store.Tag{})
	dstTag   = reflect.TypeOf(warehouse.Tag{})
)

func orderPair() node.StructPair { return node.StructPair{Src: srcOrder, Dst: dstOrder} }

func graphConfig() *Config {
	cfg := NewConfig()
	cfg.Register(srcOrder, dstOrder, true)

	return cfg
}

func findScalar(rp *ResolvedTypePair, target string) *ResolvedProperty {
	for i := range rp.Scalars {
		if rp.Scalars[i].Target.Name == target {
			return &rp.Scalars[i]
		}
	}

	return nil
}

func findNav(rp *ResolvedTypePair, target string) *ResolvedNavigation {
	for i := range rp.Navigations {
		if rp.Navigations[i].Target.Name == target {
			return &rp.Navigations[i]
		}
	}

	return nil
}

func TestResolverGraph(t *testing.T) {
	plan, err := NewResolver(graphConfig()).Resolve()
	require.NoError(t, err)

	names := make([]string, 0, len(plan.Order))
	for _, key := range plan.Order {
		names = append(names, pairName(key))
	}

	assert.Equal(t, []string{
		"store.Order->warehouse.Order",
		"store.Customer->warehouse.Customer",
		"store.Address->warehouse.Address",
		"store.OrderItem->warehouse.OrderItem",
		"store.Tag->warehouse.Tag",
	}, names)

	order := plan.Lookup(orderPair())
	require.NotNil(t, order)
	assert.Equal(t, ModeUpsert, order.Mode)

	status := findScalar(order, "Status")
	require.NotNil(t, status)
	assert.Equal(t, StrategyConvert, status.Strategy)
	assert.Equal(t, primitive.CategoryEnumString, status.Category)

	assert.Equal(t, StrategyDirectAssign, findScalar(order, "Version").Strategy)
	assert.Contains(t, order.Unmapped, "CreatedAt")
	assert.Contains(t, order.Unmapped, "CustomerID")

	items := findNav(order, "Items")
	require.NotNil(t, items)
	assert.Equal(t, node.ShapeCollection, items.Shape)
	assert.Equal(t, node.StructPair{Src: srcItem, Dst: dstItem}, items.Elem)
	require.NotNil(t, items.BackReference)
	assert.Equal(t, "Order", items.BackReference.Name)
	require.NotNil(t, items.ForeignKey)
	assert.Equal(t, "OrderID", items.ForeignKey.Name)

	customer := findNav(order, "Customer")
	require.NotNil(t, customer)
	assert.Equal(t, node.ShapeReference, customer.Shape)
	require.NotNil(t, customer.OwnerKey)
	assert.Equal(t, "CustomerID", customer.OwnerKey.Name)

	item := plan.Lookup(node.StructPair{Src: srcItem, Dst: dstItem})
	require.NotNil(t, item)

	qty := findScalar(item, "Quantity")
	require.NotNil(t, qty)
	assert.Equal(t, primitive.CategorySafeNumber, qty.Category)

	out, err := qty.Convert(reflect.ValueOf(int32(7)))
	require.NoError(t, err)
	assert.Equal(t, 7, out.Interface())
}

func TestResolverSelfReference(t *testing.T) {
	cfg := NewConfig()
	cfg.Register(reflect.TypeOf(store.Category{}), reflect.TypeOf(warehouse.Category{}), false)

	plan, err := NewResolver(cfg).Resolve()
	require.NoError(t, err)
	require.Len(t, plan.Order, 1)

	rp := plan.Lookup(plan.Order[0])

	children := findNav(rp, "Children")
	require.NotNil(t, children)
	assert.Equal(t, "Parent", children.BackReference.Name)
	assert.Equal(t, "ParentID", children.ForeignKey.Name)

	parent := findNav(rp, "Parent")
	require.NotNil(t, parent)
	assert.Nil(t, parent.BackReference)
	assert.Equal(t, "ParentID", parent.OwnerKey.Name)
}

func TestResolverUnregisteredNavigation(t *testing.T) {
	cfg := NewConfig()
	cfg.Register(srcOrder, dstOrder, false)
	cfg.Register(srcTag, dstTag, false)

	plan, err := NewResolver(cfg).Resolve()
	require.ErrorIs(t, err, ErrUnregisteredMapping)

	var fields []string
	for _, d := range plan.Diagnostics.ByCode(CodeUnregisteredMapping) {
		fields = append(fields, d.FieldPath)
	}

	assert.Equal(t, []string{"Customer", "ShippingAddress", "Items"}, fields)
}

func TestResolverKeyPropertyExcluded(t *testing.T) {
	cfg := graphConfig()
	cfg.Pair(srcOrder, dstOrder).Exclude = []string{"ID"}

	_, err := NewResolver(cfg).Resolve()
	require.ErrorIs(t, err, ErrKeyPropertyExcluded)

	cfg = graphConfig()
	cfg.Type(dstItem).TokenName = "Quantity"
	cfg.Type(dstItem).Exclude = []string{"Quantity"}

	_, err = NewResolver(cfg).Resolve()
	require.ErrorIs(t, err, ErrKeyPropertyExcluded)
}

func TestResolverUselessExclusion(t *testing.T) {
	cfg := graphConfig()
	cfg.Pair(srcOrder, dstOrder).Exclude = []string{"Nots"}

	plan, err := NewResolver(cfg).Resolve()
	require.ErrorIs(t, err, ErrUselessExclusion)

	diags := plan.Diagnostics.ByCode(CodeUselessExclusion)
	require.Len(t, diags, 1)
	assert.Equal(t, []string{"Notes"}, diags[0].Suggestions)

	cfg.Global.ThrowOnRedundant = false

	plan, err = NewResolver(cfg).Resolve()
	require.NoError(t, err)
	require.Len(t, plan.Diagnostics.Warnings, 1)
	assert.Equal(t, CodeUselessExclusion, plan.Diagnostics.Warnings[0].Code)
}

func TestResolverUselessTypeExclusion(t *testing.T) {
	type product struct {
		ID   int64
		Name string
	}

	cfg := graphConfig()
	cfg.Type(reflect.TypeOf(product{})).Exclude = []string{"Name"}

	_, err := NewResolver(cfg).Resolve()
	require.ErrorIs(t, err, ErrUselessExclusion)
}

func TestResolverExclusionDropsProperty(t *testing.T) {
	cfg := graphConfig()
	cfg.Global.Exclude = []string{"Notes"}

	plan, err := NewResolver(cfg).Resolve()
	require.NoError(t, err)
	assert.Nil(t, findScalar(plan.Lookup(orderPair()), "Notes"))
	assert.True(t, plan.Lookup(orderPair()).Excluded.Has("Notes"))
}

func TestResolverCustomMappingConflict(t *testing.T) {
	cfg := graphConfig()
	pc := cfg.Pair(srcOrder, dstOrder)
	pc.Exclude = []string{"Notes"}
	pc.Custom = []CustomMapping{{Property: "Notes", Apply: func(_, _ any) {}}}

	_, err := NewResolver(cfg).Resolve()
	require.ErrorIs(t, err, ErrCustomMappingConflict)
}

func TestResolverCustomMappingReplacesDefault(t *testing.T) {
	cfg := graphConfig()
	cfg.Pair(srcOrder, dstOrder).Custom = []CustomMapping{
		{Property: "Customer", Apply: func(_, _ any) {}},
		{Property: "Notes", Apply: func(_, _ any) {}},
	}

	plan, err := NewResolver(cfg).Resolve()
	require.NoError(t, err)

	order := plan.Lookup(orderPair())
	assert.Nil(t, findNav(order, "Customer"))
	assert.Nil(t, findScalar(order, "Notes"))
	assert.NotContains(t, order.Unmapped, "Customer")
	assert.NotNil(t, findNav(order, "Items"))
}

func TestResolverRedundantConfiguration(t *testing.T) {
	cfg := graphConfig()
	cfg.Pair(srcOrder, dstOrder).PropertyKeep["Notes"] = true

	_, err := NewResolver(cfg).Resolve()
	require.ErrorIs(t, err, ErrRedundantConfiguration)

	cfg = graphConfig()
	cfg.Pair(dstOrder, srcOrder).Mode = ModeInsert

	_, err = NewResolver(cfg).Resolve()
	require.ErrorIs(t, err, ErrRedundantConfiguration)
}

func TestResolverIncompatibleProperty(t *testing.T) {
	type src struct {
		ID    int64
		Price string
	}

	type dst struct {
		ID    int64
		Price int64
	}

	cfg := NewConfig()
	cfg.Register(reflect.TypeOf(src{}), reflect.TypeOf(dst{}), false)

	_, err := NewResolver(cfg).Resolve()
	require.ErrorIs(t, err, ErrIncompatibleProperty)

	cfg.AutoConversions |= primitive.CategoryTextNumber

	_, err = NewResolver(cfg).Resolve()
	require.NoError(t, err)
}

func TestResolverPointerStrategies(t *testing.T) {
	type src struct {
		ID     int64
		Amount *int32
		Code   string
	}

	type dst struct {
		ID     int64
		Amount int64
		Code   *string
	}

	cfg := NewConfig()
	cfg.Register(reflect.TypeOf(src{}), reflect.TypeOf(dst{}), false)

	plan, err := NewResolver(cfg).Resolve()
	require.NoError(t, err)

	rp := plan.Lookup(plan.Order[0])

	amount := findScalar(rp, "Amount")
	assert.Equal(t, StrategyPointerDeref, amount.Strategy)

	out, err := amount.Convert(reflect.ValueOf((*int32)(nil)))
	require.NoError(t, err)
	assert.Equal(t, int64(0), out.Interface())

	code := findScalar(rp, "Code")
	assert.Equal(t, StrategyPointerWrap, code.Strategy)

	out, err = code.Convert(reflect.ValueOf("x"))
	require.NoError(t, err)
	assert.Equal(t, "x", *out.Interface().(*string))
}

func TestResolverNoIdentity(t *testing.T) {
	type keyless struct{ Name string }

	cfg := NewConfig()
	cfg.Register(reflect.TypeOf(keyless{}), reflect.TypeOf(keyless{}), false)

	_, err := NewResolver(cfg).Resolve()
	require.ErrorIs(t, err, ErrInvalidConfiguration)
}

func TestResolverPrecedence(t *testing.T) {
	keep, drop := true, false

	cfg := graphConfig()
	cfg.Global.KeepOnRemoved = false
	cfg.Global.Mode = ModeInsert
	cfg.Type(dstTag).KeepOnRemoved = &keep
	cfg.Type(dstItem).KeepOnRemoved = &keep
	cfg.Type(dstOrder).Mode = ModeUpdate
	cfg.Pair(srcItem, dstItem).Mode = ModeUpsert
	cfg.Pair(srcOrder, dstOrder).PropertyKeep["Items"] = drop

	plan, err := NewResolver(cfg).Resolve()
	require.NoError(t, err)

	order := plan.Lookup(orderPair())
	assert.Equal(t, ModeUpdate, order.Mode)
	assert.True(t, findNav(order, "Tags").KeepOnRemoved, "child target type layer")
	assert.False(t, findNav(order, "Items").KeepOnRemoved, "property override wins")
	assert.False(t, findNav(order, "Customer").KeepOnRemoved, "global")

	assert.Equal(t, ModeUpsert, plan.Lookup(node.StructPair{Src: srcItem, Dst: dstItem}).Mode)
	assert.Equal(t, ModeInsert, plan.Lookup(node.StructPair{Src: srcTag, Dst: dstTag}).Mode)

	cfg.Pair(srcOrder, dstOrder).KeepOnRemoved = &keep

	plan, err = NewResolver(cfg).Resolve()
	require.NoError(t, err)
	assert.True(t, findNav(plan.Lookup(orderPair()), "Customer").KeepOnRemoved, "pair layer")
}

func TestParseMode(t *testing.T) {
	for in, want := range map[string]Mode{
		"":            ModeInherit,
		"upsert":      ModeUpsert,
		"Insert":      ModeInsert,
		"update":      ModeUpdate,
		"memory_only": ModeMemoryOnly,
		"memoryonly":  ModeMemoryOnly,
	} {
		got, err := ParseMode(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseMode("merge")
	require.ErrorIs(t, err, ErrInvalidConfiguration)

	assert.Equal(t, "MemoryOnly", ModeMemoryOnly.String())
	assert.Equal(t, "memory_only", ModeMemoryOnly.ConfigName())
}
