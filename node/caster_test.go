package node_test

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"graph-mapper/node"
)

type moreThanError interface {
	error
	More()
}

func empty()                          { panic("not implemented") }
func wrong(int) (string, error, bool) { panic("not implemented") }

func full(int) (string, bool, error)          { panic("not implemented") }
func customError(int) (string, moreThanError) { panic("not implemented") }

func ExampleCaster() {
	desc, err := node.ParseCaster(full)
	fmt.Println(err, desc.PackageAlias, desc.Name, desc.Src.Kind(), desc.Dst.Kind(), desc.HasBool, desc.HasErr)

	desc, err = node.ParseCaster(strconv.Itoa)
	fmt.Println(err, desc.PackageAlias, desc.Name, desc.Src.Kind(), desc.Dst.Kind(), desc.HasBool, desc.HasErr)

	desc, err = node.ParseCaster(strconv.Atoi)
	fmt.Println(err, desc.PackageAlias, desc.Name, desc.Src.Kind(), desc.Dst.Kind(), desc.HasBool, desc.HasErr)

	desc, err = node.ParseCaster(customError)
	fmt.Println(err, desc.PackageAlias, desc.Name, desc.Src.Kind(), desc.Dst.Kind(), desc.HasBool, desc.HasErr)

	_, err = node.ParseCaster(empty)
	fmt.Println(err)

	_, err = node.ParseCaster(wrong)
	fmt.Println(err)

	_, err = node.ParseCaster(42)
	fmt.Println(err)

	// Output:
	// <nil> node_test full int string true true
	// <nil> strconv Itoa int string false false
	// <nil> strconv Atoi string int false true
	// <nil> node_test customError int string false true
	// provided function is not a recognizable caster
	// provided function is not a recognizable caster
	// provided caster is not a function
}

func positive(n int) (uint, bool) {
	if n < 0 {
		return 0, false
	}

	return uint(n), true
}

func TestCaster_Call(t *testing.T) {
	c, err := node.ParseCaster(strconv.Atoi)
	require.NoError(t, err)

	out, err := c.Call(reflect.ValueOf("12"))
	require.NoError(t, err)
	assert.Equal(t, 12, out.Interface())

	_, err = c.Call(reflect.ValueOf("x"))
	var numErr *strconv.NumError
	assert.True(t, errors.As(err, &numErr))
	assert.Contains(t, err.Error(), "strconv.Atoi")

	c, err = node.ParseCaster(positive)
	require.NoError(t, err)

	_, err = c.Call(reflect.ValueOf(-1))
	assert.ErrorIs(t, err, node.ErrCasterRejected)

	out, err = c.Call(reflect.ValueOf(3))
	require.NoError(t, err)
	assert.Equal(t, uint(3), out.Interface())
}

func TestParseCaster_DoublePointer(t *testing.T) {
	_, err := node.ParseCaster(func(**int) int { return 0 })
	assert.ErrorIs(t, err, node.ErrDoublePointer)
}
