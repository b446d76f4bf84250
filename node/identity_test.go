package node

import (
	"math"
	"reflect"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func ptr[T any](v T) *T { return &v }

func TestKeyOf(t *testing.T) {
	tests := []struct {
		name    string
		value   any
		key     any
		present bool
	}{
		{"zero int", int64(0), nil, false},
		{"int", int64(5), int64(5), true},
		{"int32 widened", int32(5), int64(5), true},
		{"uint matches int", uint(9), int64(9), true},
		{"uint above int64", uint64(math.MaxUint64), uint64(math.MaxUint64), true},
		{"nil pointer", (*int64)(nil), nil, false},
		{"pointer", ptr(int64(3)), int64(3), true},
		{"empty string", "", nil, false},
		{"string", "abc", "abc", true},
		{"nil uuid", uuid.Nil, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, ok := KeyOf(reflect.ValueOf(tt.value))
			assert.Equal(t, tt.present, ok)
			assert.Equal(t, tt.key, key)
		})
	}

	id := uuid.New()
	key, ok := KeyOf(reflect.ValueOf(&id))
	assert.True(t, ok)
	assert.Equal(t, id, key)
}

func TestTokensEqual(t *testing.T) {
	v := func(x any) reflect.Value { return reflect.ValueOf(x) }

	assert.True(t, TokensEqual(v([]byte{1, 2}), v([]byte{1, 2})))
	assert.False(t, TokensEqual(v([]byte{1, 2}), v([]byte{1, 3})))
	assert.False(t, TokensEqual(v([]byte(nil)), v([]byte{1})))
	assert.True(t, TokensEqual(v([]byte(nil)), v([]byte{})))
	assert.True(t, TokensEqual(v(int32(4)), v(int64(4))))
	assert.True(t, TokensEqual(v(ptr(uint64(2))), v(uint64(2))))
	assert.False(t, TokensEqual(v("a"), v("b")))
	assert.False(t, TokensEqual(v(0), v(1)))
	assert.True(t, TokensEqual(v(uint32(7)), v(int(7))))
}

func TestUsableAsKey(t *testing.T) {
	assert.True(t, UsableAsKey(reflect.TypeOf(ptr(int64(0)))))
	assert.True(t, UsableAsKey(reflect.TypeOf(uuid.UUID{})))
	assert.False(t, UsableAsKey(reflect.TypeOf([]byte{})))
}
