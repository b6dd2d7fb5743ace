package cimrdfs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIndexOrder(t *testing.T) {
	x := NewIndex[int]()
	x.Put("b", 1)
	x.Put("a", 2)
	x.Put("c", 3)
	x.Put("a", 20)

	assert.Equal(t, 3, x.Len())
	assert.Equal(t, []string{"b", "a", "c"}, x.Keys())
	assert.Equal(t, []int{1, 20, 3}, x.Values())

	v, ok := x.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 20, v)

	_, ok = x.Get("missing")
	assert.False(t, ok)
}

func TestIndexNil(t *testing.T) {
	var x *Index[string]
	assert.Equal(t, 0, x.Len())
	assert.Nil(t, x.Keys())
	assert.Nil(t, x.Values())
	_, ok := x.Get("a")
	assert.False(t, ok)

	var zero Index[string]
	zero.Put("k", "v")
	assert.Equal(t, []string{"v"}, zero.Values())
}
