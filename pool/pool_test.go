package pool

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type item struct {
	Value int
}

func TestPoolResetsOnPut(t *testing.T) {
	allocated := 0
	p := NewPool(
		func() *item { allocated++; return &item{} },
		func(i *item) { i.Value = 0 },
		nil,
	)

	v := p.Get()
	require.Equal(t, 1, allocated)
	v.Value = 42
	p.Put(v, nil)
	require.Zero(t, v.Value)

	require.NotNil(t, p.Get())
}
