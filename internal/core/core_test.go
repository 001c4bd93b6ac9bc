package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestByteGrid(t *testing.T) {
	g := NewByteGrid(4, 3)
	assert.Len(t, g.Cells(), 12)
	assert.Equal(t, 6, g.Index(2, 1))
	assert.True(t, g.Contains(3, 2))
	assert.False(t, g.Contains(4, 0))
	assert.False(t, g.Contains(0, -1))

	g.Cells()[g.Index(2, 1)] = 7
	g.Clear()
	assert.Equal(t, make([]uint8, 12), g.Cells())

	empty := NewByteGrid(0, 0)
	assert.Equal(t, 1, empty.W)
	assert.Len(t, empty.Cells(), 1)
}

func TestRegisterAndNames(t *testing.T) {
	Register("", func(map[string]string) Sim { return nil })
	Register("zz-nil", nil)
	Register("zz-test", func(map[string]string) Sim { return nil })
	t.Cleanup(func() { delete(sims, "zz-test") })

	names := Names()
	assert.Contains(t, names, "zz-test")
	assert.NotContains(t, names, "")
	assert.NotContains(t, names, "zz-nil")
	assert.IsIncreasing(t, names)
}

func TestParameterSnapshotLookup(t *testing.T) {
	snap := ParameterSnapshot{Groups: []ParameterGroup{
		{Name: "A", Params: []Parameter{{Key: "a", Value: "1"}}},
		{Name: "B", Params: []Parameter{{Key: "b", Value: "2"}}},
	}}
	p, ok := snap.Lookup("b")
	assert.True(t, ok)
	assert.Equal(t, "2", p.Value)
	_, ok = snap.Lookup("c")
	assert.False(t, ok)
}

func TestParameterControlClamp(t *testing.T) {
	ctrl := ParameterControl{Min: 1, Max: 5, HasMin: true, HasMax: true}
	assert.Equal(t, 1.0, ctrl.Clamp(-2))
	assert.Equal(t, 3.0, ctrl.Clamp(3))
	assert.Equal(t, 5.0, ctrl.Clamp(9))

	open := ParameterControl{Min: 1, HasMin: true}
	assert.Equal(t, 100.0, open.Clamp(100))
}
