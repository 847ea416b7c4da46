// SPDX-License-Identifier: Unlicense OR MIT

package input

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gaudium.org/io/event"
)

func TestTransition(t *testing.T) {
	v, ok := Transition(event.Pressed, event.Released)
	require.True(t, ok)
	assert.Equal(t, event.Pressed, v)

	v, ok = Transition(event.Pressed, event.Pressed)
	assert.False(t, ok)
	assert.Equal(t, event.Released, v, "zero value on no transition")
}

func TestSetApply(t *testing.T) {
	var s Set[int]
	assert.Equal(t, event.Released, s.State(1))
	s.Apply(1, event.Pressed)
	s.Apply(1, event.Pressed)
	assert.True(t, s.Contains(1))
	assert.Len(t, s, 1)
	s.Apply(1, event.Released)
	s.Apply(2, event.Released)
	assert.False(t, s.Contains(1))
	assert.Empty(t, s)
}

func TestSetClone(t *testing.T) {
	var s Set[int]
	s.Apply(1, event.Pressed)
	c := s.Clone()
	s.Apply(2, event.Pressed)
	assert.True(t, c.Contains(1))
	assert.False(t, c.Contains(2))
}

func TestDifference(t *testing.T) {
	var n, o Set[string]
	n.Apply("a", event.Pressed)
	n.Apply("b", event.Pressed)
	o.Apply("b", event.Pressed)
	o.Apply("c", event.Pressed)
	assert.ElementsMatch(t, []Change[string]{
		{Element: "a", State: event.Pressed},
		{Element: "c", State: event.Released},
	}, Difference(n, o))
	assert.Empty(t, Difference(n, n))
}

func TestDifferenceRandom(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for i := 0; i < 200; i++ {
		var n, o Set[int]
		for j := 0; j < 20; j++ {
			n.Apply(r.Intn(32), event.Pressed)
			o.Apply(r.Intn(32), event.Pressed)
		}
		diff := Difference(n, o)
		seen := make(map[int]bool)
		for _, c := range diff {
			require.False(t, seen[c.Element], "element %d reported twice", c.Element)
			seen[c.Element] = true
			require.NotEqual(t, n.Contains(c.Element), o.Contains(c.Element))
			require.Equal(t, n.State(c.Element), c.State)
		}
		for e := 0; e < 32; e++ {
			require.Equal(t, n.Contains(e) != o.Contains(e), seen[e])
		}
	}
}
