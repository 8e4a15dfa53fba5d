// internal/models/meal_test.go
package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGroupsOrder(t *testing.T) {
	want := []Group{GroupFruits, GroupVegetables, GroupGrains, GroupProtein, GroupDairy, GroupOils}
	assert.Equal(t, want, Groups())
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Fruits", GroupFruits.DisplayName())
	assert.Equal(t, "Oils", GroupOils.DisplayName())
}

func TestClamped(t *testing.T) {
	c := Classification{
		Fruits:     -0.5,
		Vegetables: 1.7,
		Grains:     0.25,
		Protein:    0,
		Dairy:      1.0,
		Oils:       0.999,
	}
	got := c.Clamped()

	for _, g := range Groups() {
		v := got.Get(g)
		assert.GreaterOrEqual(t, v, 0.0, "group %s", g)
		assert.LessOrEqual(t, v, 1.0, "group %s", g)
	}
	assert.Equal(t, 0.0, got.Fruits)
	assert.Equal(t, 1.0, got.Vegetables)
	assert.Equal(t, 0.25, got.Grains)
}

func TestAdd(t *testing.T) {
	a := Classification{Fruits: 0.1, Grains: 0.2}
	a.Add(Classification{Fruits: 0.3, Oils: 0.05})

	assert.InDelta(t, 0.4, a.Fruits, 1e-9)
	assert.InDelta(t, 0.2, a.Grains, 1e-9)
	assert.InDelta(t, 0.05, a.Oils, 1e-9)
	assert.Zero(t, a.Dairy)
}

func TestUnderfilled(t *testing.T) {
	all := Classification{Fruits: 1, Vegetables: 1.2, Grains: 1, Protein: 1, Dairy: 1, Oils: 1}
	assert.Empty(t, all.Underfilled())

	partial := Classification{Fruits: 1, Vegetables: 0.3, Grains: 1, Protein: 0.99, Dairy: 1, Oils: 1}
	assert.Equal(t, []Group{GroupVegetables, GroupProtein}, partial.Underfilled())
}

func TestGetSetRoundTrip(t *testing.T) {
	var c Classification
	for i, g := range Groups() {
		c.Set(g, float64(i)/10)
	}
	for i, g := range Groups() {
		assert.Equal(t, float64(i)/10, c.Get(g))
	}
}
