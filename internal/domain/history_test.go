package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSearchHistory_AddPrepends(t *testing.T) {
	h := SearchHistory{}.Add("go").Add("rust")

	assert.Equal(t, SearchHistory{"rust", "go"}, h)
}

func TestSearchHistory_AddIgnoresBlank(t *testing.T) {
	h := SearchHistory{"go"}

	assert.Equal(t, h, h.Add(""))
	assert.Equal(t, h, h.Add("   "))
}

func TestSearchHistory_AddDuplicateIsRejectedNotMoved(t *testing.T) {
	h := SearchHistory{"rust", "go"}

	assert.Equal(t, SearchHistory{"rust", "go"}, h.Add("go"))

	once := SearchHistory{"go"}.Add("x")
	twice := once.Add("x")
	assert.Equal(t, once, twice)
	assert.Equal(t, "x", twice[0])
}

func TestSearchHistory_AddIsExactMatch(t *testing.T) {
	h := SearchHistory{"Go"}.Add("go")

	assert.Equal(t, SearchHistory{"go", "Go"}, h)
}

func TestSearchHistory_RemoveRestoresPrior(t *testing.T) {
	prior := SearchHistory{"b", "a"}

	assert.Equal(t, prior, prior.Add("c").Remove("c"))
}

func TestSearchHistory_RemoveAbsentIsNoop(t *testing.T) {
	h := SearchHistory{"b", "a"}

	assert.Equal(t, h, h.Remove("z"))
}

func TestSearchHistory_RemoveDoesNotMutateReceiver(t *testing.T) {
	h := SearchHistory{"c", "b", "a"}

	got := h.Remove("b")
	assert.Equal(t, SearchHistory{"c", "a"}, got)
	assert.Equal(t, SearchHistory{"c", "b", "a"}, h)
}

func TestSearchHistory_Clear(t *testing.T) {
	for _, h := range []SearchHistory{nil, {}, {"a"}, {"c", "b", "a"}} {
		assert.Empty(t, h.Clear())
	}
}
