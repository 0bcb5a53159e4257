package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginate_MiddlePage(t *testing.T) {
	p := Paginate(5, 2, 2)

	assert.Equal(t, 2, p.Offset)
	assert.Equal(t, 2, p.Limit)
	assert.True(t, p.HasNext)
	assert.True(t, p.HasPrev)
	assert.Equal(t, 3, p.Next)
	assert.Equal(t, 1, p.Prev)
	assert.Equal(t, 3, p.Last)
}

func TestPaginate_LastPage(t *testing.T) {
	p := Paginate(5, 2, 3)

	assert.Equal(t, 4, p.Offset)
	assert.False(t, p.HasNext)
	assert.True(t, p.HasPrev)
	assert.Equal(t, 3, p.Last)
}

func TestPaginate_DefaultsToFirstPage(t *testing.T) {
	for _, requested := range []int{0, -3} {
		p := Paginate(5, 2, requested)
		assert.Equal(t, 1, p.Current)
		assert.Equal(t, 0, p.Offset)
		assert.False(t, p.HasPrev)
		assert.True(t, p.HasNext)
	}
}

func TestPaginate_NoClampingPastLastPage(t *testing.T) {
	// Une page hors bornes n'est pas ramenée à la dernière : fenêtre vide.
	p := Paginate(5, 2, 10)

	assert.Equal(t, 10, p.Current)
	assert.Equal(t, 18, p.Offset)
	assert.False(t, p.HasNext)

	start, end := p.Window(5)
	assert.Equal(t, 5, start)
	assert.Equal(t, 5, end)
}

func TestPaginate_EmptyCatalog(t *testing.T) {
	p := Paginate(0, 2, 1)

	assert.Equal(t, 0, p.Last)
	assert.False(t, p.HasNext)
	assert.False(t, p.HasPrev)

	start, end := p.Window(0)
	assert.Equal(t, 0, start)
	assert.Equal(t, 0, end)
}

func TestPaginate_ExactMultiple(t *testing.T) {
	p := Paginate(6, 2, 3)
	assert.Equal(t, 3, p.Last)
	assert.False(t, p.HasNext)
}

func TestWindow_PartialLastPage(t *testing.T) {
	p := Paginate(5, 2, 3)
	start, end := p.Window(5)
	assert.Equal(t, 4, start)
	assert.Equal(t, 5, end)
}
