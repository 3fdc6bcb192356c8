package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDefaults(t *testing.T) {
	page, limit := Normalize(0, 0)
	assert.Equal(t, DefaultPage, page)
	assert.Equal(t, DefaultLimit, limit)

	page, limit = Normalize(-3, -1)
	assert.Equal(t, DefaultPage, page)
	assert.Equal(t, DefaultLimit, limit)
}

func TestNormalizeKeepsValidValues(t *testing.T) {
	page, limit := Normalize(4, 25)
	assert.Equal(t, 4, page)
	assert.Equal(t, 25, limit)
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, Offset(1, 10))
	assert.Equal(t, 10, Offset(2, 10))
	assert.Equal(t, 45, Offset(4, 15))
}

func TestNewMeta(t *testing.T) {
	meta := NewMeta(2, 10, 35)

	assert.Equal(t, 2, meta.Page)
	assert.Equal(t, 10, meta.Limit)
	assert.Equal(t, int64(35), meta.Total)
	assert.Equal(t, 4, meta.TotalPages)
	assert.True(t, meta.HasNext)
	assert.True(t, meta.HasPrev)
}

func TestNewMetaFirstAndLastPage(t *testing.T) {
	first := NewMeta(1, 10, 30)
	assert.True(t, first.HasNext)
	assert.False(t, first.HasPrev)

	last := NewMeta(3, 10, 30)
	assert.False(t, last.HasNext)
	assert.True(t, last.HasPrev)
	assert.Equal(t, 3, last.TotalPages)
}

func TestNewMetaEmptyResult(t *testing.T) {
	meta := NewMeta(1, 10, 0)

	assert.Equal(t, 0, meta.TotalPages)
	assert.False(t, meta.HasNext)
	assert.False(t, meta.HasPrev)
}
