package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeClampsValues(t *testing.T) {
	p := Params{}.Normalize()
	assert.Equal(t, DefaultPage, p.Page)
	assert.Equal(t, DefaultLimit, p.Limit)

	p = Params{Page: -3, Limit: 1000}.Normalize()
	assert.Equal(t, DefaultPage, p.Page)
	assert.Equal(t, MaxLimit, p.Limit)
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, Params{Page: 1, Limit: 20}.Offset())
	assert.Equal(t, 5, Params{Page: 2, Limit: 5}.Offset())
	assert.Equal(t, 40, Params{Page: 3, Limit: 20}.Offset())
}

func TestNewMetaRoundsPagesUp(t *testing.T) {
	meta := NewMeta(Params{Page: 2, Limit: 5}, 12)
	assert.Equal(t, 2, meta.CurrentPage)
	assert.Equal(t, 3, meta.TotalPages)
	assert.Equal(t, int64(12), meta.TotalItems)
	assert.Equal(t, 5, meta.ItemsPerPage)

	meta = NewMeta(Params{Page: 1, Limit: 5}, 10)
	assert.Equal(t, 2, meta.TotalPages)

	meta = NewMeta(Params{Page: 1, Limit: 5}, 0)
	assert.Equal(t, 0, meta.TotalPages)
}
