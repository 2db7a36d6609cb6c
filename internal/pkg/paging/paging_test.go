package paging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestNew(t *testing.T) {
	t.Run("both omitted returns unpaged", func(t *testing.T) {
		p, err := New(nil, nil)
		require.NoError(t, err)
		assert.False(t, p.Paged())
	})

	t.Run("both supplied returns paged window", func(t *testing.T) {
		p, err := New(intPtr(10), intPtr(5))
		require.NoError(t, err)
		assert.True(t, p.Paged())
		assert.Equal(t, uint64(10), p.Offset())
		assert.Equal(t, uint64(5), p.Limit())
	})

	t.Run("only from fails", func(t *testing.T) {
		_, err := New(intPtr(0), nil)
		assert.ErrorIs(t, err, ErrInvalidPagination)
	})

	t.Run("only size fails", func(t *testing.T) {
		_, err := New(nil, intPtr(10))
		assert.ErrorIs(t, err, ErrInvalidPagination)
	})

	t.Run("zero size fails", func(t *testing.T) {
		_, err := New(intPtr(0), intPtr(0))
		assert.ErrorIs(t, err, ErrInvalidPagination)
	})

	t.Run("negative size fails", func(t *testing.T) {
		_, err := New(intPtr(0), intPtr(-1))
		assert.ErrorIs(t, err, ErrInvalidPagination)
	})

	t.Run("negative from fails", func(t *testing.T) {
		_, err := New(intPtr(-1), intPtr(10))
		assert.ErrorIs(t, err, ErrInvalidPagination)
	})
}

func TestBounds(t *testing.T) {
	t.Run("unpaged covers everything", func(t *testing.T) {
		lo, hi := Unpaged().Bounds(6)
		assert.Equal(t, 0, lo)
		assert.Equal(t, 6, hi)
	})

	t.Run("window inside sequence", func(t *testing.T) {
		p, err := New(intPtr(1), intPtr(4))
		require.NoError(t, err)
		lo, hi := p.Bounds(6)
		assert.Equal(t, 1, lo)
		assert.Equal(t, 5, hi)
	})

	t.Run("window past the end is clamped", func(t *testing.T) {
		p, err := New(intPtr(4), intPtr(10))
		require.NoError(t, err)
		lo, hi := p.Bounds(6)
		assert.Equal(t, 4, lo)
		assert.Equal(t, 6, hi)
	})

	t.Run("offset beyond the end yields empty window", func(t *testing.T) {
		p, err := New(intPtr(10), intPtr(5))
		require.NoError(t, err)
		lo, hi := p.Bounds(6)
		assert.Equal(t, lo, hi)
	})
}
