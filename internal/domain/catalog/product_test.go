package catalog

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct(t *testing.T) {
	t.Run("creates product with prices", func(t *testing.T) {
		p, err := NewProduct("iPhone 15 Pro", "IP15-PRO", decimal.NewFromInt(900), decimal.NewFromInt(1200))
		require.NoError(t, err)
		assert.Equal(t, "iPhone 15 Pro", p.Name)
		assert.True(t, p.SellingPrice.Equal(decimal.NewFromInt(1200)))
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewProduct("  ", "SKU", decimal.Zero, decimal.Zero)
		assert.Error(t, err)
	})

	t.Run("rejects negative prices", func(t *testing.T) {
		_, err := NewProduct("Widget", "W-1", decimal.NewFromInt(-1), decimal.Zero)
		assert.Error(t, err)
	})
}

func TestModelEncoding(t *testing.T) {
	t.Run("round-trips model through description", func(t *testing.T) {
		p, err := NewProduct("Laptop", "L-1", decimal.Zero, decimal.Zero)
		require.NoError(t, err)

		p.SetDescription("XPS 13", "Slim ultrabook")
		assert.Equal(t, "[MODEL: XPS 13] Slim ultrabook", p.Description)
		assert.Equal(t, "XPS 13", p.Model())
		assert.Equal(t, "Slim ultrabook", p.CleanDescription())
	})

	t.Run("description without tag yields N/A", func(t *testing.T) {
		model, clean := DecodeModel("just a plain description")
		assert.Equal(t, "N/A", model)
		assert.Equal(t, "just a plain description", clean)
	})

	t.Run("empty model leaves description untouched", func(t *testing.T) {
		assert.Equal(t, "desc", EncodeModel("", "desc"))
	})
}

func TestColorList(t *testing.T) {
	p, err := NewProduct("Case", "C-1", decimal.Zero, decimal.Zero)
	require.NoError(t, err)

	p.SetColors([]string{"Black", "Silver"})
	assert.Equal(t, []string{"Black", "Silver"}, p.ColorList())

	p.SetColors(nil)
	assert.Nil(t, p.ColorList())
}

func TestDisplayBatch(t *testing.T) {
	productID := uuid.New()
	day := func(offset int) *time.Time {
		d := time.Now().AddDate(0, 0, offset)
		return &d
	}

	t.Run("earliest non-null expiry wins", func(t *testing.T) {
		b1, err := NewBatch(productID, day(30), nil)
		require.NoError(t, err)
		b2, err := NewBatch(productID, day(5), nil)
		require.NoError(t, err)
		b3, err := NewBatch(productID, nil, day(-100))
		require.NoError(t, err)

		best := DisplayBatch([]Batch{*b1, *b2, *b3})
		require.NotNil(t, best)
		assert.Equal(t, b2.ID, best.ID)
	})

	t.Run("falls back to first batch when none expire", func(t *testing.T) {
		b1, err := NewBatch(productID, nil, day(-10))
		require.NoError(t, err)
		b2, err := NewBatch(productID, nil, day(-20))
		require.NoError(t, err)

		best := DisplayBatch([]Batch{*b1, *b2})
		require.NotNil(t, best)
		assert.Equal(t, b1.ID, best.ID)
	})

	t.Run("nil for empty input", func(t *testing.T) {
		assert.Nil(t, DisplayBatch(nil))
	})
}

func TestCategoryMatchesName(t *testing.T) {
	c, err := NewCategory("Electronics", "")
	require.NoError(t, err)

	assert.True(t, c.MatchesName("electronics"))
	assert.True(t, c.MatchesName("ELECTRONICS"))
	assert.False(t, c.MatchesName("Groceries"))
}
