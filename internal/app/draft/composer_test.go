package draft

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComposer_StateTransitions(t *testing.T) {
	c := NewComposer(5)
	assert.Equal(t, StateIdle, c.State())

	c.SelectType(colorType)
	assert.Equal(t, StateTypeSelected, c.State())

	require.NoError(t, c.BeginCreateValue())
	assert.Equal(t, StateCreatingValue, c.State())

	c.CancelCreateValue()
	assert.Equal(t, StateTypeSelected, c.State())

	require.NoError(t, c.BeginCreateValue())
	require.NoError(t, c.CompleteCreateValue(red))
	assert.Equal(t, StateValueSelected, c.State())
	selected, ok := c.Value()
	require.True(t, ok)
	assert.Equal(t, red, selected)

	require.NoError(t, c.Apply(VariantPatch{Price: strPtr("10")}))
	assert.Equal(t, StateReadyToAdd, c.State())

	require.NoError(t, c.Apply(VariantPatch{Price: strPtr("")}))
	assert.Equal(t, StateValueSelected, c.State())
}

func TestComposer_TypeChangeInvalidatesValue(t *testing.T) {
	c := NewComposer(5)
	c.SelectType(colorType)
	require.NoError(t, c.SelectValue(red))
	c.Images().Add(stagedN("v", 2))

	dropped := c.SelectType(sizeType)
	assert.Len(t, dropped, 2)

	_, ok := c.Value()
	assert.False(t, ok)
	assert.Equal(t, StateTypeSelected, c.State())
	assert.Equal(t, 0, c.Images().Len())

	err := c.SelectValue(red)
	assert.ErrorIs(t, err, ErrValidation)
	_, ok = c.Value()
	assert.False(t, ok)

	require.NoError(t, c.SelectValue(small))
}

func TestComposer_RequiresType(t *testing.T) {
	c := NewComposer(5)
	assert.ErrorIs(t, c.SelectValue(red), ErrValidation)
	assert.ErrorIs(t, c.BeginCreateValue(), ErrValidation)
	assert.Equal(t, StateIdle, c.State())
}

func TestComposer_CommitValidation(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(c *Composer)
		field   string
		message string
	}{
		{
			name:    "missing type",
			setup:   func(c *Composer) {},
			field:   "type",
			message: "Please select a variant type!",
		},
		{
			name:    "missing value",
			setup:   func(c *Composer) { c.SelectType(colorType) },
			field:   "value",
			message: "Please select or create a variant value!",
		},
		{
			name: "still creating",
			setup: func(c *Composer) {
				c.SelectType(colorType)
				_ = c.SelectValue(red)
				_ = c.BeginCreateValue()
				_ = c.Apply(VariantPatch{Price: strPtr("5")})
			},
			field:   "value",
			message: "Please select or create a variant value!",
		},
		{
			name: "missing price",
			setup: func(c *Composer) {
				c.SelectType(colorType)
				_ = c.SelectValue(red)
			},
			field:   "price",
			message: "Price is required!",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := New(5)
			_, _ = d.SetVariantMode(true)
			c := NewComposer(5)
			tt.setup(c)
			before := c.State()

			_, err := c.Commit(d)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
			assert.Equal(t, tt.message, verr.Message)
			assert.Equal(t, before, c.State())
			assert.Empty(t, d.Variants())
		})
	}
}

func TestComposer_CommitRequiresVariantMode(t *testing.T) {
	d := New(5)
	c := NewComposer(5)
	c.SelectType(colorType)
	require.NoError(t, c.SelectValue(red))
	require.NoError(t, c.Apply(VariantPatch{Price: strPtr("10")}))

	_, err := c.Commit(d)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, StateReadyToAdd, c.State())
}

func TestComposer_CommitKeepsTypeAndResetsFields(t *testing.T) {
	d := New(5)
	_, _ = d.SetVariantMode(true)
	c := NewComposer(5)
	c.SelectType(colorType)
	require.NoError(t, c.SelectValue(red))
	require.NoError(t, c.Apply(VariantPatch{Price: strPtr("100"), OfferPrice: strPtr("80"), Stock: strPtr("4"), Weight: strPtr("1kg")}))
	c.Images().Add(stagedN("red", 2))

	v, err := c.Commit(d)
	require.NoError(t, err)

	assert.NotEmpty(t, v.LocalID)
	assert.Equal(t, "t-color", v.AttributeTypeID)
	assert.Equal(t, "v-red", v.AttributeValueID)
	assert.Equal(t, "#ff0000", v.DisplayLabel)
	assert.Equal(t, "#ff0000", v.Name)
	assert.Equal(t, "20.00", v.DiscountPercent().StringFixed(2))
	require.NotNil(t, v.Stock)
	assert.Equal(t, 4, *v.Stock)
	assert.Equal(t, 2, v.Images.Len())

	assert.Equal(t, StateTypeSelected, c.State())
	attrType, ok := c.Type()
	require.True(t, ok)
	assert.Equal(t, colorType, attrType)
	assert.Equal(t, 0, c.Images().Len())
	assert.Equal(t, "", c.View().Price)

	// the next variant gets its own image quota
	accepted, _, warn := c.Images().Add(stagedN("blue", 5))
	assert.Len(t, accepted, 5)
	assert.Nil(t, warn)
	assert.Equal(t, 2, v.Images.Len())
}

func TestComposer_CommitUsesOperatorName(t *testing.T) {
	d := New(5)
	_, _ = d.SetVariantMode(true)
	c := NewComposer(5)
	c.SelectType(sizeType)
	require.NoError(t, c.SelectValue(small))
	require.NoError(t, c.Apply(VariantPatch{Name: strPtr(" Small bottle "), Price: strPtr("5")}))

	v, err := c.Commit(d)
	require.NoError(t, err)
	assert.Equal(t, "Small bottle", v.Name)
	assert.Equal(t, "250", v.DisplayLabel)
}
