package draft

import (
	"testing"

	"github.com/ikkim/catalog-console/internal/app/model"
	"github.com/ikkim/catalog-console/pkg/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromProduct(t *testing.T) {
	p := &catalog.Product{
		Name:          "Mango Juice",
		Slug:          "mango-juice-1l",
		Price:         "100",
		OfferPrice:    "80",
		Stock:         "12",
		Category:      "c1",
		Brand:         "b1",
		Tags:          []string{"summer", "summer", " "},
		Keywords:      catalog.Keywords{"fresh", "mango"},
		ProductImages: []string{"https://cdn/a.jpg"},
		IsNewArrival:  true,
		Variants: []catalog.ProductVariant{
			{Name: "", Type: "250", Price: "50", OfferPrice: "45", Stock: "3", VariantImages: []string{"https://cdn/v.jpg"}},
			{Name: "Big", Type: "1000", Price: "150"},
		},
	}

	d, err := FromProduct(p, 5)
	require.NoError(t, err)

	assert.True(t, d.IsEdit())
	assert.Equal(t, "mango-juice-1l", d.OriginalSlug())
	assert.True(t, d.SlugOverridden())
	d.SetName("Mango Nectar")
	assert.Equal(t, "mango-juice-1l", d.Slug())

	assert.Equal(t, "20.00", d.Quote().DiscountPercent.StringFixed(2))
	require.NotNil(t, d.Stock)
	assert.Equal(t, 12, *d.Stock)
	assert.Equal(t, []string{"summer"}, d.Tags())
	assert.Equal(t, []string{"fresh", "mango"}, d.Keywords())
	assert.True(t, d.IsVariantMode())
	assert.Zero(t, d.Images().Len(), "base images are dropped when variants exist")
	payload := Encode(d)
	assert.Empty(t, payload.Values("existingImages"))
	assert.Equal(t, []string{"50"}, payload.Values("variants[0][price]"))
	variants := d.Variants()
	require.Len(t, variants, 2)
	assert.NotEmpty(t, variants[0].LocalID)
	assert.NotEqual(t, variants[0].LocalID, variants[1].LocalID)
	assert.Equal(t, "250", variants[0].Name)
	assert.Equal(t, "10.00", variants[0].DiscountPercent().StringFixed(2))
	assert.Equal(t, 1, variants[0].Images.PersistedCount())
	assert.Equal(t, "Big", variants[1].Name)
	assert.Nil(t, variants[1].Stock)
}

func TestFromProduct_BaseImagesWithoutVariants(t *testing.T) {
	d, err := FromProduct(&catalog.Product{Name: "Soap", Slug: "soap", ProductImages: []string{"https://cdn/a.jpg"}}, 5)
	require.NoError(t, err)

	assert.False(t, d.IsVariantMode())
	assert.Equal(t, []model.ImageAsset{model.PersistedImage{Reference: "https://cdn/a.jpg"}}, d.Images().Items())
	assert.Equal(t, []string{"https://cdn/a.jpg"}, Encode(d).Values("existingImages"))
}

func TestFromProduct_BadPrice(t *testing.T) {
	tests := []struct {
		name  string
		price catalog.Text
	}{
		{"garbage", "abc"},
		{"exponent", "1e20000000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromProduct(&catalog.Product{Slug: "x", Price: tt.price}, 5)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}
