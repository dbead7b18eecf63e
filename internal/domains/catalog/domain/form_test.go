package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductForm_ValidateFillsArabicFromEnglish(t *testing.T) {
	form, err := ProductForm{
		NameEn:        " Rose Oil ",
		DescriptionEn: "Cold pressed",
		SKU:           "OIL-1",
		CategoryID:    2,
		Price:         12.5,
	}.Validate()

	require.NoError(t, err)
	assert.Equal(t, "Rose Oil", form.NameEn)
	assert.Equal(t, "Rose Oil", form.NameAr)
	assert.Equal(t, "Rose Oil", form.Name)
	assert.Equal(t, "Cold pressed", form.DescriptionAr)
}

func TestProductForm_ValidateKeepsArabicWhenGiven(t *testing.T) {
	form, err := ProductForm{NameEn: "Rose Oil", NameAr: "زيت الورد", SKU: "OIL-1", CategoryID: 2}.Validate()

	require.NoError(t, err)
	assert.Equal(t, "زيت الورد", form.NameAr)
}

func TestProductForm_ValidateRejectsInvalidInput(t *testing.T) {
	_, err := ProductForm{SKU: "OIL-1", CategoryID: 2}.Validate()
	assert.ErrorIs(t, err, ErrMissingFields)

	_, err = ProductForm{NameEn: "Rose Oil", SKU: "OIL-1", CategoryID: 2, Price: -1, Stock: -2}.Validate()
	assert.ErrorIs(t, err, ErrNegativePrice)
	assert.ErrorIs(t, err, ErrNegativeStock)
}

func TestValidateImageSize(t *testing.T) {
	assert.NoError(t, ValidateImageSize("a.png", MaxImageSize))

	err := ValidateImageSize("big.png", MaxImageSize+1)
	require.ErrorIs(t, err, ErrImageTooLarge)
	assert.Contains(t, err.Error(), "big.png")
}

func TestFormatFileSize(t *testing.T) {
	assert.Equal(t, "0 Bytes", FormatFileSize(0))
	assert.Equal(t, "512 Bytes", FormatFileSize(512))
	assert.Equal(t, "1.5 KB", FormatFileSize(1536))
	assert.Equal(t, "10 MB", FormatFileSize(MaxImageSize))
	assert.Equal(t, "2048 MB", FormatFileSize(2*1024*1024*1024))
}
