package service

import (
	"testing"

	"shopfront/database/model"

	"github.com/stretchr/testify/assert"
)

func TestCreateProduct(t *testing.T) {
	setup()
	defer teardown()

	service := CatalogService{}

	product, err := service.CreateProduct("Blue Shirt", "A shirt.", 19.99, model.CategoryMen, "shirt.jpg")
	assert.NoError(t, err)
	assert.Equal(t, "shirt.jpg", product.Image)

	products, err := service.ListProducts()
	assert.NoError(t, err)
	assert.Len(t, products, 1)
}

func TestCreateProductDefaultsImage(t *testing.T) {
	setup()
	defer teardown()

	service := CatalogService{}

	product, err := service.CreateProduct("Cap", "A cap.", 5, model.CategoryAccessories, "")
	assert.NoError(t, err)
	assert.Equal(t, model.DefaultProductImage, product.Image)
}

func TestCreateProductRejectsBadInput(t *testing.T) {
	setup()
	defer teardown()

	service := CatalogService{}

	_, err := service.CreateProduct("Hat", "A hat.", 10, model.Category("hats"), "")
	assert.ErrorIs(t, err, ErrBadCategory)

	_, err = service.CreateProduct("Hat", "A hat.", -1, model.CategoryKids, "")
	assert.ErrorIs(t, err, ErrBadPrice)

	products, err := service.ListProducts()
	assert.NoError(t, err)
	assert.Empty(t, products)
}

func TestListRecentBroadcasts(t *testing.T) {
	setup()
	defer teardown()

	service := CatalogService{}

	for _, msg := range []string{"A", "B", "C", "D", "E"} {
		_, err := service.CreateBroadcast(msg)
		assert.NoError(t, err)
	}

	recent, err := service.ListRecentBroadcasts(3)
	assert.NoError(t, err)
	assert.Len(t, recent, 3)
	assert.Equal(t, "E", recent[0].Message)
	assert.Equal(t, "D", recent[1].Message)
	assert.Equal(t, "C", recent[2].Message)
}

func TestCreateBroadcastEmptyMessage(t *testing.T) {
	setup()
	defer teardown()

	service := CatalogService{}

	_, err := service.CreateBroadcast("   ")
	assert.ErrorIs(t, err, ErrEmptyMessage)

	count, err := service.CountBroadcasts()
	assert.NoError(t, err)
	assert.Zero(t, count)
}
