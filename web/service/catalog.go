package service

import (
	"errors"
	"strings"

	"shopfront/database"
	"shopfront/database/model"
)

var (
	ErrBadCategory  = errors.New("unknown product category")
	ErrBadPrice     = errors.New("price must be non-negative")
	ErrEmptyMessage = errors.New("broadcast message is empty")
)

// CatalogService persists products and broadcasts.
type CatalogService struct {
	settingService SettingService
}

// ListProducts returns all products. Callers must not rely on ordering.
func (s *CatalogService) ListProducts() ([]model.Product, error) {
	db := database.GetDB()
	var products []model.Product
	if err := db.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (s *CatalogService) CountProducts() (int64, error) {
	db := database.GetDB()
	var count int64
	err := db.Model(model.Product{}).Count(&count).Error
	return count, err
}

// CreateProduct persists a product. The category and price are re-checked
// here as the last line behind the forms layer. An empty image falls back to
// the configured placeholder.
func (s *CatalogService) CreateProduct(name, description string, price float64, category model.Category, image string) (*model.Product, error) {
	if !category.Valid() {
		return nil, ErrBadCategory
	}
	if price < 0 {
		return nil, ErrBadPrice
	}
	if image == "" {
		fallback, err := s.settingService.GetDefaultProductImage()
		if err != nil {
			return nil, err
		}
		image = fallback
	}

	db := database.GetDB()
	product := &model.Product{
		Name:        name,
		Description: description,
		Price:       price,
		Image:       image,
		Category:    category,
	}
	if err := db.Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// ListRecentBroadcasts returns at most n broadcasts, newest first. The id
// tiebreak keeps the order stable for inserts within one timestamp tick.
func (s *CatalogService) ListRecentBroadcasts(n int) ([]model.Broadcast, error) {
	db := database.GetDB()
	var broadcasts []model.Broadcast
	err := db.Order("created_at DESC, id DESC").
		Limit(n).
		Find(&broadcasts).
		Error
	if err != nil {
		return nil, err
	}
	return broadcasts, nil
}

func (s *CatalogService) CountBroadcasts() (int64, error) {
	db := database.GetDB()
	var count int64
	err := db.Model(model.Broadcast{}).Count(&count).Error
	return count, err
}

func (s *CatalogService) CreateBroadcast(message string) (*model.Broadcast, error) {
	if strings.TrimSpace(message) == "" {
		return nil, ErrEmptyMessage
	}
	db := database.GetDB()
	broadcast := &model.Broadcast{Message: message}
	if err := db.Create(broadcast).Error; err != nil {
		return nil, err
	}
	return broadcast, nil
}
