package model

import "time"

// Category is the fixed set of product categories.
type Category string

const (
	CategoryMen         Category = "men"
	CategoryWomen       Category = "women"
	CategoryKids        Category = "kids"
	CategoryAccessories Category = "accessories"
)

// Categories returns the allowed product categories.
func Categories() []Category {
	return []Category{CategoryMen, CategoryWomen, CategoryKids, CategoryAccessories}
}

// Valid reports whether c is a member of the fixed category set.
func (c Category) Valid() bool {
	switch c {
	case CategoryMen, CategoryWomen, CategoryKids, CategoryAccessories:
		return true
	}
	return false
}

// DefaultProductImage is the placeholder filename used when no valid image
// was uploaded for a product.
const DefaultProductImage = "default.jpg"

type User struct {
	Id       int    `json:"id" gorm:"primaryKey;autoIncrement"`
	Username string `json:"username" gorm:"uniqueIndex;not null"`
	Email    string `json:"email" gorm:"uniqueIndex;not null"`
	Password string `json:"-" gorm:"not null"` // bcrypt hash, the raw value is never stored
	IsAdmin  bool   `json:"isAdmin" gorm:"default:false"`
}

type Product struct {
	Id          int      `json:"id" form:"id" gorm:"primaryKey;autoIncrement"`
	Name        string   `json:"name" form:"name" gorm:"not null"`
	Description string   `json:"description" form:"description" gorm:"type:text"`
	Price       float64  `json:"price" form:"price" gorm:"not null"`
	Image       string   `json:"image" gorm:"default:'default.jpg'"`
	Category    Category `json:"category" form:"category" gorm:"not null"`
}

type Broadcast struct {
	Id        int       `json:"id" gorm:"primaryKey;autoIncrement"`
	Message   string    `json:"message" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
}

type Setting struct {
	Id    int    `json:"id" form:"id" gorm:"primaryKey;autoIncrement"`
	Key   string `json:"key" form:"key" gorm:"uniqueIndex"`
	Value string `json:"value" form:"value"`
}
