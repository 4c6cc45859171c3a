package specification

import "gorm.io/gorm"

// ByProductID filters by the catalog's string product id
type ByProductID struct {
	ID string
}

func (s ByProductID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("id = ?", s.ID)
}

// ByCategory filters case-insensitively on category
type ByCategory struct {
	Category string
}

func (s ByCategory) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("LOWER(category) = LOWER(?)", s.Category)
}

// ByChain filters case-insensitively on blockchain network
type ByChain struct {
	Chain string
}

func (s ByChain) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("LOWER(chain) = LOWER(?)", s.Chain)
}

// PriceAtLeast keeps products priced at or above the bound
type PriceAtLeast struct {
	Price float64
}

func (s PriceAtLeast) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("price >= ?", s.Price)
}

// PriceAtMost keeps products priced at or below the bound
type PriceAtMost struct {
	Price float64
}

func (s PriceAtMost) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("price <= ?", s.Price)
}

// WithEmbedding keeps products whose embedding column is populated
type WithEmbedding struct{}

func (s WithEmbedding) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("embedding IS NOT NULL")
}
