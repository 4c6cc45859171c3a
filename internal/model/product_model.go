package model

import (
	"time"

	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

type Product struct {
	Id              string          `gorm:"type:varchar(64);primaryKey"`
	Name            string          `gorm:"type:varchar(255);not null"`
	Description     string          `gorm:"type:text"`
	Category        string          `gorm:"type:varchar(64);index"`
	Price           float64         `gorm:"not null"`
	Currency        string          `gorm:"type:varchar(16)"`
	Chain           string          `gorm:"type:varchar(32);index"`
	ContractAddress string          `gorm:"type:varchar(42)"`
	TokenId         string          `gorm:"type:varchar(128)"`
	Metadata        datatypes.JSON  `gorm:"type:jsonb"`
	Embedding       pgvector.Vector `gorm:"type:vector"` // dimension fixed per deployment by the migration (EMBEDDING_DIM)
	CreatedAt       time.Time       `gorm:"autoCreateTime"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime"`
}

func (Product) TableName() string {
	return "products"
}
