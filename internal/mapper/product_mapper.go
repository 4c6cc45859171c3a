package mapper

import (
	"encoding/json"
	"time"

	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"

	"ai-voiceshop-be/internal/entity"
	"ai-voiceshop-be/internal/model"
)

type ProductMapper struct{}

func NewProductMapper() *ProductMapper {
	return &ProductMapper{}
}

func (m *ProductMapper) ToEntity(e *model.Product) *entity.Product {
	if e == nil {
		return nil
	}

	var metadata map[string]interface{}
	if len(e.Metadata) > 0 {
		// Unmarshal failures leave metadata nil; the column is free-form.
		_ = json.Unmarshal(e.Metadata, &metadata)
	}

	var updatedAt *time.Time
	if !e.UpdatedAt.IsZero() {
		t := e.UpdatedAt
		updatedAt = &t
	}

	return &entity.Product{
		Id:              e.Id,
		Name:            e.Name,
		Description:     e.Description,
		Category:        e.Category,
		Price:           e.Price,
		Currency:        e.Currency,
		Chain:           e.Chain,
		ContractAddress: e.ContractAddress,
		TokenId:         e.TokenId,
		Metadata:        metadata,
		Embedding:       e.Embedding.Slice(),
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       updatedAt,
	}
}

func (m *ProductMapper) ToModel(e *entity.Product) *model.Product {
	if e == nil {
		return nil
	}

	var metadata datatypes.JSON
	if e.Metadata != nil {
		if data, err := json.Marshal(e.Metadata); err == nil {
			metadata = data
		}
	}

	out := &model.Product{
		Id:              e.Id,
		Name:            e.Name,
		Description:     e.Description,
		Category:        e.Category,
		Price:           e.Price,
		Currency:        e.Currency,
		Chain:           e.Chain,
		ContractAddress: e.ContractAddress,
		TokenId:         e.TokenId,
		Metadata:        metadata,
		CreatedAt:       e.CreatedAt,
	}
	if e.Embedding != nil {
		out.Embedding = pgvector.NewVector(e.Embedding)
	}
	if e.UpdatedAt != nil {
		out.UpdatedAt = *e.UpdatedAt
	}
	return out
}
