package dto

import (
	"time"

	"ai-voiceshop-be/internal/entity"
)

type UpsertProductRequest struct {
	Id              string                 `json:"id" validate:"required"`
	Name            string                 `json:"name" validate:"required"`
	Description     string                 `json:"description" validate:"required"`
	Category        string                 `json:"category" validate:"required"`
	Price           float64                `json:"price" validate:"gte=0"`
	Currency        string                 `json:"currency" validate:"required"`
	Chain           string                 `json:"chain" validate:"required"`
	ContractAddress string                 `json:"contract_address" validate:"required"`
	TokenId         string                 `json:"token_id"`
	Metadata        map[string]interface{} `json:"metadata"`
}

func (r *UpsertProductRequest) ToEntity() *entity.Product {
	return &entity.Product{
		Id:              r.Id,
		Name:            r.Name,
		Description:     r.Description,
		Category:        r.Category,
		Price:           r.Price,
		Currency:        r.Currency,
		Chain:           r.Chain,
		ContractAddress: r.ContractAddress,
		TokenId:         r.TokenId,
		Metadata:        r.Metadata,
	}
}

type ProductResponse struct {
	Id              string                 `json:"id"`
	Name            string                 `json:"name"`
	Description     string                 `json:"description"`
	Category        string                 `json:"category"`
	Price           float64                `json:"price"`
	Currency        string                 `json:"currency"`
	Chain           string                 `json:"chain"`
	ContractAddress string                 `json:"contract_address"`
	TokenId         string                 `json:"token_id,omitempty"`
	Metadata        map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt       time.Time              `json:"created_at"`
}

func NewProductResponse(p *entity.Product) *ProductResponse {
	return &ProductResponse{
		Id:              p.Id,
		Name:            p.Name,
		Description:     p.Description,
		Category:        p.Category,
		Price:           p.Price,
		Currency:        p.Currency,
		Chain:           p.Chain,
		ContractAddress: p.ContractAddress,
		TokenId:         p.TokenId,
		Metadata:        p.Metadata,
		CreatedAt:       p.CreatedAt,
	}
}

func NewProductResponses(products []entity.Product) []*ProductResponse {
	out := make([]*ProductResponse, len(products))
	for i := range products {
		out[i] = NewProductResponse(&products[i])
	}
	return out
}

// PublishEmbedProductMessage rides the in-process queue to the embedding worker.
type PublishEmbedProductMessage struct {
	ProductId string `json:"product_id"`
}
