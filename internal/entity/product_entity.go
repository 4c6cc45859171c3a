package entity

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"ai-voiceshop-be/internal/apperr"
	"ai-voiceshop-be/pkg/store"
)

// contract addresses: "0x" marker plus 40 hex characters
var contractAddressPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)

// Product is a catalog item (NFT or token listing). Validated at data entry;
// the retrieval engine treats records as read-only and trusts them.
type Product struct {
	Id              string
	Name            string
	Description     string
	Category        string // "NFT", "Token", ...
	Price           float64
	Currency        string // "MATIC", "ETH", "USDC", ...
	Chain           string // "polygon", "ethereum", ...
	ContractAddress string
	TokenId         string
	Metadata        map[string]interface{}
	Embedding       []float32
	CreatedAt       time.Time
	UpdatedAt       *time.Time
}

// Validate enforces the catalog-entry invariants. Search never re-validates.
func (p *Product) Validate() error {
	if strings.TrimSpace(p.Id) == "" {
		return apperr.New(apperr.KindInvalidInput, "product id is required")
	}
	if strings.TrimSpace(p.Name) == "" {
		return apperr.New(apperr.KindInvalidInput, "product name is required")
	}
	if strings.TrimSpace(p.Description) == "" {
		return apperr.New(apperr.KindInvalidInput, "product description is required")
	}
	if strings.TrimSpace(p.Category) == "" {
		return apperr.New(apperr.KindInvalidInput, "product category is required")
	}
	if p.Price < 0 {
		return apperr.New(apperr.KindInvalidInput, "product price must be non-negative")
	}
	if strings.TrimSpace(p.Currency) == "" {
		return apperr.New(apperr.KindInvalidInput, "product currency is required")
	}
	if strings.TrimSpace(p.Chain) == "" {
		return apperr.New(apperr.KindInvalidInput, "product chain is required")
	}
	if !contractAddressPattern.MatchString(p.ContractAddress) {
		return apperr.New(apperr.KindInvalidInput, fmt.Sprintf("contract address %q must be 0x followed by 40 hex characters", p.ContractAddress))
	}
	return nil
}

// EmbeddingText is the document embedded for vector search.
func (p *Product) EmbeddingText() string {
	return p.Name + " " + p.Description
}

// ToSummary projects the product into the shape the dialogue state keeps.
func (p *Product) ToSummary() store.ProductSummary {
	return store.ProductSummary{
		ID:       p.Id,
		Name:     p.Name,
		Price:    p.Price,
		Currency: p.Currency,
		Chain:    p.Chain,
	}
}
