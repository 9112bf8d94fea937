package products

import (
	"time"

	"github.com/google/uuid"

	"github.com/quicklinkhq/quicklink-backend/pkg/db/models"
)

// ProductSummary is the browse-grid shape with the seller's shop name joined in.
type ProductSummary struct {
	ID           uuid.UUID `json:"id"`
	SellerID     uuid.UUID `json:"seller_id"`
	Name         string    `json:"name"`
	Description  *string   `json:"description,omitempty"`
	PriceCents   int       `json:"price_cents"`
	Stock        int       `json:"stock"`
	Images       []string  `json:"images"`
	Category     string    `json:"category"`
	Rating       float64   `json:"rating"`
	ReviewsCount int       `json:"reviews_count"`
	ShopName     string    `json:"shop_name"`
	CreatedAt    time.Time `json:"created_at"`
}

// ProductDetail extends the summary with the full seller profile.
type ProductDetail struct {
	ProductSummary
	SKU       *string    `json:"sku,omitempty"`
	UpdatedAt time.Time  `json:"updated_at"`
	Seller    *SellerDTO `json:"seller,omitempty"`
}

// SellerDTO is the public shop profile attached to product reads.
type SellerDTO struct {
	ID              uuid.UUID `json:"id"`
	ShopName        string    `json:"shop_name"`
	ShopDescription *string   `json:"shop_description,omitempty"`
	ShopImage       *string   `json:"shop_image,omitempty"`
	IsVerified      bool      `json:"is_verified"`
}

// ListResult bundles a page of summaries with paging bookkeeping.
type ListResult struct {
	Products []ProductSummary `json:"products"`
	Page     int              `json:"page"`
	Limit    int              `json:"limit"`
	HasMore  bool             `json:"has_more"`
}

func sellerFromModel(s *models.Seller) *SellerDTO {
	if s == nil {
		return nil
	}
	return &SellerDTO{
		ID:              s.ID,
		ShopName:        s.ShopName,
		ShopDescription: s.ShopDescription,
		ShopImage:       s.ShopImage,
		IsVerified:      s.IsVerified,
	}
}

func detailFromModel(p *models.Product) *ProductDetail {
	detail := &ProductDetail{
		ProductSummary: ProductSummary{
			ID:           p.ID,
			SellerID:     p.SellerID,
			Name:         p.Name,
			Description:  p.Description,
			PriceCents:   p.PriceCents,
			Stock:        p.Stock,
			Images:       p.Images,
			Category:     p.Category,
			Rating:       p.Rating,
			ReviewsCount: p.ReviewsCount,
			CreatedAt:    p.CreatedAt,
		},
		SKU:       p.SKU,
		UpdatedAt: p.UpdatedAt,
		Seller:    sellerFromModel(p.Seller),
	}
	if p.Seller != nil {
		detail.ShopName = p.Seller.ShopName
	}
	if detail.Images == nil {
		detail.Images = []string{}
	}
	return detail
}
