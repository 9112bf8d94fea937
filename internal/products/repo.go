package products

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/quicklinkhq/quicklink-backend/pkg/db/models"
)

// Repository exposes catalog reads over the products and sellers tables.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type summaryRecord struct {
	ID           uuid.UUID
	SellerID     uuid.UUID
	Name         string
	Description  *string
	PriceCents   int
	Stock        int
	Images       pq.StringArray `gorm:"type:text[]"`
	Category     string
	Rating       float64
	ReviewsCount int
	ShopName     string
	CreatedAt    time.Time
}

func (r summaryRecord) toSummary() ProductSummary {
	images := []string(r.Images)
	if images == nil {
		images = []string{}
	}
	return ProductSummary{
		ID:           r.ID,
		SellerID:     r.SellerID,
		Name:         r.Name,
		Description:  r.Description,
		PriceCents:   r.PriceCents,
		Stock:        r.Stock,
		Images:       images,
		Category:     r.Category,
		Rating:       r.Rating,
		ReviewsCount: r.ReviewsCount,
		ShopName:     r.ShopName,
		CreatedAt:    r.CreatedAt,
	}
}

// ListSummaries returns one page of active products matching the filters.
// The page size is fetched with a one-row buffer to detect a next page.
func (r *Repository) ListSummaries(ctx context.Context, input ListInput) (*ListResult, error) {
	qb := r.db.WithContext(ctx).
		Table("products p").
		Select(strings.Join([]string{
			"p.id",
			"p.seller_id",
			"p.name",
			"p.description",
			"p.price_cents",
			"p.stock",
			"p.images",
			"p.category",
			"p.rating",
			"p.reviews_count",
			"p.created_at",
			"s.shop_name",
		}, ", ")).
		Joins("JOIN sellers s ON s.id = p.seller_id").
		Where("p.is_active = ?", true)

	if input.Filters.Category != nil {
		qb = qb.Where("p.category = ?", *input.Filters.Category)
	}
	if search := strings.TrimSpace(input.Filters.Query); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		qb = qb.Where("(LOWER(p.name) LIKE ? OR LOWER(p.description) LIKE ?)", pattern, pattern)
	}

	qb = qb.Order(input.Sort.orderClause()).
		Offset((input.Page - 1) * input.Limit).
		Limit(input.Limit + 1)

	var records []summaryRecord
	if err := qb.Scan(&records).Error; err != nil {
		return nil, err
	}

	hasMore := len(records) > input.Limit
	if hasMore {
		records = records[:input.Limit]
	}

	summaries := make([]ProductSummary, 0, len(records))
	for _, record := range records {
		summaries = append(summaries, record.toSummary())
	}

	return &ListResult{
		Products: summaries,
		Page:     input.Page,
		Limit:    input.Limit,
		HasMore:  hasMore,
	}, nil
}

// GetDetail fetches an active product with its seller profile preloaded.
func (r *Repository) GetDetail(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Preload("Seller").
		First(&product, "id = ? AND is_active = ?", id, true).
		Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}
