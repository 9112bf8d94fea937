package products

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/quicklinkhq/quicklink-backend/pkg/config"
	"github.com/quicklinkhq/quicklink-backend/pkg/db"
	"github.com/quicklinkhq/quicklink-backend/pkg/db/models"
)

// The catalog tables carry server-side uuid defaults, so the sqlite
// harness creates them by hand and fixtures assign their own ids.
const catalogSchema = `
CREATE TABLE sellers (
	id uuid PRIMARY KEY,
	user_id uuid NOT NULL,
	shop_name text NOT NULL,
	shop_description text,
	shop_image text,
	is_verified boolean NOT NULL DEFAULT false,
	created_at datetime,
	updated_at datetime
);
CREATE TABLE products (
	id uuid PRIMARY KEY,
	seller_id uuid NOT NULL,
	name text NOT NULL,
	description text,
	price_cents integer NOT NULL,
	stock integer NOT NULL DEFAULT 0,
	images text,
	category text NOT NULL,
	sku text,
	rating real NOT NULL DEFAULT 0,
	reviews_count integer NOT NULL DEFAULT 0,
	is_active boolean NOT NULL DEFAULT true,
	created_at datetime,
	updated_at datetime
);
`

func openCatalogDB(t *testing.T) *gorm.DB {
	t.Helper()

	client, err := db.New(context.Background(), config.DBConfig{DSN: "file::memory:", Driver: "sqlite"}, nil)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })

	if err := client.DB().Exec(catalogSchema).Error; err != nil {
		t.Fatalf("create schema: %v", err)
	}
	return client.DB()
}

func mustCreateSeller(t *testing.T, tx *gorm.DB, shopName string) *models.Seller {
	t.Helper()
	seller := &models.Seller{
		ID:       uuid.New(),
		UserID:   uuid.New(),
		ShopName: shopName,
	}
	if err := tx.Create(seller).Error; err != nil {
		t.Fatalf("create seller: %v", err)
	}
	return seller
}

type productFixture struct {
	Name        string
	Description string
	PriceCents  int
	Category    string
	Rating      float64
	Reviews     int
	Inactive    bool
}

func mustCreateProduct(t *testing.T, tx *gorm.DB, sellerID uuid.UUID, fx productFixture) *models.Product {
	t.Helper()
	if fx.Category == "" {
		fx.Category = "general"
	}
	product := &models.Product{
		ID:           uuid.New(),
		SellerID:     sellerID,
		Name:         fx.Name,
		PriceCents:   fx.PriceCents,
		Stock:        10,
		Images:       pq.StringArray{fmt.Sprintf("https://img.example/%s.jpg", uuid.NewString())},
		Category:     fx.Category,
		Rating:       fx.Rating,
		ReviewsCount: fx.Reviews,
		IsActive:     true,
	}
	if fx.Description != "" {
		product.Description = &fx.Description
	}
	if err := tx.Create(product).Error; err != nil {
		t.Fatalf("create product: %v", err)
	}
	if fx.Inactive {
		// default:true makes gorm drop a false value on insert
		if err := tx.Model(product).UpdateColumn("is_active", false).Error; err != nil {
			t.Fatalf("deactivate product: %v", err)
		}
	}
	return product
}
