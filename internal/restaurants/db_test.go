package restaurants

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/quicklinkhq/quicklink-backend/pkg/config"
	"github.com/quicklinkhq/quicklink-backend/pkg/db"
	"github.com/quicklinkhq/quicklink-backend/pkg/db/models"
)

const foodSchema = `
CREATE TABLE restaurants (
	id uuid PRIMARY KEY,
	seller_id uuid NOT NULL,
	name text NOT NULL,
	description text,
	image text,
	cuisine_type text,
	rating real NOT NULL DEFAULT 0,
	reviews_count integer NOT NULL DEFAULT 0,
	delivery_fee_cents integer NOT NULL DEFAULT 0,
	min_order_cents integer NOT NULL DEFAULT 0,
	estimated_delivery_min integer NOT NULL DEFAULT 30,
	is_open boolean NOT NULL DEFAULT true,
	created_at datetime,
	updated_at datetime
);
CREATE TABLE menu_items (
	id uuid PRIMARY KEY,
	restaurant_id uuid NOT NULL,
	name text NOT NULL,
	description text,
	price_cents integer NOT NULL,
	image text,
	category text NOT NULL,
	modifiers text,
	is_available boolean NOT NULL DEFAULT true,
	created_at datetime,
	updated_at datetime
);
`

func openFoodDB(t *testing.T) *gorm.DB {
	t.Helper()

	client, err := db.New(context.Background(), config.DBConfig{DSN: "file::memory:", Driver: "sqlite"}, nil)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })

	if err := client.DB().Exec(foodSchema).Error; err != nil {
		t.Fatalf("create schema: %v", err)
	}
	return client.DB()
}

type restaurantFixture struct {
	Name    string
	Cuisine string
	Rating  float64
	Closed  bool
}

func mustCreateRestaurant(t *testing.T, tx *gorm.DB, fx restaurantFixture) *models.Restaurant {
	t.Helper()
	restaurant := &models.Restaurant{
		ID:       uuid.New(),
		SellerID: uuid.New(),
		Name:     fx.Name,
		Rating:   fx.Rating,
		IsOpen:   true,
	}
	if fx.Cuisine != "" {
		restaurant.CuisineType = &fx.Cuisine
	}
	if err := tx.Create(restaurant).Error; err != nil {
		t.Fatalf("create restaurant: %v", err)
	}
	if fx.Closed {
		// default:true makes gorm drop a false value on insert
		if err := tx.Model(restaurant).UpdateColumn("is_open", false).Error; err != nil {
			t.Fatalf("close restaurant: %v", err)
		}
	}
	return restaurant
}

func mustCreateMenuItem(t *testing.T, tx *gorm.DB, restaurantID uuid.UUID, name, category string, priceCents int, available bool) *models.MenuItem {
	t.Helper()
	item := &models.MenuItem{
		ID:           uuid.New(),
		RestaurantID: restaurantID,
		Name:         name,
		PriceCents:   priceCents,
		Category:     category,
		IsAvailable:  true,
	}
	if err := tx.Create(item).Error; err != nil {
		t.Fatalf("create menu item: %v", err)
	}
	if !available {
		if err := tx.Model(item).UpdateColumn("is_available", false).Error; err != nil {
			t.Fatalf("hide menu item: %v", err)
		}
	}
	return item
}
