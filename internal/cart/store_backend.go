package cart

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/quicklinkhq/quicklink-backend/pkg/db/models"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// StoreBackend persists authenticated carts as cart_items rows. Replace
// runs the delete and the bulk insert inside one transaction so a crash
// between the two never leaves a half-written cart behind.
type StoreBackend struct {
	db *gorm.DB
	tx txRunner
}

// NewStoreBackend builds the database-backed cart backend.
func NewStoreBackend(db *gorm.DB, tx txRunner) (*StoreBackend, error) {
	if db == nil {
		return nil, fmt.Errorf("gorm db is required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner is required")
	}
	return &StoreBackend{db: db, tx: tx}, nil
}

// Load returns the identity's rows ordered by insertion time.
func (b *StoreBackend) Load(ctx context.Context, identity Identity) ([]LineItem, error) {
	var rows []models.CartItem
	if err := b.db.WithContext(ctx).
		Where("user_id = ?", identity.UserID).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	items := make([]LineItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, lineItemFromModel(row))
	}
	return items, nil
}

// Replace swaps the identity's rows for the provided list atomically.
func (b *StoreBackend) Replace(ctx context.Context, identity Identity, items []LineItem) error {
	return b.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := tx.WithContext(ctx).
			Where("user_id = ?", identity.UserID).
			Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		rows := make([]models.CartItem, 0, len(items))
		for _, item := range items {
			rows = append(rows, lineItemToModel(identity, item))
		}
		return tx.WithContext(ctx).Create(&rows).Error
	})
}

func lineItemFromModel(row models.CartItem) LineItem {
	return LineItem{
		ID:           row.ID,
		ProductID:    row.ProductID,
		MenuItemID:   row.MenuItemID,
		Name:         row.Name,
		PriceCents:   row.PriceCents,
		Quantity:     row.Quantity,
		Image:        row.Image,
		SellerID:     row.SellerID,
		RestaurantID: row.RestaurantID,
		Modifiers:    row.Modifiers,
		Type:         row.Type,
	}
}

func lineItemToModel(identity Identity, item LineItem) models.CartItem {
	return models.CartItem{
		ID:           item.ID,
		UserID:       identity.UserID,
		ProductID:    item.ProductID,
		MenuItemID:   item.MenuItemID,
		Name:         item.Name,
		PriceCents:   item.PriceCents,
		Quantity:     item.Quantity,
		Image:        item.Image,
		SellerID:     item.SellerID,
		RestaurantID: item.RestaurantID,
		Modifiers:    item.Modifiers,
		Type:         item.Type,
	}
}
