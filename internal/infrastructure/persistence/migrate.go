package persistence

import (
	"github.com/warehouse/backend/internal/domain/audit"
	"github.com/warehouse/backend/internal/domain/catalog"
	"github.com/warehouse/backend/internal/domain/identity"
	"github.com/warehouse/backend/internal/domain/inventory"
	"github.com/warehouse/backend/internal/domain/trade"
	"gorm.io/gorm"
)

// AutoMigrate creates or updates the schema for every persisted aggregate
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&identity.Role{},
		&catalog.Product{},
		&trade.Order{},
		&trade.OrderItem{},
		&trade.Purchase{},
		&trade.PurchaseItem{},
		&inventory.CountSession{},
		&inventory.CountItem{},
		&audit.ChangeEntry{},
		&audit.Subscription{},
	)
}
