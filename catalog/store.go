package catalog

import (
	"context"

	"github.com/TheBeardNerd/SmartCart-sub002/models"
	"gorm.io/gorm"
)

// StoreCatalog serves offers and policies out of the catalog database. It is
// the Source used in production; tests and the harness substitute in-memory
// sources instead.
type StoreCatalog struct {
	db *gorm.DB
}

func NewStoreCatalog(db *gorm.DB) *StoreCatalog {
	return &StoreCatalog{db: db}
}

func (c *StoreCatalog) Name() string { return "catalog-db" }

func (c *StoreCatalog) BulkOffers(ctx context.Context, productIds []string) ([]models.Offer, error) {
	if len(productIds) == 0 {
		return nil, nil
	}
	var offers []models.Offer
	err := c.db.WithContext(ctx).
		Where("product_id IN ?", productIds).
		Order("product_id, store_id").
		Find(&offers).Error
	if err != nil {
		return nil, err
	}
	return offers, nil
}

func (c *StoreCatalog) Policies(ctx context.Context, storeIds []string) (map[string]models.StorePolicy, error) {
	result := map[string]models.StorePolicy{}
	if len(storeIds) == 0 {
		return result, nil
	}
	var rows []models.StorePolicy
	err := c.db.WithContext(ctx).
		Where("store_id IN ?", storeIds).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		result[row.StoreId] = row
	}
	return result, nil
}

// MigrateCatalogTables creates/updates the offers and store_policies tables.
// Called by cmd/catalog-seed, not by the engine.
func MigrateCatalogTables(db *gorm.DB) error {
	return db.AutoMigrate(&models.Offer{}, &models.StorePolicy{})
}
