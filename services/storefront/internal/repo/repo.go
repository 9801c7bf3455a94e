package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/Skotchmaster/telco_shop/services/storefront/internal/models"
)

type GormRepo struct {
	DB *gorm.DB
}

func Migrate(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).AutoMigrate(models.All()...)
}
