package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Skotchmaster/telco_shop/services/storefront/internal/models"
)

func (r *GormRepo) GetOverride(ctx context.Context, owner, key string) (string, bool, error) {
	var row models.ConsumptionOverride
	err := r.DB.WithContext(ctx).Where("owner_id = ? AND key = ?", owner, key).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return row.Value, true, nil
}

// PutOverride creates the row on first save and overwrites it afterwards.
func (r *GormRepo) PutOverride(ctx context.Context, owner, key, value string) error {
	row := models.ConsumptionOverride{OwnerID: owner, Key: key, Value: value}
	return r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "owner_id"}, {Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&row).Error
}
