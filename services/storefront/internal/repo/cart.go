package repo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Skotchmaster/telco_shop/services/storefront/internal/domain"
	"github.com/Skotchmaster/telco_shop/services/storefront/internal/models"
)

func withChildren(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Characteristics", func(db *gorm.DB) *gorm.DB { return db.Order("name ASC") }).
		Preload("RelatedParties", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("Places", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") })
}

// AddEntry stores a new entry under the next free entry number of its cart.
func (r *GormRepo) AddEntry(ctx context.Context, entry *models.CartEntry) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var last int
		if err := tx.Model(&models.CartEntry{}).
			Where("cart_id = ?", entry.CartID).
			Select("COALESCE(MAX(entry_number), -1)").
			Scan(&last).Error; err != nil {
			return err
		}
		entry.EntryNumber = last + 1
		if entry.ProcessType == "" {
			entry.ProcessType = string(domain.ProcessAcquisition)
		}
		return tx.Create(entry).Error
	})
}

func (r *GormRepo) ListEntries(ctx context.Context, cartID string) ([]models.CartEntry, error) {
	var entries []models.CartEntry
	if err := withChildren(r.DB.WithContext(ctx)).
		Where("cart_id = ?", cartID).
		Order("entry_number ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *GormRepo) GetEntry(ctx context.Context, cartID string, entryNumber int) (*models.CartEntry, error) {
	var entry models.CartEntry
	if err := withChildren(r.DB.WithContext(ctx)).
		Where("cart_id = ? AND entry_number = ?", cartID, entryNumber).
		First(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *GormRepo) RemoveEntry(ctx context.Context, cartID string, entryNumber int) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var entry models.CartEntry
		if err := tx.Where("cart_id = ? AND entry_number = ?", cartID, entryNumber).First(&entry).Error; err != nil {
			return err
		}
		if err := deleteChildren(tx, entry.ID); err != nil {
			return err
		}
		res := tx.Delete(&entry)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func deleteChildren(tx *gorm.DB, entryID uuid.UUID) error {
	for _, m := range []any{&models.EntryCharacteristic{}, &models.EntryRelatedParty{}, &models.EntryPlace{}} {
		if err := tx.Where("entry_id = ?", entryID).Delete(m).Error; err != nil {
			return err
		}
	}
	return nil
}

// ApplyEntryPatch merges one cart item patch into the stored entry.
// Characteristics are upserted by name, nested related parties replace the
// parties of the same role, and everything the patch leaves out stays as is.
func (r *GormRepo) ApplyEntryPatch(ctx context.Context, cartID string, entryNumber int, patch domain.CartItemPatch, updatedBy string) (*models.CartEntry, error) {
	var entryID uuid.UUID
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var entry models.CartEntry
		if err := tx.Where("cart_id = ? AND entry_number = ?", cartID, entryNumber).First(&entry).Error; err != nil {
			return err
		}
		entryID = entry.ID

		updates := map[string]any{"updated_by": updatedBy}
		if patch.ProcessType != nil {
			updates["process_type"] = string(patch.ProcessType.ID)
		}
		if patch.ContractStartDate != "" {
			updates["contract_start_date"] = patch.ContractStartDate
		}
		if err := tx.Model(&entry).Updates(updates).Error; err != nil {
			return err
		}

		if patch.Product == nil {
			return nil
		}

		for _, ch := range patch.Product.Characteristic {
			row := models.EntryCharacteristic{EntryID: entry.ID, Name: ch.Name, Value: ch.Value}
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "entry_id"}, {Name: "name"}},
				DoUpdates: clause.AssignmentColumns([]string{"value"}),
			}).Create(&row).Error; err != nil {
				return err
			}
		}

		if len(patch.Product.RelatedParty) == 0 {
			return nil
		}
		roles := make([]string, 0, len(patch.Product.RelatedParty))
		parties := make([]models.EntryRelatedParty, 0, len(patch.Product.RelatedParty))
		for _, rp := range patch.Product.RelatedParty {
			roles = append(roles, string(rp.Role))
			parties = append(parties, models.EntryRelatedParty{EntryID: entry.ID, PartyID: rp.ID, Role: string(rp.Role)})
		}
		if err := tx.Where("entry_id = ? AND role IN ?", entry.ID, roles).Delete(&models.EntryRelatedParty{}).Error; err != nil {
			return err
		}
		return tx.Create(&parties).Error
	})
	if err != nil {
		return nil, err
	}

	var entry models.CartEntry
	if err := withChildren(r.DB.WithContext(ctx)).First(&entry, "id = ?", entryID).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
