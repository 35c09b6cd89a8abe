package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/Skotchmaster/biblion/internal/models"
)

type BookPatch struct {
	Price         *float64
	OriginalPrice *float64
	Badge         *string
}

func (r *GormRepo) ListBooks(ctx context.Context) ([]models.Book, error) {
	var books []models.Book
	if err := r.DB.WithContext(ctx).Order("id ASC").Find(&books).Error; err != nil {
		return nil, err
	}
	return books, nil
}

func (r *GormRepo) GetBook(ctx context.Context, id uint) (*models.Book, error) {
	var book models.Book
	if err := r.DB.WithContext(ctx).First(&book, id).Error; err != nil {
		return nil, err
	}
	return &book, nil
}

func (r *GormRepo) PatchBook(ctx context.Context, id uint, p BookPatch) (*models.Book, error) {
	var book models.Book
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&book, id).Error; err != nil {
			return err
		}
		updates := map[string]any{}
		if p.Price != nil {
			updates["price"] = *p.Price
		}
		if p.OriginalPrice != nil {
			updates["original_price"] = *p.OriginalPrice
		}
		if p.Badge != nil {
			updates["badge"] = *p.Badge
		}
		if len(updates) == 0 {
			return nil
		}
		if err := tx.Model(&book).Updates(updates).Error; err != nil {
			return err
		}
		return tx.First(&book, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &book, nil
}
