// Package ratings stores per-book rating aggregates in SQLite.
package ratings

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mrlokans/bookshelf/internal/catalog"
	"github.com/mrlokans/bookshelf/internal/entities"
)

// Repository handles rating persistence.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, rating entities.Rating) error {
	if rating.Values == nil {
		rating.Values = []int{}
	}
	if err := r.db.WithContext(ctx).Create(&rating).Error; err != nil {
		return translate(err)
	}
	return nil
}

// Record appends value to the book's ratings and returns the new average.
func (r *Repository) Record(ctx context.Context, id string, value int) (float64, error) {
	var average float64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rating entities.Rating
		if err := tx.First(&rating, "id = ?", id).Error; err != nil {
			return err
		}
		if err := catalog.ValidateRatingValue(value); err != nil {
			return err
		}
		rating.AddValue(value)
		if err := tx.Save(&rating).Error; err != nil {
			return err
		}
		average = rating.Average
		return nil
	})
	if err != nil {
		return 0, translate(err)
	}
	return average, nil
}

func (r *Repository) Get(ctx context.Context, id string) (*entities.Rating, error) {
	var rating entities.Rating
	if err := r.db.WithContext(ctx).First(&rating, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &rating, nil
}

// List returns all ratings, or only the one with filterID when it is set.
// Sequential numeric IDs sort by length first to keep "10" after "9".
func (r *Repository) List(ctx context.Context, filterID string) ([]entities.Rating, error) {
	query := r.db.WithContext(ctx).Order("length(id) ASC, id ASC")
	if filterID != "" {
		query = query.Where("id = ?", filterID)
	}
	ratings := []entities.Rating{}
	if err := query.Find(&ratings).Error; err != nil {
		return nil, fmt.Errorf("list ratings: %w", err)
	}
	return ratings, nil
}

func (r *Repository) Delete(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&entities.Rating{}, "id = ?", id)
	if res.Error != nil {
		return false, fmt.Errorf("delete rating %s: %w", id, res.Error)
	}
	return res.RowsAffected > 0, nil
}

func translate(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return catalog.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return catalog.ErrDuplicateKey
	}
	return err
}
