// Package books stores catalog entries in SQLite.
//
//	var _ catalog.BookStore = (*Repository)(nil)
package books

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/bookshelf/internal/catalog"
	"github.com/mrlokans/bookshelf/internal/entities"
)

const sequenceName = "books"

// Repository handles book persistence.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Insert assigns the next ID from the books sequence and stores the book.
func (r *Repository) Insert(ctx context.Context, book entities.Book) (string, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		seq := entities.IDSequence{Name: sequenceName}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&seq).Error; err != nil {
			return err
		}
		if err := tx.First(&seq, "name = ?", sequenceName).Error; err != nil {
			return err
		}
		seq.Last++
		if err := tx.Save(&seq).Error; err != nil {
			return err
		}

		book.ID = strconv.FormatInt(seq.Last, 10)
		book.Seq = seq.Last
		return tx.Create(&book).Error
	})
	if err != nil {
		return "", translate(err)
	}
	return book.ID, nil
}

func (r *Repository) FindByID(ctx context.Context, id string) (*entities.Book, error) {
	var book entities.Book
	if err := r.db.WithContext(ctx).First(&book, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &book, nil
}

// FindByISBN matches the ISBN exactly, including case.
func (r *Repository) FindByISBN(ctx context.Context, isbn string) (*entities.Book, error) {
	var book entities.Book
	if err := r.db.WithContext(ctx).First(&book, "isbn = ?", isbn).Error; err != nil {
		return nil, translate(err)
	}
	return &book, nil
}

// Replace overwrites the stored book with the same ID, keeping its position.
func (r *Repository) Replace(ctx context.Context, book entities.Book) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing entities.Book
		if err := tx.First(&existing, "id = ?", book.ID).Error; err != nil {
			return err
		}
		book.Seq = existing.Seq
		return tx.Save(&book).Error
	})
	return translate(err)
}

func (r *Repository) DeleteByID(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&entities.Book{}, "id = ?", id)
	if res.Error != nil {
		return false, fmt.Errorf("delete book %s: %w", id, res.Error)
	}
	return res.RowsAffected > 0, nil
}

// All returns every book in insertion order.
func (r *Repository) All(ctx context.Context) ([]entities.Book, error) {
	var books []entities.Book
	if err := r.db.WithContext(ctx).Order("seq ASC").Find(&books).Error; err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	return books, nil
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return catalog.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return catalog.ErrDuplicateKey
	}
	return err
}
