package service

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/recipe-api/backend/internal/models"
)

// AttributeService manages a user's tags or ingredients.
type AttributeService[T models.Attribute] struct {
	db *gorm.DB
}

func NewAttributeService[T models.Attribute](db *gorm.DB) *AttributeService[T] {
	return &AttributeService[T]{db: db}
}

// NewTagService and NewIngredientService are the two concrete services.
func NewTagService(db *gorm.DB) *AttributeService[models.Tag] {
	return NewAttributeService[models.Tag](db)
}

func NewIngredientService(db *gorm.DB) *AttributeService[models.Ingredient] {
	return NewAttributeService[models.Ingredient](db)
}

// List returns the user's items by name descending. With assignedOnly set
// only items linked to at least one recipe are returned.
func (s *AttributeService[T]) List(ctx context.Context, userID uint, assignedOnly bool) ([]T, error) {
	var zero T
	db := s.db.WithContext(ctx)
	query := db.Model(&zero).Where("user_id = ?", userID)
	if assignedOnly {
		sub := db.Table(zero.JoinTable()).Select(zero.JoinColumn())
		query = query.Where("id IN (?)", sub)
	}

	var items []T
	if err := query.Order("name DESC").Order("id DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Get returns the user's item or ErrNotFound.
func (s *AttributeService[T]) Get(ctx context.Context, userID, id uint) (*T, error) {
	var item T
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&item, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &item, nil
}

// Update renames the user's item.
func (s *AttributeService[T]) Update(ctx context.Context, userID, id uint, name string) (*T, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		verr := &ValidationError{}
		verr.Add("name", "this field may not be blank")
		return nil, verr
	}

	item, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(item).Update("name", name).Error; err != nil {
		return nil, fmt.Errorf("failed to rename: %w", err)
	}
	return s.Get(ctx, userID, id)
}

// Delete removes the user's item and unlinks it from every recipe.
func (s *AttributeService[T]) Delete(ctx context.Context, userID, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item T
		if err := tx.Where("user_id = ?", userID).First(&item, id).Error; err != nil {
			return notFound(err)
		}
		unlink := fmt.Sprintf("DELETE FROM %s WHERE %s = ?", item.JoinTable(), item.JoinColumn())
		if err := tx.Exec(unlink, item.AttributeID()).Error; err != nil {
			return err
		}
		return tx.Delete(&item).Error
	})
}
