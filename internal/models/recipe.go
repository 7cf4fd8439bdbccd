package models

import (
	"time"
)

type Recipe struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
	UserID      uint         `gorm:"not null;index" json:"user_id"`
	User        *User        `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Title       string       `gorm:"size:255;not null" json:"title"`
	TimeMinutes int          `gorm:"not null" json:"time_minutes"`
	Price       Price        `gorm:"type:decimal(5,2);not null" json:"price"`
	Description string       `gorm:"type:text;not null;default:''" json:"description"`
	Link        string       `gorm:"size:255;not null;default:''" json:"link"`
	Image       string       `gorm:"size:255;not null;default:''" json:"image"`
	Tags        []Tag        `gorm:"many2many:recipe_tags;constraint:OnDelete:CASCADE" json:"tags"`
	Ingredients []Ingredient `gorm:"many2many:recipe_ingredients;constraint:OnDelete:CASCADE" json:"ingredients"`
}

func (r Recipe) String() string { return r.Title }

// Tag labels recipes for filtering. Tags belong to a single user.
type Tag struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	UserID uint   `gorm:"not null;index" json:"user_id"`
	User   *User  `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Name   string `gorm:"size:255" json:"name"`
}

func (t Tag) String() string { return t.Name }

// Ingredient is a per-user ingredient that recipes can reference.
type Ingredient struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	UserID uint   `gorm:"not null;index" json:"user_id"`
	User   *User  `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Name   string `gorm:"size:255" json:"name"`
}

func (i Ingredient) String() string { return i.Name }

// Attribute is the set of per-user recipe attributes. Both share the same
// shape and differ only in the join table that links them to recipes.
type Attribute interface {
	Tag | Ingredient
	AttributeID() uint
	AttributeName() string
	JoinTable() string
	JoinColumn() string
}

func (t Tag) AttributeID() uint     { return t.ID }
func (t Tag) AttributeName() string { return t.Name }
func (Tag) JoinTable() string       { return "recipe_tags" }
func (Tag) JoinColumn() string      { return "tag_id" }

func (i Ingredient) AttributeID() uint     { return i.ID }
func (i Ingredient) AttributeName() string { return i.Name }
func (Ingredient) JoinTable() string       { return "recipe_ingredients" }
func (Ingredient) JoinColumn() string      { return "ingredient_id" }

// NewTag and NewIngredient build an unsaved attribute for a user.
func NewTag(userID uint, name string) Tag { return Tag{UserID: userID, Name: name} }

func NewIngredient(userID uint, name string) Ingredient {
	return Ingredient{UserID: userID, Name: name}
}

// All lists every model managed by auto-migration.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Tag{},
		&Ingredient{},
		&Recipe{},
	}
}
