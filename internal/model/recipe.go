package model

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Ingredient is a single recipe ingredient entry.
type Ingredient struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity,omitempty"`
}

// UserRating records one user's rating of a recipe. At most one entry
// per user is kept; re-rating replaces the stored value.
type UserRating struct {
	UserID string `json:"userId"`
	Rating int    `json:"rating"`
}

// Nutrition holds per-recipe nutrition facts.
type Nutrition struct {
	Calories float64 `json:"calories"`
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatG     float64 `json:"fat_g"`
}

// JSONBStringArray is a custom type for handling string arrays in JSONB
type JSONBStringArray []string

// Value implements the driver.Valuer interface
func (a JSONBStringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	return json.Marshal(a)
}

// Scan implements the sql.Scanner interface
func (a *JSONBStringArray) Scan(value interface{}) error {
	return scanJSONB(value, a)
}

// JSONBIntArray stores the flat ratings list in JSONB.
type JSONBIntArray []int

func (a JSONBIntArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	return json.Marshal(a)
}

func (a *JSONBIntArray) Scan(value interface{}) error {
	return scanJSONB(value, a)
}

// JSONBIngredients stores the ordered ingredient list in JSONB.
type JSONBIngredients []Ingredient

func (a JSONBIngredients) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	return json.Marshal(a)
}

func (a *JSONBIngredients) Scan(value interface{}) error {
	return scanJSONB(value, a)
}

// JSONBUserRatings stores the per-user rating records in JSONB.
type JSONBUserRatings []UserRating

func (a JSONBUserRatings) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	return json.Marshal(a)
}

func (a *JSONBUserRatings) Scan(value interface{}) error {
	return scanJSONB(value, a)
}

// JSONBNutrition stores the nutrition object in JSONB.
type JSONBNutrition Nutrition

func (n JSONBNutrition) Value() (driver.Value, error) {
	return json.Marshal(Nutrition(n))
}

func (n *JSONBNutrition) Scan(value interface{}) error {
	return scanJSONB(value, n)
}

func scanJSONB(value interface{}, dest interface{}) error {
	if value == nil {
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, dest)
}

// Recipe is the persisted recipe document. Ratings is always the projection
// of UserRatings rating values, and Favorites always equals the length of
// FavoritesUsers; both are kept in sync on every rating or favorite write.
type Recipe struct {
	ID             uuid.UUID        `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
	DeletedAt      gorm.DeletedAt   `gorm:"index" json:"-"`
	Title          string           `gorm:"size:255;not null" json:"title"`
	ImageURL       string           `gorm:"size:255" json:"image,omitempty"`
	Ingredients    JSONBIngredients `gorm:"type:jsonb;not null;default:'[]'" json:"ingredients"`
	Steps          JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"steps"`
	Nutrition      JSONBNutrition   `gorm:"type:jsonb" json:"nutrition"`
	Cuisine        string           `gorm:"size:50" json:"cuisine"`
	Difficulty     string           `gorm:"size:10;default:'easy'" json:"difficulty"`
	CookTimeMin    int              `json:"cookTimeMin"`
	Servings       int              `gorm:"default:1" json:"servings"`
	Dietary        JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"dietary"`
	Ratings        JSONBIntArray    `gorm:"type:jsonb;not null;default:'[]'" json:"ratings"`
	UserRatings    JSONBUserRatings `gorm:"type:jsonb;not null;default:'[]'" json:"userRatings"`
	Favorites      int              `gorm:"default:0" json:"favorites"`
	FavoritesUsers JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"favoritesUsers"`
}

// BeforeCreate assigns an ID when the dialect has no uuid default (sqlite).
func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// AvgRating returns the mean of the flat ratings list, 0 when unrated.
func (r *Recipe) AvgRating() float64 {
	if len(r.Ratings) == 0 {
		return 0
	}
	sum := 0
	for _, v := range r.Ratings {
		sum += v
	}
	return float64(sum) / float64(len(r.Ratings))
}

// HasDietaryTag reports whether the recipe carries the given tag.
func (r *Recipe) HasDietaryTag(tag string) bool {
	for _, t := range r.Dietary {
		if t == tag {
			return true
		}
	}
	return false
}
