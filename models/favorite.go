package models

import (
	"gorm.io/gorm"
)

const (
	FavoriteTrial       = "trial"
	FavoritePublication = "publication"
	FavoriteExpert      = "expert"
)

// Favorite has toggle semantics: posting an existing (type,id) pair
// for the same user deletes it. ItemID is not validated against the
// referenced table; dangling favorites are filtered at read time.
type Favorite struct {
	gorm.Model
	UserID   uint   `json:"user_id" gorm:"index"`
	ItemType string `json:"item_type"`
	ItemID   uint   `json:"item_id"`
}
