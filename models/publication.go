package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Publication struct {
	gorm.Model
	PubmedID      string                       `json:"pubmed_id"`
	Title         string                       `json:"title" gorm:"type:text;not null"`
	Authors       datatypes.JSONSlice[string] `json:"authors"`
	Abstract      string                       `json:"abstract" gorm:"type:text"`
	URL           string                       `json:"url"`
	Keywords      datatypes.JSONSlice[string] `json:"keywords"`
	PublishedDate string                       `json:"published_date"`
}
