package model

import "time"

// Tag is a global label shared across users. Name is unique; Slug is derived
// from the name and deliberately not unique (two distinct names may collapse
// to the same slug). UsageCount grows on every project tag sync.
type Tag struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Name       string    `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Slug       string    `gorm:"size:100;index;not null" json:"slug"`
	UsageCount int       `gorm:"default:0" json:"usage_count"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}
