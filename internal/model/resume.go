package model

import (
	"time"

	"github.com/google/uuid"
)

type UserSkill struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Level     string    `gorm:"size:20;not null;default:beginner" json:"level"`
	SortOrder int       `gorm:"default:0" json:"sort_order"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

type UserEducation struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	UserID       uuid.UUID  `gorm:"type:uuid;index;not null" json:"user_id"`
	School       string     `gorm:"size:150;not null" json:"school"`
	Degree       *string    `gorm:"size:100" json:"degree,omitempty"`
	FieldOfStudy *string    `gorm:"size:100" json:"field_of_study,omitempty"`
	StartDate    time.Time  `gorm:"not null" json:"start_date"`
	EndDate      *time.Time `json:"end_date,omitempty"`
	Description  *string    `gorm:"type:text" json:"description,omitempty"`
	SortOrder    int        `gorm:"default:0" json:"sort_order"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

type UserExperience struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	UserID      uuid.UUID  `gorm:"type:uuid;index;not null" json:"user_id"`
	Company     string     `gorm:"size:150;not null" json:"company"`
	Title       string     `gorm:"size:150;not null" json:"title"`
	StartDate   time.Time  `gorm:"not null" json:"start_date"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	Description *string    `gorm:"type:text" json:"description,omitempty"`
	SortOrder   int        `gorm:"default:0" json:"sort_order"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// UserCertification carries two independent orders: SortOrder is the manual
// display order of the full list, PinOrder positions the pinned subset.
// Pinned rows of one user always hold PinOrder values {1..k}.
type UserCertification struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	UserID        uuid.UUID  `gorm:"type:uuid;index;not null" json:"user_id"`
	Name          string     `gorm:"size:150;not null" json:"name"`
	Issuer        string     `gorm:"size:150;not null" json:"issuer"`
	IssueDate     *time.Time `json:"issue_date,omitempty"`
	CredentialURL *string    `gorm:"size:255" json:"credential_url,omitempty"`
	SortOrder     int        `gorm:"default:0" json:"sort_order"`
	Pinned        bool       `gorm:"default:false" json:"pinned"`
	PinOrder      int        `gorm:"default:0" json:"pin_order"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

type UserOtherTechnology struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	UserID          uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	Name            string    `gorm:"size:100;not null" json:"name"`
	ExperienceLevel string    `gorm:"size:20;not null;default:beginner" json:"experience_level"`
	Category        *string   `gorm:"size:50" json:"category,omitempty"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
}
