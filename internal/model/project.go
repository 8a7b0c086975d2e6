package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Project struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	User        User      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Title       string    `gorm:"size:150;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	RepoURL     *string   `gorm:"size:255" json:"repo_url,omitempty"`
	LiveURL     *string   `gorm:"size:255" json:"live_url,omitempty"`

	EnvironmentID *uint        `json:"environment_id"`
	Environment   *Environment `gorm:"constraint:OnDelete:SET NULL" json:"environment,omitempty"`
	StatusID      *uint        `json:"status_id"`
	Status        *Status      `gorm:"constraint:OnDelete:SET NULL" json:"status,omitempty"`
	DatabaseID    *uint        `json:"database_id"`
	Database      *Database    `gorm:"constraint:OnDelete:SET NULL" json:"database,omitempty"`
	ProjectTypeID *uint        `json:"project_type_id"`
	ProjectType   *ProjectType `gorm:"constraint:OnDelete:SET NULL" json:"project_type,omitempty"`

	Languages  []ProgrammingLanguage `gorm:"many2many:project_programming_language" json:"languages,omitempty"`
	Frameworks []Framework           `gorm:"many2many:project_framework" json:"frameworks,omitempty"`
	Tags       []Tag                 `gorm:"many2many:project_tag" json:"tags,omitempty"`

	IsPublic bool `gorm:"default:true" json:"is_public"`
	Pinned   bool `gorm:"default:false" json:"pinned"`
	// PinOrder is meaningful only while Pinned; pinned rows of one user
	// always hold the values {1..k}.
	PinOrder int `gorm:"default:0" json:"pin_order"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (p *Project) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID, err = uuid.NewV7()
	}
	return
}
