package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Username     string    `gorm:"size:50;uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	FullName     string    `gorm:"size:100;not null" json:"full_name"`
	Headline     *string   `gorm:"size:150" json:"headline,omitempty"`
	Bio          *string   `gorm:"type:text" json:"bio,omitempty"`
	Location     *string   `gorm:"size:100" json:"location,omitempty"`
	WebsiteURL   *string   `gorm:"size:255" json:"website_url,omitempty"`
	GithubURL    *string   `gorm:"size:255" json:"github_url,omitempty"`
	LinkedinURL  *string   `gorm:"size:255" json:"linkedin_url,omitempty"`
	AvatarURL    *string   `gorm:"type:text" json:"avatar_url,omitempty"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Skills            []UserSkill               `gorm:"constraint:OnDelete:CASCADE" json:"skills,omitempty"`
	Educations        []UserEducation           `gorm:"constraint:OnDelete:CASCADE" json:"educations,omitempty"`
	Experiences       []UserExperience          `gorm:"constraint:OnDelete:CASCADE" json:"experiences,omitempty"`
	Certifications    []UserCertification       `gorm:"constraint:OnDelete:CASCADE" json:"certifications,omitempty"`
	OtherTechnologies []UserOtherTechnology     `gorm:"constraint:OnDelete:CASCADE" json:"other_technologies,omitempty"`
	LanguageSkills    []UserProgrammingLanguage `gorm:"constraint:OnDelete:CASCADE" json:"language_skills,omitempty"`
	FrameworkSkills   []UserFramework           `gorm:"constraint:OnDelete:CASCADE" json:"framework_skills,omitempty"`
	DatabaseSkills    []UserDatabase            `gorm:"constraint:OnDelete:CASCADE" json:"database_skills,omitempty"`
	Projects          []Project                 `gorm:"constraint:OnDelete:CASCADE" json:"projects,omitempty"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// Experience levels stored on skill pivots and other-technology rows.
const (
	LevelBeginner     = "beginner"
	LevelIntermediate = "intermediate"
	LevelAdvanced     = "advanced"
)

// UserProgrammingLanguage is the user <-> programming language pivot.
type UserProgrammingLanguage struct {
	UserID                uuid.UUID           `gorm:"type:uuid;primaryKey" json:"user_id"`
	ProgrammingLanguageID uint                `gorm:"primaryKey" json:"programming_language_id"`
	ExperienceLevel       string              `gorm:"size:20;not null;default:beginner" json:"experience_level"`
	CreatedAt             time.Time           `gorm:"autoCreateTime" json:"created_at"`
	Language              ProgrammingLanguage `gorm:"foreignKey:ProgrammingLanguageID" json:"language"`
}

func (UserProgrammingLanguage) TableName() string { return "user_programming_languages" }

// UserFramework is the user <-> framework pivot.
type UserFramework struct {
	UserID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	FrameworkID     uint      `gorm:"primaryKey" json:"framework_id"`
	ExperienceLevel string    `gorm:"size:20;not null;default:beginner" json:"experience_level"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	Framework       Framework `gorm:"foreignKey:FrameworkID" json:"framework"`
}

func (UserFramework) TableName() string { return "user_frameworks" }

// UserDatabase is the user <-> database pivot.
type UserDatabase struct {
	UserID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	DatabaseID      uint      `gorm:"primaryKey" json:"database_id"`
	ExperienceLevel string    `gorm:"size:20;not null;default:beginner" json:"experience_level"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	Database        Database  `gorm:"foreignKey:DatabaseID" json:"database"`
}

func (UserDatabase) TableName() string { return "user_databases" }
