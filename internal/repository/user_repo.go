package repository

import (
	"context"

	"github.com/devfolio/backend/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	// FindProfile loads the user with every profile relation resolved,
	// education and experience ordered by sort_order then start_date DESC.
	FindProfile(ctx context.Context, id uuid.UUID) (*model.User, error)
	FindProfileByUsername(ctx context.Context, username string) (*model.User, error)
	Update(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, id uuid.UUID) error

	ReplaceSkillAssociations(ctx context.Context, userID uuid.UUID, kind model.SkillKind, ids []uint) error
	ReplaceNamedSkills(ctx context.Context, userID uuid.UUID, skills []model.UserSkill) error
	ReplaceOtherTechnologies(ctx context.Context, userID uuid.UUID, rows []model.UserOtherTechnology) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, orNotFound(err)
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func profilePreloads(query *gorm.DB) *gorm.DB {
	resumeOrder := func(db *gorm.DB) *gorm.DB {
		return db.Order("sort_order ASC").Order("start_date DESC")
	}

	return query.
		Preload("Skills", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC").Order("name ASC")
		}).
		Preload("Educations", resumeOrder).
		Preload("Experiences", resumeOrder).
		Preload("Certifications", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC").Order("created_at DESC")
		}).
		Preload("OtherTechnologies").
		Preload("LanguageSkills.Language").
		Preload("FrameworkSkills.Framework").
		Preload("DatabaseSkills.Database")
}

func (r *userRepository) FindProfile(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	if err := profilePreloads(r.db.WithContext(ctx)).
		Where("id = ?", id).
		First(&user).Error; err != nil {
		return nil, orNotFound(err)
	}
	return &user, nil
}

func (r *userRepository) FindProfileByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	if err := profilePreloads(r.db.WithContext(ctx)).
		Where("username = ?", username).
		First(&user).Error; err != nil {
		return nil, orNotFound(err)
	}
	return &user, nil
}

func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

// Delete removes the user and every owned row. Pivot tables are cleared
// explicitly so the cascade does not depend on database-level constraints.
func (r *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ownedProjects := tx.Model(&model.Project{}).Select("id").Where("user_id = ?", id)

		if err := tx.Exec("DELETE FROM project_programming_language WHERE project_id IN (?)", ownedProjects).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM project_framework WHERE project_id IN (?)", ownedProjects).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM project_tag WHERE project_id IN (?)", ownedProjects).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&model.Project{}).Error; err != nil {
			return err
		}

		for _, mdl := range []any{
			&model.UserSkill{},
			&model.UserEducation{},
			&model.UserExperience{},
			&model.UserCertification{},
			&model.UserOtherTechnology{},
			&model.UserProgrammingLanguage{},
			&model.UserFramework{},
			&model.UserDatabase{},
		} {
			if err := tx.Where("user_id = ?", id).Delete(mdl).Error; err != nil {
				return err
			}
		}

		return tx.Where("id = ?", id).Delete(&model.User{}).Error
	})
}

// ReplaceSkillAssociations swaps the user's skill pivot rows of one kind for
// exactly ids, every row at the default experience level. Delete-then-insert
// in one transaction; retained ids lose their previous level.
func (r *userRepository) ReplaceSkillAssociations(ctx context.Context, userID uuid.UUID, kind model.SkillKind, ids []uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		switch kind {
		case model.KindLanguage:
			if err := tx.Where("user_id = ?", userID).Delete(&model.UserProgrammingLanguage{}).Error; err != nil {
				return err
			}
			for _, lookupID := range ids {
				row := model.UserProgrammingLanguage{
					UserID:                userID,
					ProgrammingLanguageID: lookupID,
					ExperienceLevel:       model.LevelBeginner,
				}
				if err := tx.Omit("Language").Create(&row).Error; err != nil {
					return err
				}
			}
		case model.KindFramework:
			if err := tx.Where("user_id = ?", userID).Delete(&model.UserFramework{}).Error; err != nil {
				return err
			}
			for _, lookupID := range ids {
				row := model.UserFramework{
					UserID:          userID,
					FrameworkID:     lookupID,
					ExperienceLevel: model.LevelBeginner,
				}
				if err := tx.Omit("Framework").Create(&row).Error; err != nil {
					return err
				}
			}
		case model.KindDatabase:
			if err := tx.Where("user_id = ?", userID).Delete(&model.UserDatabase{}).Error; err != nil {
				return err
			}
			for _, lookupID := range ids {
				row := model.UserDatabase{
					UserID:          userID,
					DatabaseID:      lookupID,
					ExperienceLevel: model.LevelBeginner,
				}
				if err := tx.Omit("Database").Create(&row).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
}

func (r *userRepository) ReplaceNamedSkills(ctx context.Context, userID uuid.UUID, skills []model.UserSkill) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&model.UserSkill{}).Error; err != nil {
			return err
		}
		for i := range skills {
			skills[i].ID = 0
			skills[i].UserID = userID
			if err := tx.Create(&skills[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *userRepository) ReplaceOtherTechnologies(ctx context.Context, userID uuid.UUID, rows []model.UserOtherTechnology) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&model.UserOtherTechnology{}).Error; err != nil {
			return err
		}
		for i := range rows {
			rows[i].ID = 0
			rows[i].UserID = userID
			if err := tx.Create(&rows[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
