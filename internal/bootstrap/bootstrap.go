package bootstrap

import (
	"github.com/devfolio/backend/internal/model"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.ProgrammingLanguage{},
		&model.Framework{},
		&model.Database{},
		&model.Environment{},
		&model.Status{},
		&model.ProjectType{},
		&model.Tag{},
		&model.User{},
		&model.UserProgrammingLanguage{},
		&model.UserFramework{},
		&model.UserDatabase{},
		&model.UserSkill{},
		&model.UserEducation{},
		&model.UserExperience{},
		&model.UserCertification{},
		&model.UserOtherTechnology{},
		&model.Project{},
	)
}

// SeedLookups inserts the default reference rows. Rows that already
// exist are left alone, so admins can rename or deactivate entries
// without a restart undoing it.
func SeedLookups(db *gorm.DB) error {
	if err := seedNamed(db, &model.ProgrammingLanguage{}, func(name string, order int) any {
		return &model.ProgrammingLanguage{Name: name, SortOrder: order}
	}, "Go", "JavaScript", "TypeScript", "Python", "Java", "C#", "PHP", "Ruby", "Rust", "Kotlin", "Swift"); err != nil {
		return err
	}

	if err := seedNamed(db, &model.Framework{}, func(name string, order int) any {
		return &model.Framework{Name: name, SortOrder: order}
	}, "Gin", "React", "Next.js", "Vue", "Laravel", "Django", "Spring Boot", "Express", "Rails", "Flutter"); err != nil {
		return err
	}

	if err := seedNamed(db, &model.Database{}, func(name string, order int) any {
		return &model.Database{Name: name, SortOrder: order}
	}, "PostgreSQL", "MySQL", "SQLite", "MongoDB", "Redis"); err != nil {
		return err
	}

	if err := seedNamed(db, &model.Environment{}, func(name string, order int) any {
		return &model.Environment{Name: name, SortOrder: order}
	}, "Web", "Mobile", "Desktop", "CLI", "Embedded"); err != nil {
		return err
	}

	if err := seedNamed(db, &model.Status{}, func(name string, order int) any {
		return &model.Status{Name: name, SortOrder: order}
	}, "In Progress", "Completed", "Maintained", "Archived"); err != nil {
		return err
	}

	return seedNamed(db, &model.ProjectType{}, func(name string, order int) any {
		return &model.ProjectType{Name: name, SortOrder: order}
	}, "Personal", "Professional", "Open Source", "Coursework")
}

func seedNamed(db *gorm.DB, mdl any, build func(name string, order int) any, names ...string) error {
	for i, name := range names {
		var count int64
		if err := db.Model(mdl).Where("name = ?", name).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			if err := db.Create(build(name, i+1)).Error; err != nil {
				return err
			}
		}
	}
	return nil
}
