package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/devfolio/backend/internal/model"
	"github.com/devfolio/backend/internal/repository"
	"github.com/devfolio/backend/pkg/apperror"
	"github.com/devfolio/backend/pkg/storage"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UpdateProfileInput struct {
	Username    *string `json:"username" form:"username"`
	Password    *string `json:"password" form:"password"`
	FullName    *string `json:"full_name" form:"full_name"`
	Headline    *string `json:"headline" form:"headline"`
	Bio         *string `json:"bio" form:"bio"`
	Location    *string `json:"location" form:"location"`
	WebsiteURL  *string `json:"website_url" form:"website_url"`
	GithubURL   *string `json:"github_url" form:"github_url"`
	LinkedinURL *string `json:"linkedin_url" form:"linkedin_url"`
}

// AvatarFile is an uploaded profile image.
type AvatarFile struct {
	Reader   io.Reader
	FileName string
}

type NamedSkillInput struct {
	Name  string `json:"name" binding:"required,max=100"`
	Level string `json:"level" binding:"omitempty,oneof=beginner intermediate advanced"`
}

type ProfileService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*model.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, input UpdateProfileInput, avatar *AvatarFile) (*model.User, error)
	DestroyAccount(ctx context.Context, userID uuid.UUID) error

	ReplaceSkillAssociations(ctx context.Context, userID uuid.UUID, kind model.SkillKind, ids []uint) error
	ReplaceNamedSkills(ctx context.Context, userID uuid.UUID, skills []NamedSkillInput) error
	ReplaceOtherTechnologies(ctx context.Context, userID uuid.UUID, names []string) error
}

type profileService struct {
	repo         repository.UserRepository
	lookups      repository.LookupRepository
	imageStorage storage.ImageStorage
	search       SearchService
}

func NewProfileService(repo repository.UserRepository, lookups repository.LookupRepository, imageStorage storage.ImageStorage, search SearchService) ProfileService {
	return &profileService{
		repo:         repo,
		lookups:      lookups,
		imageStorage: imageStorage,
		search:       search,
	}
}

func (s *profileService) GetProfile(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	user, err := s.repo.FindProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

func (s *profileService) UpdateProfile(ctx context.Context, userID uuid.UUID, input UpdateProfileInput, avatar *AvatarFile) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Username != nil && *input.Username != "" && *input.Username != user.Username {
		if len(*input.Username) < 3 || len(*input.Username) > 50 {
			return nil, apperror.New(http.StatusUnprocessableEntity, "username must be 3-50 characters", apperror.ErrBadRequest)
		}
		if _, err := s.repo.FindByUsername(ctx, *input.Username); err == nil {
			return nil, apperror.Conflict("username")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		user.Username = *input.Username
	}

	if input.Password != nil && *input.Password != "" {
		if len(*input.Password) < 8 {
			return nil, apperror.New(http.StatusUnprocessableEntity, "password must be at least 8 characters", apperror.ErrBadRequest)
		}
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = string(hashedPassword)
	}

	if input.FullName != nil && *input.FullName != "" {
		user.FullName = *input.FullName
	}
	if input.Headline != nil {
		user.Headline = normalizeOptional(input.Headline)
	}
	if input.Bio != nil {
		user.Bio = normalizeOptional(input.Bio)
	}
	if input.Location != nil {
		user.Location = normalizeOptional(input.Location)
	}
	if input.WebsiteURL != nil {
		user.WebsiteURL = normalizeOptional(input.WebsiteURL)
	}
	if input.GithubURL != nil {
		user.GithubURL = normalizeOptional(input.GithubURL)
	}
	if input.LinkedinURL != nil {
		user.LinkedinURL = normalizeOptional(input.LinkedinURL)
	}

	if avatar != nil && avatar.Reader != nil && s.imageStorage != nil {
		oldURL := user.AvatarURL

		url, err := s.imageStorage.UploadImage(ctx, avatar.Reader, "avatars", avatar.FileName)
		if err != nil {
			return nil, err
		}
		user.AvatarURL = &url

		if oldURL != nil {
			if err := s.imageStorage.DeleteImage(ctx, *oldURL); err != nil {
				log.Printf("failed to delete replaced avatar %s: %v", *oldURL, err)
			}
		}
	}

	if err := s.repo.Update(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.Conflict("username")
		}
		return nil, err
	}

	return s.GetProfile(ctx, userID)
}

func (s *profileService) DestroyAccount(ctx context.Context, userID uuid.UUID) error {
	user, err := s.repo.FindProfile(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, userID); err != nil {
		return err
	}

	// Cleanup outside the transaction is best-effort.
	if user.AvatarURL != nil && s.imageStorage != nil {
		if err := s.imageStorage.DeleteImage(ctx, *user.AvatarURL); err != nil {
			log.Printf("failed to delete avatar for removed account %s: %v", userID, err)
		}
	}
	if s.search != nil {
		if err := s.search.DeleteUserProjects(user.Username); err != nil {
			log.Printf("failed to remove search documents for %s: %v", user.Username, err)
		}
	}

	return nil
}

func (s *profileService) ReplaceSkillAssociations(ctx context.Context, userID uuid.UUID, kind model.SkillKind, ids []uint) error {
	if _, err := s.repo.FindByID(ctx, userID); err != nil {
		return err
	}

	ids = dedupeIDs(ids)

	// Every id must resolve before anything is written.
	count, err := s.lookups.CountSkillRefs(ctx, kind, ids)
	if err != nil {
		return err
	}
	if count != int64(len(ids)) {
		return apperror.ErrInvalidReference
	}

	return s.repo.ReplaceSkillAssociations(ctx, userID, kind, ids)
}

func (s *profileService) ReplaceNamedSkills(ctx context.Context, userID uuid.UUID, skills []NamedSkillInput) error {
	if _, err := s.repo.FindByID(ctx, userID); err != nil {
		return err
	}

	rows := make([]model.UserSkill, 0, len(skills))
	for i, skill := range skills {
		name := strings.TrimSpace(skill.Name)
		if name == "" {
			continue
		}
		level := skill.Level
		if level == "" {
			level = model.LevelBeginner
		}
		rows = append(rows, model.UserSkill{Name: name, Level: level, SortOrder: i})
	}

	return s.repo.ReplaceNamedSkills(ctx, userID, rows)
}

func (s *profileService) ReplaceOtherTechnologies(ctx context.Context, userID uuid.UUID, names []string) error {
	if _, err := s.repo.FindByID(ctx, userID); err != nil {
		return err
	}

	rows := make([]model.UserOtherTechnology, 0, len(names))
	for _, rawName := range names {
		name := strings.TrimSpace(rawName)
		if name == "" {
			continue
		}
		rows = append(rows, model.UserOtherTechnology{
			Name:            name,
			ExperienceLevel: model.LevelBeginner,
		})
	}

	return s.repo.ReplaceOtherTechnologies(ctx, userID, rows)
}

func dedupeIDs(ids []uint) []uint {
	seen := make(map[uint]bool, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
