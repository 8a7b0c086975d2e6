package service

import (
	"context"
	"errors"
	"strings"

	"github.com/devfolio/backend/internal/model"
	"github.com/devfolio/backend/internal/repository"
	"github.com/devfolio/backend/pkg/apperror"
	"gorm.io/gorm"
)

type TagService interface {
	// FindOrCreate resolves a raw tag name to its global Tag row, creating
	// one when no exact name match exists.
	FindOrCreate(ctx context.Context, rawName string) (*model.Tag, error)
	// SyncProjectTags swaps the project's tag set for the resolved names
	// and bumps usage_count of every member once per call.
	SyncProjectTags(ctx context.Context, project *model.Project, rawNames []string) error
}

type tagService struct {
	repo repository.TagRepository
}

func NewTagService(repo repository.TagRepository) TagService {
	return &tagService{repo: repo}
}

// Slugify lowercases the name and collapses every run of non-alphanumeric
// characters into a single hyphen, trimming leading and trailing hyphens.
// Two distinct names may share a slug; that is tolerated.
func Slugify(name string) string {
	var b strings.Builder
	lastHyphen := true // swallow leading separators

	for _, r := range strings.ToLower(name) {
		isAlnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if isAlnum {
			b.WriteRune(r)
			lastHyphen = false
			continue
		}
		if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}

	return strings.TrimSuffix(b.String(), "-")
}

func (s *tagService) FindOrCreate(ctx context.Context, rawName string) (*model.Tag, error) {
	name := strings.TrimSpace(rawName)
	if name == "" {
		return nil, apperror.ErrInvalidTag
	}

	tag, err := s.repo.FindByName(ctx, name)
	if err == nil {
		return tag, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	created := &model.Tag{Name: name, Slug: Slugify(name)}
	if err := s.repo.Create(ctx, created); err != nil {
		// A concurrent request created the same name first; use its row.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return s.repo.FindByName(ctx, name)
		}
		return nil, err
	}

	return created, nil
}

func (s *tagService) SyncProjectTags(ctx context.Context, project *model.Project, rawNames []string) error {
	seen := make(map[uint]bool)
	tags := make([]model.Tag, 0, len(rawNames))

	for _, rawName := range rawNames {
		tag, err := s.FindOrCreate(ctx, rawName)
		if err != nil {
			return err
		}
		if seen[tag.ID] {
			continue
		}
		seen[tag.ID] = true
		tags = append(tags, *tag)
	}

	return s.repo.ReplaceProjectTags(ctx, project, tags)
}
