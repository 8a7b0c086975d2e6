package service

import (
	"context"
	"log"

	"github.com/devfolio/backend/internal/model"
	"github.com/devfolio/backend/internal/repository"
	"github.com/devfolio/backend/pkg/apperror"
	"github.com/google/uuid"
)

type ProjectInput struct {
	Title         string   `json:"title" binding:"required,min=3,max=150"`
	Description   string   `json:"description"`
	RepoURL       *string  `json:"repo_url" binding:"omitempty,url"`
	LiveURL       *string  `json:"live_url" binding:"omitempty,url"`
	EnvironmentID *uint    `json:"environment_id"`
	StatusID      *uint    `json:"status_id"`
	DatabaseID    *uint    `json:"database_id"`
	ProjectTypeID *uint    `json:"project_type_id"`
	LanguageIDs   []uint   `json:"language_ids"`
	FrameworkIDs  []uint   `json:"framework_ids"`
	Tags          []string `json:"tags"`
	IsPublic      *bool    `json:"is_public"`
}

type ProjectService interface {
	List(ctx context.Context, userID uuid.UUID) ([]*model.Project, error)
	Create(ctx context.Context, userID uuid.UUID, input ProjectInput) (*model.Project, error)
	// GetDetail merges ownership misses into ErrNotFound so callers cannot
	// probe which project ids exist.
	GetDetail(ctx context.Context, id, requestingUserID uuid.UUID) (*model.Project, error)
	Update(ctx context.Context, id, userID uuid.UUID, input ProjectInput) (*model.Project, error)
	Delete(ctx context.Context, id, userID uuid.UUID) error

	Pin(ctx context.Context, id, userID uuid.UUID) error
	Unpin(ctx context.Context, id, userID uuid.UUID) error
	SetPinOrder(ctx context.Context, id, userID uuid.UUID, newOrder int) error
}

type projectService struct {
	repo     repository.ProjectRepository
	userRepo repository.UserRepository
	lookups  repository.LookupRepository
	tags     TagService
	search   SearchService
}

func NewProjectService(repo repository.ProjectRepository, userRepo repository.UserRepository, lookups repository.LookupRepository, tags TagService, search SearchService) ProjectService {
	return &projectService{
		repo:     repo,
		userRepo: userRepo,
		lookups:  lookups,
		tags:     tags,
		search:   search,
	}
}

func (s *projectService) List(ctx context.Context, userID uuid.UUID) ([]*model.Project, error) {
	return s.repo.FindAllByUser(ctx, userID, false)
}

func (s *projectService) Create(ctx context.Context, userID uuid.UUID, input ProjectInput) (*model.Project, error) {
	if err := s.validateReferences(ctx, input); err != nil {
		return nil, err
	}

	project := &model.Project{
		UserID:        userID,
		Title:         input.Title,
		Description:   input.Description,
		RepoURL:       normalizeOptional(input.RepoURL),
		LiveURL:       normalizeOptional(input.LiveURL),
		EnvironmentID: input.EnvironmentID,
		StatusID:      input.StatusID,
		DatabaseID:    input.DatabaseID,
		ProjectTypeID: input.ProjectTypeID,
		IsPublic:      true,
	}
	if input.IsPublic != nil {
		project.IsPublic = *input.IsPublic
	}

	if err := s.repo.Create(ctx, project); err != nil {
		return nil, err
	}

	if err := s.repo.ReplaceLanguages(ctx, project, lookupLanguages(input.LanguageIDs)); err != nil {
		return nil, err
	}
	if err := s.repo.ReplaceFrameworks(ctx, project, lookupFrameworks(input.FrameworkIDs)); err != nil {
		return nil, err
	}

	if err := s.tags.SyncProjectTags(ctx, project, input.Tags); err != nil {
		return nil, err
	}

	detail, err := s.repo.FindByID(ctx, project.ID)
	if err != nil {
		return nil, err
	}

	s.reindex(ctx, detail, userID)
	return detail, nil
}

func (s *projectService) GetDetail(ctx context.Context, id, requestingUserID uuid.UUID) (*model.Project, error) {
	project, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if project.UserID != requestingUserID {
		return nil, apperror.ErrNotFound
	}
	return project, nil
}

func (s *projectService) Update(ctx context.Context, id, userID uuid.UUID, input ProjectInput) (*model.Project, error) {
	project, err := s.repo.FindOwned(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if err := s.validateReferences(ctx, input); err != nil {
		return nil, err
	}

	project.Title = input.Title
	project.Description = input.Description
	project.RepoURL = normalizeOptional(input.RepoURL)
	project.LiveURL = normalizeOptional(input.LiveURL)
	project.EnvironmentID = input.EnvironmentID
	project.StatusID = input.StatusID
	project.DatabaseID = input.DatabaseID
	project.ProjectTypeID = input.ProjectTypeID
	if input.IsPublic != nil {
		project.IsPublic = *input.IsPublic
	}

	if err := s.repo.Update(ctx, project); err != nil {
		return nil, err
	}

	if err := s.repo.ReplaceLanguages(ctx, project, lookupLanguages(input.LanguageIDs)); err != nil {
		return nil, err
	}
	if err := s.repo.ReplaceFrameworks(ctx, project, lookupFrameworks(input.FrameworkIDs)); err != nil {
		return nil, err
	}

	if err := s.tags.SyncProjectTags(ctx, project, input.Tags); err != nil {
		return nil, err
	}

	detail, err := s.repo.FindByID(ctx, project.ID)
	if err != nil {
		return nil, err
	}

	s.reindex(ctx, detail, userID)
	return detail, nil
}

func (s *projectService) Delete(ctx context.Context, id, userID uuid.UUID) error {
	project, err := s.repo.FindOwned(ctx, id, userID)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, project); err != nil {
		return err
	}

	if s.search != nil {
		if err := s.search.DeleteProject(project.ID.String()); err != nil {
			log.Printf("failed to de-index project %s: %v", project.ID, err)
		}
	}

	return nil
}

func (s *projectService) Pin(ctx context.Context, id, userID uuid.UUID) error {
	return s.repo.Pin(ctx, id, userID)
}

func (s *projectService) Unpin(ctx context.Context, id, userID uuid.UUID) error {
	return s.repo.Unpin(ctx, id, userID)
}

func (s *projectService) SetPinOrder(ctx context.Context, id, userID uuid.UUID, newOrder int) error {
	if newOrder <= 0 {
		return apperror.ErrInvalidOrder
	}
	return s.repo.SetPinOrder(ctx, id, userID, newOrder)
}

// validateReferences rejects the whole write when any lookup id is unknown.
func (s *projectService) validateReferences(ctx context.Context, input ProjectInput) error {
	checks := []struct {
		id    *uint
		check func(context.Context, uint) (bool, error)
	}{
		{input.EnvironmentID, s.lookups.HasEnvironment},
		{input.StatusID, s.lookups.HasStatus},
		{input.DatabaseID, s.lookups.HasDatabase},
		{input.ProjectTypeID, s.lookups.HasProjectType},
	}
	for _, c := range checks {
		if c.id == nil {
			continue
		}
		ok, err := c.check(ctx, *c.id)
		if err != nil {
			return err
		}
		if !ok {
			return apperror.ErrInvalidReference
		}
	}

	languageIDs := dedupeIDs(input.LanguageIDs)
	count, err := s.lookups.CountSkillRefs(ctx, model.KindLanguage, languageIDs)
	if err != nil {
		return err
	}
	if count != int64(len(languageIDs)) {
		return apperror.ErrInvalidReference
	}

	frameworkIDs := dedupeIDs(input.FrameworkIDs)
	count, err = s.lookups.CountSkillRefs(ctx, model.KindFramework, frameworkIDs)
	if err != nil {
		return err
	}
	if count != int64(len(frameworkIDs)) {
		return apperror.ErrInvalidReference
	}

	return nil
}

func (s *projectService) reindex(ctx context.Context, project *model.Project, userID uuid.UUID) {
	if s.search == nil {
		return
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		log.Printf("failed to load owner for indexing project %s: %v", project.ID, err)
		return
	}

	if !project.IsPublic {
		if err := s.search.DeleteProject(project.ID.String()); err != nil {
			log.Printf("failed to de-index private project %s: %v", project.ID, err)
		}
		return
	}

	if err := s.search.IndexProject(project, user.Username); err != nil {
		log.Printf("failed to index project %s: %v", project.ID, err)
	}
}

func lookupLanguages(ids []uint) []model.ProgrammingLanguage {
	rows := make([]model.ProgrammingLanguage, 0, len(ids))
	for _, id := range dedupeIDs(ids) {
		rows = append(rows, model.ProgrammingLanguage{ID: id})
	}
	return rows
}

func lookupFrameworks(ids []uint) []model.Framework {
	rows := make([]model.Framework, 0, len(ids))
	for _, id := range dedupeIDs(ids) {
		rows = append(rows, model.Framework{ID: id})
	}
	return rows
}
