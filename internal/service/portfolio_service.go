package service

import (
	"context"

	"github.com/devfolio/backend/internal/model"
	"github.com/devfolio/backend/internal/repository"
	"github.com/devfolio/backend/pkg/apperror"
	"github.com/google/uuid"
)

// PortfolioView is the public read model for one user's portfolio page.
type PortfolioView struct {
	User     *model.User      `json:"user"`
	Projects []*model.Project `json:"projects"`
}

type PortfolioService interface {
	PublicProfile(ctx context.Context, username string) (*PortfolioView, error)
	PublicProjectDetail(ctx context.Context, username string, projectID uuid.UUID) (*model.Project, error)
	SearchProjects(ctx context.Context, username, query string) ([]ProjectSearchHit, error)
}

type portfolioService struct {
	userRepo    repository.UserRepository
	projectRepo repository.ProjectRepository
	search      SearchService
}

func NewPortfolioService(userRepo repository.UserRepository, projectRepo repository.ProjectRepository, search SearchService) PortfolioService {
	return &portfolioService{
		userRepo:    userRepo,
		projectRepo: projectRepo,
		search:      search,
	}
}

func (s *portfolioService) PublicProfile(ctx context.Context, username string) (*PortfolioView, error) {
	user, err := s.userRepo.FindProfileByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	projects, err := s.projectRepo.FindAllByUser(ctx, user.ID, true)
	if err != nil {
		return nil, err
	}

	user.PasswordHash = ""
	user.Email = "" // not part of the public page

	return &PortfolioView{User: user, Projects: projects}, nil
}

func (s *portfolioService) PublicProjectDetail(ctx context.Context, username string, projectID uuid.UUID) (*model.Project, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, apperror.ErrNotFound
	}

	project, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	// Wrong owner and private both read as absent.
	if project.UserID != user.ID || !project.IsPublic {
		return nil, apperror.ErrNotFound
	}

	return project, nil
}

func (s *portfolioService) SearchProjects(ctx context.Context, username, query string) ([]ProjectSearchHit, error) {
	if s.search == nil {
		return []ProjectSearchHit{}, nil
	}

	if _, err := s.userRepo.FindByUsername(ctx, username); err != nil {
		return nil, apperror.ErrNotFound
	}

	return s.search.SearchProjects(username, query)
}
