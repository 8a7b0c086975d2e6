package service

import (
	"context"
	"time"

	"github.com/devfolio/backend/internal/model"
	"github.com/devfolio/backend/internal/repository"
	"github.com/devfolio/backend/pkg/apperror"
	"github.com/google/uuid"
)

type EducationInput struct {
	School       string     `json:"school" binding:"required,max=150"`
	Degree       *string    `json:"degree" binding:"omitempty,max=100"`
	FieldOfStudy *string    `json:"field_of_study" binding:"omitempty,max=100"`
	StartDate    time.Time  `json:"start_date" binding:"required"`
	EndDate      *time.Time `json:"end_date"`
	Description  *string    `json:"description"`
	SortOrder    int        `json:"sort_order"`
}

type ExperienceInput struct {
	Company     string     `json:"company" binding:"required,max=150"`
	Title       string     `json:"title" binding:"required,max=150"`
	StartDate   time.Time  `json:"start_date" binding:"required"`
	EndDate     *time.Time `json:"end_date"`
	Description *string    `json:"description"`
	SortOrder   int        `json:"sort_order"`
}

type CertificationInput struct {
	Name          string     `json:"name" binding:"required,max=150"`
	Issuer        string     `json:"issuer" binding:"required,max=150"`
	IssueDate     *time.Time `json:"issue_date"`
	CredentialURL *string    `json:"credential_url" binding:"omitempty,url"`
	SortOrder     int        `json:"sort_order"`
}

type ResumeService interface {
	CreateEducation(ctx context.Context, userID uuid.UUID, input EducationInput) (*model.UserEducation, error)
	UpdateEducation(ctx context.Context, userID uuid.UUID, id uint, input EducationInput) (*model.UserEducation, error)
	DeleteEducation(ctx context.Context, userID uuid.UUID, id uint) error

	CreateExperience(ctx context.Context, userID uuid.UUID, input ExperienceInput) (*model.UserExperience, error)
	UpdateExperience(ctx context.Context, userID uuid.UUID, id uint, input ExperienceInput) (*model.UserExperience, error)
	DeleteExperience(ctx context.Context, userID uuid.UUID, id uint) error

	ListCertifications(ctx context.Context, userID uuid.UUID) ([]*model.UserCertification, error)
	CreateCertification(ctx context.Context, userID uuid.UUID, input CertificationInput) (*model.UserCertification, error)
	UpdateCertification(ctx context.Context, userID uuid.UUID, id uint, input CertificationInput) (*model.UserCertification, error)
	DeleteCertification(ctx context.Context, userID uuid.UUID, id uint) error
	PinCertification(ctx context.Context, userID uuid.UUID, id uint) error
	UnpinCertification(ctx context.Context, userID uuid.UUID, id uint) error
	SetCertificationPinOrder(ctx context.Context, userID uuid.UUID, id uint, newOrder int) error
}

type resumeService struct {
	repo  repository.ResumeRepository
	certs repository.CertificationRepository
}

func NewResumeService(repo repository.ResumeRepository, certs repository.CertificationRepository) ResumeService {
	return &resumeService{repo: repo, certs: certs}
}

func (s *resumeService) CreateEducation(ctx context.Context, userID uuid.UUID, input EducationInput) (*model.UserEducation, error) {
	row := &model.UserEducation{
		UserID:       userID,
		School:       input.School,
		Degree:       normalizeOptional(input.Degree),
		FieldOfStudy: normalizeOptional(input.FieldOfStudy),
		StartDate:    input.StartDate,
		EndDate:      input.EndDate,
		Description:  normalizeOptional(input.Description),
		SortOrder:    input.SortOrder,
	}
	if err := s.repo.CreateEducation(ctx, row); err != nil {
		return nil, err
	}
	return row, nil
}

func (s *resumeService) UpdateEducation(ctx context.Context, userID uuid.UUID, id uint, input EducationInput) (*model.UserEducation, error) {
	row, err := s.repo.FindEducation(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	row.School = input.School
	row.Degree = normalizeOptional(input.Degree)
	row.FieldOfStudy = normalizeOptional(input.FieldOfStudy)
	row.StartDate = input.StartDate
	row.EndDate = input.EndDate
	row.Description = normalizeOptional(input.Description)
	row.SortOrder = input.SortOrder

	if err := s.repo.UpdateEducation(ctx, row); err != nil {
		return nil, err
	}
	return row, nil
}

func (s *resumeService) DeleteEducation(ctx context.Context, userID uuid.UUID, id uint) error {
	row, err := s.repo.FindEducation(ctx, id, userID)
	if err != nil {
		return err
	}
	return s.repo.DeleteEducation(ctx, row)
}

func (s *resumeService) CreateExperience(ctx context.Context, userID uuid.UUID, input ExperienceInput) (*model.UserExperience, error) {
	row := &model.UserExperience{
		UserID:      userID,
		Company:     input.Company,
		Title:       input.Title,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		Description: normalizeOptional(input.Description),
		SortOrder:   input.SortOrder,
	}
	if err := s.repo.CreateExperience(ctx, row); err != nil {
		return nil, err
	}
	return row, nil
}

func (s *resumeService) UpdateExperience(ctx context.Context, userID uuid.UUID, id uint, input ExperienceInput) (*model.UserExperience, error) {
	row, err := s.repo.FindExperience(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	row.Company = input.Company
	row.Title = input.Title
	row.StartDate = input.StartDate
	row.EndDate = input.EndDate
	row.Description = normalizeOptional(input.Description)
	row.SortOrder = input.SortOrder

	if err := s.repo.UpdateExperience(ctx, row); err != nil {
		return nil, err
	}
	return row, nil
}

func (s *resumeService) DeleteExperience(ctx context.Context, userID uuid.UUID, id uint) error {
	row, err := s.repo.FindExperience(ctx, id, userID)
	if err != nil {
		return err
	}
	return s.repo.DeleteExperience(ctx, row)
}

func (s *resumeService) ListCertifications(ctx context.Context, userID uuid.UUID) ([]*model.UserCertification, error) {
	return s.certs.FindAllByUser(ctx, userID)
}

func (s *resumeService) CreateCertification(ctx context.Context, userID uuid.UUID, input CertificationInput) (*model.UserCertification, error) {
	row := &model.UserCertification{
		UserID:        userID,
		Name:          input.Name,
		Issuer:        input.Issuer,
		IssueDate:     input.IssueDate,
		CredentialURL: normalizeOptional(input.CredentialURL),
		SortOrder:     input.SortOrder,
	}
	if err := s.certs.Create(ctx, row); err != nil {
		return nil, err
	}
	return row, nil
}

func (s *resumeService) UpdateCertification(ctx context.Context, userID uuid.UUID, id uint, input CertificationInput) (*model.UserCertification, error) {
	row, err := s.certs.FindOwned(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	row.Name = input.Name
	row.Issuer = input.Issuer
	row.IssueDate = input.IssueDate
	row.CredentialURL = normalizeOptional(input.CredentialURL)
	row.SortOrder = input.SortOrder

	if err := s.certs.Update(ctx, row); err != nil {
		return nil, err
	}
	return row, nil
}

func (s *resumeService) DeleteCertification(ctx context.Context, userID uuid.UUID, id uint) error {
	row, err := s.certs.FindOwned(ctx, id, userID)
	if err != nil {
		return err
	}
	return s.certs.Delete(ctx, row)
}

func (s *resumeService) PinCertification(ctx context.Context, userID uuid.UUID, id uint) error {
	return s.certs.Pin(ctx, id, userID)
}

func (s *resumeService) UnpinCertification(ctx context.Context, userID uuid.UUID, id uint) error {
	return s.certs.Unpin(ctx, id, userID)
}

func (s *resumeService) SetCertificationPinOrder(ctx context.Context, userID uuid.UUID, id uint, newOrder int) error {
	if newOrder <= 0 {
		return apperror.ErrInvalidOrder
	}
	return s.certs.SetPinOrder(ctx, id, userID, newOrder)
}
