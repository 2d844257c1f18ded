package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/workzen-dev/workzen/internal/apperrors"
	"github.com/workzen-dev/workzen/internal/models"
	"github.com/workzen-dev/workzen/internal/types"
	"gorm.io/gorm"
)

type ProjectService struct {
	db *gorm.DB
}

func NewProjectService(db *gorm.DB) *ProjectService {
	return &ProjectService{db: db}
}

type CreateProjectInput struct {
	Title       string
	Description string
	Status      string
	Priority    string
	StartDate   *time.Time
	DueDate     *time.Time
}

type UpdateProjectInput struct {
	Title       *string
	Description *string
	Status      *string
	Priority    *string
	StartDate   *time.Time
	DueDate     *time.Time
}

// List returns the owner's projects, newest first.
func (s *ProjectService) List(ownerID uint) ([]models.Project, error) {
	var projects []models.Project

	if err := s.db.Where("owner_id = ?", ownerID).
		Order("created_at DESC, id DESC").
		Find(&projects).Error; err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}

	return projects, nil
}

func (s *ProjectService) Create(ownerID uint, input CreateProjectInput) (*models.Project, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, apperrors.Validation("Title is required")
	}

	status := input.Status
	if status == "" {
		status = types.ProjectStatusNotStarted
	}
	if !types.ValidProjectStatus(status) {
		return nil, apperrors.Validation("Invalid status")
	}

	priority := input.Priority
	if priority == "" {
		priority = types.PriorityMedium
	}
	if !types.ValidPriority(priority) {
		return nil, apperrors.Validation("Invalid priority")
	}

	project := models.Project{
		Title:       title,
		Description: input.Description,
		Status:      status,
		Priority:    priority,
		StartDate:   input.StartDate,
		DueDate:     input.DueDate,
		OwnerID:     ownerID,
	}

	if err := s.db.Create(&project).Error; err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}

	return &project, nil
}

func (s *ProjectService) Get(ownerID, id uint) (*models.Project, error) {
	return s.findOwned(ownerID, id)
}

func (s *ProjectService) Update(ownerID, id uint, input UpdateProjectInput) (*models.Project, error) {
	project, err := s.findOwned(ownerID, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, apperrors.Validation("Title is required")
		}
		project.Title = title
	}

	if input.Description != nil {
		project.Description = *input.Description
	}

	if input.Status != nil {
		if !types.ValidProjectStatus(*input.Status) {
			return nil, apperrors.Validation("Invalid status")
		}
		project.Status = *input.Status
	}

	if input.Priority != nil {
		if !types.ValidPriority(*input.Priority) {
			return nil, apperrors.Validation("Invalid priority")
		}
		project.Priority = *input.Priority
	}

	if input.StartDate != nil {
		project.StartDate = input.StartDate
	}

	if input.DueDate != nil {
		project.DueDate = input.DueDate
	}

	if err := s.db.Save(project).Error; err != nil {
		return nil, fmt.Errorf("update project: %w", err)
	}

	return project, nil
}

// Delete removes the project and every task that references it. Both deletes
// run in one transaction so a failed cascade rolls the project back too.
func (s *ProjectService) Delete(ownerID, id uint) error {
	project, err := s.findOwned(ownerID, id)
	if err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", project.ID).Delete(&models.Task{}).Error; err != nil {
			return err
		}
		return tx.Delete(project).Error
	})

	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}

	return nil
}

// findOwned is the single ownership gate for project reads and mutations:
// a missing record is NotFound, someone else's record is Forbidden.
func (s *ProjectService) findOwned(ownerID, id uint) (*models.Project, error) {
	var project models.Project

	if err := s.db.First(&project, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Project not found")
		}
		return nil, fmt.Errorf("find project: %w", err)
	}

	if project.OwnerID != ownerID {
		return nil, apperrors.Forbidden("Not authorized")
	}

	return &project, nil
}
