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
	"gorm.io/gorm/clause"
)

type TaskService struct {
	db *gorm.DB
}

func NewTaskService(db *gorm.DB) *TaskService {
	return &TaskService{db: db}
}

type TaskFilters struct {
	ProjectID uint
	Status    string
	Priority  string
}

type CreateTaskInput struct {
	Title       string
	Description string
	ProjectID   uint
	Status      string
	Priority    string
	DueDate     *time.Time
}

type UpdateTaskInput struct {
	Title       *string
	Description *string
	Status      *string
	Priority    *string
	DueDate     *time.Time
}

// List returns the owner's tasks, newest first, with the referenced project
// preloaded so responses can carry its title.
func (s *TaskService) List(ownerID uint, filters TaskFilters) ([]models.Task, error) {
	query := s.db.Where("owner_id = ?", ownerID)

	if filters.ProjectID != 0 {
		query = query.Where("project_id = ?", filters.ProjectID)
	}
	if filters.Status != "" {
		query = query.Where("status = ?", filters.Status)
	}
	if filters.Priority != "" {
		query = query.Where("priority = ?", filters.Priority)
	}

	var tasks []models.Task

	if err := query.Preload("Project").
		Order("created_at DESC, id DESC").
		Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	return tasks, nil
}

// Create checks the referenced project before anything else: the task's
// owner must match the project's owner.
func (s *TaskService) Create(ownerID uint, input CreateTaskInput) (*models.Task, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, apperrors.Validation("Title is required")
	}

	if input.ProjectID == 0 {
		return nil, apperrors.Validation("Project is required")
	}

	var project models.Project

	if err := s.db.First(&project, input.ProjectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Project not found")
		}
		return nil, fmt.Errorf("find project: %w", err)
	}

	if project.OwnerID != ownerID {
		return nil, apperrors.Forbidden("Not authorized")
	}

	status := input.Status
	if status == "" {
		status = types.TaskStatusPending
	}
	if !types.ValidTaskStatus(status) {
		return nil, apperrors.Validation("Invalid status")
	}

	priority := input.Priority
	if priority == "" {
		priority = types.PriorityMedium
	}
	if !types.ValidPriority(priority) {
		return nil, apperrors.Validation("Invalid priority")
	}

	task := models.Task{
		Title:       title,
		Description: input.Description,
		ProjectID:   project.ID,
		Status:      status,
		Priority:    priority,
		DueDate:     input.DueDate,
		OwnerID:     ownerID,
	}

	if err := s.db.Create(&task).Error; err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	task.Project = project
	return &task, nil
}

func (s *TaskService) Get(ownerID, id uint) (*models.Task, error) {
	return s.findOwned(ownerID, id)
}

func (s *TaskService) Update(ownerID, id uint, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.findOwned(ownerID, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, apperrors.Validation("Title is required")
		}
		task.Title = title
	}

	if input.Description != nil {
		task.Description = *input.Description
	}

	if input.Status != nil {
		if !types.ValidTaskStatus(*input.Status) {
			return nil, apperrors.Validation("Invalid status")
		}
		task.Status = *input.Status
	}

	if input.Priority != nil {
		if !types.ValidPriority(*input.Priority) {
			return nil, apperrors.Validation("Invalid priority")
		}
		task.Priority = *input.Priority
	}

	if input.DueDate != nil {
		task.DueDate = input.DueDate
	}

	// The preloaded project association stays untouched.
	if err := s.db.Omit(clause.Associations).Save(task).Error; err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}

	return task, nil
}

func (s *TaskService) Delete(ownerID, id uint) error {
	task, err := s.findOwned(ownerID, id)
	if err != nil {
		return err
	}

	if err := s.db.Delete(task).Error; err != nil {
		return fmt.Errorf("delete task: %w", err)
	}

	return nil
}

func (s *TaskService) findOwned(ownerID, id uint) (*models.Task, error) {
	var task models.Task

	if err := s.db.Preload("Project").First(&task, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Task not found")
		}
		return nil, fmt.Errorf("find task: %w", err)
	}

	if task.OwnerID != ownerID {
		return nil, apperrors.Forbidden("Not authorized")
	}

	return &task, nil
}
