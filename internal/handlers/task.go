package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/workzen-dev/workzen/internal/models"
	"github.com/workzen-dev/workzen/internal/services"
	"github.com/workzen-dev/workzen/internal/types"
	"github.com/workzen-dev/workzen/internal/utils"
)

type TaskHandler struct {
	tasks *services.TaskService
}

func NewTaskHandler(tasks *services.TaskService) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

type CreateTaskRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	ProjectID   uint       `json:"project_id"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"due_date"`
}

type UpdateTaskRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Status      *string    `json:"status"`
	Priority    *string    `json:"priority"`
	DueDate     *time.Time `json:"due_date"`
}

func toTaskResponse(task *models.Task) types.TaskResponse {
	return types.TaskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		ProjectID:   task.ProjectID,
		Project: types.ProjectRef{
			ID:    task.Project.ID,
			Title: task.Project.Title,
		},
		Status:    task.Status,
		Priority:  task.Priority,
		DueDate:   task.DueDate,
		OwnerID:   task.OwnerID,
		CreatedAt: task.CreatedAt,
		UpdatedAt: task.UpdatedAt,
	}
}

func (h *TaskHandler) List(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": "No token, authorization denied"})
		return
	}

	var filters services.TaskFilters

	rawProjectID := ctx.Query("project_id")
	if rawProjectID == "" {
		rawProjectID = ctx.Query("projectId")
	}

	if rawProjectID != "" {
		projectID, err := parseID(rawProjectID)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid project id"})
			return
		}
		filters.ProjectID = projectID
	}

	filters.Status = ctx.Query("status")
	filters.Priority = ctx.Query("priority")

	tasks, err := h.tasks.List(userID, filters)

	if err != nil {
		respondError(ctx, err)
		return
	}

	response := make([]types.TaskResponse, 0, len(tasks))

	for i := range tasks {
		response = append(response, toTaskResponse(&tasks[i]))
	}

	ctx.JSON(http.StatusOK, response)
}

func (h *TaskHandler) Create(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": "No token, authorization denied"})
		return
	}

	var req CreateTaskRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request"})
		return
	}

	task, err := h.tasks.Create(userID, services.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		ProjectID:   req.ProjectID,
		Status:      req.Status,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
	})

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, toTaskResponse(task))
}

func (h *TaskHandler) Update(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": "No token, authorization denied"})
		return
	}

	id, err := parseID(ctx.Param("id"))

	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"message": "Task not found"})
		return
	}

	var req UpdateTaskRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request"})
		return
	}

	task, err := h.tasks.Update(userID, id, services.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
	})

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, toTaskResponse(task))
}

func (h *TaskHandler) Delete(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": "No token, authorization denied"})
		return
	}

	id, err := parseID(ctx.Param("id"))

	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"message": "Task not found"})
		return
	}

	if err := h.tasks.Delete(userID, id); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Task deleted"})
}
