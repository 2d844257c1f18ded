package client

import (
	"math"

	"github.com/workzen-dev/workzen/internal/types"
)

// Derived views are pure functions over the current collections. They hold
// no state of their own and are recomputed on every render.

type DashboardStats struct {
	TotalProjects int `json:"total_projects"`
	TotalTasks    int `json:"total_tasks"`
	Completed     int `json:"completed"`
	InProgress    int `json:"in_progress"`
	Pending       int `json:"pending"`
}

func ComputeDashboardStats(projects []types.ProjectResponse, tasks []types.TaskResponse) DashboardStats {
	stats := DashboardStats{
		TotalProjects: len(projects),
		TotalTasks:    len(tasks),
	}

	for _, task := range tasks {
		switch task.Status {
		case types.TaskStatusCompleted:
			stats.Completed++
		case types.TaskStatusInProgress:
			stats.InProgress++
		case types.TaskStatusPending:
			stats.Pending++
		}
	}

	return stats
}

// RecentTasks returns the first five tasks in the collection's current
// (newest-first) order.
func RecentTasks(tasks []types.TaskResponse) []types.TaskResponse {
	if len(tasks) > 5 {
		tasks = tasks[:5]
	}
	out := make([]types.TaskResponse, len(tasks))
	copy(out, tasks)
	return out
}

// RecentProjects returns the first four projects in newest-first order.
func RecentProjects(projects []types.ProjectResponse) []types.ProjectResponse {
	if len(projects) > 4 {
		projects = projects[:4]
	}
	out := make([]types.ProjectResponse, len(projects))
	copy(out, projects)
	return out
}

// ProjectProgress is the completion percentage of a project's tasks,
// rounded to the nearest integer. A project with no tasks is at 0.
func ProjectProgress(projectID uint, tasks []types.TaskResponse) int {
	total := 0
	completed := 0

	for _, task := range tasks {
		if task.ProjectID != projectID {
			continue
		}
		total++
		if task.Status == types.TaskStatusCompleted {
			completed++
		}
	}

	if total == 0 {
		return 0
	}

	return int(math.Round(100 * float64(completed) / float64(total)))
}

// CalendarBuckets groups tasks with a due date by calendar day, keyed
// YYYY-MM-DD. The time-of-day component is ignored.
func CalendarBuckets(tasks []types.TaskResponse) map[string][]types.TaskResponse {
	buckets := make(map[string][]types.TaskResponse)

	for _, task := range tasks {
		if task.DueDate == nil {
			continue
		}
		day := task.DueDate.Format("2006-01-02")
		buckets[day] = append(buckets[day], task)
	}

	return buckets
}

type KanbanColumn struct {
	Status string               `json:"status"`
	Tasks  []types.TaskResponse `json:"tasks"`
}

// KanbanColumns groups tasks into the three fixed status columns.
func KanbanColumns(tasks []types.TaskResponse) []KanbanColumn {
	statuses := []string{
		types.TaskStatusPending,
		types.TaskStatusInProgress,
		types.TaskStatusCompleted,
	}

	columns := make([]KanbanColumn, 0, len(statuses))

	for _, status := range statuses {
		column := KanbanColumn{Status: status, Tasks: []types.TaskResponse{}}
		for _, task := range tasks {
			if task.Status == status {
				column.Tasks = append(column.Tasks, task)
			}
		}
		columns = append(columns, column)
	}

	return columns
}
