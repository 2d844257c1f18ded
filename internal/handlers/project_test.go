package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/workzen-dev/workzen/internal/types"
)

func createProject(t *testing.T, r *gin.Engine, token, title string) types.ProjectResponse {
	t.Helper()

	rec := doRequest(t, r, http.MethodPost, "/api/projects", token, map[string]string{"title": title})
	require.Equal(t, http.StatusCreated, rec.Code)

	var project types.ProjectResponse
	decodeBody(t, rec, &project)
	return project
}

func TestProjectCreateAppliesDefaults(t *testing.T) {
	r := setupRouter(t)
	token := registerUser(t, r, "Alice", "alice@example.com")

	project := createProject(t, r, token, "Launch")

	require.Equal(t, "Launch", project.Title)
	require.Equal(t, types.ProjectStatusNotStarted, project.Status)
	require.Equal(t, types.PriorityMedium, project.Priority)
}

func TestProjectCreateRequiresTitle(t *testing.T) {
	r := setupRouter(t)
	token := registerUser(t, r, "Alice", "alice@example.com")

	rec := doRequest(t, r, http.MethodPost, "/api/projects", token, map[string]string{"title": "  "})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	decodeBody(t, rec, &body)
	require.Equal(t, "Title is required", body["message"])
}

func TestProjectListReturnsOwnRecordsNewestFirst(t *testing.T) {
	r := setupRouter(t)
	aliceToken := registerUser(t, r, "Alice", "alice@example.com")
	bobToken := registerUser(t, r, "Bob", "bob@example.com")

	createProject(t, r, aliceToken, "First")
	createProject(t, r, aliceToken, "Second")
	createProject(t, r, bobToken, "Bob's")

	rec := doRequest(t, r, http.MethodGet, "/api/projects", aliceToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var projects []types.ProjectResponse
	decodeBody(t, rec, &projects)
	require.Len(t, projects, 2)
	require.Equal(t, "Second", projects[0].Title)
	require.Equal(t, "First", projects[1].Title)
}

func TestProjectGetStatusCodes(t *testing.T) {
	r := setupRouter(t)
	aliceToken := registerUser(t, r, "Alice", "alice@example.com")
	bobToken := registerUser(t, r, "Bob", "bob@example.com")

	project := createProject(t, r, aliceToken, "Launch")

	rec := doRequest(t, r, http.MethodGet, fmt.Sprintf("/api/projects/%d", project.ID), aliceToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, r, http.MethodGet, fmt.Sprintf("/api/projects/%d", project.ID), bobToken, nil)
	require.Equal(t, http.StatusForbidden, rec.Code)

	var body map[string]string
	decodeBody(t, rec, &body)
	require.Equal(t, "Not authorized", body["message"])

	rec = doRequest(t, r, http.MethodGet, "/api/projects/99999", aliceToken, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	decodeBody(t, rec, &body)
	require.Equal(t, "Project not found", body["message"])
}

func TestProjectUpdatePartialFields(t *testing.T) {
	r := setupRouter(t)
	token := registerUser(t, r, "Alice", "alice@example.com")

	project := createProject(t, r, token, "Launch")

	rec := doRequest(t, r, http.MethodPut, fmt.Sprintf("/api/projects/%d", project.ID), token, map[string]string{
		"status": types.ProjectStatusCompleted,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var updated types.ProjectResponse
	decodeBody(t, rec, &updated)
	require.Equal(t, "Launch", updated.Title)
	require.Equal(t, types.ProjectStatusCompleted, updated.Status)
	require.Equal(t, project.ID, updated.ID)
	require.Equal(t, project.OwnerID, updated.OwnerID)
}

func TestProjectDeleteCascades(t *testing.T) {
	r := setupRouter(t)
	token := registerUser(t, r, "Alice", "alice@example.com")

	project := createProject(t, r, token, "Doomed")

	rec := doRequest(t, r, http.MethodPost, "/api/tasks", token, map[string]interface{}{
		"title":      "Task under doomed",
		"project_id": project.ID,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(t, r, http.MethodDelete, fmt.Sprintf("/api/projects/%d", project.ID), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	decodeBody(t, rec, &body)
	require.Equal(t, "Project deleted", body["message"])

	rec = doRequest(t, r, http.MethodGet, "/api/tasks", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var tasks []types.TaskResponse
	decodeBody(t, rec, &tasks)
	require.Empty(t, tasks)
}
