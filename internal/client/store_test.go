package client

import (
	"context"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/workzen-dev/workzen/internal/types"
)

func setupStore(t *testing.T) *Store {
	srv := startServer(t, nil)
	c, _ := newTestClient(t, srv)

	_, err := c.Register(context.Background(), "Alice", "alice@example.com", "secret123")
	require.NoError(t, err)

	return NewStore(c)
}

func str(s string) *string { return &s }

func TestStoreCreateProjectPrepends(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	first, err := store.CreateProject(ctx, ProjectPayload{Title: str("First")})
	require.NoError(t, err)
	second, err := store.CreateProject(ctx, ProjectPayload{Title: str("Second")})
	require.NoError(t, err)

	projects := store.Projects()
	require.Len(t, projects, 2)
	require.Equal(t, second.ID, projects[0].ID)
	require.Equal(t, first.ID, projects[1].ID)
}

func TestStoreUpdateReplacesById(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	project, err := store.CreateProject(ctx, ProjectPayload{Title: str("Launch")})
	require.NoError(t, err)

	updated, err := store.UpdateProject(ctx, project.ID, ProjectPayload{Status: str(types.ProjectStatusCompleted)})
	require.NoError(t, err)
	require.Equal(t, types.ProjectStatusCompleted, updated.Status)

	projects := store.Projects()
	require.Len(t, projects, 1)
	require.Equal(t, types.ProjectStatusCompleted, projects[0].Status)
}

func TestStoreFailedMutationLeavesCacheUntouched(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	_, err := store.CreateProject(ctx, ProjectPayload{Title: str("Launch")})
	require.NoError(t, err)

	before := store.Projects()

	_, err = store.CreateProject(ctx, ProjectPayload{Title: str("   ")})
	require.Error(t, err)

	require.Equal(t, before, store.Projects())
}

func TestStoreDeleteProjectCascadesLocally(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	doomed, err := store.CreateProject(ctx, ProjectPayload{Title: str("Doomed")})
	require.NoError(t, err)
	kept, err := store.CreateProject(ctx, ProjectPayload{Title: str("Kept")})
	require.NoError(t, err)

	_, err = store.CreateTask(ctx, TaskPayload{Title: str("Doomed task"), ProjectID: &doomed.ID})
	require.NoError(t, err)
	survivor, err := store.CreateTask(ctx, TaskPayload{Title: str("Kept task"), ProjectID: &kept.ID})
	require.NoError(t, err)

	require.NoError(t, store.DeleteProject(ctx, doomed.ID))

	projects := store.Projects()
	require.Len(t, projects, 1)
	require.Equal(t, kept.ID, projects[0].ID)

	// The cached tasks mirror the server-side cascade.
	tasks := store.Tasks()
	require.Len(t, tasks, 1)
	require.Equal(t, survivor.ID, tasks[0].ID)

	// And the server agrees after a re-fetch.
	require.NoError(t, store.FetchTasks(ctx, TaskQuery{}))
	tasks = store.Tasks()
	require.Len(t, tasks, 1)
	require.Equal(t, survivor.ID, tasks[0].ID)
}

func TestStoreMoveTaskUpdatesColumnMembership(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	project, err := store.CreateProject(ctx, ProjectPayload{Title: str("Launch")})
	require.NoError(t, err)

	created, err := store.CreateTask(ctx, TaskPayload{Title: str("Write copy"), ProjectID: &project.ID})
	require.NoError(t, err)

	columns := KanbanColumns(store.Tasks())
	require.Len(t, columns[0].Tasks, 1)

	moved, err := store.MoveTask(ctx, created.ID, types.TaskStatusCompleted)
	require.NoError(t, err)
	require.Equal(t, types.TaskStatusCompleted, moved.Status)

	columns = KanbanColumns(store.Tasks())
	require.Empty(t, columns[0].Tasks)
	require.Len(t, columns[2].Tasks, 1)
}

func TestStoreDashboardScenario(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	project, err := store.CreateProject(ctx, ProjectPayload{Title: str("Launch")})
	require.NoError(t, err)
	require.Equal(t, types.ProjectStatusNotStarted, project.Status)
	require.Equal(t, types.PriorityMedium, project.Priority)

	task, err := store.CreateTask(ctx, TaskPayload{Title: str("Write copy"), ProjectID: &project.ID})
	require.NoError(t, err)
	require.Equal(t, types.TaskStatusPending, task.Status)
	require.Equal(t, types.PriorityMedium, task.Priority)

	_, err = store.MoveTask(ctx, task.ID, types.TaskStatusCompleted)
	require.NoError(t, err)

	stats := ComputeDashboardStats(store.Projects(), store.Tasks())
	require.Equal(t, DashboardStats{
		TotalProjects: 1,
		TotalTasks:    1,
		Completed:     1,
		InProgress:    0,
		Pending:       0,
	}, stats)

	require.Equal(t, 100, ProjectProgress(project.ID, store.Tasks()))
}

func TestStoreDiscardsStaleFetch(t *testing.T) {
	staleEntered := make(chan struct{})
	staleRelease := make(chan struct{})
	var once sync.Once

	srv := startServer(t, func(req *http.Request) {
		// Hold the filtered fetch until the unfiltered one has resolved.
		if req.URL.Path == "/api/tasks" && req.URL.Query().Get("status") == types.TaskStatusCompleted {
			once.Do(func() { close(staleEntered) })
			<-staleRelease
		}
	})

	c, _ := newTestClient(t, srv)
	_, err := c.Register(context.Background(), "Alice", "alice@example.com", "secret123")
	require.NoError(t, err)

	store := NewStore(c)
	ctx := context.Background()

	project, err := store.CreateProject(ctx, ProjectPayload{Title: str("Launch")})
	require.NoError(t, err)
	_, err = store.CreateTask(ctx, TaskPayload{Title: str("Pending task"), ProjectID: &project.ID})
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		done <- store.FetchTasks(ctx, TaskQuery{Status: types.TaskStatusCompleted})
	}()

	<-staleEntered

	// A newer fetch supersedes the in-flight filtered one.
	require.NoError(t, store.FetchTasks(ctx, TaskQuery{}))
	require.Len(t, store.Tasks(), 1)

	close(staleRelease)
	require.NoError(t, <-done)

	// The stale (empty) result did not overwrite the newer one.
	require.Len(t, store.Tasks(), 1)
}

func TestStoreInvalidate(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	_, err := store.CreateProject(ctx, ProjectPayload{Title: str("Launch")})
	require.NoError(t, err)

	store.Invalidate()
	require.Empty(t, store.Projects())

	require.NoError(t, store.FetchProjects(ctx))
	require.Len(t, store.Projects(), 1)
}
