package client

import (
	"context"
	"sync"

	"github.com/workzen-dev/workzen/internal/types"
)

// Store mirrors the server's project and task collections. It is a
// non-authoritative cache: every mutation response is spliced back in as the
// canonical record, and a full re-fetch is the recovery path after any
// divergence.
//
// Fetches are tagged with a per-collection sequence number. A response that
// resolves after a newer fetch was issued is discarded, so rapid re-filtering
// cannot overwrite the collection with stale results.
type Store struct {
	client *Client

	mu sync.Mutex

	projects []types.ProjectResponse
	tasks    []types.TaskResponse

	loadingProjects bool
	loadingTasks    bool

	projectsErr error
	tasksErr    error

	projectFetchSeq uint64
	taskFetchSeq    uint64
}

func NewStore(client *Client) *Store {
	return &Store{client: client}
}

// Projects returns a snapshot of the cached project collection.
func (s *Store) Projects() []types.ProjectResponse {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := make([]types.ProjectResponse, len(s.projects))
	copy(snapshot, s.projects)
	return snapshot
}

// Tasks returns a snapshot of the cached task collection.
func (s *Store) Tasks() []types.TaskResponse {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := make([]types.TaskResponse, len(s.tasks))
	copy(snapshot, s.tasks)
	return snapshot
}

func (s *Store) LoadingProjects() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadingProjects
}

func (s *Store) LoadingTasks() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadingTasks
}

func (s *Store) ProjectsError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.projectsErr
}

func (s *Store) TasksError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tasksErr
}

// FetchProjects replaces the cached project collection with the server's.
func (s *Store) FetchProjects(ctx context.Context) error {
	s.mu.Lock()
	s.projectFetchSeq++
	seq := s.projectFetchSeq
	s.loadingProjects = true
	s.projectsErr = nil
	s.mu.Unlock()

	projects, err := s.client.ListProjects(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.projectFetchSeq {
		// A newer fetch superseded this one; drop the result.
		return nil
	}

	s.loadingProjects = false

	if err != nil {
		s.projectsErr = err
		return err
	}

	s.projects = projects
	return nil
}

// FetchTasks replaces the cached task collection with the server's answer
// for the given filters.
func (s *Store) FetchTasks(ctx context.Context, query TaskQuery) error {
	s.mu.Lock()
	s.taskFetchSeq++
	seq := s.taskFetchSeq
	s.loadingTasks = true
	s.tasksErr = nil
	s.mu.Unlock()

	tasks, err := s.client.ListTasks(ctx, query)

	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.taskFetchSeq {
		return nil
	}

	s.loadingTasks = false

	if err != nil {
		s.tasksErr = err
		return err
	}

	s.tasks = tasks
	return nil
}

func (s *Store) CreateProject(ctx context.Context, payload ProjectPayload) (*types.ProjectResponse, error) {
	project, err := s.client.CreateProject(ctx, payload)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.projects = append([]types.ProjectResponse{*project}, s.projects...)
	s.mu.Unlock()

	return project, nil
}

func (s *Store) UpdateProject(ctx context.Context, id uint, payload ProjectPayload) (*types.ProjectResponse, error) {
	project, err := s.client.UpdateProject(ctx, id, payload)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	for i := range s.projects {
		if s.projects[i].ID == id {
			s.projects[i] = *project
			break
		}
	}
	s.mu.Unlock()

	return project, nil
}

// DeleteProject removes the project and, mirroring the server-side cascade,
// every cached task that referenced it.
func (s *Store) DeleteProject(ctx context.Context, id uint) error {
	if err := s.client.DeleteProject(ctx, id); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	projects := s.projects[:0]
	for _, project := range s.projects {
		if project.ID != id {
			projects = append(projects, project)
		}
	}
	s.projects = projects

	tasks := s.tasks[:0]
	for _, task := range s.tasks {
		if task.ProjectID != id {
			tasks = append(tasks, task)
		}
	}
	s.tasks = tasks

	return nil
}

func (s *Store) CreateTask(ctx context.Context, payload TaskPayload) (*types.TaskResponse, error) {
	task, err := s.client.CreateTask(ctx, payload)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.tasks = append([]types.TaskResponse{*task}, s.tasks...)
	s.mu.Unlock()

	return task, nil
}

func (s *Store) UpdateTask(ctx context.Context, id uint, payload TaskPayload) (*types.TaskResponse, error) {
	task, err := s.client.UpdateTask(ctx, id, payload)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks[i] = *task
			break
		}
	}
	s.mu.Unlock()

	return task, nil
}

func (s *Store) DeleteTask(ctx context.Context, id uint) error {
	if err := s.client.DeleteTask(ctx, id); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tasks := s.tasks[:0]
	for _, task := range s.tasks {
		if task.ID != id {
			tasks = append(tasks, task)
		}
	}
	s.tasks = tasks

	return nil
}

// MoveTask changes a task's status, the kanban drag-and-drop contract: the
// cached column membership changes only after the server confirms.
func (s *Store) MoveTask(ctx context.Context, id uint, status string) (*types.TaskResponse, error) {
	return s.UpdateTask(ctx, id, TaskPayload{Status: &status})
}

// Invalidate drops both cached collections; callers re-fetch afterwards.
func (s *Store) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.projects = nil
	s.tasks = nil
	s.projectsErr = nil
	s.tasksErr = nil
}
