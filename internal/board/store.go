package board

import (
	"context"
	"slices"
	"sync"

	"project-board-api/internal/ai"
	"project-board-api/internal/client"
	"project-board-api/internal/models"
)

// API is the remote side the store reads from and writes to.
type API interface {
	ListProjects(ctx context.Context) ([]models.Project, error)
	GetProject(ctx context.Context, id string) (models.Project, error)
	CreateProject(ctx context.Context, name, description string) (models.Project, error)
	UpdateProject(ctx context.Context, id string, upd client.ProjectUpdate) (models.Project, error)
	DeleteProject(ctx context.Context, id string) error
	ListTasks(ctx context.Context, projectID string) ([]models.Task, error)
	CreateTask(ctx context.Context, projectID string, in client.NewTask) (models.Task, error)
	UpdateTask(ctx context.Context, id string, upd client.TaskUpdate) (models.Task, error)
	DeleteTask(ctx context.Context, id string) error
	ReorderTasks(ctx context.Context, items []models.ReorderItem) error
	Summarize(ctx context.Context, projectID string) (ai.Summary, error)
	Ask(ctx context.Context, projectID, question string) (ai.Answer, error)
}

// AIKind tells which AI action produced a response.
type AIKind string

const (
	AISummary AIKind = "summary"
	AIAnswer  AIKind = "answer"
)

// AIResponse is the last AI output shown next to the board.
type AIResponse struct {
	Kind    AIKind            `json:"kind"`
	Text    string            `json:"text"`
	Stats   *models.TaskStats `json:"stats,omitempty"`
	Context *ai.AnswerContext `json:"context,omitempty"`
}

// State is everything the board view renders.
type State struct {
	Projects       []models.Project
	CurrentProject *models.Project
	Tasks          []models.Task
	Loading        bool
	Error          string
	AIResponse     *AIResponse
	AILoading      bool
}

// Store owns the board State and changes it through a closed set of actions.
// Actions run one at a time; Snapshot may be called concurrently.
type Store struct {
	api API

	actions sync.Mutex

	mu    sync.RWMutex
	state State
}

// NewStore returns an empty store backed by api.
func NewStore(api API) *Store {
	return &Store{api: api}
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := s.state
	st.Projects = slices.Clone(s.state.Projects)
	st.Tasks = slices.Clone(s.state.Tasks)
	if s.state.CurrentProject != nil {
		p := *s.state.CurrentProject
		st.CurrentProject = &p
	}
	if s.state.AIResponse != nil {
		r := *s.state.AIResponse
		st.AIResponse = &r
	}
	return st
}

func (s *Store) update(fn func(st *State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.state)
}

func (s *Store) begin() {
	s.update(func(st *State) {
		st.Loading = true
		st.Error = ""
	})
}

// fail records err as the visible error and clears the loading flags.
func (s *Store) fail(err error) error {
	s.update(func(st *State) {
		st.Loading = false
		st.AILoading = false
		st.Error = err.Error()
	})
	return err
}

func (s *Store) done(fn func(st *State)) {
	s.update(func(st *State) {
		st.Loading = false
		if fn != nil {
			fn(st)
		}
	})
}

func (s *Store) currentProjectID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.CurrentProject == nil {
		return ""
	}
	return s.state.CurrentProject.ID
}

// FetchProjects loads the project list.
func (s *Store) FetchProjects(ctx context.Context) error {
	s.actions.Lock()
	defer s.actions.Unlock()

	s.begin()
	projects, err := s.api.ListProjects(ctx)
	if err != nil {
		return s.fail(err)
	}
	s.done(func(st *State) { st.Projects = projects })
	return nil
}

// SelectProject makes id the current project and loads its tasks.
func (s *Store) SelectProject(ctx context.Context, id string) error {
	s.actions.Lock()
	defer s.actions.Unlock()

	s.begin()
	project, err := s.api.GetProject(ctx, id)
	if err != nil {
		return s.fail(err)
	}
	tasks, err := s.api.ListTasks(ctx, id)
	if err != nil {
		return s.fail(err)
	}
	s.done(func(st *State) {
		st.CurrentProject = &project
		st.Tasks = tasks
		st.AIResponse = nil
	})
	return nil
}

// CreateProject stores a new project and puts it first in the list.
func (s *Store) CreateProject(ctx context.Context, name, description string) (models.Project, error) {
	s.actions.Lock()
	defer s.actions.Unlock()

	s.begin()
	project, err := s.api.CreateProject(ctx, name, description)
	if err != nil {
		return models.Project{}, s.fail(err)
	}
	s.done(func(st *State) {
		st.Projects = append([]models.Project{project}, st.Projects...)
	})
	return project, nil
}

// UpdateProject edits a project in the list and, when selected, the current project.
func (s *Store) UpdateProject(ctx context.Context, id string, upd client.ProjectUpdate) (models.Project, error) {
	s.actions.Lock()
	defer s.actions.Unlock()

	s.begin()
	project, err := s.api.UpdateProject(ctx, id, upd)
	if err != nil {
		return models.Project{}, s.fail(err)
	}
	s.done(func(st *State) {
		for i := range st.Projects {
			if st.Projects[i].ID == id {
				st.Projects[i] = project
			}
		}
		if st.CurrentProject != nil && st.CurrentProject.ID == id {
			p := project
			st.CurrentProject = &p
		}
	})
	return project, nil
}

// DeleteProject removes a project; deleting the current project clears the board.
func (s *Store) DeleteProject(ctx context.Context, id string) error {
	s.actions.Lock()
	defer s.actions.Unlock()

	s.begin()
	if err := s.api.DeleteProject(ctx, id); err != nil {
		return s.fail(err)
	}
	s.done(func(st *State) {
		st.Projects = slices.DeleteFunc(st.Projects, func(p models.Project) bool { return p.ID == id })
		if st.CurrentProject != nil && st.CurrentProject.ID == id {
			st.CurrentProject = nil
			st.Tasks = nil
			st.AIResponse = nil
		}
	})
	return nil
}

// FetchTasks reloads the tasks of a project.
func (s *Store) FetchTasks(ctx context.Context, projectID string) error {
	s.actions.Lock()
	defer s.actions.Unlock()

	s.begin()
	tasks, err := s.api.ListTasks(ctx, projectID)
	if err != nil {
		return s.fail(err)
	}
	s.done(func(st *State) { st.Tasks = tasks })
	return nil
}

// CreateTask adds a task to a project and appends it to the board.
func (s *Store) CreateTask(ctx context.Context, projectID string, in client.NewTask) (models.Task, error) {
	s.actions.Lock()
	defer s.actions.Unlock()

	s.begin()
	task, err := s.api.CreateTask(ctx, projectID, in)
	if err != nil {
		return models.Task{}, s.fail(err)
	}
	s.done(func(st *State) { st.Tasks = append(st.Tasks, task) })
	return task, nil
}

// UpdateTask edits one task and replaces it on the board.
func (s *Store) UpdateTask(ctx context.Context, id string, upd client.TaskUpdate) (models.Task, error) {
	s.actions.Lock()
	defer s.actions.Unlock()

	s.begin()
	task, err := s.api.UpdateTask(ctx, id, upd)
	if err != nil {
		return models.Task{}, s.fail(err)
	}
	s.done(func(st *State) {
		for i := range st.Tasks {
			if st.Tasks[i].ID == id {
				st.Tasks[i] = task
			}
		}
	})
	return task, nil
}

// DeleteTask removes one task from the board.
func (s *Store) DeleteTask(ctx context.Context, id string) error {
	s.actions.Lock()
	defer s.actions.Unlock()

	s.begin()
	if err := s.api.DeleteTask(ctx, id); err != nil {
		return s.fail(err)
	}
	s.done(func(st *State) {
		st.Tasks = slices.DeleteFunc(st.Tasks, func(t models.Task) bool { return t.ID == id })
	})
	return nil
}

// MoveTask runs a drag gesture through Move, shows the result immediately and
// persists it. A no-op gesture sends nothing.
func (s *Store) MoveTask(ctx context.Context, drag DragResult) error {
	s.actions.Lock()
	defer s.actions.Unlock()

	s.mu.RLock()
	snapshot := s.state.Tasks
	s.mu.RUnlock()

	next, changed, err := Move(snapshot, drag)
	if err != nil {
		return s.fail(err)
	}
	if !changed {
		return nil
	}
	return s.persist(ctx, snapshot, next)
}

// ReorderTasks shows tasks as the new board immediately and persists their order.
func (s *Store) ReorderTasks(ctx context.Context, tasks []models.Task) error {
	s.actions.Lock()
	defer s.actions.Unlock()

	s.mu.RLock()
	snapshot := s.state.Tasks
	s.mu.RUnlock()

	return s.persist(ctx, snapshot, slices.Clone(tasks))
}

// persist applies next optimistically. When the bulk write fails the
// optimistic state is dropped and the current project's tasks are fetched
// again; previous is restored only if that fetch fails too.
func (s *Store) persist(ctx context.Context, previous, next []models.Task) error {
	s.update(func(st *State) {
		st.Tasks = next
		st.Error = ""
	})

	err := s.api.ReorderTasks(ctx, ReorderItems(next))
	if err == nil {
		return nil
	}

	s.fail(err)
	projectID := s.currentProjectID()
	if projectID != "" {
		if tasks, ferr := s.api.ListTasks(ctx, projectID); ferr == nil {
			s.update(func(st *State) { st.Tasks = tasks })
			return err
		}
	}
	s.update(func(st *State) { st.Tasks = previous })
	return err
}

// Summarize asks for an AI summary of a project.
func (s *Store) Summarize(ctx context.Context, projectID string) error {
	s.actions.Lock()
	defer s.actions.Unlock()

	s.startAI()
	res, err := s.api.Summarize(ctx, projectID)
	if err != nil {
		return s.fail(err)
	}
	s.update(func(st *State) {
		st.AILoading = false
		st.AIResponse = &AIResponse{Kind: AISummary, Text: res.Summary, Stats: res.Stats}
	})
	return nil
}

// Ask asks the AI a question about a project.
func (s *Store) Ask(ctx context.Context, projectID, question string) error {
	s.actions.Lock()
	defer s.actions.Unlock()

	s.startAI()
	res, err := s.api.Ask(ctx, projectID, question)
	if err != nil {
		return s.fail(err)
	}
	s.update(func(st *State) {
		st.AILoading = false
		st.AIResponse = &AIResponse{Kind: AIAnswer, Text: res.Answer, Context: res.Context}
	})
	return nil
}

func (s *Store) startAI() {
	s.update(func(st *State) {
		st.AILoading = true
		st.Error = ""
	})
}

// ClearError dismisses the visible error.
func (s *Store) ClearError() {
	s.update(func(st *State) { st.Error = "" })
}

// ClearAIResponse hides the last AI output.
func (s *Store) ClearAIResponse() {
	s.update(func(st *State) { st.AIResponse = nil })
}
