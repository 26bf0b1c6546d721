// Package ai answers questions about a project board with an external LLM.
package ai

import (
	"context"
	"strings"
	"time"

	"project-board-api/internal"
	"project-board-api/internal/cache"
	"project-board-api/internal/models"

	"go.uber.org/zap"
)

const (
	emptySummary = "This project has no tasks yet. Add tasks to begin tracking progress!"
	emptyAnswer  = "This project has no tasks yet. Please add tasks before asking questions!"
)

// ProjectFinder loads a single project.
type ProjectFinder interface {
	Find(ctx context.Context, id string) (models.Project, error)
}

// TaskLister loads the tasks of a project.
type TaskLister interface {
	ListByProject(ctx context.Context, projectID string) ([]models.Task, error)
}

// Summary is the result of Summarize. Stats is nil for an empty project.
type Summary struct {
	Summary string            `json:"summary"`
	Stats   *models.TaskStats `json:"stats,omitempty"`
}

// AnswerContext echoes what the answer was grounded on.
type AnswerContext struct {
	ProjectName string `json:"projectName"`
	TotalTasks  int    `json:"totalTasks"`
}

// Answer is the result of Ask. Context is nil for an empty project.
type Answer struct {
	Answer  string         `json:"answer"`
	Context *AnswerContext `json:"context,omitempty"`
}

// Options configures a Mediator.
type Options struct {
	// PreferredModel is tried before DefaultModels when set.
	PreferredModel string
	// CacheTTL enables response caching keyed by prompt when > 0.
	CacheTTL time.Duration
	Logger   *zap.Logger
}

// Mediator builds prompts from stored projects and runs them through the model fallback loop.
type Mediator struct {
	projects ProjectFinder
	tasks    TaskLister
	gen      Generator
	models   []string
	cache    cache.Cache[string, string]
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewMediator returns a Mediator using gen for every attempt.
func NewMediator(projects ProjectFinder, tasks TaskLister, gen Generator, opts Options) *Mediator {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	m := &Mediator{
		projects: projects,
		tasks:    tasks,
		gen:      gen,
		models:   CandidateModels(opts.PreferredModel),
		cacheTTL: opts.CacheTTL,
		logger:   logger.Named("ai"),
	}
	if opts.CacheTTL > 0 {
		m.cache = cache.NewTTLCache[string, string](256)
	}
	return m
}

// Models returns the candidate models in the order they are tried.
func (m *Mediator) Models() []string {
	return append([]string(nil), m.models...)
}

// Summarize writes a progress summary of the project.
func (m *Mediator) Summarize(ctx context.Context, projectID string) (Summary, error) {
	if strings.TrimSpace(projectID) == "" {
		return Summary{}, internal.NewErrorf(internal.ErrorCodeInvalidArgument, "Please provide a project ID")
	}

	project, tasks, err := m.load(ctx, projectID)
	if err != nil {
		return Summary{}, err
	}
	if len(tasks) == 0 {
		return Summary{Summary: emptySummary}, nil
	}

	stats := models.CountByStatus(tasks)
	text, err := m.cached(ctx, summaryPrompt(project, tasks, stats))
	if err != nil {
		return Summary{}, err
	}
	return Summary{Summary: text, Stats: &stats}, nil
}

// Ask answers a free-text question using only the project's tasks as context.
func (m *Mediator) Ask(ctx context.Context, projectID, question string) (Answer, error) {
	question = strings.TrimSpace(question)
	if strings.TrimSpace(projectID) == "" || question == "" {
		return Answer{}, internal.NewErrorf(internal.ErrorCodeInvalidArgument, "Please provide both project ID and question")
	}

	project, tasks, err := m.load(ctx, projectID)
	if err != nil {
		return Answer{}, err
	}
	if len(tasks) == 0 {
		return Answer{Answer: emptyAnswer}, nil
	}

	text, err := m.cached(ctx, askPrompt(project, tasks, question))
	if err != nil {
		return Answer{}, err
	}
	return Answer{
		Answer: text,
		Context: &AnswerContext{
			ProjectName: project.Name,
			TotalTasks:  len(tasks),
		},
	}, nil
}

func (m *Mediator) load(ctx context.Context, projectID string) (models.Project, []models.Task, error) {
	project, err := m.projects.Find(ctx, projectID)
	if err != nil {
		return models.Project{}, nil, err
	}
	tasks, err := m.tasks.ListByProject(ctx, projectID)
	if err != nil {
		return models.Project{}, nil, err
	}
	return project, tasks, nil
}

func (m *Mediator) cached(ctx context.Context, prompt string) (string, error) {
	if m.cache == nil {
		return m.generate(ctx, prompt)
	}

	key := cache.Key(prompt)
	if text, ok := m.cache.Get(key); ok {
		m.logger.Debug("generation served from cache")
		return text, nil
	}
	text, err := m.generate(ctx, prompt)
	if err != nil {
		return "", err
	}
	m.cache.Set(key, text, m.cacheTTL)
	return text, nil
}
