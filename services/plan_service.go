package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"consultancy-backend/models"
	"consultancy-backend/planner"

	"gorm.io/gorm"
)

// PlanResult is what ImportPlan created.
type PlanResult struct {
	Project *models.Project `json:"project"`
	Tasks   []models.Task   `json:"tasks"`
}

type PlanService struct {
	base
	parser planner.Parser
}

// NewPlanService builds the service; parser may be nil when no text parser is
// configured, in which case only structured plans can be imported.
func NewPlanService(db *gorm.DB, parser planner.Parser) *PlanService {
	return &PlanService{base: newBase(db), parser: parser}
}

// ErrNoParser is returned by Parse when no text parser is configured.
var ErrNoParser = errors.New("plan parser not configured")

// Parse runs the text parser without writing anything.
func (s *PlanService) Parse(ctx context.Context, text string) (*planner.Plan, error) {
	if s.parser == nil {
		return nil, &ExternalServiceError{Service: "plan parser", Err: ErrNoParser}
	}
	if strings.TrimSpace(text) == "" {
		return nil, newValidationError("text", "is required")
	}
	plan, err := s.parser.ParseProjectPlan(ctx, text)
	if err != nil {
		return nil, &ExternalServiceError{Service: "plan parser", Err: err}
	}
	return plan, nil
}

// ImportText parses text and imports the result.
func (s *PlanService) ImportText(ctx context.Context, text string) (*PlanResult, error) {
	plan, err := s.Parse(ctx, text)
	if err != nil {
		return nil, err
	}
	return s.Import(ctx, plan)
}

// Import creates one project and one task per planned task, through the same
// creation path as the project and task endpoints, in a single transaction.
func (s *PlanService) Import(ctx context.Context, plan *planner.Plan) (*PlanResult, error) {
	if plan == nil || strings.TrimSpace(plan.ProjectName) == "" {
		return nil, newValidationError("project_name", "is required")
	}
	out := &PlanResult{Tasks: []models.Task{}}
	err := s.tx(ctx, func(tx *gorm.DB) error {
		in := ProjectInput{
			Name:        plan.ProjectName,
			Description: plan.ProjectDescription,
			Status:      models.ProjectPlanning,
			StartDate:   planDate(plan.StartDate),
			DueDate:     planDate(plan.EndDate),
		}
		if m := strings.TrimSpace(plan.ProjectManager); m != "" {
			in.TeamMembers = []string{m}
		}
		project, err := createProject(tx, in)
		if err != nil {
			return err
		}
		out.Project = project

		for _, phase := range plan.Phases {
			for _, pt := range phase.Tasks {
				desc := phase.Title
				if pt.Description != "" {
					desc = phase.Title + ": " + pt.Description
				}
				task, err := createTask(tx, TaskInput{
					Title:       pt.Title,
					Description: desc,
					ProjectID:   &project.Id,
					AssignedTo:  pt.AssignedTo,
					StartDate:   planDate(pt.StartDate),
					DueDate:     planDate(pt.DueDate),
				})
				if err != nil {
					return err
				}
				out.Tasks = append(out.Tasks, *task)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// planDate parses a YYYY-MM-DD date; anything else is dropped.
func planDate(s string) *time.Time {
	t, err := time.Parse(time.DateOnly, strings.TrimSpace(s))
	if err != nil {
		return nil
	}
	return &t
}
