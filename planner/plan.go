// Package planner turns freeform project descriptions into structured plans.
package planner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Plan is the structured output of a Parser.
type Plan struct {
	ProjectName        string  `json:"project_name" validate:"required"`
	ProjectDescription string  `json:"project_description"`
	ProjectManager     string  `json:"project_manager,omitempty"`
	StartDate          string  `json:"start_date,omitempty"`
	EndDate            string  `json:"end_date,omitempty"`
	Phases             []Phase `json:"phases" validate:"dive"`
}

type Phase struct {
	Title     string `json:"title" validate:"required"`
	Objective string `json:"objective,omitempty"`
	Tasks     []Task `json:"tasks" validate:"dive"`
}

type Task struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description,omitempty"`
	AssignedTo  string `json:"assigned_to,omitempty"`
	StartDate   string `json:"start_date,omitempty"`
	DueDate     string `json:"due_date,omitempty"`
}

// Parser turns text into a Plan.
type Parser interface {
	ParseProjectPlan(ctx context.Context, text string) (*Plan, error)
}

// ErrEmptyPlan is returned when the model output has no project name.
var ErrEmptyPlan = errors.New("plan has no project name")

// Decode reads a plan from model output, tolerating a surrounding
// markdown code fence.
func Decode(raw string) (*Plan, error) {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	var p Plan
	if err := json.Unmarshal([]byte(s), &p); err != nil {
		return nil, fmt.Errorf("decode plan: %w", err)
	}
	if strings.TrimSpace(p.ProjectName) == "" {
		return nil, ErrEmptyPlan
	}
	return &p, nil
}
