package domain

import (
	"fmt"
	"regexp"
	"time"
)

var modelNamePattern = regexp.MustCompile(`^[a-z][a-z0-9_]*(\.[a-z][a-z0-9_]*)*$`)

// EntityType is a registered host entity type, e.g. "project.task".
type EntityType struct {
	Model     string
	Name      string `validate:"required"`
	CreatedAt time.Time
}

// ValidateModel checks that Model is a dotted lowercase technical name.
func (e *EntityType) ValidateModel() error {
	if e.Model == "" {
		return fmt.Errorf("model is required")
	}
	if !modelNamePattern.MatchString(e.Model) {
		return fmt.Errorf("model %q must be dotted lowercase words (e.g. project.task)", e.Model)
	}
	return nil
}

// Card is the generic stage-taggable record persisted by basekit.
type Card struct {
	ID          string
	Model       string `validate:"required"`
	Name        string `validate:"required"`
	Description string
	Kanban

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (c *Card) KanbanState() *Kanban { return &c.Kanban }
func (c *Card) RecordID() string     { return c.ID }

// MoveTo assigns stage to the card. Stages of another entity type are
// rejected.
func (c *Card) MoveTo(stage *Stage, now time.Time) error {
	if stage != nil && !stage.Accepts(c.Model) {
		return &ValidationError{Fields: map[string]string{
			"stage": fmt.Sprintf("stage %q belongs to %s, not %s", stage.Name, stage.Model, c.Model),
		}}
	}
	c.SetStage(stage)
	c.UpdatedAt = now
	return nil
}

// Duplicate returns a copy without identity, stage or status, which are not
// carried over to copies.
func (c *Card) Duplicate(now time.Time) *Card {
	dup := *c
	dup.ID = ""
	dup.Name = c.Name + " (copy)"
	dup.SetStage(nil)
	dup.Status = StatusNormal
	dup.CreatedAt = now
	dup.UpdatedAt = now
	return &dup
}
