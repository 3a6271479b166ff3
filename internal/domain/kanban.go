package domain

import (
	"cmp"
	"slices"
	"time"
)

// DefaultKanbanSequence is the sequence given to records that don't set one.
const DefaultKanbanSequence = 10

// Kanban holds the stage mixin fields. Host entities embed it to become
// stage-taggable.
type Kanban struct {
	Sequence int
	Priority Priority `validate:"oneof=0 1 2"`
	StageID  *string
	UserID   *string
	Color    int
	Status   Status `validate:"oneof=normal done blocked"`

	// Legends are read through the current stage and never persisted on the
	// record itself.
	LegendPriority string
	LegendBlocked  string
	LegendDone     string
	LegendNormal   string
}

// NewKanban returns mixin fields set to their defaults. The stage is left
// unset; the default stage is resolved by the service at creation time.
func NewKanban() Kanban {
	return Kanban{
		Sequence: DefaultKanbanSequence,
		Priority: PriorityNormal,
		Status:   StatusNormal,
	}
}

// ApplyDefaults fills zero-valued priority and status.
func (k *Kanban) ApplyDefaults() {
	if k.Priority == "" {
		k.Priority = PriorityNormal
	}
	if k.Status == "" {
		k.Status = StatusNormal
	}
}

// ApplyCreateDefaults fills the defaults of a record that is about to be
// created. A zero sequence counts as unset and takes DefaultKanbanSequence;
// updates keep whatever sequence they carry.
func (k *Kanban) ApplyCreateDefaults() {
	if k.Sequence == 0 {
		k.Sequence = DefaultKanbanSequence
	}
	k.ApplyDefaults()
}

// SetStage points the record at stage and refreshes the legends. A nil
// stage clears both.
func (k *Kanban) SetStage(stage *Stage) {
	if stage == nil {
		k.StageID = nil
		k.LegendPriority, k.LegendBlocked, k.LegendDone, k.LegendNormal = "", "", "", ""
		return
	}
	id := stage.ID
	k.StageID = &id
	k.LegendPriority = stage.LegendPriority
	k.LegendBlocked = stage.LegendBlocked
	k.LegendDone = stage.LegendDone
	k.LegendNormal = stage.LegendNormal
}

// StatusLegend returns the stage's explanation of the current status.
func (k *Kanban) StatusLegend() string {
	switch k.Status {
	case StatusDone:
		return k.LegendDone
	case StatusBlocked:
		return k.LegendBlocked
	default:
		return k.LegendNormal
	}
}

// KanbanRecord is implemented by every host entity embedding Kanban.
type KanbanRecord interface {
	KanbanState() *Kanban
	RecordID() string
}

// CompareKanban orders records by priority descending, then sequence
// ascending, then id so the order is total.
func CompareKanban(a, b KanbanRecord) int {
	ka, kb := a.KanbanState(), b.KanbanState()
	if c := cmp.Compare(kb.Priority.Rank(), ka.Priority.Rank()); c != 0 {
		return c
	}
	if c := cmp.Compare(ka.Sequence, kb.Sequence); c != 0 {
		return c
	}
	return cmp.Compare(a.RecordID(), b.RecordID())
}

// SortKanban sorts records in place in kanban order.
func SortKanban[T KanbanRecord](records []T) {
	slices.SortStableFunc(records, func(a, b T) int {
		return CompareKanban(a, b)
	})
}

// Stage is a named workflow step scoped to exactly one entity type.
type Stage struct {
	ID       string
	Name     string `validate:"required"`
	Model    string `validate:"required"`
	Sequence int
	Fold     bool

	LegendPriority string
	LegendBlocked  string
	LegendDone     string
	LegendNormal   string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Accepts reports whether the stage may be assigned to records of model.
func (s *Stage) Accepts(model string) bool {
	return s.Model == model
}
