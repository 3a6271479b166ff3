package domain

import (
	"fmt"
	"strings"
)

// Priority is the kanban priority selection key. Keys sort in priority
// order, so "2" (high) sorts above "0" (normal) when compared as strings.
type Priority string

const (
	PriorityNormal Priority = "0"
	PriorityMedium Priority = "1"
	PriorityHigh   Priority = "2"
)

var priorityLabels = map[Priority]string{
	PriorityNormal: "normal",
	PriorityMedium: "medium",
	PriorityHigh:   "high",
}

// Label returns the human name of the priority ("normal", "medium", "high").
func (p Priority) Label() string {
	if l, ok := priorityLabels[p]; ok {
		return l
	}
	return string(p)
}

// Rank returns 0 for normal, 1 for medium and 2 for high. Unknown keys rank
// below normal.
func (p Priority) Rank() int {
	switch p {
	case PriorityNormal:
		return 0
	case PriorityMedium:
		return 1
	case PriorityHigh:
		return 2
	default:
		return -1
	}
}

// ParsePriority accepts either the selection key ("0".."2") or the label.
func ParsePriority(s string) (Priority, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	for key, label := range priorityLabels {
		if v == string(key) || v == label {
			return key, nil
		}
	}
	return "", fmt.Errorf("invalid priority %q (expected normal, medium or high)", s)
}

// Status is the kanban status layered on top of the stage.
type Status string

const (
	StatusNormal  Status = "normal"
	StatusDone    Status = "done"
	StatusBlocked Status = "blocked"
)

var statusLabels = map[Status]string{
	StatusNormal:  "Normal Handling",
	StatusDone:    "Ready",
	StatusBlocked: "Special Handling",
}

// Label returns the display label used in board views.
func (s Status) Label() string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return string(s)
}

func ParseStatus(s string) (Status, error) {
	v := Status(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := statusLabels[v]; ok {
		return v, nil
	}
	return "", fmt.Errorf("invalid status %q (expected normal, done or blocked)", s)
}

// ValueType is the declared type of a time parameter. It selects how user
// input is coerced and how stored values are decoded.
type ValueType string

const (
	TypeDate    ValueType = "date"
	TypeString  ValueType = "string"
	TypeInteger ValueType = "integer"
	TypeFloat   ValueType = "float"
	TypeBoolean ValueType = "boolean"
	TypeJSON    ValueType = "json"
)

// ValueTypes lists the registered value types in display order.
var ValueTypes = []ValueType{TypeString, TypeInteger, TypeFloat, TypeBoolean, TypeDate, TypeJSON}

func (t ValueType) Valid() bool {
	for _, v := range ValueTypes {
		if v == t {
			return true
		}
	}
	return false
}
