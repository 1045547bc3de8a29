package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyTitle    = errors.New("title is empty")
	ErrInvalidStatus = errors.New("invalid status, should be: new, planned, in progress or finished")
)

// Status of a task. Stored lowercase; parsing is case-insensitive.
type Status string

const (
	StatusNew        Status = "new"
	StatusPlanned    Status = "planned"
	StatusInProgress Status = "in progress"
	StatusFinished   Status = "finished"
)

type Task struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	Title        string     `db:"title" json:"title"`
	Description  string     `db:"description" json:"description,omitempty"`
	Status       Status     `db:"status" json:"status"`
	CreationTime time.Time  `db:"creation_time" json:"creation_time"`
	FinishTime   *time.Time `db:"finish_time" json:"finish_time,omitempty"`
	UserID       uuid.UUID  `db:"user_id" json:"user_id"`
}

// ParseStatus converts a client-supplied status string to its canonical
// form. Matching is case-insensitive so "In Progress" is accepted.
func ParseStatus(s string) (Status, error) {
	switch Status(strings.ToLower(strings.TrimSpace(s))) {
	case StatusNew:
		return StatusNew, nil
	case StatusPlanned:
		return StatusPlanned, nil
	case StatusInProgress:
		return StatusInProgress, nil
	case StatusFinished:
		return StatusFinished, nil
	default:
		return "", fmt.Errorf("%w: got %q", ErrInvalidStatus, s)
	}
}

// Valid reports whether the status is one of the recognized values.
func (s Status) Valid() bool {
	switch s {
	case StatusNew, StatusPlanned, StatusInProgress, StatusFinished:
		return true
	}
	return false
}

// ValidateTask guards which task states are legal to persist. It is the
// single validation gate for both the create and the update path.
// Pure: no I/O, no mutation of its inputs.
func ValidateTask(title string, status Status) error {
	if len(title) == 0 {
		return ErrEmptyTitle
	}
	if !status.Valid() {
		return fmt.Errorf("%w: got %q", ErrInvalidStatus, status)
	}
	return nil
}
