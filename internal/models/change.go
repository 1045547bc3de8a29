package models

import (
	"time"

	"github.com/google/uuid"
)

// Change is an immutable snapshot of a task's fields as they were
// immediately before an update was applied. Rows are append-only: they are
// never mutated and only disappear when the parent task is deleted.
type Change struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	Title        string     `db:"title" json:"title"`
	Description  string     `db:"description" json:"description,omitempty"`
	Status       Status     `db:"status" json:"status"`
	CreationTime time.Time  `db:"creation_time" json:"creation_time"`
	FinishTime   *time.Time `db:"finish_time" json:"finish_time,omitempty"`
	TaskID       uuid.UUID  `db:"task_id" json:"task_id"`
	RecordedAt   time.Time  `db:"recorded_at" json:"recorded_at"`
}
