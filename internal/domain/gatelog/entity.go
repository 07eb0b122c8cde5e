// internal/domain/gatelog/entity.go
package gatelog

import (
	"database/sql"
	"time"
)

// Direction of a gate scan.
type Direction string

const (
	DirectionEntry Direction = "entry"
	DirectionExit  Direction = "exit"
)

// Valid reports whether d is a known direction.
func (d Direction) Valid() bool {
	return d == DirectionEntry || d == DirectionExit
}

// ScanLog is one entry/exit scan captured at the hostel gate. Scans are
// journaled locally first and forwarded to the upstream API by the sync
// worker, so a gate device keeps working while the upstream is unreachable.
type ScanLog struct {
	ID         string       `json:"id" db:"id"`
	StudentID  string       `json:"student_id" db:"student_id"`
	Direction  Direction    `json:"direction" db:"direction"`
	Method     string       `json:"method" db:"method"` // qr, manual
	DeviceName string       `json:"device_name,omitempty" db:"device_name"`
	Tags       []string     `json:"tags,omitempty" db:"tags"`
	RecordedAt time.Time    `json:"recorded_at" db:"recorded_at"`
	Synced     bool         `json:"synced" db:"synced"`
	SyncedAt   sql.NullTime `json:"synced_at,omitempty" db:"synced_at"`
}
