package domain

import (
	"encoding/json"
	"time"
)

// HistoryAction identifies the kind of schedule mutation recorded
type HistoryAction string

const (
	ActionSlotCreation    HistoryAction = "slot_creation"
	ActionSlotEdition     HistoryAction = "slot_edition"
	ActionSlotDeletion    HistoryAction = "slot_deletion"
	ActionSlotRestriction HistoryAction = "slot_restriction"
)

// CourseHistory is one immutable entry of the course audit log.
// Every slot mutation appends exactly one entry attributed to the
// acting user; entries are never updated or deleted.
type CourseHistory struct {
	ID       int64
	CourseID int64
	Action   HistoryAction

	// Snapshot of the slot at the moment of the mutation
	SlotStartDate   *time.Time
	SlotEndDate     *time.Time
	SlotAddress     *string
	SlotMeetingLink *string

	// Update holds the old/new field diff for slot_edition entries
	Update json.RawMessage

	CreatedBy int64
	CreatedAt time.Time
}
