package model

// Timer is the persisted countdown record.
//
// RemainingTime is authoritative only while IsActive is false; while the
// timer runs, live remaining time is derived from StartTime and Duration.
// StartTime is retained after pausing as the last start reference.
type Timer struct {
	ID                 string `json:"id"`
	Duration           int64  `json:"duration"`           // configured countdown length, seconds
	StartTime          int64  `json:"startTime"`          // epoch milliseconds of last (re)start
	IsActive           bool   `json:"isActive"`
	RemainingTime      int64  `json:"remainingTime"`      // seconds; frozen snapshot when inactive
	IsNotificationMode bool   `json:"isNotificationMode"` // set once the countdown reached zero
	CreatedAt          int64  `json:"createdAt"`          // epoch seconds, store-assigned
	UpdatedAt          int64  `json:"updatedAt"`          // epoch seconds, refreshed on every write
}

// TimerUpdate carries a partial-field merge for a timer record. Nil fields
// are left untouched; CreatedAt is immutable and UpdatedAt is always
// re-derived by the store.
type TimerUpdate struct {
	Duration           *int64 `json:"duration,omitempty"`
	StartTime          *int64 `json:"startTime,omitempty"`
	IsActive           *bool  `json:"isActive,omitempty"`
	RemainingTime      *int64 `json:"remainingTime,omitempty"`
	IsNotificationMode *bool  `json:"isNotificationMode,omitempty"`
}

// IsEmpty reports whether the update carries no fields.
func (u TimerUpdate) IsEmpty() bool {
	return u.Duration == nil && u.StartTime == nil && u.IsActive == nil &&
		u.RemainingTime == nil && u.IsNotificationMode == nil
}
