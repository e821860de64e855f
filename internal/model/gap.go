package model

import "time"

// FocusHint labels what a free block is best suited for. Display hint only;
// nothing downstream branches on it.
type FocusHint string

// Focus hint constants.
const (
	FocusDeepWork FocusHint = "deep_work"
	FocusAdmin    FocusHint = "admin"
)

// Gap is a contiguous free interval within working hours, long enough to be
// worth reporting. Gaps never overlap and are always clipped to the
// configured working window.
type Gap struct {
	Start   time.Time
	End     time.Time
	Minutes int
	Hint    FocusHint
}
