package request_models

import "time"

// StatsWindow selects the analytics range. Days and Start/End are mutually
// exclusive; all zero means the default trailing window.
type StatsWindow struct {
	Days  int
	Start time.Time
	End   time.Time
	Dense bool
}
