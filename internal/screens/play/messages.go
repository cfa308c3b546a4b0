package play

import (
	"github.com/abhisek/coinwise/internal/tracker"
)

// attemptReadyMsg is sent when the attempt has been started or resumed.
type attemptReadyMsg struct {
	Err error
}

// attemptDoneMsg is sent when the attempt has been finalized.
type attemptDoneMsg struct {
	Summary tracker.ScoreSummary
	Err     error
}

// attemptLeftMsg is sent after an abandon flush, right before
// navigating back home.
type attemptLeftMsg struct{}
