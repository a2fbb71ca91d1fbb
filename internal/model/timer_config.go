package model

const (
	DefaultStudyMinutes = 25
	DefaultBreakMinutes = 5

	MinStudyMinutes = 1
	MaxStudyMinutes = 120
	MinBreakMinutes = 1
	MaxBreakMinutes = 60
)

type TimerConfig struct {
	StudyDuration int `json:"studyDuration"`
	BreakDuration int `json:"breakDuration"`
}

func DefaultTimerConfig() TimerConfig {
	return TimerConfig{StudyDuration: DefaultStudyMinutes, BreakDuration: DefaultBreakMinutes}
}

// WithDefaults fills unset durations with 25/5.
func (c TimerConfig) WithDefaults() TimerConfig {
	if c.StudyDuration == 0 {
		c.StudyDuration = DefaultStudyMinutes
	}
	if c.BreakDuration == 0 {
		c.BreakDuration = DefaultBreakMinutes
	}
	return c
}

// Validate checks both durations against their bounds.
func (c TimerConfig) Validate() error {
	if c.StudyDuration < MinStudyMinutes || c.StudyDuration > MaxStudyMinutes {
		return &ValidationError{
			Field: "studyDuration",
			Msg:   "must be between 1 and 120 minutes",
		}
	}
	if c.BreakDuration < MinBreakMinutes || c.BreakDuration > MaxBreakMinutes {
		return &ValidationError{
			Field: "breakDuration",
			Msg:   "must be between 1 and 60 minutes",
		}
	}
	return nil
}

// Minutes returns the configured duration for mode.
func (c TimerConfig) Minutes(m Mode) int {
	if m == ModeBreak {
		return c.BreakDuration
	}
	return c.StudyDuration
}
