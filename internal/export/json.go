package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/studydesk/internal/model"
)

type jsonExport struct {
	ExportedAt string        `json:"exported_at"`
	Tasks      []jsonTask    `json:"tasks"`
	Sessions   []jsonSession `json:"sessions"`
}

type jsonTask struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Subject     string `json:"subject,omitempty"`
	Due         string `json:"due,omitempty"`
	Exam        bool   `json:"exam"`
	Completed   bool   `json:"completed"`
	Description string `json:"description,omitempty"`
}

type jsonSession struct {
	Date     string `json:"date"`
	Mode     string `json:"mode"`
	Minutes  int    `json:"minutes"`
	Duration string `json:"duration"`
}

// ToJSON writes tasks and sessions into one pretty-printed document.
func ToJSON(tasks []model.Task, sessions []model.TimerSession, path string) error {
	export := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
	}
	for _, t := range tasks {
		export.Tasks = append(export.Tasks, jsonTask{
			ID:          t.ID.String(),
			Title:       t.Title,
			Subject:     t.Subject,
			Due:         formatTime(t.DueDate),
			Exam:        t.IsExam,
			Completed:   t.Completed,
			Description: t.Description,
		})
	}
	for _, s := range sessions {
		export.Sessions = append(export.Sessions, jsonSession{
			Date:     s.Date,
			Mode:     string(s.Mode),
			Minutes:  s.DurationMinutes,
			Duration: formatDuration(int64(s.DurationMinutes) * 60),
		})
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
