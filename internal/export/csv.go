package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/sadopc/studydesk/internal/model"
)

func TasksToCSV(tasks []model.Task, path string) error {
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		rows = append(rows, []string{
			t.ID.String(),
			t.Title,
			t.Subject,
			formatTime(t.DueDate),
			strconv.FormatBool(t.IsExam),
			strconv.FormatBool(t.Completed),
			t.Description,
		})
	}
	return writeCSV(path, []string{"ID", "Title", "Subject", "Due", "Exam", "Completed", "Description"}, rows)
}

func SessionsToCSV(sessions []model.TimerSession, path string) error {
	rows := make([][]string, 0, len(sessions))
	for _, s := range sessions {
		rows = append(rows, []string{
			s.Date,
			string(s.Mode),
			strconv.Itoa(s.DurationMinutes),
			formatDuration(int64(s.DurationMinutes) * 60),
		})
	}
	return writeCSV(path, []string{"Date", "Mode", "Minutes", "Duration"}, rows)
}

func writeCSV(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write(header); err != nil {
		return err
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(time.RFC3339)
}

func formatDuration(secs int64) string {
	h := secs / 3600
	m := (secs % 3600) / 60
	s := secs % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
