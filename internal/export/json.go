package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/clinicdesk/internal/store"
)

type jsonExport struct {
	ExportedAt string    `json:"exported_at"`
	Count      int       `json:"count"`
	Days       []jsonDay `json:"days"`
}

type jsonDay struct {
	Day       string `json:"day"`
	Role      string `json:"role"`
	Completed int    `json:"completed"`
	Total     int    `json:"total"`
	Percent   int    `json:"percent"`
	ResetAt   string `json:"reset_at"`
}

func ToJSON(days []store.DaySummary, path string) error {
	export := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Count:      len(days),
		Days:       []jsonDay{},
	}

	for _, d := range days {
		export.Days = append(export.Days, jsonDay{
			Day:       d.Day,
			Role:      d.Role,
			Completed: d.Completed,
			Total:     d.Total,
			Percent:   d.Percent(),
			ResetAt:   d.ResetAt.Local().Format(time.RFC3339),
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
