package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/clinicdesk/internal/store"
)

func ToCSV(days []store.DaySummary, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"Day", "Role", "Completed", "Total", "Percent", "Reset At"}); err != nil {
		return err
	}

	for _, d := range days {
		row := []string{
			d.Day,
			d.Role,
			fmt.Sprintf("%d", d.Completed),
			fmt.Sprintf("%d", d.Total),
			fmt.Sprintf("%d", d.Percent()),
			d.ResetAt.Local().Format(time.RFC3339),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
