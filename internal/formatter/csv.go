package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"
)

// csvFormatter formats scans as CSV rows
type csvFormatter struct{}

// NewCSV creates a new CSV formatter
func NewCSV() Formatter {
	return &csvFormatter{}
}

func (f *csvFormatter) Format(reports []*Report) ([]byte, error) {
	var b bytes.Buffer
	writer := csv.NewWriter(&b)

	headers := []string{
		"Source",
		"Classification",
		"Confidence",
		"Details",
		"Provider",
		"Timestamp",
		"Error",
		"Message",
	}

	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, r := range reports {
		record := []string{r.Source, "", "", "", "", "", errorText(r), singleLine(r.Message, 100)}
		if res := r.Result; res != nil {
			record[1] = res.Classification.String()
			record[2] = fmt.Sprintf("%.1f", res.Confidence)
			record[3] = singleLine(res.Details, 200)
			record[4] = res.Provider
			record[5] = formatCSVTime(res.Timestamp)
		}

		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return b.Bytes(), nil
}

// formatCSVTime formats time for CSV output
func formatCSVTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02 15:04:05")
}
