// Package format renders catalog records for the CLI: a plain listing,
// a table, or JSON for scripting.
package format

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/snapvault/snapvault/internal/catalog"
)

// Output formats accepted by the history commands.
const (
	OutputSimple = "simple"
	OutputTable  = "table"
	OutputJSON   = "json"
)

// Records writes the given records to w in the named format.
func Records(w io.Writer, records []catalog.Record, output string) error {
	switch output {
	case OutputSimple, "":
		return simple(w, records)
	case OutputTable:
		return renderTable(w, records)
	case OutputJSON:
		return renderJSON(w, records)
	default:
		return fmt.Errorf("format: unknown output format %q (expected %s, %s, or %s)", output, OutputSimple, OutputTable, OutputJSON)
	}
}

func simple(w io.Writer, records []catalog.Record) error {
	for _, rec := range records {
		label := rec.WindowName
		if label == "" {
			label = rec.CaptureMode
		}
		_, err := fmt.Fprintf(w, "%d\t%s\t%s\t%s\n",
			rec.ID, rec.Timestamp.Local().Format("2006-01-02 15:04:05"), label, rec.Filepath)
		if err != nil {
			return err
		}
	}
	return nil
}

func renderTable(w io.Writer, records []catalog.Record) error {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"ID", "Captured", "Window", "Mode", "Size", "Dimensions", "Path"})

	for _, rec := range records {
		t.AppendRow(table.Row{
			rec.ID,
			rec.Timestamp.Local().Format("2006-01-02 15:04"),
			rec.WindowName,
			rec.CaptureMode,
			humanize.Bytes(uint64(rec.FileSize)),
			fmt.Sprintf("%dx%d", rec.Width, rec.Height),
			rec.Filepath,
		})
	}

	t.Render()
	return nil
}

// jsonRecord pins the wire shape so internal renames do not leak into
// scripted consumers.
type jsonRecord struct {
	ID          int64  `json:"id"`
	Filename    string `json:"filename"`
	Filepath    string `json:"filepath"`
	WindowName  string `json:"window_name,omitempty"`
	CaptureMode string `json:"capture_mode"`
	Timestamp   string `json:"timestamp"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	FileSize    int64  `json:"file_size"`
	Tags        string `json:"tags,omitempty"`
	Notes       string `json:"notes,omitempty"`
}

func renderJSON(w io.Writer, records []catalog.Record) error {
	out := make([]jsonRecord, 0, len(records))
	for _, rec := range records {
		out = append(out, jsonRecord{
			ID:          rec.ID,
			Filename:    rec.Filename,
			Filepath:    rec.Filepath,
			WindowName:  rec.WindowName,
			CaptureMode: rec.CaptureMode,
			Timestamp:   rec.Timestamp.UTC().Format(time.RFC3339),
			Width:       rec.Width,
			Height:      rec.Height,
			FileSize:    rec.FileSize,
			Tags:        rec.Tags,
			Notes:       rec.Notes,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
