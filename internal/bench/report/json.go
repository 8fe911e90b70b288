package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// StdoutPath makes WriteJSON print to standard output.
const StdoutPath = "-"

func Encode(w io.Writer, r *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}

func WriteJSON(r *Report, path string) error {
	if path == StdoutPath {
		return Encode(os.Stdout, r)
	}

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
