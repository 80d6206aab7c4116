package export

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"veriq/internal/result"
)

// Format selects the export interchange format.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

// NoResultsMessage is reported when an export is requested for an empty set.
const NoResultsMessage = "No results match the current filters."

// File is a rendered export ready to be written out.
type File struct {
	Name string
	Data []byte
}

// ExportFilteredResults renders a filtered result set as a downloadable file.
// An empty set never produces a file: the condition is reported through the
// supplied error channel (stderr when nil) because the caller evidently
// expected data, and (nil, nil) is returned.
func ExportFilteredResults(results []result.VerificationResult, format Format, opts Options, onError func(string)) (*File, error) {
	if onError == nil {
		onError = func(msg string) { fmt.Fprintln(os.Stderr, msg) }
	}
	if len(results) == 0 {
		onError(NoResultsMessage)
		return nil, nil
	}
	now := opts.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}
	var data []byte
	switch format {
	case FormatJSON:
		rendered, err := MarshalResults(results, opts)
		if err != nil {
			return nil, err
		}
		data = rendered
	case FormatCSV:
		var buf bytes.Buffer
		if err := WriteCSV(&buf, results, opts.GlobalRubric); err != nil {
			return nil, err
		}
		data = buf.Bytes()
	default:
		return nil, fmt.Errorf("unknown export format %q", format)
	}
	return &File{Name: Filename(format, now), Data: data}, nil
}

// Filename returns the conventional export name for a format and export date.
// The date is the export's own, not the data's timestamps.
func Filename(format Format, date time.Time) string {
	return fmt.Sprintf("filtered_results_%s.%s", date.UTC().Format("2006-01-02"), format)
}
