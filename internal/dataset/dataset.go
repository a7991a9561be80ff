// internal/dataset/dataset.go
// Package dataset loads the image-quality metrics records plotted by snrplot.
package dataset

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

const (
	// AllMethods is the selector value that disables method filtering.
	AllMethods = "All Methods"
	// Signal labels records captured with a signal present.
	Signal = "Signal"
	// NoSignal labels records captured without a signal.
	NoSignal = "No Signal"
)

// Groups lists the group labels in legend order.
var Groups = []string{NoSignal, Signal}

// Record is one measured image.
type Record struct {
	SNR        float64 `json:"snr"`
	SSIM       float64 `json:"ssim"`
	Method     string  `json:"method"`
	ImageIndex float64 `json:"image_index"`
	Group      string  `json:"group"`
}

// Load reads the full dataset from path. Entries are not validated.
func Load(path string) ([]Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open dataset %s: %w", path, err)
	}
	defer file.Close()

	records, err := Decode(file)
	if err != nil {
		return nil, fmt.Errorf("unable to parse dataset %s: %w", path, err)
	}
	return records, nil
}

// Decode reads a JSON array of records from r.
func Decode(r io.Reader) ([]Record, error) {
	var records []Record
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, err
	}
	return records, nil
}

// Methods returns the selector options: AllMethods followed by every distinct
// method in first-seen order.
func Methods(records []Record) []string {
	seen := make(map[string]struct{}, len(records))
	methods := []string{AllMethods}
	for _, r := range records {
		if _, ok := seen[r.Method]; ok {
			continue
		}
		seen[r.Method] = struct{}{}
		methods = append(methods, r.Method)
	}
	return methods
}

// Filter returns the records whose method equals category, or every record
// when category is AllMethods. The input slice is never modified.
func Filter(records []Record, category string) []Record {
	if category == AllMethods {
		return records
	}
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if r.Method == category {
			out = append(out, r)
		}
	}
	return out
}

// Indexed pairs a record with its position in the full dataset so callers can
// key visual elements by record identity.
type Indexed struct {
	Index int
	Record
}

// FilterIndexed is Filter but keeps each record's dataset position.
func FilterIndexed(records []Record, category string) []Indexed {
	out := make([]Indexed, 0, len(records))
	for i, r := range records {
		if category == AllMethods || r.Method == category {
			out = append(out, Indexed{Index: i, Record: r})
		}
	}
	return out
}

// Partition splits records by group, preserving order within each group.
func Partition(records []Record) map[string][]Record {
	parts := make(map[string][]Record, len(Groups))
	for _, g := range Groups {
		parts[g] = nil
	}
	for _, r := range records {
		parts[r.Group] = append(parts[r.Group], r)
	}
	return parts
}

// Extent returns the min and max of value over records. ok is false when
// records is empty.
func Extent(records []Record, value func(Record) float64) (lo, hi float64, ok bool) {
	for i, r := range records {
		v := value(r)
		if i == 0 || v < lo {
			lo = v
		}
		if i == 0 || v > hi {
			hi = v
		}
	}
	return lo, hi, len(records) > 0
}

// SNROf and SSIMOf are the metric accessors used for scales and binning.
func SNROf(r Record) float64  { return r.SNR }
func SSIMOf(r Record) float64 { return r.SSIM }
