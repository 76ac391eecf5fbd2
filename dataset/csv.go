package dataset

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/epigraph-tools/lapis/engine"
)

// ============================================================================
// CSV I/O — Load, Parse, Export
// ============================================================================
// The loader is the only place a hard failure can surface: an unreadable or
// unparsable file. Everything downstream degrades instead of erroring.
// ============================================================================

// DefaultFile is the data file looked for in the working directory.
const DefaultFile = "inscriptions_data.csv"

// ErrEmpty reports a CSV with no header row.
var ErrEmpty = errors.New("dataset: empty CSV input")

// Parse converts CSV bytes into a Dataset. The first row is the header and
// fixes the column set; data rows of a different width are padded or
// truncated to it. Cell text is trimmed; an empty cell is the missing value.
func Parse(data []byte) (*engine.Dataset, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("dataset: failed to read CSV header: %w", err)
	}
	columns := make([]string, len(header))
	for i, h := range header {
		columns[i] = strings.TrimSpace(h)
	}

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("dataset: failed to read CSV row %d: %w", len(rows)+2, err)
		}
		row := make([]string, len(record))
		for i, cell := range record {
			row[i] = strings.TrimSpace(cell)
		}
		rows = append(rows, row)
	}

	return engine.NewDataset(columns, rows), nil
}

// LoadFile reads and parses a CSV file.
func LoadFile(path string) (*engine.Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: failed to read %s: %w", path, err)
	}
	return Parse(data)
}

// LoadFileOrSample loads a CSV file, falling back to the built-in sample
// dataset when the file is missing or unparsable. The returned source names
// what was actually loaded ("sample" on fallback), and err carries the load
// failure for the caller to surface as a notice — the session still starts.
func LoadFileOrSample(path string) (ds *engine.Dataset, source string, err error) {
	ds, err = LoadFile(path)
	if err != nil {
		return Sample(), SourceSample, err
	}
	return ds, path, nil
}

// SourceSample is the source label used when the built-in data is active.
const SourceSample = "sample"

// Export serializes a (possibly filtered) view to CSV: header row first,
// columns in the view's existing order, no index column. Parsing the output
// reproduces the view's rows and columns.
func Export(v engine.View) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(v.Columns()); err != nil {
		return nil, fmt.Errorf("dataset: failed to write CSV header: %w", err)
	}
	for i := 0; i < v.Len(); i++ {
		if err := w.Write(v.Row(i)); err != nil {
			return nil, fmt.Errorf("dataset: failed to write CSV row %d: %w", i+1, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("dataset: failed to flush CSV: %w", err)
	}
	return buf.Bytes(), nil
}
