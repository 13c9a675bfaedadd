package dataset

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// Load reads the dataset from dir, keeping only the registered columns.
// The first row is expected to be a header and is skipped.
// Missing markers ('?', empty cells and any dataset specific ones) become NaN.
func Load(dir string, meta Meta) (*mat.Dense, error) {
	path := filepath.Join(dir, meta.File)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open dataset file '%s': %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("could not read dataset file '%s': %w", path, err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("dataset file '%s' holds no observations", path)
	}
	records = records[1:] // header

	rows := len(records)
	cols := len(meta.Columns)
	data := mat.NewDense(rows, cols, nil)
	for i, record := range records {
		for j, col := range meta.Columns {
			if col >= len(record) {
				return nil, fmt.Errorf("row %d of '%s' has %d columns, need column %d", i+2, path, len(record), col)
			}
			v, err := parseCell(record[col], meta)
			if err != nil {
				return nil, fmt.Errorf("row %d of '%s': %w", i+2, path, err)
			}
			data.Set(i, j, v)
		}
	}
	return data, nil
}

func parseCell(cell string, meta Meta) (float64, error) {
	cell = strings.TrimSpace(cell)
	if cell == "" || cell == "?" {
		return math.NaN(), nil
	}
	for _, marker := range meta.Missing {
		if cell == marker {
			return math.NaN(), nil
		}
	}
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return 0, fmt.Errorf("could not parse cell %q: %w", cell, err)
	}
	return v, nil
}

// DropMissing returns a copy without the rows that hold at least one NaN.
// The benchmark needs a complete ground truth before amputation.
func DropMissing(data *mat.Dense) (*mat.Dense, error) {
	rows, cols := data.Dims()
	kept := make([]float64, 0, rows*cols)
	n := 0
rowLoop:
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if math.IsNaN(data.At(i, j)) {
				continue rowLoop
			}
		}
		kept = append(kept, data.RawRowView(i)...)
		n++
	}
	if n == 0 {
		return nil, fmt.Errorf("no complete observations left after dropping missing values")
	}
	return mat.NewDense(n, cols, kept), nil
}
