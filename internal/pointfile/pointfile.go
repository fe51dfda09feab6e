// Package pointfile reads nTop point-cloud exports into ordered coordinate
// sequences. Exports are loosely structured CSV: column labels vary between
// nTop versions ("X" vs "X_LE" vs "Leading_X"), headers are optional, and
// files may start with a UTF-8 BOM. Normalization resolves the coordinate
// columns through a fixed priority list and always preserves row order.
package pointfile

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"avlgen/internal/geom"
)

// Role declares which edge a point file describes. It selects the
// edge-specific column names tried during schema resolution.
type Role string

const (
	RoleLeading  Role = "leading"
	RoleTrailing Role = "trailing"
)

// candidateSets returns the coordinate column-name sets for a role, in
// resolution priority order. Names are compared canonicalized: case and
// the separators "_", "-", " ", "." are ignored, so "X_LE" and "xle"
// both match XLE.
func candidateSets(role Role) [][3]string {
	edge := "LE"
	word := "LEADING"
	if role == RoleTrailing {
		edge = "TE"
		word = "TRAILING"
	}
	return [][3]string{
		{"X", "Y", "Z"},
		{"X" + edge, "Y" + edge, "Z" + edge},
		{word + "X", word + "Y", word + "Z"},
	}
}

func canon(name string) string {
	s := strings.ToUpper(strings.TrimSpace(name))
	return strings.Map(func(r rune) rune {
		switch r {
		case '_', '-', ' ', '.':
			return -1
		}
		return r
	}, s)
}

// Read loads a point file from disk and normalizes it. The result is one
// Point3 per data row, in file order.
func Read(path string, role Role) ([]geom.Point3, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open point file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // ragged rows are handled during normalization
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return Normalize(rows, role)
}

// Normalize converts raw CSV rows into an ordered Point3 sequence. The
// input is not mutated.
//
// Column resolution, first match wins:
//  1. exact X, Y, Z
//  2. edge-prefixed XLE/YLE/ZLE (or XTE/YTE/ZTE for the trailing role)
//  3. descriptive Leading_X/Leading_Y/Leading_Z (or Trailing_*)
//  4. positionally, the first three columns
//
// A row with fewer than three usable fields yields *SchemaError; a field
// that is not a real number yields *ParseError. Both carry the offending
// 1-based row index.
func Normalize(rows [][]string, role Role) ([]geom.Point3, error) {
	if len(rows) > 0 && len(rows[0]) > 0 {
		rows = stripBOM(rows)
	}
	if len(rows) == 0 {
		return nil, &SchemaError{Reason: "point file contains no rows"}
	}

	cols, start := resolveColumns(rows[0], role)

	points := make([]geom.Point3, 0, len(rows)-start)
	for i := start; i < len(rows); i++ {
		p, err := parseRow(rows[i], cols, i+1)
		if err != nil {
			return nil, err
		}
		points = append(points, p)
	}

	if len(points) == 0 {
		return nil, &SchemaError{Reason: "point file contains no data rows"}
	}
	return points, nil
}

// resolveColumns inspects the first row and returns the X/Y/Z column
// indices plus the index of the first data row.
func resolveColumns(first []string, role Role) ([3]int, int) {
	positional := [3]int{0, 1, 2}

	if rowIsNumeric(first) {
		// Headerless export: positional from the first row.
		return positional, 0
	}

	header := make(map[string]int, len(first))
	for i, name := range first {
		if _, exists := header[canon(name)]; !exists {
			header[canon(name)] = i
		}
	}

	for _, set := range candidateSets(role) {
		xi, okX := header[set[0]]
		yi, okY := header[set[1]]
		zi, okZ := header[set[2]]
		if okX && okY && okZ {
			return [3]int{xi, yi, zi}, 1
		}
	}

	// Unrecognized header: fall back to the first three columns of the
	// data rows (the header row itself is skipped).
	return positional, 1
}

func parseRow(row []string, cols [3]int, line int) (geom.Point3, error) {
	var vals [3]float64
	for axis, col := range cols {
		if col >= len(row) || strings.TrimSpace(row[col]) == "" {
			return geom.Point3{}, &SchemaError{
				Row:    line,
				Reason: fmt.Sprintf("fewer than 3 usable coordinate fields (missing column %d)", col+1),
			}
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(row[col]), 64)
		if err != nil {
			return geom.Point3{}, &ParseError{Row: line, Column: col + 1, Field: row[col], Err: err}
		}
		vals[axis] = v
	}
	return geom.Point3{X: vals[0], Y: vals[1], Z: vals[2]}, nil
}

func rowIsNumeric(row []string) bool {
	if len(row) < 3 {
		return false
	}
	for _, f := range row[:3] {
		if _, err := strconv.ParseFloat(strings.TrimSpace(f), 64); err != nil {
			return false
		}
	}
	return true
}

// stripBOM removes a UTF-8 byte order mark from the first field. nTop
// exports written on Windows routinely carry one.
func stripBOM(rows [][]string) [][]string {
	trimmed := strings.TrimPrefix(rows[0][0], "\ufeff")
	if trimmed == rows[0][0] {
		return rows
	}
	out := make([][]string, len(rows))
	copy(out, rows)
	firstRow := make([]string, len(rows[0]))
	copy(firstRow, rows[0])
	firstRow[0] = trimmed
	out[0] = firstRow
	return out
}
