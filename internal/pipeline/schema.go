package pipeline

import "strings"

// NormalizeFunc canonicalizes a trimmed cell value. A false return means the
// value was unrecognizable; extraction records the miss and moves on.
type NormalizeFunc func(string) (string, bool)

// ColumnSpec binds a semantic field name to a spreadsheet column index and an
// optional normalizer. Specs are evaluated independently per field so one bad
// cell never aborts extraction of the rest of the row.
type ColumnSpec struct {
	Name      string
	Index     int
	Normalize NormalizeFunc
}

// Cell returns the trimmed cell at index i, or "" when the row is shorter.
func Cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// extractRow evaluates every spec against the row and returns the extracted
// field map plus the names of fields whose normalizer rejected a non-empty
// cell (kept for diagnostics only).
func extractRow(row []string, schema []ColumnSpec) (map[string]string, []string) {
	fields := make(map[string]string, len(schema))
	var failed []string

	for _, spec := range schema {
		raw := Cell(row, spec.Index)
		if spec.Normalize == nil {
			fields[spec.Name] = raw
			continue
		}
		v, ok := spec.Normalize(raw)
		if !ok {
			fields[spec.Name] = ""
			if raw != "" {
				failed = append(failed, spec.Name)
			}
			continue
		}
		fields[spec.Name] = v
	}

	return fields, failed
}

// rowIsEmpty reports whether every cell of the row is blank after trimming.
func rowIsEmpty(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
