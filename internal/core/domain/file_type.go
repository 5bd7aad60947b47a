package domain

import "fmt"

// FileType names an export the grading service can produce for an analysis.
type FileType string

// Known export kinds.
const (
	// FileTypeCSV is the raw grade table as CSV.
	FileTypeCSV FileType = "csv"

	// FileTypeXLSX is the raw grade table as an Excel workbook.
	FileTypeXLSX FileType = "xlsx"

	// FileTypeAvgGrades is the per-subject average grade chart.
	FileTypeAvgGrades FileType = "avg_grades"

	// FileTypeTermDynamics is the per-term score chart.
	FileTypeTermDynamics FileType = "term_dynamics"
)

// FileTypes returns the known export kinds in display order.
func FileTypes() []FileType {
	return []FileType{FileTypeCSV, FileTypeXLSX, FileTypeAvgGrades, FileTypeTermDynamics}
}

// IsKnown returns true if the file type is in the known export set.
func (f FileType) IsKnown() bool {
	switch f {
	case FileTypeCSV, FileTypeXLSX, FileTypeAvgGrades, FileTypeTermDynamics:
		return true
	default:
		return false
	}
}

// Validate returns ErrUnknownFileType for a kind outside the known set.
// Unknown kinds are still forwarded to the grading service.
func (f FileType) Validate() error {
	if f.IsKnown() {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrUnknownFileType, string(f))
}

// FileName returns the name a downloaded payload is saved under.
// Unknown kinds are saved as "<type>.png".
func (f FileType) FileName() string {
	switch f {
	case FileTypeCSV:
		return "grades.csv"
	case FileTypeXLSX:
		return "grades.xlsx"
	default:
		return string(f) + ".png"
	}
}

// String returns the string representation.
func (f FileType) String() string {
	return string(f)
}

// Description returns a human-readable description of the file type.
func (f FileType) Description() string {
	switch f {
	case FileTypeCSV:
		return "Grades (CSV)"
	case FileTypeXLSX:
		return "Grades (Excel)"
	case FileTypeAvgGrades:
		return "Average grade by subject (PNG)"
	case FileTypeTermDynamics:
		return "Score dynamics by term (PNG)"
	default:
		return "Unknown"
	}
}
