package seed

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"github.com/xuri/excelize/v2"
)

// Column order of a fixture table; the first row is a header
const (
	courtColumn = iota
	hourColumn
	categoryColumn
	team1Column
	team2Column
	fixtureColumns
)

var ErrUnsupportedFormat = errors.New("unsupported fixture format")

// FixtureRow is one booked match of an externally authored fixture
type FixtureRow struct {
	Court     string
	StartHour int
	Category  string
	Team1     string
	Team2     string
}

// ReadFixture reads a CSV or XLSX (first sheet) fixture. Rows lacking a court, a first team or a parsable hour
// are skipped and counted as malformed.
func ReadFixture(path string) (rows []FixtureRow, malformed int, err error) {
	var records [][]string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		records, err = readCsvRecords(path)
	case ".xlsx":
		records, err = readXlsxRecords(path)
	default:
		return nil, 0, fmt.Errorf("%w: \"%v\"", ErrUnsupportedFormat, path)
	}
	if err != nil {
		return nil, 0, err
	}

	rows, malformed = parseRecords(records)
	return rows, malformed, nil
}

func readCsvRecords(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open fixture: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // Spreadsheet exports drop trailing empty cells
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("cannot read fixture: %w", err)
	}
	return records, nil
}

func readXlsxRecords(path string) ([][]string, error) {
	file, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open fixture: %w", err)
	}
	defer file.Close()

	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}

	records, err := file.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("cannot read sheet \"%v\": %w", sheets[0], err)
	}
	return records, nil
}

func parseRecords(records [][]string) (rows []FixtureRow, malformed int) {
	rows = make([]FixtureRow, 0, len(records))
	for i, record := range records {
		if i == 0 {
			continue // Header
		}

		cells := lo.Map(record, func(cell string, _ int) string { return strings.TrimSpace(cell) })
		if lo.EveryBy(cells, func(cell string) bool { return cell == "" }) {
			continue
		}
		for len(cells) < fixtureColumns {
			cells = append(cells, "")
		}

		if cells[courtColumn] == "" || cells[team1Column] == "" || cells[hourColumn] == "" {
			malformed++
			continue
		}
		hour, err := ParseStartHour(cells[hourColumn])
		if err != nil {
			malformed++
			continue
		}

		rows = append(rows, FixtureRow{
			Court:     cells[courtColumn],
			StartHour: hour,
			Category:  cells[categoryColumn],
			Team1:     cells[team1Column],
			Team2:     cells[team2Column],
		})
	}
	return rows, malformed
}

// ParseStartHour accepts "9", "09:00" and time ranges such as "09:00-10:00"
func ParseStartHour(value string) (int, error) {
	start, _, _ := strings.Cut(value, "-")
	hourText, _, _ := strings.Cut(strings.TrimSpace(start), ":")

	hour, err := strconv.Atoi(strings.TrimSpace(hourText))
	if err != nil {
		return 0, fmt.Errorf("invalid start hour \"%v\": %w", value, err)
	}
	if hour < 0 || hour > 23 {
		return 0, fmt.Errorf("start hour \"%v\" is out of range", value)
	}
	return hour, nil
}
