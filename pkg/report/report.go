package report

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/limaJavier/fixture/pkg/evo"
	"github.com/limaJavier/fixture/pkg/model"
	"github.com/samber/lo"
	"github.com/xuri/excelize/v2"
)

var ErrUnsupportedFormat = errors.New("unsupported report format")

var fixtureHeader = []string{"Court", "Hour", "Category", "Team1", "Team2", "Match", "Overlaps"}

// WriteFixture writes the assignment of the solution, one row per match ordered by court and hour.
// The first five columns follow the layout the seed reader accepts.
func WriteFixture(path string, input model.ModelInput, evaluator model.Evaluator, solution *evo.Solution) error {
	assignment := evaluator.Decode(solution.Genome)
	occupancy := lo.CountValues(assignment)

	order := lo.Range(len(assignment))
	slices.SortStableFunc(order, func(i, j int) int {
		if courts := strings.Compare(assignment[i].Court, assignment[j].Court); courts != 0 {
			return courts
		}
		return assignment[i].Hour - assignment[j].Hour
	})

	records := [][]string{fixtureHeader}
	for _, i := range order {
		match, slot := input.Matches[i], assignment[i]
		records = append(records, []string{
			slot.Court,
			fmt.Sprintf("%02d:00-%02d:00", slot.Hour, slot.Hour+1),
			match.Category,
			match.Home,
			match.Away,
			match.Id,
			strconv.Itoa(occupancy[slot] - 1),
		})
	}
	return writeRecords(path, "Fixture", records)
}

// WriteFront writes one row per solution with its objectives, constraints, total violation and genome
func WriteFront(path string, front []*evo.Solution) error {
	header := []string{"Solution", "Rank", "Feasible", "Violation"}
	if len(front) > 0 {
		header = append(header, lo.Times(len(front[0].Objectives), func(i int) string { return fmt.Sprintf("O%d", i+1) })...)
		header = append(header, lo.Times(len(front[0].Constraints), func(i int) string { return fmt.Sprintf("C%d", i) })...)
	}
	header = append(header, "Genome")

	records := [][]string{header}
	for i, solution := range front {
		record := []string{
			strconv.Itoa(i),
			strconv.Itoa(solution.Rank()),
			strconv.FormatBool(solution.Feasible()),
			formatFloat(solution.Violation()),
		}
		record = append(record, lo.Map(solution.Objectives, func(value float64, _ int) string { return formatFloat(value) })...)
		record = append(record, lo.Map(solution.Constraints, func(value float64, _ int) string { return formatFloat(value) })...)
		record = append(record, strings.Join(lo.Map(solution.Genome, func(gene int, _ int) string { return strconv.Itoa(gene) }), " "))
		records = append(records, record)
	}
	return writeRecords(path, "Front", records)
}

func writeRecords(path, sheet string, records [][]string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return writeCsv(path, records)
	case ".xlsx":
		return writeXlsx(path, sheet, records)
	default:
		return fmt.Errorf("%w: \"%v\"", ErrUnsupportedFormat, path)
	}
}

func writeCsv(path string, records [][]string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create report: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.WriteAll(records); err != nil {
		return fmt.Errorf("cannot write report: %w", err)
	}
	return file.Close()
}

func writeXlsx(path, sheet string, records [][]string) error {
	file := excelize.NewFile()
	defer file.Close()

	if err := file.SetSheetName(file.GetSheetName(0), sheet); err != nil {
		return err
	}
	for i, record := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		row := lo.Map(record, func(value string, _ int) any { return value })
		if err := file.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("cannot write row %d: %w", i+1, err)
		}
	}

	if err := file.SaveAs(path); err != nil {
		return fmt.Errorf("cannot save report: %w", err)
	}
	return nil
}

func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
