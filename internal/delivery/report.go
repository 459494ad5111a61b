package delivery

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/earthdata-tools/aster2tif/internal/georef"
	"github.com/gocarina/gocsv"
)

type ReportRow struct {
	File    string `csv:"file"`
	Granule string `csv:"granule"`
	Status  string `csv:"status"`
	Mode    string `csv:"mode"`
	EPSG    int    `csv:"epsg"`
	Bands   int    `csv:"bands"`
	Error   string `csv:"error"`
}

func reportRows(mode georef.Mode, results []FileResult) []*ReportRow {
	rows := make([]*ReportRow, 0, len(results))
	for _, r := range results {
		row := &ReportRow{
			File:    r.File,
			Granule: r.Granule,
			Status:  string(r.Status),
			Mode:    string(mode),
			EPSG:    r.EPSG,
			Bands:   len(r.Outputs),
		}
		if r.Err != nil {
			row.Error = r.Err.Error()
		}
		rows = append(rows, row)
	}
	return rows
}

// WriteReport saves one CSV row per input file.
func WriteReport(path string, mode georef.Mode, results []FileResult) error {
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return fmt.Errorf("failed to create report folder: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}
	defer file.Close()

	rows := reportRows(mode, results)
	if err := gocsv.MarshalFile(&rows, file); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// ReadReport loads a report written by WriteReport.
func ReadReport(path string) ([]*ReportRow, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var rows []*ReportRow
	if err := gocsv.UnmarshalFile(file, &rows); err != nil {
		return nil, fmt.Errorf("failed to read report: %w", err)
	}
	return rows, nil
}
