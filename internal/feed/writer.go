// Package feed renders the marketplace CSV files.
package feed

import (
	"encoding/csv"
	"fmt"
	"os"

	"stockfeed/internal/model"
)

// File names the marketplaces expect on their FTP drop.
const (
	TuleroFileName = "tulero_output.csv"
	Tyre24FileName = "tyre24_output.csv"
)

// WriteTulero writes the Tulero feed to path, header first.
func WriteTulero(path string, rows []model.TuleroRow) error {
	records := make([][]string, 0, len(rows))
	for i := range rows {
		records = append(records, rows[i].Record())
	}
	return writeCSV(path, model.TuleroColumns, records)
}

// WriteTyre24 writes the Tyre24 feed to path, header first.
func WriteTyre24(path string, rows []model.Tyre24Row) error {
	records := make([][]string, 0, len(rows))
	for i := range rows {
		records = append(records, rows[i].Record())
	}
	return writeCSV(path, model.Tyre24Columns, records)
}

func writeCSV(path string, header []string, records [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create feed file: %w", err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		f.Close()
		return fmt.Errorf("write feed header: %w", err)
	}
	if err := w.WriteAll(records); err != nil {
		f.Close()
		return fmt.Errorf("write feed rows: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
