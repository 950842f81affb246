// Package xlsx writes archive batches as an Excel workbook.
package xlsx

import (
	"context"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/custodia-labs/quizarc/internal/core/domain"
	"github.com/custodia-labs/quizarc/internal/core/ports/driven"
	"github.com/custodia-labs/quizarc/internal/exporters/rows"
)

// Ensure Exporter implements the interface.
var _ driven.Exporter = (*Exporter)(nil)

// SheetName is the worksheet holding the questions.
const SheetName = "题库"

// Column widths, in Headers order.
var columnWidths = []float64{18, 60, 40, 30, 60}

// Exporter writes one worksheet with a header row and one row per question.
type Exporter struct {
	builder *rows.Builder
}

// New creates an xlsx exporter. Options configure the row builder.
func New(opts ...rows.Option) *Exporter {
	return &Exporter{builder: rows.NewBuilder(opts...)}
}

// Format returns "xlsx".
func (e *Exporter) Format() string {
	return "xlsx"
}

// Extension returns ".xlsx".
func (e *Exporter) Extension() string {
	return ".xlsx"
}

// Export builds the workbook in memory and writes it to w.
func (e *Exporter) Export(_ context.Context, w io.Writer, batches []domain.ArchiveBatch) error {
	data, err := e.builder.Build(batches)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	if err := e.layout(f); err != nil {
		return err
	}

	if err := writeRow(f, 1, rows.Headers); err != nil {
		return err
	}
	for i, r := range data {
		if err := writeRow(f, i+2, r.Values()); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

// layout sets column widths, a wrapping body style and a bold header.
func (e *Exporter) layout(f *excelize.File) error {
	body, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
	})
	if err != nil {
		return fmt.Errorf("creating style: %w", err)
	}
	header, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return fmt.Errorf("creating style: %w", err)
	}

	for i, width := range columnWidths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(SheetName, col, col, width); err != nil {
			return fmt.Errorf("setting width of %s: %w", col, err)
		}
		if err := f.SetColStyle(SheetName, col, body); err != nil {
			return fmt.Errorf("styling %s: %w", col, err)
		}
	}

	last, err := excelize.CoordinatesToCellName(len(rows.Headers), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(SheetName, "A1", last, header); err != nil {
		return fmt.Errorf("styling header: %w", err)
	}
	return nil
}

func writeRow(f *excelize.File, row int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	cells := make([]any, len(values))
	for i, v := range values {
		cells[i] = v
	}
	if err := f.SetSheetRow(SheetName, cell, &cells); err != nil {
		return fmt.Errorf("writing row %d: %w", row, err)
	}
	return nil
}
