package services

import (
	"context"
	"errors"

	"github.com/custodia-labs/tripdata/internal/core/domain"
	"github.com/custodia-labs/tripdata/internal/core/ports/driven"
	"github.com/custodia-labs/tripdata/internal/core/ports/driving"
)

// Ensure InspectService implements the interface.
var _ driving.Inspector = (*InspectService)(nil)

// InspectService previews workbooks without touching the store.
type InspectService struct {
	workbooks driven.WorkbookOpener
}

// NewInspectService creates an inspect service.
func NewInspectService(workbooks driven.WorkbookOpener) *InspectService {
	return &InspectService{workbooks: workbooks}
}

// Inspect returns a preview of every sheet in workbook order.
func (s *InspectService) Inspect(ctx context.Context, workbookPath string, limit int) ([]driving.SheetPreview, error) {
	wb, err := s.workbooks.Open(workbookPath)
	if err != nil {
		if errors.Is(err, domain.ErrFileNotFound) {
			return nil, err
		}
		return nil, workbookFault(err)
	}
	defer wb.Close()

	names := wb.SheetNames()
	previews := make([]driving.SheetPreview, 0, len(names))
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		sheet, err := wb.Sheet(name)
		if err != nil {
			return nil, workbookFault(err)
		}
		previews = append(previews, previewSheet(sheet, limit))
	}
	return previews, nil
}

// previewSheet renders up to limit rows of sheet as raw strings.
func previewSheet(sheet *domain.Sheet, limit int) driving.SheetPreview {
	rows := sheet.Rows
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}

	preview := driving.SheetPreview{
		Name:     sheet.Name,
		RowCount: len(sheet.Rows),
		Columns:  append([]string(nil), sheet.Columns...),
		Rows:     make([][]string, 0, len(rows)),
	}
	for _, row := range rows {
		values := make([]string, len(sheet.Columns))
		for i, col := range sheet.Columns {
			values[i] = row.Get(col).String()
		}
		preview.Rows = append(preview.Rows, values)
	}
	return preview
}
