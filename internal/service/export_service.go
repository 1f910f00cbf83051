package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/noah-isme/isp-backoffice-api/internal/table"
	appErrors "github.com/noah-isme/isp-backoffice-api/pkg/errors"
	"github.com/noah-isme/isp-backoffice-api/pkg/export"
)

type exportSource interface {
	Definition() table.Definition
	ViewRows(ctx context.Context, state table.ViewState) []table.Record
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

// ExportResult is a rendered document ready to download.
type ExportResult struct {
	Filename    string
	ContentType string
	Body        []byte
	Rows        int
}

// ExportService renders the full filtered and sorted view of a resource.
type ExportService struct {
	csv    csvRenderer
	pdf    pdfRenderer
	logger *zap.Logger
	now    func() time.Time
}

// NewExportService constructs an ExportService.
func NewExportService(csv csvRenderer, pdf pdfRenderer, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &ExportService{csv: csv, pdf: pdf, logger: logger, now: time.Now}
}

// ParseFormat validates a requested export format; empty means CSV.
func ParseFormat(raw string) (export.Format, error) {
	switch export.Format(strings.ToLower(strings.TrimSpace(raw))) {
	case "", export.FormatCSV:
		return export.FormatCSV, nil
	case export.FormatPDF:
		return export.FormatPDF, nil
	}
	return "", appErrors.WithFields("unsupported export format", []appErrors.FieldError{{Field: "format", Message: "format must be one of: csv pdf"}})
}

// Export renders every row of the view, ignoring the current page.
func (s *ExportService) Export(ctx context.Context, resource string, src exportSource, state table.ViewState, format export.Format) (*ExportResult, error) {
	def := src.Definition()
	rows := src.ViewRows(ctx, state)

	data := export.Dataset{
		Title:   cases.Title(language.English).String(resource),
		Headers: make([]string, 0, len(def.Columns)),
		Rows:    make([][]string, 0, len(rows)),
	}
	for _, col := range def.Columns {
		data.Headers = append(data.Headers, col.Label)
	}
	for _, row := range rows {
		cells := make([]string, 0, len(def.Columns))
		for _, col := range def.Columns {
			cells = append(cells, table.Display(table.Resolve(row, col.Key)))
		}
		data.Rows = append(data.Rows, cells)
	}

	var (
		body []byte
		err  error
	)
	switch format {
	case export.FormatPDF:
		body, err = s.pdf.Render(data)
	default:
		format = export.FormatCSV
		body, err = s.csv.Render(data)
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}

	s.logger.Info("export rendered", zap.String("resource", resource), zap.String("format", string(format)), zap.Int("rows", len(rows)))
	return &ExportResult{
		Filename:    fmt.Sprintf("%s-%s.%s", resource, s.now().UTC().Format("20060102-150405"), format),
		ContentType: format.ContentType(),
		Body:        body,
		Rows:        len(rows),
	}, nil
}
