package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/isp-backoffice-api/internal/snapshot"
	"github.com/noah-isme/isp-backoffice-api/internal/table"
	appErrors "github.com/noah-isme/isp-backoffice-api/pkg/errors"
	"github.com/noah-isme/isp-backoffice-api/pkg/export"
)

type failingRenderer struct{}

func (failingRenderer) Render(data export.Dataset) ([]byte, error) {
	return nil, errors.New("disk full")
}

func newExportFixture() (*ExportService, *ResourceView) {
	svc := NewExportService(nil, nil, nil)
	svc.now = func() time.Time { return fixedNow }
	view := NewResourceView(staticSnapshot(snapshot.Customers, numberedCustomers(25)), CustomerTable, nil, ViewConfig{}, nil)
	return svc, view
}

func TestExportCSVIgnoresPaging(t *testing.T) {
	svc, view := newExportFixture()
	state := table.NewViewState()
	state.ToggleFilter("ACTIVE", "status")
	state.SetCurrentPage(2)

	result, err := svc.Export(context.Background(), snapshot.Customers, view, state, export.FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, 20, result.Rows)
	assert.Equal(t, "customers-20260301-093000.csv", result.Filename)
	assert.Equal(t, "text/csv; charset=utf-8", result.ContentType)

	lines := strings.Split(strings.TrimSpace(string(result.Body)), "\n")
	require.Len(t, lines, 21)
	assert.Equal(t, "Name,Email,Phone,City,Bundles,Status,Created", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "Customer 01,,,Beirut,Fiber 100,ACTIVE"))
}

func TestExportPDF(t *testing.T) {
	svc, view := newExportFixture()

	result, err := svc.Export(context.Background(), snapshot.Customers, view, table.NewViewState(), export.FormatPDF)
	require.NoError(t, err)
	assert.Equal(t, "customers-20260301-093000.pdf", result.Filename)
	assert.Equal(t, "application/pdf", result.ContentType)
	assert.True(t, strings.HasPrefix(string(result.Body), "%PDF"))
}

func TestExportRenderFailure(t *testing.T) {
	svc := NewExportService(failingRenderer{}, nil, nil)
	_, view := newExportFixture()

	_, err := svc.Export(context.Background(), snapshot.Customers, view, table.NewViewState(), export.FormatCSV)
	requireAppError(t, err, appErrors.ErrInternal.Code)
}

func TestParseFormat(t *testing.T) {
	format, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, export.FormatCSV, format)

	format, err = ParseFormat(" PDF ")
	require.NoError(t, err)
	assert.Equal(t, export.FormatPDF, format)

	_, err = ParseFormat("xlsx")
	appErr := requireAppError(t, err, appErrors.ErrValidation.Code)
	assert.Equal(t, "format must be one of: csv pdf", fieldMap(appErr.Details)["format"])
}
