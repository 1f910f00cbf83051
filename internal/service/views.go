package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/noah-isme/isp-backoffice-api/internal/models"
	"github.com/noah-isme/isp-backoffice-api/internal/snapshot"
	"github.com/noah-isme/isp-backoffice-api/internal/table"
)

// ViewConfig bounds list paging.
type ViewConfig struct {
	ItemsPerPage int
	MaxPageSize  int
	PageButtons  int
}

// ListResult is one computed page of a resource view.
type ListResult struct {
	Rows       []table.Record
	Pagination models.Pagination
	Pages      []int
	View       table.ViewState
	Snapshot   snapshot.State
}

type recordSource interface {
	Records() []table.Record
	State() snapshot.State
	Refresh(ctx context.Context) error
}

// ResourceView computes table views over one snapshot.
type ResourceView struct {
	source recordSource
	def    table.Definition
	engine *table.Engine
	cfg    ViewConfig
	logger *zap.Logger
}

// NewResourceView binds a table definition to a snapshot.
func NewResourceView(source recordSource, def table.Definition, engine *table.Engine, cfg ViewConfig, logger *zap.Logger) *ResourceView {
	if engine == nil {
		engine = table.NewEngine("")
	}
	if cfg.ItemsPerPage <= 0 {
		cfg.ItemsPerPage = 10
	}
	if cfg.MaxPageSize <= 0 {
		cfg.MaxPageSize = 100
	}
	if cfg.PageButtons <= 0 {
		cfg.PageButtons = table.DefaultPageButtons
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ResourceView{source: source, def: def, engine: engine, cfg: cfg, logger: logger}
}

// Definition returns the table columns and facets.
func (v *ResourceView) Definition() table.Definition {
	return v.def
}

// List computes the requested page. A snapshot that was never loaded is loaded first;
// a failed load yields an empty page with the error reported in the snapshot state.
func (v *ResourceView) List(ctx context.Context, state table.ViewState, pageSize int) *ListResult {
	v.ensureLoaded(ctx)
	if pageSize <= 0 {
		pageSize = v.cfg.ItemsPerPage
	}
	if pageSize > v.cfg.MaxPageSize {
		pageSize = v.cfg.MaxPageSize
	}

	result := v.engine.Compute(v.def, v.source.Records(), state, pageSize)
	return &ListResult{
		Rows: result.Rows,
		Pagination: models.Pagination{
			Page:       state.CurrentPage,
			PageSize:   pageSize,
			TotalCount: result.TotalCount,
			TotalPages: result.TotalPages,
		},
		Pages:    table.PageWindow(state.CurrentPage, result.TotalPages, v.cfg.PageButtons),
		View:     state,
		Snapshot: v.source.State(),
	}
}

// Filters derives the facet options over the whole collection.
func (v *ResourceView) Filters(ctx context.Context) []table.FilterConfig {
	v.ensureLoaded(ctx)
	return table.FilterOptions(v.def, v.source.Records())
}

// ViewRows returns every row matching state in display order, unpaged.
func (v *ResourceView) ViewRows(ctx context.Context, state table.ViewState) []table.Record {
	v.ensureLoaded(ctx)
	rows := v.engine.Filter(v.def, v.source.Records(), state)
	v.engine.Sort(rows, state.SortKey, state.SortDirection)
	return rows
}

func (v *ResourceView) ensureLoaded(ctx context.Context) {
	state := v.source.State()
	if state.RefreshedAt != nil || state.Loading {
		return
	}
	if err := v.source.Refresh(ctx); err != nil {
		v.logger.Warn("initial snapshot load failed", zap.String("resource", state.Resource), zap.Error(err))
	}
}
