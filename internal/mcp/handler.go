package mcp

import (
	"context"
	"fmt"
	"strconv"

	"github.com/empetur/consolidacao/internal/domain/activity"
	"github.com/empetur/consolidacao/internal/domain/inventory"
	"github.com/empetur/consolidacao/internal/domain/session"
	"github.com/empetur/consolidacao/internal/sheet"
)

// Handler implements the MCP tools on top of the domain services.
type Handler struct {
	sessions     SessionService
	activity     ActivityService
	exportDir    string
	exportFormat sheet.Format
}

// NewHandler creates a new MCP handler.
func NewHandler(services Services, exportDir string, exportFormat sheet.Format) *Handler {
	if exportDir == "" {
		exportDir = "."
	}
	if exportFormat == "" {
		exportFormat = sheet.FormatXLSX
	}
	return &Handler{
		sessions:     services.Sessions,
		activity:     services.Activity,
		exportDir:    exportDir,
		exportFormat: exportFormat,
	}
}

func (h *Handler) Status(ctx context.Context) (StatusResponse, error) {
	info, err := h.sessions.Status(ctx)
	if err != nil {
		return StatusResponse{}, MapError(err)
	}
	munis, err := h.sessions.Municipalities(ctx)
	if err != nil {
		return StatusResponse{}, MapError(err)
	}
	return StatusResponse{Session: toSessionResponse(info), Municipalities: munis}, nil
}

func (h *Handler) Municipalities(ctx context.Context) (MunicipalitiesResponse, error) {
	munis, err := h.sessions.Municipalities(ctx)
	if err != nil {
		return MunicipalitiesResponse{}, MapError(err)
	}
	return MunicipalitiesResponse{Municipalities: munis}, nil
}

func (h *Handler) OfficeView(ctx context.Context, params ViewParams) (OfficeViewResponse, error) {
	req, err := viewRequest(params)
	if err != nil {
		return OfficeViewResponse{}, MapError(err)
	}
	view, err := h.sessions.OfficeView(ctx, req)
	if err != nil {
		return OfficeViewResponse{}, MapError(err)
	}
	return OfficeViewResponse{
		Municipio:       view.Municipality,
		Columns:         view.Columns,
		Editable:        view.Editable,
		Rows:            view.Rows,
		Summary:         toSummaryResponse(view.Summary),
		Categories:      view.Categories,
		CategoryOptions: view.CategoryOptions,
		Session:         toSessionResponse(view.Session),
	}, nil
}

func (h *Handler) FieldView(ctx context.Context, params ViewParams) (FieldViewResponse, error) {
	req, err := viewRequest(params)
	if err != nil {
		return FieldViewResponse{}, MapError(err)
	}
	view, err := h.sessions.FieldView(ctx, req)
	if err != nil {
		return FieldViewResponse{}, MapError(err)
	}
	return FieldViewResponse{
		Municipio:       view.Municipality,
		Columns:         view.Columns,
		Editable:        view.Editable,
		Rows:            view.Rows,
		Progress:        view.Progress,
		Filtered:        view.Filtered,
		CategoryOptions: view.CategoryOptions,
		Session:         toSessionResponse(view.Session),
	}, nil
}

func (h *Handler) ApplyEdits(ctx context.Context, page inventory.Page, params EditParams) (EditResponse, error) {
	view := inventory.EditedView{
		Keys: params.Keys,
		Rows: make([]inventory.EditedRow, len(params.Rows)),
	}
	for i, row := range params.Rows {
		edited := make(inventory.EditedRow, len(row))
		for name, v := range row {
			edited[inventory.Column(name)] = cellText(v)
		}
		view.Rows[i] = edited
	}

	res, err := h.sessions.ApplyEdits(ctx, session.EditRequest{
		Page:         page,
		Municipality: params.Municipio,
		View:         view,
	})
	if err != nil {
		return EditResponse{}, MapError(err)
	}
	return EditResponse{Changed: res.Changed, Session: toSessionResponse(res.Session)}, nil
}

func (h *Handler) Save(ctx context.Context, params SaveParams) (SessionResponse, error) {
	info, err := h.sessions.Save(ctx, params.Force)
	if err != nil {
		return SessionResponse{}, MapError(err)
	}
	return toSessionResponse(info), nil
}

func (h *Handler) Reload(ctx context.Context, params ReloadParams) (SessionResponse, error) {
	info, err := h.sessions.Reload(ctx, params.Discard)
	if err != nil {
		return SessionResponse{}, MapError(err)
	}
	return toSessionResponse(info), nil
}

func (h *Handler) ExportRoute(ctx context.Context, params ExportRouteParams) (ExportRouteResponse, error) {
	format := h.exportFormat
	if params.Format != "" {
		f, err := sheet.ParseFormat(params.Format)
		if err != nil {
			return ExportRouteResponse{}, MapError(err)
		}
		format = f
	}

	exp, err := h.sessions.RouteExport(ctx, params.Municipio)
	if err != nil {
		return ExportRouteResponse{}, MapError(err)
	}
	path, err := sheet.WriteRoute(h.exportDir, exp, format)
	if err != nil {
		return ExportRouteResponse{}, MapError(err)
	}
	return ExportRouteResponse{Name: exp.Name, Path: path, Rows: len(exp.Items)}, nil
}

func (h *Handler) RecentActivity(ctx context.Context, params RecentActivityParams) (RecentActivityResponse, error) {
	if h.activity == nil {
		return RecentActivityResponse{Entries: []ActivityEntryResponse{}}, nil
	}
	opts := activity.ListActivityOptions{Limit: params.Limit, Offset: params.Offset}
	if params.Type != "" {
		t := activity.ActivityType(params.Type)
		opts.ActivityType = &t
	}
	entries, err := h.activity.GetRecentActivity(ctx, opts)
	if err != nil {
		return RecentActivityResponse{}, MapError(err)
	}
	resp := RecentActivityResponse{Entries: make([]ActivityEntryResponse, 0, len(entries))}
	for _, e := range entries {
		resp.Entries = append(resp.Entries, toActivityResponse(e))
	}
	return resp, nil
}

func viewRequest(params ViewParams) (session.ViewRequest, error) {
	origin := inventory.OriginAll
	if params.Origem != "" {
		origin = inventory.Origin(params.Origem)
		valid := false
		for _, o := range inventory.OriginOptions {
			if o == origin {
				valid = true
				break
			}
		}
		if !valid {
			return session.ViewRequest{}, fmt.Errorf("%w: origem %q", errInvalidParams, params.Origem)
		}
	}

	validations := make([]inventory.Validation, len(params.Validacoes))
	for i, v := range params.Validacoes {
		validations[i] = inventory.Validation(v)
	}

	return session.ViewRequest{
		Municipality: params.Municipio,
		Filter: inventory.Filter{
			Query:         params.Query,
			Validations:   validations,
			Origin:        origin,
			Categories:    params.Categorias,
			OnlyRoute:     params.SomenteRota,
			OnlyUnvisited: params.NaoVisitados,
		},
	}, nil
}

// cellText converts a JSON cell value to the text form of the table.
func cellText(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		if val {
			return "1"
		}
		return "0"
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprint(val)
	}
}
