package mcp

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/empetur/consolidacao/internal/domain/activity"
	"github.com/empetur/consolidacao/internal/domain/inventory"
	"github.com/empetur/consolidacao/internal/domain/session"
	"github.com/empetur/consolidacao/internal/sheet"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"
)

type sessionStub struct {
	statusFn         func(context.Context) (session.Info, error)
	municipalitiesFn func(context.Context) ([]string, error)
	officeViewFn     func(context.Context, session.ViewRequest) (*session.OfficeView, error)
	fieldViewFn      func(context.Context, session.ViewRequest) (*session.FieldView, error)
	applyEditsFn     func(context.Context, session.EditRequest) (*session.EditResult, error)
	saveFn           func(context.Context, bool) (session.Info, error)
	reloadFn         func(context.Context, bool) (session.Info, error)
	routeExportFn    func(context.Context, string) (inventory.RouteExport, error)
}

func (s sessionStub) Status(ctx context.Context) (session.Info, error) {
	return s.statusFn(ctx)
}
func (s sessionStub) Municipalities(ctx context.Context) ([]string, error) {
	return s.municipalitiesFn(ctx)
}
func (s sessionStub) OfficeView(ctx context.Context, req session.ViewRequest) (*session.OfficeView, error) {
	return s.officeViewFn(ctx, req)
}
func (s sessionStub) FieldView(ctx context.Context, req session.ViewRequest) (*session.FieldView, error) {
	return s.fieldViewFn(ctx, req)
}
func (s sessionStub) ApplyEdits(ctx context.Context, req session.EditRequest) (*session.EditResult, error) {
	return s.applyEditsFn(ctx, req)
}
func (s sessionStub) Save(ctx context.Context, force bool) (session.Info, error) {
	return s.saveFn(ctx, force)
}
func (s sessionStub) Reload(ctx context.Context, discard bool) (session.Info, error) {
	return s.reloadFn(ctx, discard)
}
func (s sessionStub) RouteExport(ctx context.Context, municipality string) (inventory.RouteExport, error) {
	return s.routeExportFn(ctx, municipality)
}

type activityStub struct {
	listFn func(context.Context, activity.ListActivityOptions) ([]activity.ActivityEntry, error)
}

func (a activityStub) GetRecentActivity(ctx context.Context, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error) {
	return a.listFn(ctx, opts)
}

func cleanInfo() session.Info {
	return session.Info{ID: "s1", State: session.StateClean, Rows: 2, Version: "v1", LoadedAt: time.Unix(0, 0)}
}

func TestHandler_ViewFilters(t *testing.T) {
	ctx := context.Background()

	var got session.ViewRequest
	handler := NewHandler(Services{Sessions: sessionStub{
		officeViewFn: func(_ context.Context, req session.ViewRequest) (*session.OfficeView, error) {
			got = req
			return &session.OfficeView{
				Municipality: "Recife",
				Summary:      inventory.Summarize(nil),
				Session:      cleanInfo(),
			}, nil
		},
	}}, "", "")

	resp, err := handler.OfficeView(ctx, ViewParams{
		Municipio:  "Recife",
		Query:      "forte",
		Validacoes: []string{"Sim", "Pendente"},
		Origem:     "Novo",
		Categorias: []string{"Praia"},
	})
	require.NoError(t, err)
	require.Equal(t, "Recife", resp.Municipio)
	require.Equal(t, "s1", resp.Session.SessionID)
	require.Equal(t, 0, resp.Summary.ByValidacao["Sim"])

	require.Equal(t, "Recife", got.Municipality)
	require.Equal(t, "forte", got.Filter.Query)
	require.Equal(t, []inventory.Validation{inventory.ValidationYes, inventory.ValidationPending}, got.Filter.Validations)
	require.Equal(t, inventory.OriginNew, got.Filter.Origin)
	require.Equal(t, []string{"Praia"}, got.Filter.Categories)

	_, err = handler.OfficeView(ctx, ViewParams{Origem: "Outro"})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "INVALID_PARAMS", apiErr.Code)
}

func TestHandler_ApplyEditsConvertsCells(t *testing.T) {
	var got session.EditRequest
	handler := NewHandler(Services{Sessions: sessionStub{
		applyEditsFn: func(_ context.Context, req session.EditRequest) (*session.EditResult, error) {
			got = req
			info := cleanInfo()
			info.State = session.StateDirty
			return &session.EditResult{Changed: true, Session: info}, nil
		},
	}}, "", "")

	resp, err := handler.ApplyEdits(context.Background(), inventory.PageField, EditParams{
		Municipio: "Olinda",
		Rows: []map[string]any{{
			"item_id":      "o-1",
			"enviar_campo": true,
			"latitude":     -8.0089,
			"telefone":     nil,
		}},
		Keys: []string{"o-1"},
	})
	require.NoError(t, err)
	require.True(t, resp.Changed)
	require.True(t, resp.Session.Dirty)

	require.Equal(t, inventory.PageField, got.Page)
	require.Equal(t, "Olinda", got.Municipality)
	require.Equal(t, []string{"o-1"}, got.View.Keys)
	row := got.View.Rows[0]
	require.Equal(t, "1", row[inventory.ColEnviarCampo])
	require.Equal(t, "-8.0089", row[inventory.ColLatitude])
	require.Equal(t, "", row[inventory.ColTelefone])
}

func TestHandler_SaveMapsStaleSource(t *testing.T) {
	handler := NewHandler(Services{Sessions: sessionStub{
		saveFn: func(_ context.Context, force bool) (session.Info, error) {
			if !force {
				return session.Info{}, session.ErrStaleSource
			}
			return cleanInfo(), nil
		},
	}}, "", "")

	_, err := handler.Save(context.Background(), SaveParams{})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "STALE_SOURCE", apiErr.Code)
	require.NotEmpty(t, apiErr.RecoveryHint)

	resp, err := handler.Save(context.Background(), SaveParams{Force: true})
	require.NoError(t, err)
	require.Equal(t, "clean", resp.State)
}

func TestHandler_ExportRoute(t *testing.T) {
	dir := t.TempDir()
	handler := NewHandler(Services{Sessions: sessionStub{
		routeExportFn: func(_ context.Context, muni string) (inventory.RouteExport, error) {
			return inventory.RouteExport{
				Name:  inventory.RouteFileName(muni),
				Items: []inventory.Item{{ItemID: "1", MunicipioNome: muni, EnviarCampo: true}},
			}, nil
		},
	}}, dir, sheet.FormatXLSX)

	resp, err := handler.ExportRoute(context.Background(), ExportRouteParams{Municipio: "Cabo de Santo Agostinho", Format: "csv"})
	require.NoError(t, err)
	require.Equal(t, "ROTA_Cabo_de_Santo_Agostinho", resp.Name)
	require.Equal(t, filepath.Join(dir, "ROTA_Cabo_de_Santo_Agostinho.csv"), resp.Path)
	require.Equal(t, 1, resp.Rows)

	_, err = handler.ExportRoute(context.Background(), ExportRouteParams{Format: "ods"})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "INVALID_FORMAT", apiErr.Code)
}

func TestHandler_RecentActivity(t *testing.T) {
	var got activity.ListActivityOptions
	handler := NewHandler(Services{Activity: activityStub{
		listFn: func(_ context.Context, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error) {
			got = opts
			return []activity.ActivityEntry{{ID: 1, SessionID: "s1", ActivityType: activity.TypeSaved, CreatedAt: time.Unix(0, 0).UTC()}}, nil
		},
	}}, "", "")

	resp, err := handler.RecentActivity(context.Background(), RecentActivityParams{Type: "saved", Limit: 5})
	require.NoError(t, err)
	require.Len(t, resp.Entries, 1)
	require.Equal(t, "saved", resp.Entries[0].Type)
	require.Equal(t, "1970-01-01T00:00:00Z", resp.Entries[0].CreatedAt)
	require.Equal(t, 5, got.Limit)
	require.Equal(t, activity.TypeSaved, *got.ActivityType)

	empty := NewHandler(Services{}, "", "")
	resp, err = empty.RecentActivity(context.Background(), RecentActivityParams{})
	require.NoError(t, err)
	require.Empty(t, resp.Entries)
}

func TestMapError(t *testing.T) {
	require.Nil(t, MapError(nil))
	require.Equal(t, "UNSAVED_CHANGES", MapError(session.ErrUnsavedChanges).Code)
	require.Equal(t, "NOT_LOADED", MapError(session.ErrNotLoaded).Code)
	require.Equal(t, "INTERNAL", MapError(context.Canceled).Code)

	original := &APIError{Code: "X", Message: "y"}
	require.Same(t, original, MapError(original))
}

func TestServer_ToolRoundTrip(t *testing.T) {
	ctx := context.Background()

	server := NewServer(Config{
		Services: Services{Sessions: sessionStub{
			statusFn: func(context.Context) (session.Info, error) { return cleanInfo(), nil },
			municipalitiesFn: func(context.Context) ([]string, error) {
				return []string{inventory.AllMunicipalities, "Recife"}, nil
			},
			reloadFn: func(context.Context, bool) (session.Info, error) {
				return session.Info{}, session.ErrUnsavedChanges
			},
		}},
	})

	serverTransport, clientTransport := sdkmcp.NewInMemoryTransports()
	serverSession, err := server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	defer serverSession.Close()

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "0.0.1"}, nil)
	clientSession, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	defer clientSession.Close()

	tools, err := clientSession.ListTools(ctx, nil)
	require.NoError(t, err)
	names := make([]string, 0, len(tools.Tools))
	for _, tool := range tools.Tools {
		names = append(names, tool.Name)
	}
	require.ElementsMatch(t, []string{
		"status", "list_municipalities", "get_office_view", "get_field_view",
		"apply_office_edits", "apply_field_edits", "save", "reload",
		"export_route", "recent_activity",
	}, names)

	res, err := clientSession.CallTool(ctx, &sdkmcp.CallToolParams{Name: "status", Arguments: map[string]any{}})
	require.NoError(t, err)
	require.False(t, res.IsError)

	data, err := json.Marshal(res.StructuredContent)
	require.NoError(t, err)
	var status StatusResponse
	require.NoError(t, json.Unmarshal(data, &status))
	require.Equal(t, "s1", status.Session.SessionID)
	require.Equal(t, []string{inventory.AllMunicipalities, "Recife"}, status.Municipalities)

	res, err = clientSession.CallTool(ctx, &sdkmcp.CallToolParams{Name: "reload", Arguments: map[string]any{}})
	require.NoError(t, err)
	require.True(t, res.IsError)
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(*sdkmcp.TextContent)
	require.True(t, ok)
	require.Contains(t, text.Text, "UNSAVED_CHANGES")

	resources, err := clientSession.ListResources(ctx, nil)
	require.NoError(t, err)
	require.Len(t, resources.Resources, len(docResources))
}
