package mcp

import (
	"context"

	"github.com/empetur/consolidacao/internal/domain/inventory"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerTools(server *sdkmcp.Server, h *Handler) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "status",
		Description: "Session state (clean/dirty, stale source, row count, version) and the municipality choices",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, _ EmptyParams) (*sdkmcp.CallToolResult, StatusResponse, error) {
		out, err := h.Status(ctx)
		return nil, out, err
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_municipalities",
		Description: "List the scope choices: 'Todos (consolidado)' followed by every municipality",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, _ EmptyParams) (*sdkmcp.CallToolResult, MunicipalitiesResponse, error) {
		out, err := h.Municipalities(ctx)
		return nil, out, err
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_office_view",
		Description: "Office (gabinete) page: filtered rows of the scope with the 14 office columns, summary counters and category counts",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in ViewParams) (*sdkmcp.CallToolResult, OfficeViewResponse, error) {
		out, err := h.OfficeView(ctx, in)
		return nil, out, err
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_field_view",
		Description: "Field (campo) page: routed rows of the scope with the 16 field columns and visit progress",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in ViewParams) (*sdkmcp.CallToolResult, FieldViewResponse, error) {
		out, err := h.FieldView(ctx, in)
		return nil, out, err
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "apply_office_edits",
		Description: "Apply rows edited on the office page. Only endereco, telefone, latitude, longitude, validacao_preliminar, obs_preliminar and enviar_campo are taken; other cells are ignored",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in EditParams) (*sdkmcp.CallToolResult, EditResponse, error) {
		out, err := h.ApplyEdits(ctx, inventory.PageOffice, in)
		return nil, out, err
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "apply_field_edits",
		Description: "Apply rows edited on the field page. Only endereco, telefone, latitude, longitude and enviar_campo are taken; other cells are ignored",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in EditParams) (*sdkmcp.CallToolResult, EditResponse, error) {
		out, err := h.ApplyEdits(ctx, inventory.PageField, in)
		return nil, out, err
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "save",
		Description: "Write the whole master table back to the source file. Fails with STALE_SOURCE if the file changed on disk, unless force=true",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in SaveParams) (*sdkmcp.CallToolResult, SessionResponse, error) {
		out, err := h.Save(ctx, in)
		return nil, out, err
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "reload",
		Description: "Reload the source file. Fails with UNSAVED_CHANGES when there are edits, unless discard=true",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in ReloadParams) (*sdkmcp.CallToolResult, SessionResponse, error) {
		out, err := h.Reload(ctx, in)
		return nil, out, err
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "export_route",
		Description: "Write the field route of a scope (ROTA_<municipio> or ROTA_ALL_Consolidado) to the export directory",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in ExportRouteParams) (*sdkmcp.CallToolResult, ExportRouteResponse, error) {
		out, err := h.ExportRoute(ctx, in)
		return nil, out, err
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "recent_activity",
		Description: "List recent session activity: loads, edits, saves, reloads, stale source detections and route exports",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in RecentActivityParams) (*sdkmcp.CallToolResult, RecentActivityResponse, error) {
		out, err := h.RecentActivity(ctx, in)
		return nil, out, err
	})
}
