package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `consolidacao edits the municipal tourism inventory in two passes over one master table.

Core concepts:
- Master table: every inventory item, one row per item_id, loaded from the source file.
- Scope: the whole table ("Todos (consolidado)") or the rows of one municipality.
- Office pass (gabinete): desk validation. validacao_preliminar is one of Em branco, Sim, Pendente, Não.
- Field pass (campo): visits to the items on the route (enviar_campo = 1).
- Route rule: Sim and Pendente always join the route; an item that leaves the route loses visitado.

Workflow:
1) Orient: call status, then list_municipalities.
2) Office pass: get_office_view, then apply_office_edits with the rows you changed (keep item_id on every row).
3) Field pass: get_field_view, then apply_field_edits.
4) Persist: save. export_route writes the route file for a scope.

Conflicts:
- If the source file changes while there are unsaved edits the session becomes stale.
  save then fails with STALE_SOURCE: either save with force=true or reload with discard=true.
- With no unsaved edits an external change is picked up automatically.

Docs:
- consolidacao://docs/index
- consolidacao://docs/columns
- consolidacao://docs/workflows/stale-source
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "consolidacao://docs/index",
		Name:        "docs_index",
		Title:       "consolidacao docs index",
		Description: "Entry point: tools, pages and what to read next.",
		Content: `# consolidacao: Docs Index

## Tools
- status, list_municipalities: orientation.
- get_office_view / apply_office_edits: office (gabinete) page.
- get_field_view / apply_field_edits: field (campo) page.
- save, reload: persistence and conflict handling.
- export_route: route file for a scope.
- recent_activity: what happened in this session.

## Read next
- consolidacao://docs/columns for the canonical columns and which page can edit them.
- consolidacao://docs/workflows/stale-source when save fails.
`,
	},
	{
		URI:         "consolidacao://docs/columns",
		Name:        "docs_columns",
		Title:       "Canonical columns",
		Description: "The 18 canonical columns, accepted values and editable sets per page.",
		Content: `# Canonical columns

municipio_id, municipio_nome, item_id, status, categoria, nome, endereco, telefone,
email, site, latitude, longitude, descricao, validacao_preliminar, obs_preliminar,
enviar_campo, visitado, obs_campo.

## Accepted values
- status: "Inventariado INVTUR" or "Novo". Anything else becomes "Inventariado INVTUR".
- validacao_preliminar: "Em branco", "Sim", "Pendente", "Não". Anything else becomes "Em branco".
- enviar_campo, visitado: 1/0. true, "1", "Sim", "SIM", "True" read as 1.

## Editable columns
- gabinete: endereco, telefone, latitude, longitude, validacao_preliminar, obs_preliminar, enviar_campo.
- campo: endereco, telefone, latitude, longitude, enviar_campo.

Cells outside these sets are ignored. Unknown item_id values are ignored; rows are never added.
`,
	},
	{
		URI:         "consolidacao://docs/workflows/stale-source",
		Name:        "docs_stale_source",
		Title:       "Workflow: stale source",
		Description: "What to do when the source file changed under unsaved edits.",
		Content: `# Workflow: stale source

The source file is checked before every tool call and watched on disk.

- No unsaved edits: the new file is loaded silently.
- Unsaved edits: status reports stale=true and the edits stay in memory.

To resolve:
1. save with force=true keeps your edits and overwrites the external change, or
2. reload with discard=true drops your edits and loads the file.

Nothing is discarded without one of these explicit calls.
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		doc := doc

		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}
