package mcp

import (
	"time"

	"github.com/empetur/consolidacao/internal/domain/activity"
	"github.com/empetur/consolidacao/internal/domain/inventory"
	"github.com/empetur/consolidacao/internal/domain/session"
)

type EmptyParams struct{}

type ViewParams struct {
	Municipio    string   `json:"municipio,omitempty" jsonschema:"municipality name; omit or use 'Todos (consolidado)' for every row"`
	Query        string   `json:"query,omitempty" jsonschema:"case-insensitive text matched against nome, categoria, descricao and endereco"`
	Validacoes   []string `json:"validacoes,omitempty" jsonschema:"keep rows whose validacao_preliminar is one of these"`
	Origem       string   `json:"origem,omitempty" jsonschema:"Todos, INVTUR or Novo"`
	Categorias   []string `json:"categorias,omitempty" jsonschema:"keep rows in these categories; 'Sem categoria' selects blank ones"`
	SomenteRota  bool     `json:"somente_rota,omitempty" jsonschema:"keep only rows sent to the field route"`
	NaoVisitados bool     `json:"nao_visitados,omitempty" jsonschema:"keep only routed rows not visited yet"`
}

type EditParams struct {
	Municipio string           `json:"municipio,omitempty" jsonschema:"municipality the view was taken from"`
	Rows      []map[string]any `json:"rows" jsonschema:"edited rows keyed by canonical column name; each row should carry item_id"`
	Keys      []string         `json:"keys,omitempty" jsonschema:"item_id of each row by position, for rows without an item_id cell"`
}

type SaveParams struct {
	Force bool `json:"force,omitempty" jsonschema:"overwrite the source even if it changed on disk"`
}

type ReloadParams struct {
	Discard bool `json:"discard,omitempty" jsonschema:"drop unsaved edits"`
}

type ExportRouteParams struct {
	Municipio string `json:"municipio,omitempty" jsonschema:"municipality to export; omit for the consolidated route"`
	Format    string `json:"format,omitempty" jsonschema:"xlsx or csv"`
}

type RecentActivityParams struct {
	Type   string `json:"type,omitempty" jsonschema:"activity type filter"`
	Limit  int    `json:"limit,omitempty"`
	Offset int    `json:"offset,omitempty"`
}

type SessionResponse struct {
	SessionID string `json:"session_id"`
	State     string `json:"state"`
	Dirty     bool   `json:"dirty"`
	Stale     bool   `json:"stale"`
	Rows      int    `json:"rows"`
	Version   string `json:"version"`
	LoadedAt  string `json:"loaded_at"`
	SavedAt   string `json:"saved_at,omitempty"`
}

type StatusResponse struct {
	Session        SessionResponse `json:"session"`
	Municipalities []string        `json:"municipios"`
}

type MunicipalitiesResponse struct {
	Municipalities []string `json:"municipios"`
}

type SummaryResponse struct {
	Total       int            `json:"total"`
	ByValidacao map[string]int `json:"by_validacao"`
	Sim         int            `json:"sim"`
	Pendente    int            `json:"pendente"`
	NaoOuBranco int            `json:"nao_ou_branco"`
	InRoute     int            `json:"in_route"`
	Visited     int            `json:"visited"`
}

type OfficeViewResponse struct {
	Municipio       string                    `json:"municipio"`
	Columns         []string                  `json:"columns"`
	Editable        []string                  `json:"editable"`
	Rows            []inventory.ViewRow       `json:"rows"`
	Summary         SummaryResponse           `json:"summary"`
	Categories      []inventory.CategoryCount `json:"categories"`
	CategoryOptions []string                  `json:"category_options"`
	Session         SessionResponse           `json:"session"`
}

type FieldViewResponse struct {
	Municipio       string              `json:"municipio"`
	Columns         []string            `json:"columns"`
	Editable        []string            `json:"editable"`
	Rows            []inventory.ViewRow `json:"rows"`
	Progress        inventory.Progress  `json:"progress"`
	Filtered        inventory.Progress  `json:"filtered"`
	CategoryOptions []string            `json:"category_options"`
	Session         SessionResponse     `json:"session"`
}

type EditResponse struct {
	Changed bool            `json:"changed"`
	Session SessionResponse `json:"session"`
}

type ExportRouteResponse struct {
	Name string `json:"name"`
	Path string `json:"path"`
	Rows int    `json:"rows"`
}

type ActivityEntryResponse struct {
	ID        int64  `json:"id"`
	SessionID string `json:"session_id"`
	Type      string `json:"type"`
	Municipio string `json:"municipio,omitempty"`
	Page      string `json:"page,omitempty"`
	Summary   string `json:"summary"`
	Details   string `json:"details,omitempty"`
	Rows      int    `json:"rows"`
	CreatedAt string `json:"created_at"`
}

type RecentActivityResponse struct {
	Entries []ActivityEntryResponse `json:"entries"`
}

func toSessionResponse(info session.Info) SessionResponse {
	resp := SessionResponse{
		SessionID: info.ID,
		State:     string(info.State),
		Dirty:     info.Dirty(),
		Stale:     info.Stale,
		Rows:      info.Rows,
		Version:   string(info.Version),
		LoadedAt:  formatTime(info.LoadedAt),
	}
	if info.SavedAt != nil {
		resp.SavedAt = formatTime(*info.SavedAt)
	}
	return resp
}

func toSummaryResponse(s inventory.Summary) SummaryResponse {
	by := make(map[string]int, len(s.ByValidacao))
	for k, v := range s.ByValidacao {
		by[string(k)] = v
	}
	return SummaryResponse{
		Total:       s.Total,
		ByValidacao: by,
		Sim:         s.Sim,
		Pendente:    s.Pendente,
		NaoOuBranco: s.NaoOuBranco,
		InRoute:     s.InRoute,
		Visited:     s.Visited,
	}
}

func toActivityResponse(e activity.ActivityEntry) ActivityEntryResponse {
	return ActivityEntryResponse{
		ID:        e.ID,
		SessionID: e.SessionID,
		Type:      string(e.ActivityType),
		Municipio: e.Municipality,
		Page:      e.Page,
		Summary:   e.Summary,
		Details:   e.Details,
		Rows:      e.Rows,
		CreatedAt: formatTime(e.CreatedAt),
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}
