package session

import (
	"time"

	"github.com/empetur/consolidacao/internal/domain/inventory"
	"github.com/empetur/consolidacao/internal/repository"
)

// State is the modification state of the master table.
type State string

const (
	StateClean State = "clean"
	StateDirty State = "dirty"
)

// Info describes the loaded session.
type Info struct {
	ID       string             `json:"session_id"`
	State    State              `json:"state"`
	Stale    bool               `json:"stale"`
	Rows     int                `json:"rows"`
	Version  repository.Version `json:"version"`
	LoadedAt time.Time          `json:"loaded_at"`
	SavedAt  *time.Time         `json:"saved_at,omitempty"`
}

// Dirty reports whether the session holds unsaved edits.
func (i Info) Dirty() bool {
	return i.State == StateDirty
}

// ViewRequest selects the scope and filter of a page view.
type ViewRequest struct {
	Municipality string
	Filter       inventory.Filter
}

// OfficeView is the data of the office (gabinete) page.
type OfficeView struct {
	Municipality    string                    `json:"municipio"`
	Columns         []string                  `json:"columns"`
	Editable        []string                  `json:"editable"`
	Rows            []inventory.ViewRow       `json:"rows"`
	Summary         inventory.Summary         `json:"summary"`
	Categories      []inventory.CategoryCount `json:"categories"`
	CategoryOptions []string                  `json:"category_options"`
	Session         Info                      `json:"session"`
}

// FieldView is the data of the field (campo) page. Only routed rows are
// listed; Progress covers the whole route of the scope and Filtered the
// listed rows.
type FieldView struct {
	Municipality    string              `json:"municipio"`
	Columns         []string            `json:"columns"`
	Editable        []string            `json:"editable"`
	Rows            []inventory.ViewRow `json:"rows"`
	Progress        inventory.Progress  `json:"progress"`
	Filtered        inventory.Progress  `json:"filtered"`
	CategoryOptions []string            `json:"category_options"`
	Session         Info                `json:"session"`
}

// EditRequest carries an edited view returned by a page.
type EditRequest struct {
	Page         inventory.Page
	Municipality string
	View         inventory.EditedView
}

// EditResult reports the outcome of applying an edited view.
type EditResult struct {
	Changed bool `json:"changed"`
	Session Info `json:"session"`
}
