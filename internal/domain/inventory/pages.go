package inventory

// Page identifies an editable presentation.
type Page string

const (
	PageOffice Page = "gabinete"
	PageField  Page = "campo"
)

// PageConfig describes the columns a page shows and the ones it lets the
// user edit.
type PageConfig struct {
	Page     Page
	Columns  []Column
	Editable FieldSet
}

// OfficePage is the preliminary validation page.
var OfficePage = PageConfig{
	Page: PageOffice,
	Columns: []Column{
		ColMunicipioNome,
		ColStatus,
		ColCategoria,
		ColNome,
		ColEndereco,
		ColTelefone,
		ColLatitude,
		ColLongitude,
		ColEmail,
		ColSite,
		ColDescricao,
		ColValidacao,
		ColObsPreliminar,
		ColEnviarCampo,
	},
	Editable: OfficeEditableFields,
}

// FieldPage is the field visit page.
var FieldPage = PageConfig{
	Page: PageField,
	Columns: []Column{
		ColMunicipioNome,
		ColStatus,
		ColCategoria,
		ColNome,
		ColEndereco,
		ColTelefone,
		ColLatitude,
		ColLongitude,
		ColEmail,
		ColSite,
		ColDescricao,
		ColValidacao,
		ColObsPreliminar,
		ColEnviarCampo,
		ColVisitado,
		ColObsCampo,
	},
	Editable: FieldEditableFields,
}

// PageFor returns the configuration of a page.
func PageFor(p Page) (PageConfig, bool) {
	switch p {
	case PageOffice:
		return OfficePage, true
	case PageField:
		return FieldPage, true
	}
	return PageConfig{}, false
}

// ViewRow is one row handed to a presentation, keyed by item_id.
type ViewRow struct {
	ItemID string            `json:"item_id"`
	Cells  map[string]string `json:"cells"`
}

// Project restricts items to the page columns.
func (c PageConfig) Project(items []Item) []ViewRow {
	rows := make([]ViewRow, len(items))
	for i, it := range items {
		cells := make(map[string]string, len(c.Columns))
		for _, col := range c.Columns {
			cells[string(col)] = it.Value(col)
		}
		rows[i] = ViewRow{ItemID: it.ItemID, Cells: cells}
	}
	return rows
}

// EditableColumns returns the editable column names of the page.
func (c PageConfig) EditableColumns() []string {
	out := make([]string, len(c.Editable))
	for i, col := range c.Editable {
		out[i] = string(col)
	}
	return out
}
