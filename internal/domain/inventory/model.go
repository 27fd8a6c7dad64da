package inventory

// Column names a canonical field of the consolidated inventory.
type Column string

const (
	ColMunicipioID   Column = "municipio_id"
	ColMunicipioNome Column = "municipio_nome"
	ColItemID        Column = "item_id"
	ColStatus        Column = "status"
	ColCategoria     Column = "categoria"
	ColNome          Column = "nome"
	ColEndereco      Column = "endereco"
	ColTelefone      Column = "telefone"
	ColEmail         Column = "email"
	ColSite          Column = "site"
	ColLatitude      Column = "latitude"
	ColLongitude     Column = "longitude"
	ColDescricao     Column = "descricao"
	ColValidacao     Column = "validacao_preliminar"
	ColObsPreliminar Column = "obs_preliminar"
	ColEnviarCampo   Column = "enviar_campo"
	ColVisitado      Column = "visitado"
	ColObsCampo      Column = "obs_campo"
)

// CanonicalColumns is the fixed output order of every normalized table.
var CanonicalColumns = []Column{
	ColMunicipioID,
	ColMunicipioNome,
	ColItemID,
	ColStatus,
	ColCategoria,
	ColNome,
	ColEndereco,
	ColTelefone,
	ColEmail,
	ColSite,
	ColLatitude,
	ColLongitude,
	ColDescricao,
	ColValidacao,
	ColObsPreliminar,
	ColEnviarCampo,
	ColVisitado,
	ColObsCampo,
}

// IsFlag reports whether the column holds a 0/1 flag.
func (c Column) IsFlag() bool {
	return c == ColEnviarCampo || c == ColVisitado
}

// Validation is the outcome of the office (gabinete) pass.
type Validation string

const (
	ValidationBlank   Validation = "Em branco"
	ValidationYes     Validation = "Sim"
	ValidationPending Validation = "Pendente"
	ValidationNo      Validation = "Não"
)

// ValidationOptions lists every accepted validation value.
var ValidationOptions = []Validation{ValidationBlank, ValidationYes, ValidationPending, ValidationNo}

// Status is the origin of an item.
type Status string

const (
	StatusInventoried Status = "Inventariado INVTUR"
	StatusNew         Status = "Novo"
)

// StatusOptions lists every accepted status value.
var StatusOptions = []Status{StatusInventoried, StatusNew}

// Item is one row of the consolidated inventory.
type Item struct {
	MunicipioID   string     `json:"municipio_id"`
	MunicipioNome string     `json:"municipio_nome"`
	ItemID        string     `json:"item_id"`
	Status        Status     `json:"status"`
	Categoria     string     `json:"categoria"`
	Nome          string     `json:"nome"`
	Endereco      string     `json:"endereco"`
	Telefone      string     `json:"telefone"`
	Email         string     `json:"email"`
	Site          string     `json:"site"`
	Latitude      string     `json:"latitude"`
	Longitude     string     `json:"longitude"`
	Descricao     string     `json:"descricao"`
	Validacao     Validation `json:"validacao_preliminar"`
	ObsPreliminar string     `json:"obs_preliminar"`
	EnviarCampo   bool       `json:"enviar_campo"`
	Visitado      bool       `json:"visitado"`
	ObsCampo      string     `json:"obs_campo"`
}

// Value returns the cell text of a column. Flags render as "1" or "0".
func (it Item) Value(c Column) string {
	switch c {
	case ColMunicipioID:
		return it.MunicipioID
	case ColMunicipioNome:
		return it.MunicipioNome
	case ColItemID:
		return it.ItemID
	case ColStatus:
		return string(it.Status)
	case ColCategoria:
		return it.Categoria
	case ColNome:
		return it.Nome
	case ColEndereco:
		return it.Endereco
	case ColTelefone:
		return it.Telefone
	case ColEmail:
		return it.Email
	case ColSite:
		return it.Site
	case ColLatitude:
		return it.Latitude
	case ColLongitude:
		return it.Longitude
	case ColDescricao:
		return it.Descricao
	case ColValidacao:
		return string(it.Validacao)
	case ColObsPreliminar:
		return it.ObsPreliminar
	case ColEnviarCampo:
		return flagText(it.EnviarCampo)
	case ColVisitado:
		return flagText(it.Visitado)
	case ColObsCampo:
		return it.ObsCampo
	}
	return ""
}

// Set assigns cell text to a column. Flag columns go through ParseFlag.
// Unknown columns are ignored.
func (it *Item) Set(c Column, v string) {
	switch c {
	case ColMunicipioID:
		it.MunicipioID = v
	case ColMunicipioNome:
		it.MunicipioNome = v
	case ColItemID:
		it.ItemID = v
	case ColStatus:
		it.Status = Status(v)
	case ColCategoria:
		it.Categoria = v
	case ColNome:
		it.Nome = v
	case ColEndereco:
		it.Endereco = v
	case ColTelefone:
		it.Telefone = v
	case ColEmail:
		it.Email = v
	case ColSite:
		it.Site = v
	case ColLatitude:
		it.Latitude = v
	case ColLongitude:
		it.Longitude = v
	case ColDescricao:
		it.Descricao = v
	case ColValidacao:
		it.Validacao = Validation(v)
	case ColObsPreliminar:
		it.ObsPreliminar = v
	case ColEnviarCampo:
		it.EnviarCampo = ParseFlag(v)
	case ColVisitado:
		it.Visitado = ParseFlag(v)
	case ColObsCampo:
		it.ObsCampo = v
	}
}

func flagText(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// RawTable is a tabular dataset with arbitrary column names and text cells.
type RawTable struct {
	Header []string
	Rows   [][]string
}

// Len returns the number of data rows.
func (t RawTable) Len() int {
	return len(t.Rows)
}

// Cell returns the value at row i, column j, or "" when the row is short.
func (t RawTable) Cell(i, j int) string {
	if i < 0 || i >= len(t.Rows) || j < 0 || j >= len(t.Rows[i]) {
		return ""
	}
	return t.Rows[i][j]
}

// ToTable renders items as a canonical RawTable.
func ToTable(items []Item) RawTable {
	header := make([]string, len(CanonicalColumns))
	for i, c := range CanonicalColumns {
		header[i] = string(c)
	}
	rows := make([][]string, len(items))
	for i, it := range items {
		row := make([]string, len(CanonicalColumns))
		for j, c := range CanonicalColumns {
			row[j] = it.Value(c)
		}
		rows[i] = row
	}
	return RawTable{Header: header, Rows: rows}
}

// FromTable reads a canonical-column table into items without coercion
// beyond flag parsing. Columns are located by header name.
func FromTable(t RawTable) []Item {
	index := make(map[Column]int, len(t.Header))
	for j, h := range t.Header {
		c := Column(h)
		if _, seen := index[c]; !seen {
			index[c] = j
		}
	}
	items := make([]Item, t.Len())
	for i := range t.Rows {
		var it Item
		for _, c := range CanonicalColumns {
			j, ok := index[c]
			if !ok {
				continue
			}
			it.Set(c, t.Cell(i, j))
		}
		items[i] = it
	}
	return items
}
