package inventory

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type columnVariants struct {
	column   Column
	variants map[string]struct{}
}

func variantSet(names ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}

// columnTable maps each canonical column to the normalized source names it
// accepts. Order matters: the first column whose set contains a name wins.
var columnTable = []columnVariants{
	{ColMunicipioID, variantSet("municipio_id", "município_id", "id_municipio", "id município")},
	{ColMunicipioNome, variantSet("municipio_nome", "município", "municipio", "município_nome", "nome_municipio", "nome município")},
	{ColItemID, variantSet("item_id", "item id", "item_id.", "id_item", "id item")},
	{ColStatus, variantSet("status", "situação", "situacao")},
	{ColCategoria, variantSet("categoria", "categoria do item")},
	{ColNome, variantSet("nome", "nome do item", "item")},
	{ColEndereco, variantSet("endereco", "endereço", "endereço (rua, número etc.)", "logradouro")},
	{ColTelefone, variantSet("telefone", "fone", "contato", "telefone(s)")},
	{ColEmail, variantSet("email", "e-mail", "e mail")},
	{ColSite, variantSet("site", "website", "url", "rede social", "site / rede social")},
	{ColLatitude, variantSet("latitude", "lat")},
	{ColLongitude, variantSet("longitude", "long", "lng")},
	{ColDescricao, variantSet("descricao", "descrição", "descrição do item", "observação geral", "descricao geral")},
	{ColValidacao, variantSet("validacao_preliminar", "validação preliminar", "validacao preliminar", "validação", "validacao")},
	{ColObsPreliminar, variantSet("obs_preliminar", "obs preliminar", "observações preliminares", "observacao preliminar", "obs gabinete", "observação gabinete")},
	{ColEnviarCampo, variantSet("enviar_campo", "enviar campo", "campo", "vai pra campo", "enviar para campo")},
	{ColVisitado, variantSet("visitado", "visitado?", "foi visitado")},
	{ColObsCampo, variantSet("obs_campo", "obs campo", "observações de campo", "observacao campo")},
}

// NormalizeColumnName collapses whitespace, trims and lower-cases a header.
func NormalizeColumnName(name string) string {
	collapsed := strings.Join(strings.Fields(name), " ")
	return cases.Lower(language.Und).String(collapsed)
}

// CanonicalColumn resolves a source header to its canonical column.
func CanonicalColumn(name string) (Column, bool) {
	norm := NormalizeColumnName(name)
	for _, entry := range columnTable {
		if _, ok := entry.variants[norm]; ok {
			return entry.column, true
		}
	}
	return "", false
}

// DefaultValue is the value a canonical column takes when the source lacks it.
func DefaultValue(c Column) string {
	if c.IsFlag() {
		return "0"
	}
	return ""
}

// MapColumns projects a table with arbitrary headers onto the canonical
// column set, in canonical order. Unmatched source columns are dropped. When
// several source columns resolve to the same canonical column the leftmost
// one is kept.
func MapColumns(raw RawTable) RawTable {
	source := make(map[Column]int, len(CanonicalColumns))
	for j, h := range raw.Header {
		c, ok := CanonicalColumn(h)
		if !ok {
			continue
		}
		if _, seen := source[c]; !seen {
			source[c] = j
		}
	}

	header := make([]string, len(CanonicalColumns))
	for i, c := range CanonicalColumns {
		header[i] = string(c)
	}

	rows := make([][]string, raw.Len())
	for i := range raw.Rows {
		row := make([]string, len(CanonicalColumns))
		for k, c := range CanonicalColumns {
			if j, ok := source[c]; ok {
				row[k] = raw.Cell(i, j)
			} else {
				row[k] = DefaultValue(c)
			}
		}
		rows[i] = row
	}

	return RawTable{Header: header, Rows: rows}
}
