package inventory_test

import (
	"testing"

	"github.com/empetur/consolidacao/internal/domain/inventory"
	"github.com/stretchr/testify/require"
)

func TestRouteFileName(t *testing.T) {
	require.Equal(t, "ROTA_ALL_Consolidado", inventory.RouteFileName(inventory.AllMunicipalities))
	require.Equal(t, "ROTA_ALL_Consolidado", inventory.RouteFileName(""))
	require.Equal(t, "ROTA_Cabo_de_Santo_Agostinho", inventory.RouteFileName("Cabo de Santo Agostinho"))
}

func TestRouteRows_SortedAndFiltered(t *testing.T) {
	items := []inventory.Item{
		{ItemID: "a", MunicipioNome: "Recife", Nome: "Z", Validacao: inventory.ValidationYes, Visitado: true},
		{ItemID: "b", MunicipioNome: "Recife", Nome: "B", Validacao: inventory.ValidationYes},
		{ItemID: "c", MunicipioNome: "Olinda", Nome: "C", Validacao: inventory.ValidationNo},
		{ItemID: "d", MunicipioNome: "Olinda", Nome: "D", Validacao: inventory.ValidationPending},
		{ItemID: "e", MunicipioNome: "Recife", Nome: "A", Validacao: inventory.ValidationPending},
	}

	rows := inventory.RouteRows(items)
	require.Equal(t, []string{"d", "e", "b", "a"}, ids(rows))
	for _, r := range rows {
		require.True(t, r.EnviarCampo)
	}
}

func TestBuildRouteExport(t *testing.T) {
	scope := inventory.SelectScope(master(), "Recife")
	exp := inventory.BuildRouteExport(scope)
	require.Equal(t, "ROTA_Recife", exp.Name)
	require.Empty(t, exp.Items)
}

func TestPageProjection(t *testing.T) {
	require.Len(t, inventory.OfficePage.Columns, 14)
	require.Len(t, inventory.FieldPage.Columns, 16)

	rows := inventory.OfficePage.Project([]inventory.Item{{ItemID: "1", Nome: "Forte", EnviarCampo: true, Visitado: true}})
	require.Equal(t, "1", rows[0].ItemID)
	require.Equal(t, "Forte", rows[0].Cells["nome"])
	require.Equal(t, "1", rows[0].Cells["enviar_campo"])
	_, hasVisit := rows[0].Cells["visitado"]
	require.False(t, hasVisit)

	cfg, ok := inventory.PageFor(inventory.PageField)
	require.True(t, ok)
	require.Equal(t, []string{"endereco", "telefone", "latitude", "longitude", "enviar_campo"}, cfg.EditableColumns())

	_, ok = inventory.PageFor("other")
	require.False(t, ok)
}
