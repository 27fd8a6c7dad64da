package inventory_test

import (
	"testing"

	"github.com/empetur/consolidacao/internal/domain/inventory"
	"github.com/stretchr/testify/require"
)

func master() []inventory.Item {
	return inventory.EnforceItems([]inventory.Item{
		{ItemID: "r1", MunicipioNome: "Recife", Nome: "Forte"},
		{ItemID: "o1", MunicipioNome: "Olinda", Nome: "Sé"},
		{ItemID: "r2", MunicipioNome: "Recife", Nome: "Paço"},
	})
}

func TestSelectScope(t *testing.T) {
	m := master()

	all := inventory.SelectScope(m, inventory.AllMunicipalities)
	require.True(t, all.All())
	require.Len(t, all.Items, 3)

	recife := inventory.SelectScope(m, "Recife")
	require.False(t, recife.All())
	require.Equal(t, []string{"r1", "r2"}, ids(recife.Items))

	none := inventory.SelectScope(m, "Caruaru")
	require.Empty(t, none.Items)
}

func TestApplyToScope_PreservesOrderAndRemainder(t *testing.T) {
	m := master()
	edited := inventory.EditedView{Rows: []inventory.EditedRow{
		{inventory.ColItemID: "r2", inventory.ColTelefone: "81 3333"},
		{inventory.ColItemID: "o1", inventory.ColTelefone: "outside scope"},
	}}

	out, changed := inventory.ApplyToScope(m, "Recife", edited, inventory.OfficeEditableFields)
	require.True(t, changed)
	require.Equal(t, []string{"r1", "o1", "r2"}, ids(out))
	require.Equal(t, "81 3333", out[2].Telefone)
	require.Equal(t, "", out[1].Telefone)
}

func TestApplyToScope_UnchangedIsClean(t *testing.T) {
	m := inventory.DeriveRoutes(master())
	edited := inventory.EditedView{Rows: []inventory.EditedRow{
		{inventory.ColItemID: "r1", inventory.ColTelefone: ""},
	}}

	out, changed := inventory.ApplyToScope(m, inventory.AllMunicipalities, edited, inventory.OfficeEditableFields)
	require.False(t, changed)
	require.Equal(t, m, out)

	_, changed = inventory.ApplyToScope(m, "Recife", inventory.EditedView{}, inventory.OfficeEditableFields)
	require.False(t, changed)
}

func TestEndToEnd_PendingRowJoinsRoute(t *testing.T) {
	raw := inventory.RawTable{
		Header: []string{"Município", "Nome", "Validação", "Enviar Campo"},
		Rows: [][]string{
			{"X", "Um", "Em branco", "0"},
			{"X", "Dois", "Pendente", "0"},
			{"X", "Três", "Não", "0"},
		},
	}

	m := inventory.Normalize(raw)
	require.Len(t, m, 3)
	require.True(t, m[1].EnviarCampo)

	scope := inventory.SelectScope(m, "X")
	routed := inventory.Filter{OnlyRoute: true}.Apply(scope.Items)
	require.Len(t, routed, 1)
	require.Equal(t, "Dois", routed[0].Nome)
}

func TestRecombine_ReconciledLengthMismatch(t *testing.T) {
	m := inventory.DeriveRoutes(master())
	scope := inventory.SelectScope(m, "Recife")

	reconciled := []inventory.Item{scope.Items[1]}
	reconciled[0].Telefone = "81 3333"

	out, changed := inventory.Recombine(m, scope, reconciled)
	require.True(t, changed)
	require.Equal(t, []string{"o1", "r2"}, ids(out))
	require.Equal(t, "81 3333", out[1].Telefone)
}

func TestRecombine_SameLengthKeepsPositions(t *testing.T) {
	m := inventory.DeriveRoutes(master())
	scope := inventory.SelectScope(m, "Recife")

	out, changed := inventory.Recombine(m, scope, scope.Items)
	require.False(t, changed)
	require.Equal(t, []string{"r1", "o1", "r2"}, ids(out))
}
