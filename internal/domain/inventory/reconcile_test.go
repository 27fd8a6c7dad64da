package inventory_test

import (
	"testing"

	"github.com/empetur/consolidacao/internal/domain/inventory"
	"github.com/stretchr/testify/require"
)

func TestReconcile_FieldScopeContainment(t *testing.T) {
	base := []inventory.Item{{ItemID: "1", Nome: "A", Validacao: inventory.ValidationBlank, Status: inventory.StatusInventoried}}
	edited := inventory.EditedView{Rows: []inventory.EditedRow{
		{inventory.ColItemID: "1", inventory.ColNome: "ZZZ", inventory.ColValidacao: "Sim"},
	}}

	out := inventory.ApplyRowUpdates(base, edited)
	require.Len(t, out, 1)
	require.Equal(t, "A", out[0].Nome)
	require.Equal(t, inventory.ValidationYes, out[0].Validacao)
	require.True(t, out[0].EnviarCampo)
}

func TestReconcile_EmptyViewIsNoop(t *testing.T) {
	base := []inventory.Item{{ItemID: "1", Validacao: "weird"}}
	out := inventory.ApplyRowUpdates(base, inventory.EditedView{})
	require.Equal(t, base, out)
}

func TestReconcile_RowCountPreserved(t *testing.T) {
	base := []inventory.Item{
		{ItemID: "1", Endereco: "a"},
		{ItemID: "2", Endereco: "b"},
	}
	edited := inventory.EditedView{Rows: []inventory.EditedRow{
		{inventory.ColItemID: "9", inventory.ColEndereco: "ghost"},
		{inventory.ColItemID: "2", inventory.ColEndereco: "first"},
		{inventory.ColItemID: "2", inventory.ColEndereco: "second"},
		{inventory.ColItemID: "10", inventory.ColEndereco: "ghost"},
	}}

	out := inventory.ApplyRowUpdates(base, edited)
	require.Len(t, out, len(base))
	require.Equal(t, "a", out[0].Endereco)
	require.Equal(t, "first", out[1].Endereco)
	for _, it := range out {
		require.NotEqual(t, "ghost", it.Endereco)
	}
}

func TestReconcile_ImmutableFieldsIgnored(t *testing.T) {
	base := []inventory.Item{{
		ItemID: "1", MunicipioNome: "Recife", Categoria: "Praia", Status: inventory.StatusNew,
		Visitado: true, EnviarCampo: true, ObsCampo: "ok",
	}}
	edited := inventory.EditedView{Rows: []inventory.EditedRow{{
		inventory.ColItemID:        "1",
		inventory.ColMunicipioNome: "Olinda",
		inventory.ColCategoria:     "Museu",
		inventory.ColStatus:        string(inventory.StatusInventoried),
		inventory.ColVisitado:      "0",
		inventory.ColObsCampo:      "changed",
		inventory.ColTelefone:      "3333",
	}}}

	out := inventory.ApplyRowUpdates(base, edited)
	require.Equal(t, "Recife", out[0].MunicipioNome)
	require.Equal(t, "Praia", out[0].Categoria)
	require.Equal(t, inventory.StatusNew, out[0].Status)
	require.True(t, out[0].Visitado)
	require.Equal(t, "ok", out[0].ObsCampo)
	require.Equal(t, "3333", out[0].Telefone)
}

func TestReconcile_IdentityFromKeys(t *testing.T) {
	base := []inventory.Item{{ItemID: "a"}, {ItemID: "b"}}
	edited := inventory.EditedView{
		Keys: []string{"b"},
		Rows: []inventory.EditedRow{{inventory.ColLatitude: "-8.05"}, {inventory.ColLatitude: "-9"}},
	}

	out := inventory.ApplyRowUpdates(base, edited)
	require.Equal(t, "", out[0].Latitude)
	require.Equal(t, "-8.05", out[1].Latitude)
}

func TestReconcile_RespectsPageAllowlist(t *testing.T) {
	base := []inventory.Item{{ItemID: "1", Validacao: inventory.ValidationBlank}}
	edited := inventory.EditedView{Rows: []inventory.EditedRow{{
		inventory.ColItemID:    "1",
		inventory.ColValidacao: "Sim",
		inventory.ColEndereco:  "Rua Nova",
	}}}

	out := inventory.Reconcile(base, edited, inventory.FieldEditableFields)
	require.Equal(t, inventory.ValidationBlank, out[0].Validacao)
	require.Equal(t, "Rua Nova", out[0].Endereco)
}

func TestReconcile_RouteRederived(t *testing.T) {
	base := []inventory.Item{{ItemID: "1", Validacao: inventory.ValidationNo, EnviarCampo: true, Visitado: true}}
	edited := inventory.EditedView{Rows: []inventory.EditedRow{{
		inventory.ColItemID:      "1",
		inventory.ColEnviarCampo: "0",
	}}}

	out := inventory.ApplyRowUpdates(base, edited)
	require.False(t, out[0].EnviarCampo)
	require.False(t, out[0].Visitado)
}

func TestReconcile_BlankItemIDFallsBackToKeys(t *testing.T) {
	base := []inventory.Item{{ItemID: "a"}, {ItemID: "b"}}
	edited := inventory.EditedView{
		Keys: []string{"a", "b"},
		Rows: []inventory.EditedRow{
			{inventory.ColItemID: "", inventory.ColTelefone: "111"},
			{inventory.ColItemID: "  ", inventory.ColTelefone: "222"},
		},
	}

	out := inventory.ApplyRowUpdates(base, edited)
	require.Equal(t, "111", out[0].Telefone)
	require.Equal(t, "222", out[1].Telefone)
}

func TestReconcile_BlankIdentityIsSkipped(t *testing.T) {
	base := []inventory.Item{
		{ItemID: "", Telefone: "orig-1"},
		{ItemID: "", Telefone: "orig-2"},
	}
	edited := inventory.EditedView{Rows: []inventory.EditedRow{
		{inventory.ColItemID: "", inventory.ColTelefone: "999"},
	}}

	out := inventory.Reconcile(base, edited, inventory.TransferableFields)
	require.Len(t, out, 2)
	require.Equal(t, "orig-1", out[0].Telefone)
	require.Equal(t, "orig-2", out[1].Telefone)
}
