package inventory_test

import (
	"testing"

	"github.com/empetur/consolidacao/internal/domain/inventory"
	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	s := inventory.Summarize(sampleItems())
	require.Equal(t, 4, s.Total)
	require.Equal(t, 1, s.Sim)
	require.Equal(t, 1, s.Pendente)
	require.Equal(t, 2, s.NaoOuBranco)
	require.Equal(t, 2, s.InRoute)
	require.Equal(t, 1, s.Visited)
	require.Len(t, s.ByValidacao, len(inventory.ValidationOptions))
}

func TestCategoryCounts(t *testing.T) {
	counts := inventory.CategoryCounts(sampleItems())
	require.Equal(t, []inventory.CategoryCount{
		{Categoria: "Patrimônio", Count: 2},
		{Categoria: "Praia", Count: 1},
		{Categoria: inventory.NoCategoryTag, Count: 1},
	}, counts)
}

func TestCategoryOptions(t *testing.T) {
	require.Equal(t, []string{"Patrimônio", "Praia", inventory.NoCategoryTag}, inventory.CategoryOptions(sampleItems()))
}

func TestFieldProgress(t *testing.T) {
	p := inventory.FieldProgress(sampleItems())
	require.Equal(t, inventory.Progress{InRoute: 2, Visited: 1, ToVisit: 1}, p)
}

func TestMunicipalityOptions(t *testing.T) {
	m := append(master(), inventory.Item{ItemID: "z", MunicipioNome: "  "})
	require.Equal(t, []string{inventory.AllMunicipalities, "Olinda", "Recife"}, inventory.MunicipalityOptions(m))

	require.Equal(t, "Olinda", inventory.ResolveMunicipality(m, "Olinda"))
	require.Equal(t, inventory.AllMunicipalities, inventory.ResolveMunicipality(m, "Caruaru"))
}
