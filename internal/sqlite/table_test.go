package sqlite

import (
	"context"
	"testing"

	"github.com/empetur/consolidacao/internal/domain/inventory"
	"github.com/empetur/consolidacao/internal/repository"
	"github.com/stretchr/testify/require"
)

func TestTableRepository_EmptyDatabase(t *testing.T) {
	repo := NewTableRepository(NewTestDB(t))

	_, _, err := repo.Load(context.Background())
	require.ErrorIs(t, err, repository.ErrSourceNotFound)

	_, err = repo.Version(context.Background())
	require.ErrorIs(t, err, repository.ErrSourceNotFound)
}

func TestTableRepository_SaveLoad(t *testing.T) {
	ctx := context.Background()
	repo := NewTableRepository(NewTestDB(t))

	items := []inventory.Item{
		{MunicipioNome: "Recife", ItemID: "2611-0001", Nome: "Forte", Validacao: inventory.ValidationYes, EnviarCampo: true},
		{MunicipioNome: "Olinda", ItemID: "2609-0001", Nome: "Sé", Validacao: inventory.ValidationBlank},
	}

	v1, err := repo.Save(ctx, inventory.ToTable(items))
	require.NoError(t, err)
	require.Equal(t, repository.Version("rev-1"), v1)

	table, version, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, v1, version)
	require.Equal(t, items, inventory.FromTable(table))

	v2, err := repo.Save(ctx, inventory.ToTable(items[:1]))
	require.NoError(t, err)
	require.NotEqual(t, v1, v2)

	table, _, err = repo.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, table.Len())
}

func TestTableRepository_SaveFillsMissingColumns(t *testing.T) {
	ctx := context.Background()
	repo := NewTableRepository(NewTestDB(t))

	_, err := repo.Save(ctx, inventory.RawTable{
		Header: []string{"nome", "extra"},
		Rows:   [][]string{{"Praia", "ignored"}},
	})
	require.NoError(t, err)

	table, _, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, table.Header, len(inventory.CanonicalColumns))
	items := inventory.FromTable(table)
	require.Equal(t, "Praia", items[0].Nome)
	require.False(t, items[0].EnviarCampo)
}
