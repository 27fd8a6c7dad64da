package sheet_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/empetur/consolidacao/internal/domain/inventory"
	"github.com/empetur/consolidacao/internal/sheet"
	"github.com/stretchr/testify/require"
)

func TestFormatFromPath(t *testing.T) {
	f, err := sheet.FormatFromPath("dados/inventario_preliminar_app.XLSX")
	require.NoError(t, err)
	require.Equal(t, sheet.FormatXLSX, f)

	f, err = sheet.FormatFromPath("a.csv")
	require.NoError(t, err)
	require.Equal(t, sheet.FormatCSV, f)
	require.Equal(t, ".csv", f.Ext())

	_, err = sheet.FormatFromPath("a.ods")
	require.ErrorIs(t, err, sheet.ErrUnsupportedFormat)
}

func TestDecodeCSV_SkipsBlankRowsAndBOM(t *testing.T) {
	in := "\ufeffMunicípio,Nome\nRecife,Forte\n,\nOlinda,Sé,extra\n"
	table, err := sheet.Decode(strings.NewReader(in), sheet.FormatCSV)
	require.NoError(t, err)
	require.Equal(t, []string{"Município", "Nome"}, table.Header)
	require.Equal(t, 2, table.Len())
	require.Equal(t, "Sé", table.Cell(1, 1))
}

func TestDecode_EmptyInputIsError(t *testing.T) {
	_, err := sheet.Decode(strings.NewReader(""), sheet.FormatCSV)
	require.Error(t, err)

	_, err = sheet.Decode(strings.NewReader("not a zip"), sheet.FormatXLSX)
	require.Error(t, err)
}

func TestEncodeDecode_XLSX(t *testing.T) {
	table := inventory.ToTable([]inventory.Item{
		{MunicipioNome: "Recife", ItemID: "1", Nome: "Forte", EnviarCampo: true},
		{MunicipioNome: "Olinda", ItemID: "2", Nome: "Sé"},
	})

	var buf bytes.Buffer
	require.NoError(t, sheet.Encode(&buf, table, sheet.FormatXLSX, ""))

	got, err := sheet.Decode(bytes.NewReader(buf.Bytes()), sheet.FormatXLSX)
	require.NoError(t, err)
	require.Equal(t, table.Header, got.Header)
	require.Equal(t, 2, got.Len())

	items := inventory.FromTable(got)
	require.Equal(t, "Forte", items[0].Nome)
	require.True(t, items[0].EnviarCampo)
	require.Equal(t, "Sé", items[1].Nome)
}

func TestEncode_UnsupportedFormat(t *testing.T) {
	var buf bytes.Buffer
	err := sheet.Encode(&buf, inventory.RawTable{}, "ods", "")
	require.ErrorIs(t, err, sheet.ErrUnsupportedFormat)
}
