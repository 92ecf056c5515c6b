package sheet

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/acreis/pericias-portal/internal/models"
	"github.com/acreis/pericias-portal/internal/normalize"
)

func TestBuildUpdateTemplateHeaders(t *testing.T) {
	b, err := BuildUpdateTemplate()
	require.NoError(t, err)

	s, err := Decode(b)
	require.NoError(t, err)
	defer s.Close()

	require.GreaterOrEqual(t, len(s.Rows), 2, "header and example rows")
	for i, tc := range TemplateColumns {
		c := s.CellAt(0, i)
		require.Equal(t, normalize.KindString, c.Kind, tc.Label)
		assert.Equal(t, tc.Label, c.String)
	}
	assert.Equal(t, TemplateKeyLabel, s.CellAt(0, 0).String)
}

func TestBuildUpdateTemplateInstructionSheet(t *testing.T) {
	b, err := BuildUpdateTemplate()
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(b))
	require.NoError(t, err)
	defer f.Close()

	assert.Contains(t, f.GetSheetList(), "Instruções")

	rows, err := f.GetRows("Instruções")
	require.NoError(t, err)
	var flat []string
	for _, r := range rows {
		flat = append(flat, r...)
	}
	// Every accepted status is listed for the person filling the sheet.
	for _, st := range models.AllStatuses {
		assert.Contains(t, flat, "   - "+string(st))
	}
}

func TestBuildExport(t *testing.T) {
	num := 3
	honorarios := 3000.5
	entrega := "2026-02-01"
	cidade := "Guarulhos"
	pericias := []models.Pericia{
		{
			Numero:         &num,
			NumeroProcesso: "0001234-56.2024.5.02.0001",
			Requerente:     "João da Silva",
			Requerido:      "Empresa ABC Ltda",
			Vara:           "1ª Vara do Trabalho",
			Perito:         "Engº Arthur Reis",
			Status:         models.StatusAguardandoLaudo,
			DataNomeacao:   "2026-01-15",
			DataEntrega:    &entrega,
			Cidade:         &cidade,
			Honorarios:     &honorarios,
			NR15:           []int{1, 14},
		},
		{
			NumeroProcesso: "0009999-00.2024.5.02.0002",
			Requerente:     "Maria",
			Requerido:      "XYZ SA",
			Vara:           "2ª Vara",
			Perito:         "Engº Arthur Reis",
			Status:         models.StatusLaudoEntregue,
			DataNomeacao:   "2026-01-20",
		},
	}

	b, err := BuildExport(pericias)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(b))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(exportSheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, exportHeaders, rows[0][:len(exportHeaders)])

	first := rows[1]
	assert.Equal(t, "3", first[0])
	assert.Equal(t, "0001234-56.2024.5.02.0001", first[3])
	assert.Equal(t, "15/01/2026", first[5])
	assert.Equal(t, "01/02/2026", first[9])
	assert.Equal(t, "AGUARDANDO LAUDO", first[11])
	assert.Equal(t, "1, 14", first[12])
	assert.Equal(t, "Guarulhos", first[14])

	second := rows[2]
	assert.Equal(t, "", second[0])
	assert.Equal(t, "LAUDO/ESCLARECIMENTOS ENTREGUES", second[11])
}
