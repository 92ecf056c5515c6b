package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/acreis/pericias-portal/internal/models"
	"github.com/acreis/pericias-portal/internal/normalize"
)

type fakeStore struct {
	inserted []models.Pericia
	failWith map[string]error // keyed by numero_processo
}

func (s *fakeStore) Insert(_ context.Context, p models.Pericia) error {
	if !models.ValidStatus(p.Status) {
		return fmt.Errorf("invalid status value %q", p.Status)
	}
	if err := s.failWith[p.NumeroProcesso]; err != nil {
		return err
	}
	s.inserted = append(s.inserted, p)
	return nil
}

func testLog() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

// buildSheet writes each row map (1-based physical row -> zero-based column
// -> value) into a fresh workbook.
func buildSheet(t *testing.T, rows map[int]map[int]any, links map[int]string) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sh := f.GetSheetName(0)
	for rowNum, cells := range rows {
		for col, v := range cells {
			axis, err := excelize.CoordinatesToCellName(col+1, rowNum)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sh, axis, v))
		}
	}
	for rowNum, link := range links {
		axis, err := excelize.CoordinatesToCellName(colProcesso+1, rowNum)
		require.NoError(t, err)
		require.NoError(t, f.SetCellHyperLink(sh, axis, link, "External"))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func dataRow(processo, requerente, requerido, vara string) map[int]any {
	return map[int]any{
		colProcesso:   processo,
		colRequerente: requerente,
		colRequerido:  requerido,
		colVara:       vara,
	}
}

func TestImportLegacyStatusInference(t *testing.T) {
	rowA := dataRow("0001-A", "João", "ABC Ltda", "1ª Vara")
	rowA[colObservacoes] = "Proposta de acordo aceita"
	rowB := dataRow("0002-B", "Maria", "XYZ SA", "2ª Vara")
	rowB[colDataEntrega] = "10/12/2025"

	file := buildSheet(t, map[int]map[int]any{
		1: {0: "CONTROLE DE PERÍCIAS 2025"},
		2: {4: "Nº do Processo"},
		3: rowA,
		4: rowB,
	}, nil)

	store := &fakeStore{}
	im := New(store, testLog(), Options{LegacyStatus: true, Perito: "Engº Arthur Reis"})
	res, err := im.Import(context.Background(), file, "user-1")
	require.NoError(t, err)

	assert.Equal(t, 2, res.Total)
	assert.Equal(t, 2, res.Successful)
	assert.Equal(t, 0, res.Failed)
	assert.Equal(t, 0, res.Skipped)
	require.Len(t, store.inserted, 2)

	a, b := store.inserted[0], store.inserted[1]
	assert.Equal(t, models.StatusAcordoAntesPericia, a.Status)
	assert.Equal(t, models.StatusLaudoEntregue, b.Status)
	require.NotNil(t, b.DataEntrega)
	assert.Equal(t, "2025-12-10", *b.DataEntrega)

	// No nomination date in the file: the import date stands in.
	assert.Equal(t, normalize.Today().String(), a.DataNomeacao)
	assert.Equal(t, "user-1", a.UserID)
	assert.Equal(t, "Engº Arthur Reis", a.Perito)
	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestImportLegacyAcordoAfterDelivery(t *testing.T) {
	row := dataRow("0003-C", "Pedro", "DEF ME", "3ª Vara")
	row[colObservacoes] = "ACORDO homologado"
	row[colDataEntrega] = "01/02/2025"

	file := buildSheet(t, map[int]map[int]any{
		1: {4: "Nº do Processo"},
		2: row,
	}, nil)

	store := &fakeStore{}
	im := New(store, testLog(), Options{LegacyStatus: true, Perito: "P"})
	res, err := im.Import(context.Background(), file, "u")
	require.NoError(t, err)

	assert.Equal(t, 1, res.Successful)
	require.Len(t, store.inserted, 1)
	assert.Equal(t, models.StatusAcordoAposPericia, store.inserted[0].Status)
}

func TestImportModernStatusColumn(t *testing.T) {
	row := dataRow("0004-D", "Ana", "GHI SA", "4ª Vara")
	row[colStatus] = "  SENTENÇA "

	file := buildSheet(t, map[int]map[int]any{
		1: {4: "Nº do Processo"},
		2: row,
	}, nil)

	store := &fakeStore{}
	im := New(store, testLog(), Options{Perito: "P"})
	res, err := im.Import(context.Background(), file, "u")
	require.NoError(t, err)

	assert.Equal(t, 1, res.Successful)
	require.Len(t, store.inserted, 1)
	assert.Equal(t, models.StatusSentenca, store.inserted[0].Status)
}

func TestImportPartialFailure(t *testing.T) {
	row1 := dataRow("0005-E", "A", "B", "1ª")
	row2 := dataRow("0006-F", "C", "D", "2ª")
	row2[colStatus] = "NÃO É UM STATUS"
	row3 := dataRow("0007-G", "E", "F", "3ª")

	file := buildSheet(t, map[int]map[int]any{
		1: {4: "Nº do Processo"},
		2: row1,
		3: row2,
		4: row3,
	}, nil)

	store := &fakeStore{}
	im := New(store, testLog(), Options{Perito: "P"})
	res, err := im.Import(context.Background(), file, "u")
	require.NoError(t, err)

	assert.Equal(t, 3, res.Total)
	assert.Equal(t, 2, res.Successful)
	assert.Equal(t, 1, res.Failed)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, 3, res.Errors[0].Row)
	assert.Contains(t, res.Errors[0].Error, "invalid status")
	// Rows keep file order.
	require.Len(t, store.inserted, 2)
	assert.Equal(t, "0005-E", store.inserted[0].NumeroProcesso)
	assert.Equal(t, "0007-G", store.inserted[1].NumeroProcesso)
}

func TestImportSkipsIncompleteRows(t *testing.T) {
	incomplete := dataRow("0008-H", "A", "", "1ª")
	delete(incomplete, colRequerido)
	complete := dataRow("0009-I", "B", "C", "2ª")

	file := buildSheet(t, map[int]map[int]any{
		1: {4: "Nº do Processo"},
		2: incomplete,
		3: complete,
		4: {colNumero: "TOTAL"}, // footer row without identity fields
	}, nil)

	store := &fakeStore{}
	im := New(store, testLog(), Options{LegacyStatus: true, Perito: "P"})
	res, err := im.Import(context.Background(), file, "u")
	require.NoError(t, err)

	// Total counts every scanned row, skipped ones included.
	assert.Equal(t, 3, res.Total)
	assert.Equal(t, 1, res.Successful)
	assert.Equal(t, 2, res.Skipped)
	assert.Equal(t, 0, res.Failed)
	// Skipped rows never show up as errors.
	assert.Empty(t, res.Errors)
}

func TestImportFullRowExtraction(t *testing.T) {
	row := dataRow("0010-J", "Carlos", "JKL Ltda", "5ª Vara")
	row[colNumero] = 7
	row[colCidade] = "Osasco"
	row[colFuncao] = "Soldador"
	row[colNR15Start] = "X"      // anexo 1
	row[colNR15Start+13] = 1     // anexo 14
	row[colNR16Start+2] = "1"    // anexo 3
	row[colDataNomeacao] = 45292 // serial for 2024-01-01
	row[colDataPericia] = "20/01/2024"
	row[colHorario] = "14:00"
	row[colEndereco] = "Rua Exemplo, 123"
	row[colEmailRecte] = "carlos@email.com"
	row[colValorCausa] = "R$ 50.000,00"
	row[colHonorarios] = 3000.5
	row[colStatus] = "AGUARDANDO PERÍCIA"

	file := buildSheet(t,
		map[int]map[int]any{1: {4: "Nº do Processo"}, 2: row},
		map[int]string{2: "https://pje.trt2.jus.br/consulta/0010"},
	)

	store := &fakeStore{}
	im := New(store, testLog(), Options{Perito: "Engº Arthur Reis"})
	_, err := im.Import(context.Background(), file, "u")
	require.NoError(t, err)
	require.Len(t, store.inserted, 1)
	p := store.inserted[0]

	require.NotNil(t, p.Numero)
	assert.Equal(t, 7, *p.Numero)
	assert.Equal(t, []int{1, 14}, p.NR15)
	assert.Equal(t, []int{3}, p.NR16)
	assert.Equal(t, "2024-01-01", p.DataNomeacao)
	require.NotNil(t, p.DataPericiaAgendada)
	assert.Equal(t, "2024-01-20", *p.DataPericiaAgendada)
	require.NotNil(t, p.Horario)
	assert.Equal(t, "14:00:00", *p.Horario)
	require.NotNil(t, p.ValorCausa)
	assert.InDelta(t, 50000, *p.ValorCausa, 1e-9)
	require.NotNil(t, p.Honorarios)
	assert.InDelta(t, 3000.5, *p.Honorarios, 1e-9)
	require.NotNil(t, p.LinkProcesso)
	assert.Equal(t, "https://pje.trt2.jus.br/consulta/0010", *p.LinkProcesso)
	require.NotNil(t, p.EmailReclamante)
	assert.Equal(t, "carlos@email.com", *p.EmailReclamante)
	assert.Nil(t, p.ValorRecebimento)
	assert.Nil(t, p.DataEntrega)
}

func TestImportStoreErrorDoesNotAbort(t *testing.T) {
	row1 := dataRow("0011-K", "A", "B", "1ª")
	row2 := dataRow("0012-L", "C", "D", "2ª")
	row3 := dataRow("0013-M", "E", "F", "3ª")

	file := buildSheet(t, map[int]map[int]any{
		1: {4: "Nº do Processo"},
		2: row1,
		3: row2,
		4: row3,
	}, nil)

	store := &fakeStore{failWith: map[string]error{
		"0011-K": errors.New("conditional write rejected"),
		"0012-L": errors.New("throttled"),
	}}
	im := New(store, testLog(), Options{LegacyStatus: true, Perito: "P"})
	res, err := im.Import(context.Background(), file, "u")
	require.NoError(t, err)

	assert.Equal(t, 1, res.Successful)
	assert.Equal(t, 2, res.Failed)
	require.Len(t, res.Errors, 2)
	assert.Equal(t, 2, res.Errors[0].Row)
	assert.Equal(t, 3, res.Errors[1].Row)
	require.Len(t, store.inserted, 1)
	assert.Equal(t, "0013-M", store.inserted[0].NumeroProcesso)
}

func TestInferStatus(t *testing.T) {
	acordo := "houve ACORDO entre as partes"
	plain := "sem novidades"
	cases := []struct {
		delivered bool
		obs       *string
		want      models.Status
	}{
		{false, nil, models.StatusAguardandoLaudo},
		{false, &plain, models.StatusAguardandoLaudo},
		{true, nil, models.StatusLaudoEntregue},
		{true, &plain, models.StatusLaudoEntregue},
		{false, &acordo, models.StatusAcordoAntesPericia},
		{true, &acordo, models.StatusAcordoAposPericia},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, InferStatus(c.delivered, c.obs))
	}
}
