package sheet

import (
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/acreis/pericias-portal/internal/models"
)

const exportSheetName = "Perícias"

var exportHeaders = []string{
	"Nº", "Nº Vara", "Reclamante", "Nº Processo", "Reclamada",
	"Data Nomeação", "Prazo Entrega", "Data Perícia", "Horário",
	"Data Entrega", "Prazo Esclarec.", "Status", "NR15", "NR16",
	"Cidade", "Endereço", "Função", "Perito",
	"Valor da Causa", "Honorários", "Valor Recebido", "Observações",
}

var exportWidths = []float64{
	8, 15, 25, 22, 25, 15, 15, 15, 12, 15, 15, 20, 20, 20, 18, 30, 18, 20, 15, 15, 15, 35,
}

// BuildExport writes the given records to a styled workbook, one row per
// pericia, in the order given.
func BuildExport(pericias []models.Pericia) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), exportSheetName); err != nil {
		return nil, err
	}
	for i, w := range exportWidths {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(exportSheetName, name, name, w); err != nil {
			return nil, err
		}
	}

	header := make([]any, len(exportHeaders))
	for i, h := range exportHeaders {
		header[i] = h
	}
	if err := f.SetSheetRow(exportSheetName, "A1", &header); err != nil {
		return nil, err
	}

	for i, p := range pericias {
		axis, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := exportRow(p)
		if err := f.SetSheetRow(exportSheetName, axis, &row); err != nil {
			return nil, err
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF", Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"1E40AF"}},
		Alignment: &excelize.Alignment{Vertical: "center", Horizontal: "center"},
		Border:    thinBorders(),
	})
	if err != nil {
		return nil, err
	}
	lastCol, err := excelize.ColumnNumberToName(len(exportHeaders))
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(exportSheetName, "A1", lastCol+"1", headerStyle); err != nil {
		return nil, err
	}
	if err := f.SetRowHeight(exportSheetName, 1, 25); err != nil {
		return nil, err
	}

	if len(pericias) > 0 {
		moneyFmt := "#,##0.00"
		moneyStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &moneyFmt})
		if err != nil {
			return nil, err
		}
		last := strconv.Itoa(len(pericias) + 1)
		// Valor da Causa..Valor Recebido
		if err := f.SetCellStyle(exportSheetName, "S2", "U"+last, moneyStyle); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func exportRow(p models.Pericia) []any {
	return []any{
		intOr(p.Numero), p.Vara, p.Requerente, p.NumeroProcesso, p.Requerido,
		brDate(p.DataNomeacao), brDateP(p.DataPrazo), brDateP(p.DataPericiaAgendada), strOr(p.Horario),
		brDateP(p.DataEntrega), brDateP(p.PrazoEsclarecimento), string(p.Status),
		joinCodes(p.NR15), joinCodes(p.NR16),
		strOr(p.Cidade), strOr(p.Endereco), strOr(p.Funcao), p.Perito,
		floatOr(p.ValorCausa), floatOr(p.Honorarios), floatOr(p.ValorRecebimento), strOr(p.Observacoes),
	}
}

// brDate reformats a stored YYYY-MM-DD date to DD/MM/YYYY for display.
func brDate(iso string) string {
	parts := strings.Split(iso, "-")
	if len(parts) != 3 {
		return iso
	}
	return parts[2] + "/" + parts[1] + "/" + parts[0]
}

func brDateP(iso *string) string {
	if iso == nil {
		return ""
	}
	return brDate(*iso)
}

func joinCodes(codes []int) string {
	if len(codes) == 0 {
		return ""
	}
	parts := make([]string, len(codes))
	for i, c := range codes {
		parts[i] = strconv.Itoa(c)
	}
	return strings.Join(parts, ", ")
}

func strOr(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func intOr(p *int) any {
	if p == nil {
		return ""
	}
	return *p
}

func floatOr(p *float64) any {
	if p == nil {
		return ""
	}
	return *p
}
