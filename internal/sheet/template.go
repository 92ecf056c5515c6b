package sheet

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/acreis/pericias-portal/internal/models"
)

// FieldKind selects which normalizer applies to an update-template column.
type FieldKind int

const (
	FieldText FieldKind = iota
	FieldDate
	FieldNumber
	FieldTime
)

// TemplateColumn describes one column of the bulk-update template: its exact
// header label, the record field it maps to, and how its cells are parsed.
type TemplateColumn struct {
	Label   string
	Field   string
	Kind    FieldKind
	Width   float64
	Example any
}

// TemplateKeyLabel is the header of the business-key column; rows without it
// are skipped by the updater.
const TemplateKeyLabel = "Nº Processo*"

// TemplateColumns is the fixed layout of the bulk-update template. The
// updater matches uploaded headers against these labels, order-independent.
var TemplateColumns = []TemplateColumn{
	{Label: TemplateKeyLabel, Field: "numero_processo", Kind: FieldText, Width: 25, Example: "0001234-56.2024.5.02.0001"},
	{Label: "Nº", Field: "numero", Kind: FieldNumber, Width: 8, Example: 1},
	{Label: "Status", Field: "status", Kind: FieldText, Width: 25, Example: "AGUARDANDO LAUDO"},
	{Label: "Nº Vara", Field: "vara", Kind: FieldText, Width: 15, Example: "1ª Vara do Trabalho"},
	{Label: "Reclamante", Field: "requerente", Kind: FieldText, Width: 25, Example: "João da Silva"},
	{Label: "Reclamada", Field: "requerido", Kind: FieldText, Width: 25, Example: "Empresa ABC Ltda"},
	{Label: "Data Nomeação", Field: "data_nomeacao", Kind: FieldDate, Width: 15, Example: "01/01/2024"},
	{Label: "Prazo Entrega", Field: "data_prazo", Kind: FieldDate, Width: 15, Example: "15/01/2024"},
	{Label: "Data Perícia", Field: "data_pericia_agendada", Kind: FieldDate, Width: 15, Example: "20/01/2024"},
	{Label: "Horário", Field: "horario", Kind: FieldTime, Width: 12, Example: "14:00"},
	{Label: "Data Entrega", Field: "data_entrega", Kind: FieldDate, Width: 15, Example: ""},
	{Label: "Prazo Esclarec.", Field: "prazo_esclarecimento", Kind: FieldDate, Width: 15, Example: ""},
	{Label: "Data Esclarec.", Field: "data_esclarecimento", Kind: FieldDate, Width: 15, Example: ""},
	{Label: "Data Recebimento", Field: "data_recebimento", Kind: FieldDate, Width: 15, Example: ""},
	{Label: "Cidade", Field: "cidade", Kind: FieldText, Width: 18, Example: "São Paulo"},
	{Label: "Endereço", Field: "endereco", Kind: FieldText, Width: 30, Example: "Rua Exemplo, 123"},
	{Label: "Função", Field: "funcao", Kind: FieldText, Width: 18, Example: "Operador"},
	{Label: "Perito", Field: "perito", Kind: FieldText, Width: 20, Example: "Engº Arthur Reis"},
	{Label: "Valor da Causa", Field: "valor_causa", Kind: FieldNumber, Width: 15, Example: "50000"},
	{Label: "Honorários", Field: "honorarios", Kind: FieldNumber, Width: 15, Example: "3000"},
	{Label: "Valor Recebido", Field: "valor_recebimento", Kind: FieldNumber, Width: 15, Example: ""},
	{Label: "Deslocamento", Field: "deslocamento", Kind: FieldText, Width: 18, Example: "Metrô"},
	{Label: "Estação", Field: "estacao", Kind: FieldText, Width: 20, Example: "Sé"},
	{Label: "Nº Linha", Field: "linha_numero", Kind: FieldText, Width: 15, Example: "1"},
	{Label: "Cor Linha", Field: "linha_cor", Kind: FieldText, Width: 12, Example: "Azul"},
	{Label: "Link Processo", Field: "link_processo", Kind: FieldText, Width: 40, Example: "https://pje.trt2.jus.br/..."},
	{Label: "E-mail Reclamante", Field: "email_reclamante", Kind: FieldText, Width: 25, Example: "joao@email.com"},
	{Label: "E-mail Reclamada", Field: "email_reclamada", Kind: FieldText, Width: 25, Example: "empresa@email.com"},
	{Label: "Observações", Field: "observacoes", Kind: FieldText, Width: 35, Example: "Observação de exemplo"},
}

const templateSheetName = "Modelo Atualização"

// BuildUpdateTemplate produces the downloadable bulk-update workbook: a
// styled header row with the exact template labels, one italic example row,
// and an instruction sheet.
func BuildUpdateTemplate() ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), templateSheetName); err != nil {
		return nil, err
	}

	labels := make([]any, len(TemplateColumns))
	examples := make([]any, len(TemplateColumns))
	for i, col := range TemplateColumns {
		labels[i] = col.Label
		examples[i] = col.Example
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(templateSheetName, name, name, col.Width); err != nil {
			return nil, err
		}
	}
	if err := f.SetSheetRow(templateSheetName, "A1", &labels); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(templateSheetName, "A2", &examples); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF", Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"10B981"}},
		Alignment: &excelize.Alignment{Vertical: "center", Horizontal: "center"},
		Border:    thinBorders(),
	})
	if err != nil {
		return nil, err
	}
	exampleStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Italic: true, Color: "6B7280"},
		Alignment: &excelize.Alignment{Vertical: "center", WrapText: true},
		Border:    thinBorders(),
	})
	if err != nil {
		return nil, err
	}

	lastCol, err := excelize.ColumnNumberToName(len(TemplateColumns))
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(templateSheetName, "A1", lastCol+"1", headerStyle); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(templateSheetName, "A2", lastCol+"2", exampleStyle); err != nil {
		return nil, err
	}
	if err := f.SetRowHeight(templateSheetName, 1, 25); err != nil {
		return nil, err
	}

	if err := addInstructionSheet(f); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func addInstructionSheet(f *excelize.File) error {
	const name = "Instruções"
	if _, err := f.NewSheet(name); err != nil {
		return err
	}
	if err := f.SetColWidth(name, "A", "A", 100); err != nil {
		return err
	}

	lines := []string{
		"=== INSTRUÇÕES PARA ATUALIZAÇÃO EM MASSA ===",
		"",
		"1. O campo 'Nº Processo*' é OBRIGATÓRIO e usado para identificar qual perícia será atualizada.",
		"",
		"2. Preencha APENAS os campos que deseja atualizar. Campos vazios serão ignorados.",
		"",
		"3. Formatos aceitos:",
		"   - Datas: DD/MM/AAAA (ex: 01/01/2024)",
		"   - Horário: HH:MM (ex: 14:00)",
		"   - Valores monetários: número simples (ex: 3000 ou 3000.50)",
		"",
		"4. Status válidos:",
	}
	for _, s := range models.AllStatuses {
		lines = append(lines, "   - "+string(s))
	}
	lines = append(lines,
		"",
		"5. Apague a linha de exemplo antes de importar.",
		"",
		"6. Você pode atualizar várias perícias de uma vez, cada uma em uma linha.",
	)

	for i, line := range lines {
		if err := f.SetCellValue(name, fmt.Sprintf("A%d", i+1), line); err != nil {
			return err
		}
	}
	titleStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}})
	if err != nil {
		return err
	}
	return f.SetCellStyle(name, "A1", "A1", titleStyle)
}

func thinBorders() []excelize.Border {
	const gray = "D1D5DB"
	return []excelize.Border{
		{Type: "top", Color: gray, Style: 1},
		{Type: "left", Color: gray, Style: 1},
		{Type: "bottom", Color: gray, Style: 1},
		{Type: "right", Color: gray, Style: 1},
	}
}
