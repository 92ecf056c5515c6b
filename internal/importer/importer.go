// Package importer ingests the positional-layout pericia spreadsheet and
// creates one record per data row for the owning user.
package importer

import (
	"context"
	"fmt"
	"strings"

	"github.com/oklog/ulid/v2"
	"github.com/sirupsen/logrus"

	"github.com/acreis/pericias-portal/internal/api"
	"github.com/acreis/pericias-portal/internal/models"
	"github.com/acreis/pericias-portal/internal/normalize"
	"github.com/acreis/pericias-portal/internal/sheet"
)

// Positional column layout of the import spreadsheet. Columns are fixed by
// convention; only the header row's position varies between files.
const (
	colNumero         = 0
	colCidade         = 1
	colVara           = 2
	colRequerente     = 3
	colProcesso       = 4 // cell may carry the process link as a hyperlink
	colFuncao         = 5
	colRequerido      = 6
	colNR15Start      = 7 // 14-column NR15 block
	colNR16Start      = 21 // 5-column NR16 block
	colStatus         = 26
	colDataNomeacao   = 27
	colDataPericia    = 28
	colHorario        = 29
	colEndereco       = 30
	colEmailRecte     = 31
	colEmailRecda     = 32
	colDataPrazo      = 33
	colDataEntrega    = 34
	colPrazoEsclarec  = 35
	colDataEsclarec   = 36
	colValorCausa     = 46
	colDataReceb      = 47
	colValorReceb     = 48
	colHonorarios     = 49
	colObservacoes    = 50
)

// headerMarker identifies the header row among leading title rows.
const headerMarker = "Nº do Processo"

// Store is the slice of the record store the importer needs.
type Store interface {
	Insert(ctx context.Context, p models.Pericia) error
}

// Options tune one import batch.
type Options struct {
	// LegacyStatus selects the single-shot layout that has no status column;
	// the status is inferred from the delivered date and the observation text.
	LegacyStatus bool
	// Perito is stamped on every created record.
	Perito string
}

// Importer runs import batches against a record store.
type Importer struct {
	store Store
	log   *logrus.Entry
	opts  Options
}

// New returns an Importer writing through store.
func New(store Store, log *logrus.Entry, opts Options) *Importer {
	return &Importer{store: store, log: log, opts: opts}
}

// Import decodes the file and inserts one pericia per data row, attributing
// every record to ownerID. Rows are processed strictly in file order; a row's
// store error is captured and never aborts the batch.
func (im *Importer) Import(ctx context.Context, file []byte, ownerID string) (*api.ImportResult, error) {
	sh, err := sheet.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decode spreadsheet: %w", err)
	}
	defer sh.Close()

	headerRow := sh.FindHeaderRow(headerMarker)
	res := &api.ImportResult{}
	if n := len(sh.Rows) - headerRow - 1; n > 0 {
		res.Total = n
	}

	for i := headerRow + 1; i < len(sh.Rows); i++ {
		rowNum := i + 1 // 1-based physical row

		p, ok := im.extractRow(sh, i, ownerID)
		if !ok {
			res.Skipped++
			continue
		}

		if err := im.store.Insert(ctx, p); err != nil {
			im.log.WithFields(logrus.Fields{"row": rowNum, "error": err.Error()}).Warn("row insert failed")
			res.Failed++
			res.Errors = append(res.Errors, api.RowError{Row: rowNum, Error: err.Error()})
			continue
		}
		res.Successful++
	}

	im.log.WithFields(logrus.Fields{
		"total":      res.Total,
		"successful": res.Successful,
		"failed":     res.Failed,
		"skipped":    res.Skipped,
	}).Info("import complete")
	return res, nil
}

// extractRow maps one physical row onto a pericia. It returns ok=false when
// the row lacks any of the required identity fields, which also covers
// trailing blank rows.
func (im *Importer) extractRow(sh *sheet.Sheet, row int, ownerID string) (models.Pericia, bool) {
	numeroProcesso := normalize.ParseText(sh.CellAt(row, colProcesso))
	requerente := normalize.ParseText(sh.CellAt(row, colRequerente))
	requerido := normalize.ParseText(sh.CellAt(row, colRequerido))
	vara := normalize.ParseText(sh.CellAt(row, colVara))
	if numeroProcesso == nil || requerente == nil || requerido == nil || vara == nil {
		return models.Pericia{}, false
	}

	dataEntrega := dateStr(sh.CellAt(row, colDataEntrega))
	observacoes := normalize.ParseText(sh.CellAt(row, colObservacoes))

	p := models.Pericia{
		ID:             ulid.Make().String(),
		UserID:         ownerID,
		NumeroProcesso: *numeroProcesso,
		Numero:         normalize.ParseInt(sh.CellAt(row, colNumero)),
		Requerente:     *requerente,
		Requerido:      *requerido,
		Vara:           *vara,
		Perito:         im.opts.Perito,
		Cidade:         normalize.ParseText(sh.CellAt(row, colCidade)),
		Endereco:       normalize.ParseText(sh.CellAt(row, colEndereco)),
		Funcao:         normalize.ParseText(sh.CellAt(row, colFuncao)),

		DataPericiaAgendada: dateStr(sh.CellAt(row, colDataPericia)),
		DataPrazo:           dateStr(sh.CellAt(row, colDataPrazo)),
		DataEntrega:         dataEntrega,
		PrazoEsclarecimento: dateStr(sh.CellAt(row, colPrazoEsclarec)),
		DataEsclarecimento:  dateStr(sh.CellAt(row, colDataEsclarec)),
		DataRecebimento:     dateStr(sh.CellAt(row, colDataReceb)),
		Horario:             normalize.ParseClock(sh.CellAt(row, colHorario)),

		ValorCausa:       normalize.ParseMoney(sh.CellAt(row, colValorCausa)),
		Honorarios:       normalize.ParseMoney(sh.CellAt(row, colHonorarios)),
		ValorRecebimento: normalize.ParseMoney(sh.CellAt(row, colValorReceb)),

		NR15: normalize.AnnexSet(blockCells(sh, row, colNR15Start, models.NR15BlockWidth)),
		NR16: normalize.AnnexSet(blockCells(sh, row, colNR16Start, models.NR16BlockWidth)),

		EmailReclamante: normalize.ParseText(sh.CellAt(row, colEmailRecte)),
		EmailReclamada:  normalize.ParseText(sh.CellAt(row, colEmailRecda)),
		Observacoes:     observacoes,
	}

	if link := sh.HyperlinkAt(row, colProcesso); link != "" {
		p.LinkProcesso = &link
	}

	if d := normalize.ParseDate(sh.CellAt(row, colDataNomeacao)); d != nil {
		p.DataNomeacao = d.String()
	} else {
		p.DataNomeacao = normalize.Today().String()
	}

	if im.opts.LegacyStatus {
		p.Status = InferStatus(dataEntrega != nil, observacoes)
	} else {
		p.Status = statusFromCell(sh.CellAt(row, colStatus))
	}
	return p, true
}

// InferStatus derives the workflow status from the delivered date and the
// observation text; the legacy import layout has no status column.
func InferStatus(delivered bool, observacoes *string) models.Status {
	if observacoes != nil && strings.Contains(strings.ToLower(*observacoes), "acordo") {
		if delivered {
			return models.StatusAcordoAposPericia
		}
		return models.StatusAcordoAntesPericia
	}
	if delivered {
		return models.StatusLaudoEntregue
	}
	return models.StatusAguardandoLaudo
}

// statusFromCell reads the status column as-is, collapsing whitespace runs.
// The value is not validated here; the record store enforces the enumeration
// and a bad value surfaces as that row's error.
func statusFromCell(c normalize.Cell) models.Status {
	if t := normalize.ParseText(c); t != nil {
		if s := normalize.CollapseSpaces(*t); s != "" {
			return models.Status(s)
		}
	}
	return models.StatusAguardandoLaudo
}

func dateStr(c normalize.Cell) *string {
	if d := normalize.ParseDate(c); d != nil {
		s := d.String()
		return &s
	}
	return nil
}

func blockCells(sh *sheet.Sheet, row, start, width int) []normalize.Cell {
	cells := make([]normalize.Cell, width)
	for i := 0; i < width; i++ {
		cells[i] = sh.CellAt(row, start+i)
	}
	return cells
}
