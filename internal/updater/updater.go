// Package updater applies bulk updates from the named-header template
// spreadsheet: each row patches the pericia matching its process number.
package updater

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/acreis/pericias-portal/internal/api"
	"github.com/acreis/pericias-portal/internal/models"
	"github.com/acreis/pericias-portal/internal/normalize"
	"github.com/acreis/pericias-portal/internal/sheet"
)

// Store is the slice of the record store the updater needs.
type Store interface {
	FindByProcesso(ctx context.Context, userID, numeroProcesso string) (*models.Pericia, error)
	UpdateFields(ctx context.Context, userID, periciaID string, patch map[string]any) error
}

// Updater runs update batches against a record store.
type Updater struct {
	store Store
	log   *logrus.Entry
}

// New returns an Updater writing through store.
func New(store Store, log *logrus.Entry) *Updater {
	return &Updater{store: store, log: log}
}

// Update decodes the template spreadsheet and applies one sparse patch per
// data row, scoped to ownerID. A blank cell never overwrites a stored value:
// only columns with non-empty values enter the patch. Rows are processed
// strictly in file order and a row's store error never aborts the batch.
func (u *Updater) Update(ctx context.Context, file []byte, ownerID string) (*api.UpdateResult, error) {
	sh, err := sheet.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decode spreadsheet: %w", err)
	}
	defer sh.Close()

	if len(sh.Rows) == 0 {
		return &api.UpdateResult{}, nil
	}
	cols := headerColumns(sh.Rows[0])
	keyCol, ok := cols[sheet.TemplateKeyLabel]
	if !ok {
		return nil, fmt.Errorf("template header %q not found", sheet.TemplateKeyLabel)
	}

	res := &api.UpdateResult{Total: len(sh.Rows) - 1}

	for i := 1; i < len(sh.Rows); i++ {
		rowNum := i + 1 // 1-based physical row

		numeroProcesso := normalize.ParseText(sh.CellAt(i, keyCol))
		if numeroProcesso == nil {
			res.Skipped++
			continue
		}

		patch := buildPatch(sh, i, cols)
		if len(patch) == 0 {
			res.Skipped++
			continue
		}

		existing, err := u.store.FindByProcesso(ctx, ownerID, *numeroProcesso)
		if errors.Is(err, models.ErrNotFound) {
			res.NotFound++
			continue
		}
		if err != nil {
			u.rowFailed(res, rowNum, err)
			continue
		}

		if err := u.store.UpdateFields(ctx, ownerID, existing.ID, patch); err != nil {
			u.rowFailed(res, rowNum, err)
			continue
		}
		res.Successful++
	}

	u.log.WithFields(logrus.Fields{
		"total":      res.Total,
		"successful": res.Successful,
		"notFound":   res.NotFound,
		"failed":     res.Failed,
		"skipped":    res.Skipped,
	}).Info("update complete")
	return res, nil
}

func (u *Updater) rowFailed(res *api.UpdateResult, rowNum int, err error) {
	u.log.WithFields(logrus.Fields{"row": rowNum, "error": err.Error()}).Warn("row update failed")
	res.Failed++
	res.Errors = append(res.Errors, api.RowError{Row: rowNum, Error: err.Error()})
}

// headerColumns maps template labels to their column index in this file.
// Matching is by exact trimmed header text, order-independent.
func headerColumns(header []normalize.Cell) map[string]int {
	cols := make(map[string]int, len(header))
	for idx, c := range header {
		if t := normalize.ParseText(c); t != nil {
			cols[*t] = idx
		}
	}
	return cols
}

// buildPatch collects every recognized, non-empty column of the row into a
// sparse patch; fields whose cell is blank or fails normalization are left
// out entirely.
func buildPatch(sh *sheet.Sheet, row int, cols map[string]int) map[string]any {
	patch := make(map[string]any)
	for _, tc := range sheet.TemplateColumns {
		if tc.Label == sheet.TemplateKeyLabel {
			continue
		}
		idx, ok := cols[tc.Label]
		if !ok {
			continue
		}
		c := sh.CellAt(row, idx)
		if c.Kind == normalize.KindEmpty {
			continue
		}
		switch tc.Kind {
		case sheet.FieldDate:
			if d := normalize.ParseDate(c); d != nil {
				patch[tc.Field] = d.String()
			}
		case sheet.FieldNumber:
			if v := normalize.ParseMoney(c); v != nil {
				patch[tc.Field] = *v
			}
		case sheet.FieldTime:
			if v := normalize.ParseClock(c); v != nil {
				patch[tc.Field] = *v
			}
		default:
			if v := normalize.ParseText(c); v != nil {
				patch[tc.Field] = *v
			}
		}
	}
	return patch
}
