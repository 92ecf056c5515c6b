// Package normalize converts raw spreadsheet cell values into typed fields.
// Every function is pure: same cell in, same value out, no side effects.
package normalize

// Kind discriminates the raw value a spreadsheet cell carried.
type Kind int

const (
	KindEmpty Kind = iota
	KindString
	KindNumber
)

// Cell is one untyped spreadsheet cell as produced by the tabular decoder:
// either a string, a numeric serial, or empty.
type Cell struct {
	Kind   Kind
	String string
	Number float64
}

// StringCell wraps a raw string value.
func StringCell(s string) Cell { return Cell{Kind: KindString, String: s} }

// NumberCell wraps a raw numeric value.
func NumberCell(n float64) Cell { return Cell{Kind: KindNumber, Number: n} }

// EmptyCell is the absent/blank cell.
func EmptyCell() Cell { return Cell{Kind: KindEmpty} }
