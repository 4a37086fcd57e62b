// Package report renders analysis results as text tables or JSON.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/soltixdb/quant/internal/config"
	"github.com/soltixdb/quant/internal/utils"
)

const notAvailable = "n/a"

// Renderer writes reports to an output stream
type Renderer struct {
	out       io.Writer
	format    utils.OutputFormat
	precision int
}

// New creates a renderer for the configured format and precision
func New(out io.Writer, cfg config.OutputConfig) *Renderer {
	precision := cfg.Precision
	if precision < 0 || precision > utils.MaxPrecision {
		precision = utils.DefaultPrecision
	}
	return &Renderer{
		out:       out,
		format:    cfg.OutputFormat(),
		precision: precision,
	}
}

// Format returns the output format of the renderer
func (r *Renderer) Format() utils.OutputFormat {
	return r.format
}

// Render writes v. Types without a table layout are written as JSON.
func (r *Renderer) Render(v any) error {
	if r.format == utils.OutputFormatJSON {
		return r.renderJSON(v)
	}

	text, ok := r.table(v)
	if !ok {
		return r.renderJSON(v)
	}
	_, err := io.WriteString(r.out, text+"\n")
	return err
}

func (r *Renderer) renderJSON(v any) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	return nil
}

// num formats f with thousands separators and at most precision decimals
func (r *Renderer) num(f float64) string {
	return humanize.CommafWithDigits(f, r.precision)
}

// opt formats an optional value
func (r *Renderer) opt(f *float64) string {
	if f == nil {
		return notAvailable
	}
	return r.num(*f)
}

// pct formats f as a percentage
func (r *Renderer) pct(f float64) string {
	return r.num(f) + "%"
}

// count formats an integer with thousands separators
func count(n int) string {
	return humanize.Comma(int64(n))
}

// newTable creates a table in the compact light style
func newTable() table.Writer {
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Options.SeparateRows = false
	tbl.Style().Options.SeparateColumns = false
	tbl.Style().Options.DrawBorder = false
	tbl.Style().Options.SeparateHeader = false
	return tbl
}

// section joins a title, a key/value table and optional extra blocks
func section(title string, rows []table.Row, extra ...string) string {
	parts := []string{fmt.Sprintf("=== %s ===", strings.ToUpper(title))}

	if len(rows) > 0 {
		tbl := newTable()
		tbl.AppendRows(rows)
		parts = append(parts, tbl.Render())
	}

	for _, block := range extra {
		if block != "" {
			parts = append(parts, block)
		}
	}
	return strings.Join(parts, "\n\n")
}

// collection renders a titled table with a header and item count footer
func collection(title string, header table.Row, rows []table.Row) string {
	if len(rows) == 0 {
		return title + ": none"
	}

	tbl := newTable()
	tbl.AppendHeader(header)
	tbl.AppendRows(rows)
	tbl.AppendFooter(table.Row{fmt.Sprintf("Total: %s items", count(len(rows)))})
	return fmt.Sprintf("%s:\n%s", title, tbl.Render())
}

// list renders strings as bullet lines
func list(title string, items []string) string {
	if len(items) == 0 {
		return ""
	}
	return title + ":\n  - " + strings.Join(items, "\n  - ")
}

func sortedKeys(m map[string]float64) []string {
	return slices.Sorted(maps.Keys(m))
}
