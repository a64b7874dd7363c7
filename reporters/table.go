package reporters

import (
	"io"
	"os"
)

import (
	"github.com/jedib0t/go-pretty/v6/table"
)

import (
	"github.com/timtadh/armine/config"
	"github.com/timtadh/armine/miners"
)

// Table renders the results as a text table when closed.
type Table struct {
	tw    table.Writer
	out   io.WriteCloser
	count int
}

// NewTable renders to the named file in the output directory or to stdout
// when filename is empty.
func NewTable(c *config.Config, title, filename string) (*Table, error) {
	var out io.WriteCloser
	if filename != "" {
		f, err := os.Create(c.OutputFile(filename))
		if err != nil {
			return nil, err
		}
		out = f
	}
	var w io.Writer = os.Stdout
	if out != nil {
		w = out
	}
	return newTable(w, out, title), nil
}

func newTable(w io.Writer, out io.WriteCloser, title string) *Table {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	if title != "" {
		tw.SetTitle(title)
	}
	tw.AppendHeader(table.Row{"#", "Itemset", "Size", "Support", "Percent", "Class"})
	return &Table{tw: tw, out: out}
}

func (t *Table) Report(r miners.Result) error {
	if r.Items.Empty() {
		return nil
	}
	t.count++
	t.tw.AppendRow(table.Row{
		t.count,
		r.Items.String(),
		r.Items.Len(),
		r.Support,
		miners.FormatPercent(r.Percent()) + "%",
		r.Class.String(),
	})
	return nil
}

func (t *Table) Close() error {
	t.tw.AppendFooter(table.Row{"", "Total", "", t.count})
	t.tw.Render()
	if t.out != nil {
		return t.out.Close()
	}
	return nil
}
