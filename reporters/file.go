package reporters

import (
	"bufio"
	"io"
	"os"
)

import (
	"github.com/timtadh/armine/config"
	"github.com/timtadh/armine/miners"
)

// File writes one formatted line per result to a file in the output
// directory.
type File struct {
	fmtr miners.Formatter
	f    io.WriteCloser
	w    *bufio.Writer
}

// NewFile creates the report file. An empty filename uses the formatter's
// default name.
func NewFile(c *config.Config, fmtr miners.Formatter, filename string) (*File, error) {
	if filename == "" {
		filename = fmtr.FileName()
	}
	f, err := os.Create(c.OutputFile(filename))
	if err != nil {
		return nil, err
	}
	return NewWriter(fmtr, f), nil
}

// NewWriter reports into an already open writer. Close closes it.
func NewWriter(fmtr miners.Formatter, w io.WriteCloser) *File {
	return &File{
		fmtr: fmtr,
		f:    w,
		w:    bufio.NewWriter(w),
	}
}

func (r *File) Report(res miners.Result) error {
	return r.fmtr.Format(r.w, res)
}

func (r *File) Close() error {
	err := r.w.Flush()
	cerr := r.f.Close()
	if err != nil {
		return err
	}
	return cerr
}
