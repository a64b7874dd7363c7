package reporters

import ()

import ()

import (
	"github.com/timtadh/armine/miners"
)

// Max passes only maximal results on to the inner reporter.
type Max struct {
	Reporter miners.Reporter
}

func NewMax(reporter miners.Reporter) (*Max, error) {
	m := &Max{
		Reporter: reporter,
	}
	return m, nil
}

func (r *Max) Report(res miners.Result) error {
	if res.Class.IsMaximal() {
		return r.Reporter.Report(res)
	}
	return nil
}

func (r *Max) Close() error {
	return r.Reporter.Close()
}

// Closed passes only closed results on.
type Closed struct {
	Reporter miners.Reporter
}

func NewClosed(reporter miners.Reporter) (*Closed, error) {
	return &Closed{Reporter: reporter}, nil
}

func (r *Closed) Report(res miners.Result) error {
	if res.Class.IsClosed() {
		return r.Reporter.Report(res)
	}
	return nil
}

func (r *Closed) Close() error {
	return r.Reporter.Close()
}
