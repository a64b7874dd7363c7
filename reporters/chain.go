package reporters

import ()

import (
	"github.com/timtadh/armine/miners"
)

type Chain struct {
	Reporters []miners.Reporter
}

func (r *Chain) Report(res miners.Result) error {
	for _, rpt := range r.Reporters {
		err := rpt.Report(res)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *Chain) Close() error {
	for _, rpt := range r.Reporters {
		err := rpt.Close()
		if err != nil {
			return err
		}
	}
	return nil
}
