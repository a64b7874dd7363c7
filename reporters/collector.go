package reporters

import (
	"github.com/timtadh/armine/miners"
)

type Collector struct {
	Results []miners.Result
	Closed  bool
}

func (c *Collector) Report(r miners.Result) error {
	c.Results = append(c.Results, r)
	return nil
}

func (c *Collector) Close() error {
	c.Closed = true
	return nil
}
