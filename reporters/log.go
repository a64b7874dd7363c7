package reporters

import (
	"strings"
)

import (
	"github.com/timtadh/data-structures/errors"
)

import (
	"github.com/timtadh/armine/miners"
)

type Log struct {
	fmtr   miners.Formatter
	level  string
	prefix string
	count  int
}

func NewLog(fmtr miners.Formatter, level, prefix string) *Log {
	if level == "" {
		level = "INFO"
	}
	return &Log{fmtr: fmtr, level: level, prefix: prefix}
}

func (lr *Log) Report(r miners.Result) error {
	var line strings.Builder
	if err := lr.fmtr.Format(&line, r); err != nil {
		return err
	}
	if line.Len() == 0 {
		return nil
	}
	lr.count++
	msg := strings.TrimRight(line.String(), " \n")
	if lr.prefix != "" {
		errors.Logf(lr.level, "%s %v %v", lr.prefix, lr.count, msg)
	} else {
		errors.Logf(lr.level, "%v %v", lr.count, msg)
	}
	return nil
}

func (lr *Log) Close() error {
	return nil
}
