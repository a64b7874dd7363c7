package miners

import (
	"fmt"
	"io"
	"strconv"
)

const (
	itemsetWidth  = 20
	supportWidth  = 30
	categoryWidth = 20
)

// GridFormat writes the classified frequent itemsets of a lattice:
//
//	{1, 2}              #SUP: 3 (60%)                 Closed
type GridFormat struct{}

func (GridFormat) FileName() string {
	return "lattice.txt"
}

func (GridFormat) Format(w io.Writer, r Result) error {
	if r.Items.Empty() {
		return nil
	}
	_, err := fmt.Fprintf(w, "%-*s%-*s%-*s\n",
		itemsetWidth, r.Items.String(),
		supportWidth, supportLabel(r),
		categoryWidth, r.Class.String())
	return err
}

// FrequentFormat is GridFormat without the category column.
type FrequentFormat struct{}

func (FrequentFormat) FileName() string {
	return "frequent.txt"
}

func (FrequentFormat) Format(w io.Writer, r Result) error {
	if r.Items.Empty() {
		return nil
	}
	_, err := fmt.Fprintf(w, "%-*s%-*s\n", itemsetWidth, r.Items.String(), supportWidth, supportLabel(r))
	return err
}

// RareFormat writes "1 2 3 #SUP: 1".
type RareFormat struct{}

func (RareFormat) FileName() string {
	return "rare.txt"
}

func (RareFormat) Format(w io.Writer, r Result) error {
	if r.Items.Empty() {
		return nil
	}
	_, err := fmt.Fprintf(w, "%s #SUP: %d\n", r.Items.Spaced(), r.Support)
	return err
}

func supportLabel(r Result) string {
	return fmt.Sprintf("#SUP: %d (%s%%)", r.Support, FormatPercent(r.Percent()))
}

// FormatPercent prints p with at most six significant digits.
func FormatPercent(p float64) string {
	return strconv.FormatFloat(p, 'g', 6, 64)
}
