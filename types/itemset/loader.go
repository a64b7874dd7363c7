package itemset

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"
)

import (
	"github.com/timtadh/data-structures/errors"
)

// LoadOptions controls the line reader.
type LoadOptions struct {
	// SkipComments skips lines starting with '#', '%' or '@'.
	SkipComments bool
}

// LoadFile reads the transaction file at path.
func LoadFile(path string, opts LoadOptions) (*Database, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &InputFileUnreadable{Path: path, Err: err}
	}
	defer f.Close()
	return Load(f, path, opts)
}

// Load parses one transaction per line, items separated by whitespace. Each
// line becomes a sorted, duplicate free Itemset. A blank line or a token that
// is not a positive integer aborts the load; no partial database is
// returned. name is only used in errors and logs.
func Load(input io.Reader, name string, opts LoadOptions) (*Database, error) {
	scanner := bufio.NewScanner(input)
	scanner.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)
	txs := make([]Itemset, 0, 100)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		if opts.SkipComments && isComment(line) {
			continue
		}
		if line == "" {
			return nil, &EmptyLineError{Path: name, Line: lineno}
		}
		cols := strings.Fields(line)
		items := make([]int32, 0, len(cols))
		for _, col := range cols {
			item, err := strconv.ParseInt(col, 10, 32)
			if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
				return nil, &MalformedInputError{Path: name, Line: lineno, Token: col, Reason: "item out of range"}
			} else if err != nil {
				return nil, &MalformedInputError{Path: name, Line: lineno, Token: col}
			}
			if item <= 0 {
				return nil, &MalformedInputError{Path: name, Line: lineno, Token: col, Reason: "non-positive item"}
			}
			items = append(items, int32(item))
		}
		txs = append(txs, New(items...))
	}
	if err := scanner.Err(); err != nil {
		return nil, &InputFileUnreadable{Path: name, Err: err}
	}
	errors.Logf("DEBUG", "loaded %d transactions from %v", len(txs), name)
	return NewDatabase(name, txs), nil
}

func isComment(line string) bool {
	return strings.HasPrefix(line, "#") || strings.HasPrefix(line, "%") || strings.HasPrefix(line, "@")
}
