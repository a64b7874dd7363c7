package cmd

import "testing"
import "github.com/stretchr/testify/assert"

import (
	"compress/gzip"
	"errors"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
)

import (
	"github.com/timtadh/armine/types/itemset"
)

func writeGzip(t *assert.Assertions, path, content string) {
	f, err := os.Create(path)
	t.Nil(err)
	w := gzip.NewWriter(f)
	_, err = w.Write([]byte(content))
	t.Nil(err)
	t.Nil(w.Close())
	t.Nil(f.Close())
}

func TestLoadPlainGzipAndDir(x *testing.T) {
	t := assert.New(x)
	dir, err := ioutil.TempDir("", "cmd-input")
	t.Nil(err)
	defer os.RemoveAll(dir)

	plain := filepath.Join(dir, "a.dat")
	t.Nil(ioutil.WriteFile(plain, []byte("1 2 3\n1 2\n"), 0644))
	db, err := Load(plain, itemset.LoadOptions{})
	t.Nil(err)
	t.Equal(2, db.Len())

	gz := filepath.Join(dir, "b.dat.gz")
	writeGzip(t, gz, "# comment\n4 5\n")
	db, err = Load(gz, itemset.LoadOptions{SkipComments: true})
	t.Nil(err)
	t.Equal(1, db.Len())
	t.Equal([]int32{4, 5}, db.Items())

	sub := filepath.Join(dir, "parts")
	t.Nil(os.Mkdir(sub, 0775))
	t.Nil(ioutil.WriteFile(filepath.Join(sub, "1.dat"), []byte("1 2\n"), 0644))
	writeGzip(t, filepath.Join(sub, "2.dat.gz"), "2 3\n3\n")
	db, err = Load(sub, itemset.LoadOptions{})
	t.Nil(err)
	t.Equal(3, db.Len())
	t.Equal([]int32{1, 2, 3}, db.Items())
}

func TestLoadDirUnterminatedFile(x *testing.T) {
	t := assert.New(x)
	dir, err := ioutil.TempDir("", "cmd-input")
	t.Nil(err)
	defer os.RemoveAll(dir)

	t.Nil(ioutil.WriteFile(filepath.Join(dir, "a.txt"), []byte("1 2\n3 4"), 0644))
	t.Nil(ioutil.WriteFile(filepath.Join(dir, "b.txt"), []byte("5 6\n"), 0644))
	writeGzip(t, filepath.Join(dir, "c.txt.gz"), "7")
	t.Nil(ioutil.WriteFile(filepath.Join(dir, "d.txt"), []byte("8\n"), 0644))
	db, err := Load(dir, itemset.LoadOptions{})
	t.Nil(err)
	t.Equal(5, db.Len())
	txs := make([]string, 0, db.Len())
	for _, tx := range db.Transactions() {
		txs = append(txs, tx.String())
	}
	t.Equal([]string{"{1, 2}", "{3, 4}", "{5, 6}", "{7}", "{8}"}, txs)
}

func TestLineTerminated(x *testing.T) {
	t := assert.New(x)
	for input, expected := range map[string]string{
		"":       "",
		"1 2":    "1 2\n",
		"1 2\n":  "1 2\n",
		"1\n2 3": "1\n2 3\n",
	} {
		content, err := ioutil.ReadAll(&lineTerminated{reader: strings.NewReader(input)})
		t.Nil(err)
		t.Equal(expected, string(content), "input %q", input)
	}
	// a buffer that the last byte fills exactly
	l := &lineTerminated{reader: strings.NewReader("12")}
	buf := make([]byte, 2)
	n, err := l.Read(buf)
	t.Nil(err)
	t.Equal(2, n)
	n, err = l.Read(buf)
	t.Equal(io.EOF, err)
	t.Equal(1, n)
	t.Equal(byte('\n'), buf[0])
}

func TestLoadMissing(x *testing.T) {
	t := assert.New(x)
	_, err := Load(filepath.Join(os.TempDir(), "armine-no-such-file.dat"), itemset.LoadOptions{})
	var unreadable *itemset.InputFileUnreadable
	t.True(errors.As(err, &unreadable))
}
