package ingest

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/mosaic-etl/salesledger/pkg/errors"
	"github.com/mosaic-etl/salesledger/pkg/table"
)

// Marketplace CSV exports come in a handful of encodings and delimiters
// with no reliable metadata, so each combination is tried in order and
// the first sensible parse wins.
var (
	csvEncodings = []csvEncoding{
		{name: "utf-8", decode: decodeUTF8},
		{name: "cp1251", decode: decodeCharmap(charmap.Windows1251)},
		{name: "cp866", decode: decodeCharmap(charmap.CodePage866)},
		{name: "latin-1", decode: decodeCharmap(charmap.ISO8859_1)},
	}
	csvDelimiters = []rune{',', ';', '\t', '|'}
)

var utf8BOM = []byte{0xef, 0xbb, 0xbf}

type csvEncoding struct {
	name   string
	decode func([]byte) (string, error)
}

func decodeUTF8(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", errors.New("invalid utf-8 sequence")
	}
	return string(data), nil
}

func decodeCharmap(cm *charmap.Charmap) func([]byte) (string, error) {
	return func(data []byte) (string, error) {
		decoded, err := cm.NewDecoder().Bytes(data)
		if err != nil {
			return "", err
		}
		// Charmap decoders substitute the replacement rune for bytes
		// the code page does not define; treat that as a failed probe.
		if bytes.ContainsRune(decoded, utf8.RuneError) {
			return "", errors.New("undefined code point")
		}
		return string(decoded), nil
	}
}

// ReadCSV reads a delimited text file, probing encodings and delimiters
// until one combination parses. A parse that yields a single column is
// only accepted for the comma delimiter; for every other delimiter it
// means the delimiter did not match and the next combination is tried.
func ReadCSV(path string) (*table.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	var lastErr error
	for _, enc := range csvEncodings {
		text, err := enc.decode(data)
		if err != nil {
			lastErr = err
			continue
		}
		for _, delim := range csvDelimiters {
			tbl, err := parseCSV(text, delim)
			if err != nil {
				lastErr = err
				continue
			}
			if tbl.NumCols() <= 1 && delim != ',' {
				continue
			}
			return tbl, nil
		}
	}
	if lastErr == nil {
		lastErr = errors.New("no parsable encoding and delimiter combination")
	}
	return nil, errors.WrapParse("csv", path, lastErr)
}

func parseCSV(text string, delim rune) (*table.Table, error) {
	r := csv.NewReader(strings.NewReader(text))
	r.Comma = delim
	r.LazyQuotes = true
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, errors.New("no columns to parse")
	}

	// Rows wider than the header mean the delimiter did not match;
	// rows narrower than the header are padded with absent cells.
	headers := uniqueHeaders(records[0])
	for i, record := range records[1:] {
		if len(record) > len(headers) {
			return nil, fmt.Errorf("record %d has %d fields, header has %d", i+2, len(record), len(headers))
		}
	}

	tbl := table.New(headers...)
	for _, record := range records[1:] {
		tbl.AppendRow(rowCells(record, len(headers))...)
	}
	return tbl, nil
}
