package datafiles

import (
	"encoding/csv"
	"errors"
	"io"
	"os"
)

// CreditEntry is one row of credit_names.txt. CreditID is the Discord
// column; it may be empty for contributors without an ID.
type CreditEntry struct {
	Name     string
	CreditID string
	Contact  string
}

type CreditNames []CreditEntry

// Get looks up an entry by credit ID.
func (c CreditNames) Get(id string) (CreditEntry, bool) {
	if id == "" {
		return CreditEntry{}, false
	}
	for _, e := range c {
		if e.CreditID == id {
			return e, true
		}
	}
	return CreditEntry{}, false
}

// ReadCreditNames parses credit_names.txt, a tab separated table with a
// Name/Discord/Contact header. Duplicate non-empty credit IDs are an error.
func ReadCreditNames(path string) (CreditNames, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ReadError{Kind: KindIO, Path: path, Err: err}
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = '\t'
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	var out CreditNames
	seen := map[string]struct{}{}
	first := true
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			line := 0
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				line = pe.Line
			}
			return nil, &ReadError{Kind: KindCSV, Path: path, Line: line, Err: err}
		}
		if first {
			first = false
			if len(rec) > 0 && rec[0] == "Name" {
				continue
			}
		}
		e := CreditEntry{Name: field(rec, 0), CreditID: field(rec, 1), Contact: field(rec, 2)}
		if e.CreditID != "" {
			if _, dup := seen[e.CreditID]; dup {
				return nil, &ReadError{Kind: KindDuplicateCredit, Path: path, Err: errors.New(e.CreditID)}
			}
			seen[e.CreditID] = struct{}{}
		}
		out = append(out, e)
	}
	return out, nil
}

func field(rec []string, i int) string {
	if i < len(rec) {
		return rec[i]
	}
	return ""
}
