// Package datafiles reads and validates the data files of a SpriteCollab
// repository checkout: sprite_config.json, tracker.json, credit_names.txt
// and the per-form AnimData.xml files.
package datafiles

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
)

type ReadErrorKind int

const (
	KindJSON ReadErrorKind = iota
	KindCSV
	KindIO
	KindDuplicateCredit
	KindXML
)

// ReadError is the error type of all datafile readers. Line is the 1-based
// line of the failure when the decoder reports one, 0 otherwise.
type ReadError struct {
	Kind ReadErrorKind
	Path string
	Line int
	Err  error
}

func (e *ReadError) Error() string {
	switch e.Kind {
	case KindJSON:
		return fmt.Sprintf("JSON deserialization error: %v", e.Err)
	case KindCSV:
		return fmt.Sprintf("CSV deserialization error: %v", e.Err)
	case KindIO:
		return fmt.Sprintf("I/O error: %v", e.Err)
	case KindDuplicateCredit:
		return fmt.Sprintf("duplicate credit id while trying to read credit names: %v", e.Err)
	case KindXML:
		return fmt.Sprintf("XML deserialization error: %v", e.Err)
	}
	return e.Err.Error()
}

func (e *ReadError) Unwrap() error { return e.Err }

// Report describes the outcome of a datafile ingest step. A zero Err and
// empty AnimErrors means success.
type Report struct {
	Path       string
	Err        error
	AnimErrors []AnimError
}

func OK() Report { return Report{} }

func (r Report) IsOK() bool { return r.Err == nil && len(r.AnimErrors) == 0 }

// Line returns the source line of the failure if the underlying read error
// carries one.
func (r Report) Line() int {
	if re, ok := r.Err.(*ReadError); ok {
		return re.Line
	}
	return 0
}

func (r Report) FormatShort() string {
	if len(r.AnimErrors) > 0 {
		lines := make([]string, 0, len(r.AnimErrors)+1)
		lines = append(lines, "Failed reading one or more animation data XML files:")
		for _, ae := range r.AnimErrors {
			lines = append(lines, ae.String())
		}
		return strings.Join(lines, "\n")
	}
	if r.Err != nil {
		return fmt.Sprintf("Failed reading %s: %v", filepath.Base(r.Path), r.Err)
	}
	return "Success."
}

// Reporter receives ingest reports. Implemented by the reporting package.
type Reporter interface {
	ReportDatafiles(Report)
}

// ReadAndReport runs read and forwards any failure to the reporter before
// returning it.
func ReadAndReport[T any](path string, read func(string) (T, error), rep Reporter) (T, error) {
	v, err := read(path)
	if err != nil {
		rep.ReportDatafiles(Report{Path: path, Err: err})
	}
	return v, err
}

// jsonErrorLine maps a json.SyntaxError or json.UnmarshalTypeError offset
// back to a line number in data.
func jsonErrorLine(data []byte, err error) int {
	var off int64
	switch e := err.(type) {
	case *json.SyntaxError:
		off = e.Offset
	case *json.UnmarshalTypeError:
		off = e.Offset
	default:
		return 0
	}
	if off <= 0 || off > int64(len(data)) {
		return 0
	}
	return bytes.Count(data[:off], []byte{'\n'}) + 1
}
