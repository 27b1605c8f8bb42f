package funlib

import (
	"fmt"
	"sync"

	"go.uber.org/atomic"
	"go.uber.org/zap"
)

type Severity byte

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	}
	return "?"
}

// Diagnostic is one message of the engine. File and Line are empty when the
// message was produced outside a source context
type Diagnostic struct {
	Severity Severity
	File     string
	Line     int
	Func     string
	Msg      string
}

func (d Diagnostic) String() string {
	var where string
	switch {
	case d.File != "" && d.Line > 0:
		where = fmt.Sprintf("%s:%d: ", d.File, d.Line)
	case d.File != "":
		where = d.File + ": "
	}
	if d.Func != "" {
		return fmt.Sprintf("%s%s: %s(): %s", where, d.Severity, d.Func, d.Msg)
	}
	return fmt.Sprintf("%s%s: %s", where, d.Severity, d.Msg)
}

// maxKeptDiagnostics limits the history of a sink, counters are not limited
const maxKeptDiagnostics = 1000

// Diagnostics is the sink of warnings and errors. It logs every message and counts
// them. One sink may be shared by several contexts
type Diagnostics struct {
	log      *zap.SugaredLogger
	warnings atomic.Int64
	errors   atomic.Int64
	mutex    sync.Mutex
	kept     []Diagnostic
}

func NewDiagnostics(log *zap.SugaredLogger) *Diagnostics {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Diagnostics{log: log}
}

func (d *Diagnostics) Report(diag Diagnostic) {
	keys := []interface{}{"func", diag.Func}
	if diag.File != "" {
		keys = append(keys, "file", diag.File, "line", diag.Line)
	}
	switch diag.Severity {
	case SeverityWarning:
		d.warnings.Inc()
		d.log.Warnw(diag.Msg, keys...)
	case SeverityError:
		d.errors.Inc()
		d.log.Errorw(diag.Msg, keys...)
	default:
		d.log.Infow(diag.Msg, keys...)
	}

	d.mutex.Lock()
	defer d.mutex.Unlock()
	if len(d.kept) < maxKeptDiagnostics {
		d.kept = append(d.kept, diag)
	}
}

func (d *Diagnostics) Warnings() int64 {
	return d.warnings.Load()
}

func (d *Diagnostics) Errors() int64 {
	return d.errors.Load()
}

// List returns a copy of the kept diagnostics in reporting order
func (d *Diagnostics) List() []Diagnostic {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	return append([]Diagnostic(nil), d.kept...)
}

func (d *Diagnostics) Reset() {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	d.kept = nil
	d.warnings.Store(0)
	d.errors.Store(0)
}
