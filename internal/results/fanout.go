package results

import (
	"errors"

	"github.com/charmbracelet/log"
)

// Fanout saves each record to every recorder. A failing recorder is logged
// and does not stop the others.
type Fanout struct {
	recorders []Recorder
	logger    *log.Logger
}

// NewFanout builds a fan-out recorder; nil recorders are skipped.
func NewFanout(logger *log.Logger, recorders ...Recorder) *Fanout {
	f := &Fanout{logger: logger}
	for _, r := range recorders {
		if r != nil {
			f.recorders = append(f.recorders, r)
		}
	}
	return f
}

// Len returns the number of attached recorders.
func (f *Fanout) Len() int {
	return len(f.recorders)
}

// Save writes rec everywhere and returns the joined failures.
func (f *Fanout) Save(rec Record) error {
	var errs []error
	for _, r := range f.recorders {
		if err := r.Save(rec); err != nil {
			if f.logger != nil {
				f.logger.Warn("result not saved", "mode", rec.Mode, "value", rec.Value(), "error", err)
			}
			errs = append(errs, err)
		}
	}
	if len(errs) == 0 && f.logger != nil {
		f.logger.Info("result saved", "mode", rec.Mode, "value", rec.Value(), "lines", rec.Lines)
	}
	return errors.Join(errs...)
}
