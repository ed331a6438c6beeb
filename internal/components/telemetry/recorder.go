package telemetry

import (
	"sync"
)

type Report struct {
	Id     string
	Params []any
}

// Recorder is an API that keeps every report in memory so tests can assert
// on what a component reported.
type Recorder struct {
	mu       sync.Mutex
	broken   []Report
	warnings []Report
	debug    []Report
	counts   map[string]int64
}

func NewRecorder() *Recorder {
	return &Recorder{counts: map[string]int64{}}
}

func (r *Recorder) ReportBroken(id string, params ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.broken = append(r.broken, Report{Id: id, Params: params})
}

func (r *Recorder) ReportWarning(id string, params ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.warnings = append(r.warnings, Report{Id: id, Params: params})
}

func (r *Recorder) ReportDebug(msg string, params ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.debug = append(r.debug, Report{Id: msg, Params: params})
}

func (r *Recorder) ReportCount(id string, count int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counts[id] = count
}

func (r *Recorder) Broken() []Report {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Report(nil), r.broken...)
}

func (r *Recorder) Warnings() []Report {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Report(nil), r.warnings...)
}

func (r *Recorder) Debug() []Report {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Report(nil), r.debug...)
}

func (r *Recorder) Count(id string) (int64, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.counts[id]
	return n, ok
}
