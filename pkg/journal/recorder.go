package journal

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"radiomesh-hq/warden/pkg/guardrail"
)

// Record is one journaled guardrail verdict.
type Record struct {
	// ID is a unique record identifier (UUIDv4).
	ID string

	// APID is the access point the request targeted.
	APID string

	// At is the simulated request time in minutes.
	At int

	// PeakHour reports the caller-supplied peak-hour flag.
	PeakHour bool

	// Emergency reports the request's emergency flag.
	Emergency bool

	// NewChannel and NewPowerDB are the requested values, nil when the
	// field was not part of the request.
	NewChannel *int
	NewPowerDB *int

	// Allowed, Reason and Applied mirror the decision.
	Allowed bool
	Reason  string
	Applied bool

	// RecordedAt is the wall-clock time the record was written.
	RecordedAt time.Time
}

// Recorder is a bounded, thread-safe in-memory journal of verdicts.
type Recorder struct {
	mu         sync.RWMutex
	records    []*Record
	maxRecords int
	logger     *slog.Logger
}

// RecorderConfig configures the Recorder.
type RecorderConfig struct {
	// MaxRecords bounds the journal; the oldest records are dropped when
	// the bound is reached. Default: 10000.
	MaxRecords int

	// Logger receives journal events. Defaults to slog.Default().
	Logger *slog.Logger
}

// NewRecorder creates a journal recorder.
func NewRecorder(cfg RecorderConfig) *Recorder {
	if cfg.MaxRecords <= 0 {
		cfg.MaxRecords = 10000
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Recorder{
		maxRecords: cfg.MaxRecords,
		logger:     cfg.Logger.With("component", "journal"),
	}
}

// RecordDecision appends one verdict. It implements guardrail.DecisionSink.
func (r *Recorder) RecordDecision(apID string, req *guardrail.ChangeRequest, in guardrail.Inputs, d *guardrail.Decision) {
	rec := &Record{
		ID:         uuid.NewString(),
		APID:       apID,
		At:         in.Now,
		PeakHour:   in.PeakHour,
		RecordedAt: time.Now(),
	}
	if req != nil {
		rec.Emergency = req.Emergency
		rec.NewChannel = copyInt(req.NewChannel)
		rec.NewPowerDB = copyInt(req.NewPowerDB)
	}
	if d != nil {
		rec.Allowed = d.Allowed
		rec.Reason = string(d.Reason)
		rec.Applied = d.Applied
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.records) >= r.maxRecords {
		dropped := len(r.records) - r.maxRecords + 1
		r.records = r.records[dropped:]
	}
	r.records = append(r.records, rec)
}

// Records returns copies of all records for apID, oldest first.
// An empty apID returns the whole journal.
func (r *Recorder) Records(apID string) []*Record {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*Record
	for _, rec := range r.records {
		if apID != "" && rec.APID != apID {
			continue
		}
		cp := *rec
		out = append(out, &cp)
	}
	return out
}

// Len returns the current number of journaled records.
func (r *Recorder) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records)
}

// pruneBefore removes records written before cutoff and returns the count.
func (r *Recorder) pruneBefore(cutoff time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.records[:0]
	pruned := 0
	for _, rec := range r.records {
		if rec.RecordedAt.Before(cutoff) {
			pruned++
			continue
		}
		kept = append(kept, rec)
	}
	r.records = kept
	return pruned
}

func copyInt(v *int) *int {
	if v == nil {
		return nil
	}
	cp := *v
	return &cp
}
