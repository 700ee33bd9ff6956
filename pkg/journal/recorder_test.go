package journal

import (
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"radiomesh-hq/warden/pkg/guardrail"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func intp(v int) *int { return &v }

func record(r *Recorder, apID string, at int, allowed, applied bool, reason guardrail.Reason) {
	req := &guardrail.ChangeRequest{NewChannel: intp(11)}
	in := guardrail.Inputs{Now: at}
	r.RecordDecision(apID, req, in, &guardrail.Decision{
		Allowed: allowed,
		Applied: applied,
		Reason:  reason,
	})
}

func TestRecorderRecordsDecision(t *testing.T) {
	r := NewRecorder(RecorderConfig{Logger: testLogger()})

	power := intp(23)
	r.RecordDecision("AP-001",
		&guardrail.ChangeRequest{NewPowerDB: power, Emergency: true},
		guardrail.Inputs{Now: 400, PeakHour: true},
		&guardrail.Decision{Allowed: true, Applied: true},
	)

	recs := r.Records("AP-001")
	if len(recs) != 1 {
		t.Fatalf("expected 1 record, got %d", len(recs))
	}
	rec := recs[0]
	if rec.ID == "" {
		t.Error("record is missing an ID")
	}
	if rec.APID != "AP-001" || rec.At != 400 || !rec.PeakHour || !rec.Emergency {
		t.Errorf("unexpected record: %+v", rec)
	}
	if rec.NewPowerDB == nil || *rec.NewPowerDB != 23 {
		t.Errorf("expected power 23, got %v", rec.NewPowerDB)
	}
	if rec.NewChannel != nil {
		t.Errorf("expected nil channel, got %v", rec.NewChannel)
	}
	if !rec.Allowed || !rec.Applied {
		t.Errorf("expected allowed+applied, got %+v", rec)
	}
	if rec.RecordedAt.IsZero() {
		t.Error("RecordedAt not set")
	}

	// The journaled copy must not alias the request's pointer.
	*power = 99
	if *r.Records("AP-001")[0].NewPowerDB != 23 {
		t.Error("journal record aliases the request power pointer")
	}
}

func TestRecorderNilRequestAndDecision(t *testing.T) {
	r := NewRecorder(RecorderConfig{Logger: testLogger()})
	r.RecordDecision("AP-001", nil, guardrail.Inputs{Now: 5}, nil)

	recs := r.Records("")
	if len(recs) != 1 {
		t.Fatalf("expected 1 record, got %d", len(recs))
	}
	if recs[0].Allowed || recs[0].Applied || recs[0].Reason != "" {
		t.Errorf("expected zero verdict fields, got %+v", recs[0])
	}
}

func TestRecorderFiltersByAccessPoint(t *testing.T) {
	r := NewRecorder(RecorderConfig{Logger: testLogger()})
	record(r, "AP-001", 1, true, true, "")
	record(r, "AP-002", 2, false, false, guardrail.ReasonPeakHourBlocked)
	record(r, "AP-001", 3, false, false, guardrail.ReasonBudgetNotElapsed)

	if got := len(r.Records("AP-001")); got != 2 {
		t.Errorf("expected 2 records for AP-001, got %d", got)
	}
	if got := len(r.Records("AP-002")); got != 1 {
		t.Errorf("expected 1 record for AP-002, got %d", got)
	}
	if got := len(r.Records("")); got != 3 {
		t.Errorf("expected 3 records total, got %d", got)
	}
	if got := len(r.Records("AP-404")); got != 0 {
		t.Errorf("expected no records for unknown AP, got %d", got)
	}
}

func TestRecorderOrderedOldestFirst(t *testing.T) {
	r := NewRecorder(RecorderConfig{Logger: testLogger()})
	for i := 0; i < 5; i++ {
		record(r, "AP-001", i, true, true, "")
	}
	recs := r.Records("AP-001")
	for i, rec := range recs {
		if rec.At != i {
			t.Fatalf("record %d out of order: At=%d", i, rec.At)
		}
	}
}

func TestRecorderBoundEvictsOldest(t *testing.T) {
	r := NewRecorder(RecorderConfig{MaxRecords: 3, Logger: testLogger()})
	for i := 0; i < 5; i++ {
		record(r, fmt.Sprintf("AP-%03d", i), i, true, true, "")
	}

	if r.Len() != 3 {
		t.Fatalf("expected journal bounded at 3, got %d", r.Len())
	}
	recs := r.Records("")
	if recs[0].At != 2 || recs[2].At != 4 {
		t.Errorf("expected records 2..4 kept, got At=%d..%d", recs[0].At, recs[2].At)
	}
}

func TestPrunerRemovesExpiredRecords(t *testing.T) {
	r := NewRecorder(RecorderConfig{Logger: testLogger()})
	record(r, "AP-001", 1, true, true, "")
	record(r, "AP-001", 2, true, true, "")

	// Backdate the first record past the retention window.
	r.mu.Lock()
	r.records[0].RecordedAt = time.Now().Add(-48 * time.Hour)
	r.mu.Unlock()

	p := NewPruner(r, PrunerConfig{RetentionPeriod: 24 * time.Hour})
	if pruned := p.Prune(); pruned != 1 {
		t.Errorf("expected 1 record pruned, got %d", pruned)
	}
	if r.Len() != 1 {
		t.Errorf("expected 1 record remaining, got %d", r.Len())
	}
	if r.Records("")[0].At != 2 {
		t.Error("pruner removed the wrong record")
	}
}

func TestPrunerNoopOnFreshJournal(t *testing.T) {
	r := NewRecorder(RecorderConfig{Logger: testLogger()})
	record(r, "AP-001", 1, true, true, "")

	p := NewPruner(r, PrunerConfig{})
	if pruned := p.Prune(); pruned != 0 {
		t.Errorf("expected nothing pruned, got %d", pruned)
	}
}
