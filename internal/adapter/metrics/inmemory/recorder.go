package inmemory

import (
	"sync"

	"campaignmap/internal/domain/campaign"
)

type Snapshot struct {
	MoveTotal     uint64            `json:"move_total"`
	MoveSuccess   uint64            `json:"move_success"`
	MoveRejected  uint64            `json:"move_rejected"`
	MoveFailure   uint64            `json:"move_failure"`
	ByKind        map[string]uint64 `json:"by_kind"`
	ByRejectCause map[string]uint64 `json:"by_reject_cause"`
}

type Recorder struct {
	mu       sync.Mutex
	success  uint64
	rejected uint64
	failure  uint64
	byKind   map[string]uint64
	byCause  map[string]uint64
}

func NewRecorder() *Recorder {
	return &Recorder{
		byKind:  map[string]uint64{},
		byCause: map[string]uint64{},
	}
}

func (r *Recorder) RecordMove(kind campaign.MoveKind) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.success++
	r.byKind[string(kind)]++
}

func (r *Recorder) RecordRejection(kind campaign.MoveKind, reason string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rejected++
	r.byCause[string(kind)+":"+reason]++
}

func (r *Recorder) RecordFailure(_ campaign.MoveKind) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failure++
}

func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := Snapshot{
		MoveSuccess:   r.success,
		MoveRejected:  r.rejected,
		MoveFailure:   r.failure,
		MoveTotal:     r.success + r.rejected + r.failure,
		ByKind:        make(map[string]uint64, len(r.byKind)),
		ByRejectCause: make(map[string]uint64, len(r.byCause)),
	}
	for k, v := range r.byKind {
		out.ByKind[k] = v
	}
	for k, v := range r.byCause {
		out.ByRejectCause[k] = v
	}
	return out
}

func (r *Recorder) SnapshotAny() any {
	return r.Snapshot()
}
