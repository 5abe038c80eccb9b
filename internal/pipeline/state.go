package pipeline

import "time"

// Status is the run's lifecycle state.
type Status string

// Run statuses. Transitions: pending → running → {completed | failed |
// cancelled}. Terminal statuses never change.
const (
	StatusPending   Status = "pending"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
	StatusCancelled Status = "cancelled"
)

// Terminal reports whether the status admits no further transitions.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed || s == StatusCancelled
}

// Stage names one of the four sequential pipeline phases.
type Stage string

// Pipeline stages, in execution order.
const (
	StageAnalysis    Stage = "analysis"
	StagePlanning    Stage = "planning"
	StageAssets      Stage = "assets"
	StageComposition Stage = "composition"
)

// StageStatus is the state of one stage within a run.
type StageStatus string

// Stage statuses.
const (
	StagePending   StageStatus = "pending"
	StageRunning   StageStatus = "running"
	StageCompleted StageStatus = "completed"
	StageSkipped   StageStatus = "skipped"
	StageFailed    StageStatus = "failed"
)

// Progress weights per stage; they sum to 100.
var stageWeights = map[Stage]int{
	StageAnalysis:    20,
	StagePlanning:    30,
	StageAssets:      30,
	StageComposition: 20,
}

// stageOrder is the execution sequence.
var stageOrder = []Stage{StageAnalysis, StagePlanning, StageAssets, StageComposition}

// StageRecord is one stage's sub-record within a run.
type StageRecord struct {
	Stage       Stage       `json:"stage"`
	Status      StageStatus `json:"status"`
	Cached      bool        `json:"cached"`
	StartedAt   time.Time   `json:"started_at,omitzero"`
	CompletedAt time.Time   `json:"completed_at,omitzero"`
	Error       string      `json:"error,omitempty"`
}

// Duration returns the stage's elapsed execution time.
func (r StageRecord) Duration() time.Duration {
	if r.StartedAt.IsZero() || r.CompletedAt.IsZero() {
		return 0
	}
	return r.CompletedAt.Sub(r.StartedAt)
}

// Snapshot is a read-only view of the run state. The orchestrator owns
// the mutable state; observers and callers only ever see snapshots.
type Snapshot struct {
	Status    Status        `json:"status"`
	Stage     Stage         `json:"stage"`
	Progress  int           `json:"progress"`
	Stages    []StageRecord `json:"stages"`
	Errors    []StageError  `json:"errors,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// CompletedStages lists the stages that finished (or were skipped).
func (s Snapshot) CompletedStages() []Stage {
	var out []Stage
	for _, r := range s.Stages {
		if r.Status == StageCompleted || r.Status == StageSkipped {
			out = append(out, r.Stage)
		}
	}
	return out
}

// state is the orchestrator-owned mutable run record. All access goes
// through the pipeline's mutex.
type state struct {
	status    Status
	stage     Stage
	progress  int
	records   map[Stage]*StageRecord
	errors    []StageError
	createdAt time.Time
	updatedAt time.Time
}

func newState() *state {
	records := make(map[Stage]*StageRecord, len(stageOrder))
	for _, s := range stageOrder {
		records[s] = &StageRecord{Stage: s, Status: StagePending}
	}
	now := time.Now()
	return &state{
		status:    StatusPending,
		records:   records,
		createdAt: now,
		updatedAt: now,
	}
}

// snapshot copies the state into an immutable view.
func (st *state) snapshot() Snapshot {
	stages := make([]StageRecord, 0, len(stageOrder))
	for _, s := range stageOrder {
		stages = append(stages, *st.records[s])
	}

	errs := make([]StageError, len(st.errors))
	copy(errs, st.errors)

	return Snapshot{
		Status:    st.status,
		Stage:     st.stage,
		Progress:  st.progress,
		Stages:    stages,
		Errors:    errs,
		CreatedAt: st.createdAt,
		UpdatedAt: st.updatedAt,
	}
}

// recomputeProgress derives progress from completed and skipped stages.
func (st *state) recomputeProgress() {
	total := 0
	for _, s := range stageOrder {
		r := st.records[s]
		if r.Status == StageCompleted || r.Status == StageSkipped {
			total += stageWeights[s]
		}
	}
	st.progress = total
}
