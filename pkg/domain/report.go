package domain

// Outcome is the tri-state result of a provisioner (plus Aborted for the gate).
type Outcome string

const (
	OutcomeSkipped   Outcome = "skipped"
	OutcomeFailed    Outcome = "failed"
	OutcomeCompleted Outcome = "completed"
	OutcomeAborted   Outcome = "aborted"
)

// ResourceKind names the kind of remote object a Result refers to.
type ResourceKind string

const (
	ResourcePage  ResourceKind = "page"
	ResourceSpace ResourceKind = "space"
	ResourceList  ResourceKind = "list"
)

// Status is the outcome of a single remote call.
type Status string

const (
	StatusCreated Status = "created"
	StatusReused  Status = "reused"
	StatusSkipped Status = "skipped"
	StatusFailed  Status = "failed"
)

// Result is the explicit value returned by each remote-call wrapper.
// A Result with a non-empty ID is Ok; a Result with Err set is a soft failure.
type Result struct {
	Kind     ResourceKind `json:"kind"`
	Name     string       `json:"name"`
	ID       string       `json:"id,omitempty"`
	ParentID string       `json:"parent_id,omitempty"`
	Status   Status       `json:"status"`
	Err      error        `json:"-"`
}

// OK reports whether the call produced an identifier.
func (r Result) OK() bool {
	return r.ID != "" && r.Err == nil
}

// StepReport summarizes one provisioner.
type StepReport struct {
	Provisioner string   `json:"provisioner"`
	Outcome     Outcome  `json:"outcome"`
	Reason      string   `json:"reason,omitempty"`
	Err         error    `json:"-"`
	Results     []Result `json:"results,omitempty"`
}

// Failures returns the results that carry an error.
func (s StepReport) Failures() []Result {
	var out []Result
	for _, r := range s.Results {
		if r.Status == StatusFailed {
			out = append(out, r)
		}
	}
	return out
}

// Count returns how many results have the given status.
func (s StepReport) Count(status Status) int {
	n := 0
	for _, r := range s.Results {
		if r.Status == status {
			n++
		}
	}
	return n
}

// Report is the summary of a whole provisioning run.
type Report struct {
	Gate      Outcome    `json:"gate"`
	Documents StepReport `json:"documents"`
	Tasks     StepReport `json:"tasks"`
}
