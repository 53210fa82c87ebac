package operations

import (
	"sync"
	"time"

	"boxscorecli/pkg/contracts/domain"
)

// OperationStatusValue represents the overall operation status enum
type OperationStatusValue string

const (
	OperationStatusPending   OperationStatusValue = "pending"
	OperationStatusRunning   OperationStatusValue = "running"
	OperationStatusCompleted OperationStatusValue = "completed"
	OperationStatusFailed    OperationStatusValue = "failed"
	OperationStatusCancelled OperationStatusValue = "cancelled"
)

// OperationState represents the complete state of a operation execution
type OperationState struct {
	mu sync.RWMutex

	ID        string
	Status    OperationStatusValue
	StartTime time.Time
	EndTime   *time.Time

	// Step states keyed by ID, plus their execution order
	Steps     map[string]*StepState
	stepOrder []string

	// Tables handed from one step to the next
	Context map[string]interface{}

	// Per-run collaborators such as the configured processor
	Config map[string]interface{}

	Stats domain.FeatureStats
	Error error
}

// NewOperationState creates a new operation state
func NewOperationState(id string) *OperationState {
	return &OperationState{
		ID:        id,
		Status:    OperationStatusPending,
		StartTime: time.Now(),
		Steps:     make(map[string]*StepState),
		Context:   make(map[string]interface{}),
		Config:    make(map[string]interface{}),
	}
}

// Start marks the operation as running
func (p *OperationState) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Status = OperationStatusRunning
	p.StartTime = time.Now()
}

// Complete marks the operation as completed
func (p *OperationState) Complete() {
	p.finish(OperationStatusCompleted, nil)
}

// Fail marks the operation as failed
func (p *OperationState) Fail(err error) {
	p.finish(OperationStatusFailed, err)
}

// Cancel marks the operation as cancelled
func (p *OperationState) Cancel(err error) {
	p.finish(OperationStatusCancelled, err)
}

func (p *OperationState) finish(status OperationStatusValue, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	now := time.Now()
	p.EndTime = &now
	p.Status = status
	p.Error = err
}

// GetStatus returns the current operation status
func (p *OperationState) GetStatus() OperationStatusValue {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.Status
}

// GetStage returns the state of a specific Step
func (p *OperationState) GetStage(stepID string) *StepState {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.Steps[stepID]
}

// SetStage registers the state of a Step, keeping first-registration order
func (p *OperationState) SetStage(stepID string, state *StepState) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.Steps[stepID]; !ok {
		p.stepOrder = append(p.stepOrder, stepID)
	}
	p.Steps[stepID] = state
}

// OrderedSteps returns the step states in execution order
func (p *OperationState) OrderedSteps() []*StepState {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]*StepState, 0, len(p.stepOrder))
	for _, id := range p.stepOrder {
		out = append(out, p.Steps[id])
	}
	return out
}

// GetContext retrieves a value from the operation context
func (p *OperationState) GetContext(key string) (interface{}, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	val, ok := p.Context[key]
	return val, ok
}

// SetContext sets a value in the operation context
func (p *OperationState) SetContext(key string, value interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Context[key] = value
}

// GetConfig retrieves a configuration value
func (p *OperationState) GetConfig(key string) (interface{}, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	val, ok := p.Config[key]
	return val, ok
}

// SetConfig sets a configuration value
func (p *OperationState) SetConfig(key string, value interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Config[key] = value
}

// UpdateStats applies fn to the run statistics
func (p *OperationState) UpdateStats(fn func(*domain.FeatureStats)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fn(&p.Stats)
}

// GetStats returns a copy of the run statistics
func (p *OperationState) GetStats() domain.FeatureStats {
	p.mu.RLock()
	defer p.mu.RUnlock()
	stats := p.Stats
	stats.UnpairedGamesDropped = append([]string(nil), p.Stats.UnpairedGamesDropped...)
	return stats
}

// Duration returns the duration of the operation execution
func (p *OperationState) Duration() time.Duration {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.EndTime != nil {
		return p.EndTime.Sub(p.StartTime)
	}
	return time.Since(p.StartTime)
}

// HasFailures returns true if any Step has failed
func (p *OperationState) HasFailures() bool {
	for _, s := range p.OrderedSteps() {
		if s.GetStatus() == StepStatusFailed {
			return true
		}
	}
	return false
}

// Snapshot copies the externally visible fields for status queries. Tables in
// the step context are not copied.
func (p *OperationState) Snapshot() *OperationState {
	p.mu.RLock()
	defer p.mu.RUnlock()

	clone := &OperationState{
		ID:        p.ID,
		Status:    p.Status,
		StartTime: p.StartTime,
		Steps:     make(map[string]*StepState, len(p.Steps)),
		stepOrder: append([]string(nil), p.stepOrder...),
		Context:   make(map[string]interface{}),
		Config:    make(map[string]interface{}),
		Stats:     p.Stats,
		Error:     p.Error,
	}
	if p.EndTime != nil {
		end := *p.EndTime
		clone.EndTime = &end
	}

	for k, v := range p.Steps {
		v.mu.RLock()
		clone.Steps[k] = &StepState{
			ID:        v.ID,
			Name:      v.Name,
			Status:    v.Status,
			StartTime: v.StartTime,
			EndTime:   v.EndTime,
			Rows:      v.Rows,
			Message:   v.Message,
			Error:     v.Error,
		}
		v.mu.RUnlock()
	}
	return clone
}
