package operations

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"boxscorecli/internal/dataprocessing"
	"boxscorecli/pkg/contracts/domain"
)

// Manager orchestrates operation execution
type Manager struct {
	registry *Registry
	config   *Config
	tracer   *OperationTracer
	logger   *slog.Logger

	// Active operations
	mu         sync.RWMutex
	operations map[string]*activeOperation
}

type activeOperation struct {
	state  *OperationState
	cancel context.CancelFunc
}

// NewManager creates a new operation manager. A nil registry runs every
// pipeline step; a nil tracer disables instrumentation.
func NewManager(registry *Registry, config *Config, tracer *OperationTracer, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	if registry == nil {
		registry = NewRegistry()
		for _, step := range FeatureSteps(logger) {
			_ = registry.Register(step)
		}
	}
	if config == nil {
		config = NewConfig()
	}
	if tracer == nil {
		tracer = NewOperationTracerWith(nil, nil)
	}

	return &Manager{
		registry:   registry,
		config:     config,
		tracer:     tracer,
		logger:     logger.With(slog.String("component", "operation_manager")),
		operations: make(map[string]*activeOperation),
	}
}

// GetRegistry returns the registry for accessing registered steps
func (m *Manager) GetRegistry() *Registry {
	return m.registry
}

// GetConfig returns the current configuration
func (m *Manager) GetConfig() *Config {
	return m.config
}

// Execute runs every registered step on the request's tables. The returned
// response is never nil; on failure it carries the step states up to the
// failing step and the error names that step.
func (m *Manager) Execute(ctx context.Context, req OperationRequest) (*OperationResponse, error) {
	if req.ID == "" {
		req.ID = uuid.New().String()
	}

	state := NewOperationState(req.ID)
	steps := m.registry.List()
	for _, step := range steps {
		state.SetStage(step.ID(), NewStepState(step.ID(), step.Name()))
	}

	if req.Half == nil || req.ThirdQuarter == nil {
		err := NewValidationError("", "half and third quarter tables are required")
		m.logOperationError(ctx, req.ID, err)
		state.Fail(err)
		return m.createResponse(state), err
	}

	state.SetContext(ContextKeyHalf, req.Half)
	state.SetContext(ContextKeyThirdQuarter, req.ThirdQuarter)
	state.SetConfig(ConfigKeyProcessor, dataprocessing.NewProcessor(req.Options, m.logger))
	state.UpdateStats(func(s *domain.FeatureStats) {
		s.HalfRows = req.Half.Len()
		s.ThirdQuarterRows = req.ThirdQuarter.Len()
	})

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m.storeOperation(state, cancel)
	defer m.removeOperation(req.ID)

	ctx, span := m.tracer.TraceOperationExecution(ctx, req.ID, req.Options)
	defer span.End()

	m.logOperationStart(ctx, req.ID, req.Options, len(steps))
	state.Start()

	err := m.executeSequential(ctx, state, steps)

	switch {
	case err == nil:
		state.Complete()
	case GetErrorType(err) == ErrorTypeCancellation:
		state.Cancel(err)
	default:
		state.Fail(err)
	}

	resp := m.createResponse(state)
	m.tracer.RecordOperationCompletion(ctx, span, resp.Status, resp.Duration, resp.Stats, err)

	if err != nil {
		m.logOperationError(ctx, req.ID, err)
		return resp, err
	}

	if v, ok := state.GetContext(ContextKeyTable); ok {
		resp.Table, _ = v.(*dataprocessing.Table)
	}
	m.logOperationComplete(ctx, req.ID, resp.Duration, resp.Status, resp.Stats)
	return resp, nil
}

// executeSequential executes steps one by one. After a failure or a
// cancellation the remaining steps are marked skipped.
func (m *Manager) executeSequential(ctx context.Context, state *OperationState, steps []Step) error {
	for i, step := range steps {
		if err := ctx.Err(); err != nil {
			m.logger.WarnContext(ctx, "operation_cancelled",
				slog.String("operation_id", state.ID),
				slog.String("step", step.ID()))
			m.skipRemaining(state, steps[i:], "operation cancelled")
			return NewCancellationError(step.ID(), err)
		}

		if err := m.executeStage(ctx, state, step); err != nil {
			m.logStageError(ctx, state.ID, step.ID(), err)
			m.skipRemaining(state, steps[i+1:], fmt.Sprintf("step %s failed", step.ID()))
			return err
		}
	}
	return nil
}

// executeStage runs a Step once. A failed step is not attempted again.
func (m *Manager) executeStage(ctx context.Context, state *OperationState, step Step) error {
	stepState := state.GetStage(step.ID())
	if stepState == nil {
		return NewFatalError(fmt.Sprintf("no state for step %s", step.ID()), nil)
	}

	if err := step.Validate(state); err != nil {
		stepState.Fail(err)
		return NewValidationError(step.ID(), err.Error())
	}

	timeout := m.config.GetStageTimeout(step.ID())

	m.logStageStart(ctx, state.ID, step.ID())
	stepState.Start()

	stepCtx, span := m.tracer.TraceStageExecution(ctx, state.ID, step.ID())
	stepCtx, cancel := context.WithTimeout(stepCtx, timeout)
	startTime := time.Now()
	err := step.Execute(stepCtx, state)
	if err == nil {
		err = stepCtx.Err()
	}
	duration := time.Since(startTime)
	cancel()

	m.tracer.RecordStageCompletion(stepCtx, span, step.ID(), duration, stepState.GetRows(), err)
	span.End()

	if err == nil {
		stepState.Complete()
		m.logStageComplete(ctx, state.ID, step.ID(), duration, stepState.GetRows())
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
		err = NewTimeoutError(step.ID(), timeout.String())
	}

	stepState.Fail(err)
	return WrapError(err, step.ID(), "step execution failed")
}

func (m *Manager) skipRemaining(state *OperationState, steps []Step, reason string) {
	for _, step := range steps {
		if st := state.GetStage(step.ID()); st != nil && st.GetStatus() == StepStatusPending {
			st.Skip(reason)
		}
	}
}

// createResponse creates a operation response from state
func (m *Manager) createResponse(state *OperationState) *OperationResponse {
	resp := &OperationResponse{
		ID:       state.ID,
		Status:   state.GetStatus(),
		Duration: state.Duration(),
		Steps:    state.OrderedSteps(),
		Stats:    state.GetStats(),
	}

	if state.Error != nil {
		resp.Error = state.Error.Error()
	}

	return resp
}

// GetOperation returns a snapshot of a running operation
func (m *Manager) GetOperation(id string) (*OperationState, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	op, exists := m.operations[id]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrOperationNotFound, id)
	}

	return op.state.Snapshot(), nil
}

// ListOperations returns snapshots of all running operations
func (m *Manager) ListOperations() []*OperationState {
	m.mu.RLock()
	defer m.mu.RUnlock()

	operations := make([]*OperationState, 0, len(m.operations))
	for _, op := range m.operations {
		operations = append(operations, op.state.Snapshot())
	}

	return operations
}

// CancelOperation cancels a running operation. The run stops before its next step.
func (m *Manager) CancelOperation(id string) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	op, exists := m.operations[id]
	if !exists {
		return fmt.Errorf("%w: %s", ErrOperationNotFound, id)
	}

	op.cancel()
	return nil
}

func (m *Manager) storeOperation(state *OperationState, cancel context.CancelFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.operations[state.ID] = &activeOperation{state: state, cancel: cancel}
}

func (m *Manager) removeOperation(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.operations, id)
}
