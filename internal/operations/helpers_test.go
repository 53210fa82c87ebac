package operations

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"boxscorecli/internal/dataprocessing"
	"boxscorecli/internal/shared/testutil"
)

func sampleTables(t *testing.T) (*dataprocessing.Table, *dataprocessing.Table) {
	t.Helper()

	half, q3 := testutil.SampleGame()
	h, q, err := dataprocessing.LoadTables(half, q3)
	require.NoError(t, err)
	return h, q
}

func twoGameTables(t *testing.T) (*dataprocessing.Table, *dataprocessing.Table) {
	t.Helper()

	half, q3 := testutil.TwoGames()
	h, q, err := dataprocessing.LoadTables(half, q3)
	require.NoError(t, err)
	return h, q
}

// stubStep is a Step whose behavior is supplied by the test
type stubStep struct {
	BaseStep
	execute  func(ctx context.Context, state *OperationState) error
	validate func(state *OperationState) error
	calls    int
}

func newStubStep(id string, execute func(ctx context.Context, state *OperationState) error) *stubStep {
	return &stubStep{BaseStep: NewBaseStep(id, id), execute: execute}
}

func (s *stubStep) Execute(ctx context.Context, state *OperationState) error {
	s.calls++
	if s.execute == nil {
		return nil
	}
	return s.execute(ctx, state)
}

func (s *stubStep) Validate(state *OperationState) error {
	if s.validate == nil {
		return nil
	}
	return s.validate(state)
}

var errBoom = errors.New("boom")

func stubRegistry(t *testing.T, steps ...Step) *Registry {
	t.Helper()

	r := NewRegistry()
	for _, s := range steps {
		require.NoError(t, r.Register(s))
	}
	return r
}
