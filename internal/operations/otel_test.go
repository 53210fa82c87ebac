package operations

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"boxscorecli/internal/dataprocessing"
	"boxscorecli/internal/infrastructure"
	"boxscorecli/internal/shared/testutil"
)

func recordingTracer(t *testing.T) (*OperationTracer, *tracetest.SpanRecorder) {
	t.Helper()

	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(sdkmetric.NewManualReader()))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })
	metrics, err := infrastructure.CreateBusinessMetrics(mp.Meter("test"))
	require.NoError(t, err)

	return NewOperationTracerWith(tp.Tracer(TracerName), metrics), recorder
}

func TestOperationTracerSpans(t *testing.T) {
	tracer, recorder := recordingTracer(t)
	half, q3 := sampleTables(t)

	_, err := NewManager(nil, nil, tracer, nil).Execute(context.Background(), OperationRequest{
		Half: half, ThirdQuarter: q3, Options: dataprocessing.DefaultOptions(),
	})
	require.NoError(t, err)

	spans := recorder.Ended()
	require.Len(t, spans, 10)

	names := make(map[string]sdktrace.ReadOnlySpan, len(spans))
	for _, s := range spans {
		names[s.Name()] = s
	}
	root, ok := names["operation.execute.feature_build"]
	require.True(t, ok)
	assert.Equal(t, codes.Ok, root.Status().Code)

	merge, ok := names["operation.step.merge"]
	require.True(t, ok)
	assert.Equal(t, root.SpanContext().SpanID(), merge.Parent().SpanID())
}

func TestOperationTracerRecordsFailure(t *testing.T) {
	tracer, recorder := recordingTracer(t)

	halfDoc, q3Doc := testutil.TwoGames()
	halfDoc.ResultSets[0].RowSet = halfDoc.ResultSets[0].RowSet[:3]
	q3Doc.ResultSets[0].RowSet = q3Doc.ResultSets[0].RowSet[:3]
	half, q3, err := dataprocessing.LoadTables(halfDoc, q3Doc)
	require.NoError(t, err)

	_, err = NewManager(nil, nil, tracer, nil).Execute(context.Background(), OperationRequest{Half: half, ThirdQuarter: q3})
	require.Error(t, err)

	var opponents, root sdktrace.ReadOnlySpan
	for _, s := range recorder.Ended() {
		switch s.Name() {
		case "operation.step.opponents":
			opponents = s
		case "operation.execute.feature_build":
			root = s
		}
	}
	require.NotNil(t, opponents)
	require.NotNil(t, root)
	assert.Equal(t, codes.Error, opponents.Status().Code)
	assert.Equal(t, codes.Error, root.Status().Code)

	// steps after the failure never open a span
	for _, s := range recorder.Ended() {
		assert.NotEqual(t, "operation.step.four_factors", s.Name())
	}
}

func TestNewOperationTracerWithoutMeter(t *testing.T) {
	tracer, err := NewOperationTracer(&infrastructure.OTelProviders{})
	require.NoError(t, err)
	assert.Nil(t, tracer.Metrics())

	tracer, err = NewOperationTracer(nil)
	require.NoError(t, err)
	assert.NotNil(t, tracer)
}
