// Package operations runs the feature pipeline as a sequence of named steps.
//
// Each pipeline stage is a Step that reads its input tables from the
// OperationState context and writes its output back under the same keys:
//
//	prune -> tag_periods -> merge -> combine -> home_flag ->
//	drop_incomplete -> opponents -> four_factors -> final_filter
//
// Manager executes the registered steps in registration order. A failing step
// stops the run, the steps after it are marked skipped, and the returned
// OperationError names the step while wrapping the pipeline error:
//
//	registry, _ := operations.NewFeatureRegistry(logger)
//	manager := operations.NewManager(registry, nil, tracer, logger)
//	resp, err := manager.Execute(ctx, operations.OperationRequest{
//		Half:         half,
//		ThirdQuarter: q3,
//		Options:      dataprocessing.DefaultOptions(),
//	})
//
// OperationTracer opens one span per run and per step and records the run's
// row accounting in the business metrics.
package operations
