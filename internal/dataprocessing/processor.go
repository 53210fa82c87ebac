package dataprocessing

import (
	"context"
	"log/slog"

	"boxscorecli/pkg/contracts/domain"
)

// Options selects the policy of the configurable stages
type Options struct {
	Pairing  domain.PairingMode
	HomeFlag domain.HomeFlagMode
	Profile  domain.OutputProfile
}

// DefaultOptions returns strict pairing, strict home flags and the full profile
func DefaultOptions() Options {
	return Options{
		Pairing:  domain.PairingStrict,
		HomeFlag: domain.HomeFlagStrict,
		Profile:  domain.ProfileFull,
	}
}

// Result is the output of a pipeline run
type Result struct {
	Table *Table
	Stats domain.FeatureStats
}

// Processor turns a pair of period tables into the four-factor feature table.
// Each stage is exposed on its own so an orchestrator can run them one by one.
type Processor struct {
	opts   Options
	logger *slog.Logger
}

// NewProcessor creates a processor; empty options fall back to the defaults
func NewProcessor(opts Options, logger *slog.Logger) *Processor {
	def := DefaultOptions()
	if opts.Pairing == "" {
		opts.Pairing = def.Pairing
	}
	if opts.HomeFlag == "" {
		opts.HomeFlag = def.HomeFlag
	}
	if opts.Profile == "" {
		opts.Profile = def.Profile
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{opts: opts, logger: logger.With(slog.String("component", "feature_processor"))}
}

// Options returns the effective options
func (p *Processor) Options() Options {
	return p.opts
}

// Prune removes rank and metadata columns from both period tables
func (p *Processor) Prune(half, q3 *Table) (*Table, *Table, error) {
	h, err := DropRankColumns(half)
	if err != nil {
		return nil, nil, err
	}
	q, err := DropRankColumns(q3)
	if err != nil {
		return nil, nil, err
	}
	return h, q, nil
}

// Tag prefixes the statistics of both tables with their period
func (p *Processor) Tag(half, q3 *Table) (*Table, *Table, error) {
	h, err := TagPeriod(half, domain.PeriodHalf)
	if err != nil {
		return nil, nil, err
	}
	q, err := TagPeriod(q3, domain.PeriodThirdQuarter)
	if err != nil {
		return nil, nil, err
	}
	return h, q, nil
}

// Merge inner-joins the tagged tables on the join key
func (p *Processor) Merge(half, q3 *Table) (*Table, error) {
	return MergePeriods(half, q3, JoinKey)
}

// Combine sums the period statistics and recomputes the percentages
func (p *Processor) Combine(t *Table) (*Table, error) {
	return CombinePeriods(t)
}

// HomeFlag derives HOME from MATCHUP
func (p *Processor) HomeFlag(t *Table) (*Table, error) {
	return DeriveHomeFlag(t, p.opts.HomeFlag)
}

// DropIncomplete removes rows with undefined cells and orders the rest by game
func (p *Processor) DropIncomplete(t *Table) (*Table, int, error) {
	kept, dropped, err := DropIncompleteRows(t)
	if err != nil {
		return nil, 0, err
	}
	if dropped > 0 {
		p.logger.Info("incomplete_rows_dropped",
			slog.Int("dropped", dropped),
			slog.Int("kept", kept.Len()))
	}
	sorted, err := SortByGame(kept)
	if err != nil {
		return nil, 0, err
	}
	return sorted, dropped, nil
}

// Opponents attaches each team's opponent statistics
func (p *Processor) Opponents(t *Table) (*Table, []string, error) {
	out, dropped, err := JoinOpponents(t, p.opts.Pairing)
	if err != nil {
		return nil, nil, err
	}
	if len(dropped) > 0 {
		p.logger.Warn("unpaired_games_dropped",
			slog.Int("count", len(dropped)),
			slog.Any("game_ids", dropped))
	}
	return out, dropped, nil
}

// FourFactors adds the four-factor ratios
func (p *Processor) FourFactors(t *Table) (*Table, error) {
	return ComputeFourFactors(t)
}

// Finalize applies the output profile
func (p *Processor) Finalize(t *Table) (*Table, error) {
	return FinalFilter(t, p.opts.Profile)
}

// Run executes every stage in order. The context is checked between stages.
func (p *Processor) Run(ctx context.Context, half, q3 *Table) (*Result, error) {
	stats := domain.FeatureStats{HalfRows: half.Len(), ThirdQuarterRows: q3.Len()}

	h, q, err := p.Prune(half, q3)
	if err != nil {
		return nil, err
	}
	if h, q, err = p.Tag(h, q); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	t, err := p.Merge(h, q)
	if err != nil {
		return nil, err
	}
	stats.MergedRows = t.Len()

	if t, err = p.Combine(t); err != nil {
		return nil, err
	}
	if t, err = p.HomeFlag(t); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if t, stats.IncompleteRowsDropped, err = p.DropIncomplete(t); err != nil {
		return nil, err
	}
	if t, stats.UnpairedGamesDropped, err = p.Opponents(t); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if t, err = p.FourFactors(t); err != nil {
		return nil, err
	}
	if t, err = p.Finalize(t); err != nil {
		return nil, err
	}

	stats.OutputRows = t.Len()
	stats.OutputColumns = t.Width()

	p.logger.InfoContext(ctx, "feature_table_built",
		slog.Int("half_rows", stats.HalfRows),
		slog.Int("third_quarter_rows", stats.ThirdQuarterRows),
		slog.Int("merged_rows", stats.MergedRows),
		slog.Int("output_rows", stats.OutputRows),
		slog.Int("output_columns", stats.OutputColumns),
		slog.String("profile", string(p.opts.Profile)))

	return &Result{Table: t, Stats: stats}, nil
}

// Features converts a table to its wire form
func Features(t *Table) domain.FeatureTable {
	return domain.FeatureTable{Headers: t.Columns(), Rows: t.Records()}
}
