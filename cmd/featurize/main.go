package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"boxscorecli/internal/config"
	apperrors "boxscorecli/internal/errors"
	"boxscorecli/internal/exporter"
	"boxscorecli/internal/files"
	"boxscorecli/internal/infrastructure"
	"boxscorecli/internal/services"
	"boxscorecli/internal/validation"
	"boxscorecli/pkg/contracts"
	"boxscorecli/pkg/contracts/domain"
)

// cliOptions holds the parsed command line
type cliOptions struct {
	halfPath    string
	q3Path      string
	dir         string
	out         string
	format      string
	profile     string
	lenient     bool
	lenientHome bool
	bom         bool
	logLevel    string
	version     bool
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	cancel()
	os.Exit(code)
}

func parseFlags(args []string, cfg *config.Config, stderr io.Writer) (*cliOptions, error) {
	opts := &cliOptions{}

	fs := flag.NewFlagSet("featurize", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.halfPath, "half", "", "first-half box score document (.json or .xlsx)")
	fs.StringVar(&opts.q3Path, "q3", "", "third-quarter box score document (.json or .xlsx)")
	fs.StringVar(&opts.dir, "dir", "", "directory to discover the HALF and 3Q documents in (defaults to the configured input directory)")
	fs.StringVar(&opts.out, "out", "", "output file or directory; csv and json go to stdout when empty")
	fs.StringVar(&opts.format, "format", cfg.Pipeline.OutputFormat, "output format: csv, xlsx or json")
	fs.StringVar(&opts.profile, "profile", string(cfg.Pipeline.Profile), "output profile: full or model")
	fs.BoolVar(&opts.lenient, "lenient", cfg.Pipeline.Pairing == domain.PairingLenient, "drop games without exactly two team rows instead of failing")
	fs.BoolVar(&opts.lenientHome, "lenient-home", cfg.Pipeline.HomeFlag == domain.HomeFlagLenient, "treat unrecognized matchups as away instead of failing")
	fs.BoolVar(&opts.bom, "bom", cfg.Pipeline.CSVBOM, "prefix CSV output with a UTF-8 byte order mark")
	fs.StringVar(&opts.logLevel, "log-level", cfg.Logging.Level, "log level: debug, info, warn or error")
	fs.BoolVar(&opts.version, "version", false, "print version and exit")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if (opts.halfPath == "") != (opts.q3Path == "") {
		return nil, fmt.Errorf("-half and -q3 must be given together")
	}
	if !config.IsOutputFormat(opts.format) {
		return nil, fmt.Errorf("unsupported output format %q", opts.format)
	}
	switch domain.OutputProfile(opts.profile) {
	case domain.ProfileFull, domain.ProfileModel:
	default:
		return nil, fmt.Errorf("unsupported output profile %q", opts.profile)
	}
	return opts, nil
}

// run executes one pipeline invocation and returns the process exit code
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "featurize: using default configuration: %v\n", err)
		cfg = config.Default()
	}

	opts, err := parseFlags(args, cfg, stderr)
	if err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		fmt.Fprintf(stderr, "featurize: %v\n", err)
		return 2
	}

	if opts.version {
		fmt.Fprintln(stdout, contracts.GetFullVersionString())
		return 0
	}

	logger := infrastructure.NewLogger(stderr, opts.logLevel).With(slog.String("service", config.AppName))

	wd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(stderr, "featurize: %v\n", err)
		return 1
	}
	paths := config.NewPaths(wd, cfg.Pipeline)
	fileManager := files.NewManager(paths, logger)

	halfPath, q3Path, err := resolveInputs(opts, paths, fileManager)
	if err != nil {
		fmt.Fprintf(stderr, "featurize: %v\n", err)
		return 1
	}

	fileValidator := validation.NewFileValidator(logger)
	if err := fileValidator.ValidatePair(halfPath, q3Path); err != nil {
		fmt.Fprintf(stderr, "featurize: %v\n", err)
		return 1
	}

	pipelineOpts := services.OptionsFromConfig(cfg.Pipeline)
	pipelineOpts.Profile = domain.OutputProfile(opts.profile)
	pipelineOpts.Pairing = domain.PairingStrict
	if opts.lenient {
		pipelineOpts.Pairing = domain.PairingLenient
	}
	pipelineOpts.HomeFlag = domain.HomeFlagStrict
	if opts.lenientHome {
		pipelineOpts.HomeFlag = domain.HomeFlagLenient
	}

	svc := services.NewFeatureService(nil, pipelineOpts, logger)
	result, err := svc.BuildFromFiles(ctx, halfPath, q3Path, pipelineOpts)
	if err != nil {
		fmt.Fprintf(stderr, "featurize: %s\n", describeFailure(result, err))
		return 1
	}

	for _, game := range result.Stats.UnpairedGamesDropped {
		fmt.Fprintf(stderr, "featurize: dropped unpaired game %s\n", game)
	}

	writeOpts := exporter.WriteOptions{BOMPrefix: opts.bom}
	exp := exporter.New(logger)

	if opts.out == "" && opts.format != config.FormatXLSX {
		if err := exp.Write(stdout, opts.format, result.Table, writeOpts); err != nil {
			fmt.Fprintf(stderr, "featurize: %v\n", err)
			return 1
		}
		return 0
	}

	outPath := fileManager.OutputPath(opts.out, exporter.FileName(opts.format))
	if err := fileValidator.ValidateOutputDirectory(filepath.Dir(outPath)); err != nil {
		fmt.Fprintf(stderr, "featurize: %v\n", err)
		return 1
	}
	if err := exp.WriteFile(outPath, opts.format, result.Table, writeOpts); err != nil {
		fmt.Fprintf(stderr, "featurize: %v\n", err)
		return 1
	}

	logger.InfoContext(ctx, "features_written",
		slog.String("path", outPath),
		slog.String("format", opts.format),
		slog.Int("rows", result.Stats.OutputRows),
		slog.Int("columns", result.Stats.OutputColumns))
	return 0
}

// resolveInputs returns the explicit document paths or discovers them
func resolveInputs(opts *cliOptions, paths *config.Paths, fileManager *files.Manager) (string, string, error) {
	if opts.halfPath != "" {
		return fileManager.InputPath(opts.halfPath), fileManager.InputPath(opts.q3Path), nil
	}

	dir := opts.dir
	if dir == "" {
		dir = paths.InputDir
	}

	pair, err := files.NewDiscovery(paths.BaseDir).FindPeriodPair(dir)
	if err != nil {
		return "", "", err
	}
	return pair.Half.Path, pair.ThirdQuarter.Path, nil
}

// describeFailure names the failing stage, and the column or game when known
func describeFailure(result *services.FeatureResult, err error) string {
	stage := result.FailedStep()
	appErr, ok := apperrors.AsAppError(err)
	if ok && appErr.Stage() != "" {
		stage = appErr.Stage()
	}
	if stage == "" {
		return err.Error()
	}

	msg := fmt.Sprintf("stage %s failed: %v", stage, err)
	if ok {
		if col, found := appErr.Context[apperrors.ContextColumn]; found {
			msg += fmt.Sprintf(" (column %v)", col)
		}
		if game, found := appErr.Context[apperrors.ContextGameID]; found {
			msg += fmt.Sprintf(" (game %v)", game)
		}
	}
	return msg
}
