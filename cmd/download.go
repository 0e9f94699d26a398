package cmd

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/genomedepot/kbfetch/internal/config"
	"github.com/genomedepot/kbfetch/internal/genome"
	"github.com/genomedepot/kbfetch/internal/id/uuid"
	"github.com/genomedepot/kbfetch/internal/kbase"
	"github.com/genomedepot/kbfetch/internal/logging"
)

// downloadOptions holds the flag values of the download subcommand.
type downloadOptions struct {
	narrative string
	token     string
	format    string
}

// newDownloadCmd creates and configures the 'download' subcommand.
func newDownloadCmd() *cobra.Command {
	opts := &downloadOptions{}
	cmd := &cobra.Command{
		Use:   "download",
		Short: "Downloads all genomes of a narrative in the chosen format",
		Long: `Lists the genome objects of the narrative's backing workspace and
downloads each one. Export to GenBank also generates nucleotide fasta files
in the "contigs" subdirectory.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDownload(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.narrative, "narrative", "n", "", "narrative identifier (for example, 49058 from https://narrative.kbase.us/narrative/49058)")
	cmd.Flags().StringVarP(&opts.token, "token", "t", "", "authorization token from the kbase_session cookie")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "file format, one of: gbk, gff, faa")

	return cmd
}

func runDownload(cmd *cobra.Command, opts *downloadOptions) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(cfg.Logging.Development)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck // best-effort flush

	if runID, err := uuid.NewUUIDGenerator().NewID(); err == nil {
		logger = logger.With(zap.String("run_id", runID))
	}

	narrativeID, format, token, err := resolveArgs(opts, cfg.Token)
	if err != nil {
		return err
	}

	runner, err := buildRunner(cfg, token, logger)
	if err != nil {
		return err
	}

	result, err := runner.Run(cmd.Context(), narrativeID, format)
	if err != nil {
		return err
	}

	logger.Info("Run finished",
		zap.Int("processed", len(result.Processed)),
		zap.Int("failed", result.Failed),
		zap.String("manifest", result.ManifestPath),
	)
	return nil
}

// resolveArgs validates the CLI input before any network call is made.
func resolveArgs(opts *downloadOptions, fallbackToken string) (int64, genome.Format, string, error) {
	format, err := genome.ParseFormat(opts.format)
	if err != nil {
		return 0, "", "", err
	}

	if opts.narrative == "" {
		return 0, "", "", fmt.Errorf("narrative identifier is required: %w", genome.ErrInvalidArgument)
	}
	narrativeID, err := strconv.ParseInt(opts.narrative, 10, 64)
	if err != nil {
		return 0, "", "", fmt.Errorf("narrative identifier %q is not numeric: %w", opts.narrative, genome.ErrInvalidArgument)
	}

	token := opts.token
	if token == "" {
		token = fallbackToken
	}
	if token == "" {
		return 0, "", "", fmt.Errorf("authorization token is required: %w", genome.ErrInvalidArgument)
	}

	return narrativeID, format, token, nil
}

func buildRunner(cfg config.Config, token string, logger *zap.Logger) (*genome.Runner, error) {
	httpClient := &http.Client{Timeout: cfg.Timeout()}

	auth := kbase.NewAuthClient(httpClient, cfg.Services.AuthURL, token, logger)
	workspace := kbase.NewClient(httpClient, cfg.Services.WorkspaceURL, token, logger)
	export := kbase.NewExportClient(httpClient, cfg.Services.ExportURL, token, logger)

	sink, err := genome.NewSink(cfg.Output.Dir, logger)
	if err != nil {
		return nil, fmt.Errorf("init sink: %w", err)
	}

	return genome.NewRunner(
		auth,
		genome.NewLister(workspace, logger),
		genome.NewExporter(export, sink, logger),
		sink,
		cfg.Output.Manifest,
		logger,
	), nil
}
