package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/spf13/cobra"

	"sheetmerge/config"
	"sheetmerge/core"

	// Database drivers
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

type mergeOptions struct {
	configFile  string
	configDir   string
	sourcesFile string
	templateDir string
	outputDir   string
	params      map[string]string
	s3Bucket    string
	s3Prefix    string
	uploadDir   bool
}

func mergeCmd() *cobra.Command {
	opts := &mergeOptions{}
	cmd := &cobra.Command{
		Use:   "merge",
		Short: "Write a report's values into the job's template sheet",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMerge(opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.configFile, "config", "./test/job.yaml", "Path to job configuration (yaml or toml)")
	flags.StringVar(&opts.configDir, "config-dir", "", "Run every job found under <dir>/jobs with sources from <dir>/sources")
	flags.StringVar(&opts.sourcesFile, "sources", "", "Path to report source bundle (optional)")
	flags.StringVar(&opts.templateDir, "templates", "./test/templates", "Template directory")
	flags.StringVar(&opts.outputDir, "output", "./test/output", "Directory for output files")
	flags.StringToStringVar(&opts.params, "param", nil, "Job parameter override (key=value), repeatable")
	flags.StringVar(&opts.s3Bucket, "s3-bucket", "", "S3 bucket for the merged workbook (overrides config)")
	flags.StringVar(&opts.s3Prefix, "s3-prefix", "", "S3 prefix (folder) for the merged workbook")
	flags.BoolVar(&opts.uploadDir, "s3-upload-dir", false, "Write locally, then upload the whole output directory to --s3-bucket")
	cmd.MarkFlagsMutuallyExclusive("config", "config-dir")
	return cmd
}

func runMerge(opts *mergeOptions) error {
	if opts.uploadDir && opts.s3Bucket == "" {
		return fmt.Errorf("--s3-upload-dir needs --s3-bucket")
	}

	// 1. Load jobs and sources
	jobs, sources, err := loadJobs(opts)
	if err != nil {
		return err
	}
	if opts.sourcesFile != "" {
		slog.Info("Loading report source bundle", "file", opts.sourcesFile)
		extra, err := config.LoadReportSources(opts.sourcesFile)
		if err != nil {
			return err
		}
		for name, src := range extra {
			sources[name] = src
		}
	}
	registry := config.NewMemoryConfigRegistry(sources)

	// 2. Run each job
	for _, job := range jobs {
		if err := runJob(job, registry, opts); err != nil {
			return fmt.Errorf("job %s: %w", job.Name, err)
		}
	}

	// 3. Ship the output directory
	if opts.uploadDir {
		cfg, err := awsconfig.LoadDefaultConfig(context.TODO())
		if err != nil {
			return fmt.Errorf("unable to load AWS SDK config for S3: %w", err)
		}
		return uploadOutputDir(core.NewS3Uploader(cfg, opts.s3Bucket, opts.s3Prefix), opts.outputDir)
	}
	return nil
}

// loadJobs returns the jobs to run, ordered by id, and the sources they may use.
func loadJobs(opts *mergeOptions) ([]*config.MergeConfig, map[string]*config.ReportSourceConfig, error) {
	if opts.configDir == "" {
		slog.Info("Loading job configuration", "file", opts.configFile)
		job, sources, err := config.LoadConfigBundle(opts.configFile)
		if err != nil {
			return nil, nil, err
		}
		return []*config.MergeConfig{job}, sources, nil
	}

	slog.Info("Loading configuration directory", "dir", opts.configDir)
	byID, sources, err := config.LoadAllConfigs(opts.configDir)
	if err != nil {
		return nil, nil, err
	}
	if len(byID) == 0 {
		return nil, nil, fmt.Errorf("no jobs found in %s", filepath.Join(opts.configDir, "jobs"))
	}
	jobs := make([]*config.MergeConfig, 0, len(byID))
	for _, job := range byID {
		jobs = append(jobs, job)
	}
	sort.Slice(jobs, func(i, k int) bool { return jobs[i].Id < jobs[k].Id })
	return jobs, sources, nil
}

func runJob(job *config.MergeConfig, registry *config.MemoryConfigRegistry, opts *mergeOptions) error {
	validator := config.NewValidator(registry)
	if err := validator.ValidateMergeConfig(job); err != nil {
		return err
	}
	src, err := registry.GetReportSource(job.Report)
	if err != nil {
		return err
	}
	if err := validator.ValidateReportSource(src); err != nil {
		return err
	}

	fetcher, closeFetcher, err := newFetcher(src)
	if err != nil {
		return err
	}
	defer closeFetcher()

	ctx := core.NewJobContext(job, registry, fetcher, opts.params)
	j := core.NewJob(ctx, opts.templateDir, opts.outputDir)

	sink, err := newSink(job, j, opts)
	if err != nil {
		return err
	}

	slog.Info("Processing job", "name", job.Name, "id", job.Id, "report", job.Report)
	res, err := j.Run(sink)
	if err != nil {
		return err
	}

	slog.Info("Successfully merged", "name", job.Name, "run", res.RunID, "writes", len(res.Writes), "location", res.Location)

	// the audit file lands next to the workbook
	if s3Sink, ok := sink.(*core.S3Sink); ok && job.Output.Audit != "" {
		audit := ctx.Expand(job.Output.Audit)
		if err := s3Sink.Uploader.UploadFile(filepath.Join(opts.outputDir, audit), s3Sink.Uploader.Key(audit)); err != nil {
			return err
		}
	}
	return nil
}

func uploadOutputDir(u *core.S3Uploader, dir string) error {
	slog.Info("Uploading output directory", "dir", dir, "bucket", u.Bucket, "prefix", u.Prefix)
	if err := u.UploadDirectory(dir); err != nil {
		return fmt.Errorf("uploading %s: %w", dir, err)
	}
	return nil
}

// newFetcher returns the fetcher for src and a cleanup func.
func newFetcher(src *config.ReportSourceConfig) (core.DataFetcher, func(), error) {
	noop := func() {}
	switch src.Kind {
	case config.SourceKindXML:
		return core.NewXMLReportFetcher(), noop, nil
	case config.SourceKindCSV:
		return core.NewCsvDataFetcher(), noop, nil
	case config.SourceKindParquet:
		return core.NewParquetDataFetcher(), noop, nil
	case config.SourceKindDynamoDB:
		slog.Info("Initializing DynamoDB Data Fetcher")
		// Load AWS Config (handles env vars, IAM roles, etc.)
		cfg, err := awsconfig.LoadDefaultConfig(context.TODO())
		if err != nil {
			return nil, nil, fmt.Errorf("unable to load AWS SDK config: %w", err)
		}
		return core.NewDynamoDBDataFetcher(cfg), noop, nil
	case config.SourceKindSQL:
		slog.Info("Initializing SQL Data Fetcher", "driver", src.Driver)
		db, err := sql.Open(src.Driver, src.DSN)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open db connection: %w", err)
		}
		if err := db.Ping(); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("failed to ping db: %w", err)
		}
		return core.NewSQLDataFetcher(db, src.Driver), func() { _ = db.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unsupported report source kind: %s", src.Kind)
	}
}

// newSink returns an S3 sink when a bucket is configured, nil (local file) otherwise.
// Directory uploads keep every workbook local until the end of the run.
func newSink(job *config.MergeConfig, j *core.Job, opts *mergeOptions) (core.Sink, error) {
	if opts.uploadDir {
		return nil, nil
	}
	bucket := job.Output.S3Bucket
	if opts.s3Bucket != "" {
		bucket = opts.s3Bucket
	}
	if bucket == "" {
		return nil, nil
	}
	prefix := job.Output.S3Prefix
	if opts.s3Prefix != "" {
		prefix = opts.s3Prefix
	}

	cfg, err := awsconfig.LoadDefaultConfig(context.TODO())
	if err != nil {
		return nil, fmt.Errorf("unable to load AWS SDK config for S3: %w", err)
	}
	slog.Info("Merged workbook goes to S3", "bucket", bucket, "prefix", prefix)
	return &core.S3Sink{
		Uploader: core.NewS3Uploader(cfg, bucket, prefix),
		Name:     j.OutputName(),
	}, nil
}
