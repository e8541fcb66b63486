package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"carbonfront/internal/columns"
	"carbonfront/internal/config"
	"carbonfront/internal/csvexport"
	"carbonfront/internal/domain"
	"carbonfront/internal/logger"
	"carbonfront/internal/processor"
	"carbonfront/internal/service"
	"carbonfront/internal/tui"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const usage = `emissionsctl submits documents to the emissions processing service.

Usage:
  emissionsctl single [flags] <file.pdf>
  emissionsctl bulk [flags] <archive.zip>
  emissionsctl version

Run "emissionsctl <command> --help" for the flags of a command.
`

var errAborted = errors.New("aborted")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return errors.New("missing command")
	}

	switch args[0] {
	case "single":
		return runSingle(ctx, args[1:], stdout, stderr)
	case "bulk":
		return runBulk(ctx, args[1:], stdout, stderr)
	case "version", "--version", "-v":
		fmt.Fprintf(stdout, "emissionsctl %s\ncommit: %s\nbuilt: %s\n", version, commit, date)
		return nil
	case "help", "--help", "-h":
		fmt.Fprint(stdout, usage)
		return nil
	}
	return fmt.Errorf("unknown command %q", args[0])
}

// commonOptions are the flags shared by both commands. Defaults come from the
// same CARBONFRONT_* environment the server reads.
type commonOptions struct {
	baseURL     string
	methodology string
	out         string
	timeout     int
	verbose     bool
}

func bindCommon(fs *pflag.FlagSet, cfg *config.Config, o *commonOptions) {
	fs.StringVar(&o.baseURL, "url", cfg.Processor.BaseURL, "processing service base URL")
	fs.StringVarP(&o.methodology, "methodology", "m", string(domain.DefaultMethodology), "spend or activity")
	fs.StringVarP(&o.out, "out", "o", "", "output file or directory (default: suggested name in the current directory)")
	fs.IntVar(&o.timeout, "timeout", cfg.Processor.TimeoutSecs, "request timeout in seconds, 0 disables")
	fs.BoolVar(&o.verbose, "verbose", false, "log requests to stderr")
}

func (o *commonOptions) client(cfg *config.Config, log *zap.Logger) *processor.Client {
	procCfg := cfg.Processor
	procCfg.BaseURL = o.baseURL
	procCfg.TimeoutSecs = o.timeout
	return processor.NewClient(&procCfg, log)
}

func (o *commonOptions) logger() (*zap.Logger, error) {
	if !o.verbose {
		return logger.NewNop(), nil
	}
	return logger.New("debug", "console")
}

func runSingle(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fs := pflag.NewFlagSet("single", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	var opts commonOptions
	bindCommon(fs, cfg, &opts)
	format := fs.StringP("format", "f", string(domain.ExportFormatCSV), "export format: csv or xlsx")
	interactive := fs.BoolP("interactive", "i", false, "curate columns in a terminal UI before export")
	only := fs.StringSlice("columns", nil, "export only these columns (original keys, comma separated)")
	renames := fs.StringToString("rename", nil, "rename columns, e.g. --rename tco2=Emissions")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("single: expected exactly one PDF path")
	}

	exportFormat, err := domain.ParseExportFormat(*format)
	if err != nil {
		return err
	}
	methodology, err := domain.ParseMethodology(opts.methodology)
	if err != nil {
		return err
	}

	log, err := opts.logger()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	input, closeFn, err := openInput(fs.Arg(0), opts.methodology)
	if err != nil {
		return err
	}
	defer closeFn()

	svc := service.NewSingleService(opts.client(cfg, log), &cfg.Upload, log)
	result, err := svc.Process(ctx, input)
	if err != nil {
		return err
	}

	if err := applySelection(result.Registry, *only, *renames); err != nil {
		return err
	}
	if *interactive {
		ok, err := tui.Run(result.Registry, fmt.Sprintf("%s (%d rows)", input.Filename, len(result.Rows)))
		if err != nil {
			return err
		}
		if !ok {
			return errAborted
		}
	}

	art, err := service.RenderExport(service.ExportInput{
		Rows:        result.Rows,
		Registry:    result.Registry,
		Methodology: methodology,
		Format:      exportFormat,
	}, time.Now())
	if err != nil {
		return err
	}

	path, err := writeOutput(opts.out, art.Filename, art.Body)
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "%d rows, %d of %d columns (%s response)\n",
		len(result.Rows), result.Registry.IncludedCount(), result.Registry.Len(), result.Shape)
	if s := result.Summary; s != nil {
		fmt.Fprintf(stdout, "%s: %d values, total %.4f, mean %.4f, max %.4f\n", s.Column, s.Count, s.Sum, s.Mean, s.Max)
	}
	fmt.Fprintf(stdout, "Saved %s (%s)\n", path, domain.FormatFileSize(int64(len(art.Body))))
	return nil
}

func runBulk(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fs := pflag.NewFlagSet("bulk", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	var opts commonOptions
	bindCommon(fs, cfg, &opts)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("bulk: expected exactly one ZIP path")
	}
	if _, err := domain.ParseMethodology(opts.methodology); err != nil {
		return err
	}

	log, err := opts.logger()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	input, closeFn, err := openInput(fs.Arg(0), opts.methodology)
	if err != nil {
		return err
	}
	defer closeFn()

	svc := service.NewBulkService(opts.client(cfg, log), &cfg.Upload, log)
	result, err := svc.Process(ctx, input)
	if err != nil {
		return err
	}

	name := csvexport.SanitizeDownloadName(result.Filename, csvexport.BulkFallbackFilename(result.ReceivedAt))
	path, err := writeOutput(opts.out, name, result.Body)
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "Processed: %d  Failed: %d  Total files: %d\n",
		result.Stats.Processed, result.Stats.Failed, result.Stats.Total)
	fmt.Fprintf(stdout, "Saved %s (%s)\n", path, domain.FormatFileSize(int64(len(result.Body))))
	return nil
}

// openInput opens a local file as an upload, declaring the media type sniffed
// from its content.
func openInput(path, methodology string) (service.UploadInput, func(), error) {
	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return service.UploadInput{}, nil, fmt.Errorf("detecting type of %s: %w", path, err)
	}
	f, err := os.Open(path)
	if err != nil {
		return service.UploadInput{}, nil, err
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return service.UploadInput{}, nil, err
	}
	return service.UploadInput{
		Filename:    filepath.Base(path),
		ContentType: mtype.String(),
		Size:        info.Size(),
		File:        f,
		Methodology: methodology,
	}, func() { _ = f.Close() }, nil
}

// applySelection narrows the registry to only (when given) and applies the
// renames. Keys are original column keys.
func applySelection(reg *columns.Registry, only []string, renames map[string]string) error {
	if len(only) > 0 {
		reg.SetAll(false)
		for _, key := range only {
			if err := reg.SetIncluded(strings.TrimSpace(key), true); err != nil {
				return err
			}
		}
	}
	for key, name := range renames {
		if err := reg.Rename(key, name); err != nil {
			return err
		}
	}
	return nil
}

// writeOutput writes body to out. An empty out or a directory receives the
// suggested name.
func writeOutput(out, suggested string, body []byte) (string, error) {
	path := out
	if path == "" {
		path = suggested
	} else if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, suggested)
	}
	if err := os.WriteFile(path, body, 0o644); err != nil { //nolint:gosec // user-chosen output file
		return "", err
	}
	return path, nil
}
