package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"site-linkcheck/internal/linkcheck"

	"github.com/spf13/cobra"
)

type options struct {
	configFile  string
	projectRoot string
	extensions  []string
	index       string
	exclude     []string
	workers     int
	format      string
	logLevel    string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := execute(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// execute runs the command and returns the process exit status:
// 0 when every internal link resolves, 1 when some are broken and 2 on
// usage, config or site root errors.
func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	code := linkcheck.ExitFatal
	cmd := newRootCmd(stdout, stderr, &code)
	cmd.SetArgs(args)

	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "ERROR: %v\n", err)
		return linkcheck.ExitFatal
	}
	return code
}

func newRootCmd(stdout, stderr io.Writer, code *int) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:           "linkcheck [site-root]",
		Short:         "Report broken internal links in a generated static site",
		Long:          `Walks every HTML document under the site root and checks that each internal anchor href points at a file that exists.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := buildConfig(cmd, opts, args)
			if err != nil {
				return err
			}

			logger, err := newLogger(stderr, opts.logLevel)
			if err != nil {
				return err
			}

			checker, err := linkcheck.New(cfg, logger)
			if err != nil {
				return err
			}

			summary, err := checker.Run(cmd.Context())
			if err != nil {
				return err
			}

			switch opts.format {
			case "yaml":
				err = linkcheck.WriteYAMLReport(stdout, summary)
			default:
				err = linkcheck.WriteReport(stdout, summary, checker.Config().ProjectRoot)
			}
			if err != nil {
				return err
			}

			*code = summary.ExitCode()
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.configFile, "config", "", "Path to a YAML config file")
	flags.StringVar(&opts.projectRoot, "project-root", "", "Directory report paths are shown relative to (default: parent of site root)")
	flags.StringSliceVar(&opts.extensions, "ext", []string{".html"}, "File extensions treated as HTML documents")
	flags.StringVar(&opts.index, "index", linkcheck.DefaultIndexFilename, "Index document served for directory links")
	flags.StringSliceVar(&opts.exclude, "exclude", nil, "Glob of documents to skip, relative to the site root (repeatable)")
	flags.IntVar(&opts.workers, "workers", linkcheck.DefaultWorkers, "Number of documents checked in parallel")
	flags.StringVar(&opts.format, "format", "text", "Report format: text or yaml")
	flags.StringVar(&opts.logLevel, "log-level", "info", "Log level: debug, info, warn or error")

	return cmd
}

// buildConfig layers the config file, the positional site root and any
// flags that were set explicitly.
func buildConfig(cmd *cobra.Command, opts *options, args []string) (linkcheck.Config, error) {
	cfg := linkcheck.DefaultConfig()
	if opts.configFile != "" {
		loaded, err := linkcheck.LoadConfig(opts.configFile)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	if len(args) > 0 {
		cfg.SiteRoot = args[0]
	}

	flags := cmd.Flags()
	if flags.Changed("project-root") {
		cfg.ProjectRoot = opts.projectRoot
	}
	if flags.Changed("ext") {
		cfg.HTMLExtensions = opts.extensions
	}
	if flags.Changed("index") {
		cfg.IndexFilename = opts.index
	}
	if flags.Changed("exclude") {
		cfg.Exclude = opts.exclude
	}
	if flags.Changed("workers") {
		cfg.Workers = opts.workers
	}

	if opts.format != "text" && opts.format != "yaml" {
		return cfg, fmt.Errorf("%w: unknown format %q", linkcheck.ErrInvalidConfig, opts.format)
	}

	return cfg, nil
}

func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("%w: bad log level %q", linkcheck.ErrInvalidConfig, level)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}
