package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"

	flag "github.com/spf13/pflag"

	quickbook "github.com/alnah/go-quickbook"
	"github.com/alnah/go-quickbook/internal/assets"
	"github.com/alnah/go-quickbook/internal/config"
	"github.com/alnah/go-quickbook/internal/dateutil"
	"github.com/alnah/go-quickbook/internal/hints"
	"github.com/alnah/go-quickbook/internal/publish"
	"github.com/alnah/go-quickbook/internal/render"
)

// Sentinel errors for CLI operations.
var (
	ErrUsage          = errors.New("invalid usage")
	ErrUnknownCommand = errors.New("unknown command")
)

// bookCommands run against the books directory.
var bookCommands = []string{"process", "init", "convert", "split", "chunk", "upload", "status"}

func isBookCommand(name string) bool {
	return slices.Contains(bookCommands, name)
}

func isCommand(name string) bool {
	return isBookCommand(name) || name == "help" || name == "version"
}

// runMain dispatches args (program name first) and returns the exit code.
func runMain(args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}
	command, rest := args[1], args[2:]

	switch command {
	case "help", "-h", "--help":
		if err := runHelp(rest, env); err != nil {
			fmt.Fprintf(env.Stderr, "error: %v\n", err)
			return exitCodeFor(err)
		}
		return ExitSuccess
	case "version", "--version":
		fmt.Fprintf(env.Stdout, "quickbook %s\n", Version)
		return ExitSuccess
	}

	if !isBookCommand(command) {
		fmt.Fprintf(env.Stderr, "error: %v: %s\n", ErrUnknownCommand, command)
		printUsage(env.Stderr)
		return ExitUsage
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	flags, positional, err := parseCommandFlags(command, rest, env.Stdout)
	if errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	if err == nil {
		err = runCommand(ctx, command, flags, positional, env)
	}
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err, flags, positional))
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// runCommand builds a Service from flags and the environment and runs one
// command.
func runCommand(ctx context.Context, command string, f *commandFlags, args []string, env *Environment) error {
	envCfg := loadEnvConfig()
	applyEnvConfig(envCfg, &f.common)
	if !f.common.quiet {
		warnUnknownEnvVars(env.Stderr)
	}

	slug, err := slugArg(command, args)
	if err != nil {
		return err
	}

	opts := []quickbook.Option{
		quickbook.WithBooksDir(booksDir(f)),
		quickbook.WithLogger(newLogger(env, f.common)),
		quickbook.WithDryRun(f.common.dryRun),
		quickbook.WithClock(env.Now),
	}
	if env.Renderer != nil {
		opts = append(opts, quickbook.WithRenderer(env.Renderer))
	} else {
		opts = append(opts, quickbook.WithRenderer(render.NewPandoc(envCfg.Renderer)))
	}
	if env.RetryPolicy != nil {
		opts = append(opts, quickbook.WithRetryPolicy(*env.RetryPolicy))
	}

	if (command == "upload" || command == "process") && !f.common.dryRun {
		storeOpts, closeStores, err := openStores(envCfg)
		if err != nil {
			return err
		}
		defer closeStores()
		opts = append(opts, storeOpts...)
	}

	svc := quickbook.NewService(opts...)
	out := resultPrinter{w: env.Stdout, quiet: f.common.quiet}

	switch command {
	case "init":
		res, err := svc.Init(slug)
		if err != nil {
			return err
		}
		out.printf("created %s\nedit %s, then copy the manuscript to %s\n",
			res.Dir, res.ConfigFile, filepath.Join(res.Dir, config.SourceDirName))
	case "convert":
		res, err := svc.Convert(ctx, slug)
		if err != nil {
			return err
		}
		out.convert(res)
	case "split":
		res, err := svc.Split(slug)
		if err != nil {
			return err
		}
		out.split(res)
	case "chunk":
		res, err := svc.Chunk(ctx, slug)
		if err != nil {
			return err
		}
		out.chunk(res)
	case "upload":
		res, err := svc.Upload(ctx, slug)
		if err != nil {
			return err
		}
		out.upload(res)
	case "process":
		res, err := svc.Process(ctx, slug)
		out.process(res)
		return err
	case "status":
		return runStatus(svc, slug, statusFormat(f, envCfg), env)
	}
	return nil
}

// slugArg checks the positional arguments of command.
func slugArg(command string, args []string) (string, error) {
	switch {
	case command == "status" && len(args) == 0:
		return "", nil
	case len(args) == 0:
		return "", fmt.Errorf("%w: quickbook %s <slug>", ErrUsage, command)
	case len(args) > 1:
		return "", fmt.Errorf("%w: unexpected arguments %v", ErrUsage, args[1:])
	}
	return args[0], nil
}

func booksDir(f *commandFlags) string {
	if f.common.booksDir != "" {
		return f.common.booksDir
	}
	return quickbook.DefaultBooksDir
}

func statusFormat(f *commandFlags, envCfg *envConfig) string {
	if f.dateFormat != "" {
		return f.dateFormat
	}
	return envCfg.DateFormat
}

// newLogger logs to stderr: errors only with --quiet, debug with --verbose.
func newLogger(env *Environment, f commonFlags) *slog.Logger {
	level := slog.LevelInfo
	switch {
	case f.quiet:
		level = slog.LevelError
	case f.verbose:
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(env.Stderr, &slog.HandlerOptions{Level: level}))
}

// openStores opens the configured publish targets. Unset targets stay nil;
// upload reports them, process skips uploading.
func openStores(envCfg *envConfig) ([]quickbook.Option, func(), error) {
	var opts []quickbook.Option
	closeStores := func() {}
	if !envCfg.hasPublishTarget() {
		return nil, closeStores, nil
	}

	if envCfg.ObjectStore != "" {
		objects, err := publish.OpenObjectStore(envCfg.ObjectStore, envCfg.ObjectStoreToken)
		if err != nil {
			return nil, closeStores, err
		}
		opts = append(opts, quickbook.WithObjectStore(objects))
	}
	if envCfg.DocStore != "" {
		docs, err := publish.OpenDocumentStore(envCfg.DocStore, envCfg.DocStoreToken)
		if err != nil {
			return nil, closeStores, err
		}
		closeStores = func() { _ = docs.Close() }
		opts = append(opts, quickbook.WithDocumentStore(docs))
	}
	return opts, closeStores, nil
}

// runStatus prints one book or every book.
func runStatus(svc *quickbook.Service, slug, format string, env *Environment) error {
	if _, err := dateutil.Layout(format); err != nil {
		return err
	}
	if slug != "" {
		st, err := svc.Status(slug)
		if err != nil {
			return err
		}
		printStatus(env.Stdout, st, format)
		return nil
	}

	all, err := svc.StatusAll()
	if err != nil {
		return err
	}
	printStatusTable(env.Stdout, all, svc.BooksDir())
	return nil
}

// hintFor returns an actionable suffix for err, or "".
func hintFor(err error, f *commandFlags, args []string) string {
	slug := "<slug>"
	if len(args) > 0 {
		slug = args[0]
	}
	layout := config.Layout{BooksDir: quickbook.DefaultBooksDir, Slug: slug}
	if f != nil {
		layout.BooksDir = booksDir(f)
	}

	switch {
	case errors.Is(err, quickbook.ErrConfigMissing):
		return hints.ForConfigMissing(slug)
	case errors.Is(err, quickbook.ErrSourceMissing):
		return hints.ForSourceMissing(layout.SourceDir())
	case errors.Is(err, quickbook.ErrRendererNotFound):
		return hints.ForRendererNotFound()
	case errors.Is(err, quickbook.ErrRenderFailed):
		return hints.ForRenderFailed(filepath.Join(layout.SourceDir(), "*.clean.tex"))
	case errors.Is(err, quickbook.ErrHTMLMissing):
		return hints.ForHTMLMissing(slug)
	case errors.Is(err, quickbook.ErrManifestMissing):
		return hints.ForManifestMissing(slug)
	case errors.Is(err, quickbook.ErrChunksMissing):
		return hints.ForChunksMissing(slug)
	case errors.Is(err, quickbook.ErrNoPublishTarget):
		return hints.ForPublishTarget()
	case errors.Is(err, quickbook.ErrPublishFailed):
		return hints.ForPublishFailed()
	case errors.Is(err, quickbook.ErrInvalidSlug):
		return hints.ForInvalidSlug()
	case errors.Is(err, quickbook.ErrStyleNotFound):
		return hints.ForStyleNotFound(assets.Styles())
	case errors.Is(err, quickbook.ErrBookExists):
		return hints.ForBookExists(layout.ConfigFile())
	}
	return ""
}
