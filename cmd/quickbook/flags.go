package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	booksDir string
	dryRun   bool
	quiet    bool
	verbose  bool
}

// commandFlags holds the flags of one command invocation.
type commandFlags struct {
	common     commonFlags
	dateFormat string // status only
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVar(&f.booksDir, "books-dir", "", "books directory (default ./books)")
	fs.BoolVarP(&f.dryRun, "dry-run", "n", false, "log intended writes and uploads, change nothing")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show every step")
}

// parseCommandFlags parses the flags of command and returns positional args.
// Parse errors wrap ErrUsage; -h/--help returns flag.ErrHelp.
func parseCommandFlags(command string, args []string, usage io.Writer) (*commandFlags, []string, error) {
	fs := flag.NewFlagSet(command, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	f := &commandFlags{}

	addCommonFlags(fs, &f.common)
	if command == "status" {
		fs.StringVar(&f.dateFormat, "date-format", "", "timestamp format: preset (iso, stamp, long...) or tokens")
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printCommandUsage(usage, command)
			return nil, nil, err
		}
		return nil, nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if f.common.quiet && f.common.verbose {
		return nil, nil, fmt.Errorf("%w: --quiet and --verbose are mutually exclusive", ErrUsage)
	}

	return f, fs.Args(), nil
}
