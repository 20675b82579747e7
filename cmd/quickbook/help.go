package main

import (
	"fmt"
	"io"
)

// commandSummaries lists the commands in help order.
var commandSummaries = []struct {
	name    string
	args    string
	summary string
}{
	{"process", "<slug>", "Run convert, split, chunk and upload"},
	{"init", "<slug>", "Create a book directory and book.yaml"},
	{"convert", "<slug>", "Normalize the manuscript and render it to HTML"},
	{"split", "<slug>", "Cut the rendered HTML into chapter pages"},
	{"chunk", "<slug>", "Extract retrieval chunks from the manuscript"},
	{"upload", "<slug>", "Publish chapters, images, chunks and records"},
	{"status", "[slug]", "Show stage completion of one or every book"},
	{"version", "", "Show version information"},
	{"help", "[command]", "Show help for a command"},
}

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: quickbook <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	for _, c := range commandSummaries {
		fmt.Fprintf(w, "  %-10s %s\n", c.name, c.summary)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'quickbook help <command>' for details on a specific command.")
}

// printFlags prints the flags shared by every book command.
func printFlags(w io.Writer) {
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --books-dir <dir>     Books directory (default ./books)")
	fmt.Fprintln(w, "  -n, --dry-run             Log intended writes and uploads, change nothing")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show every step")
}

// printEnvironment prints the environment variables read by the CLI.
func printEnvironment(w io.Writer) {
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  QUICKBOOK_BOOKS_DIR           Books directory")
	fmt.Fprintln(w, "  QUICKBOOK_RENDERER            pandoc binary")
	fmt.Fprintln(w, "  QUICKBOOK_OBJECT_STORE        Directory or http(s) URL for objects")
	fmt.Fprintln(w, "  QUICKBOOK_OBJECT_STORE_TOKEN  Bearer token for the object store")
	fmt.Fprintln(w, "  QUICKBOOK_DOC_STORE           SQLite file or http(s) URL for records")
	fmt.Fprintln(w, "  QUICKBOOK_DOC_STORE_TOKEN     Bearer token for the document store")
	fmt.Fprintln(w, "  QUICKBOOK_DATE_FORMAT         Default status --date-format")
}

// printCommandUsage prints usage for one command.
func printCommandUsage(w io.Writer, command string) {
	for _, c := range commandSummaries {
		if c.name != command {
			continue
		}
		fmt.Fprintf(w, "Usage: quickbook %s %s\n", c.name, c.args)
		fmt.Fprintln(w)
		fmt.Fprintln(w, c.summary+".")
		if isBookCommand(command) {
			fmt.Fprintln(w)
			printFlags(w)
			if command == "status" {
				fmt.Fprintln(w, "      --date-format <s>     Timestamp format")
				fmt.Fprintln(w, "                            Presets: iso, european, us, long, stamp")
				fmt.Fprintln(w, "                            Tokens: YYYY, YY, MMMM, MMM, MM, M, DD, D, HH, mm")
			}
			if command == "process" || command == "upload" {
				fmt.Fprintln(w)
				printEnvironment(w)
			}
		}
		return
	}
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) error {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return nil
	}
	if !isCommand(args[0]) {
		printUsage(env.Stderr)
		return fmt.Errorf("%w: %s", ErrUnknownCommand, args[0])
	}
	printCommandUsage(env.Stdout, args[0])
	return nil
}
