package main

// Notes:
// - printUsage/printCommandUsage: we test that required content strings are
//   present in the output. We don't test exact formatting.

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestPrintUsage(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	printUsage(&buf)

	for _, s := range []string{"Usage: quickbook", "Commands:", "process", "init", "convert", "split", "chunk", "upload", "status", "version", "help"} {
		if !strings.Contains(buf.String(), s) {
			t.Errorf("printUsage output should contain %q", s)
		}
	}
}

func TestPrintCommandUsage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		command string
		want    []string
		notWant []string
	}{
		{"process", []string{"quickbook process <slug>", "--dry-run", "QUICKBOOK_DOC_STORE"}, []string{"--date-format"}},
		{"status", []string{"quickbook status [slug]", "--date-format", "stamp"}, []string{"QUICKBOOK_OBJECT_STORE "}},
		{"split", []string{"--books-dir", "--verbose"}, []string{"Environment:"}},
		{"version", []string{"quickbook version"}, []string{"--dry-run"}},
	}

	for _, tt := range tests {
		t.Run(tt.command, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			printCommandUsage(&buf, tt.command)
			for _, s := range tt.want {
				if !strings.Contains(buf.String(), s) {
					t.Errorf("usage of %s should contain %q", tt.command, s)
				}
			}
			for _, s := range tt.notWant {
				if strings.Contains(buf.String(), s) {
					t.Errorf("usage of %s should not contain %q", tt.command, s)
				}
			}
		})
	}
}

func TestRunHelp_Unknown(t *testing.T) {
	t.Parallel()

	env, _, stderr := testEnv()
	if err := runHelp([]string{"publish"}, env); !errors.Is(err, ErrUnknownCommand) {
		t.Errorf("runHelp() error = %v, want ErrUnknownCommand", err)
	}
	if !strings.Contains(stderr.String(), "Usage: quickbook") {
		t.Error("runHelp() did not print usage to stderr")
	}
}
