package main

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"go.uber.org/automaxprocs/maxprocs"

	"github.com/alnah/go-md2html/internal/fileutil"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	_, _ = maxprocs.Set(maxprocs.Logger(maxprocsLogger(os.Stderr, wantsVerbose(os.Args))))

	os.Exit(runMain(os.Args, DefaultEnv()))
}

// runMain dispatches args[1] to a command and returns the process exit code.
func runMain(args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	cmd, rest := args[1], args[2:]
	switch cmd {
	case "convert":
		return runConvertCmd(rest, env)
	case "version", "--version":
		fmt.Fprintf(env.Stdout, "go-md2html %s\n", Version)
		return ExitSuccess
	case "help", "-h", "--help":
		return runHelp(rest, env)
	case "styles":
		runStyles(env)
		return ExitSuccess
	case "themes":
		runThemes(env)
		return ExitSuccess
	case "templates":
		runTemplates(env)
		return ExitSuccess
	case "completion":
		if err := runCompletion(rest, env); err != nil {
			fmt.Fprintln(env.Stderr, "error:", err)
			return exitCodeFor(err)
		}
		return ExitSuccess
	}

	// "md2html post.md" is shorthand for "md2html convert post.md".
	if looksLikeMarkdown(cmd) {
		return runConvertCmd(args[1:], env)
	}

	fmt.Fprintf(env.Stderr, "unknown command: %s\n\n", cmd)
	printUsage(env.Stderr)
	return ExitUsage
}

// isCommand reports whether s names a subcommand.
func isCommand(s string) bool {
	switch s {
	case "convert", "version", "help", "styles", "themes", "templates", "completion":
		return true
	}
	return false
}

// looksLikeMarkdown reports whether arg is a markdown path rather than a command.
func looksLikeMarkdown(arg string) bool {
	return !isCommand(arg) && fileutil.IsMarkdown(arg)
}

// wantsVerbose scans raw args for -v/--verbose before flags are parsed.
func wantsVerbose(args []string) bool {
	return slices.ContainsFunc(args, func(a string) bool {
		return a == "-v" || a == "--verbose" || a == "--verbose=true"
	})
}

// maxprocsLogger returns a logger that writes to w when verbose, and
// discards otherwise.
func maxprocsLogger(w io.Writer, verbose bool) func(string, ...any) {
	if !verbose {
		return func(string, ...any) {}
	}
	return func(format string, args ...any) {
		fmt.Fprintf(w, strings.TrimSuffix(format, "\n")+"\n", args...)
	}
}
