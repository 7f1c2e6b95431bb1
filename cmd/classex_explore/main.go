package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/user/classex_explore_go/internal/analysis"
	"github.com/user/classex_explore_go/internal/config"
)

// Exit statuses.
const (
	exitOK          = 0
	exitError       = 1 // usage and I/O failures
	exitOutOfDomain = 2 // query outside the sampled range; no table written
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes one invocation and returns the process exit status.
func run(args []string, stdout, stderr io.Writer) int {
	return execute(NewApp(stdout, stderr), args, stdout, stderr)
}

func execute(app *App, args []string, stdout, stderr io.Writer) int {
	root := newRootCommand(app)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	cmd, err := root.ExecuteC()
	if err == nil {
		return exitOK
	}
	if cmd == nil {
		cmd = root
	}

	var parseErr *config.ParseError
	switch {
	case errors.As(err, &parseErr), errors.Is(err, errUsage):
		fmt.Fprintf(stderr, "Error: %v\n", err)
		fmt.Fprint(stderr, cmd.UsageString())
		return exitError
	case errors.Is(err, analysis.ErrOutOfDomain):
		fmt.Fprintln(stdout, err)
		return exitOutOfDomain
	default:
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}
}
