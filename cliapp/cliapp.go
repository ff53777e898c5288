// Package cliapp wires the cobra root command: flag parsing, config
// discovery/loading, task lookup, and dispatch to package execrun.
package cliapp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/adrianmrit/yamis-go/cli"
	"github.com/adrianmrit/yamis-go/config"
	"github.com/adrianmrit/yamis-go/execrun"
	"github.com/adrianmrit/yamis-go/task"
	"github.com/adrianmrit/yamis-go/tilde"
)

// version is set at build time via -ldflags, following the teacher's
// convention in main.go.
var version = "dev"

// Run is the testable entrypoint: it builds the root command, wires stdio,
// and returns the process exit code. main() just calls os.Exit(Run(...)).
func Run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	exitCode := 0
	rootCmd := newRootCmd(ctx, stdin, stdout, stderr, &exitCode)
	rootCmd.SetArgs(args)
	rootCmd.SetIn(stdin)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.Execute(); err != nil {
		cli.LogErrorTo(stderr, "%v", err)
		return 1
	}
	return exitCode
}

// newRootCmd builds the cobra root command. exitCode receives the task's
// own exit status (or the SIGINT-mapped 130) when RunE returns nil; a
// non-nil RunE error always means exit code 1, matching spec.md §6's "1 on
// internal errors" rule.
func newRootCmd(ctx context.Context, stdin io.Reader, stdout, stderr io.Writer, exitCode *int) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "yamis [flags] <task> [args...]",
		Short:        "Run project tasks described in a yamis.yml/yamis.toml config file",
		Long:         "The appropriate YAML or TOML config files need to exist in the directory or parents, or a file is specified with the `-f` or `--file` options.",
		Version:      version,
		SilenceUsage: true,
		Args:         cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := dispatch(ctx, cmd, args, stdin, stdout, stderr)
			*exitCode = code
			return err
		},
	}
	rootCmd.Flags().StringP("file", "f", "", "Search for tasks in the given file")
	rootCmd.Flags().BoolP("list", "l", false, "List configuration files that can be reached from the current directory")
	// Defined explicitly so it gets the -V shorthand spec.md §6 asks for;
	// cobra recognizes an already-registered "version" flag and uses it.
	rootCmd.Flags().BoolP("version", "V", false, "Print the version number")
	// Flags only apply before the task name; everything from the task name
	// onward (including args that look like flags) passes through verbatim.
	rootCmd.Flags().SetInterspersed(false)
	return rootCmd
}

// dispatch resolves the requested task and runs it. A non-nil error means
// an internal failure (exit 1, logged by the caller); a nil error with a
// non-zero code means the child (or a signal) produced that exit status.
func dispatch(ctx context.Context, cmd *cobra.Command, args []string, stdin io.Reader, stdout, stderr io.Writer) (int, error) {
	filePath, _ := cmd.Flags().GetString("file")
	listFlag, _ := cmd.Flags().GetBool("list")

	dir, err := os.Getwd()
	if err != nil {
		return 1, err
	}

	if listFlag {
		if err := listConfigs(dir, filePath, cmd.OutOrStdout()); err != nil {
			return 1, err
		}
		return 0, nil
	}

	if len(args) == 0 {
		return 1, errors.New("no task given")
	}
	taskName := args[0]
	taskArgs := args[1:]

	cf, t, err := resolveTask(dir, filePath, taskName)
	if err != nil {
		return 1, err
	}

	if len(taskArgs) == 1 && (taskArgs[0] == "-h" || taskArgs[0] == "--help") {
		printTaskHelp(cmd.OutOrStdout(), t)
		return 0, nil
	}

	wd, _ := cf.WorkingDirectory()
	opts := execrun.Options{
		Args:      ingestArgs(taskArgs),
		ConfigDir: cf.Directory(),
		ConfigWD:  wd,
		ConfigEnv: cf.Env,
		Stdin:     stdin,
		Stdout:    stdout,
		Stderr:    stderr,
	}

	code, runErr := execrun.Run(ctx, cf.Tasks, t, opts)
	if runErr != nil {
		return 1, runErr
	}
	if code < 0 {
		// Terminated by a signal rather than a normal exit. SIGINT and
		// SIGTERM both cancel ctx, and cancellation sends the child SIGINT,
		// so map that to the POSIX 128+SIGINT convention.
		if ctx.Err() != nil {
			return 130, nil
		}
		return 1, nil
	}
	return code, nil
}

// resolveTask loads either the explicit -f/--file config or, absent that,
// the discovered config whose tasks contain taskName (spec.md §5 "first
// config wins"), and returns the task itself.
func resolveTask(dir, filePath, taskName string) (*config.ConfigFile, *task.Task, error) {
	if filePath != "" {
		cf, err := config.LoadExplicit(filePath)
		if err != nil {
			return nil, nil, err
		}
		t, ok := task.GetTask(cf.Tasks, taskName)
		if !ok {
			return nil, nil, fmt.Errorf("Task %s not found.", taskName)
		}
		return cf, t, nil
	}

	cf, t, err := config.FindTask(dir, taskName)
	if err != nil {
		return nil, nil, err
	}
	if t == nil {
		return nil, nil, fmt.Errorf("Task %s not found.", taskName)
	}
	return cf, t, nil
}

func printTaskHelp(w io.Writer, t *task.Task) {
	switch {
	case t.Help != "":
		fmt.Fprintln(w, t.Help)
	case t.Description != "":
		fmt.Fprintln(w, t.Description)
	default:
		fmt.Fprintf(w, "%s: no help available\n", t.Name)
	}
}

// listConfigs implements -l/--list: one discovered config path per line,
// tilde-shortened, the way the teacher's configshow.Show shortens paths.
func listConfigs(dir, filePath string, w io.Writer) error {
	if filePath != "" {
		abs, err := config.ExplicitPath(filePath)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, tilde.Path(abs))
		return nil
	}
	for _, p := range config.DiscoverPaths(dir) {
		fmt.Fprintln(w, tilde.Path(p))
	}
	return nil
}
