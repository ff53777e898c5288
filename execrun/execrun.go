// Package execrun dispatches a resolved task to a child process: script
// tasks through an interpreter, program tasks directly, and serial tasks
// by recursively running each named step in order.
package execrun

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/adrianmrit/yamis-go/dsl"
	"github.com/adrianmrit/yamis-go/task"
)

// Options carries everything about the surrounding config file a task needs
// to run: its directory (the default working directory), its own working
// directory override, its env map, and the argument map and I/O streams
// every step shares.
type Options struct {
	Args      dsl.ArgMap
	ConfigDir string
	ConfigWD  string
	ConfigEnv map[string]string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Run dispatches t according to its body kind. tasks is the full resolved
// task set of the owning config file, needed to look up serial steps.
func Run(ctx context.Context, tasks map[string]*task.Task, t *task.Task, opts Options) (int, error) {
	switch {
	case t.IsSerial():
		return runSerial(ctx, tasks, t, opts)
	case t.IsScript():
		return runScript(ctx, t, opts)
	case t.IsProgram():
		return runProgram(ctx, t, opts)
	default:
		return 1, &task.Error{Kind: task.Empty, Name: t.Name}
	}
}

func runSerial(ctx context.Context, tasks map[string]*task.Task, t *task.Task, opts Options) (int, error) {
	for _, stepName := range t.Serial {
		step, ok := task.GetTask(tasks, stepName)
		if !ok {
			return 1, &task.Error{Kind: task.ImproperlyConfigured, Name: t.Name, Detail: "serial step refers to unknown task " + stepName}
		}
		code, err := Run(ctx, tasks, step, opts)
		if err != nil {
			return code, err
		}
		if code != 0 {
			return code, nil
		}
	}
	return 0, nil
}

func runScript(ctx context.Context, t *task.Task, opts Options) (int, error) {
	mode := dsl.EscapeSpaces
	if t.Quote != "" {
		parsed, ok := dsl.ParseEscapeMode(t.Quote)
		if !ok {
			return 1, &task.Error{Kind: task.ImproperlyConfigured, Name: t.Name, Detail: "unknown quote mode " + t.Quote}
		}
		mode = parsed
	}

	script, err := dsl.RenderScript(t.Script, opts.Args, mergedEnv(opts, t), mode)
	if err != nil {
		return 1, err
	}

	interpreter := t.Interpreter
	if interpreter == nil {
		interpreter = defaultInterpreter()
	}
	argv := append(append([]string{}, interpreter...), script)
	return runArgv(ctx, argv, t, opts)
}

func runProgram(ctx context.Context, t *task.Task, opts Options) (int, error) {
	params, err := dsl.RenderParams(t.Args, opts.Args, mergedEnv(opts, t))
	if err != nil {
		return 1, err
	}
	argv := append([]string{t.Program}, params...)
	return runArgv(ctx, argv, t, opts)
}

func runArgv(ctx context.Context, argv []string, t *task.Task, opts Options) (int, error) {
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdin = opts.Stdin
	cmd.Stdout = opts.Stdout
	cmd.Stderr = opts.Stderr
	cmd.Dir = workingDirectory(t, opts)
	cmd.Env = envSlice(mergedEnv(opts, t))
	setGracefulShutdown(cmd)

	err := cmd.Run()
	if err == nil {
		return 0, nil
	}
	if exitErr, ok := err.(*exec.ExitError); ok {
		return exitErr.ExitCode(), nil
	}
	return 1, fmt.Errorf("running task %s: %w", t.Name, err)
}

// workingDirectory resolves task.wd > config.wd > config file directory.
func workingDirectory(t *task.Task, opts Options) string {
	if t.WD != "" {
		return resolve(opts.ConfigDir, t.WD)
	}
	if opts.ConfigWD != "" {
		return resolve(opts.ConfigDir, opts.ConfigWD)
	}
	return opts.ConfigDir
}

func resolve(base, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}

// mergedEnv combines the parent process environment, the config's env, and
// the task's own env, with the task winning conflicts.
func mergedEnv(opts Options, t *task.Task) map[string]string {
	env := map[string]string{}
	for _, kv := range os.Environ() {
		if k, v, ok := splitEnv(kv); ok {
			env[k] = v
		}
	}
	for k, v := range opts.ConfigEnv {
		env[k] = v
	}
	for k, v := range t.Env {
		env[k] = v
	}
	return env
}

func splitEnv(kv string) (string, string, bool) {
	for i := 0; i < len(kv); i++ {
		if kv[i] == '=' {
			return kv[:i], kv[i+1:], true
		}
	}
	return "", "", false
}

func envSlice(env map[string]string) []string {
	out := make([]string, 0, len(env))
	for k, v := range env {
		out = append(out, k+"="+v)
	}
	return out
}
