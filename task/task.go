// Package task models a yamis task: its body (script, program, or serial
// composition), its inheritance from other tasks in the same config file,
// and the OS-variant flattening and dependency resolution that turns a
// raw deserialized task map into one ready to run.
package task

import "fmt"

// Task is a single task as deserialized from a config file. Field names
// mirror the YAML/TOML keys via struct tags; see config.ConfigFile for the
// containing document.
type Task struct {
	Name        string            `yaml:"-" toml:"-"`
	Script      string            `yaml:"script,omitempty" toml:"script,omitempty"`
	Program     string            `yaml:"program,omitempty" toml:"program,omitempty"`
	Args        []string          `yaml:"args,omitempty" toml:"args,omitempty"`
	Serial      []string          `yaml:"serial,omitempty" toml:"serial,omitempty"`
	Interpreter []string          `yaml:"interpreter,omitempty" toml:"interpreter,omitempty"`
	Env         map[string]string `yaml:"env,omitempty" toml:"env,omitempty"`
	EnvFile     string            `yaml:"env_file,omitempty" toml:"env_file,omitempty"`
	WD          string            `yaml:"wd,omitempty" toml:"wd,omitempty"`
	Quote       string            `yaml:"quote,omitempty" toml:"quote,omitempty"`
	Private     bool              `yaml:"private,omitempty" toml:"private,omitempty"`
	Bases       []string          `yaml:"bases,omitempty" toml:"bases,omitempty"`
	Linux       *Task             `yaml:"linux,omitempty" toml:"linux,omitempty"`
	Windows     *Task             `yaml:"windows,omitempty" toml:"windows,omitempty"`
	MacOS       *Task             `yaml:"macos,omitempty" toml:"macos,omitempty"`
	Help        string            `yaml:"help,omitempty" toml:"help,omitempty"`
	Description string            `yaml:"description,omitempty" toml:"description,omitempty"`
}

// ErrorKind distinguishes the shapes of failure a task definition can have.
type ErrorKind int

const (
	// Empty means a task (after resolution) has no script, program, or
	// serial body.
	Empty ErrorKind = iota
	// ImproperlyConfigured means a task mixes bodies, sets quote on a
	// non-script task, or declares an empty interpreter.
	ImproperlyConfigured
	// DuplicateTask means OS-variant flattening produced a name already in
	// use by another explicit task.
	DuplicateTask
	// UnknownBase means a task's bases list names a task that does not
	// exist in the same config.
	UnknownBase
	// Cycle means a task's bases form a dependency cycle.
	Cycle
)

// Error reports a problem with a task's definition or its place in the
// inheritance graph.
type Error struct {
	Kind   ErrorKind
	Name   string
	Detail string
}

func (e *Error) Error() string {
	switch e.Kind {
	case Empty:
		return fmt.Sprintf("Task %s is empty.", e.Name)
	case ImproperlyConfigured:
		return fmt.Sprintf("Task %s is improperly configured: %s", e.Name, e.Detail)
	case DuplicateTask:
		return fmt.Sprintf("Duplicate task `%s`", e.Name)
	case UnknownBase:
		return fmt.Sprintf("Task %s cannot inherit from non-existing task %s.", e.Name, e.Detail)
	case Cycle:
		return fmt.Sprintf("Found a cyclic dependency for Task: %s", e.Name)
	}
	return "task error"
}

// IsScript reports whether the task's body is a shell script.
func (t *Task) IsScript() bool { return t.Script != "" }

// IsProgram reports whether the task's body is a direct program invocation.
func (t *Task) IsProgram() bool { return t.Program != "" }

// IsSerial reports whether the task's body is a sequence of other tasks.
func (t *Task) IsSerial() bool { return len(t.Serial) > 0 }

// IsPrivate reports whether the task is hidden from public lookup.
func (t *Task) IsPrivate() bool { return t.Private }

// validate checks a task's body after OS-flattening and inheritance have
// both been resolved: exactly one body kind, quote only on scripts, and a
// non-empty interpreter when one is set.
func (t *Task) validate() error {
	bodies := 0
	if t.IsScript() {
		bodies++
	}
	if t.IsProgram() {
		bodies++
	}
	if t.IsSerial() {
		bodies++
	}
	if bodies == 0 {
		return &Error{Kind: Empty, Name: t.Name}
	}
	if bodies > 1 {
		return &Error{Kind: ImproperlyConfigured, Name: t.Name, Detail: "only one of script, program, or serial may be set"}
	}
	if t.Quote != "" && !t.IsScript() {
		return &Error{Kind: ImproperlyConfigured, Name: t.Name, Detail: "quote is only valid on a script task"}
	}
	if t.Interpreter != nil && len(t.Interpreter) == 0 {
		return &Error{Kind: ImproperlyConfigured, Name: t.Name, Detail: "interpreter, if set, must not be empty"}
	}
	return nil
}

// extend fills every unset field of t from base, the way a child inherits
// from a base that appears earlier in its bases list. Fields already set
// on t are left untouched.
func (t *Task) extend(base *Task) {
	if t.Script == "" {
		t.Script = base.Script
	}
	if t.Program == "" {
		t.Program = base.Program
	}
	if t.Args == nil {
		t.Args = append([]string(nil), base.Args...)
	}
	if t.Serial == nil {
		t.Serial = append([]string(nil), base.Serial...)
	}
	if t.Interpreter == nil {
		t.Interpreter = base.Interpreter
	}
	if t.Env == nil && base.Env != nil {
		t.Env = make(map[string]string, len(base.Env))
		for k, v := range base.Env {
			t.Env[k] = v
		}
	} else if base.Env != nil {
		for k, v := range base.Env {
			if _, ok := t.Env[k]; !ok {
				t.Env[k] = v
			}
		}
	}
	if t.EnvFile == "" {
		t.EnvFile = base.EnvFile
	}
	if t.WD == "" {
		t.WD = base.WD
	}
	if t.Quote == "" {
		t.Quote = base.Quote
	}
	if t.Help == "" {
		t.Help = base.Help
	}
	if t.Description == "" {
		t.Description = base.Description
	}
}
