package task

import "runtime"

// currentOS names the OS suffix used for OS-qualified task names. Overridden
// in tests.
var currentOS = func() string {
	if runtime.GOOS == "darwin" {
		return "macos"
	}
	return runtime.GOOS
}()

// osTaskName returns the OS-qualified form of a task name, e.g. "build" on
// linux becomes "build.linux".
func osTaskName(name string) string {
	return name + "." + currentOS
}

// Resolve takes a raw, just-deserialized task map (as found under a config
// file's `tasks` key) and returns the flattened, inheritance-resolved,
// validated set of tasks ready to run. It does not mutate its input.
func Resolve(raw map[string]*Task) (map[string]*Task, error) {
	flat, err := flattenOSVariants(raw)
	if err != nil {
		return nil, err
	}

	order, err := dependencyOrder(flat)
	if err != nil {
		return nil, err
	}

	for _, name := range order {
		t := flat[name]
		bases := t.Bases
		t.Bases = nil
		for _, baseName := range bases {
			base, ok := flat[osTaskName(baseName)]
			if !ok {
				base, ok = flat[baseName]
			}
			if !ok {
				return nil, &Error{Kind: UnknownBase, Name: name, Detail: baseName}
			}
			t.extend(base)
		}
	}

	for name, t := range flat {
		if err := t.validate(); err != nil {
			// A parent whose bodies live only in its OS variants is left
			// empty; GetTask picks the variant for the current OS instead.
			if e, ok := err.(*Error); ok && e.Kind == Empty &&
				(flat[name+".linux"] != nil || flat[name+".windows"] != nil || flat[name+".macos"] != nil) {
				continue
			}
			return nil, err
		}
	}

	for _, t := range flat {
		for _, step := range t.Serial {
			if _, ok := GetTask(flat, step); !ok {
				return nil, &Error{Kind: ImproperlyConfigured, Name: t.Name, Detail: "serial step refers to unknown task " + step}
			}
		}
	}

	return flat, nil
}

// flattenOSVariants detaches each task's linux/windows/macos child and
// registers it as "<name>.<os>", then registers the parent under its own
// name. A generated name colliding with an explicit task name is an error.
func flattenOSVariants(raw map[string]*Task) (map[string]*Task, error) {
	flat := make(map[string]*Task, len(raw))

	// copyTask returns a copy of t with its own env map, so resolution never
	// writes through to the caller's tasks.
	copyTask := func(t *Task) *Task {
		c := *t
		if t.Env != nil {
			c.Env = make(map[string]string, len(t.Env))
			for k, v := range t.Env {
				c.Env[k] = v
			}
		}
		return &c
	}

	variant := func(parentName string, os string, child *Task) error {
		if child == nil {
			return nil
		}
		osName := parentName + "." + os
		if _, exists := raw[osName]; exists {
			return &Error{Kind: DuplicateTask, Name: osName}
		}
		if _, exists := flat[osName]; exists {
			return &Error{Kind: DuplicateTask, Name: osName}
		}
		c := copyTask(child)
		c.Name = osName
		flat[osName] = c
		return nil
	}

	for name, orig := range raw {
		t := copyTask(orig)
		if err := variant(name, "linux", t.Linux); err != nil {
			return nil, err
		}
		if err := variant(name, "windows", t.Windows); err != nil {
			return nil, err
		}
		if err := variant(name, "macos", t.MacOS); err != nil {
			return nil, err
		}
		t.Linux, t.Windows, t.MacOS = nil, nil, nil
		t.Name = name
		flat[name] = t
	}
	return flat, nil
}

// dependencyOrder returns task names ordered so that every task appears
// after all of its (transitive) bases, by a depth-first topological sort
// over the bases graph. Cycles are reported naming the task being visited
// when the cycle was detected.
func dependencyOrder(tasks map[string]*Task) ([]string, error) {
	const (
		unvisited = 0
		visiting  = 1
		visited   = 2
	)
	state := make(map[string]int, len(tasks))
	var order []string

	var visit func(name string) error
	visit = func(name string) error {
		switch state[name] {
		case visited:
			return nil
		case visiting:
			return &Error{Kind: Cycle, Name: name}
		}
		state[name] = visiting

		t, ok := tasks[name]
		if ok {
			for _, baseName := range t.Bases {
				resolved := osTaskName(baseName)
				if _, ok := tasks[resolved]; !ok {
					resolved = baseName
				}
				if _, ok := tasks[resolved]; !ok {
					// Left for Resolve's own pass to report as UnknownBase
					// with the right detail; here we just stop descending.
					continue
				}
				if err := visit(resolved); err != nil {
					return err
				}
			}
		}

		state[name] = visited
		order = append(order, name)
		return nil
	}

	for name := range tasks {
		if err := visit(name); err != nil {
			return nil, err
		}
	}
	return order, nil
}

// GetTask finds a task by name, preferring its OS-qualified form.
func GetTask(tasks map[string]*Task, name string) (*Task, bool) {
	if t, ok := tasks[osTaskName(name)]; ok {
		return t, true
	}
	t, ok := tasks[name]
	return t, ok
}

// GetPublicTask is like GetTask but hides private tasks.
func GetPublicTask(tasks map[string]*Task, name string) (*Task, bool) {
	t, ok := GetTask(tasks, name)
	if !ok || t.IsPrivate() {
		return nil, false
	}
	return t, true
}

// PublicTaskNames returns the names of every non-private task; the order
// is not defined.
func PublicTaskNames(tasks map[string]*Task) []string {
	names := make([]string, 0, len(tasks))
	for name, t := range tasks {
		if !t.IsPrivate() {
			names = append(names, name)
		}
	}
	return names
}
