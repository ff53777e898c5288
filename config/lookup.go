package config

import "github.com/adrianmrit/yamis-go/task"

// FindTask walks the discovered config paths (closest first) and returns
// the first config file whose tasks contain name, along with the resolved
// task itself. Later configs are never consulted once one matches, per
// spec.md §5's "first config wins" ordering guarantee.
func FindTask(dir, name string) (*ConfigFile, *task.Task, error) {
	for _, path := range DiscoverPaths(dir) {
		cf, err := Load(path)
		if err != nil {
			return nil, nil, err
		}
		if t, ok := task.GetTask(cf.Tasks, name); ok {
			return cf, t, nil
		}
	}
	return nil, nil, nil
}

// LoadExplicit loads exactly the config file at path, bypassing discovery —
// the -f/--file override of spec.md §4.3.
func LoadExplicit(path string) (*ConfigFile, error) {
	abs, err := ExplicitPath(path)
	if err != nil {
		return nil, err
	}
	return Load(abs)
}
