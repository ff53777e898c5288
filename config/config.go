// Package config discovers, loads, and caches yamis config files: the
// ancestor-walk/global-fallback discovery rules of spec.md §4.3, YAML/TOML
// deserialization, env_file merging, and delegating task resolution to
// package task.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/adrianmrit/yamis-go/task"
)

// ConfigFile is a single loaded, resolved config file: tasks have already
// been OS-flattened and inheritance-resolved by the time Load returns one.
type ConfigFile struct {
	Path string `yaml:"-" toml:"-"`

	WD      string            `yaml:"wd,omitempty" toml:"wd,omitempty"`
	Env     map[string]string `yaml:"env,omitempty" toml:"env,omitempty"`
	EnvFile string            `yaml:"env_file,omitempty" toml:"env_file,omitempty"`
	Tasks   map[string]*task.Task `yaml:"tasks,omitempty" toml:"tasks,omitempty"`
}

// Directory returns the directory the config file lives in; relative paths
// in the file (wd, env_file) resolve against it.
func (c *ConfigFile) Directory() string {
	return filepath.Dir(c.Path)
}

// WorkingDirectory returns the config-level working directory as an
// absolute path, if set.
func (c *ConfigFile) WorkingDirectory() (string, bool) {
	if c.WD == "" {
		return "", false
	}
	return resolveRelative(c.Directory(), c.WD), true
}

func resolveRelative(base, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}

var (
	cacheMu sync.Mutex
	cache   = map[string]*ConfigFile{}
)

// Load reads, deserializes, and resolves the config file at path, caching
// the result by absolute path for the life of the process. A single mutex
// guards the cache; the file itself is read and resolved outside the lock,
// which spec.md §5 permits since the runner never loads two configs at once.
func Load(path string) (*ConfigFile, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	cacheMu.Lock()
	if cf, ok := cache[abs]; ok {
		cacheMu.Unlock()
		return cf, nil
	}
	cacheMu.Unlock()

	cf, err := load(abs)
	if err != nil {
		return nil, err
	}

	cacheMu.Lock()
	cache[abs] = cf
	cacheMu.Unlock()
	return cf, nil
}

// ClearCache empties the process-wide config cache. Used by tests that load
// the same path more than once with different contents.
func ClearCache() {
	cacheMu.Lock()
	cache = map[string]*ConfigFile{}
	cacheMu.Unlock()
}

func load(path string) (*ConfigFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{Path: path, Reason: err.Error()}
	}

	cf, err := decode(path, data)
	if err != nil {
		return nil, err
	}
	cf.Path = path

	if err := mergeEnvFile(cf); err != nil {
		return nil, err
	}

	rawTasks := make(map[string]*task.Task, len(cf.Tasks))
	for name, t := range cf.Tasks {
		rawTasks[name] = t
	}
	resolved, err := task.Resolve(rawTasks)
	if err != nil {
		return nil, err
	}
	cf.Tasks = resolved

	return cf, nil
}

func decode(path string, data []byte) (*ConfigFile, error) {
	cf := &ConfigFile{}
	switch filepath.Ext(path) {
	case ".yml", ".yaml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cf); err != nil {
			return nil, &Error{Path: path, Reason: err.Error()}
		}
	case ".toml":
		md, err := toml.Decode(string(data), cf)
		if err != nil {
			return nil, &Error{Path: path, Reason: err.Error()}
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, &Error{Path: path, Reason: fmt.Sprintf("unknown field `%s`", undecoded[0].String())}
		}
	default:
		return nil, &Error{Path: path, Reason: "Extension must be either `.toml`, `.yaml` or `.yml`"}
	}
	return cf, nil
}

// mergeEnvFile reads cf.EnvFile, if set, and merges it into cf.Env with
// entries already present in cf.Env winning over the file's values.
func mergeEnvFile(cf *ConfigFile) error {
	if cf.EnvFile == "" {
		return nil
	}
	path := resolveRelative(cf.Directory(), cf.EnvFile)
	fromFile, err := godotenv.Read(path)
	if err != nil {
		return &Error{Path: cf.Path, Reason: fmt.Sprintf("failed to read env file at %s: %s", path, err)}
	}
	if cf.Env == nil {
		cf.Env = make(map[string]string, len(fromFile))
	}
	for k, v := range fromFile {
		if _, ok := cf.Env[k]; !ok {
			cf.Env[k] = v
		}
	}
	return nil
}
