package cliapp

import (
	"regexp"

	"github.com/adrianmrit/yamis-go/dsl"
)

// kwargRegex matches a "-name=value"/"--name=value"/"name=value" argument:
// at most two leading dashes, a name starting with a letter, then "=value".
var kwargRegex = regexp.MustCompile(`^-{0,2}([A-Za-z][A-Za-z0-9_-]*)=([\s\S]*)$`)

// ingestArgs builds the argument map a task renders against: every raw
// argument is appended to "*" in order, and any "-name=value"/"name=value"
// argument additionally appends value under key name.
func ingestArgs(taskArgs []string) dsl.ArgMap {
	args := dsl.ArgMap{"*": append([]string{}, taskArgs...)}
	for _, a := range taskArgs {
		m := kwargRegex.FindStringSubmatch(a)
		if m == nil {
			continue
		}
		key, val := m[1], m[2]
		args[key] = append(args[key], val)
	}
	return args
}
