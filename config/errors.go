package config

import "fmt"

// Error reports a problem with a specific config file: a bad extension, a
// deserialization failure, or a malformed env_file.
type Error struct {
	Path   string
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("Bad config file `%s`:\n    %s", e.Path, e.Reason)
}
