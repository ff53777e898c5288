package dsl

import "fmt"

// Function is the signature every DSL function must implement.
type Function func(args []Value) (Value, error)

var registry = map[string]Function{
	"map":  mapFunc,
	"flat": flatFunc,
}

func lookupFunction(name string) (Function, bool) {
	fn, ok := registry[name]
	return fn, ok
}

// RegisterFunction adds or replaces a function in the default registry.
// Intended for embedders that want to extend the template language; tasks
// shipped with a config file can only call what's registered here.
func RegisterFunction(name string, fn Function) {
	registry[name] = fn
}

func mapFunc(args []Value) (Value, error) {
	if len(args) != 2 {
		return Value{}, fmt.Errorf("map takes exactly two arguments")
	}
	if args[0].Kind != KindString {
		return Value{}, fmt.Errorf("the first argument of map should be a string")
	}
	fmtStr := args[0].Str
	switch args[1].Kind {
	case KindString:
		out, err := formatString(fmtStr, []string{args[1].Str})
		if err != nil {
			return Value{}, err
		}
		return String(out), nil
	default:
		out := make([]string, len(args[1].Vec))
		for i, v := range args[1].Vec {
			s, err := formatString(fmtStr, []string{v})
			if err != nil {
				return Value{}, err
			}
			out[i] = s
		}
		return Vector(out), nil
	}
}

func flatFunc(args []Value) (Value, error) {
	if len(args) != 2 {
		return Value{}, fmt.Errorf("flat takes exactly two arguments")
	}
	if args[0].Kind != KindString {
		return Value{}, fmt.Errorf("the first argument of flat should be a string")
	}
	fmtStr := args[0].Str
	switch args[1].Kind {
	case KindString:
		out, err := formatString(fmtStr, []string{args[1].Str})
		if err != nil {
			return Value{}, err
		}
		return String(out), nil
	default:
		var out string
		for _, v := range args[1].Vec {
			s, err := formatString(fmtStr, []string{v})
			if err != nil {
				return Value{}, err
			}
			out += s
		}
		return String(out), nil
	}
}
