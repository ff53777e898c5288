package dsl

import "fmt"

// formatString implements the %s/%% placeholder format used by map/flat.
// %% is a literal %; each %s consumes the next value in order.
func formatString(fmtStr string, vars []string) (string, error) {
	r := []rune(fmtStr)
	var out []rune
	vi := 0
	for i := 0; i < len(r); i++ {
		c := r[i]
		if c != '%' {
			out = append(out, c)
			continue
		}
		if i+1 >= len(r) {
			return "", &ParseError{Pos: posAt(r, i), Expected: "EOI, literal, or %s"}
		}
		switch r[i+1] {
		case '%':
			out = append(out, '%')
			i++
		case 's':
			if vi >= len(vars) {
				return "", fmt.Errorf("not enough variables")
			}
			out = append(out, []rune(vars[vi])...)
			vi++
			i++
		default:
			return "", &ParseError{Pos: posAt(r, i), Expected: "EOI, literal, or %s"}
		}
	}
	return string(out), nil
}
