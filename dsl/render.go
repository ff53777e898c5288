package dsl

import "fmt"

// RenderScript renders a whole template as a single string, the way a
// task's shell script body is rendered before being handed to an
// interpreter. A tag whose value is absent (because of a trailing `?`)
// contributes nothing; any other tag contributes its rendered, quoted
// value.
func RenderScript(template string, args ArgMap, env map[string]string, mode EscapeMode) (string, error) {
	nodes, err := parseTemplate(template)
	if err != nil {
		return "", err
	}
	var out string
	for _, n := range nodes {
		if n.kind == nodeLiteral {
			out += n.literal
			continue
		}
		v, missing, err := evalExpression(n.tag, args, env)
		if err != nil {
			return "", err
		}
		if missing {
			continue
		}
		out += renderScriptPiece(v, mode)
	}
	return out, nil
}

// RenderParam renders a single program-argument template: at most one
// prefix literal, one tag, and one suffix literal. If the tag's value is a
// vector, the prefix and suffix wrap each element independently, producing
// one argv entry per element. A tag whose value is absent contributes zero
// entries; a pure literal always contributes exactly one entry.
func RenderParam(template string, args ArgMap, env map[string]string) ([]string, error) {
	nodes, err := parseTemplate(template)
	if err != nil {
		return nil, err
	}

	var prefix, suffix string
	var tagNode *expr
	seenTag := false
	for _, n := range nodes {
		if n.kind == nodeLiteral {
			if !seenTag {
				prefix += n.literal
			} else {
				suffix += n.literal
			}
			continue
		}
		if seenTag {
			return nil, fmt.Errorf("more than one tag in a param template: %q", template)
		}
		tagNode = n.tag
		seenTag = true
	}

	if tagNode == nil {
		return []string{prefix}, nil
	}

	v, missing, err := evalExpression(tagNode, args, env)
	if err != nil {
		return nil, err
	}
	if missing {
		return nil, nil
	}
	if v.Kind == KindString {
		return []string{prefix + v.Str + suffix}, nil
	}
	out := make([]string, len(v.Vec))
	for i, s := range v.Vec {
		out[i] = prefix + s + suffix
	}
	return out, nil
}

// RenderParams renders a whole argv template list (a program task's `args`)
// into the final argv, flattening each param's zero-or-more entries in order.
func RenderParams(params []string, args ArgMap, env map[string]string) ([]string, error) {
	var out []string
	for _, p := range params {
		entries, err := RenderParam(p, args, env)
		if err != nil {
			return nil, err
		}
		out = append(out, entries...)
	}
	return out, nil
}
