// File: argv.go
// Title: Argument Vector Shaping
// Description: Turns the joined argument text produced by the tokenizer
//              grammar into the structured argument vector consumed by the
//              execution runtime: positional arguments plus flag options.
//              Parsing is pure and total; malformed input degrades to
//              positional arguments instead of failing.
// Author: msto63
// Version: v0.1.0
// Created: 2025-02-08
// Modified: 2025-02-08

package argv

import "strings"

// Shape is the structured argument vector of one command invocation
type Shape struct {
	// Raw is the joined argument text the shape was derived from
	Raw string

	// Args holds the positional arguments in input order
	Args []string

	// Options holds flag arguments. "--key=value" maps key to value,
	// "--flag" maps flag to "true", "-abc" maps a, b and c to "true".
	Options map[string]string
}

// Parse splits raw into the argument-vector shape. It never fails: every
// input, including the empty string, yields a valid Shape.
func Parse(raw string) Shape {
	shape := Shape{
		Raw:     raw,
		Options: make(map[string]string),
	}

	fields := strings.Fields(raw)
	positionalOnly := false

	for _, field := range fields {
		switch {
		case positionalOnly:
			shape.Args = append(shape.Args, field)

		case field == "--":
			// Everything after a bare "--" is positional.
			positionalOnly = true

		case strings.HasPrefix(field, "--"):
			name := field[2:]
			if name == "" {
				shape.Args = append(shape.Args, field)
				continue
			}
			if idx := strings.IndexByte(name, '='); idx >= 0 {
				shape.Options[name[:idx]] = name[idx+1:]
			} else {
				shape.Options[name] = "true"
			}

		case len(field) > 1 && field[0] == '-' && !isNumeric(field[1:]):
			for _, r := range field[1:] {
				shape.Options[string(r)] = "true"
			}

		default:
			shape.Args = append(shape.Args, field)
		}
	}

	return shape
}

// isNumeric reports whether s looks like a number, so negative numbers
// are kept as positional arguments rather than treated as flag bundles
func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if (r < '0' || r > '9') && r != '.' {
			return false
		}
	}
	return true
}
