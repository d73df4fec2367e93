// Package flagx contains helpers for parsing a subset of the command line
// without tripping over flags that belong to other components.
package flagx

import "strings"

// FilterArgs returns the subset of args made up of the allowed flags and
// their values, in original order.
//
// Supported forms:
//  1. flag and value as separate arguments:  -c conf.json
//  2. flag and value combined with '=':      --config=conf.json
//
// A flag followed by something that itself starts with '-' is treated as
// a bare (boolean) flag.
func FilterArgs(args []string, allowedFlags []string) []string {
	allowed := make(map[string]bool, len(allowedFlags))
	for _, name := range allowedFlags {
		allowed[name] = true
	}

	kept := []string{}
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, "-") {
			continue
		}

		if name, _, hasValue := strings.Cut(arg, "="); hasValue {
			if allowed[name] {
				kept = append(kept, arg)
			}
			continue
		}

		if !allowed[arg] {
			continue
		}
		kept = append(kept, arg)
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			i++
			kept = append(kept, args[i])
		}
	}
	return kept
}
