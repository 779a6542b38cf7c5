// Package flagx helps several components read their own flags from the same
// command line without tripping over each other's.
package flagx

import (
	"flag"
	"io"
	"os"
	"strings"
)

// FilterArgs keeps only the allowed flags from args, together with their
// values. Both "-c conf.json" and "-c=conf.json" forms are recognised; a
// following argument that starts with "-" is not taken as a value.
func FilterArgs(args []string, allowedFlags []string) []string {
	allowed := make(map[string]struct{}, len(allowedFlags))
	for _, f := range allowedFlags {
		allowed[f] = struct{}{}
	}

	filtered := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]

		if name, _, ok := strings.Cut(arg, "="); ok && strings.HasPrefix(arg, "-") {
			if _, ok := allowed[name]; ok {
				filtered = append(filtered, arg)
			}
			continue
		}

		if _, ok := allowed[arg]; ok {
			filtered = append(filtered, arg)
			if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				filtered = append(filtered, args[i+1])
				i++
			}
		}
	}
	return filtered
}

// lookup parses a single string flag known under several names.
func lookup(names []string, def, usage string) string {
	allowed := make([]string, 0, len(names))
	for _, n := range names {
		allowed = append(allowed, "-"+n)
	}

	val := def
	fs := flag.NewFlagSet(names[0], flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	for _, n := range names {
		fs.StringVar(&val, n, def, usage)
	}
	_ = fs.Parse(FilterArgs(os.Args[1:], allowed))
	return val
}

// ConfigFile returns the JSON config path given with -c or -config, or "".
func ConfigFile() string {
	return lookup([]string{"config", "c"}, "", "path to JSON config file")
}

// EnvFile returns the dotenv path given with -e or -env, defaulting to
// ".env" in the working directory.
func EnvFile() string {
	return lookup([]string{"env", "e"}, ".env", "path to dotenv file")
}
