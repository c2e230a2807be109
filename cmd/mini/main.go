// Command mini runs Mini scripts.
//
// Usage:
//
//	mini run [file|target]   execute a script file or a manifest target
//	mini version             print the CLI version
//
// With no argument, `mini run` looks for a script.yml in the current
// directory (or a parent) and executes its default target.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"fortio.org/log"

	"mini/interpreter-go/pkg/driver"
	"mini/interpreter-go/pkg/interpreter"
	"mini/interpreter-go/pkg/parser"
)

const cliToolVersion = "mini-cli 0.1.0-dev"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	args = applyVerbosity(args)
	if len(args) == 0 {
		printUsage(stderr)
		return 1
	}

	switch args[0] {
	case "--help", "-h", "help":
		printUsage(stdout)
		return 0
	case "--version", "-V", "version":
		fmt.Fprintln(stdout, cliToolVersion)
		return 0
	case "run":
		return runEntry(args[1:], stdout, stderr)
	default:
		return runEntry(args, stdout, stderr)
	}
}

// applyVerbosity strips -verbose from the argument list and raises the log
// level when it is present.
func applyVerbosity(args []string) []string {
	out := args[:0:0]
	for _, arg := range args {
		if arg == "-verbose" || arg == "--verbose" {
			log.SetLogLevel(log.Verbose)
			continue
		}
		out = append(out, arg)
	}
	return out
}

func runEntry(args []string, stdout, stderr io.Writer) int {
	if len(args) > 1 {
		fmt.Fprintf(stderr, "unexpected arguments: %s\n", strings.Join(args[1:], " "))
		return 1
	}

	if len(args) == 0 {
		manifest, err := loadManifestFrom(".")
		if err != nil {
			if errors.Is(err, driver.ErrManifestNotFound) {
				fmt.Fprintln(stderr, "mini run requires a script file or a manifest target (script.yml not found)")
			} else {
				fmt.Fprintf(stderr, "failed to load manifest: %v\n", err)
			}
			return 1
		}
		target, err := manifest.DefaultTarget()
		if err != nil {
			fmt.Fprintf(stderr, "manifest error: %v\n", err)
			return 1
		}
		entryPath, err := manifest.ResolveMain(target)
		if err != nil {
			fmt.Fprintf(stderr, "failed to resolve target entrypoint: %v\n", err)
			return 1
		}
		return executeEntry(entryPath, stdout, stderr)
	}

	candidate := args[0]

	// A bare name may be a manifest target; a path is always a script file.
	if manifest, err := loadManifestFrom("."); err == nil {
		if target, ok := manifest.FindTarget(candidate); ok {
			entryPath, err := manifest.ResolveMain(target)
			if err != nil {
				fmt.Fprintf(stderr, "failed to resolve target %q: %v\n", target.OriginalName, err)
				return 1
			}
			return executeEntry(entryPath, stdout, stderr)
		}
	} else if !errors.Is(err, driver.ErrManifestNotFound) {
		fmt.Fprintf(stderr, "failed to load manifest: %v\n", err)
		return 1
	}

	return executeEntry(candidate, stdout, stderr)
}

func loadManifestFrom(dir string) (*driver.Manifest, error) {
	manifestPath, err := driver.FindManifest(dir)
	if err != nil {
		return nil, err
	}
	return driver.LoadManifest(manifestPath)
}

func executeEntry(entry string, stdout, stderr io.Writer) int {
	source, err := os.ReadFile(entry)
	if err != nil {
		fmt.Fprintf(stderr, "failed to read %s: %v\n", entry, err)
		return 1
	}
	log.LogVf("running %s", filepath.Clean(entry))

	statements, err := parser.Parse(string(source))
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", entry, err)
		return 1
	}

	interp := interpreter.NewWithOutput(stdout)
	if err := interp.EvaluateProgram(statements); err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", entry, err)
		return 1
	}
	return 0
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "usage: mini [-verbose] <command>")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "commands:")
	fmt.Fprintln(w, "  run [file|target]   execute a script file or a script.yml target")
	fmt.Fprintln(w, "  version             print the CLI version")
	fmt.Fprintln(w, "  help                show this message")
}
