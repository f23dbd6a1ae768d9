// Command qjuliamesh is the CLI entry point: it reads a configuration
// file, runs the sample -> sculpt -> polygonise -> write pipeline, and
// writes the resulting isosurface to a binary STL file.
package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/sjhalayka-port/qjuliamesh/config"
	"github.com/sjhalayka-port/qjuliamesh/pipeline"
)

const versionNumber = "2.0"

func main() {
	os.Exit(run(os.Args))
}

func run(args []string) int {
	fmt.Printf("Quaternion Julia set isosurface extractor v%s\n", versionNumber)

	configPath, stlPath, forceCPU, ok := parseArgs(args)
	if !ok {
		fmt.Printf("Example usage: %s config.txt fractal.stl [-cpu]\n", progName(args))
		return 0
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Error reading %s -- try using the following sample configuration file:\n", configPath)
		fmt.Println(config.Sample)
		return 1
	}

	fmt.Print(cfg.String())

	opts := pipeline.Options{ForceCPU: forceCPU}
	result, err := runPipeline(cfg, opts, stlPath)
	if err != nil {
		if isOutOfMemory(err) {
			fmt.Println("Error: not enough memory. Aborting.")
			return 2
		}
		var pErr *pipeline.Error
		if errors.As(err, &pErr) && pErr.Stage == "compile" {
			// An unparseable equation is a configuration error (spec
			// exit code 1), not a generation failure, even though it is
			// only discovered once the pipeline starts running.
			fmt.Printf("%v\n", pErr.Err)
			return 1
		}
		fmt.Printf("Error: %v\n", err)
		return 2
	}

	fmt.Println(result.Status)
	return 0
}

// runPipeline recovers a panic from an oversized allocation (a resolution
// high enough to exhaust memory in Sample/Polygonise/mesh.Insert) and
// reports it as an error instead of letting the process crash with a
// bare stack trace.
func runPipeline(cfg *config.Config, opts pipeline.Options, stlPath string) (result *pipeline.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("cannot allocate memory: %v", r)
		}
	}()
	return pipeline.Run(cfg, opts, stlPath)
}

func progName(args []string) string {
	if len(args) == 0 {
		return "qjuliamesh"
	}
	return args[0]
}

// parseArgs expects exactly a config path and an STL path, with an
// optional trailing -cpu, /cpu or cpu switch (matched
// case-insensitively).
func parseArgs(args []string) (configPath, stlPath string, forceCPU, ok bool) {
	switch len(args) {
	case 3:
		return args[1], args[2], false, true
	case 4:
		last := strings.ToLower(args[3])
		if last == "-cpu" || last == "/cpu" || last == "cpu" {
			return args[1], args[2], true, true
		}
		return "", "", false, false
	default:
		return "", "", false, false
	}
}

// isOutOfMemory reports whether err looks like a failed allocation. Go
// has no recoverable allocation-failure exception, so this only catches
// what the runtime lets us observe before a true OOM panics past
// recover.
func isOutOfMemory(err error) bool {
	return strings.Contains(err.Error(), "cannot allocate memory") ||
		strings.Contains(err.Error(), "out of memory")
}
