// Package logging configures glog for the CLI.
//
// The TUI owns the terminal, so logs go to files under ~/.uplyft/logs and
// never to stderr. glog's flags stay on the standard flag set and are driven
// from config instead of the command line.
package logging

import (
	"flag"
	"fmt"
	"os"

	"github.com/golang/glog"
)

// Options controls where and how much glog writes
type Options struct {
	Dir     string
	Verbose bool
}

// Setup points glog at opts.Dir and sets the verbosity level.
// Verbose enables V(1) diagnostics such as exchange failure causes.
func Setup(opts Options) error {
	if opts.Dir != "" {
		if err := os.MkdirAll(opts.Dir, 0o700); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
	}

	settings := map[string]string{
		"logtostderr":     "false",
		"alsologtostderr": "false",
		"stderrthreshold": "FATAL",
		"v":               "0",
	}
	if opts.Dir != "" {
		settings["log_dir"] = opts.Dir
	}
	if opts.Verbose {
		settings["v"] = "1"
	}

	for name, value := range settings {
		if flag.Lookup(name) == nil {
			continue
		}
		if err := flag.Set(name, value); err != nil {
			return fmt.Errorf("failed to set log flag %s: %w", name, err)
		}
	}

	if !flag.Parsed() {
		if err := flag.CommandLine.Parse(nil); err != nil {
			return fmt.Errorf("failed to parse log flags: %w", err)
		}
	}

	glog.V(1).Infof("logging: dir=%s verbose=%v", opts.Dir, opts.Verbose)
	return nil
}

// Flush writes buffered log lines to disk
func Flush() {
	glog.Flush()
}
