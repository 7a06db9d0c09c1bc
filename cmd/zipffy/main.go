// zipffy counts the words of a text file to show their Zipf's law
// distribution.
//
// usage: zipffy afile.txt [-d] [-config zipffy.yaml] [-no-color] [-histogram]
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"regexp"

	"github.com/golang/glog"
	"github.com/gookit/color"
	"golang.org/x/term"

	"github.com/hblkr/zipffy/packages/zipffy"
)

// quick and dirty check: the name ends in .txt, the content is not inspected
var textFileRegex = regexp.MustCompile(`\.txt$`)

type options struct {
	path          string
	ignored       []string // extra positional arguments
	debug         bool
	configPath    string
	noColor       bool
	histogram     bool
	maxLineLength int
	maxWordLength int
	set           map[string]bool // flags given explicitly on the command line
}

func main() {
	configureGlog(flag.CommandLine)

	opts, err := parseArgs(flag.CommandLine, os.Args[1:])
	if err != nil {
		printError(os.Stderr, err, useColor(os.Stderr))
		os.Exit(exitCode(err))
	}

	code := run(opts, os.Stdout, os.Stderr)
	glog.Flush()
	os.Exit(code)
}

// parseArgs accepts flags both before and after the file path, so that the
// historical form "zipffy afile.txt -d" keeps working
func parseArgs(fs *flag.FlagSet, args []string) (*options, error) {
	opts := &options{set: make(map[string]bool)}
	fs.BoolVar(&opts.debug, "d", false, "print a per-line and per-word trace")
	fs.StringVar(&opts.configPath, "config", "", "YAML configuration file")
	fs.BoolVar(&opts.noColor, "no-color", false, "disable colored output")
	fs.BoolVar(&opts.histogram, "histogram", false, "draw a +++ bar per word")
	fs.IntVar(&opts.maxLineLength, "max-line-length", zipffy.DefaultMaxLineLength, "longest accepted input line in bytes")
	fs.IntVar(&opts.maxWordLength, "max-word-length", zipffy.DefaultMaxWordLength, "longest word in bytes, longer words are truncated")

	var positional []string
	rest := args
	for {
		if err := fs.Parse(rest); err != nil {
			return nil, usageError(err.Error())
		}
		consumed := len(rest) - len(fs.Args())
		terminated := consumed > 0 && rest[consumed-1] == "--"
		rest = fs.Args()
		if terminated {
			// everything after "--" is positional
			positional = append(positional, rest...)
			break
		}
		if len(rest) == 0 {
			break
		}
		positional = append(positional, rest[0])
		rest = rest[1:]
	}
	fs.Visit(func(f *flag.Flag) {
		opts.set[f.Name] = true
	})

	if len(positional) == 0 {
		return nil, usageError("usage: zipffy afile.txt")
	}
	opts.path = positional[0]
	opts.ignored = positional[1:]

	if !textFileRegex.MatchString(opts.path) {
		return nil, usageError("file does not appear to be a text file, please pass in a text file")
	}
	return opts, nil
}

func usageError(message string) error {
	return zipffy.NewZipfError(zipffy.ErrorCodeUsage, message)
}

// configureGlog sends glog output to stderr instead of log files. it runs
// before parsing so an explicit -logtostderr=false still wins.
func configureGlog(fs *flag.FlagSet) {
	fs.Set("logtostderr", "true")
}

// buildConfig loads the optional config file and applies explicit flags on
// top of it. without a config file, color follows the terminal.
func buildConfig(opts *options, stdout io.Writer) (*zipffy.Config, error) {
	cfg := zipffy.DefaultConfig()
	if opts.configPath != "" {
		loaded, err := zipffy.LoadConfig(opts.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else {
		cfg.Color = true
	}

	if opts.debug {
		cfg.Verbose = true
	}
	if opts.noColor || !useColor(stdout) {
		cfg.Color = false
	}
	if opts.histogram {
		cfg.Histogram = true
	}
	if opts.set["max-line-length"] {
		cfg.MaxLineLength = opts.maxLineLength
	}
	if opts.set["max-word-length"] {
		cfg.MaxWordLength = opts.maxWordLength
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func run(opts *options, stdout, stderr io.Writer) int {
	errColor := !opts.noColor && useColor(stderr)

	cfg, err := buildConfig(opts, stdout)
	if err != nil {
		printError(stderr, err, errColor)
		return exitCode(err)
	}

	// the banner goes with the trace so stdout only ever holds the report
	if cfg.Verbose {
		fmt.Fprintln(stderr, "+++++++++++++++++++++++++++++++++++++++")
		fmt.Fprintln(stderr, "+            [DEBUGGING ON]           +")
		fmt.Fprintln(stderr, "+++++++++++++++++++++++++++++++++++++++")
		fmt.Fprintln(stderr)
	}
	for _, arg := range opts.ignored {
		glog.Warningf("ignoring extra argument %q", arg)
	}

	result, err := zipffy.CountFile(opts.path, cfg)
	if err != nil {
		if cfg.Verbose {
			glog.Errorf("counting %s failed: %v", opts.path, err)
		}
		printError(stderr, err, errColor)
		return exitCode(err)
	}

	report := zipffy.BuildResultReport(result)
	err = report.Write(stdout, zipffy.ReportOptions{
		Color:     cfg.Color,
		Histogram: cfg.Histogram,
	})
	if err != nil {
		if cfg.Verbose {
			glog.Errorf("writing report failed: %v", err)
		}
		printError(stderr, err, errColor)
		return 1
	}
	return 0
}

func printError(w io.Writer, err error, colored bool) {
	label := "ERROR:"
	if colored {
		label = color.FgRed.Render(label)
	}
	fmt.Fprintf(w, "%s %v\n", label, err)
}

// useColor reports whether w is a terminal that understands color codes
func useColor(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return false
	}
	return color.SupportColor()
}

// exitCode maps usage and configuration problems to 2 and every other
// fatal error to 1
func exitCode(err error) int {
	switch zipffy.CodeOf(err) {
	case zipffy.ErrorCodeUsage, zipffy.ErrorCodeInvalidConfig:
		return 2
	default:
		return 1
	}
}
