package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/toyz/implementor/internal/cli"
	"github.com/toyz/implementor/internal/server"
	"github.com/toyz/implementor/internal/utils"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[0], os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

type options struct {
	jar           bool
	sourcepath    string
	out           string
	config        string
	javac         string
	classpath     string
	release       string
	keepWorkspace bool
	verbose       bool
	quiet         bool
	serve         string
	help          bool
}

func run(ctx context.Context, program string, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet(program, flag.ContinueOnError)
	fs.SetOutput(stderr)

	var opts options
	fs.BoolVar(&opts.jar, "jar", false, "Compile the implementation and package it into <output.jar>")
	fs.StringVar(&opts.sourcepath, "sourcepath", "", "Roots searched for interface sources, separated by the OS path list separator (default \".\")")
	fs.StringVar(&opts.out, "out", "", "Destination root for the generated source (default: a directory named after the package)")
	fs.StringVar(&opts.config, "config", "", "Config file (default: "+cli.DefaultConfigFile+" if present)")
	fs.StringVar(&opts.javac, "javac", "", "javac executable (default: JAVA_HOME/bin/javac, then PATH)")
	fs.StringVar(&opts.classpath, "classpath", "", "Extra classpath entries for compilation")
	fs.StringVar(&opts.release, "release", "", "Java release passed to javac as --release")
	fs.BoolVar(&opts.keepWorkspace, "keep-workspace", false, "Keep the compilation workspace after a successful build")
	fs.BoolVar(&opts.verbose, "verbose", false, "Enable verbose output and detailed error reporting")
	fs.BoolVar(&opts.quiet, "quiet", false, "Only show errors")
	fs.StringVar(&opts.serve, "serve", "", "Serve the HTTP API on this address instead of running once")
	fs.BoolVar(&opts.help, "help", false, "Show help information")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage:\n")
		fmt.Fprintf(stderr, "  %s [options] <interface name>\n", program)
		fmt.Fprintf(stderr, "  %s [options] -jar <interface name> <output.jar>\n", program)
		fmt.Fprintf(stderr, "  %s [options] -serve <addr>\n\n", program)
		fmt.Fprintf(stderr, "Java Interface Implementor\n")
		fmt.Fprintf(stderr, "Generates <Name>Impl classes whose methods return default values.\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  %s com.example.Greeter                             # writes com.example/com/example/GreeterImpl.java\n", program)
		fmt.Fprintf(stderr, "  %s -sourcepath src -out gen com.example.Greeter    # writes gen/com/example/GreeterImpl.java\n", program)
		fmt.Fprintf(stderr, "  %s -jar com.example.Greeter greeter.jar            # compiles and packages GreeterImpl\n", program)
		fmt.Fprintf(stderr, "  %s -serve :8080                                     # serves POST /v1/implement\n", program)
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}
	if opts.help {
		fs.Usage()
		return exitOK
	}

	positional := fs.Args()
	if !argumentsValid(opts, positional) {
		fmt.Fprintf(stderr, "Error: expected <interface name>, or -jar <interface name> <output.jar>\n\n")
		fs.Usage()
		return exitUsage
	}

	reporter := cli.NewDiagnosticReporterTo(stderr, opts.verbose)

	cfg, err := cli.LoadConfig(opts.config)
	if err != nil {
		reporter.ReportError(err)
		return exitFailure
	}
	applyFlags(fs, opts, cfg)

	diagnostics := newDiagnostics(cfg)
	diagnostics.SetOutput(stdout, stderr)

	runner, err := cli.NewRunner(cfg, diagnostics)
	if err != nil {
		reporter.ReportError(err)
		return exitFailure
	}

	if opts.serve != "" {
		srv := server.New(server.Options{
			Addr:         cfg.Server.Addr,
			MaxBodyBytes: cfg.Server.MaxBodyBytes,
			Implementor:  runner.Implementor(),
			Diagnostics:  diagnostics,
		})
		if err := srv.Start(ctx); err != nil {
			reporter.ReportError(err)
			return exitFailure
		}
		return exitOK
	}

	if cfg.Verbose {
		diagnostics.Section("Java Interface Implementor")
		diagnostics.Subsection("Configuration")
		diagnostics.Indent()
		diagnostics.List("Source path: %s", strings.Join(cfg.Sourcepath, ", "))
		if len(cfg.Classpath) > 0 {
			diagnostics.List("Extra classpath: %s", strings.Join(cfg.Classpath, ", "))
		}
		if cfg.Release != "" {
			diagnostics.List("Release: %s", cfg.Release)
		}
		diagnostics.Unindent()
	}

	var summary *cli.Summary
	if opts.jar {
		summary, err = runner.ImplementJar(ctx, positional[0], positional[1])
	} else {
		summary, err = runner.Implement(positional[0])
	}
	if err != nil {
		reporter.ReportError(err)
		return exitFailure
	}

	diagnostics.Summary("Implementation Complete!", summary.Stats())
	diagnostics.Success("%s is ready", summary.Output)
	return exitOK
}

// argumentsValid accepts exactly one interface name, -jar with a name and an
// archive, or -serve with no positional arguments
func argumentsValid(opts options, positional []string) bool {
	switch {
	case opts.serve != "":
		return !opts.jar && len(positional) == 0
	case opts.jar:
		return len(positional) == 2
	default:
		return len(positional) == 1
	}
}

// applyFlags overrides config values with the flags given on the command line
func applyFlags(fs *flag.FlagSet, opts options, cfg *cli.Config) {
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "sourcepath":
			cfg.Sourcepath = cli.SplitPathList(opts.sourcepath)
		case "classpath":
			cfg.Classpath = cli.SplitPathList(opts.classpath)
		case "javac":
			cfg.Javac = opts.javac
		case "release":
			cfg.Release = cli.Release(opts.release)
		case "keep-workspace":
			cfg.KeepWorkspace = opts.keepWorkspace
		case "out":
			cfg.Out = opts.out
		case "serve":
			cfg.Server.Addr = opts.serve
		}
	})
	cfg.Verbose = opts.verbose
	cfg.Quiet = opts.quiet
}

func newDiagnostics(cfg *cli.Config) *utils.DiagnosticSystem {
	switch {
	case cfg.Quiet:
		return utils.NewQuietDiagnostics()
	case cfg.Verbose:
		return utils.NewVerboseDiagnostics()
	default:
		return utils.NewDiagnosticSystem(utils.DiagnosticInfo)
	}
}
