// Package main provides the CLI entrypoint for derive-generator.
//
// derive-generator reads "//derive:" directives and derive struct tags from
// Go packages and writes one file per package with the requested methods:
// construction, representation, sequence views, comparison, hashing,
// reflection descriptors, operators and conversions.
//
// Usage:
//
//	derive-generator [gen|check|resolve|features] [flags] [patterns]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"slices"
	"strings"

	"github.com/davecgh/go-spew/spew"

	"derive-generator/internal/analyze"
	"derive-generator/internal/config"
	"derive-generator/internal/diagnostic"
	"derive-generator/internal/gen"
	"derive-generator/internal/plan"
)

// Exit codes.
const (
	exitOK    = 0
	exitFail  = 1
	exitUsage = 2
)

type command struct {
	name    string
	summary string
	run     func(a *app, ctx context.Context) int
}

var commands = []command{
	{name: "gen", summary: "generate derive files (default)", run: (*app).gen},
	{name: "check", summary: "report problems and out-of-date files without writing", run: (*app).check},
	{name: "resolve", summary: "print the resolved plan", run: (*app).resolve},
	{name: "features", summary: "list features and bundles", run: (*app).features},
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)

	stop()
	os.Exit(code)
}

// app is the state of one CLI invocation.
type app struct {
	stdout   io.Writer
	stderr   io.Writer
	logger   *slog.Logger
	file     *config.File
	cfg      gen.GeneratorConfig
	patterns []string
	format   plan.Format
	watch    bool
	debug    bool
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := commands[0]

	if len(args) > 0 {
		if i := slices.IndexFunc(commands, func(c command) bool { return c.name == args[0] }); i >= 0 {
			cmd = commands[i]
			args = args[1:]
		} else if args[0] == "help" {
			usage(stdout)

			return exitOK
		}
	}

	a, code := parseFlags(cmd.name, args, stderr)
	if a == nil {
		return code
	}

	a.stdout = stdout

	return cmd.run(a, ctx)
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "derive-generator - generate methods from //derive: directives")
	fmt.Fprintln(w, "\nUsage:\n  derive-generator [command] [flags] [patterns]\n\nCommands:")

	for _, c := range commands {
		fmt.Fprintf(w, "  %-9s %s\n", c.name, c.summary)
	}

	fmt.Fprintln(w, "\nRun 'derive-generator <command> -h' for flags.")
}

func parseFlags(name string, args []string, stderr io.Writer) (*app, int) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)

	configPath := fs.String("config", "", "config file (default "+config.DefaultFile+" when present)")
	output := fs.String("output", "", "generated filename in each package directory")
	workers := fs.Int("workers", 0, "packages generated in parallel")
	format := fs.String("format", string(plan.FormatYAML), "plan format for resolve: yaml or json")
	watch := fs.Bool("watch", false, "regenerate when package sources change")
	debug := fs.Bool("debug", false, "dump the resolved plan to stderr")
	verbose := fs.Bool("v", false, "verbose logging")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, exitOK
		}

		return nil, exitUsage
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}

	a := &app{
		stderr: stderr,
		logger: slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})),
		watch:  *watch,
		debug:  *debug,
	}

	f, err := plan.ParseFormat(*format)
	if err != nil {
		fmt.Fprintln(stderr, err)

		return nil, exitUsage
	}

	a.format = f

	a.file, err = config.Load(*configPath)
	if err != nil {
		a.logger.Error("loading config", "error", err)

		return nil, exitFail
	}

	if *output != "" {
		a.file.Output = *output
	}

	if *workers > 0 {
		a.file.Workers = *workers
	}

	if err := a.file.Validate(); err != nil {
		a.logger.Error("invalid flags", "error", err)

		return nil, exitUsage
	}

	a.cfg = gen.DefaultGeneratorConfig()
	a.cfg.Logger = a.logger
	a.file.Apply(&a.cfg)

	a.patterns = fs.Args()
	if len(a.patterns) == 0 {
		a.patterns = a.file.Packages
	}

	return a, exitOK
}

// load analyzes the configured package patterns.
func (a *app) load() ([]*analyze.PackageInfo, error) {
	analyzer := analyze.NewAnalyzer()
	analyzer.BuildTag = a.cfg.BuildTag

	graph, err := analyzer.LoadPackages(a.patterns...)
	if err != nil {
		return nil, err
	}

	pkgs := graph.PackageList()
	a.logger.Debug("loaded packages", "patterns", strings.Join(a.patterns, " "), "packages", len(pkgs))

	if a.debug {
		dump := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, SortKeys: true}
		dump.Fdump(a.stderr, plan.Build(pkgs))
	}

	return pkgs, nil
}

// report prints diagnostics and tells whether any is an error.
func (a *app) report(diags diagnostic.Diagnostics) bool {
	for _, list := range [][]diagnostic.Diagnostic{diags.Errors, diags.Warnings} {
		for _, d := range list {
			fmt.Fprintln(a.stderr, d.String())
		}
	}

	return diags.HasErrors()
}

func (a *app) gen(ctx context.Context) int {
	if a.watch {
		return a.watchLoop(ctx)
	}

	code, _ := a.generate(ctx)

	return code
}

// generate runs one generation pass and returns the exit code and the
// directories of the loaded packages.
func (a *app) generate(ctx context.Context) (int, []string) {
	pkgs, err := a.load()
	if err != nil {
		a.logger.Error("loading packages", "error", err)

		return exitFail, nil
	}

	dirs := make([]string, 0, len(pkgs))
	for _, p := range pkgs {
		dirs = append(dirs, p.Dir)
	}

	files, diags, err := gen.NewGenerator(a.cfg).Generate(ctx, pkgs)
	if err != nil {
		a.logger.Error("generating", "error", err)

		return exitFail, dirs
	}

	failed := a.report(diags)

	written, err := gen.WriteFiles(files)
	for _, path := range written {
		a.logger.Info("wrote", "file", path)
	}

	if err != nil {
		a.logger.Error("writing", "error", err)

		return exitFail, dirs
	}

	if failed {
		return exitFail, dirs
	}

	return exitOK, dirs
}

func (a *app) check(ctx context.Context) int {
	pkgs, err := a.load()
	if err != nil {
		a.logger.Error("loading packages", "error", err)

		return exitFail
	}

	files, diags, err := gen.NewGenerator(a.cfg).Generate(ctx, pkgs)
	if err != nil {
		a.logger.Error("generating", "error", err)

		return exitFail
	}

	failed := a.report(diags)

	stale, err := gen.Check(files)
	if err != nil {
		a.logger.Error("checking", "error", err)

		return exitFail
	}

	for _, path := range stale {
		fmt.Fprintf(a.stderr, "%s: out of date\n", path)
	}

	if failed || len(stale) > 0 {
		return exitFail
	}

	return exitOK
}

func (a *app) resolve(context.Context) int {
	pkgs, err := a.load()
	if err != nil {
		a.logger.Error("loading packages", "error", err)

		return exitFail
	}

	data, err := plan.Marshal(plan.Build(pkgs), a.format)
	if err != nil {
		a.logger.Error("encoding plan", "error", err)

		return exitFail
	}

	if _, err := a.stdout.Write(data); err != nil {
		return exitFail
	}

	return exitOK
}

func (a *app) features(context.Context) int {
	for _, f := range gen.AllFeatures {
		fmt.Fprintf(a.stdout, "%-14s %s\n", f.Name, f.Description)
	}

	names := make([]string, 0, len(gen.Bundles))
	for name := range gen.Bundles {
		names = append(names, name)
	}

	slices.Sort(names)

	fmt.Fprintln(a.stdout, "\nBundles:")

	for _, name := range names {
		fmt.Fprintf(a.stdout, "%-14s %s\n", name, strings.Join(gen.Bundles[name], " "))
	}

	return exitOK
}
