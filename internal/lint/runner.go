package lint

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/checker"
	"golang.org/x/tools/go/packages"

	"github.com/mithrel/domid/internal/lint/literalid"
	"github.com/mithrel/domid/internal/lint/tmplcheck"
)

// Options configures one lint run.
type Options struct {
	// Dir is the working directory for package loading.
	Dir      string
	Patterns []string
	Tests    bool
	// Templates are files, directories or globs checked by tmplcheck.
	Templates []string
	// Sinks are extra id sinks in import/path.Func[:argIndex] form.
	Sinks []string
	// Catalog is an id catalog used for literal suggestions.
	Catalog string
	// Severity overrides the default deny per rule.
	Severity map[string]Severity
}

// ErrPackages is returned when the requested packages fail to load or type
// check.
var ErrPackages = errors.New("packages contain errors")

// Runner executes the rules.
type Runner struct {
	log *zap.Logger
}

// NewRunner returns a Runner logging to log.
func NewRunner(log *zap.Logger) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{log: log}
}

// Run lints the packages and templates named in opts. Findings with severity
// allow are dropped.
func (r *Runner) Run(ctx context.Context, opts Options) ([]Finding, error) {
	if err := configure(opts); err != nil {
		return nil, err
	}

	var findings []Finding
	if len(opts.Patterns) > 0 {
		found, err := r.runPackages(ctx, opts)
		if err != nil {
			return nil, err
		}
		findings = append(findings, found...)
	}
	if len(opts.Templates) > 0 {
		found, err := tmplcheck.CheckPaths(opts.Templates)
		if err != nil {
			return nil, fmt.Errorf("check templates: %w", err)
		}
		r.log.Debug("templates checked", zap.Strings("patterns", opts.Templates), zap.Int("findings", len(found)))
		for _, f := range found {
			findings = append(findings, fromTemplate(f))
		}
	}

	out := findings[:0]
	for _, f := range findings {
		f.Severity = severityOf(opts, f.Rule)
		if f.Severity == SeverityAllow {
			continue
		}
		out = append(out, f)
	}
	fillSource(out)
	sortFindings(out)
	return out, nil
}

func configure(opts Options) error {
	sinks := strings.Join(opts.Sinks, ",")
	for _, a := range Analyzers() {
		if err := a.Flags.Set("sinks", sinks); err != nil {
			return fmt.Errorf("%s: %w", a.Name, err)
		}
	}
	return literalid.Analyzer.Flags.Set("catalog", opts.Catalog)
}

func severityOf(opts Options, rule string) Severity {
	if s, ok := opts.Severity[rule]; ok && s != "" {
		return s
	}
	return SeverityDeny
}

func (r *Runner) runPackages(ctx context.Context, opts Options) ([]Finding, error) {
	cfg := &packages.Config{
		Mode:    packages.LoadAllSyntax,
		Context: ctx,
		Dir:     opts.Dir,
		Tests:   opts.Tests,
	}
	pkgs, err := packages.Load(cfg, opts.Patterns...)
	if err != nil {
		return nil, fmt.Errorf("load packages: %w", err)
	}
	r.log.Debug("packages loaded", zap.Strings("patterns", opts.Patterns), zap.Int("count", len(pkgs)))

	var loadErrs []string
	packages.Visit(pkgs, nil, func(p *packages.Package) {
		for _, e := range p.Errors {
			loadErrs = append(loadErrs, e.Error())
		}
	})
	if len(loadErrs) > 0 {
		for _, e := range loadErrs {
			r.log.Error("package error", zap.String("error", e))
		}
		return nil, fmt.Errorf("%w: %s", ErrPackages, loadErrs[0])
	}

	graph, err := checker.Analyze(Analyzers(), pkgs, &checker.Options{})
	if err != nil {
		return nil, fmt.Errorf("analyze: %w", err)
	}

	// With Tests, a package and its test variant share their non-test files.
	type site struct {
		rule, file string
		line, col  int
	}
	seen := make(map[site]bool)
	var out []Finding
	for _, act := range graph.Roots {
		if act.Err != nil {
			return nil, fmt.Errorf("%s on %s: %w", act.Analyzer.Name, act.Package.PkgPath, act.Err)
		}
		for _, d := range act.Diagnostics {
			f := fromDiagnostic(act.Package, act.Analyzer, d)
			k := site{f.Rule, f.File, f.Line, f.Col}
			if seen[k] {
				continue
			}
			seen[k] = true
			out = append(out, f)
		}
	}
	r.log.Debug("analysis finished", zap.Int("findings", len(out)))
	return out, nil
}

func fromDiagnostic(pkg *packages.Package, a *analysis.Analyzer, d analysis.Diagnostic) Finding {
	start := pkg.Fset.Position(d.Pos)
	end := start
	if d.End.IsValid() {
		end = pkg.Fset.Position(d.End)
	}
	f := Finding{
		Rule:    a.Name,
		Message: d.Message,
		Help:    helpFor(a.Name),
		File:    start.Filename,
		Line:    start.Line,
		Col:     start.Column,
		EndLine: end.Line,
		EndCol:  end.Column,
	}
	if len(d.SuggestedFixes) > 0 {
		f.Suggestion = d.SuggestedFixes[0].Message
	}
	return f
}

func fromTemplate(t tmplcheck.Finding) Finding {
	f := Finding{
		Rule:    t.Rule,
		Message: t.Message,
		Help:    helpFor(t.Rule),
		File:    t.File,
		Line:    t.Line,
		Col:     t.Col,
		EndLine: t.Line,
		EndCol:  t.Col + (t.End - t.Offset),
	}
	if t.Reason != "" {
		f.Suggestion = t.Reason
	}
	if strings.Contains(t.Value, "\n") {
		f.EndCol = f.Col + strings.Index(t.Value, "\n")
	}
	return f
}

// fillSource loads the offending line of every finding.
func fillSource(fs []Finding) {
	cache := make(map[string][]string)
	for i := range fs {
		lines, ok := cache[fs[i].File]
		if !ok {
			lines = readLines(fs[i].File)
			cache[fs[i].File] = lines
		}
		if n := fs[i].Line; n >= 1 && n <= len(lines) {
			fs[i].Source = lines[n-1]
		}
	}
}

func readLines(path string) []string {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()
	var lines []string
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	return lines
}
