package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
)

const lintFixture = "../lint/testdata/app"

func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("NO_COLOR", "1")
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestLintJSONDenied(t *testing.T) {
	isolate(t)
	out, err := runCLI(t, "lint", "-o", "json", lintFixture)
	if !errors.Is(err, ErrDenied) {
		t.Fatalf("expected ErrDenied, got %v\n%s", err, out)
	}

	var report struct {
		Findings []struct {
			Rule     string `json:"rule"`
			Severity string `json:"severity"`
			Line     int    `json:"line"`
		} `json:"findings"`
	}
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if len(report.Findings) != 2 {
		t.Fatalf("expected 2 findings, got %+v", report.Findings)
	}
	if report.Findings[0].Rule != "literalid" || report.Findings[1].Rule != "ttid" {
		t.Fatalf("unexpected rules: %+v", report.Findings)
	}
}

func TestLintSeverityFlags(t *testing.T) {
	isolate(t)
	out, err := runCLI(t, "lint", "-A", "literalid", "-W", "ttid", lintFixture)
	if err != nil {
		t.Fatalf("warn-only run should succeed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "warn[ttid]: value that is not an allocated id passed as id attribute value") {
		t.Fatalf("missing warning:\n%s", out)
	}
	if strings.Contains(out, "literalid") {
		t.Fatalf("allowed rule reported:\n%s", out)
	}
	if !strings.Contains(out, "1 finding (0 deny, 1 warn)") {
		t.Fatalf("missing summary:\n%s", out)
	}

	if _, err := runCLI(t, "lint", "-A", "nosuchrule", lintFixture); err == nil {
		t.Fatalf("expected error for unknown rule")
	}
}

func TestLintSeverityFromConfig(t *testing.T) {
	isolate(t)
	cfg := filepath.Join(t.TempDir(), "domid.toml")
	content := `[lint.rules.literalid]
severity = "allow"

[lint.rules.ttid]
severity = "allow"
`
	if err := os.WriteFile(cfg, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	out, err := runCLI(t, "--config", cfg, "lint", lintFixture)
	if err != nil {
		t.Fatalf("lint: %v\n%s", err, out)
	}
	if strings.TrimSpace(out) != "no findings" {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestLintTemplatesOnly(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	page := `<div id="{{ domid "main" }}"><span id="fixed"></span></div>`
	if err := os.WriteFile(filepath.Join(dir, "page.html"), []byte(page), 0o600); err != nil {
		t.Fatal(err)
	}
	out, err := runCLI(t, "lint", "-o", "ndjson", "--templates", dir, ".")
	if !errors.Is(err, ErrDenied) {
		t.Fatalf("expected ErrDenied, got %v\n%s", err, out)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 1 || !strings.Contains(lines[0], `"rule":"literalid"`) {
		t.Fatalf("unexpected findings:\n%s", out)
	}
}

func TestLintStrictestSeverityWins(t *testing.T) {
	isolate(t)
	for i := 0; i < 5; i++ {
		out, err := runCLI(t, "lint", "-o", "json", "-D", "ttid", "-A", "ttid,literalid", "-W", "literalid", lintFixture)
		if !errors.Is(err, ErrDenied) {
			t.Fatalf("expected ErrDenied, got %v\n%s", err, out)
		}
		var report struct {
			Findings []struct {
				Rule     string `json:"rule"`
				Severity string `json:"severity"`
			} `json:"findings"`
		}
		if err := json.Unmarshal([]byte(out), &report); err != nil {
			t.Fatalf("decode: %v\n%s", err, out)
		}
		if len(report.Findings) != 2 {
			t.Fatalf("expected 2 findings, got %+v", report.Findings)
		}
		for _, f := range report.Findings {
			want := map[string]string{"literalid": "warn", "ttid": "deny"}[f.Rule]
			if f.Severity != want {
				t.Fatalf("%s: severity %q, want %q", f.Rule, f.Severity, want)
			}
		}
	}
}

func TestLintDefaultsPackagesWithConfiguredTemplates(t *testing.T) {
	isolate(t)
	tmpl := t.TempDir()
	if err := os.WriteFile(filepath.Join(tmpl, "ok.html"), []byte(`<p id="{{ domid }}"></p>`), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("DOMID_LINT_TEMPLATES", tmpl)

	out, err := runCLI(t, "lint", "-o", "ndjson", "-C", lintFixture)
	if !errors.Is(err, ErrDenied) {
		t.Fatalf("expected ErrDenied from package findings, got %v\n%s", err, out)
	}
	if !strings.Contains(out, `"rule":"literalid"`) || !strings.Contains(out, "app.go") {
		t.Fatalf("packages were not linted:\n%s", out)
	}
}

func TestLintRejectsBadOutput(t *testing.T) {
	isolate(t)
	if _, err := runCLI(t, "lint", "-o", "xml", lintFixture); err == nil {
		t.Fatalf("expected error for unknown output format")
	}
}

func TestGenWriteAndCheck(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	in := filepath.Join(dir, "ids.yaml")
	out := filepath.Join(dir, "ids_gen.go")
	if err := os.WriteFile(in, []byte("ids:\n  - language-selector\n  - search-box\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	got, err := runCLI(t, "gen", "--in", in, "--out", out, "--package", "ui")
	if err != nil {
		t.Fatalf("gen: %v\n%s", err, got)
	}
	if !strings.Contains(got, "Wrote "+out+" (2 ids") {
		t.Fatalf("unexpected output: %q", got)
	}
	src, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(src), "package ui") || !strings.Contains(string(src), "SearchBox") {
		t.Fatalf("unexpected source:\n%s", src)
	}

	if got, err := runCLI(t, "gen", "--in", in, "--out", out, "--package", "ui", "--check"); err != nil {
		t.Fatalf("check on fresh file: %v\n%s", err, got)
	}

	if err := os.WriteFile(in, []byte("ids:\n  - language-selector\n  - search-field\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	got, err = runCLI(t, "gen", "--in", in, "--out", out, "--package", "ui", "--check")
	if !errors.Is(err, ErrStale) {
		t.Fatalf("expected ErrStale, got %v", err)
	}
	if !strings.Contains(got, "+\tSearchField") || !strings.Contains(got, "-\tSearchBox") {
		t.Fatalf("diff missing changes:\n%s", got)
	}
}

func TestGenDefaultsPackageFromConfig(t *testing.T) {
	isolate(t)
	t.Setenv("DOMID_GEN_PACKAGE", "catalog")
	in := filepath.Join(t.TempDir(), "ids.yaml")
	if err := os.WriteFile(in, []byte("ids: [a]\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	got, err := runCLI(t, "gen", "--in", in)
	if err != nil {
		t.Fatalf("gen: %v\n%s", err, got)
	}
	if !strings.Contains(got, "package catalog") {
		t.Fatalf("expected package from env:\n%s", got)
	}
}

func TestGenReportsValidationErrors(t *testing.T) {
	isolate(t)
	in := filepath.Join(t.TempDir(), "ids.yaml")
	if err := os.WriteFile(in, []byte("package: ids\nids: [a--b, x, x]\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	_, err := runCLI(t, "gen", "--in", in)
	if err == nil {
		t.Fatalf("expected validation error")
	}
	for _, want := range []string{`"a--b" contains "--"`, `"x" duplicates ids[1]`} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("expected %q in %v", want, err)
		}
	}
}

func TestExplain(t *testing.T) {
	isolate(t)
	out, err := runCLI(t, "explain", "ttid")
	if err != nil {
		t.Fatalf("explain: %v", err)
	}
	if !strings.Contains(out, "What it does") || !strings.Contains(out, "Use instead") {
		t.Fatalf("unexpected explain output:\n%s", out)
	}

	out, err = runCLI(t, "explain")
	if err != nil {
		t.Fatalf("explain list: %v", err)
	}
	if !strings.Contains(out, "literalid") || !strings.Contains(out, "ttid") {
		t.Fatalf("rules not listed:\n%s", out)
	}

	if _, err := runCLI(t, "explain", "nope"); err == nil {
		t.Fatalf("expected error for unknown rule")
	}
}

func TestConfigGenerateAndRule(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "domid.toml")
	if out, err := runCLI(t, "config", "generate", "-o", path); err != nil {
		t.Fatalf("generate: %v\n%s", err, out)
	}
	if _, err := runCLI(t, "config", "generate", "-o", path); err == nil {
		t.Fatalf("expected error when config exists")
	}

	if out, err := runCLI(t, "config", "rule", "ttid", "warn", "--file", path); err != nil {
		t.Fatalf("rule: %v\n%s", err, out)
	}
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		t.Fatalf("config no longer parses: %v", err)
	}
	if got := v.GetString("lint.rules.ttid.severity"); got != "warn" {
		t.Fatalf("expected warn, got %q", got)
	}

	if _, err := runCLI(t, "config", "rule", "ttid", "loud", "--file", path); err == nil {
		t.Fatalf("expected error for bad severity")
	}
}

func TestConfigGenerateUpdateKeepsBackup(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "domid.toml")
	partial := "color = \"never\"\n"
	if err := os.WriteFile(path, []byte(partial), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := runCLI(t, "config", "generate", "-o", path, "--update", "--overwrite"); err == nil {
		t.Fatalf("expected error for --update with --overwrite")
	}

	out, err := runCLI(t, "config", "generate", "-o", path, "--update")
	if err != nil {
		t.Fatalf("update: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Backup: "+path+".bak") {
		t.Fatalf("missing backup line:\n%s", out)
	}
	backup, err := os.ReadFile(path + ".bak")
	if err != nil || string(backup) != partial {
		t.Fatalf("backup=%q, %v", backup, err)
	}
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		t.Fatalf("updated config does not parse: %v", err)
	}
	if v.GetString("color") != "never" || v.GetString("lint.output") != "plain" {
		t.Fatalf("update lost or missed options: color=%q output=%q", v.GetString("color"), v.GetString("lint.output"))
	}

	out, err = runCLI(t, "config", "generate", "-o", path, "--update")
	if err != nil || !strings.Contains(out, "is up to date") {
		t.Fatalf("second update: %v\n%s", err, out)
	}
}

func TestConfigShow(t *testing.T) {
	isolate(t)
	t.Setenv("DOMID_LINT_OUTPUT", "json")
	out, err := runCLI(t, "--log-level", "error", "config", "show")
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	for _, want := range []string{`output = "json"`, `level = "error"`, "[lint.rules.literalid]"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q:\n%s", want, out)
		}
	}
}

func TestCompletion(t *testing.T) {
	isolate(t)
	out, err := runCLI(t, "completion", "bash")
	if err != nil {
		t.Fatalf("completion: %v", err)
	}
	if !strings.Contains(out, "domid") {
		t.Fatalf("unexpected completion script")
	}
}
