package main

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/tidwall/gjson"
)

func useMemFs(t *testing.T) afero.Fs {
	t.Helper()
	prev := osFs
	fs := afero.NewMemMapFs()
	osFs = fs
	t.Cleanup(func() { osFs = prev })
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	for _, name := range []string{"POCKETCALC_LOG_LEVEL", "POCKETCALC_LOG_FILE", "POCKETCALC_LEADING_MINUS", "POCKETCALC_SCRIPT_TIMEOUT", "POCKETCALC_TAPE"} {
		t.Setenv(name, "")
		os.Unsetenv(name)
	}
	return fs
}

func runCLI(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestParseFlags(t *testing.T) {
	var stderr bytes.Buffer
	opts, err := parseFlags([]string{"-c", "/x.toml", "-e", "1 + 1 =", "-e", "=", "-format", "json", "-history", "-leading-minus"}, &stderr)
	if err != nil {
		t.Fatalf("parseFlags() error = %v", err)
	}
	if opts.configPath != "/x.toml" || len(opts.exprs) != 2 || opts.format != "json" || !opts.history || !opts.leadingMinus {
		t.Errorf("opts = %+v", opts)
	}

	if _, err := parseFlags([]string{"stray"}, &stderr); err == nil {
		t.Error("expected error for positional arguments")
	}
}

func TestVersionAndHelp(t *testing.T) {
	code, out, _ := runCLI(t, "", "-version")
	if code != 0 || !strings.HasPrefix(out, "pocketcalc ") {
		t.Errorf("version: code %d, out %q", code, out)
	}
	code, _, errOut := runCLI(t, "", "-h")
	if code != 0 || !strings.Contains(errOut, "Usage: pocketcalc") {
		t.Errorf("help: code %d, stderr %q", code, errOut)
	}
	if code, _, _ := runCLI(t, "", "-bogus"); code != 1 {
		t.Errorf("bad flag exit code = %d, want 1", code)
	}
}

func TestBatchFromExpressions(t *testing.T) {
	useMemFs(t)
	code, out, errOut := runCLI(t, "", "-e", "12.5 × 2 =", "-e", "+ 5 =")
	if code != 0 {
		t.Fatalf("exit %d, stderr %q", code, errOut)
	}
	if out != "25\n30\n" {
		t.Errorf("output = %q", out)
	}
}

func TestBatchFromStdin(t *testing.T) {
	useMemFs(t)
	code, out, _ := runCLI(t, "2 ^ 10 =\n", "-history")
	if code != 0 || out != "2 ^ 10 =\n1024\n" {
		t.Errorf("code %d, output %q", code, out)
	}
}

func TestBatchJSONAndErrors(t *testing.T) {
	useMemFs(t)
	code, out, _ := runCLI(t, "9 √x\nnope\n", "-format", "json")
	if code != 1 {
		t.Errorf("exit code = %d, want 1 for an unknown token", code)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d records", len(lines))
	}
	if gjson.Get(lines[0], "display").String() != "3" || gjson.Get(lines[0], "session").String() == "" {
		t.Errorf("record 1 = %s", lines[0])
	}
	if !gjson.Get(lines[1], "message").Exists() {
		t.Errorf("record 2 = %s", lines[1])
	}
}

func TestBatchBadFormat(t *testing.T) {
	useMemFs(t)
	if code, _, errOut := runCLI(t, "", "-format", "xml", "-e", "1"); code != 1 || !strings.Contains(errOut, "xml") {
		t.Errorf("code %d, stderr %q", code, errOut)
	}
}

func TestLeadingMinusFlag(t *testing.T) {
	useMemFs(t)
	code, out, _ := runCLI(t, "", "-leading-minus", "-e", "- 5 + 3 =")
	if code != 0 || out != "-2\n" {
		t.Errorf("code %d, output %q", code, out)
	}
}

func TestConfigFile(t *testing.T) {
	fs := useMemFs(t)
	if err := afero.WriteFile(fs, "/xdg/pocketcalc/config.toml", []byte("[engine]\nleading_minus_as_sign = true\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	code, out, _ := runCLI(t, "", "-e", "- 5 =")
	if code != 0 || out != "-5\n" {
		t.Errorf("code %d, output %q", code, out)
	}

	if code, _, errOut := runCLI(t, "", "-c", "/missing.toml", "-e", "1"); code != 1 || !strings.Contains(errOut, "not found") {
		t.Errorf("missing config: code %d, stderr %q", code, errOut)
	}
}

func TestTapeAndPrintTape(t *testing.T) {
	useMemFs(t)
	if code, _, errOut := runCLI(t, "", "-tape", "/t.jsonl", "-e", "6 × 7 =", "-e", "C 1 ÷ 0 ="); code != 0 {
		t.Fatalf("exit %d, stderr %q", code, errOut)
	}

	code, out, errOut := runCLI(t, "", "-tape", "/t.jsonl", "-print-tape")
	if code != 0 {
		t.Fatalf("print-tape exit %d, stderr %q", code, errOut)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 || !strings.Contains(lines[0], "6 × 7 =") || !strings.HasSuffix(lines[1], "Error") {
		t.Errorf("tape output = %q", out)
	}

	if code, _, _ := runCLI(t, "", "-print-tape"); code != 1 {
		t.Errorf("print-tape without a tape: exit %d, want 1", code)
	}
}

func TestScript(t *testing.T) {
	fs := useMemFs(t)
	if err := afero.WriteFile(fs, "/s.lua", []byte(`print(calc.enter("3 x³"))`), 0o644); err != nil {
		t.Fatal(err)
	}
	code, out, errOut := runCLI(t, "", "-script", "/s.lua")
	if code != 0 || out != "27\n" {
		t.Errorf("code %d, output %q, stderr %q", code, out, errOut)
	}

	if err := afero.WriteFile(fs, "/bad.lua", []byte(`calc.press("sin")`), 0o644); err != nil {
		t.Fatal(err)
	}
	if code, _, errOut := runCLI(t, "", "-script", "/bad.lua"); code != 1 || !strings.Contains(errOut, "/bad.lua") {
		t.Errorf("bad script: code %d, stderr %q", code, errOut)
	}
}
