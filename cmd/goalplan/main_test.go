package main

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rgehrsitz/goalplan/internal/domain"
	"github.com/rgehrsitz/goalplan/internal/output"
	"github.com/rgehrsitz/goalplan/internal/server"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

const testPlan = `
assumptions:
  inflation_rate_pct: 6
  expected_return_rate_pct: 12
  plan_year: 2024
goals:
  - name: College
    goal_type: child_education
    current_age: 38
    child_current_age: 8
    target_age: 18
    base_cost: 1000000
    monthly_income: 150000
  - name: Japan
    goal_type: vacation
    current_age: 32
    target_age: 34
    base_cost: 350000
    monthly_income: 150000
`

func writePlan(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plan.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write plan: %v", err)
	}
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestRootCommand(t *testing.T) {
	cmd := newRootCmd()

	if cmd.Use != "goalplan" {
		t.Errorf("Expected root command use to be 'goalplan', got %s", cmd.Use)
	}
	if cmd.Short == "" || cmd.Long == "" {
		t.Error("Expected root command to have short and long descriptions")
	}
}

func TestRootCommand_Help(t *testing.T) {
	out, err := execute(t, "--help")
	if err != nil {
		t.Errorf("Expected no error for help command, got %v", err)
	}
	if !strings.Contains(out, "calculate") {
		t.Errorf("Expected help to list commands, got %s", out)
	}
}

func TestCommandSubcommands(t *testing.T) {
	expected := []string{"calculate", "validate", "goals", "compare", "break-even", "ssy", "report", "plan", "serve", "version"}

	registered := map[string]bool{}
	for _, c := range newRootCmd().Commands() {
		registered[c.Name()] = true
	}
	for _, name := range expected {
		if !registered[name] {
			t.Errorf("Expected command '%s' to be registered with root command", name)
		}
	}
}

func TestRootCommand_InvalidCommand(t *testing.T) {
	if _, err := execute(t, "invalid-command"); err == nil {
		t.Error("Expected error for invalid command")
	}
}

func TestCalculate_Console(t *testing.T) {
	out, err := execute(t, "calculate", writePlan(t, testPlan))
	if err != nil {
		t.Fatalf("calculate failed: %v", err)
	}
	for _, want := range []string{"GOAL 1: College", "GOAL 2: Japan", "SUMMARY"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q", want)
		}
	}
}

func TestCalculate_JSON(t *testing.T) {
	out, err := execute(t, "calculate", writePlan(t, testPlan), "--format", "json", "--goal", "College")
	if err != nil {
		t.Fatalf("calculate failed: %v", err)
	}

	var report output.Report
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if len(report.Entries) != 1 {
		t.Fatalf("Expected 1 goal, got %d", len(report.Entries))
	}
	want := decimal.RequireFromString("2328102.01")
	if got := report.Entries[0].Result.TotalGoalCost; !got.Equal(want) {
		t.Errorf("Expected total goal cost %s, got %s", want, got)
	}
}

func TestCalculate_Errors(t *testing.T) {
	plan := writePlan(t, testPlan)

	if _, err := execute(t, "calculate", plan, "--format", "xml"); err == nil || !strings.Contains(err.Error(), "unknown output format") {
		t.Errorf("Expected unknown format error, got %v", err)
	}
	if _, err := execute(t, "calculate", plan, "--goal", "Boat"); err == nil {
		t.Error("Expected error for a missing goal")
	}
	if _, err := execute(t, "calculate", filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Expected error for a missing file")
	}
}

func TestValidate(t *testing.T) {
	out, err := execute(t, "validate", writePlan(t, testPlan))
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if !strings.Contains(out, "is valid (2 goals)") {
		t.Errorf("unexpected output: %s", out)
	}

	bad := strings.Replace(testPlan, "target_age: 18", "target_age: 5", 1)
	_, err = execute(t, "validate", writePlan(t, bad))
	if err == nil || !strings.Contains(err.Error(), "targetAge") {
		t.Errorf("Expected targetAge validation error, got %v", err)
	}
}

func TestGoals(t *testing.T) {
	out, err := execute(t, "goals")
	if err != nil {
		t.Fatalf("goals failed: %v", err)
	}
	for _, gt := range domain.AllGoalTypes() {
		if !strings.Contains(out, string(gt)) {
			t.Errorf("Expected goal type %s to be listed", gt)
		}
	}
}

func TestCompare(t *testing.T) {
	plan := writePlan(t, testPlan)

	out, err := execute(t, "compare", "--list-templates")
	if err != nil || !strings.Contains(out, "Available Templates") {
		t.Errorf("list-templates: err=%v out=%s", err, out)
	}

	if _, err := execute(t, "compare", plan, "--with", "delay_1yr"); err == nil || !strings.Contains(err.Error(), "--goal") {
		t.Errorf("Expected a request for --goal, got %v", err)
	}
	if _, err := execute(t, "compare", plan, "--goal", "College"); err == nil {
		t.Error("Expected error without --with")
	}

	out, err = execute(t, "compare", plan, "--goal", "College", "--with", "delay_1yr,return_plus_2", "--format", "csv")
	if err != nil {
		t.Fatalf("compare failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 4 {
		t.Errorf("Expected header, base and 2 alternatives, got %d lines:\n%s", len(lines), out)
	}
}

func TestBreakEven(t *testing.T) {
	plan := writePlan(t, testPlan)

	out, err := execute(t, "break-even", plan, "--goal", "College", "--budget", "8500", "--target", "target_age")
	if err != nil {
		t.Fatalf("break-even failed: %v", err)
	}
	if !strings.Contains(out, "Target Age:") || !strings.Contains(out, "Budget met") {
		t.Errorf("unexpected output:\n%s", out)
	}

	out, err = execute(t, "break-even", plan, "--goal", "College", "--budget", "8500")
	if err != nil {
		t.Fatalf("break-even all failed: %v", err)
	}
	if !strings.Contains(out, "SUMMARY OF ALL TARGETS") {
		t.Errorf("unexpected output:\n%s", out)
	}

	if _, err := execute(t, "break-even", plan, "--goal", "College"); err == nil {
		t.Error("Expected error without --budget")
	}
	if _, err := execute(t, "break-even", plan, "--goal", "College", "--budget", "8500", "--target", "luck"); err == nil {
		t.Error("Expected error for an unknown target")
	}
}

func TestSsy(t *testing.T) {
	out, err := execute(t, "ssy", "rate", "2024")
	if err != nil || !strings.Contains(out, "8.2%") {
		t.Errorf("rate 2024: err=%v out=%s", err, out)
	}
	out, err = execute(t, "ssy", "rate", "2035")
	if err != nil || !strings.Contains(out, "projected") {
		t.Errorf("rate 2035: err=%v out=%s", err, out)
	}
	if _, err := execute(t, "ssy", "rate", "1990"); err == nil {
		t.Error("Expected error for a year outside the range")
	}

	out, err = execute(t, "ssy", "simulate", "--age", "3", "--deposit", "150000", "--start-year", "2024", "--format", "json")
	if err != nil {
		t.Fatalf("simulate failed: %v", err)
	}
	var res domain.SsyResult
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if res.MaturityYear != 2042 {
		t.Errorf("Expected maturity in 2042, got %d", res.MaturityYear)
	}
}

func TestReport_DirArchive(t *testing.T) {
	dir := t.TempDir()

	out, err := execute(t, "report", writePlan(t, testPlan), "--goal", "Japan", "--format", "html", "--out", dir)
	if err != nil {
		t.Fatalf("report failed: %v", err)
	}

	matches, _ := filepath.Glob(filepath.Join(dir, "reports", "vacation", "*-japan.html"))
	if len(matches) != 1 {
		t.Fatalf("Expected one archived report, found %v", matches)
	}
	if !strings.Contains(out, matches[0]) {
		t.Errorf("Expected output to name %s, got %s", matches[0], out)
	}

	if _, err := execute(t, "report", writePlan(t, testPlan), "--archive", "ftp", "--out", dir); err == nil {
		t.Error("Expected error for an unknown archive")
	}
}

func TestPlan_SaveAndLoad(t *testing.T) {
	srv := server.New(server.Options{Logger: zerolog.Nop()})
	defer srv.Close()
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	plan := writePlan(t, testPlan)
	out, err := execute(t, "plan", "save", "--server", ts.URL, "--user", "u1", "--goal", "vacation", "--file", plan)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if !strings.Contains(out, "Saved vacation plan") {
		t.Errorf("unexpected output: %s", out)
	}

	out, err = execute(t, "plan", "load", "--server", ts.URL, "--user", "u1", "--goal", "vacation")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if !strings.Contains(out, "name: Japan") {
		t.Errorf("Expected the saved plan as YAML, got:\n%s", out)
	}

	file := filepath.Join(t.TempDir(), "loaded.yaml")
	if _, err := execute(t, "plan", "load", "--server", ts.URL, "--user", "u1", "--goal", "vacation", "--file", file); err != nil {
		t.Fatalf("load to file failed: %v", err)
	}
	if _, err := execute(t, "validate", file); err != nil {
		t.Errorf("loaded plan does not validate: %v", err)
	}

	if _, err := execute(t, "plan", "load", "--server", ts.URL, "--user", "u2", "--goal", "vacation"); err == nil {
		t.Error("Expected not found for another user")
	}
	if _, err := execute(t, "plan", "load", "--server", ts.URL, "--goal", "vacation"); err == nil {
		t.Error("Expected error without --user")
	}
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.HasPrefix(out, "goalplan dev") {
		t.Errorf("unexpected version output: %s", out)
	}
}
