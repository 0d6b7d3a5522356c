package compare

import (
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
)

func TestTableFormatter_Format(t *testing.T) {
	set := sampleSet()
	set.Recommendations = GenerateRecommendations(set)

	result := (&TableFormatter{}).Format(set)

	for _, want := range []string{
		"GOAL PLAN COMPARISON",
		"Base Plan: College (child_education)",
		"Configuration: /path/to/plan.yaml",
		"College (base)",
		"return_plus_2",
		"₹8,900",
		"Monthly SIP:      -₹1,220 (-12.1%)",
		"Goal Cost:        -₹214,102",
		"Achievability:    +11.6 points",
		"Not possible: plan has no loan",
		"RECOMMENDATIONS",
		"• Lowest SIP",
	} {
		if !strings.Contains(result, want) {
			t.Errorf("Expected output to contain %q\n%s", want, result)
		}
	}
}

func TestTableFormatter_Format_EmptyAlternatives(t *testing.T) {
	set := sampleSet()
	set.AlternativeResults = nil
	set.ConfigPath = ""

	result := (&TableFormatter{}).Format(set)

	if strings.Contains(result, "COMPARISON TO BASE") {
		t.Error("Did not expect a comparison section without alternatives")
	}
	if strings.Contains(result, "Configuration:") {
		t.Error("Did not expect a configuration line without a path")
	}
}

func TestTableFormatter_truncate(t *testing.T) {
	tf := &TableFormatter{}
	if got := tf.truncate("short", 10); got != "short" {
		t.Errorf("Expected short, got %s", got)
	}
	if got := tf.truncate("a very long scenario name", 10); got != "a very ..." {
		t.Errorf("Expected truncation, got %q", got)
	}
}

func TestTableFormatter_FormatCompact(t *testing.T) {
	got := (&TableFormatter{}).FormatCompact(sampleSet())
	want := "Base: College | return_plus_2: -₹1,220/mo | inflation_minus_1: -₹620/mo | set_loan_tenure:years=5: n/a"
	if got != want {
		t.Errorf("FormatCompact =\n%s\nwant\n%s", got, want)
	}
}

func TestCSVFormatter_Format(t *testing.T) {
	out, err := (&CSVFormatter{}).Format(sampleSet())
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	if err != nil {
		t.Fatalf("invalid CSV: %v", err)
	}
	if len(records) != 5 {
		t.Fatalf("Expected header plus 4 rows, got %d", len(records))
	}
	if records[1][0] != "College" || records[1][1] != "base" {
		t.Errorf("Unexpected base row: %v", records[1])
	}
	if records[2][6] != "8900.00" || records[2][10] != "-1219.80" {
		t.Errorf("Unexpected alternative row: %v", records[2])
	}
	if records[4][14] != "plan has no loan" {
		t.Errorf("Expected error column, got %v", records[4])
	}
}

func TestJSONFormatter_Format(t *testing.T) {
	for _, pretty := range []bool{true, false} {
		out, err := (&JSONFormatter{Pretty: pretty}).Format(sampleSet())
		if err != nil {
			t.Fatalf("Format failed: %v", err)
		}

		var decoded ComparisonSet
		if err := json.Unmarshal([]byte(out), &decoded); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if decoded.BaseScenarioName != "College" || len(decoded.AlternativeResults) != 3 {
			t.Errorf("Unexpected decoded set: %+v", decoded)
		}
		if !decoded.AlternativeResults[0].SIPRequired.Equal(dec("8900")) {
			t.Errorf("Expected SIP 8900, got %s", decoded.AlternativeResults[0].SIPRequired)
		}
		if pretty != strings.Contains(out, "\n  ") {
			t.Errorf("Pretty=%v produced unexpected layout", pretty)
		}
	}
}
