package main

import (
	"os"
	"strings"
	"testing"

	"github.com/goccy/go-json"
)

func TestReportMissingFile(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"report"}, env.configPath, "")
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	requireContains(t, out, "not found! Please run 'moviestats collect' first.")
	if strings.Contains(out, "in your collection") {
		t.Fatal("no statistics may be printed without a stats file")
	}
}

func TestReportAfterCollect(t *testing.T) {
	env := setupCLITestEnv(t)
	if _, _, err := runCLI(t, []string{"collect"}, env.configPath, "Jaws\nE.T.\n"); err != nil {
		t.Fatalf("collect: %v", err)
	}

	out, _, err := runCLI(t, []string{"report"}, env.configPath, "")
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	requireContains(t, out, "2 in your collection, with a total running time of 239 minutes, that's 0.2 days!")
	requireContains(t, out, "Oldest film: Jaws (1975)")
	requireContains(t, out, "Newest film: E.T. the Extra-Terrestrial (1982)")
	requireContains(t, out, "Best film: Jaws (7.7/10)")
	requireContains(t, out, "Average rating: 7.60")
	requireContains(t, out, "Favourite directors:\nSteven Spielberg (2)\n")

	out, _, err = runCLI(t, []string{"report", "--format", "table"}, env.configPath, "")
	if err != nil {
		t.Fatalf("report table: %v", err)
	}
	requireContains(t, out, "== Favourite actors/actresses ==")

	out, _, err = runCLI(t, []string{"report", "--format", "json"}, env.configPath, "")
	if err != nil {
		t.Fatalf("report json: %v", err)
	}
	var summary struct {
		TotalMovies   int      `json:"totalMovies"`
		AverageRating *float64 `json:"averageRating"`
	}
	if err := json.Unmarshal([]byte(out), &summary); err != nil {
		t.Fatalf("decode json: %v\n%s", err, out)
	}
	if summary.TotalMovies != 2 || summary.AverageRating == nil || *summary.AverageRating != 7.6 {
		t.Fatalf("unexpected summary %+v", summary)
	}
}

func TestReportMalformedFile(t *testing.T) {
	env := setupCLITestEnv(t)
	if err := os.MkdirAll(env.baseDir+"/data", 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(env.statsPath, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, _, err := runCLI(t, []string{"report"}, env.configPath, ""); err == nil {
		t.Fatal("expected parse error for malformed stats file")
	}
}

func TestReportRejectsUnknownFormat(t *testing.T) {
	env := setupCLITestEnv(t)
	if _, _, err := runCLI(t, []string{"report", "--format", "xml"}, env.configPath, ""); err == nil {
		t.Fatal("expected error for unknown format")
	}
}
