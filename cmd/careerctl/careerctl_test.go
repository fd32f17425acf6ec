// Careerpath - Career Recommendation Ranking and Explainability
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/careerpath/internal/config"
	"github.com/tomtom215/careerpath/internal/recommend"
)

const testCatalogPath = "../../internal/catalog/testdata/catalog.json"

const developerProfile = `{
	"skills": [
		{"name": "Programming", "importance": 5},
		{"name": "Systems Analysis", "importance": 4}
	],
	"interests": {"Investigative": 6},
	"values": {"Achievement": 6}
}`

// isolate points configuration discovery at empty locations. Tests using it
// cannot run in parallel because they set process environment.
func isolate(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(config.ConfigPathEnvVar, filepath.Join(dir, "missing.yaml"))
	t.Setenv(config.DotEnvPathEnvVar, filepath.Join(dir, "missing.env"))
	t.Setenv("LLM_API_KEY", "")
	t.Setenv("MODEL_PATH", "")
}

func writeProfile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "profile.json")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write profile: %v", err)
	}
	return path
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRank(t *testing.T) {
	isolate(t)
	profile := writeProfile(t, developerProfile)

	out, err := run(t, "", "rank", "--catalog", testCatalogPath, "--no-llm", "--profile", profile, "--top-n", "4")
	if err != nil {
		t.Fatalf("rank error = %v", err)
	}

	var res recommend.Result
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("decode output %q: %v", out, err)
	}
	if len(res.Primary) != 4 {
		t.Errorf("len(Primary) = %d, want 4", len(res.Primary))
	}
	if res.CatalogVersion != "2026.10-test" {
		t.Errorf("CatalogVersion = %q", res.CatalogVersion)
	}
}

func TestRank_Stdin(t *testing.T) {
	isolate(t)

	out, err := run(t, developerProfile, "rank", "-c", testCatalogPath, "--no-llm", "-p", "-")
	if err != nil {
		t.Fatalf("rank error = %v", err)
	}
	if !strings.Contains(out, `"primary"`) {
		t.Errorf("output missing primary: %s", out)
	}
}

func TestRank_Errors(t *testing.T) {
	isolate(t)

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{
			name:    "missing_profile_flag",
			args:    []string{"rank", "--catalog", testCatalogPath},
			wantErr: "profile",
		},
		{
			name:    "guardrail",
			args:    []string{"rank", "--catalog", testCatalogPath, "--no-llm", "--profile", writeProfile(t, `{"notes": "my age is 50"}`)},
			wantErr: "demographic",
		},
		{
			name:    "missing_catalog",
			args:    []string{"rank", "--catalog", filepath.Join(t.TempDir(), "none.json"), "--profile", writeProfile(t, developerProfile)},
			wantErr: "none.json",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, "", tt.args...)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestExplain(t *testing.T) {
	isolate(t)
	profile := writeProfile(t, developerProfile)

	out, err := run(t, "", "explain", "-c", testCatalogPath, "--no-llm", "-p", profile, "-o", "15-1252.00")
	if err != nil {
		t.Fatalf("explain error = %v", err)
	}
	var c recommend.Candidate
	if err := json.Unmarshal([]byte(out), &c); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if c.OccupationID != "15-1252.00" || c.Explanation == nil {
		t.Errorf("candidate = %+v", c)
	}

	if _, err := run(t, "", "explain", "-c", testCatalogPath, "--no-llm", "-p", profile, "-o", "99-9999.99"); err == nil {
		t.Error("explain unknown occupation error = nil")
	}
}

func TestExplain_Vector(t *testing.T) {
	isolate(t)
	profile := writeProfile(t, developerProfile)

	features, err := run(t, "", "features", "-c", testCatalogPath, "--no-llm", "-p", profile)
	if err != nil {
		t.Fatalf("features error = %v", err)
	}
	vector := writeProfile(t, features)

	out, err := run(t, "", "explain", "-c", testCatalogPath, "--no-llm", "--vector", vector, "-o", "15-1252.00")
	if err != nil {
		t.Fatalf("explain --vector error = %v", err)
	}
	var fromVector recommend.Candidate
	if err := json.Unmarshal([]byte(out), &fromVector); err != nil {
		t.Fatalf("decode output: %v", err)
	}

	out, err = run(t, "", "explain", "-c", testCatalogPath, "--no-llm", "-p", profile, "-o", "15-1252.00")
	if err != nil {
		t.Fatalf("explain --profile error = %v", err)
	}
	var fromProfile recommend.Candidate
	if err := json.Unmarshal([]byte(out), &fromProfile); err != nil {
		t.Fatalf("decode output: %v", err)
	}

	if fromVector.Score != fromProfile.Score || fromVector.RawScore != fromProfile.RawScore {
		t.Errorf("vector score %f/%f, profile score %f/%f",
			fromVector.Score, fromVector.RawScore, fromProfile.Score, fromProfile.RawScore)
	}
	if fromVector.Explanation == nil || len(fromVector.Explanation.TopFeatures) == 0 {
		t.Errorf("vector explanation = %+v", fromVector.Explanation)
	}

	tests := []struct {
		name string
		args []string
	}{
		{"neither_input", []string{"explain", "-c", testCatalogPath, "-o", "15-1252.00"}},
		{"both_inputs", []string{"explain", "-c", testCatalogPath, "-p", profile, "--vector", vector, "-o", "15-1252.00"}},
		{"short_vector", []string{"explain", "-c", testCatalogPath, "--no-llm", "--vector", writeProfile(t, `{"values": [0.5]}`), "-o", "15-1252.00"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := run(t, "", tt.args...); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestFeatures(t *testing.T) {
	isolate(t)
	profile := writeProfile(t, `{"skills": [{"name": "Basket Weaving", "importance": 3}]}`)

	out, err := run(t, "", "features", "-c", testCatalogPath, "--no-llm", "-p", profile)
	if err != nil {
		t.Fatalf("features error = %v", err)
	}
	var fr struct {
		Unmapped []string `json:"unmapped"`
		Length   int      `json:"length"`
	}
	if err := json.Unmarshal([]byte(out), &fr); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if len(fr.Unmapped) != 1 || fr.Unmapped[0] != "Basket Weaving" {
		t.Errorf("Unmapped = %v", fr.Unmapped)
	}
	if fr.Length == 0 {
		t.Error("Length = 0")
	}
}

func TestValidateCatalog(t *testing.T) {
	isolate(t)

	out, err := run(t, "", "validate-catalog", "--catalog", testCatalogPath)
	if err != nil {
		t.Fatalf("validate-catalog error = %v", err)
	}
	var summary catalogSummary
	if err := json.Unmarshal([]byte(out), &summary); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if summary.Occupations != 10 || summary.Version != "2026.10-test" {
		t.Errorf("summary = %+v", summary)
	}
	if summary.Dimensions["skill"] == 0 {
		t.Errorf("Dimensions = %v", summary.Dimensions)
	}

	bad := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(bad, []byte(`{"version": "x", "occupations": []}`), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := run(t, "", "validate-catalog", "--catalog", bad); err == nil {
		t.Error("validate-catalog accepted an empty catalog")
	}
}
