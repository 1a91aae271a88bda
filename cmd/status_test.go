package cmd

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func setupStatusProject(t *testing.T) string {
	t.Helper()

	dir := setupTestEnvironment(t)
	writeTestFile(t, filepath.Join(dir, ".env"), "A=1\nB=2\n")
	writeTestFile(t, filepath.Join(dir, ".env.local"), "C=3\n")
	writeTestFile(t, filepath.Join(dir, ".env.enc"), "A=x\nB=y\n")
	writeTestFile(t, filepath.Join(dir, "README.md"), "docs\n")
	return dir
}

func TestStatus_Text(t *testing.T) {
	setupStatusProject(t)

	output, err := runCLI(t, "status")
	if err != nil {
		t.Fatalf("status failed: %v\nOutput: %s", err, output)
	}

	for _, want := range []string{"Plain files:", "Encrypted files:", ".env.local", "not encrypted yet", "2 vars"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, output)
		}
	}
	if strings.Contains(output, "README.md") {
		t.Errorf("non-env file listed:\n%s", output)
	}
}

func TestStatus_JSON(t *testing.T) {
	dir := setupStatusProject(t)

	output, err := runCLI(t, "status", "--json")
	if err != nil {
		t.Fatalf("status failed: %v\nOutput: %s", err, output)
	}

	var report struct {
		Dir   string `json:"dir"`
		Plain []struct {
			Name              string `json:"name"`
			Category          string `json:"category"`
			Variables         int    `json:"variables"`
			Counterpart       string `json:"counterpart"`
			CounterpartExists bool   `json:"counterpart_exists"`
		} `json:"plain"`
		Encrypted []struct {
			Name string `json:"name"`
		} `json:"encrypted"`
	}
	if err := json.Unmarshal([]byte(output), &report); err != nil {
		t.Fatalf("output is not valid JSON: %v\nOutput: %s", err, output)
	}

	if filepath.Base(report.Dir) != filepath.Base(dir) {
		t.Errorf("expected dir %s, got %s", dir, report.Dir)
	}
	if len(report.Plain) != 2 || len(report.Encrypted) != 1 {
		t.Fatalf("expected 2 plain and 1 encrypted, got %+v", report)
	}

	env := report.Plain[0]
	if env.Name != ".env" || env.Category != "plain" || env.Variables != 2 || !env.CounterpartExists {
		t.Errorf("unexpected .env entry: %+v", env)
	}
	if filepath.Base(env.Counterpart) != ".env.enc" {
		t.Errorf("unexpected counterpart: %s", env.Counterpart)
	}
	if report.Plain[1].CounterpartExists {
		t.Errorf(".env.local should have no counterpart")
	}
}

func TestStatus_YAML(t *testing.T) {
	setupStatusProject(t)

	output, err := runCLI(t, "status", "--yaml")
	if err != nil {
		t.Fatalf("status failed: %v\nOutput: %s", err, output)
	}

	var report map[string]interface{}
	if err := yaml.Unmarshal([]byte(output), &report); err != nil {
		t.Fatalf("output is not valid YAML: %v\nOutput: %s", err, output)
	}

	encrypted, ok := report["encrypted"].([]interface{})
	if !ok || len(encrypted) != 1 {
		t.Fatalf("expected one encrypted entry, got %#v", report["encrypted"])
	}
	entry, ok := encrypted[0].(map[string]interface{})
	if !ok {
		t.Fatalf("unexpected entry type %T", encrypted[0])
	}
	if entry["name"] != ".env.enc" || entry["category"] != "encrypted" {
		t.Errorf("unexpected encrypted entry: %#v", entry)
	}
}

func TestStatus_ConflictingFormats(t *testing.T) {
	setupStatusProject(t)

	if _, err := runCLI(t, "status", "--json", "--yaml"); err == nil {
		t.Fatal("expected an error for --json with --yaml")
	}
}

func TestStatus_Empty(t *testing.T) {
	setupTestEnvironment(t)

	output, err := runCLI(t, "status")
	if err != nil {
		t.Fatalf("status failed: %v", err)
	}
	if !strings.Contains(output, "No .env files found") {
		t.Errorf("expected empty message, got: %s", output)
	}
}
