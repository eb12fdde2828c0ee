package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSeedCmd_DryRun(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("LOG_LEVEL", "error")

	path := filepath.Join(t.TempDir(), "animals.csv")
	csv := "animal_type,name,age_upon_outcome_in_weeks\nDog,Rex,10\nCat,Tom,400\n"
	if err := os.WriteFile(path, []byte(csv), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--dry-run", path})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}

	got := out.String()
	if !strings.Contains(got, "2 documents") || !strings.Contains(got, "[animal_type name age_upon_outcome_in_weeks]") {
		t.Fatalf("unexpected summary %q", got)
	}
}

func TestSeedCmd_ImportIntoMemory(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("LOG_LEVEL", "error")

	path := filepath.Join(t.TempDir(), "animals.json")
	if err := os.WriteFile(path, []byte(`[{"animal_type":"Dog"}]`), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	cmd := newRootCmd()
	cmd.SetArgs([]string{path})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
}

func TestSeedCmd_Errors(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("SEED_FILE", "")

	cases := [][]string{
		{},
		{"--format", "xml", "x.json"},
		{"a", "b"},
	}
	for _, args := range cases {
		cmd := newRootCmd()
		cmd.SetArgs(args)
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetErr(&bytes.Buffer{})
		if err := cmd.Execute(); err == nil {
			t.Fatalf("expected error for args %v", args)
		}
	}
}
