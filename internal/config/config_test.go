package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadGroupsPreservesOrder(t *testing.T) {
	raw := `{
  "City": {"keywords": ["oras", "city"]},
  "Address": {"keywords": ["adresa"], "priority": ["adresa completa"]},
  "Size": {"keywords": ["dimensiune"], "avoid": ["fisier"]}
}`
	path := filepath.Join(t.TempDir(), "groups.json")
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}

	specs, err := LoadGroups(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(specs) != 3 {
		t.Fatalf("specs = %d", len(specs))
	}

	wantOrder := []string{"City", "Address", "Size"}
	for i, name := range wantOrder {
		if specs[i].Name != name {
			t.Fatalf("spec %d = %q, want %q", i, specs[i].Name, name)
		}
	}

	if specs[1].Priority[0] != "adresa completa" {
		t.Fatalf("priority: %+v", specs[1])
	}
	if specs[2].Avoid[0] != "fisier" {
		t.Fatalf("avoid: %+v", specs[2])
	}
}

func TestLoadGroupsRejectsBadInput(t *testing.T) {
	dir := t.TempDir()

	empty := filepath.Join(dir, "empty.json")
	if err := os.WriteFile(empty, []byte(`{}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadGroups(empty); err == nil {
		t.Fatal("expected error for empty config")
	}

	arr := filepath.Join(dir, "array.json")
	if err := os.WriteFile(arr, []byte(`[]`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadGroups(arr); err == nil {
		t.Fatal("expected error for non-object config")
	}

	if _, err := LoadGroups(filepath.Join(dir, "missing.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestEnvHelpers(t *testing.T) {
	t.Setenv("MP_TEST_INT", "12")
	t.Setenv("MP_TEST_FLOAT", "0.07")
	t.Setenv("MP_TEST_BAD", "not-a-number")

	if got := getEnvInt("MP_TEST_INT", 9); got != 12 {
		t.Fatalf("getEnvInt = %d", got)
	}
	if got := getEnvInt("MP_TEST_MISSING", 9); got != 9 {
		t.Fatalf("getEnvInt fallback = %d", got)
	}
	if got := getEnvInt("MP_TEST_BAD", 9); got != 9 {
		t.Fatalf("getEnvInt bad value = %d", got)
	}
	if got := getEnvFloat("MP_TEST_FLOAT", 0.03); got != 0.07 {
		t.Fatalf("getEnvFloat = %v", got)
	}
}
