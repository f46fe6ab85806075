package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/tsstack/binder/internal/types"
)

func TestDefaultIsWasm32NonStrict(t *testing.T) {
	opts := Default()
	if opts.Target != "wasm32" {
		t.Errorf("Default().Target = %q, want wasm32", opts.Target)
	}
	if opts.StrictMode {
		t.Error("Default().StrictMode should be false")
	}
	if opts.TargetValue() != types.WASM32 {
		t.Error("Default().TargetValue() should be WASM32")
	}
}

func TestParseEmptyYieldsDefault(t *testing.T) {
	opts, err := Parse([]byte(""), "test.yaml")
	if err != nil {
		t.Fatalf("Parse(empty) error: %v", err)
	}
	if opts.TargetValue() != types.WASM32 {
		t.Error("empty config should default to wasm32")
	}
}

func TestParseWasm64Strict(t *testing.T) {
	opts, err := Parse([]byte("target: wasm64\nstrict: true\n"), "test.yaml")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if opts.TargetValue() != types.WASM64 {
		t.Error("target: wasm64 should resolve to types.WASM64")
	}
	if !opts.StrictMode {
		t.Error("strict: true should set StrictMode")
	}
}

func TestParseRejectsUnknownTarget(t *testing.T) {
	_, err := Parse([]byte("target: wasm128\n"), "test.yaml")
	if err == nil {
		t.Error("Parse should reject an unrecognized target value")
	}
}

func TestFindWalksUpToParent(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "a", "b")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte("target: wasm64\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	found, err := Find(sub)
	if err != nil {
		t.Fatalf("Find error: %v", err)
	}
	want := filepath.Join(dir, FileName)
	if found != want {
		t.Errorf("Find(%s) = %q, want %q", sub, found, want)
	}
}

func TestFindReturnsEmptyWhenAbsent(t *testing.T) {
	dir := t.TempDir()
	found, err := Find(dir)
	if err != nil {
		t.Fatalf("Find error: %v", err)
	}
	if found != "" {
		t.Errorf("Find with no config present = %q, want empty", found)
	}
}

func TestLoadFromDirDefaultsWhenMissing(t *testing.T) {
	dir := t.TempDir()
	opts, err := LoadFromDir(dir)
	if err != nil {
		t.Fatalf("LoadFromDir error: %v", err)
	}
	if opts.TargetValue() != types.WASM32 {
		t.Error("LoadFromDir with no config file should yield Default()")
	}
}
