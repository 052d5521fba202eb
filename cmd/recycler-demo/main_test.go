package main

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseConfig(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "demo.toml")
	err := os.WriteFile(configPath, []byte("items = 50\ngrid = true\ncolumns = 4\nstate = \"feed.db\"\n"), 0o644)
	if err != nil {
		t.Fatal(err)
	}

	type tc struct {
		args    []string
		want    demoConfig
		wantErr bool
	}

	tests := map[string]tc{
		"defaults": {
			want: defaultDemoConfig(),
		},
		"flags": {
			args: []string{"-items", "7", "-grid", "-ahead", "0"},
			want: demoConfig{Items: 7, Grid: true, Columns: 3, RenderAhead: 0},
		},
		"config file": {
			args: []string{"-config", configPath},
			want: demoConfig{Items: 50, Grid: true, Columns: 4, RenderAhead: 10, StatePath: "feed.db"},
		},
		"flags override config file": {
			args: []string{"-config", configPath, "-items", "9", "-grid=false"},
			want: demoConfig{Items: 9, Grid: false, Columns: 4, RenderAhead: 10, StatePath: "feed.db"},
		},
		"missing config file": {
			args:    []string{"-config", filepath.Join(dir, "nope.toml")},
			wantErr: true,
		},
		"invalid columns": {
			args:    []string{"-columns", "0"},
			wantErr: true,
		},
		"unknown flag": {
			args:    []string{"-nope"},
			wantErr: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := parseConfig("test", tt.args, io.Discard)
			if tt.wantErr {
				if err == nil {
					t.Fatal("parseConfig() error = nil, want error")
				}
				return
			}
			if err != nil {
				t.Fatalf("parseConfig() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("parseConfig() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestGenerateItems(t *testing.T) {
	items := generateItems(0, 25)
	seen := make(map[string]bool)
	for i, it := range items {
		if seen[it.ID] {
			t.Errorf("item %d has duplicate ID %s", i, it.ID)
		}
		seen[it.ID] = true
		wantType := typeEntry
		if i%sectionSize == 0 {
			wantType = typeHeader
		}
		if it.Type != wantType {
			t.Errorf("item %d Type = %q, want %q", i, it.Type, wantType)
		}
	}

	// IDs depend only on the title.
	again := generateItems(20, 5)
	if again[0].ID != items[20].ID {
		t.Errorf("ID of Section 2 = %s, want %s", again[0].ID, items[20].ID)
	}
}

func TestSnapshot(t *testing.T) {
	type tc struct {
		cfg          demoConfig
		width        int
		wantSameLine []string
		wantAbsent   []string
	}

	list := defaultDemoConfig()
	grid := defaultDemoConfig()
	grid.Grid = true

	tests := map[string]tc{
		"list": {
			cfg:          list,
			width:        80,
			wantSameLine: []string{"Item 7"},
			wantAbsent:   []string{"Item 8"},
		},
		"grid": {
			cfg:          grid,
			width:        81,
			wantSameLine: []string{"Item 1", "Item 2", "Item 3"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			out, err := snapshot(tt.cfg, tt.width, 10)
			if err != nil {
				t.Fatalf("snapshot() error = %v", err)
			}
			if !strings.Contains(out, "Section 0") {
				t.Errorf("snapshot missing the first header:\n%s", out)
			}
			if !anyLineContainsAll(out, tt.wantSameLine) {
				t.Errorf("no line contains all of %q:\n%s", tt.wantSameLine, out)
			}
			for _, s := range tt.wantAbsent {
				if strings.Contains(out, s) {
					t.Errorf("snapshot contains %q outside the viewport:\n%s", s, out)
				}
			}
		})
	}
}

func TestSnapshot_PersistsState(t *testing.T) {
	cfg := defaultDemoConfig()
	cfg.StatePath = filepath.Join(t.TempDir(), "state.db")

	if _, err := snapshot(cfg, 80, 10); err != nil {
		t.Fatalf("first snapshot() error = %v", err)
	}
	if _, err := snapshot(cfg, 80, 10); err != nil {
		t.Fatalf("second snapshot() error = %v", err)
	}
	if _, err := os.Stat(cfg.StatePath); err != nil {
		t.Errorf("state file missing: %v", err)
	}
}

func anyLineContainsAll(out string, subs []string) bool {
	for _, line := range strings.Split(out, "\n") {
		all := true
		for _, s := range subs {
			if !strings.Contains(line, s) {
				all = false
				break
			}
		}
		if all {
			return true
		}
	}
	return false
}
