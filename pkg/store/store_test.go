package store

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type contextStore interface {
	Save(key string, value []byte) error
	Get(key string) ([]byte, bool, error)
	Remove(key string) error
}

func openStores(t *testing.T) map[string]contextStore {
	t.Helper()
	b, err := OpenBolt(filepath.Join(t.TempDir(), "state.db"))
	if err != nil {
		t.Fatalf("OpenBolt() error = %v", err)
	}
	t.Cleanup(func() { b.Close() })
	return map[string]contextStore{
		"memory": NewMemory(),
		"bolt":   b,
	}
}

func TestStore_SaveGetRemove(t *testing.T) {
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			if _, ok, err := s.Get("feed_offset"); err != nil || ok {
				t.Fatalf("Get() on empty store = (ok=%v, err=%v), want (false, nil)", ok, err)
			}

			value := []byte{0xcb, 0x40, 0x59}
			if err := s.Save("feed_offset", value); err != nil {
				t.Fatalf("Save() error = %v", err)
			}
			value[0] = 0 // stores keep their own copy

			got, ok, err := s.Get("feed_offset")
			if err != nil || !ok {
				t.Fatalf("Get() = (ok=%v, err=%v), want found", ok, err)
			}
			if diff := cmp.Diff([]byte{0xcb, 0x40, 0x59}, got); diff != "" {
				t.Errorf("Get() mismatch (-want +got):\n%s", diff)
			}

			if err := s.Remove("feed_offset"); err != nil {
				t.Fatalf("Remove() error = %v", err)
			}
			if _, ok, _ := s.Get("feed_offset"); ok {
				t.Error("Get() after Remove() found the key")
			}
			if err := s.Remove("missing"); err != nil {
				t.Errorf("Remove(missing) error = %v", err)
			}
		})
	}
}

func TestBolt_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")

	b, err := OpenBolt(path, WithBucket("lists"))
	if err != nil {
		t.Fatalf("OpenBolt() error = %v", err)
	}
	if err := b.Save("a_offset", []byte("1")); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := b.Save("b_offset", []byte("2")); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := b.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	b, err = OpenBolt(path, WithBucket("lists"))
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer b.Close()

	keys, err := b.Keys()
	if err != nil {
		t.Fatalf("Keys() error = %v", err)
	}
	if diff := cmp.Diff([]string{"a_offset", "b_offset"}, keys); diff != "" {
		t.Errorf("Keys() mismatch (-want +got):\n%s", diff)
	}
}

func TestOpenBolt_InvalidOptions(t *testing.T) {
	type tc struct {
		opt BoltOption
	}

	tests := map[string]tc{
		"empty bucket":  {opt: WithBucket("")},
		"zero timeout":  {opt: WithLockTimeout(0)},
		"negative wait": {opt: WithLockTimeout(-1)},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := OpenBolt(filepath.Join(t.TempDir(), "x.db"), tt.opt)
			if err == nil {
				t.Error("OpenBolt() error = nil, want error")
			}
		})
	}
}

func TestMemory_Len(t *testing.T) {
	m := NewMemory()
	m.Save("a", nil)
	m.Save("b", []byte("x"))
	m.Save("a", []byte("y"))
	if m.Len() != 2 {
		t.Errorf("Len() = %d, want 2", m.Len())
	}
}
