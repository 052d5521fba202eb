package recycle

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPool_LIFOPerType(t *testing.T) {
	p := New[string]()
	p.Put("row", "a")
	p.Put("row", "b")
	p.Put("header", "h")

	var got []string
	for {
		k, ok := p.Get("row")
		if !ok {
			break
		}
		got = append(got, k)
	}
	if diff := cmp.Diff([]string{"b", "a"}, got); diff != "" {
		t.Errorf("Get order mismatch (-want +got):\n%s", diff)
	}
	if k, ok := p.Get("header"); !ok || k != "h" {
		t.Errorf("Get(header) = (%q, %v), want (h, true)", k, ok)
	}
	if _, ok := p.Get("footer"); ok {
		t.Error("Get(footer) ok = true for empty type")
	}
	if p.Len() != 0 {
		t.Errorf("Len() = %d, want 0", p.Len())
	}
}

func TestPool_Operations(t *testing.T) {
	type tc struct {
		run      func(p *Pool[string])
		wantLen  int
		pooled   []string
		unpooled []string
	}

	tests := map[string]tc{
		"put is idempotent": {
			run: func(p *Pool[string]) {
				p.Put("row", "a")
				p.Put("row", "a")
			},
			wantLen: 1,
			pooled:  []string{"a"},
		},
		"put under new type moves key": {
			run: func(p *Pool[string]) {
				p.Put("row", "a")
				p.Put("header", "a")
			},
			wantLen: 1,
			pooled:  []string{"a"},
		},
		"remove present key": {
			run: func(p *Pool[string]) {
				p.Put("row", "a")
				p.Put("row", "b")
				p.Put("row", "c")
				p.Remove("b")
			},
			wantLen:  2,
			pooled:   []string{"a", "c"},
			unpooled: []string{"b"},
		},
		"remove missing key": {
			run: func(p *Pool[string]) {
				p.Put("row", "a")
				p.Remove("zzz")
			},
			wantLen: 1,
			pooled:  []string{"a"},
		},
		"clear all": {
			run: func(p *Pool[string]) {
				p.Put("row", "a")
				p.Put("header", "b")
				p.ClearAll()
			},
			wantLen:  0,
			unpooled: []string{"a", "b"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			p := New[string]()
			tt.run(p)
			if p.Len() != tt.wantLen {
				t.Errorf("Len() = %d, want %d", p.Len(), tt.wantLen)
			}
			for _, k := range tt.pooled {
				if !p.Contains(k) {
					t.Errorf("Contains(%q) = false, want true", k)
				}
			}
			for _, k := range tt.unpooled {
				if p.Contains(k) {
					t.Errorf("Contains(%q) = true, want false", k)
				}
			}
		})
	}
}

func TestPool_MovedKeyServedFromNewType(t *testing.T) {
	p := New[string]()
	p.Put("row", "a")
	p.Put("header", "a")

	if _, ok := p.Get("row"); ok {
		t.Error("Get(row) ok = true after key moved to header")
	}
	if k, ok := p.Get("header"); !ok || k != "a" {
		t.Errorf("Get(header) = (%q, %v), want (a, true)", k, ok)
	}
}
