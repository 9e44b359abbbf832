package debug

import (
	"runtime"
	"testing"
)

func TestMemFields_HumanizesBytes(t *testing.T) {
	ms := runtime.MemStats{HeapAlloc: 2 << 20, NumGC: 3}
	fields := memFields(&ms, 1<<30)
	if len(fields) != 8 {
		t.Fatalf("expected 8 fields, got %d", len(fields))
	}
	found := map[string]string{}
	for _, f := range fields {
		a, ok := f.(interface{ String() string })
		if !ok {
			t.Fatalf("unexpected field %T", f)
		}
		found[a.String()] = ""
	}
	if _, ok := found["heap_alloc=2.0 MiB"]; !ok {
		t.Fatalf("heap_alloc not humanized: %v", found)
	}
	if _, ok := found["rss=1.0 GiB"]; !ok {
		t.Fatalf("rss not humanized: %v", found)
	}
}
