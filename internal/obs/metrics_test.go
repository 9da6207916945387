package obs

import (
	"sync"
	"testing"
)

func TestMapMeter_Counter(t *testing.T) {
	m := &MapMeter{}
	m.Counter("a", 1)
	m.Counter("a", 2, Label{Key: "k", Value: "v"})
	if got := m.Count("a"); got != 3 {
		t.Fatalf("Count=%v", got)
	}
	if got := m.Count("missing"); got != 0 {
		t.Fatalf("Count(missing)=%v", got)
	}
}

func TestMapMeter_Histogram(t *testing.T) {
	m := &MapMeter{}
	m.Histogram("d", 1.5)
	m.Histogram("d", 2.5)
	s := m.Samples("d")
	if len(s) != 2 || s[0] != 1.5 || s[1] != 2.5 {
		t.Fatalf("Samples=%v", s)
	}
}

func TestMapMeter_Concurrent(t *testing.T) {
	m := &MapMeter{}
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.Counter("c", 1)
		}()
	}
	wg.Wait()
	if got := m.Count("c"); got != 50 {
		t.Fatalf("Count=%v", got)
	}
}
