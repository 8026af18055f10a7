package harvest

import "sync"

// FailureSet accumulates the request URLs of identifiers that produced no
// record. Safe for concurrent use.
type FailureSet struct {
	mu   sync.Mutex
	urls []string
}

// Add records one failed URL.
func (f *FailureSet) Add(url string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.urls = append(f.urls, url)
}

// URLs returns a copy of the recorded URLs in insertion order.
func (f *FailureSet) URLs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.urls))
	copy(out, f.urls)
	return out
}

// Len returns the number of recorded failures.
func (f *FailureSet) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.urls)
}
