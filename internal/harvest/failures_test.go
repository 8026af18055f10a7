package harvest_test

import (
	"fmt"
	"sync"
	"testing"

	"aniharvest/internal/harvest"
)

func TestFailureSetConcurrentAdds(t *testing.T) {
	set := &harvest.FailureSet{}

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			set.Add(fmt.Sprintf("https://example.test/list/%d", i))
		}(i)
	}
	wg.Wait()

	if set.Len() != 50 {
		t.Fatalf("len = %d, want 50", set.Len())
	}
	urls := set.URLs()
	if len(urls) != 50 {
		t.Fatalf("urls = %d, want 50", len(urls))
	}
}

func TestFormatEpisodes(t *testing.T) {
	if got := harvest.FormatEpisodes(4, 4); got != "4" {
		t.Fatalf("single episode = %q, want 4", got)
	}
	if got := harvest.FormatEpisodes(2, 13); got != "2-13" {
		t.Fatalf("range = %q, want 2-13", got)
	}
}
