package listing_test

import (
	"testing"

	"aniharvest/internal/listing"
)

const sampleMarkup = `
<div class="episodes">
  <ul>
    <li class="ep-item active" data-id="101">
      <a href="/watch/sample-show-101?ep=101" title="Episode 1">1</a>
    </li>
    <li class="ep-item" data-id="102">
      <a href="/watch/sample-show-101?ep=102" title="Episode 2">2</a>
    </li>
    <li class="nav-item" data-id="999"><a href="/browse">more</a></li>
  </ul>
</div>`

func TestParseEpisodeItems(t *testing.T) {
	items, err := listing.ParseEpisodeItems(sampleMarkup)
	if err != nil {
		t.Fatalf("ParseEpisodeItems returned error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 episode items, got %d: %#v", len(items), items)
	}
	if items[0].ID != "101" || items[1].ID != "102" {
		t.Fatalf("unexpected ids: %#v", items)
	}
	if items[0].Href != "/watch/sample-show-101?ep=101" {
		t.Fatalf("unexpected href: %q", items[0].Href)
	}
}

func TestParseEpisodeItemsNoMatches(t *testing.T) {
	items, err := listing.ParseEpisodeItems(`<p>nothing here</p>`)
	if err != nil {
		t.Fatalf("ParseEpisodeItems returned error: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected no items, got %#v", items)
	}
}

func TestParseEpisodeItemsMissingAttributes(t *testing.T) {
	items, err := listing.ParseEpisodeItems(`<li class="ep-item">no id, no link</li>`)
	if err != nil {
		t.Fatalf("ParseEpisodeItems returned error: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if items[0].ID != "" || items[0].Href != "" {
		t.Fatalf("expected empty attributes, got %#v", items[0])
	}
}
