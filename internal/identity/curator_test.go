package identity

import "testing"

func TestCurateKeepsCatalogEntriesUnconditionally(t *testing.T) {
	cache := NewCache()
	// Canonical name wildly different from the key; a catalog entry must
	// still survive.
	cache.Put("zzz", Entry{CanonicalName: "Completely Different", Source: SourceCatalog})

	result := Curate(cache, 80)
	if _, ok := result.Kept.Get("zzz"); !ok {
		t.Error("catalog entry removed by curator")
	}
	if len(result.Removed) != 0 {
		t.Errorf("Removed len = %d, want 0", len(result.Removed))
	}
	if result.CatalogKept != 1 {
		t.Errorf("CatalogKept = %d, want 1", result.CatalogKept)
	}
}

func TestCurateQuarantinesDriftedExternalEntry(t *testing.T) {
	cache := NewCache()
	// Stored score is high, but the recomputed textual similarity is low;
	// the stale stored score must not save the entry.
	cache.Put("Abba", Entry{
		CanonicalName: "ABBA Tribute Band",
		Source:        SourceExternal,
		Score:         95,
	})

	result := Curate(cache, 80)
	if _, ok := result.Kept.Get("Abba"); ok {
		t.Error("drifted external entry kept")
	}
	removed, ok := result.Removed["Abba"]
	if !ok {
		t.Fatal("drifted entry missing from removed set")
	}
	if removed.Entry.Score != 95 {
		t.Errorf("removed entry Score = %d, want original 95", removed.Entry.Score)
	}
	if removed.Similarity >= 80 {
		t.Errorf("recomputed similarity = %d, want < 80", removed.Similarity)
	}
}

func TestCurateRefreshesKeptScore(t *testing.T) {
	cache := NewCache()
	cache.Put("sun ra", Entry{
		CanonicalName: "Sun Ra",
		Source:        SourceExternal,
		Score:         42, // stale
	})

	result := Curate(cache, 80)
	kept, ok := result.Kept.Get("sun ra")
	if !ok {
		t.Fatal("matching external entry removed")
	}
	if kept.Score != 100 {
		t.Errorf("Score = %d, want recomputed 100", kept.Score)
	}
	if result.Checked != 1 {
		t.Errorf("Checked = %d, want 1", result.Checked)
	}
}

func TestCuratePassesThroughUnknownSource(t *testing.T) {
	cache := NewCache()
	entry := Entry{CanonicalName: "whatever", Source: SourceUnknown, Score: 7}
	cache.Put("key", entry)

	result := Curate(cache, 80)
	kept, ok := result.Kept.Get("key")
	if !ok {
		t.Fatal("unknown-source entry removed")
	}
	if kept != entry {
		t.Errorf("unknown-source entry changed: %#v", kept)
	}
}
