package identity

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestLoadCacheMissingFile(t *testing.T) {
	cache, err := LoadCache(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("LoadCache returned error for missing file: %v", err)
	}
	if cache.Len() != 0 {
		t.Errorf("expected empty cache, got %d entries", cache.Len())
	}
}

func TestLoadCacheMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if _, err := LoadCache(path); err == nil {
		t.Fatal("expected error for malformed cache file")
	}
}

func TestCacheRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")

	cache := NewCache()
	cache.Put("sun ra", Entry{
		MBID:          "9a3bf45c-347d-4630-894d-7cf3e8e0b632",
		CanonicalName: "Sun Ra",
		SortName:      "Sun Ra",
		Source:        SourceExternal,
		Score:         100,
	})
	cache.Put("Sly Stone", Entry{
		CanonicalName: "Sly Stone",
		Source:        SourceCatalog,
	})

	if err := cache.Save(path); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	loaded, err := LoadCache(path)
	if err != nil {
		t.Fatalf("LoadCache returned error: %v", err)
	}
	if loaded.Len() != cache.Len() {
		t.Fatalf("loaded %d entries, want %d", loaded.Len(), cache.Len())
	}
	for _, key := range cache.Keys() {
		want, _ := cache.Get(key)
		got, ok := loaded.Get(key)
		if !ok {
			t.Fatalf("key %q missing after round trip", key)
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("entry %q = %#v, want %#v", key, got, want)
		}
	}
}

func TestCacheRoundTripEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	if err := NewCache().Save(path); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	loaded, err := LoadCache(path)
	if err != nil {
		t.Fatalf("LoadCache returned error: %v", err)
	}
	if loaded.Len() != 0 {
		t.Errorf("expected empty cache, got %d entries", loaded.Len())
	}
}

func TestPutResolvedWritesBothForms(t *testing.T) {
	cache := NewCache()
	entry := Entry{CanonicalName: "Daft Punk", Source: SourceExternal, Score: 95}
	cache.PutResolved("Daft Punk (Live)", entry)

	if _, ok := cache.Get("Daft Punk (Live)"); !ok {
		t.Error("raw key missing")
	}
	if _, ok := cache.Get("daft punk"); !ok {
		t.Error("normalized key missing")
	}
	if cache.Len() != 2 {
		t.Errorf("Len = %d, want 2", cache.Len())
	}
}

func TestPutResolvedAlreadyNormalized(t *testing.T) {
	cache := NewCache()
	cache.PutResolved("daft punk", Entry{CanonicalName: "Daft Punk", Source: SourceExternal})
	if cache.Len() != 1 {
		t.Errorf("Len = %d, want single key when raw form is already normalized", cache.Len())
	}
}

func TestSaveBackupSnapshot(t *testing.T) {
	dir := t.TempDir()
	backup := filepath.Join(dir, "cache.backup.json")

	cache := NewCache()
	cache.Put("sun ra", Entry{
		MBID:          "9a3bf45c-347d-4630-894d-7cf3e8e0b632",
		CanonicalName: "Sun Ra",
		Source:        SourceExternal,
		Score:         100,
	})
	if err := cache.SaveBackup(backup); err != nil {
		t.Fatalf("SaveBackup returned error: %v", err)
	}

	loaded, err := LoadCache(backup)
	if err != nil {
		t.Fatalf("LoadCache returned error: %v", err)
	}
	if loaded.Len() != 1 {
		t.Fatalf("backup holds %d entries, want 1", loaded.Len())
	}
	if _, ok := loaded.Get("sun ra"); !ok {
		t.Error("entry missing from backup")
	}
	if _, err := os.Stat(backup + ".tmp"); !os.IsNotExist(err) {
		t.Error("temp file left behind after backup")
	}
}

func TestSaveDoesNotLeaveTempFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cache.json")
	if err := NewCache().Save(path); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temp file left behind after save")
	}
}
