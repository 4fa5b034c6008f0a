package commands

import (
	"testing"
)

func TestRevisionCacheRoundTrip(t *testing.T) {
	workdir := t.TempDir()

	if revision := cachedRevision(workdir, "1BxiMVs"); revision != "" {
		t.Fatalf("Expected no cached revision, got '%v'", revision)
	}

	if err := cacheRevision(workdir, "1BxiMVs", "r17"); err != nil {
		t.Fatalf("Unexpected error caching revision (%v)", err)
	}

	if revision := cachedRevision(workdir, "1BxiMVs"); revision != "r17" {
		t.Errorf("Incorrect cached revision\n   expected: %v\n   got:      %v", "r17", revision)
	}
}

func TestFailedRetrievalDoesNotSuppressRetry(t *testing.T) {
	workdir := t.TempDir()

	if err := cacheRevision(workdir, "1BxiMVs", "r17"); err != nil {
		t.Fatalf("Unexpected error caching revision (%v)", err)
	}

	// a new revision is reported but the retrieval fails, so the cache is
	// not updated - the next run must still see the spreadsheet as changed
	latest := "r18"

	if cachedRevision(workdir, "1BxiMVs") == latest {
		t.Fatalf("Expected revision %v to read as changed", latest)
	}

	if cachedRevision(workdir, "1BxiMVs") == latest {
		t.Fatalf("Expected revision %v to still read as changed on retry", latest)
	}

	// the retry succeeds and caches the revision - only now is it skipped
	if err := cacheRevision(workdir, "1BxiMVs", latest); err != nil {
		t.Fatalf("Unexpected error caching revision (%v)", err)
	}

	if cachedRevision(workdir, "1BxiMVs") != latest {
		t.Errorf("Expected revision %v to read as unchanged after a successful retrieval", latest)
	}
}
