package progress

import (
	"os"
	"path/filepath"
	"testing"
)

func tempStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "save.json"))
}

func TestLoadMissingGivesDefaults(t *testing.T) {
	s := tempStore(t)
	p := s.Load()
	if p.Coins != 0 {
		t.Fatalf("expected 0 coins, got %d", p.Coins)
	}
	if !p.Checkpoints[RunwayCheckpoint] {
		t.Fatalf("runway checkpoint must always be unlocked")
	}
	if len(p.Upgrades) != 0 {
		t.Fatalf("expected no upgrades, got %v", p.Upgrades)
	}
}

func TestLoadMalformedGivesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "save.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	s := NewStore(path)
	p := s.Load()
	if p.Coins != 0 || !p.Checkpoints[RunwayCheckpoint] {
		t.Fatalf("malformed save should reset to defaults, got %+v", p)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "save.json")
	s := NewStore(path)
	s.Load()
	s.AddCoins(250, 1234.7)
	s.SetUpgradeLevel("wings", 2)
	s.UnlockCheckpoint("city")

	s2 := NewStore(path)
	p := s2.Load()
	if p.Coins != 250 {
		t.Fatalf("expected 250 coins after reload, got %d", p.Coins)
	}
	if p.HighestDistance != 1234.7 {
		t.Fatalf("expected highest distance 1234.7, got %v", p.HighestDistance)
	}
	if p.Upgrades["wings"] != 2 {
		t.Fatalf("expected wings tier 2, got %d", p.Upgrades["wings"])
	}
	if !p.Checkpoints["city"] {
		t.Fatalf("expected city checkpoint unlocked")
	}
}

func TestHighestDistanceMonotone(t *testing.T) {
	s := tempStore(t)
	s.Load()
	s.AddCoins(10, 500)
	s.AddCoins(10, 200)
	if d := s.Current().HighestDistance; d != 500 {
		t.Fatalf("highest distance must not decrease, got %v", d)
	}
}

func TestSpendCoinsInsufficient(t *testing.T) {
	s := tempStore(t)
	s.Load()
	s.AddCoins(100, 0)
	if s.SpendCoins(150) {
		t.Fatalf("spend above balance should fail")
	}
	if s.Current().Coins != 100 {
		t.Fatalf("failed spend must not mutate balance, got %d", s.Current().Coins)
	}
	if !s.SpendCoins(100) {
		t.Fatalf("exact spend should succeed")
	}
	if s.Current().Coins != 0 {
		t.Fatalf("expected 0 coins after spend, got %d", s.Current().Coins)
	}
}

func TestCurrentSnapshotDetached(t *testing.T) {
	s := tempStore(t)
	s.Load()
	snap := s.Current()

	s.SetUpgradeLevel("wings", 1)
	s.UnlockCheckpoint("city")

	if snap.Upgrades["wings"] != 0 {
		t.Fatalf("snapshot must not observe later upgrades, got tier %d", snap.Upgrades["wings"])
	}
	if snap.Checkpoints["city"] {
		t.Fatalf("snapshot must not observe later unlocks")
	}
	if s.Current().Upgrades["wings"] != 1 || !s.Current().Checkpoints["city"] {
		t.Fatalf("store itself should carry the mutations")
	}
}

func TestUnlockCheckpointIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "save.json")
	s := NewStore(path)
	s.Load()
	if !s.UnlockCheckpoint("desert") {
		t.Fatalf("first unlock should report true")
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("save file missing after unlock: %v", err)
	}
	before := info.ModTime()

	if s.UnlockCheckpoint("desert") {
		t.Fatalf("second unlock should be a no-op")
	}
	info, err = os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if !info.ModTime().Equal(before) {
		t.Fatalf("redundant unlock must not rewrite the save file")
	}
}
