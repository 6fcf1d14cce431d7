// Package progress persists the player's coins, upgrade levels and unlocked
// checkpoints. Reads never fail the caller: missing or malformed data falls
// back to defaults. Writes are synchronous and issued once per logical event.
package progress

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/danmarai/slingshot-flyer/internal/models"
)

const defaultSavePath = "data/save.json"

// RunwayCheckpoint is always unlocked.
const RunwayCheckpoint = "runway"

type Store struct {
	path string
	cur  models.PlayerProgress
}

func NewStore(path string) *Store {
	if path == "" {
		path = defaultSavePath
	}
	return &Store{path: path, cur: defaults()}
}

func defaults() models.PlayerProgress {
	return models.PlayerProgress{
		Coins:       0,
		Upgrades:    map[string]int{},
		Checkpoints: map[string]bool{RunwayCheckpoint: true},
	}
}

// Load reads the save blob from disk. On any failure it installs defaults and
// returns them; persistence problems are logged, never surfaced.
func (s *Store) Load() models.PlayerProgress {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("progress: read %s: %v (using defaults)", s.path, err)
		}
		s.cur = defaults()
		return s.Current()
	}
	var p models.PlayerProgress
	if err := json.Unmarshal(data, &p); err != nil {
		log.Printf("progress: malformed save %s: %v (using defaults)", s.path, err)
		s.cur = defaults()
		return s.Current()
	}
	if p.Coins < 0 {
		p.Coins = 0
	}
	if p.HighestDistance < 0 {
		p.HighestDistance = 0
	}
	if p.Upgrades == nil {
		p.Upgrades = map[string]int{}
	}
	if p.Checkpoints == nil {
		p.Checkpoints = map[string]bool{}
	}
	p.Checkpoints[RunwayCheckpoint] = true
	s.cur = p
	return s.Current()
}

// Current returns a snapshot of the in-memory progress. The map fields are
// cloned so the snapshot stays stable across later mutations and can be read
// off the simulation goroutine.
func (s *Store) Current() models.PlayerProgress {
	p := s.cur
	p.Upgrades = make(map[string]int, len(s.cur.Upgrades))
	for k, v := range s.cur.Upgrades {
		p.Upgrades[k] = v
	}
	p.Checkpoints = make(map[string]bool, len(s.cur.Checkpoints))
	for k, v := range s.cur.Checkpoints {
		p.Checkpoints[k] = v
	}
	return p
}

// Save persists the current progress synchronously. A returned error means
// the backing store failed; callers log it and continue, it must never abort
// a run.
func (s *Store) Save() error {
	data, err := json.MarshalIndent(&s.cur, "", "  ")
	if err != nil {
		return fmt.Errorf("encode progress: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	return nil
}

// saveLogged wraps Save for mutation paths where failure is non-fatal.
func (s *Store) saveLogged() {
	if err := s.Save(); err != nil {
		log.Printf("progress: %v (continuing)", err)
	}
}

// AddCoins credits earned coins and tracks the best run distance.
func (s *Store) AddCoins(coins int, runDistance float64) {
	if coins > 0 {
		s.cur.Coins += coins
	}
	if runDistance > s.cur.HighestDistance {
		s.cur.HighestDistance = runDistance
	}
	s.saveLogged()
}

// SpendCoins deducts a purchase price. Reports false with no mutation when
// the balance is insufficient.
func (s *Store) SpendCoins(cost int) bool {
	if cost < 0 || s.cur.Coins < cost {
		return false
	}
	s.cur.Coins -= cost
	return true
}

// UpgradeLevel returns the owned tier for an upgrade key (0 if unowned).
func (s *Store) UpgradeLevel(key string) int {
	return s.cur.Upgrades[key]
}

// SetUpgradeLevel records a new tier and persists.
func (s *Store) SetUpgradeLevel(key string, level int) {
	s.cur.Upgrades[key] = level
	s.saveLogged()
}

// CheckpointUnlocked reports whether a zone start is available.
func (s *Store) CheckpointUnlocked(zone string) bool {
	return s.cur.Checkpoints[zone]
}

// UnlockCheckpoint unlocks a zone start. Idempotent: re-unlocking an already
// unlocked zone neither mutates state nor triggers a save. Returns true only
// when the checkpoint was newly unlocked.
func (s *Store) UnlockCheckpoint(zone string) bool {
	if s.cur.Checkpoints[zone] {
		return false
	}
	s.cur.Checkpoints[zone] = true
	s.saveLogged()
	return true
}
