package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/wonny/rebal/internal/market"
	"github.com/wonny/rebal/internal/vr"
	"github.com/wonny/rebal/pkg/config"
)

// Session is the externally-owned mutable state around the stateless
// engine: the user's current parameters and the last completed evaluation.
// The engine never touches this; callers load it, pass values in, and
// write results back.
type Session struct {
	Ticker  string  `json:"ticker"`
	Shares  int64   `json:"shares"`
	Pool    float64 `json:"pool"`
	VPrev   float64 `json:"v_prev"`
	D       float64 `json:"d"`
	Band    float64 `json:"band"`
	Contrib float64 `json:"contrib"`

	LastQuote    *market.Quote      `json:"last_quote,omitempty"`
	LastResult   *vr.ValuationResult `json:"last_result,omitempty"`
	LastDecision *vr.ActionDecision  `json:"last_decision,omitempty"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

// Input assembles a ValuationInput from the session and a price.
func (s *Session) Input(price float64) vr.ValuationInput {
	return vr.ValuationInput{
		Price:   price,
		Shares:  s.Shares,
		Pool:    s.Pool,
		VPrev:   s.VPrev,
		D:       s.D,
		Band:    s.Band,
		Contrib: s.Contrib,
	}
}

// Store persists the session as a JSON file under the data directory.
// ⭐ SSOT: 세션 상태 파일 I/O는 여기서만
type Store struct {
	path     string
	defaults config.StrategyConfig
	mu       sync.Mutex
}

// NewStore creates a store writing to dataDir/state.json
func NewStore(dataDir string, defaults config.StrategyConfig) *Store {
	return &Store{
		path:     filepath.Join(dataDir, "state.json"),
		defaults: defaults,
	}
}

// Load reads the persisted session. A missing file yields a fresh session
// seeded from the configured strategy defaults.
func (st *Store) Load() (*Session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	data, err := os.ReadFile(st.path)
	if os.IsNotExist(err) {
		return &Session{
			Ticker:  st.defaults.Ticker,
			D:       st.defaults.D,
			Band:    st.defaults.Band,
			Contrib: st.defaults.Contrib,
		}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read state file: %w", err)
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode state file: %w", err)
	}
	return &s, nil
}

// Save writes the session atomically (write temp file, then rename).
func (st *Store) Save(s *Session) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	s.UpdatedAt = time.Now()

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(st.path), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	tmp := st.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write state file: %w", err)
	}
	if err := os.Rename(tmp, st.path); err != nil {
		return fmt.Errorf("replace state file: %w", err)
	}

	return nil
}
