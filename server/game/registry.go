package game

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"holdem-room/server/ai"
	"holdem-room/server/engine"
)

const maxSeats = 8

// CreateParams configures a new table. Humans take the lowest positions;
// the rest fill with AI seats at the requested difficulty.
type CreateParams struct {
	HumanIDs   []string // one per human seat, lookup keys
	HumanNames []string // optional display names, parallel to HumanIDs
	AICount    int
	SmallBlind int
	BigBlind   int
	BuyIn      int
	Difficulty string
	Profiles   map[string]ai.Profile // nil means ai.DefaultProfiles
	Seed       int64                 // 0 means time-seeded
}

// Registry is the process-wide map from game id to session. It is an
// explicit store object, not global state; sessions serialize their own
// operations, the registry only guards the map.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewRegistry() *Registry {
	return &Registry{sessions: map[string]*Session{}}
}

// Create allocates a session, deals the first hand and registers it.
func (r *Registry) Create(p CreateParams) (*Session, error) {
	humans := len(p.HumanIDs)
	if humans < 1 {
		return nil, fmt.Errorf("%w: need at least one human seat", ErrInvalidAction)
	}
	total := humans + p.AICount
	if total > maxSeats {
		total = maxSeats
	}
	if total < 2 {
		return nil, fmt.Errorf("%w: need at least 2 seats", ErrInvalidAction)
	}

	seed := p.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	table, err := engine.New(engine.Config{
		SB:    p.SmallBlind,
		BB:    p.BigBlind,
		BuyIn: p.BuyIn,
		Seats: total,
	}, rng)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAction, err)
	}

	profiles := p.Profiles
	if profiles == nil {
		profiles = ai.DefaultProfiles
	}
	prof, ok := profiles[p.Difficulty]
	if !ok {
		prof = ai.ProfileFor(p.Difficulty)
	}

	seats := make([]Seat, total)
	policies := map[int]*ai.Policy{}
	for i := 0; i < total; i++ {
		st := Seat{Position: i, Chips: p.BuyIn, Active: true}
		if i < humans {
			st.UserID = p.HumanIDs[i]
			st.Name = p.HumanIDs[i]
			if i < len(p.HumanNames) && p.HumanNames[i] != "" {
				st.Name = p.HumanNames[i]
			}
		} else {
			st.IsAI = true
			st.Name = fmt.Sprintf("AI %d", i-humans+1)
			policies[i] = ai.New(p.Difficulty, prof, rand.New(rand.NewSource(seed+int64(i)+1)))
		}
		seats[i] = st
	}

	s := newSession(uuid.NewString(), table, seats, policies)
	if err := s.begin(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEngineRejected, err)
	}

	r.mu.Lock()
	r.sessions[s.ID] = s
	r.mu.Unlock()
	return s, nil
}

// Get looks a session up by id.
func (r *Registry) Get(id string) (*Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

// Len reports how many sessions are live.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
