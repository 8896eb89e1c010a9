package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"holdem-room/server/ai"
	"holdem-room/server/game"
	"holdem-room/server/store"
)

func Router(reg *game.Registry, db *store.DB, profiles map[string]ai.Profile) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/api/health", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, map[string]any{"ok": true})
	})

	r.Route("/api/poker/games", func(r chi.Router) {
		// Create a table: 1-2 humans at the lowest positions, AI fills
		// the rest.
		r.Post("/", func(w http.ResponseWriter, req *http.Request) {
			var body struct {
				UserID         string `json:"user_id"`
				UserName       string `json:"user_name"`
				SecondUserID   string `json:"second_user_id"`
				SecondUserName string `json:"second_user_name"`
				AICount        int    `json:"ai_count"`
				SmallBlind     int    `json:"small_blind"`
				BigBlind       int    `json:"big_blind"`
				BuyIn          int    `json:"buy_in"`
				Difficulty     string `json:"difficulty"`
			}
			if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
				http.Error(w, "bad request body", http.StatusBadRequest)
				return
			}
			if strings.TrimSpace(body.UserID) == "" {
				http.Error(w, "user_id required", http.StatusBadRequest)
				return
			}
			p := game.CreateParams{
				HumanIDs:   []string{body.UserID},
				HumanNames: []string{body.UserName},
				AICount:    intDef(body.AICount, 6),
				SmallBlind: intDef(body.SmallBlind, 10),
				BigBlind:   intDef(body.BigBlind, 20),
				BuyIn:      intDef(body.BuyIn, 1000),
				Difficulty: strDef(body.Difficulty, "medium"),
				Profiles:   profiles,
			}
			if strings.TrimSpace(body.SecondUserID) != "" {
				p.HumanIDs = append(p.HumanIDs, body.SecondUserID)
				p.HumanNames = append(p.HumanNames, body.SecondUserName)
			}
			sess, err := reg.Create(p)
			if err != nil {
				writeError(w, err)
				return
			}
			mirrorCreate(req.Context(), db, sess, p)
			pos, _ := sess.SeatOf(body.UserID)
			writeJSON(w, sess.State(pos))
		})

		r.Route("/{gameID}", func(r chi.Router) {
			r.Get("/", func(w http.ResponseWriter, req *http.Request) {
				sess, err := reg.Get(chi.URLParam(req, "gameID"))
				if err != nil {
					writeError(w, err)
					return
				}
				writeJSON(w, sess.State(viewerPos(req, sess)))
			})

			r.Post("/action", func(w http.ResponseWriter, req *http.Request) {
				sess, err := reg.Get(chi.URLParam(req, "gameID"))
				if err != nil {
					writeError(w, err)
					return
				}
				var body struct {
					UserID string `json:"user_id"`
					Action int    `json:"action"`
					Amount *int   `json:"amount"`
				}
				if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
					http.Error(w, "bad request body", http.StatusBadRequest)
					return
				}
				pos, ok := sess.SeatOf(body.UserID)
				if !ok {
					http.Error(w, "player not in this game", http.StatusForbidden)
					return
				}
				snap, err := sess.ApplyAction(pos, game.ActionRequest{Code: body.Action, Amount: body.Amount})
				if err != nil {
					writeError(w, err)
					return
				}
				mirrorStep(req.Context(), db, sess, snap)
				writeJSON(w, snap)
			})

			r.Post("/ai-step", func(w http.ResponseWriter, req *http.Request) {
				sess, err := reg.Get(chi.URLParam(req, "gameID"))
				if err != nil {
					writeError(w, err)
					return
				}
				snap, err := sess.StepAI(viewerPos(req, sess))
				if err != nil {
					writeError(w, err)
					return
				}
				mirrorStep(req.Context(), db, sess, snap)
				writeJSON(w, snap)
			})

			r.Post("/new-hand", func(w http.ResponseWriter, req *http.Request) {
				sess, err := reg.Get(chi.URLParam(req, "gameID"))
				if err != nil {
					writeError(w, err)
					return
				}
				snap, err := sess.NewHand(viewerPos(req, sess))
				if err != nil {
					writeError(w, err)
					return
				}
				writeJSON(w, snap)
			})
		})
	})

	return r
}

// viewerPos resolves the ?viewer=<user id> query to a seat position, -1
// when absent or unknown.
func viewerPos(req *http.Request, sess *game.Session) int {
	v := req.URL.Query().Get("viewer")
	if v == "" {
		return -1
	}
	pos, ok := sess.SeatOf(v)
	if !ok {
		return -1
	}
	return pos
}

//
// ===== DB mirroring (best effort, never game-critical) =====
//

func mirrorCreate(ctx context.Context, db *store.DB, sess *game.Session, p game.CreateParams) {
	if db == nil {
		return
	}
	seats := sess.Seats()
	if err := db.CreateGame(ctx, sess.ID, p.SmallBlind, p.BigBlind, p.BuyIn, len(seats), p.Difficulty); err != nil {
		log.Printf("mirror create %s: %v", sess.ID, err)
		return
	}
	for _, st := range seats {
		if err := db.AddSeat(ctx, sess.ID, st.Position, st.UserID, st.Name, st.IsAI, st.Chips); err != nil {
			log.Printf("mirror seat %s/%d: %v", sess.ID, st.Position, err)
		}
	}
}

func mirrorStep(ctx context.Context, db *store.DB, sess *game.Session, snap *game.Snapshot) {
	if db == nil {
		return
	}
	if la := snap.LastAction; la != nil {
		if err := db.RecordAction(ctx, sess.ID, snap.HandNumber, la.Position, la.Kind, nil); err != nil {
			log.Printf("mirror action %s: %v", sess.ID, err)
		}
	}
	if !snap.IsHandOver || snap.WinnerInfo == nil {
		return
	}
	wi := snap.WinnerInfo
	if err := db.RecordHand(ctx, sess.ID, snap.HandNumber, wi.WinnerPosition, wi.PotWon, strings.Join(wi.PublicCards, " ")); err != nil {
		log.Printf("mirror hand %s: %v", sess.ID, err)
	}
	for _, st := range sess.Seats() {
		if err := db.UpdateSeat(ctx, sess.ID, st.Position, st.Chips, st.Active); err != nil {
			log.Printf("mirror seat %s/%d: %v", sess.ID, st.Position, err)
		}
	}
	if snap.IsGameOver {
		if err := db.FinishGame(ctx, sess.ID); err != nil {
			log.Printf("mirror finish %s: %v", sess.ID, err)
		}
	}
}

func writeError(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, game.ErrNotFound):
		code = http.StatusNotFound
	case errors.Is(err, game.ErrNotYourTurn):
		code = http.StatusConflict
	case errors.Is(err, game.ErrInvalidAction),
		errors.Is(err, game.ErrHandOver),
		errors.Is(err, game.ErrGameOver):
		code = http.StatusBadRequest
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]any{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
