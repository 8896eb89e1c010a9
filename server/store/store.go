package store

import (
	"context"
	"embed"

	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed schema.sql
var schema embed.FS

// DB is a thin pgxpool wrapper. It mirrors game state for reporting; the
// in-memory registry stays the source of truth and never reads back.
type DB struct{ *pgxpool.Pool }

func Open(dsn string) (*DB, error) {
	p, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		return nil, err
	}
	return &DB{p}, nil
}

func (db *DB) Close(ctx context.Context)      { db.Pool.Close() }
func (db *DB) Ping(ctx context.Context) error { return db.Pool.Ping(ctx) }

func Migrate(ctx context.Context, db *DB) error {
	sqlBytes, err := schema.ReadFile("schema.sql")
	if err != nil {
		return err
	}
	_, err = db.Exec(ctx, string(sqlBytes))
	return err
}

/* -----------------------------
   Minimal write helpers
------------------------------*/

// Record a freshly created game.
func (db *DB) CreateGame(ctx context.Context, id string, sb, bb, buyIn, maxPlayers int, difficulty string) error {
	_, err := db.Exec(ctx, `
        INSERT INTO poker_games(id, small_blind, big_blind, buy_in, max_players, ai_difficulty)
        VALUES ($1,$2,$3,$4,$5,$6)
        ON CONFLICT (id) DO NOTHING
    `, id, sb, bb, buyIn, maxPlayers, difficulty)
	return err
}

// Record one seat of a game.
func (db *DB) AddSeat(ctx context.Context, gameID string, position int, userID, name string, isAI bool, chips int) error {
	var uid any
	if userID != "" {
		uid = userID
	}
	_, err := db.Exec(ctx, `
        INSERT INTO poker_seats(game_id, position, user_id, name, is_ai, chips)
        VALUES ($1,$2,$3,$4,$5,$6)
        ON CONFLICT (game_id, position) DO NOTHING
    `, gameID, position, uid, name, isAI, chips)
	return err
}

// Record one applied action.
func (db *DB) RecordAction(ctx context.Context, gameID string, handNumber, position int, action string, amount *int) error {
	var amt any
	if amount != nil {
		amt = *amount
	}
	_, err := db.Exec(ctx, `
        INSERT INTO poker_actions(game_id, hand_number, position, action, amount)
        VALUES ($1,$2,$3,$4,$5)
    `, gameID, handNumber, position, action, amt)
	return err
}

// Record a settled hand's headline result.
func (db *DB) RecordHand(ctx context.Context, gameID string, handNumber, winnerPos, potWon int, board string) error {
	_, err := db.Exec(ctx, `
        INSERT INTO poker_hands(game_id, hand_number, winner_pos, pot_won, board)
        VALUES ($1,$2,$3,$4,$5)
        ON CONFLICT (game_id, hand_number) DO NOTHING
    `, gameID, handNumber, winnerPos, potWon, board)
	return err
}

// Refresh a seat's chips and active flag after settlement.
func (db *DB) UpdateSeat(ctx context.Context, gameID string, position, chips int, active bool) error {
	_, err := db.Exec(ctx, `
        UPDATE poker_seats SET chips = $3, is_active = $4
         WHERE game_id = $1 AND position = $2
    `, gameID, position, chips, active)
	return err
}

// Mark a game finished.
func (db *DB) FinishGame(ctx context.Context, gameID string) error {
	_, err := db.Exec(ctx, `
        UPDATE poker_games SET status = 'finished', finished_at = now()
         WHERE id = $1
    `, gameID)
	return err
}
