// internal/store/sqlite.go
//
// SQLite implementation of Store.
// Responsibilities:
//   - Opening the database with safe defaults (WAL, busy timeout, foreign keys,
//     IMMEDIATE transactions so read-modify-write updates take the write lock up front).
//   - Applying the embedded migrations.
//   - Mapping games (with their append-only guess history), users and scores to rows.
//
// Timestamps are stored as fixed-width UTC RFC3339 text with nanoseconds.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/mattn/go-sqlite3"

	"github.com/robalobadob/hangman/assets"
	"github.com/robalobadob/hangman/internal/game"
	"github.com/robalobadob/hangman/internal/stats"
)

type sqliteStore struct {
	db *sql.DB
	sb sq.StatementBuilderType
}

// OpenSQLite opens (creating if missing) the database at path and migrates it.
func OpenSQLite(path string) (Store, error) {
	db, err := openDB(path)
	if err != nil {
		return nil, err
	}
	fsys, err := assets.Migrations()
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := migrate(context.Background(), db, fsys); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &sqliteStore{db: db, sb: sq.StatementBuilder.PlaceholderFormat(sq.Question)}, nil
}

// openDB ensures the parent directory exists and opens the SQLite file.
func openDB(path string) (*sql.DB, error) {
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_journal_mode=WAL&_foreign_keys=on&_txlock=immediate")
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", path, err)
	}
	return db, nil
}

func (s *sqliteStore) Close() error { return s.db.Close() }

// ------------------------------- games -------------------------------------

var gameColumns = []string{
	"id", "user_id", "private_word", "public_word",
	"attempts_allowed", "attempts_remaining", "status", "created_at", "updated_at",
}

// SaveGame upserts the game row and appends any guesses not stored yet.
func (s *sqliteStore) SaveGame(ctx context.Context, g *game.Game) error {
	snap := g.Snapshot()
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	q, args, err := s.sb.Insert("games").
		Columns(gameColumns...).
		Values(snap.ID, snap.UserID, snap.PrivateWord, snap.PublicWord,
			snap.AttemptsAllowed, snap.AttemptsRemaining, string(snap.Status),
			formatTime(snap.CreatedAt), formatTime(snap.UpdatedAt)).
		Suffix(`ON CONFLICT(id) DO UPDATE SET
			public_word = excluded.public_word,
			attempts_remaining = excluded.attempts_remaining,
			status = excluded.status,
			updated_at = excluded.updated_at`).
		ToSql()
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, q, args...); err != nil {
		return fmt.Errorf("save game %s: %w", snap.ID, err)
	}

	if len(snap.Guesses) > 0 {
		ins := s.sb.Insert("guesses").Options("OR IGNORE").
			Columns("game_id", "position", "value", "miss", "message")
		for _, gs := range snap.Guesses {
			ins = ins.Values(snap.ID, gs.Position, gs.Value, gs.Miss, gs.Message)
		}
		q, args, err := ins.ToSql()
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, q, args...); err != nil {
			return fmt.Errorf("save guesses of %s: %w", snap.ID, err)
		}
	}
	return tx.Commit()
}

func (s *sqliteStore) GetGame(ctx context.Context, id string) (*game.Game, error) {
	games, err := s.queryGames(ctx, s.sb.Select(gameColumns...).From("games").Where(sq.Eq{"id": id}))
	if err != nil {
		return nil, err
	}
	if len(games) == 0 {
		return nil, ErrGameNotFound
	}
	return games[0], nil
}

func (s *sqliteStore) ListGames(ctx context.Context, f GameFilter) ([]*game.Game, error) {
	sel := s.sb.Select(gameColumns...).From("games").OrderBy("created_at ASC", "rowid ASC")
	if f.UserID != "" {
		sel = sel.Where(sq.Eq{"user_id": f.UserID})
	}
	if f.Status != "" {
		sel = sel.Where(sq.Eq{"status": string(f.Status)})
	}
	return s.queryGames(ctx, sel)
}

// queryGames loads the selected game rows, then each game's guesses.
func (s *sqliteStore) queryGames(ctx context.Context, sel sq.SelectBuilder) ([]*game.Game, error) {
	q, args, err := sel.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	var snaps []game.Snapshot
	for rows.Next() {
		var (
			snap             game.Snapshot
			status           string
			created, updated string
		)
		if err := rows.Scan(&snap.ID, &snap.UserID, &snap.PrivateWord, &snap.PublicWord,
			&snap.AttemptsAllowed, &snap.AttemptsRemaining, &status, &created, &updated); err != nil {
			_ = rows.Close()
			return nil, err
		}
		snap.Status = game.Status(status)
		snap.CreatedAt = parseTime(created)
		snap.UpdatedAt = parseTime(updated)
		snaps = append(snaps, snap)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, err
	}
	_ = rows.Close()

	out := make([]*game.Game, 0, len(snaps))
	for _, snap := range snaps {
		guesses, err := s.loadGuesses(ctx, snap.ID)
		if err != nil {
			return nil, err
		}
		snap.Guesses = guesses
		g, err := game.Restore(snap)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, nil
}

func (s *sqliteStore) loadGuesses(ctx context.Context, gameID string) ([]game.Guess, error) {
	q, args, err := s.sb.Select("position", "value", "miss", "message").
		From("guesses").
		Where(sq.Eq{"game_id": gameID}).
		OrderBy("position ASC").
		ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []game.Guess{}
	for rows.Next() {
		var gs game.Guess
		if err := rows.Scan(&gs.Position, &gs.Value, &gs.Miss, &gs.Message); err != nil {
			return nil, err
		}
		out = append(out, gs)
	}
	return out, rows.Err()
}

// ------------------------------- users -------------------------------------

var userColumns = []string{
	"id", "name", "email", "games_started", "games_won", "misses_total", "created_at",
}

func (s *sqliteStore) CreateUser(ctx context.Context, u stats.User) error {
	q, args, err := s.sb.Insert("users").
		Columns("id", "name", "name_key", "email", "games_started", "games_won", "misses_total", "created_at").
		Values(u.ID, u.Name, nameKey(u.Name), u.Email, u.GamesStarted, u.GamesWon, u.MissesTotal, formatTime(u.CreatedAt)).
		ToSql()
	if err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateUserName
		}
		return fmt.Errorf("create user %s: %w", u.Name, err)
	}
	return nil
}

func (s *sqliteStore) GetUser(ctx context.Context, id string) (stats.User, error) {
	return s.getUser(ctx, s.db, sq.Eq{"id": id})
}

func (s *sqliteStore) GetUserByName(ctx context.Context, name string) (stats.User, error) {
	return s.getUser(ctx, s.db, sq.Eq{"name_key": nameKey(name)})
}

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *sqliteStore) getUser(ctx context.Context, db queryRower, where sq.Eq) (stats.User, error) {
	q, args, err := s.sb.Select(userColumns...).From("users").Where(where).ToSql()
	if err != nil {
		return stats.User{}, err
	}
	u, err := scanUser(db.QueryRowContext(ctx, q, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return stats.User{}, ErrUserNotFound
	}
	return u, err
}

func (s *sqliteStore) ListUsers(ctx context.Context) ([]stats.User, error) {
	q, args, err := s.sb.Select(userColumns...).From("users").OrderBy("created_at ASC", "rowid ASC").ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []stats.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// UpdateUser reads, modifies and writes the user inside one IMMEDIATE
// transaction, so concurrent updates of the same user queue on the write lock.
func (s *sqliteStore) UpdateUser(ctx context.Context, id string, fn func(*stats.User) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	u, err := s.getUser(ctx, tx, sq.Eq{"id": id})
	if err != nil {
		return err
	}
	if err := fn(&u); err != nil {
		return err
	}

	q, args, err := s.sb.Update("users").
		Set("email", u.Email).
		Set("games_started", u.GamesStarted).
		Set("games_won", u.GamesWon).
		Set("misses_total", u.MissesTotal).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, q, args...); err != nil {
		return fmt.Errorf("update user %s: %w", id, err)
	}
	return tx.Commit()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (stats.User, error) {
	var (
		u       stats.User
		created string
	)
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.GamesStarted, &u.GamesWon, &u.MissesTotal, &created); err != nil {
		return stats.User{}, err
	}
	u.CreatedAt = parseTime(created)
	return u, nil
}

// ------------------------------- scores ------------------------------------

func (s *sqliteStore) AppendScore(ctx context.Context, sc stats.Score) error {
	q, args, err := s.sb.Insert("scores").
		Columns("id", "user_id", "user_name", "game_id", "date", "won", "misses").
		Values(sc.ID, sc.UserID, sc.UserName, sc.GameID, formatTime(sc.Date), sc.Won, sc.Misses).
		ToSql()
	if err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
		return fmt.Errorf("append score for game %s: %w", sc.GameID, err)
	}
	return nil
}

func (s *sqliteStore) ListScores(ctx context.Context, qry ScoreQuery) ([]stats.Score, error) {
	sel := s.sb.Select("id", "user_id", "user_name", "game_id", "date", "won", "misses").From("scores")
	if qry.UserID != "" {
		sel = sel.Where(sq.Eq{"user_id": qry.UserID})
	}
	if qry.Order == stats.OrderByMisses {
		sel = sel.OrderBy("misses ASC", "date ASC")
	} else {
		sel = sel.OrderBy("date DESC")
	}
	if qry.Limit > 0 {
		sel = sel.Limit(uint64(qry.Limit))
	}
	q, args, err := sel.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []stats.Score{}
	for rows.Next() {
		var (
			sc   stats.Score
			date string
		)
		if err := rows.Scan(&sc.ID, &sc.UserID, &sc.UserName, &sc.GameID, &date, &sc.Won, &sc.Misses); err != nil {
			return nil, err
		}
		sc.Date = parseTime(date)
		out = append(out, sc)
	}
	return out, rows.Err()
}

// ------------------------------- helpers -----------------------------------

func isUniqueViolation(err error) bool {
	var se sqlite3.Error
	return errors.As(err, &se) && se.ExtendedCode == sqlite3.ErrConstraintUnique
}

// timeLayout is fixed-width so ORDER BY on the text column sorts chronologically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string { return t.UTC().Format(timeLayout) }

// parseTime parses RFC3339 timestamps; on error returns zero time.
func parseTime(s string) time.Time {
	t, _ := time.Parse(time.RFC3339Nano, s)
	return t
}
