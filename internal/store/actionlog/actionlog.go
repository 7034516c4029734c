package actionlog

import (
	"context"
	"database/sql"
	"time"

	_ "modernc.org/sqlite"

	"leadscout/internal/config"
)

// Action types recorded in the ledger.
const (
	ActionReply   = "reply"
	ActionComment = "comment"
)

// DB wraps a SQLite database used as an outbound-action ledger. It backs the
// hourly and daily dispatch budgets and keeps an audit trail of sent replies.
type DB struct{ sql *sql.DB }

func Open(path string) (*DB, error) {
	d, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := d.Exec(`PRAGMA journal_mode=WAL; PRAGMA synchronous=NORMAL;`); err != nil {
		return nil, err
	}
	db := &DB{sql: d}
	if err := db.migrate(); err != nil {
		_ = d.Close()
		return nil, err
	}
	return db, nil
}

func (d *DB) Close() error { return d.sql.Close() }

func (d *DB) migrate() error {
	_, err := d.sql.Exec(`
	CREATE TABLE IF NOT EXISTS actions (
	  id INTEGER PRIMARY KEY AUTOINCREMENT,
	  ts INTEGER NOT NULL,
	  type TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_actions_ts ON actions(ts);
	CREATE TABLE IF NOT EXISTS reply_records (
	  id INTEGER PRIMARY KEY AUTOINCREMENT,
	  ts INTEGER NOT NULL,
	  run_id TEXT NOT NULL,
	  post_url TEXT NOT NULL,
	  username TEXT,
	  comment TEXT,
	  match_score REAL,
	  reply_text TEXT,
	  success INTEGER NOT NULL,
	  failure_reason TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_reply_records_ts ON reply_records(ts);
	`)
	return err
}

// PutAction records one outbound action at ts.
func (d *DB) PutAction(ctx context.Context, ts time.Time, typ string) error {
	_, err := d.sql.ExecContext(ctx, `INSERT INTO actions(ts, type) VALUES(?,?)`, ts.Unix(), typ)
	return err
}

// CountActionsWithin counts actions of type typ in [start, end).
func (d *DB) CountActionsWithin(ctx context.Context, start, end time.Time, typ string) (int, error) {
	var n int
	err := d.sql.QueryRowContext(ctx, `SELECT COUNT(*) FROM actions WHERE ts>=? AND ts<? AND type=?`, start.Unix(), end.Unix(), typ).Scan(&n)
	return n, err
}

// AllowDispatch reports whether one more reply fits inside the configured
// hourly and daily budgets at instant now. A zero budget disables its check.
func (d *DB) AllowDispatch(ctx context.Context, cfg config.PromotionConfig, now time.Time) (bool, error) {
	if cfg.MaxRepliesPerHour > 0 {
		n, err := d.CountActionsWithin(ctx, now.Add(-time.Hour), now.Add(time.Second), ActionReply)
		if err != nil {
			return false, err
		}
		if n >= cfg.MaxRepliesPerHour {
			return false, nil
		}
	}
	if cfg.MaxRepliesPerDay > 0 {
		n, err := d.CountActionsWithin(ctx, now.Add(-24*time.Hour), now.Add(time.Second), ActionReply)
		if err != nil {
			return false, err
		}
		if n >= cfg.MaxRepliesPerDay {
			return false, nil
		}
	}
	return true, nil
}

// ReplyRow is a stored reply audit record.
type ReplyRow struct {
	TS            time.Time
	RunID         string
	PostURL       string
	Username      string
	Comment       string
	MatchScore    float64
	ReplyText     string
	Success       bool
	FailureReason string
}

// PutReplyRecord appends one reply attempt to the audit trail.
func (d *DB) PutReplyRecord(ctx context.Context, ts time.Time, row ReplyRow) error {
	succ := 0
	if row.Success {
		succ = 1
	}
	_, err := d.sql.ExecContext(ctx,
		`INSERT INTO reply_records(ts, run_id, post_url, username, comment, match_score, reply_text, success, failure_reason)
		 VALUES(?,?,?,?,?,?,?,?,?)`,
		ts.Unix(), row.RunID, row.PostURL, row.Username, row.Comment, row.MatchScore, row.ReplyText, succ, row.FailureReason)
	return err
}

// RecentReplyRecords returns up to limit reply records, newest first.
func (d *DB) RecentReplyRecords(ctx context.Context, limit int) ([]ReplyRow, error) {
	rows, err := d.sql.QueryContext(ctx,
		`SELECT ts, run_id, post_url, username, comment, match_score, reply_text, success, failure_reason
		 FROM reply_records ORDER BY ts DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []ReplyRow
	for rows.Next() {
		var r ReplyRow
		var ts int64
		var succ int
		if err := rows.Scan(&ts, &r.RunID, &r.PostURL, &r.Username, &r.Comment, &r.MatchScore, &r.ReplyText, &succ, &r.FailureReason); err != nil {
			return nil, err
		}
		r.TS = time.Unix(ts, 0).UTC()
		r.Success = succ == 1
		out = append(out, r)
	}
	return out, rows.Err()
}
