package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/garnizeh/mentormatch/pkg/models"
	"github.com/garnizeh/mentormatch/pkg/repository"
)

func (r *SQLiteRepo) CreateMatchRequest(ctx context.Context, m *models.MatchRequest) (int64, error) {
	if m == nil {
		return 0, fmt.Errorf("match request is nil")
	}

	res, err := r.conn.Exec(ctx,
		`INSERT INTO match_requests (mentor_id, mentee_id, message, status, created) VALUES (?, ?, ?, ?, ?)`,
		m.MentorID, m.MenteeID, m.Message, models.StatusPending, now())
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

func (r *SQLiteRepo) GetMatchRequest(ctx context.Context, id int64) (*models.MatchRequest, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, mentor_id, mentee_id, message, status, created FROM match_requests WHERE id = ?`, id)
	var m models.MatchRequest
	if err := row.Scan(&m.ID, &m.MentorID, &m.MenteeID, &m.Message, &m.Status, &m.Created); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return &m, nil
}

func (r *SQLiteRepo) ListIncoming(ctx context.Context, mentorID int64) ([]models.IncomingMatchRequest, error) {
	rows, err := r.conn.QueryRows(ctx,
		`SELECT m.id, m.mentor_id, m.mentee_id, m.message, m.status, m.created, u.name, u.email
		 FROM match_requests m
		 JOIN users u ON u.id = m.mentee_id
		 WHERE m.mentor_id = ?
		 ORDER BY m.id DESC`, mentorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.IncomingMatchRequest
	for rows.Next() {
		var m models.IncomingMatchRequest
		if err := rows.Scan(&m.ID, &m.MentorID, &m.MenteeID, &m.Message, &m.Status, &m.Created, &m.MenteeName, &m.MenteeEmail); err != nil {
			return nil, err
		}
		out = append(out, m)
	}

	return out, rows.Err()
}

func (r *SQLiteRepo) ListOutgoing(ctx context.Context, menteeID int64) ([]models.MatchRequest, error) {
	rows, err := r.conn.QueryRows(ctx,
		`SELECT id, mentor_id, mentee_id, message, status, created FROM match_requests WHERE mentee_id = ? ORDER BY id DESC`, menteeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.MatchRequest
	for rows.Next() {
		var m models.MatchRequest
		if err := rows.Scan(&m.ID, &m.MentorID, &m.MenteeID, &m.Message, &m.Status, &m.Created); err != nil {
			return nil, err
		}
		out = append(out, m)
	}

	return out, rows.Err()
}

// Transition applies a status change inside a transaction. The row is read
// first to separate ownership failures from state failures, then the UPDATE
// re-checks the pending status so a concurrent transition on the same row
// cannot be overwritten.
func (r *SQLiteRepo) Transition(ctx context.Context, id, actorID int64, actorRole models.Role, status models.MatchStatus) error {
	tx, err := r.conn.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("begin transition: %w", err)
	}
	defer tx.Rollback()

	var mentorID, menteeID int64
	var current models.MatchStatus
	row := tx.QueryRowContext(ctx, `SELECT mentor_id, mentee_id, status FROM match_requests WHERE id = ?`, id)
	if err := row.Scan(&mentorID, &menteeID, &current); err != nil {
		if err == sql.ErrNoRows {
			return repository.ErrNotFound
		}

		return err
	}

	owner := menteeID
	if actorRole == models.RoleMentor {
		owner = mentorID
	}
	if owner != actorID {
		// not distinguishable from a missing record on purpose
		return repository.ErrNotFound
	}
	if current != models.StatusPending {
		return repository.ErrConflict
	}

	res, err := tx.ExecContext(ctx, `UPDATE match_requests SET status = ? WHERE id = ? AND status = ?`, status, id, models.StatusPending)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrConflict
	}

	return tx.Commit()
}
