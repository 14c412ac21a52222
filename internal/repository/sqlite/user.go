package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/garnizeh/mentormatch/pkg/models"
)

func (r *SQLiteRepo) CreateUser(ctx context.Context, u *models.User) (int64, error) {
	if u == nil {
		return 0, fmt.Errorf("user is nil")
	}

	skills, err := marshalSkills(u.Profile.Skills)
	if err != nil {
		return 0, err
	}

	ts := now()
	res, err := r.conn.Exec(ctx,
		`INSERT INTO users (email, password_hash, role, name, bio, image_url, skills, created, updated) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.Email, u.PasswordHash, u.Role, u.Profile.Name, u.Profile.Bio, u.Profile.ImageURL, skills, ts, ts)
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

func (r *SQLiteRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, email, password_hash, role, name, bio, image_url, skills, created, updated FROM users WHERE id = ?`, id)
	return scanUser(row.Scan)
}

func (r *SQLiteRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, email, password_hash, role, name, bio, image_url, skills, created, updated FROM users WHERE email = ?`, email)
	return scanUser(row.Scan)
}

func (r *SQLiteRepo) UpdateProfile(ctx context.Context, id int64, p *models.Profile) error {
	if p == nil {
		return fmt.Errorf("profile is nil")
	}

	skills, err := marshalSkills(p.Skills)
	if err != nil {
		return err
	}

	_, err = r.conn.Exec(ctx,
		`UPDATE users SET name = ?, bio = ?, image_url = ?, skills = ?, updated = ? WHERE id = ?`,
		p.Name, p.Bio, p.ImageURL, skills, now(), id)
	return err
}

// ListMentors returns every user with the mentor role. A non-empty skill
// keeps only mentors whose serialized skills contain it (SQLite LIKE, so the
// match is case-insensitive for ASCII). orderBy "name" or "skill" sorts
// ascending without case, anything else leaves storage order.
func (r *SQLiteRepo) ListMentors(ctx context.Context, skill, orderBy string) ([]models.User, error) {
	query := `SELECT id, email, password_hash, role, name, bio, image_url, skills, created, updated FROM users WHERE role = 'mentor'`
	args := []any{}
	if skill != "" {
		query += ` AND skills LIKE ?`
		args = append(args, "%"+skill+"%")
	}
	switch orderBy {
	case "name":
		query += ` ORDER BY name COLLATE NOCASE`
	case "skill":
		query += ` ORDER BY skills COLLATE NOCASE`
	}

	rows, err := r.conn.QueryRows(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.User
	for rows.Next() {
		u, err := scanUser(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *u)
	}

	return out, rows.Err()
}

// scanUser reads one users row. The scan argument order matches the SELECT
// column order used by every user query in this file.
func scanUser(scan func(dest ...any) error) (*models.User, error) {
	var u models.User
	var skills sql.NullString
	if err := scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.Profile.Name, &u.Profile.Bio, &u.Profile.ImageURL, &skills, &u.Created, &u.Updated); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	if u.Role == models.RoleMentor {
		list := []string{}
		if skills.Valid && skills.String != "" {
			if err := json.Unmarshal([]byte(skills.String), &list); err != nil {
				return nil, fmt.Errorf("decode skills for user %d: %w", u.ID, err)
			}
		}
		u.Profile.Skills = &list
	}

	return &u, nil
}

// marshalSkills serializes a skills list to its JSON text column value.
// A nil pointer (mentee) maps to NULL.
func marshalSkills(skills *[]string) (any, error) {
	if skills == nil {
		return nil, nil
	}
	list := *skills
	if list == nil {
		list = []string{}
	}
	b, err := json.Marshal(list)
	if err != nil {
		return nil, fmt.Errorf("encode skills: %w", err)
	}
	return string(b), nil
}
