package roster

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("developer not found")

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const developerColumns = `id, name, role, COALESCE(bio, ''), COALESCE(photo_url, ''),
  COALESCE(github_url, ''), rank, is_active, created_at`

func scanDeveloper(row pgx.Row) (Developer, error) {
	var d Developer
	err := row.Scan(&d.ID, &d.Name, &d.Role, &d.Bio, &d.PhotoURL,
		&d.GithubURL, &d.Rank, &d.IsActive, &d.CreatedAt)
	if err == pgx.ErrNoRows {
		return Developer{}, ErrNotFound
	}
	return d, err
}

// ListActive returns roster entries for the public team page, lowest
// rank first.
func (s *Store) ListActive(ctx context.Context) ([]Developer, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT `+developerColumns+`
    FROM developers
    WHERE is_active = TRUE
    ORDER BY rank ASC, name ASC
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var devs []Developer
	for rows.Next() {
		d, err := scanDeveloper(rows)
		if err != nil {
			return nil, err
		}
		devs = append(devs, d)
	}
	return devs, rows.Err()
}

// ListAll includes inactive entries for admin management.
func (s *Store) ListAll(ctx context.Context) ([]Developer, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT `+developerColumns+`
    FROM developers
    ORDER BY rank ASC, name ASC
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var devs []Developer
	for rows.Next() {
		d, err := scanDeveloper(rows)
		if err != nil {
			return nil, err
		}
		devs = append(devs, d)
	}
	return devs, rows.Err()
}

func (s *Store) Get(ctx context.Context, id int64) (Developer, error) {
	return scanDeveloper(s.DB.QueryRow(ctx, `
    SELECT `+developerColumns+`
    FROM developers
    WHERE id = $1
  `, id))
}

func (s *Store) Create(ctx context.Context, input Input) (Developer, error) {
	return scanDeveloper(s.DB.QueryRow(ctx, `
    INSERT INTO developers (name, role, bio, photo_url, github_url, rank, is_active)
    VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), NULLIF($5, ''), $6, $7)
    RETURNING `+developerColumns+`
  `, input.Name, input.Role, input.Bio, input.PhotoURL, input.GithubURL, input.Rank, input.IsActive))
}

func (s *Store) Update(ctx context.Context, id int64, input Input) (Developer, error) {
	return scanDeveloper(s.DB.QueryRow(ctx, `
    UPDATE developers
    SET name = $2,
        role = $3,
        bio = NULLIF($4, ''),
        photo_url = NULLIF($5, ''),
        github_url = NULLIF($6, ''),
        rank = $7,
        is_active = $8
    WHERE id = $1
    RETURNING `+developerColumns+`
  `, id, input.Name, input.Role, input.Bio, input.PhotoURL, input.GithubURL, input.Rank, input.IsActive))
}

func (s *Store) Delete(ctx context.Context, id int64) error {
	tag, err := s.DB.Exec(ctx, `DELETE FROM developers WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
