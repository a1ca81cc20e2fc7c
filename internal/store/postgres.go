package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/AnshRaj112/secure-profile-hub/internal/models"
)

const uniqueViolation = "23505"

// PostgresUserStore stores users in the users table (see database.InitPostgresTables).
type PostgresUserStore struct {
	db *sql.DB
}

func NewPostgresUserStore(db *sql.DB) *PostgresUserStore {
	return &PostgresUserStore{db: db}
}

func (s *PostgresUserStore) Create(ctx context.Context, user *models.User) error {
	id := uuid.New()
	createdAt := user.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, name, email, password, aadhaar, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, id, user.Name, user.Email, user.Password, user.Aadhaar, createdAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return ErrDuplicateEmail
		}
		return errors.Wrap(err, "insert user")
	}

	user.ID = id.String()
	user.CreatedAt = createdAt
	return nil
}

func (s *PostgresUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, email, password, aadhaar, created_at
		FROM users WHERE email = $1
	`, email)
	return scanUser(row)
}

func (s *PostgresUserStore) FindByID(ctx context.Context, id string) (*models.User, error) {
	parsedID, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrNotFound
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, email, password, aadhaar, created_at
		FROM users WHERE id = $1
	`, parsedID)
	return scanUser(row)
}

func scanUser(row *sql.Row) (*models.User, error) {
	var (
		id   uuid.UUID
		user models.User
	)
	err := row.Scan(&id, &user.Name, &user.Email, &user.Password, &user.Aadhaar, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrap(err, "scan user")
	}
	user.ID = id.String()
	return &user, nil
}
