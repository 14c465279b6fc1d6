package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ganot/typeset-board/internal/domain/member"
	"github.com/ganot/typeset-board/internal/repository"
)

// MemberRepository implements member.Repository for SQLite
type MemberRepository struct {
	db *DB
}

var _ member.Repository = (*MemberRepository)(nil)

// NewMemberRepository creates a new MemberRepository
func NewMemberRepository(db *DB) *MemberRepository {
	return &MemberRepository{db: db}
}

// Create inserts a new member
func (r *MemberRepository) Create(ctx context.Context, m *member.Member) error {
	query := `
		INSERT INTO members (id, name, raw_input, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		m.ID,
		m.Name,
		m.RawInput,
		m.CreatedAt,
		m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("failed to create member: %w", repository.ErrInvalidInput)
		}
		return fmt.Errorf("failed to create member: %w", err)
	}

	return nil
}

// Get retrieves a member by ID
func (r *MemberRepository) Get(ctx context.Context, id string) (*member.Member, error) {
	query := `
		SELECT id, name, raw_input, created_at, updated_at
		FROM members
		WHERE id = ?
	`

	var m member.Member
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&m.ID,
		&m.Name,
		&m.RawInput,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get member: %w", err)
	}

	return &m, nil
}

// List returns all members in insertion order
func (r *MemberRepository) List(ctx context.Context) ([]member.Member, error) {
	query := `
		SELECT id, name, raw_input, created_at, updated_at
		FROM members
		ORDER BY rowid ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()

	members := []member.Member{}
	for rows.Next() {
		var m member.Member
		if err := rows.Scan(&m.ID, &m.Name, &m.RawInput, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating member rows: %w", err)
	}

	return members, nil
}

// Count returns the number of members
func (r *MemberRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM members`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count members: %w", err)
	}
	return count, nil
}

// Update stores a member's name and raw input
func (r *MemberRepository) Update(ctx context.Context, m *member.Member) error {
	query := `
		UPDATE members
		SET name = ?, raw_input = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query, m.Name, m.RawInput, m.UpdatedAt, m.ID)
	if err != nil {
		return fmt.Errorf("failed to update member: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// Delete removes a member
func (r *MemberRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM members WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete member: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}
