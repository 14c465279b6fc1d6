package sqlite

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/ganot/typeset-board/internal/domain/member"
	"github.com/ganot/typeset-board/internal/repository"
)

// SearchRepository implements member.SearchRepository for SQLite
type SearchRepository struct {
	db *DB
}

var _ member.SearchRepository = (*SearchRepository)(nil)

// NewSearchRepository creates a new SearchRepository
func NewSearchRepository(db *DB) *SearchRepository {
	return &SearchRepository{db: db}
}

// Search performs a full-text search over member names and work logs
func (r *SearchRepository) Search(ctx context.Context, query string, opts member.SearchOptions) ([]member.SearchResult, error) {
	match := matchExpression(query)
	if match == "" {
		return []member.SearchResult{}, nil
	}

	baseQuery := `
		SELECT
			m.id,
			m.name,
			members_fts.rank,
			snippet(members_fts, 1, '[', ']', '...', 8)
		FROM members_fts
		JOIN members m ON m.rowid = members_fts.rowid
		WHERE members_fts MATCH ?
		ORDER BY members_fts.rank
	`
	args := []interface{}{match}

	if opts.Limit > 0 {
		baseQuery += " LIMIT ?"
		args = append(args, opts.Limit)
	}
	if opts.Offset > 0 {
		if opts.Limit <= 0 {
			baseQuery += " LIMIT -1"
		}
		baseQuery += " OFFSET ?"
		args = append(args, opts.Offset)
	}

	rows, err := r.db.QueryContext(ctx, baseQuery, args...)
	if err != nil {
		if isFTSSyntaxError(err) {
			return nil, fmt.Errorf("failed to search members: %w", repository.ErrInvalidInput)
		}
		return nil, fmt.Errorf("failed to search members: %w", err)
	}
	defer rows.Close()

	results := []member.SearchResult{}
	for rows.Next() {
		var result member.SearchResult
		if err := rows.Scan(&result.MemberID, &result.Name, &result.Rank, &result.Snippet); err != nil {
			return nil, fmt.Errorf("failed to scan search result: %w", err)
		}
		results = append(results, result)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating search results: %w", err)
	}

	return results, nil
}

// matchExpression quotes every term so punctuation in a paste ("ME - 506")
// is never read as FTS5 query syntax. Terms without a letter or digit would
// tokenize to nothing and are dropped.
func matchExpression(query string) string {
	terms := strings.Fields(query)
	quoted := make([]string, 0, len(terms))
	for _, term := range terms {
		if strings.IndexFunc(term, isWordRune) < 0 {
			continue
		}
		quoted = append(quoted, `"`+strings.ReplaceAll(term, `"`, `""`)+`"`)
	}
	return strings.Join(quoted, " ")
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
