package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/riskibarqy/volleyball-stats/internal/domain/rowset"
)

// QueryService runs ad-hoc read queries against the store.
type QueryService struct {
	reader rowset.Reader
}

func NewQueryService(reader rowset.Reader) *QueryService {
	return &QueryService{reader: reader}
}

// Run executes query when it is a single statement whose leading keyword is
// SELECT. Anything else is rejected before the store is touched.
func (s *QueryService) Run(ctx context.Context, query string) (rowset.Result, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.QueryService.Run")
	defer span.End()

	query = strings.TrimSpace(query)
	if query == "" {
		return rowset.Result{}, fmt.Errorf("%w: query is required", ErrInvalidInput)
	}
	if !IsSelectQuery(query) {
		return rowset.Result{}, ErrReadOnlyQuery
	}
	if !IsSingleStatement(query) {
		return rowset.Result{}, ErrMultipleStatements
	}

	result, err := s.reader.Select(ctx, query)
	if errors.Is(err, rowset.ErrStoreMissing) {
		return rowset.Result{}, fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	if err != nil {
		return rowset.Result{}, fmt.Errorf("run query: %w", err)
	}
	return result, nil
}

// IsSelectQuery reports whether the first keyword of query is SELECT,
// ignoring case and leading whitespace.
func IsSelectQuery(query string) bool {
	trimmed := strings.TrimLeftFunc(query, unicode.IsSpace)
	end := strings.IndexFunc(trimmed, func(r rune) bool { return !unicode.IsLetter(r) })
	if end < 0 {
		end = len(trimmed)
	}
	return strings.EqualFold(trimmed[:end], "select")
}

// IsSingleStatement reports whether query holds at most one SQL statement.
// Semicolons inside string literals, quoted identifiers and comments do not
// count, and trailing semicolons are allowed.
func IsSingleStatement(query string) bool {
	ended := false
	for i := 0; i < len(query); i++ {
		c := query[i]
		switch {
		case c == ';':
			ended = true
		case c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v':
		case c == '-' && strings.HasPrefix(query[i:], "--"):
			end := strings.IndexByte(query[i:], '\n')
			if end < 0 {
				return true
			}
			i += end
		case c == '/' && strings.HasPrefix(query[i:], "/*"):
			end := strings.Index(query[i+2:], "*/")
			if end < 0 {
				return true
			}
			i += end + 3
		case ended:
			return false
		case c == '\'' || c == '"' || c == '`':
			i = closingQuote(query, i)
		case c == '[':
			end := strings.IndexByte(query[i:], ']')
			if end < 0 {
				return true
			}
			i += end
		}
	}
	return true
}

// closingQuote returns the index of the quote that closes the one at start.
// A doubled quote is an escaped quote character.
func closingQuote(query string, start int) int {
	quote := query[start]
	for i := start + 1; i < len(query); i++ {
		if query[i] != quote {
			continue
		}
		if i+1 < len(query) && query[i+1] == quote {
			i++
			continue
		}
		return i
	}
	return len(query)
}
