// Package query turns listing parameters into predicates, an ordering and a
// page window that the repositories apply to a GORM statement.
package query

import (
	"errors"
	"strconv"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"storefront/internal/apperror"
)

// Pagination bounds.
const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// Params holds raw query-string values keyed by parameter name.
type Params map[string]string

// Get returns the trimmed value for key, or "" when absent.
func (p Params) Get(key string) string {
	return strings.TrimSpace(p[key])
}

// Predicate is a single SQL condition with its bound arguments.
type Predicate struct {
	SQL  string
	Args []any
}

// Page is the offset/limit window of a listing.
type Page struct {
	Limit  int
	Offset int
}

// Sort is the ordering of a listing.
type Sort struct {
	Column string
	Desc   bool
}

// Filter is anything the repositories can apply to a statement.
type Filter interface {
	Predicates() []Predicate
	Ordering() Sort
	Window() Page
}

// Apply adds the filter's predicates, ordering and window to db.
// Predicates are AND-ed together; ties in the sort column are broken by id.
func Apply(db *gorm.DB, table string, f Filter) *gorm.DB {
	for _, p := range f.Predicates() {
		db = db.Where(p.SQL, p.Args...)
	}
	s := f.Ordering()
	db = db.Order(clause.OrderByColumn{
		Column: clause.Column{Table: table, Name: s.Column},
		Desc:   s.Desc,
	}).Order(clause.OrderByColumn{
		Column: clause.Column{Table: table, Name: "id"},
		Desc:   s.Desc,
	})
	w := f.Window()
	return db.Limit(w.Limit).Offset(w.Offset)
}

// ParseID validates an identifier parameter.
func ParseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil || id == 0 {
		return 0, apperror.Validation(apperror.CodeInvalidID, "Valid ID is required")
	}
	return uint(id), nil
}

func parsePage(p Params) Page {
	page := Page{Limit: DefaultLimit}
	n, err := strconv.Atoi(p.Get("limit"))
	switch {
	case err == nil && n > 0:
		page.Limit = min(n, MaxLimit)
	case errors.Is(err, strconv.ErrRange) && n > 0:
		// Atoi saturates out-of-range input, so n is MaxInt here.
		page.Limit = MaxLimit
	}
	if n, err := strconv.Atoi(p.Get("offset")); err == nil && n > 0 {
		page.Offset = n
	}
	return page
}

func parseSort(p Params, columns map[string]string) Sort {
	column, ok := columns[p.Get("sort")]
	if !ok {
		column = "created_at"
	}
	return Sort{Column: column, Desc: p.Get("order") != "asc"}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsAny builds a case-insensitive substring match OR-ed across columns.
func containsAny(term string, columns ...string) Predicate {
	pattern := "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
	parts := make([]string, len(columns))
	args := make([]any, len(columns))
	for i, c := range columns {
		parts[i] = "LOWER(" + c + `) LIKE ? ESCAPE '\'`
		args[i] = pattern
	}
	return Predicate{SQL: "(" + strings.Join(parts, " OR ") + ")", Args: args}
}

func equals(column string, value any) Predicate {
	return Predicate{SQL: column + " = ?", Args: []any{value}}
}
