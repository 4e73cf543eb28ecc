package query

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"go-gemtrack/internal/shared/apperror"
	"go-gemtrack/internal/tenant"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Plan is a validated Request ready to be applied to a statement.
type Plan struct {
	Page       int
	Limit      int
	Conditions []clause.Expression
	Orders     []clause.OrderByColumn
}

// Offset saturates at math.MaxInt instead of wrapping for huge pages.
func (p *Plan) Offset() int {
	if p.Page <= 1 || p.Limit <= 0 {
		return 0
	}
	if p.Page-1 > math.MaxInt/p.Limit {
		return math.MaxInt
	}
	return (p.Page - 1) * p.Limit
}

// Compile validates req against the schema. Every problem is reported in a
// single VALIDATION_ERROR keyed by "pagination.<x>", "sort.<field>" or
// "filter.<field>".
func (s *Schema) Compile(req Request) (*Plan, error) {
	details := map[string]string{}
	plan := &Plan{Page: req.Pagination.Page, Limit: req.Pagination.Limit}

	switch {
	case plan.Page == 0:
		plan.Page = DefaultPage
	case plan.Page < 0:
		details["pagination.page"] = "Page must be a positive integer"
	}
	switch {
	case plan.Limit == 0:
		plan.Limit = DefaultLimit
	case plan.Limit < 1 || plan.Limit > MaxLimit:
		details["pagination.limit"] = fmt.Sprintf("Limit must be between 1 and %d", MaxLimit)
	}

	plan.Conditions = s.compileFilters(req.Filter, details)
	plan.Orders = s.compileSort(req.Sort, details)

	if len(details) > 0 {
		return nil, apperror.Validation(details)
	}
	return plan, nil
}

func (s *Schema) compileFilters(filters []Filter, details map[string]string) []clause.Expression {
	// last assignment for a field wins
	latest := make(map[string]string, len(filters))
	order := make([]string, 0, len(filters))
	for _, f := range filters {
		if _, seen := latest[f.Field]; !seen {
			order = append(order, f.Field)
		}
		latest[f.Field] = f.Value
	}

	conds := make([]clause.Expression, 0, len(order))
	for _, name := range order {
		key := "filter." + name
		field, ok := s.fields[name]
		if !ok {
			details[key] = "Unknown filter field"
			continue
		}
		if !field.Filterable {
			details[key] = "Field is not filterable"
			continue
		}

		value := strings.TrimSpace(latest[name])
		if value == "" {
			continue
		}

		cond, msg := field.condition(value)
		if msg != "" {
			details[key] = msg
			continue
		}
		conds = append(conds, cond)
	}
	return conds
}

func (s *Schema) compileSort(sorts []Sort, details map[string]string) []clause.OrderByColumn {
	if len(sorts) == 0 {
		sorts = s.defaultSort
	}

	seen := make(map[string]bool, len(sorts))
	orders := make([]clause.OrderByColumn, 0, len(sorts)+1)
	for _, srt := range sorts {
		key := "sort." + srt.Field
		field, ok := s.fields[srt.Field]
		if !ok {
			details[key] = "Unknown sort field"
			continue
		}
		if !field.Sortable {
			details[key] = "Field is not sortable"
			continue
		}
		if seen[field.Column] {
			continue
		}
		seen[field.Column] = true
		orders = append(orders, clause.OrderByColumn{Column: column(field.Column), Desc: srt.Desc})
	}

	if !seen["id"] {
		orders = append(orders, clause.OrderByColumn{Column: column("id")})
	}
	return orders
}

func column(name string) clause.Column {
	return clause.Column{Table: clause.CurrentTable, Name: name}
}

// condition returns the SQL predicate for one filter value, or a validation
// message when the value does not fit the field.
func (f Field) condition(value string) (clause.Expression, string) {
	col := column(f.Column)

	switch f.Type {
	case String:
		if f.MaxLen > 0 && utf8.RuneCountInString(value) > f.MaxLen {
			return nil, fmt.Sprintf("Must be at most %d characters", f.MaxLen)
		}
		return clause.Expr{
			SQL:  `LOWER(?) LIKE ? ESCAPE '\'`,
			Vars: []any{col, "%" + escapeLike(strings.ToLower(value)) + "%"},
		}, ""

	case Number:
		d, err := decimal.NewFromString(value)
		if err != nil {
			return nil, "Must be a number"
		}
		if f.positive && !d.IsPositive() {
			return nil, "Must be positive"
		}
		if !f.step.IsZero() && !d.Mod(f.step).IsZero() {
			return nil, "Must be a multiple of " + f.step.String()
		}
		return clause.Eq{Column: col, Value: d}, ""

	case Integer:
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return nil, "Must be an integer"
		}
		if f.positive && n <= 0 {
			return nil, "Must be positive"
		}
		return clause.Eq{Column: col, Value: n}, ""

	case Enum:
		if !f.allows(value) {
			return nil, "Must be one of " + strings.Join(f.Values, ", ")
		}
		return clause.Eq{Column: col, Value: value}, ""

	case UUID:
		id, err := uuid.Parse(value)
		if err != nil {
			return nil, "Must be a valid UUID"
		}
		return clause.Eq{Column: col, Value: id.String()}, ""

	case Time:
		day, err := parseDay(value)
		if err != nil {
			return nil, "Must be a date (YYYY-MM-DD) or RFC3339 timestamp"
		}
		return clause.And(
			clause.Gte{Column: col, Value: day},
			clause.Lt{Column: col, Value: day.Add(24 * time.Hour)},
		), ""
	}

	return nil, "Unsupported field type"
}

func parseDay(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, err
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location()), nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func (p *Plan) Filter(db *gorm.DB) *gorm.DB {
	for _, c := range p.Conditions {
		db = db.Where(c)
	}
	return db
}

func (p *Plan) Window(db *gorm.DB) *gorm.DB {
	return db.Offset(p.Offset()).Limit(p.Limit)
}

type listOptions struct {
	scopes   []func(*gorm.DB) *gorm.DB
	preloads []preload
}

type preload struct {
	name string
	args []any
}

type Option func(*listOptions)

// Where narrows the scoped set further, e.g. to one packet's assignments.
// It is applied to both the count and the page query.
func Where(scope func(*gorm.DB) *gorm.DB) Option {
	return func(o *listOptions) { o.scopes = append(o.scopes, scope) }
}

// Preload eager-loads an association on the returned rows only.
func Preload(association string, args ...any) Option {
	return func(o *listOptions) { o.preloads = append(o.preloads, preload{name: association, args: args}) }
}

// List runs req for model T inside userID's scope. Scoping is applied before
// any filter and cannot be widened by filter content.
func List[T any](
	ctx context.Context,
	db *gorm.DB,
	schema *Schema,
	userID string,
	req Request,
	opts ...Option,
) (Page[T], error) {
	plan, err := schema.Compile(req)
	if err != nil {
		return Page[T]{}, err
	}

	o := listOptions{}
	for _, opt := range opts {
		opt(&o)
	}

	base := db.WithContext(ctx).
		Model(new(T)).
		Scopes(tenant.Scope(userID)).
		Scopes(o.scopes...).
		Scopes(plan.Filter).
		Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return Page[T]{}, err
	}

	pageCount := PageCount(total, plan.Limit)
	rows := make([]T, 0, plan.Limit)
	if plan.Page <= pageCount {
		q := base.Order(clause.OrderBy{Columns: plan.Orders})
		for _, p := range o.preloads {
			q = q.Preload(p.name, p.args...)
		}
		if err := plan.Window(q).Find(&rows).Error; err != nil {
			return Page[T]{}, err
		}
	}

	return Page[T]{
		Rows:        rows,
		PageCount:   pageCount,
		CurrentPage: plan.Page,
		Total:       total,
		Limit:       plan.Limit,
	}, nil
}
