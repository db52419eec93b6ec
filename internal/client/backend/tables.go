package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dmitrijs2005/learnquest/internal/common"
)

// Tables is the table API used by the repositories. *Client implements it.
type Tables interface {
	Select(ctx context.Context, table string, q *Query, out any) error
	Insert(ctx context.Context, table string, rows any, out any) error
	Upsert(ctx context.Context, table, onConflict string, rows any) error
	Delete(ctx context.Context, table string, q *Query) error
}

var _ Tables = (*Client)(nil)

// Query carries PostgREST select/filter/order/limit parameters.
type Query struct {
	values  url.Values
	filters int
}

func NewQuery() *Query {
	return &Query{values: url.Values{}}
}

// Select restricts or shapes the returned columns, e.g. "id,name,badges(*)".
func (q *Query) Select(columns string) *Query {
	q.values.Set("select", columns)
	return q
}

// Eq adds an equality filter.
func (q *Query) Eq(column string, value any) *Query {
	q.values.Add(column, "eq."+fmt.Sprint(value))
	q.filters++
	return q
}

func (q *Query) Order(column string, ascending bool) *Query {
	dir := "desc"
	if ascending {
		dir = "asc"
	}
	q.values.Set("order", column+"."+dir)
	return q
}

func (q *Query) Limit(n int) *Query {
	q.values.Set("limit", strconv.Itoa(n))
	return q
}

func (q *Query) Values() url.Values {
	if q == nil {
		return url.Values{}
	}
	return q.values
}

func tablePath(table string) string {
	return "/rest/v1/" + url.PathEscape(table)
}

// Select reads rows of table into out (a pointer to a slice).
func (c *Client) Select(ctx context.Context, table string, q *Query, out any) error {
	return c.do(ctx, http.MethodGet, tablePath(table), q.Values(), nil, nil, out)
}

// Insert adds rows (a struct or slice). When out is non-nil the inserted
// rows are returned into it.
func (c *Client) Insert(ctx context.Context, table string, rows any, out any) error {
	h := http.Header{}
	if out != nil {
		h.Set("Prefer", "return=representation")
	} else {
		h.Set("Prefer", "return=minimal")
	}
	return c.do(ctx, http.MethodPost, tablePath(table), nil, rows, h, out)
}

// Upsert inserts rows, overwriting rows whose onConflict column matches.
func (c *Client) Upsert(ctx context.Context, table, onConflict string, rows any) error {
	q := url.Values{}
	q.Set("on_conflict", onConflict)
	h := http.Header{}
	h.Set("Prefer", "resolution=merge-duplicates,return=minimal")
	return c.do(ctx, http.MethodPost, tablePath(table), q, rows, h, nil)
}

// Delete removes the rows matching q. A query without filters is refused
// so a programming error cannot wipe a table.
func (c *Client) Delete(ctx context.Context, table string, q *Query) error {
	if q == nil || q.filters == 0 {
		return fmt.Errorf("%w: delete on %s without filter", common.ErrInvalidInput, table)
	}
	return c.do(ctx, http.MethodDelete, tablePath(table), q.Values(), nil, nil, nil)
}
