// Package backendtest provides an in-memory backend.Tables for repository
// and service tests.
package backendtest

import (
	"context"
	"encoding/json"
	"net/url"
	"sync"

	"github.com/dmitrijs2005/learnquest/internal/client/backend"
)

// Call records one table operation.
type Call struct {
	Method     string // select, insert, upsert, delete
	Table      string
	Query      url.Values
	Rows       any
	OnConflict string
}

// Tables answers Select with the JSON-encoded value registered for the
// table and fails any operation registered in Errs under "method table".
type Tables struct {
	mu      sync.Mutex
	Calls   []Call
	Results map[string]any
	Errs    map[string]error
}

func NewTables() *Tables {
	return &Tables{Results: map[string]any{}, Errs: map[string]error{}}
}

var _ backend.Tables = (*Tables)(nil)

func (f *Tables) record(c Call) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, c)
	return f.Errs[c.Method+" "+c.Table]
}

// CallsTo returns the recorded calls matching method and table.
func (f *Tables) CallsTo(method, table string) []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []Call
	for _, c := range f.Calls {
		if c.Method == method && c.Table == table {
			out = append(out, c)
		}
	}
	return out
}

func (f *Tables) Select(ctx context.Context, table string, q *backend.Query, out any) error {
	if err := f.record(Call{Method: "select", Table: table, Query: q.Values()}); err != nil {
		return err
	}
	f.mu.Lock()
	res, ok := f.Results[table]
	f.mu.Unlock()
	if !ok {
		res = []any{}
	}
	return roundTrip(res, out)
}

// Insert echoes rows into out when out is non-nil.
func (f *Tables) Insert(ctx context.Context, table string, rows any, out any) error {
	if err := f.record(Call{Method: "insert", Table: table, Rows: rows}); err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return roundTrip([]any{rows}, out)
}

func (f *Tables) Upsert(ctx context.Context, table, onConflict string, rows any) error {
	return f.record(Call{Method: "upsert", Table: table, Rows: rows, OnConflict: onConflict})
}

func (f *Tables) Delete(ctx context.Context, table string, q *backend.Query) error {
	return f.record(Call{Method: "delete", Table: table, Query: q.Values()})
}

func roundTrip(in, out any) error {
	b, err := json.Marshal(in)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, out)
}
