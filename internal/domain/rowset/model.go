package rowset

import "errors"

// Result is the tabular outcome of an ad-hoc read query. Each row holds the
// column values in Columns order.
type Result struct {
	Columns []string
	Rows    [][]any
}

func (r Result) Len() int {
	return len(r.Rows)
}

// ErrStoreMissing is returned by readers when there is no store to read yet.
var ErrStoreMissing = errors.New("store does not exist")
