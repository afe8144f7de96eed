package store

// Result is one tabular stored-procedure result. Column order is preserved as
// returned by the source; the same logical source may expose different header
// spellings across resorts, so consumers resolve columns by candidate lists
// rather than fixed names.
type Result struct {
	Columns []string
	Rows    [][]any
}

// Empty reports whether the result carries no rows.
func (r Result) Empty() bool {
	return len(r.Rows) == 0
}
