package ports

import (
	"context"

	"exprdiff/domain/expr"
)

// TableReader loads an expression table from a file path. The core
// never parses files itself; readers are external collaborators.
type TableReader interface {
	Read(ctx context.Context, path string) (*expr.Table, error)
}

// ResultWriter serializes a result table. The one output artifact of a
// run goes through this port.
type ResultWriter interface {
	Write(ctx context.Context, path string, table *expr.ResultTable) error
}
