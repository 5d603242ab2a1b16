// Package sheets defines the port for the spreadsheet export target.
package sheets

import (
	"context"

	"utlegg/internal/core"
)

// RowAppender appends one expense as a row in the export target and returns
// a reference to the written row.
type RowAppender interface {
	AppendExpense(ctx context.Context, e core.Expense) (rowRef string, err error)
}
