package transactor

import (
	"context"
)

// Transactor represents behavior for transactors.
// Function passed to WithinTransaction receives context carrying the transaction,
// so executors resolved from that context run inside it. Transaction is committed when
// function returns nil and rolled back otherwise; the underlying connection is released on every path.
type Transactor interface {
	WithinTransaction(context.Context, func(context.Context) error) error
}
