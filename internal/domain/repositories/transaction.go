package repositories

import "context"

// TxFn is a function that runs within a transaction
type TxFn func(ctx context.Context) error

// TransactionManager runs functions atomically. Repositories called with the
// ctx passed to fn take part in the transaction; a nested ExecTx joins it
// instead of starting a new one.
type TransactionManager interface {
	// ExecTx executes fn within a transaction, committing when fn returns nil
	ExecTx(ctx context.Context, fn TxFn) error
}
