package ports

import "context"

// TxManager runs fn in one storage transaction. Repositories called with the
// ctx handed to fn join that transaction; nested RunInTx calls join it too.
type TxManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}
