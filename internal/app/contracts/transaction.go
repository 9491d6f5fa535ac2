package contracts

import "context"

// TxRunner executes fn inside one datastore transaction so multi-entity
// mutations (specimen, assignment, result) commit or roll back together.
type TxRunner interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
