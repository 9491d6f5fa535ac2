package transactions

import (
	"context"
	"labtrail-service/internal/app/contracts"
	"labtrail-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/mongo"
)

type mongoTxRunner struct {
	client *mongo.Client
}

func NewMongoTxRunner(client *mongo.Client) contracts.TxRunner {
	return &mongoTxRunner{client: client}
}

func (t *mongoTxRunner) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	session, err := t.client.StartSession()
	if err != nil {
		return exceptions.ErrMongoDBStartSession(err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		return nil, fn(sessCtx)
	})
	if err != nil {
		// Typed failures from inside fn pass through untouched so callers can
		// still branch on the error kind.
		if customErr, ok := err.(*exceptions.CustomError); ok {
			return customErr
		}
		return exceptions.ErrMongoDBTransaction(err)
	}
	return nil
}
