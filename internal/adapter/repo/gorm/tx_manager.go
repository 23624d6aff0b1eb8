package gormrepo

import (
	"context"

	"gorm.io/gorm"
)

// TxManager binds one gorm transaction to the context handed to fn so the
// pickup and score repositories share it.
type TxManager struct {
	db *gorm.DB
}

func NewTxManager(db *gorm.DB) TxManager {
	return TxManager{db: db}
}

func (t TxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if tx := ctx.Value(txKey); tx != nil {
		return fn(ctx)
	}
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(withTx(ctx, tx))
	})
}
