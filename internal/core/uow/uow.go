// Package uow carries a request-scoped GORM transaction through the context.
//
// A Unit is attached to the context before any work starts but only issues
// BEGIN when a repository first asks for a connection, so requests that never
// reach persistence never hold a database connection.
package uow

import (
	"context"
	"errors"
	"sync"

	"gorm.io/gorm"
)

type ctxKey struct{}

// Unit is a lazily opened transaction with commit hooks.
type Unit struct {
	db  *gorm.DB
	ctx context.Context

	mu          sync.Mutex
	tx          *gorm.DB
	settled     bool
	afterCommit []func()
}

// Begin attaches a new Unit to ctx. Nothing touches the database until Conn
// is called with the returned context.
func Begin(ctx context.Context, db *gorm.DB) (context.Context, *Unit) {
	u := &Unit{db: db, ctx: ctx}
	return context.WithValue(ctx, ctxKey{}, u), u
}

// From returns the Unit stored in ctx, if any.
func From(ctx context.Context) (*Unit, bool) {
	u, ok := ctx.Value(ctxKey{}).(*Unit)
	return u, ok && u != nil
}

// Started reports whether BEGIN has been issued.
func (u *Unit) Started() bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.tx != nil
}

func (u *Unit) open() (*gorm.DB, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.settled {
		return nil, errors.New("uow: unit already settled")
	}
	if u.tx != nil {
		return u.tx, nil
	}
	tx := u.db.WithContext(u.ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	u.tx = tx
	return tx, nil
}

// Commit commits the transaction, if one was opened, and then runs the
// after-commit hooks in registration order.
func (u *Unit) Commit() error {
	u.mu.Lock()
	if u.settled {
		u.mu.Unlock()
		return nil
	}
	u.settled = true
	tx, hooks := u.tx, u.afterCommit
	u.afterCommit = nil
	u.mu.Unlock()

	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			return err
		}
	}
	for _, fn := range hooks {
		fn()
	}
	return nil
}

// Rollback discards the transaction and its hooks. Safe to call after Commit.
func (u *Unit) Rollback() {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.settled {
		return
	}
	u.settled = true
	u.afterCommit = nil
	if u.tx != nil {
		u.tx.Rollback()
	}
}

// AfterCommit defers fn until the unit in ctx commits; it is dropped on
// rollback. Without a unit fn runs immediately.
func AfterCommit(ctx context.Context, fn func()) {
	u, ok := From(ctx)
	if !ok {
		fn()
		return
	}
	u.mu.Lock()
	if !u.settled {
		u.afterCommit = append(u.afterCommit, fn)
		u.mu.Unlock()
		return
	}
	u.mu.Unlock()
	fn()
}

// Conn resolves the handle a repository should use: the unit's transaction,
// opened on first use, when ctx carries a unit, otherwise db. The result is
// always bound to ctx.
func Conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	u, ok := From(ctx)
	if !ok {
		return db.WithContext(ctx)
	}
	tx, err := u.open()
	if err != nil {
		conn := db.WithContext(ctx)
		_ = conn.AddError(err)
		return conn
	}
	return tx.WithContext(ctx)
}

// Run executes fn inside a unit unless ctx already carries one. Used by
// repositories that need several statements to land together and by the
// CLI workers.
func Run(ctx context.Context, db *gorm.DB, fn func(ctx context.Context) error) (err error) {
	if _, ok := From(ctx); ok {
		return fn(ctx)
	}
	ctx, u := Begin(ctx, db)
	defer func() {
		if r := recover(); r != nil {
			u.Rollback()
			panic(r)
		}
	}()
	if err := fn(ctx); err != nil {
		u.Rollback()
		return err
	}
	return u.Commit()
}
