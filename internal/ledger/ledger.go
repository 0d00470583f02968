// Package ledger moves points on user balances.
//
// Balances live on the registered-user directory. The admin identity is not
// in the directory, so debits against it fall back to the active session.
// Whenever the session owner's balance changes the session record is
// refreshed so both views agree.
package ledger

import (
	"context"

	"github.com/pashaarshad/smart-recycle-nexus-99/internal/common"
	"github.com/pashaarshad/smart-recycle-nexus-99/internal/logging"
	"github.com/pashaarshad/smart-recycle-nexus-99/internal/models"
	"github.com/pashaarshad/smart-recycle-nexus-99/internal/store"
)

// Session is the part of session.Manager the ledger needs.
type Session interface {
	Current() (*models.User, bool)
	UpdatePoints(ctx context.Context, points int) error
}

type Ledger struct {
	store   store.Store
	records *store.Records
	session Session
	log     logging.Logger
}

// New returns a Ledger. sess may be nil when no session needs to be kept in sync.
func New(s store.Store, sess Session, log logging.Logger) *Ledger {
	if log == nil {
		log = logging.Nop()
	}
	return &Ledger{
		store:   s,
		records: store.NewRecords(log),
		session: sess,
		log:     log.With("component", "ledger"),
	}
}

// Credit adds amount to the user's directory balance. A user missing from the
// directory is skipped and reported as credited == false.
func (l *Ledger) Credit(ctx context.Context, userID string, amount int) (bool, error) {
	if amount < 0 {
		return false, common.ErrInvalidAmount
	}

	var (
		credited bool
		balance  int
	)
	err := l.store.Update(ctx, func(ctx context.Context, kv store.KV) error {
		var err error
		balance, credited, err = l.ApplyCredit(ctx, kv, userID, amount)
		return err
	})
	if err != nil {
		return false, err
	}
	if !credited {
		return false, nil
	}
	return true, l.SyncSession(ctx, userID, balance)
}

// ApplyCredit performs the credit on kv, which is expected to be the KV of an
// ongoing Store.Update. The caller is responsible for SyncSession after commit.
func (l *Ledger) ApplyCredit(ctx context.Context, kv store.KV, userID string, amount int) (int, bool, error) {
	if amount < 0 {
		return 0, false, common.ErrInvalidAmount
	}

	users, err := l.records.Directory(ctx, kv)
	if err != nil {
		return 0, false, err
	}
	i := store.FindUser(users, userID)
	if i < 0 {
		l.log.Warn(ctx, "credit skipped, user not in directory", "user_id", userID, "amount", amount)
		return 0, false, nil
	}

	users[i].Points += amount
	if err := l.records.SaveDirectory(ctx, kv, users); err != nil {
		return 0, false, err
	}

	l.log.Info(ctx, "points credited", "user_id", userID, "amount", amount, "balance", users[i].Points)
	return users[i].Points, true, nil
}

// Debit subtracts amount and returns the new balance. Nothing changes when
// the balance is too small.
func (l *Ledger) Debit(ctx context.Context, userID string, amount int) (int, error) {
	if amount < 0 {
		return 0, common.ErrInvalidAmount
	}

	// Snapshot before entering Update: session.Manager may hold its own lock
	// while waiting for the store.
	current := l.current()

	var balance int
	err := l.store.Update(ctx, func(ctx context.Context, kv store.KV) error {
		users, err := l.records.Directory(ctx, kv)
		if err != nil {
			return err
		}

		if i := store.FindUser(users, userID); i >= 0 {
			if amount > users[i].Points {
				return common.ErrInsufficientPoints
			}
			users[i].Points -= amount
			balance = users[i].Points
			return l.records.SaveDirectory(ctx, kv, users)
		}

		if current == nil || current.ID != userID {
			return common.ErrNotFound
		}
		if amount > current.Points {
			return common.ErrInsufficientPoints
		}
		balance = current.Points - amount
		return nil
	})
	if err != nil {
		l.log.Info(ctx, "debit rejected", "user_id", userID, "amount", amount, "error", err)
		return 0, err
	}

	l.log.Info(ctx, "points debited", "user_id", userID, "amount", amount, "balance", balance)
	return balance, l.SyncSession(ctx, userID, balance)
}

// Balance reports the user's points, from the directory or, for users
// outside it, from the active session.
func (l *Ledger) Balance(ctx context.Context, userID string) (int, error) {
	users, err := l.records.Directory(ctx, l.store)
	if err != nil {
		return 0, err
	}
	if i := store.FindUser(users, userID); i >= 0 {
		return users[i].Points, nil
	}
	if cur := l.current(); cur != nil && cur.ID == userID {
		return cur.Points, nil
	}
	return 0, common.ErrNotFound
}

// SyncSession refreshes the session record when userID owns the active session.
func (l *Ledger) SyncSession(ctx context.Context, userID string, balance int) error {
	cur := l.current()
	if cur == nil || cur.ID != userID || cur.Points == balance {
		return nil
	}
	return l.session.UpdatePoints(ctx, balance)
}

func (l *Ledger) current() *models.User {
	if l.session == nil {
		return nil
	}
	u, ok := l.session.Current()
	if !ok {
		return nil
	}
	return u
}
