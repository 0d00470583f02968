// Package rewards exchanges points for catalog products.
//
// Which products a user has claimed is remembered for the lifetime of the
// Redeemer only; it is not persisted and is wiped by Reset on logout.
package rewards

import (
	"context"
	"sync"

	"github.com/pashaarshad/smart-recycle-nexus-99/internal/common"
	"github.com/pashaarshad/smart-recycle-nexus-99/internal/logging"
	"github.com/pashaarshad/smart-recycle-nexus-99/internal/models"
)

// Debiter is the part of ledger.Ledger used by claims.
type Debiter interface {
	Debit(ctx context.Context, userID string, amount int) (int, error)
}

type Redeemer struct {
	ledger Debiter
	log    logging.Logger

	mu      sync.Mutex
	claimed map[string]map[string]struct{}
}

func NewRedeemer(ledger Debiter, log logging.Logger) *Redeemer {
	if log == nil {
		log = logging.Nop()
	}
	return &Redeemer{
		ledger:  ledger,
		log:     log.With("component", "rewards"),
		claimed: make(map[string]map[string]struct{}),
	}
}

// Catalog returns the products on offer.
func (r *Redeemer) Catalog() []models.RewardProduct {
	return models.RewardProducts()
}

// Claim debits the product's cost from user and marks it claimed. It returns
// the new balance.
func (r *Redeemer) Claim(ctx context.Context, user *models.User, productID string) (int, error) {
	if user == nil {
		return 0, common.ErrNotAuthenticated
	}
	product, ok := models.LookupRewardProduct(productID)
	if !ok {
		return 0, common.ErrUnknownProduct
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.isClaimed(user.ID, product.ID) {
		return 0, common.ErrAlreadyClaimed
	}

	balance, err := r.ledger.Debit(ctx, user.ID, product.PointsCost)
	if err != nil {
		r.log.Info(ctx, "claim rejected", "user_id", user.ID, "product_id", product.ID, "error", err)
		return 0, err
	}

	set, ok := r.claimed[user.ID]
	if !ok {
		set = make(map[string]struct{})
		r.claimed[user.ID] = set
	}
	set[product.ID] = struct{}{}

	r.log.Info(ctx, "reward claimed", "user_id", user.ID, "product_id", product.ID, "cost", product.PointsCost, "balance", balance)
	return balance, nil
}

// Claimed returns the ids of products userID claimed, in catalog order.
func (r *Redeemer) Claimed(userID string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []string
	for _, p := range models.RewardProducts() {
		if r.isClaimed(userID, p.ID) {
			out = append(out, p.ID)
		}
	}
	return out
}

// CanClaim reports whether user could afford product and has not claimed it yet.
func (r *Redeemer) CanClaim(user *models.User, product models.RewardProduct) bool {
	if user == nil {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return !r.isClaimed(user.ID, product.ID) && user.Points >= product.PointsCost
}

// Reset forgets every claim.
func (r *Redeemer) Reset() {
	r.mu.Lock()
	r.claimed = make(map[string]map[string]struct{})
	r.mu.Unlock()
}

func (r *Redeemer) isClaimed(userID, productID string) bool {
	_, ok := r.claimed[userID][productID]
	return ok
}
