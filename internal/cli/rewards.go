package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/pashaarshad/smart-recycle-nexus-99/internal/impact"
	"github.com/pashaarshad/smart-recycle-nexus-99/internal/models"
)

// Rewards prints the catalog and, when logged in, what the user can claim.
func (a *App) Rewards(_ context.Context) error {
	u, loggedIn := a.session.Current()

	if loggedIn {
		fmt.Fprintf(a.out, "Your points: %d\n", u.Points)
	}

	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tPRODUCT\tCATEGORY\tCOST\tSTATUS")
	claimed := map[string]bool{}
	if loggedIn {
		for _, id := range a.rewards.Claimed(u.ID) {
			claimed[id] = true
		}
	}
	for _, p := range a.rewards.Catalog() {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n", p.ID, p.Name, p.Category, p.PointsCost, a.rewardStatus(u, p, claimed[p.ID]))
	}
	return tw.Flush()
}

func (a *App) rewardStatus(u *models.User, p models.RewardProduct, claimed bool) string {
	switch {
	case u == nil:
		return ""
	case claimed:
		return "claimed"
	case a.rewards.CanClaim(u, p):
		return "available"
	default:
		return fmt.Sprintf("need %d more", p.PointsCost-u.Points)
	}
}

// Claim redeems a product for the current user.
func (a *App) Claim(ctx context.Context, productID string) error {
	u, ok := a.session.Current()
	if !ok {
		fmt.Fprintln(a.out, msgLoginFirst)
		return nil
	}

	opCtx, cancel := a.opContext(ctx)
	defer cancel()

	balance, err := a.rewards.Claim(opCtx, u, productID)
	if err != nil {
		return err
	}
	p, _ := models.LookupRewardProduct(productID)
	fmt.Fprintf(a.out, "Successfully claimed %s! Remaining points: %d\n", p.Name, balance)
	return nil
}

// Impact prints the environmental metrics and achievements for the user's points.
func (a *App) Impact(_ context.Context) error {
	u, ok := a.session.Current()
	if !ok {
		fmt.Fprintln(a.out, msgLoginFirst)
		return nil
	}

	fmt.Fprintf(a.out, "Environmental impact of %d points\n", u.Points)
	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	for _, m := range impact.Compute(u.Points).All() {
		fmt.Fprintf(tw, "%s\t%d %s\t%d%% of %d\n", m.Name, m.Value, m.Unit, m.Progress(), m.Target)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Achievements")
	for _, ach := range impact.Achievements(u.Points) {
		mark := "[ ]"
		if ach.Unlocked {
			mark = "[x]"
		}
		fmt.Fprintf(a.out, "  %s %s: %s\n", mark, ach.Title, ach.Description)
	}
	return nil
}
