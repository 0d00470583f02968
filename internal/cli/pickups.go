package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/pashaarshad/smart-recycle-nexus-99/internal/models"
	"github.com/pashaarshad/smart-recycle-nexus-99/internal/pickup"
)

type requestFilter string

const (
	filterAll       requestFilter = "requests"
	filterPending   requestFilter = "pending"
	filterCompleted requestFilter = "completed"
)

// Wastes prints the waste catalog.
func (a *App) Wastes(_ context.Context) error {
	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tID\tTYPE\tPOINTS")
	for i, w := range models.WasteTypes() {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\n", i+1, w.ID, w.Label, w.Points)
	}
	return tw.Flush()
}

// parseWasteSelection accepts catalog ids or their 1-based positions.
// Unrecognised tokens are passed through so the machine can reject them.
func parseWasteSelection(tokens []string) []models.WasteTypeID {
	catalog := models.WasteTypes()
	out := make([]models.WasteTypeID, 0, len(tokens))
	for _, tok := range tokens {
		if n, err := strconv.Atoi(tok); err == nil && n >= 1 && n <= len(catalog) {
			out = append(out, catalog[n-1].ID)
			continue
		}
		out = append(out, models.WasteTypeID(strings.ToLower(tok)))
	}
	return out
}

// RequestPickup asks for a date and the waste types and files the request.
func (a *App) RequestPickup(ctx context.Context) error {
	u, ok := a.session.Current()
	if !ok {
		fmt.Fprintln(a.out, msgLoginFirst)
		return nil
	}

	date, err := getSimpleText(a.reader, "Pickup date (YYYY-MM-DD, from tomorrow up to 30 days ahead)", a.out)
	if err != nil {
		return err
	}
	if err := pickup.ValidateDateWindow(date, a.now()); err != nil {
		return err
	}

	if err := a.Wastes(ctx); err != nil {
		return err
	}
	tokens, err := GetList(a.reader, "Waste types (ids or numbers, comma separated)", a.out)
	if err != nil {
		return err
	}
	selection := parseWasteSelection(tokens)

	opCtx, cancel := a.opContext(ctx)
	defer cancel()

	req, err := a.pickups.Create(opCtx, u, date, selection)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Pickup request submitted successfully!")
	fmt.Fprintf(a.out, "Request ID: %s\n", req.ID)
	fmt.Fprintf(a.out, "Estimated points: %d (you receive %d when the pickup is completed)\n",
		pickup.ProjectedPoints(req.WasteTypes), pickup.CompletionAward)
	return nil
}

// MyRequests prints the current user's request history.
func (a *App) MyRequests(ctx context.Context) error {
	u, ok := a.session.Current()
	if !ok {
		fmt.Fprintln(a.out, msgLoginFirst)
		return nil
	}

	opCtx, cancel := a.opContext(ctx)
	defer cancel()

	reqs, err := a.pickups.ListByUser(opCtx, u.ID)
	if err != nil {
		return err
	}
	if len(reqs) == 0 {
		fmt.Fprintln(a.out, "No pickup requests yet.")
		return nil
	}

	pending := 0
	for _, r := range reqs {
		if r.IsPending() {
			pending++
		}
	}
	if err := a.printRequests(reqs, false); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Total: %d, pending: %d, completed: %d\n", len(reqs), pending, len(reqs)-pending)
	return nil
}

// ListRequests prints every request matching filter.
func (a *App) ListRequests(ctx context.Context, filter requestFilter) error {
	opCtx, cancel := a.opContext(ctx)
	defer cancel()

	var (
		reqs []models.PickupRequest
		err  error
	)
	switch filter {
	case filterPending:
		reqs, err = a.pickups.ListPending(opCtx)
	case filterCompleted:
		reqs, err = a.pickups.ListCompleted(opCtx)
	default:
		reqs, err = a.pickups.ListAll(opCtx)
	}
	if err != nil {
		return err
	}
	if len(reqs) == 0 {
		fmt.Fprintln(a.out, "No pickup requests.")
		return nil
	}
	return a.printRequests(reqs, true)
}

func (a *App) printRequests(reqs []models.PickupRequest, withUser bool) error {
	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	if withUser {
		fmt.Fprintln(tw, "ID\tDATE\tSTATUS\tUSER\tPHONE\tADDRESS\tWASTE")
	} else {
		fmt.Fprintln(tw, "ID\tDATE\tSTATUS\tWASTE")
	}
	for _, r := range reqs {
		waste := wasteLabels(r.WasteTypes)
		if withUser {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s <%s>\t%s\t%s\t%s\n",
				r.ID, r.Date, r.Status, r.UserName, r.UserEmail, r.UserPhone, r.UserAddress, waste)
		} else {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.ID, r.Date, r.Status, waste)
		}
	}
	return tw.Flush()
}

func wasteLabels(ids []models.WasteTypeID) string {
	labels := make([]string, 0, len(ids))
	for _, id := range ids {
		if w, ok := models.LookupWasteType(id); ok {
			labels = append(labels, w.Label)
		} else {
			labels = append(labels, string(id))
		}
	}
	return strings.Join(labels, ", ")
}

// Complete marks a pending request completed, crediting its owner.
func (a *App) Complete(ctx context.Context, id string) error {
	opCtx, cancel := a.opContext(ctx)
	defer cancel()

	c, err := a.pickups.Complete(opCtx, id)
	if err != nil {
		return err
	}

	switch {
	case c.Request == nil:
		fmt.Fprintf(a.out, "Request %s not found\n", id)
	case c.AlreadyCompleted:
		fmt.Fprintf(a.out, "Request %s is already completed\n", id)
	case c.Credited:
		fmt.Fprintf(a.out, "Pickup marked as completed! %d points awarded to %s\n", c.Award, c.Request.UserName)
	default:
		fmt.Fprintln(a.out, "Pickup marked as completed. The owner is not registered, no points awarded.")
	}
	return nil
}

// Summary prints the admin overview.
func (a *App) Summary(ctx context.Context) error {
	opCtx, cancel := a.opContext(ctx)
	defer cancel()

	s, err := a.pickups.Summary(opCtx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Pending requests:   %d\n", s.Pending)
	fmt.Fprintf(a.out, "Completed requests: %d\n", s.Completed)
	fmt.Fprintf(a.out, "Total requests:     %d\n", s.Total)
	fmt.Fprintf(a.out, "Points awarded:     %d\n", s.PointsAwarded)
	return nil
}
