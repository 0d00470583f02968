// Package pickup implements the pickup-request machine: creating requests,
// querying them and completing them, which credits the owner once.
package pickup

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/pashaarshad/smart-recycle-nexus-99/internal/common"
	"github.com/pashaarshad/smart-recycle-nexus-99/internal/logging"
	"github.com/pashaarshad/smart-recycle-nexus-99/internal/models"
	"github.com/pashaarshad/smart-recycle-nexus-99/internal/store"
)

// CompletionAward is credited to the owner when a request is completed,
// regardless of the waste types selected.
const CompletionAward = 500

// DateLayout is the accepted pickup date format.
const DateLayout = "2006-01-02"

// MaxDaysAhead bounds how far in the future a pickup may be scheduled.
const MaxDaysAhead = 30

// Crediter is the part of ledger.Ledger used on completion.
type Crediter interface {
	ApplyCredit(ctx context.Context, kv store.KV, userID string, amount int) (int, bool, error)
	SyncSession(ctx context.Context, userID string, balance int) error
}

// Completion describes the outcome of Complete. Request is nil when the id
// was not found.
type Completion struct {
	Request          *models.PickupRequest
	Credited         bool
	AlreadyCompleted bool
	Award            int
}

// Summary is the admin overview of all requests.
type Summary struct {
	Pending       int
	Completed     int
	Total         int
	PointsAwarded int
}

type Machine struct {
	store   store.Store
	records *store.Records
	ledger  Crediter
	log     logging.Logger

	now   func() time.Time
	newID func() string
}

func NewMachine(s store.Store, ledger Crediter, log logging.Logger) *Machine {
	if log == nil {
		log = logging.Nop()
	}
	return &Machine{
		store:   s,
		records: store.NewRecords(log),
		ledger:  ledger,
		log:     log.With("component", "pickup"),
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

// Create files a pending request for user. Duplicate waste types are
// collapsed keeping their first position.
func (m *Machine) Create(ctx context.Context, user *models.User, date string, wasteTypes []models.WasteTypeID) (*models.PickupRequest, error) {
	if user == nil {
		return nil, common.ErrNotAuthenticated
	}
	if len(wasteTypes) == 0 {
		return nil, common.ErrEmptySelection
	}

	selected := make([]models.WasteTypeID, 0, len(wasteTypes))
	for _, id := range wasteTypes {
		if _, ok := models.LookupWasteType(id); !ok {
			return nil, fmt.Errorf("%q: %w", id, common.ErrUnknownWasteType)
		}
		if !slices.Contains(selected, id) {
			selected = append(selected, id)
		}
	}

	if _, err := time.Parse(DateLayout, date); err != nil {
		return nil, fmt.Errorf("pickup date %q: %w", date, common.ErrValidation)
	}

	req := models.PickupRequest{
		ID:          m.newID(),
		UserID:      user.ID,
		UserName:    user.Name,
		UserEmail:   user.Email,
		UserPhone:   user.Phone,
		UserAddress: user.Address,
		Date:        date,
		WasteTypes:  selected,
		Status:      models.PickupPending,
		CreatedAt:   m.now(),
	}

	err := m.store.Update(ctx, func(ctx context.Context, kv store.KV) error {
		reqs, err := m.records.PickupRequests(ctx, kv)
		if err != nil {
			return err
		}
		return m.records.SavePickupRequests(ctx, kv, append(reqs, req))
	})
	if err != nil {
		return nil, err
	}

	m.log.Info(ctx, "pickup requested", "request_id", req.ID, "user_id", req.UserID, "date", req.Date, "waste_types", len(req.WasteTypes))
	return &req, nil
}

// Complete moves a pending request to completed and credits its owner with
// CompletionAward. The status change and the credit commit together.
func (m *Machine) Complete(ctx context.Context, id string) (*Completion, error) {
	out := &Completion{}
	var balance int

	err := m.store.Update(ctx, func(ctx context.Context, kv store.KV) error {
		reqs, err := m.records.PickupRequests(ctx, kv)
		if err != nil {
			return err
		}
		i := slices.IndexFunc(reqs, func(r models.PickupRequest) bool { return r.ID == id })
		if i < 0 {
			return nil
		}

		if !reqs[i].IsPending() {
			req := reqs[i]
			out.Request = &req
			out.AlreadyCompleted = true
			return nil
		}
		if err := ValidateTransition(reqs[i].Status, models.PickupCompleted); err != nil {
			return err
		}

		now := m.now()
		reqs[i].Status = models.PickupCompleted
		reqs[i].CompletedAt = &now

		balance, out.Credited, err = m.ledger.ApplyCredit(ctx, kv, reqs[i].UserID, CompletionAward)
		if err != nil {
			return err
		}
		if out.Credited {
			out.Award = CompletionAward
		}
		if err := m.records.SavePickupRequests(ctx, kv, reqs); err != nil {
			return err
		}

		req := reqs[i]
		out.Request = &req
		return nil
	})
	if err != nil {
		return nil, err
	}

	switch {
	case out.Request == nil:
		m.log.Warn(ctx, "complete: request not found", "request_id", id)
	case out.AlreadyCompleted:
		m.log.Info(ctx, "complete: request already completed", "request_id", id)
	default:
		m.log.Info(ctx, "pickup completed", "request_id", id, "user_id", out.Request.UserID, "credited", out.Credited)
		if out.Credited {
			if err := m.ledger.SyncSession(ctx, out.Request.UserID, balance); err != nil {
				return out, err
			}
		}
	}
	return out, nil
}

// ListAll returns every request in creation order.
func (m *Machine) ListAll(ctx context.Context) ([]models.PickupRequest, error) {
	return m.filter(ctx, func(models.PickupRequest) bool { return true })
}

func (m *Machine) ListPending(ctx context.Context) ([]models.PickupRequest, error) {
	return m.filter(ctx, func(r models.PickupRequest) bool { return r.Status == models.PickupPending })
}

func (m *Machine) ListCompleted(ctx context.Context) ([]models.PickupRequest, error) {
	return m.filter(ctx, func(r models.PickupRequest) bool { return r.Status == models.PickupCompleted })
}

// ListByUser returns the requests filed by userID.
func (m *Machine) ListByUser(ctx context.Context, userID string) ([]models.PickupRequest, error) {
	return m.filter(ctx, func(r models.PickupRequest) bool { return r.UserID == userID })
}

func (m *Machine) filter(ctx context.Context, keep func(models.PickupRequest) bool) ([]models.PickupRequest, error) {
	reqs, err := m.records.PickupRequests(ctx, m.store)
	if err != nil {
		return nil, err
	}
	out := make([]models.PickupRequest, 0, len(reqs))
	for _, r := range reqs {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *Machine) Summary(ctx context.Context) (Summary, error) {
	reqs, err := m.ListAll(ctx)
	if err != nil {
		return Summary{}, err
	}
	var s Summary
	for _, r := range reqs {
		switch r.Status {
		case models.PickupPending:
			s.Pending++
		case models.PickupCompleted:
			s.Completed++
		}
	}
	s.Total = len(reqs)
	s.PointsAwarded = s.Completed * CompletionAward
	return s, nil
}

// ProjectedPoints sums the catalog value of the given waste types. It is
// shown to users only; completion always awards CompletionAward.
func ProjectedPoints(wasteTypes []models.WasteTypeID) int {
	total := 0
	for _, id := range wasteTypes {
		if w, ok := models.LookupWasteType(id); ok {
			total += w.Points
		}
	}
	return total
}

// ValidateDateWindow accepts dates from tomorrow up to MaxDaysAhead days
// after now, in now's location.
func ValidateDateWindow(date string, now time.Time) error {
	d, err := time.ParseInLocation(DateLayout, date, now.Location())
	if err != nil {
		return fmt.Errorf("pickup date %q: %w", date, common.ErrValidation)
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	first := today.AddDate(0, 0, 1)
	last := today.AddDate(0, 0, MaxDaysAhead)
	if d.Before(first) || d.After(last) {
		return fmt.Errorf("pickup date must be between %s and %s: %w",
			first.Format(DateLayout), last.Format(DateLayout), common.ErrValidation)
	}
	return nil
}
