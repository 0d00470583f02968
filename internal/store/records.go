package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pashaarshad/smart-recycle-nexus-99/internal/logging"
	"github.com/pashaarshad/smart-recycle-nexus-99/internal/models"
)

// Logical keys.
const (
	KeySessionUser     = "session-user"
	KeyRegisteredUsers = "registered-users"
	KeyPickupRequests  = "pickup-requests"
)

// Records encodes and decodes the three logical records on top of any KV.
// A record that can not be decoded is treated as absent and logged.
type Records struct {
	log logging.Logger
}

func NewRecords(log logging.Logger) *Records {
	if log == nil {
		log = logging.Nop()
	}
	return &Records{log: log}
}

func load[T any](ctx context.Context, r *Records, kv KV, key string, dst *T) (bool, error) {
	raw, err := kv.Get(ctx, key)
	if err != nil {
		return false, err
	}
	if raw == nil {
		return false, nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		r.log.Warn(ctx, "malformed record, using empty state", "key", key, "error", err)
		var zero T
		*dst = zero
		return false, nil
	}
	return true, nil
}

func save(ctx context.Context, kv KV, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return kv.Set(ctx, key, b)
}

// SessionUser returns the stored session user or nil.
func (r *Records) SessionUser(ctx context.Context, kv KV) (*models.User, error) {
	var u *models.User
	if _, err := load(ctx, r, kv, KeySessionUser, &u); err != nil {
		return nil, err
	}
	return u, nil
}

func (r *Records) SaveSessionUser(ctx context.Context, kv KV, u *models.User) error {
	return save(ctx, kv, KeySessionUser, u)
}

func (r *Records) ClearSessionUser(ctx context.Context, kv KV) error {
	return kv.Delete(ctx, KeySessionUser)
}

// Directory returns the registered users in registration order.
func (r *Records) Directory(ctx context.Context, kv KV) ([]models.RegisteredUser, error) {
	var users []models.RegisteredUser
	if _, err := load(ctx, r, kv, KeyRegisteredUsers, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *Records) SaveDirectory(ctx context.Context, kv KV, users []models.RegisteredUser) error {
	if users == nil {
		users = []models.RegisteredUser{}
	}
	return save(ctx, kv, KeyRegisteredUsers, users)
}

// PickupRequests returns the stored requests in creation order.
func (r *Records) PickupRequests(ctx context.Context, kv KV) ([]models.PickupRequest, error) {
	var reqs []models.PickupRequest
	if _, err := load(ctx, r, kv, KeyPickupRequests, &reqs); err != nil {
		return nil, err
	}
	return reqs, nil
}

func (r *Records) SavePickupRequests(ctx context.Context, kv KV, reqs []models.PickupRequest) error {
	if reqs == nil {
		reqs = []models.PickupRequest{}
	}
	return save(ctx, kv, KeyPickupRequests, reqs)
}

// FindUser returns the index of the directory entry with the given id, or -1.
func FindUser(users []models.RegisteredUser, id string) int {
	for i := range users {
		if users[i].ID == id {
			return i
		}
	}
	return -1
}
