package pickup

import (
	"fmt"
	"slices"

	"github.com/pashaarshad/smart-recycle-nexus-99/internal/common"
	"github.com/pashaarshad/smart-recycle-nexus-99/internal/models"
)

// Allowed status transitions. Completed is terminal.
var validTransitions = map[models.PickupStatus][]models.PickupStatus{
	models.PickupPending: {
		models.PickupCompleted,
	},
	models.PickupCompleted: {},
}

// ValidateTransition checks that a request may move from current to next.
func ValidateTransition(current, next models.PickupStatus) error {
	allowed, ok := validTransitions[current]
	if !ok {
		return fmt.Errorf("unknown pickup status %q: %w", current, common.ErrValidation)
	}
	if !slices.Contains(allowed, next) {
		return fmt.Errorf("cannot transition from %s to %s: %w", current, next, common.ErrValidation)
	}
	return nil
}

// AllowedTransitions returns the statuses reachable from current.
func AllowedTransitions(current models.PickupStatus) []models.PickupStatus {
	return validTransitions[current]
}

// IsTerminal reports whether no transition leaves status.
func IsTerminal(status models.PickupStatus) bool {
	return len(validTransitions[status]) == 0
}
