package cli

import (
	"errors"
	"strings"
	"unicode"

	"github.com/pashaarshad/smart-recycle-nexus-99/internal/common"
)

var userMessages = []struct {
	err error
	msg string
}{
	{common.ErrInvalidCredentials, "Invalid email or password"},
	{common.ErrEmailTaken, "User with this email already exists"},
	{common.ErrNotAuthenticated, "Please log in first"},
	{common.ErrForbidden, "Access denied. Admin only."},
	{common.ErrEmptySelection, "Please select at least one waste type"},
	{common.ErrUnknownWasteType, "Unknown waste type"},
	{common.ErrInsufficientPoints, "Insufficient points to claim this reward"},
	{common.ErrAlreadyClaimed, "You have already claimed this reward"},
	{common.ErrUnknownProduct, "Unknown reward"},
	{common.ErrInvalidAmount, "Invalid points amount"},
	{common.ErrNotFound, "Not found"},
}

// userMessage turns an error into the notification shown to the user.
// Validation errors carry their own detail, which is shown without the
// sentinel suffix.
func userMessage(err error) string {
	for _, m := range userMessages {
		if errors.Is(err, m.err) {
			return m.msg
		}
	}
	if errors.Is(err, common.ErrValidation) {
		detail := strings.TrimSuffix(err.Error(), ": "+common.ErrValidation.Error())
		if detail == "" || detail == common.ErrValidation.Error() {
			return "Invalid input"
		}
		r := []rune(detail)
		r[0] = unicode.ToUpper(r[0])
		return string(r)
	}
	return err.Error()
}
