package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/pashaarshad/smart-recycle-nexus-99/internal/common"
	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool
	admin    bool

	calls   []string
	failing map[string]error
}

func (f *fakeExec) record(name string) error {
	f.calls = append(f.calls, name)
	return f.failing[name]
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) isAdmin() bool    { return f.admin }

func (f *fakeExec) Register(context.Context) error { return f.record("register") }
func (f *fakeExec) Login(context.Context) error {
	f.loggedIn = true
	return f.record("login")
}
func (f *fakeExec) Logout(context.Context) error {
	f.loggedIn = false
	return f.record("logout")
}
func (f *fakeExec) WhoAmI(context.Context) error        { return f.record("whoami") }
func (f *fakeExec) Wastes(context.Context) error        { return f.record("wastes") }
func (f *fakeExec) RequestPickup(context.Context) error { return f.record("request") }
func (f *fakeExec) MyRequests(context.Context) error    { return f.record("mine") }
func (f *fakeExec) ListRequests(_ context.Context, filter requestFilter) error {
	return f.record("list:" + string(filter))
}
func (f *fakeExec) Complete(_ context.Context, id string) error { return f.record("complete:" + id) }
func (f *fakeExec) Summary(context.Context) error               { return f.record("summary") }
func (f *fakeExec) Rewards(context.Context) error               { return f.record("rewards") }
func (f *fakeExec) Claim(_ context.Context, id string) error    { return f.record("claim:" + id) }
func (f *fakeExec) Impact(context.Context) error                { return f.record("impact") }

// capturePrintln redirects printlnFn for the duration of the test.
func capturePrintln(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, strings.TrimSuffix(fmt.Sprintln(a...), "\n"))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func run(exec *fakeExec, script ...string) {
	reader := bufio.NewReader(strings.NewReader(strings.Join(script, "\n") + "\n"))
	runREPL(context.Background(), exec, func() string { return "" }, reader)
}

func TestRunREPL_UserCommands(t *testing.T) {
	out := capturePrintln(t)
	exec := &fakeExec{}

	run(exec, "help", "login", "help", "request", "mine", "claim 3", "impact", "whoami", "wastes", "rewards", "logout", "exit", "login")

	assert.Equal(t, []string{"login", "request", "mine", "claim:3", "impact", "whoami", "wastes", "rewards", "logout"}, exec.calls)
	assert.Contains(t, *out, "Available commands: register, login, wastes, rewards, exit")
	assert.Contains(t, *out, "Bye!")
}

func TestRunREPL_AdminOnlyCommandsDenied(t *testing.T) {
	out := capturePrintln(t)
	exec := &fakeExec{loggedIn: true}

	run(exec, "requests", "pending", "completed", "complete abc", "summary")

	assert.Empty(t, exec.calls)
	denied := 0
	for _, l := range *out {
		if l == msgAccessDenied {
			denied++
		}
	}
	assert.Equal(t, 5, denied)
}

func TestRunREPL_AdminCommands(t *testing.T) {
	out := capturePrintln(t)
	exec := &fakeExec{loggedIn: true, admin: true}

	run(exec, "requests", "pending", "completed", "complete abc", "summary", "request")

	assert.Equal(t, []string{"list:requests", "list:pending", "list:completed", "complete:abc", "summary"}, exec.calls)
	assert.Contains(t, *out, msgUsersOnly)
}

func TestRunREPL_LoginRequired(t *testing.T) {
	out := capturePrintln(t)
	exec := &fakeExec{}

	run(exec, "request", "mine", "claim 1", "impact", "whoami", "logout", "summary")

	assert.Empty(t, exec.calls)
	assert.Contains(t, *out, msgLoginFirst)
}

func TestRunREPL_UsageUnknownAndErrors(t *testing.T) {
	out := capturePrintln(t)
	exec := &fakeExec{
		loggedIn: true,
		failing: map[string]error{
			"claim:2":  common.ErrInsufficientPoints,
			"register": errors.New("disk full"),
		},
	}

	run(exec, "claim", "complete", "claim 2", "register", "", "dance")

	assert.Equal(t, []string{"claim:2", "register"}, exec.calls)
	assert.Contains(t, *out, "Usage: claim <product id>")
	assert.Contains(t, *out, "Usage: complete <request id>")
	assert.Contains(t, *out, "Error: Insufficient points to claim this reward")
	assert.Contains(t, *out, "Error: disk full")
	assert.Contains(t, *out, "Unknown command: dance")
}

func TestRunREPL_StopsAtEOF(t *testing.T) {
	capturePrintln(t)
	exec := &fakeExec{}

	reader := bufio.NewReader(strings.NewReader("login"))
	runREPL(context.Background(), exec, func() string { return "" }, reader)

	assert.Equal(t, []string{"login"}, exec.calls)
}

func TestUserMessage(t *testing.T) {
	assert.Equal(t, "Invalid email or password", userMessage(common.ErrInvalidCredentials))
	assert.Equal(t, "User with this email already exists", userMessage(fmt.Errorf("register: %w", common.ErrEmailTaken)))
	assert.Equal(t, "Please select at least one waste type", userMessage(common.ErrEmptySelection))
	assert.Equal(t, "boom", userMessage(errors.New("boom")))
}

func TestUserMessage_ValidationDetail(t *testing.T) {
	assert.Equal(t, "Email and password are required",
		userMessage(fmt.Errorf("email and password are required: %w", common.ErrValidation)))
	assert.Equal(t, "Invalid input", userMessage(common.ErrValidation))
}
