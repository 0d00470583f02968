package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

const (
	msgAccessDenied = "Access denied. Admin only."
	msgLoginFirst   = "Please log in first."
	msgUsersOnly    = "Pickup requests can only be made by users."
)

// execIface is the command surface the REPL dispatches to. App satisfies it;
// tests use a stub.
type execIface interface {
	isLoggedIn() bool
	isAdmin() bool

	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error

	Wastes(ctx context.Context) error
	RequestPickup(ctx context.Context) error
	MyRequests(ctx context.Context) error
	ListRequests(ctx context.Context, filter requestFilter) error
	Complete(ctx context.Context, id string) error
	Summary(ctx context.Context) error

	Rewards(ctx context.Context) error
	Claim(ctx context.Context, productID string) error
	Impact(ctx context.Context) error
}

// runREPL reads one command per line and dispatches it to a. It returns on
// EOF or on "exit"/"quit".
//
//	Always:      help, register, login, wastes, rewards, exit | quit
//	Logged in:   whoami, logout, impact, claim <id>
//	Users:       request, mine
//	Admin only:  requests, pending, completed, complete <id>, summary
//
// Errors returned by handlers are reported and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("recycle %s> ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || strings.TrimSpace(line) == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if done := dispatch(ctx, a, cmd, args); done {
			return
		}
		if errors.Is(err, io.EOF) {
			return
		}
	}
}

func dispatch(ctx context.Context, a execIface, cmd string, args []string) bool {
	var err error

	switch cmd {
	case "help":
		printHelp(a)

	case "register":
		err = a.Register(ctx)

	case "login":
		err = a.Login(ctx)

	case "wastes":
		err = a.Wastes(ctx)

	case "rewards":
		err = a.Rewards(ctx)

	case "logout":
		if requireLogin(a) {
			err = a.Logout(ctx)
		}

	case "whoami":
		if requireLogin(a) {
			err = a.WhoAmI(ctx)
		}

	case "impact":
		if requireLogin(a) {
			err = a.Impact(ctx)
		}

	case "claim":
		if len(args) == 0 {
			printlnFn("Usage: claim <product id>")
			return false
		}
		if requireLogin(a) {
			err = a.Claim(ctx, args[0])
		}

	case "request":
		if requireLogin(a) {
			if a.isAdmin() {
				printlnFn(msgUsersOnly)
				return false
			}
			err = a.RequestPickup(ctx)
		}

	case "mine":
		if requireLogin(a) {
			err = a.MyRequests(ctx)
		}

	case "requests", "pending", "completed":
		if requireAdmin(a) {
			err = a.ListRequests(ctx, requestFilter(cmd))
		}

	case "complete":
		if len(args) == 0 {
			printlnFn("Usage: complete <request id>")
			return false
		}
		if requireAdmin(a) {
			err = a.Complete(ctx, args[0])
		}

	case "summary":
		if requireAdmin(a) {
			err = a.Summary(ctx)
		}

	case "exit", "quit":
		printlnFn("Bye!")
		return true

	default:
		printlnFn("Unknown command:", cmd)
	}

	if err != nil {
		printlnFn("Error:", userMessage(err))
	}
	return false
}

func requireLogin(a execIface) bool {
	if !a.isLoggedIn() {
		printlnFn(msgLoginFirst)
		return false
	}
	return true
}

func requireAdmin(a execIface) bool {
	if !requireLogin(a) {
		return false
	}
	if !a.isAdmin() {
		printlnFn(msgAccessDenied)
		return false
	}
	return true
}

func printHelp(a execIface) {
	switch {
	case !a.isLoggedIn():
		printlnFn("Available commands: register, login, wastes, rewards, exit")
	case a.isAdmin():
		printlnFn("Available commands: requests, pending, completed, complete <id>, summary, wastes, rewards, whoami, logout, exit")
	default:
		printlnFn("Available commands: request, mine, wastes, rewards, claim <id>, impact, whoami, logout, exit")
	}
}
