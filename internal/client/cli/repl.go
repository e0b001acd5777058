package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs. The real App
// type satisfies it; tests provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	List(ctx context.Context) error
	Post(ctx context.Context) error
	Like(ctx context.Context, postID string) error
	Comment(ctx context.Context, postID string) error
	Delete(ctx context.Context, postID string) error
	Refresh(ctx context.Context) error
	Whoami(ctx context.Context) error
}

// runREPL drives a read-eval-print loop over the Momento client.
//
// The prompt shows the current status (from statusFn). Guests may register
// or log in; authenticated users operate on the feed:
//
//	Not logged in:
//	  - help | register | login | exit | quit
//
//	Logged in:
//	  - feed (or l)       : print the cached feed
//	  - post              : create a post
//	  - like <post-id>    : toggle a like
//	  - comment <post-id> : add a comment
//	  - delete <post-id>  : delete a post
//	  - refresh           : re-fetch the feed from the server
//	  - whoami            : show the current identity
//	  - logout | exit | quit
//
// Errors returned by command handlers are ignored here; handlers print their
// own messages. The loop exits on scanner EOF or on "exit"/"quit".
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("momento %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		argOrEmpty := func() string {
			if len(args) == 0 {
				return ""
			}
			return args[0]
		}

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: feed (l), post, like <id>, comment <id>, delete <id>, refresh, whoami, logout, exit")
			} else {
				printlnFn("Available commands: register, login, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "l", "feed":
			_ = a.List(ctx)

		case "post":
			_ = a.Post(ctx)

		case "like":
			_ = a.Like(ctx, argOrEmpty())

		case "comment":
			_ = a.Comment(ctx, argOrEmpty())

		case "delete":
			_ = a.Delete(ctx, argOrEmpty())

		case "refresh":
			_ = a.Refresh(ctx)

		case "whoami":
			_ = a.Whoami(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
