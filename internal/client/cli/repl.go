package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/gallerykeeper/internal/logging"
)

// execIface is the command surface the REPL dispatches to. App satisfies
// it; tests use a stub.
type execIface interface {
	isLoggedIn() bool
	Gallery(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Admin(ctx context.Context) error
	Stats(ctx context.Context) error
	Upload(ctx context.Context, args []string) error
	Update(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	Download(ctx context.Context, args []string) error
	Thumb(ctx context.Context, args []string) error
	WhoAmI(ctx context.Context) error
}

// runREPL reads commands line by line from reader and dispatches them to a
// until "exit", "quit" or end of input. Handlers report their own errors,
// so the returned errors are dropped here.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, w io.Writer) {
	for {
		fmt.Fprintf(w, "gallery (%s)> ", statusFn())
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			fmt.Fprintln(w)
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]
		cctx := logging.ContextWith(ctx, "command", cmd)

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(w, "Available commands: (g)allery, admin, stats, upload <path>, update <id>, delete <id>, download <id> [dir], thumb <id> [dir] [width], whoami, logout, exit")
			} else {
				fmt.Fprintln(w, "Available commands: (g)allery, download <id> [dir], thumb <id> [dir] [width], login, whoami, exit")
			}

		case "g", "gallery":
			_ = a.Gallery(cctx)

		case "login":
			_ = a.Login(cctx)

		case "logout":
			_ = a.Logout(cctx)

		case "admin":
			_ = a.Admin(cctx)

		case "stats":
			_ = a.Stats(cctx)

		case "upload":
			_ = a.Upload(cctx, args)

		case "update":
			_ = a.Update(cctx, args)

		case "delete", "rm":
			_ = a.Delete(cctx, args)

		case "download":
			_ = a.Download(cctx, args)

		case "thumb":
			_ = a.Thumb(cctx, args)

		case "whoami":
			_ = a.WhoAmI(cctx)

		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return

		default:
			fmt.Fprintln(w, "Unknown command:", cmd)
		}

		if err != nil {
			return
		}
	}
}
