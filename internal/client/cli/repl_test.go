package cli

import (
	"bufio"
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool

	calls []string
	args  [][]string
}

func (f *fakeExec) record(name string, args []string) error {
	f.calls = append(f.calls, name)
	f.args = append(f.args, args)
	return nil
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Gallery(context.Context) error { return f.record("gallery", nil) }
func (f *fakeExec) Admin(context.Context) error { return f.record("admin", nil) }
func (f *fakeExec) Stats(context.Context) error { return f.record("stats", nil) }
func (f *fakeExec) WhoAmI(context.Context) error { return f.record("whoami", nil) }
func (f *fakeExec) Upload(_ context.Context, a []string) error {
	return f.record("upload", a)
}
func (f *fakeExec) Update(_ context.Context, a []string) error {
	return f.record("update", a)
}
func (f *fakeExec) Delete(_ context.Context, a []string) error {
	return f.record("delete", a)
}
func (f *fakeExec) Download(_ context.Context, a []string) error {
	return f.record("download", a)
}
func (f *fakeExec) Thumb(_ context.Context, a []string) error {
	return f.record("thumb", a)
}
func (f *fakeExec) Login(context.Context) error {
	f.loggedIn = true
	return f.record("login", nil)
}
func (f *fakeExec) Logout(context.Context) error {
	f.loggedIn = false
	return f.record("logout", nil)
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	input := strings.Join([]string{
		"help",
		"g",
		"login",
		"help",
		"admin",
		"upload /tmp/cat.jpg",
		"update 5",
		"rm 7",
		"stats",
		"whoami",
		"download 3 out",
		"thumb 3 out 120",
		"",
		"foobar",
		"logout",
		"exit",
		"gallery",
	}, "\n")

	exec := &fakeExec{}
	var out bytes.Buffer
	runREPL(context.Background(), exec, func() string { return "guest" }, bufio.NewReader(strings.NewReader(input)), &out)

	assert.Equal(t, []string{"gallery", "login", "admin", "upload", "update", "delete", "stats", "whoami", "download", "thumb", "logout"}, exec.calls)
	assert.Equal(t, []string{"/tmp/cat.jpg"}, exec.args[3])
	assert.Equal(t, []string{"5"}, exec.args[4])
	assert.Equal(t, []string{"7"}, exec.args[5])
	assert.Equal(t, []string{"3", "out"}, exec.args[8])
	assert.Equal(t, []string{"3", "out", "120"}, exec.args[9])

	s := out.String()
	assert.Contains(t, s, "gallery (guest)> ")
	assert.Contains(t, s, "Available commands: (g)allery, download <id> [dir], thumb <id> [dir] [width], login, whoami, exit")
	assert.Contains(t, s, "upload <path>")
	assert.Contains(t, s, "Unknown command: foobar")
	assert.Contains(t, s, "Bye!")
}

func TestRunREPL_StopsAtEOF(t *testing.T) {
	exec := &fakeExec{}
	var out bytes.Buffer
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewReader(strings.NewReader("gallery")), &out)

	assert.Equal(t, []string{"gallery"}, exec.calls, "a last line without newline still runs")
	assert.NotContains(t, out.String(), "Bye!")
}
