package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/gallerykeeper/internal/client/imagefile"
	"github.com/dmitrijs2005/gallerykeeper/internal/client/models"
	"github.com/dmitrijs2005/gallerykeeper/internal/common"
)

// getSimpleText, getTextWithDefault, confirm and getPassword are
// indirections that tests can swap.
var (
	getSimpleText      = GetSimpleText
	getTextWithDefault = GetTextWithDefault
	confirm            = Confirm
	getPassword        = GetPassword
)

var (
	errUsage       = errors.New("usage")
	errNotLoggedIn = errors.New("not logged in")
)

func (a *App) requireLogin() error {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Please log in first.")
		return errNotLoggedIn
	}
	return nil
}

// Gallery fetches and prints the public photos.
func (a *App) Gallery(ctx context.Context) error {
	if err := a.photos.FetchPublic(ctx); err != nil {
		return err
	}
	printPhotos(a.out, a.photos.Photos(), false)
	return nil
}

// Login prompts for the administrator's username and password. The
// password buffer is wiped before returning.
func (a *App) Login(ctx context.Context) error {
	if a.isLoggedIn() {
		fmt.Fprintln(a.out, "Already logged in. Use 'logout' first.")
		return nil
	}

	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.session.Login(ctx, username, string(password)); err != nil {
		return err
	}
	return a.WhoAmI(ctx)
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	a.session.Logout(ctx)
	return nil
}

// Admin lists every photo, private ones included, followed by statistics.
func (a *App) Admin(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	if err := a.photos.FetchAllForAdmin(ctx); err != nil {
		return err
	}
	printPhotos(a.out, a.photos.Photos(), true)
	fmt.Fprintln(a.out)

	if err := a.photos.FetchStats(ctx); err != nil {
		fmt.Fprintln(a.out, "Statistics are unavailable right now.")
		return nil
	}
	printStats(a.out, a.photos.Stats())
	return nil
}

func (a *App) Stats(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	if err := a.photos.FetchStats(ctx); err != nil {
		fmt.Fprintln(a.out, "Statistics are unavailable right now.")
		return err
	}
	printStats(a.out, a.photos.Stats())
	return nil
}

// Upload sends the image at args[0]. The title defaults to the file name
// without its extension; description is optional and the category defaults
// to general.
func (a *App) Upload(ctx context.Context, args []string) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	if len(args) != 1 {
		fmt.Fprintln(a.out, "Usage: upload <path>")
		return errUsage
	}

	f, err := imagefile.FromPath(args[0])
	if err != nil {
		fmt.Fprintf(a.out, "Cannot open %s: %v\n", args[0], err)
		return err
	}
	// checked before prompting so the user doesn't fill in a form for nothing
	if err := imagefile.Validate(f); err != nil {
		fmt.Fprintln(a.out, err)
		return err
	}

	title, err := getTextWithDefault(a.reader, "Title", imagefile.TitleFromFileName(f.Name()), a.out)
	if err != nil {
		return err
	}
	title = strings.TrimSpace(title)
	if title == "" {
		fmt.Fprintln(a.out, "A title is required.")
		return errUsage
	}

	description, err := getSimpleText(a.reader, "Description (optional)", a.out)
	if err != nil {
		return err
	}

	category, err := a.askCategory(models.DefaultCategory)
	if err != nil {
		return err
	}

	p, err := a.photos.Upload(ctx, f, title, strings.TrimSpace(description), category)
	if err != nil {
		return err
	}
	printPhoto(a.out, *p)
	return nil
}

// Update edits one photo. Pressing Enter keeps the current value; only the
// changed fields are sent.
func (a *App) Update(ctx context.Context, args []string) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	id, err := a.photoID(args, "update")
	if err != nil {
		return err
	}

	current, ok := a.findPhoto(id)
	if !ok {
		fmt.Fprintf(a.out, "Photo %d is not in the current list; run 'admin' first.\n", id)
		return fmt.Errorf("photo %d not loaded", id)
	}

	var patch models.PhotoPatch

	title, err := getTextWithDefault(a.reader, "Title", current.Title, a.out)
	if err != nil {
		return err
	}
	if title = strings.TrimSpace(title); title != "" && title != current.Title {
		patch.Title = &title
	}

	description, err := getTextWithDefault(a.reader, "Description ('-' clears)", current.Description, a.out)
	if err != nil {
		return err
	}
	if description == "-" {
		description = ""
	}
	if description != current.Description {
		patch.Description = &description
	}

	cur := current.Category
	if cur == "" {
		cur = models.DefaultCategory
	}
	category, err := a.askCategory(cur)
	if err != nil {
		return err
	}
	if category != cur {
		patch.Category = &category
	}

	visibility := "private"
	if current.IsPublic {
		visibility = "public"
	}
	v, err := getTextWithDefault(a.reader, "Visibility (public/private)", visibility, a.out)
	if err != nil {
		return err
	}
	switch strings.ToLower(v) {
	case "public":
		if !current.IsPublic {
			patch.IsPublic = models.Ptr(true)
		}
	case "private":
		if current.IsPublic {
			patch.IsPublic = models.Ptr(false)
		}
	default:
		fmt.Fprintln(a.out, "Visibility must be public or private.")
		return errUsage
	}

	if patch.Empty() {
		fmt.Fprintln(a.out, "Nothing to change.")
		return nil
	}
	return a.photos.UpdatePhoto(ctx, id, patch)
}

// Delete removes a photo after confirmation.
func (a *App) Delete(ctx context.Context, args []string) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	id, err := a.photoID(args, "delete")
	if err != nil {
		return err
	}

	label := strconv.FormatInt(id, 10)
	if p, ok := a.findPhoto(id); ok {
		label = fmt.Sprintf("%d (%s)", id, p.Title)
	}
	ok, err := confirm(a.reader, "Delete photo "+label+"?", a.out)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(a.out, "Cancelled.")
		return nil
	}
	return a.photos.DeletePhoto(ctx, id)
}

// savedAtReporter is implemented by credential stores that know when the
// credential was written.
type savedAtReporter interface {
	SavedAt(ctx context.Context) (time.Time, error)
}

func (a *App) WhoAmI(ctx context.Context) error {
	snap := a.session.Snapshot()
	if snap.User == nil {
		fmt.Fprintln(a.out, "Not logged in.")
		return nil
	}
	fmt.Fprintf(a.out, "Logged in as %s", snap.User.DisplayName())
	if snap.User.Email != "" {
		fmt.Fprintf(a.out, " <%s>", snap.User.Email)
	}
	if r, ok := a.creds.(savedAtReporter); ok {
		ts, err := r.SavedAt(ctx)
		if err != nil {
			a.log.Debug(ctx, "cannot read credential timestamp", "error", err)
		} else if !ts.IsZero() {
			fmt.Fprintf(a.out, ", since %s", ts.Local().Format(time.DateTime))
		}
	}
	fmt.Fprintln(a.out)
	return nil
}

func (a *App) askCategory(def models.Category) (models.Category, error) {
	names := make([]string, len(models.Categories))
	for i, c := range models.Categories {
		names[i] = string(c)
	}

	s, err := getTextWithDefault(a.reader, "Category ("+strings.Join(names, ", ")+")", string(def), a.out)
	if err != nil {
		return "", err
	}
	c := models.Category(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		fmt.Fprintf(a.out, "Unknown category %q.\n", s)
		return "", errUsage
	}
	return c, nil
}

func (a *App) photoID(args []string, cmd string) (int64, error) {
	if len(args) != 1 {
		fmt.Fprintf(a.out, "Usage: %s <id>\n", cmd)
		return 0, errUsage
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		fmt.Fprintf(a.out, "Invalid photo id %q.\n", args[0])
		return 0, errUsage
	}
	return id, nil
}

func (a *App) findPhoto(id int64) (models.Photo, bool) {
	for _, p := range a.photos.Photos() {
		if p.ID == id {
			return p, true
		}
	}
	return models.Photo{}, false
}
