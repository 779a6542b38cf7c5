package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/gallerykeeper/internal/client/imagefile"
	"github.com/dmitrijs2005/gallerykeeper/internal/client/models"
	"github.com/dmitrijs2005/gallerykeeper/internal/filex"
	"github.com/dmitrijs2005/gallerykeeper/internal/netx"
)

// Download saves the image of a photo from the current list into a
// directory (args[1], default the working directory). Existing files are
// never overwritten.
func (a *App) Download(ctx context.Context, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		fmt.Fprintln(a.out, "Usage: download <id> [dir]")
		return errUsage
	}
	p, dir, err := a.downloadTarget(args, "download")
	if err != nil {
		return err
	}
	target := filepath.Join(dir, imageName(p))

	n, err := a.writeNew(target, func(w io.Writer) (int64, error) {
		return netx.Download(ctx, a.httpClient, p.ImageURL, w)
	})
	if err != nil {
		a.log.Error(ctx, "download failed", "id", p.ID, "url", p.ImageURL, "error", err)
		fmt.Fprintf(a.out, "Download failed: %v\n", err)
		return err
	}

	fmt.Fprintf(a.out, "Saved %s (%s)\n", target, imagefile.FormatByteSize(n))
	return nil
}

// Thumb fetches the image of a photo from the current list and saves a JPEG
// thumbnail of the given width (args[2], default 300) into a directory as
// thumb_<name>.jpg.
func (a *App) Thumb(ctx context.Context, args []string) error {
	if len(args) < 1 || len(args) > 3 {
		fmt.Fprintln(a.out, "Usage: thumb <id> [dir] [width]")
		return errUsage
	}
	width := imagefile.DefaultThumbnailWidth
	if len(args) == 3 {
		w, err := strconv.Atoi(args[2])
		if err != nil || w <= 0 {
			fmt.Fprintf(a.out, "Invalid width %q.\n", args[2])
			return errUsage
		}
		width = w
	}
	p, dir, err := a.downloadTarget(args[:min(len(args), 2)], "thumb")
	if err != nil {
		return err
	}

	var img bytes.Buffer
	if _, err := netx.Download(ctx, a.httpClient, p.ImageURL, &img); err != nil {
		a.log.Error(ctx, "thumbnail download failed", "id", p.ID, "url", p.ImageURL, "error", err)
		fmt.Fprintf(a.out, "Download failed: %v\n", err)
		return err
	}

	name := imageName(p)
	target := filepath.Join(dir, "thumb_"+strings.TrimSuffix(name, filepath.Ext(name))+".jpg")

	n, err := a.writeNew(target, func(w io.Writer) (int64, error) {
		cw := &countingWriter{w: w}
		err := imagefile.Thumbnail(&img, cw, width)
		return cw.n, err
	})
	if err != nil {
		a.log.Error(ctx, "thumbnail failed", "id", p.ID, "error", err)
		fmt.Fprintf(a.out, "Thumbnail failed: %v\n", err)
		return err
	}

	fmt.Fprintf(a.out, "Saved %s (%s)\n", target, imagefile.FormatByteSize(n))
	return nil
}

// downloadTarget resolves args[0] to a loaded photo and args[1] to an
// existing directory, creating it when needed.
func (a *App) downloadTarget(args []string, cmd string) (models.Photo, string, error) {
	id, err := a.photoID(args[:1], cmd)
	if err != nil {
		return models.Photo{}, "", err
	}
	p, ok := a.findPhoto(id)
	if !ok {
		fmt.Fprintf(a.out, "Photo %d is not in the current list; run 'gallery' or 'admin' first.\n", id)
		return models.Photo{}, "", fmt.Errorf("photo %d not loaded", id)
	}

	dir := "."
	if len(args) == 2 {
		dir = args[1]
	}
	dir, err = filex.EnsureDir(dir)
	if err != nil {
		fmt.Fprintln(a.out, err)
		return models.Photo{}, "", err
	}
	return p, dir, nil
}

// writeNew creates target, failing if it exists, and fills it with fill.
// A partially written file is removed on failure.
func (a *App) writeNew(target string, fill func(io.Writer) (int64, error)) (int64, error) {
	f, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return 0, fmt.Errorf("%s already exists", target)
		}
		return 0, err
	}

	n, err := fill(f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(target)
		return 0, err
	}
	return n, nil
}

func imageName(p models.Photo) string {
	name := filepath.Base(p.FileName)
	if name == "." || name == string(filepath.Separator) || name == "" {
		name = path.Base(p.ImageURL)
	}
	return name
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(b []byte) (int, error) {
	n, err := c.w.Write(b)
	c.n += int64(n)
	return n, err
}
