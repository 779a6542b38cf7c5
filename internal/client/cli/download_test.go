package cli

import (
	"bytes"
	"context"
	"image"
	"image/jpeg"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/gallerykeeper/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDownload_SavesImage(t *testing.T) {
	img := []byte{0x89, 'P', 'N', 'G'}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/photos/lake.png" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write(img)
	}))
	t.Cleanup(srv.Close)

	p := samplePhoto(1, "Lake", true)
	p.ImageURL = srv.URL + "/photos/lake.png"
	p.FileName = "lake.png"

	gw := newRouteGateway()
	gw.routes["manage-photos/get-public"] = map[string]any{"photos": []models.Photo{p}}
	a, out := testApp(t, gw, "")
	a.httpClient = srv.Client()
	ctx := context.Background()
	require.NoError(t, a.photos.FetchPublic(ctx))

	dir := filepath.Join(t.TempDir(), "saved")
	require.NoError(t, a.Download(ctx, []string{"1", dir}))

	got, err := os.ReadFile(filepath.Join(dir, "lake.png"))
	require.NoError(t, err)
	assert.Equal(t, img, got)
	assert.Contains(t, out.String(), "Saved ")

	// second time the file exists and is left alone
	require.Error(t, a.Download(ctx, []string{"1", dir}))
	assert.Contains(t, out.String(), "already exists")
}

func TestDownload_FailureRemovesPartialFile(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	t.Cleanup(srv.Close)

	p := samplePhoto(1, "Lake", true)
	p.ImageURL = srv.URL + "/missing.jpg"

	gw := newRouteGateway()
	gw.routes["manage-photos/get-public"] = map[string]any{"photos": []models.Photo{p}}
	a, out := testApp(t, gw, "")
	a.httpClient = srv.Client()
	ctx := context.Background()
	require.NoError(t, a.photos.FetchPublic(ctx))

	dir := t.TempDir()
	require.Error(t, a.Download(ctx, []string{"1", dir}))
	assert.Contains(t, out.String(), "Download failed")

	_, err := os.Stat(filepath.Join(dir, p.FileName))
	assert.True(t, os.IsNotExist(err))
}

func TestDownload_Usage(t *testing.T) {
	a, out := testApp(t, newRouteGateway(), "")

	require.ErrorIs(t, a.Download(context.Background(), nil), errUsage)
	require.Error(t, a.Download(context.Background(), []string{"4"}))
	assert.Contains(t, out.String(), "Usage: download <id> [dir]")
	assert.Contains(t, out.String(), "run 'gallery' or 'admin' first")
}

func TestThumb_SavesScaledJPEG(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 400, 200))
	var pngData bytes.Buffer
	require.NoError(t, png.Encode(&pngData, src))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(pngData.Bytes())
	}))
	t.Cleanup(srv.Close)

	p := samplePhoto(2, "Hill", true)
	p.ImageURL = srv.URL + "/hill.png"
	p.FileName = "hill.png"

	gw := newRouteGateway()
	gw.routes["manage-photos/get-public"] = map[string]any{"photos": []models.Photo{p}}
	a, out := testApp(t, gw, "")
	a.httpClient = srv.Client()
	ctx := context.Background()
	require.NoError(t, a.photos.FetchPublic(ctx))

	dir := t.TempDir()
	require.NoError(t, a.Thumb(ctx, []string{"2", dir, "100"}))

	f, err := os.Open(filepath.Join(dir, "thumb_hill.jpg"))
	require.NoError(t, err)
	defer f.Close()
	cfg, err := jpeg.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, 100, cfg.Width)
	assert.Equal(t, 50, cfg.Height)
	assert.Contains(t, out.String(), "thumb_hill.jpg")
}

func TestThumb_UndecodableImageLeavesNoFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not an image"))
	}))
	t.Cleanup(srv.Close)

	p := samplePhoto(2, "Hill", true)
	p.ImageURL = srv.URL + "/hill.png"
	p.FileName = "hill.png"

	gw := newRouteGateway()
	gw.routes["manage-photos/get-public"] = map[string]any{"photos": []models.Photo{p}}
	a, out := testApp(t, gw, "")
	a.httpClient = srv.Client()
	ctx := context.Background()
	require.NoError(t, a.photos.FetchPublic(ctx))

	dir := t.TempDir()
	require.Error(t, a.Thumb(ctx, []string{"2", dir}))
	assert.Contains(t, out.String(), "Thumbnail failed")

	_, err := os.Stat(filepath.Join(dir, "thumb_hill.jpg"))
	assert.True(t, os.IsNotExist(err))
}

func TestThumb_Usage(t *testing.T) {
	a, out := testApp(t, newRouteGateway(), "")

	require.ErrorIs(t, a.Thumb(context.Background(), nil), errUsage)
	require.ErrorIs(t, a.Thumb(context.Background(), []string{"1", ".", "wide"}), errUsage)
	assert.Contains(t, out.String(), "Usage: thumb <id> [dir] [width]")
	assert.Contains(t, out.String(), `Invalid width "wide"`)
}
