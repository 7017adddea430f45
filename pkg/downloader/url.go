package downloader

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/apkgrab/apkgrab/pkg/workdir"
	"github.com/schollz/progressbar/v3"
)

// URL fetches a package from an explicit download URL. The URL itself is the
// provenance, so whatever the server happens to serve is what the caller
// gets; version pinning is not possible.
type URL struct {
	Workdir *workdir.Workdir
	URL     string

	// Client defaults to http.DefaultClient when nil.
	Client *http.Client
}

var _ Downloader = &URL{}

func (u *URL) LatestVersion(ctx context.Context, app App) (string, string, error) {
	fileName, err := u.fetch(ctx, app.PackageName)
	if err != nil {
		return "", "", err
	}
	return fileName, u.URL, nil
}

func (u *URL) SpecificVersion(ctx context.Context, app App, version string) (string, string, error) {
	slog.Warn("direct url downloads cannot pin versions, downloading whatever the url serves",
		"package", app.PackageName,
		"version", version,
		"url", u.URL,
	)
	return u.LatestVersion(ctx, app)
}

func (u *URL) fetch(ctx context.Context, pkg string) (string, error) {
	fileName := pkg + ".apk"
	dest := u.Workdir.Path(fileName)

	exists, err := u.Workdir.Exists(fileName)
	if err != nil {
		return "", wrapDownloadError(err, "checking existing artifact for %s", pkg)
	}
	if exists {
		return fileName, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.URL, nil)
	if err != nil {
		return "", wrapDownloadError(err, "building request for %s", u.URL)
	}

	client := u.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", wrapDownloadError(err, "downloading %s", u.URL)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", downloadErrorf("download of %s failed with status %s for %s", u.URL, resp.Status, pkg)
	}

	out, err := os.Create(dest)
	if err != nil {
		return "", wrapDownloadError(err, "creating %s", dest)
	}

	bar := progressbar.DefaultBytes(resp.ContentLength, filepath.Base(dest))
	if _, err := io.Copy(io.MultiWriter(out, bar), resp.Body); err != nil {
		out.Close()
		os.Remove(dest)
		return "", wrapDownloadError(err, "writing %s", dest)
	}

	if err := out.Close(); err != nil {
		os.Remove(dest)
		return "", wrapDownloadError(err, "closing %s", dest)
	}

	return fileName, nil
}
