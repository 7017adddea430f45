package downloader

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/apkgrab/apkgrab/pkg/archive"
	"github.com/apkgrab/apkgrab/pkg/runner"
	"github.com/apkgrab/apkgrab/pkg/workdir"
)

// Environment variables holding the Google account credentials apkeep needs.
const (
	EnvApkeepEmail = "APKEEP_EMAIL"
	EnvApkeepToken = "APKEEP_TOKEN"
)

const (
	apkeepCommand     = "apkeep"
	apkeepStore       = "google-play"
	stderrPlaceholder = "no details"
)

// Apkeep fetches packages from Google Play by wrapping the apkeep CLI.
//
// Google Play does not support downloading specific versions through apkeep;
// the @version syntax only works with the APKPure and F-Droid stores. A
// specific-version request therefore degrades to a latest fetch with a
// warning, and the provenance URI never embeds the requested version.
type Apkeep struct {
	Workdir *workdir.Workdir
	Creds   CredentialProvider
	Runner  runner.Runner
}

var _ Downloader = &Apkeep{}

func (a *Apkeep) LatestVersion(ctx context.Context, app App) (string, string, error) {
	fileName, err := a.fetch(ctx, app.PackageName)
	if err != nil {
		return "", "", err
	}
	return fileName, apkeepProvenance(app.PackageName), nil
}

func (a *Apkeep) SpecificVersion(ctx context.Context, app App, version string) (string, string, error) {
	slog.Warn("apkeep cannot pin versions on google-play, downloading latest instead",
		"package", app.PackageName,
		"version", version,
	)
	return a.LatestVersion(ctx, app)
}

func apkeepProvenance(pkg string) string {
	return fmt.Sprintf("apkeep://%s/%s", apkeepStore, pkg)
}

// fetch runs apkeep for pkg and returns the artifact file name. Pre-existing
// output short-circuits the external invocation: a monolithic apk or an
// already-packaged archive is returned as-is. A split-apk directory produced
// by apkeep is packaged into a zip whose entry names are relative to the
// workspace root. The unpacked directory is left on disk; cleanup belongs to
// the caller.
func (a *Apkeep) fetch(ctx context.Context, pkg string) (string, error) {
	email := a.Creds.Str(EnvApkeepEmail)
	token := a.Creds.Str(EnvApkeepToken)
	if email == "" || token == "" {
		return "", downloadErrorf("%s and %s must be set in environment", EnvApkeepEmail, EnvApkeepToken)
	}

	art := a.Workdir.Artifact(pkg)
	loc, err := art.Locate()
	if err != nil {
		return "", wrapDownloadError(err, "locating existing artifact for %s", pkg)
	}
	switch loc {
	case workdir.SingleFile:
		return filepath.Base(art.File), nil
	case workdir.Archive:
		return filepath.Base(art.Zip), nil
	}

	args := []string{
		"-a", pkg,
		"-d", apkeepStore,
		"-e", email,
		"-t", token,
		"-o", "split_apk=true",
		a.Workdir.Name(),
	}

	start := time.Now()
	res, err := a.Runner.Run(ctx, a.Workdir.ParentDir(), apkeepCommand, args...)
	if err != nil {
		return "", wrapDownloadError(err, "running %s for %s", apkeepCommand, pkg)
	}
	if res.ExitCode != 0 {
		detail := decodeStderr(res.Stderr)
		if detail == "" {
			detail = stderrPlaceholder
		}
		return "", downloadErrorf("%s failed with exit code %d for %s: %s", apkeepCommand, res.ExitCode, pkg, detail)
	}
	slog.Info("apkeep completed", "package", pkg, "elapsed", time.Since(start).Round(10*time.Millisecond))

	loc, err = art.Locate()
	if err != nil {
		return "", wrapDownloadError(err, "locating artifact for %s after apkeep", pkg)
	}
	switch loc {
	case workdir.SingleFile:
		return filepath.Base(art.File), nil
	case workdir.Archive:
		return filepath.Base(art.Zip), nil
	case workdir.Directory:
		if err := archive.ZipDir(art.Zip, art.Dir, a.Workdir.Root()); err != nil {
			return "", wrapDownloadError(err, "packaging split apks for %s", pkg)
		}
		return filepath.Base(art.Zip), nil
	}
	return "", downloadErrorf("apk not found after %s, expected %s or %s", apkeepCommand, art.File, art.Dir)
}

// decodeStderr turns captured stderr into printable text, replacing invalid
// UTF-8 rather than failing on it.
func decodeStderr(b []byte) string {
	return strings.TrimSpace(strings.ToValidUTF8(string(b), "�"))
}
