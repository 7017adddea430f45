package downloader

import (
	"context"
	"fmt"

	"github.com/apkgrab/apkgrab/pkg/config"
	"github.com/apkgrab/apkgrab/pkg/runner"
	"github.com/apkgrab/apkgrab/pkg/workdir"
)

// Source names accepted in the apps manifest.
const (
	SourceApkeep = "apkeep"
	SourceURL    = "url"
)

// App identifies the application a downloader should fetch. Constructed per
// call, never persisted.
type App struct {
	PackageName string
}

// Downloader fetches an application package into the workspace and returns
// the artifact file name together with a provenance URI recording which
// source produced it. The provenance URI carries no version information
// unless the source actually honored the requested version.
type Downloader interface {
	LatestVersion(ctx context.Context, app App) (fileName, provenance string, err error)
	// SpecificVersion downloads the requested version where the source
	// supports pinning. Sources that cannot pin degrade to the latest
	// version with a logged warning.
	SpecificVersion(ctx context.Context, app App, version string) (fileName, provenance string, err error)
}

// CredentialProvider looks up named string values, typically from the
// process environment. Missing names yield the empty string.
type CredentialProvider interface {
	Str(name string) string
}

// DownloadError is the error kind for every failure while fetching an
// application package.
type DownloadError struct {
	msg string
	err error
}

func (e *DownloadError) Error() string {
	if e.err != nil {
		return e.msg + ": " + e.err.Error()
	}
	return e.msg
}

func (e *DownloadError) Unwrap() error {
	return e.err
}

func downloadErrorf(format string, args ...any) *DownloadError {
	return &DownloadError{msg: fmt.Sprintf(format, args...)}
}

func wrapDownloadError(err error, format string, args ...any) *DownloadError {
	return &DownloadError{msg: fmt.Sprintf(format, args...), err: err}
}

// ForApp maps an app's manifest entry to the downloader that serves its
// source. An empty source selects apkeep.
func ForApp(ac config.AppConfig, wd *workdir.Workdir, creds CredentialProvider, run runner.Runner) (Downloader, error) {
	switch ac.Source {
	case "", SourceApkeep:
		return &Apkeep{Workdir: wd, Creds: creds, Runner: run}, nil
	case SourceURL:
		if ac.URL == "" {
			return nil, fmt.Errorf("app %q uses source %q but has no url", ac.Package, SourceURL)
		}
		return &URL{Workdir: wd, URL: ac.URL}, nil
	default:
		return nil, fmt.Errorf("unknown download source %q for app %q", ac.Source, ac.Package)
	}
}
