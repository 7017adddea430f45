package fetcher

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/apkgrab/apkgrab/pkg/config"
	"github.com/apkgrab/apkgrab/pkg/downloader"
	"github.com/apkgrab/apkgrab/pkg/provenance"
	"github.com/apkgrab/apkgrab/pkg/runner"
	"github.com/apkgrab/apkgrab/pkg/workdir"
)

// Fetcher downloads the apps described by a manifest into the workspace,
// recording a provenance sidecar next to each artifact. Apps are fetched
// one at a time; concurrent fetches of the same package would race on the
// shared artifact paths.
type Fetcher struct {
	Workdir *workdir.Workdir
	Creds   downloader.CredentialProvider
	Runner  runner.Runner

	// Now stamps provenance records; defaults to time.Now.
	Now func() time.Time
}

// Result captures one fetched app.
type Result struct {
	Name     string
	Package  string
	FileName string
	URI      string
}

// FetchAll fetches every app in the config in deterministic name order.
// The first failure aborts the run; earlier artifacts stay on disk and are
// found again by the idempotence check on the next run.
func (f *Fetcher) FetchAll(ctx context.Context, cfg *config.Config) ([]Result, error) {
	names := make([]string, 0, len(cfg.Apps))
	for name := range cfg.Apps {
		names = append(names, name)
	}
	sort.Strings(names)

	var results []Result
	for _, name := range names {
		res, err := f.FetchApp(ctx, name, cfg.Apps[name])
		if err != nil {
			return nil, fmt.Errorf("fetching app %q: %w", name, err)
		}
		results = append(results, res)
	}

	return results, nil
}

// FetchApp fetches a single app and writes its provenance sidecar.
func (f *Fetcher) FetchApp(ctx context.Context, name string, ac config.AppConfig) (Result, error) {
	if ac.Package == "" {
		return Result{}, fmt.Errorf("app %q has no package identifier", name)
	}

	dl, err := downloader.ForApp(ac, f.Workdir, f.Creds, f.Runner)
	if err != nil {
		return Result{}, err
	}

	if err := f.Workdir.EnsureRoot(); err != nil {
		return Result{}, err
	}

	app := downloader.App{PackageName: ac.Package}

	var fileName, uri string
	if ac.Version != "" {
		fileName, uri, err = dl.SpecificVersion(ctx, app, ac.Version)
	} else {
		fileName, uri, err = dl.LatestVersion(ctx, app)
	}
	if err != nil {
		return Result{}, err
	}

	now := time.Now
	if f.Now != nil {
		now = f.Now
	}
	rec := provenance.Record{
		Artifact:  fileName,
		Package:   ac.Package,
		URI:       uri,
		FetchedAt: now(),
	}
	sidecar := f.Workdir.Path(provenance.SidecarName(fileName))
	if err := provenance.Write(sidecar, rec); err != nil {
		return Result{}, err
	}

	slog.Info("fetched app", "app", name, "package", ac.Package, "artifact", fileName, "uri", uri)

	return Result{
		Name:     name,
		Package:  ac.Package,
		FileName: fileName,
		URI:      uri,
	}, nil
}
