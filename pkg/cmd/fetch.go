package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/apkgrab/apkgrab/pkg/config"
	"github.com/apkgrab/apkgrab/pkg/fetcher"
	"github.com/apkgrab/apkgrab/pkg/runner"
	"github.com/apkgrab/apkgrab/pkg/workdir"
	"github.com/spf13/cobra"
)

func newFetchCmd() *cobra.Command {
	fetchCmd := &cobra.Command{
		Use:   "fetch [package]",
		Short: "Fetch apps into the workspace",
		Long: `Fetches Android packages into the download workspace.

With a package argument, fetches that single package. Without arguments,
fetches every app listed in apkgrab.toml.

The apkeep source needs APKEEP_EMAIL and APKEEP_TOKEN in the environment.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runFetch,
	}

	fetchCmd.Flags().String("version", "", "requested app version (sources that cannot pin fall back to latest)")
	fetchCmd.Flags().String("source", "", "download source: apkeep (default) or url")
	fetchCmd.Flags().String("url", "", "direct download URL, required for --source url")

	return fetchCmd
}

func runFetch(cmd *cobra.Command, args []string) error {
	f := &fetcher.Fetcher{
		Workdir: workdir.New(DevCfg.TempFolder),
		Creds:   config.NewEnv(),
		Runner:  runner.New(),
	}

	if len(args) == 1 {
		return fetchOne(cmd, f, args[0])
	}
	return fetchManifest(cmd, f)
}

func fetchOne(cmd *cobra.Command, f *fetcher.Fetcher, pkg string) error {
	version, _ := cmd.Flags().GetString("version")
	source, _ := cmd.Flags().GetString("source")
	url, _ := cmd.Flags().GetString("url")

	res, err := f.FetchApp(cmd.Context(), pkg, config.AppConfig{
		Package: pkg,
		Source:  source,
		Version: version,
		URL:     url,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s ← %s\n", res.FileName, res.URI)
	return nil
}

func fetchManifest(cmd *cobra.Command, f *fetcher.Fetcher) error {
	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting working directory: %w", err)
	}

	manifestPath := filepath.Join(wd, config.ManifestFileName)
	cfg, err := config.LoadFile(manifestPath)
	if err != nil {
		return fmt.Errorf("loading %s: %w", manifestPath, err)
	}

	results, err := f.FetchAll(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	for _, res := range results {
		fmt.Fprintf(cmd.OutOrStdout(), "%s ← %s\n", res.FileName, res.URI)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Fetched %d app(s)\n", len(results))
	return nil
}
