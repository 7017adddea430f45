package cmd

import (
	"fmt"
	"os"

	"github.com/apkgrab/apkgrab/pkg/config"
	"github.com/apkgrab/apkgrab/pkg/downloader"
	"github.com/apkgrab/apkgrab/pkg/project"
	"github.com/apkgrab/apkgrab/pkg/workdir"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize a new apkgrab project",
		Long:  "Creates an apkgrab.toml manifest and configures .gitignore entries.",
		RunE:  runInit,
		// init does not need dev config resolution; skip the root PersistentPreRunE.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	}
}

func runInit(cmd *cobra.Command, args []string) error {
	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting working directory: %w", err)
	}

	name := project.InferName(wd)

	apps, err := promptFirstApp()
	if err != nil {
		return err
	}

	if err := project.Init(wd, name, apps); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", project.ManifestFile)

	gitignoreEntries := []string{workdir.DefaultFolderName + "/", config.LocalConfigFile}
	added, err := project.EnsureGitignore(wd, gitignoreEntries)
	if err != nil {
		return err
	}
	for _, entry := range added {
		fmt.Fprintf(cmd.OutOrStdout(), "Added %s to .gitignore\n", entry)
	}

	return nil
}

// promptFirstApp uses huh to optionally seed the manifest with one app.
func promptFirstApp() (map[string]config.AppConfig, error) {
	var pkg, source string

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("First app package identifier (leave empty to skip)").
				Placeholder("com.example.app").
				Value(&pkg),
			huh.NewSelect[string]().
				Title("Download source").
				Options(
					huh.NewOption("Google Play via apkeep", downloader.SourceApkeep),
					huh.NewOption("Direct URL", downloader.SourceURL),
				).
				Value(&source),
		),
	).Run()
	if err != nil {
		return nil, fmt.Errorf("prompt failed: %w", err)
	}

	if pkg == "" {
		return nil, nil
	}

	return map[string]config.AppConfig{
		pkg: {Package: pkg, Source: source},
	}, nil
}
