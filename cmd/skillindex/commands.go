package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"skillindex/internal/description"
	"skillindex/internal/domain"
	"skillindex/internal/repository"
	"skillindex/internal/repository/sqlite"
	"skillindex/internal/service"
)

var (
	buildForce      bool
	buildAllowEmpty bool
	buildFormat     string
	buildOutput     string

	classifySource   string
	classifyID       string
	classifyTitle    string
	classifyDescFile string

	buildCmd = &cobra.Command{
		Use:   "build",
		Short: "Rebuild the category index from the skills index",
		Args:  cobra.NoArgs,
		RunE:  runBuild,
	}

	classifyCmd = &cobra.Command{
		Use:   "classify",
		Short: "Classify a single entry and print the result as JSON",
		Args:  cobra.NoArgs,
		RunE:  runClassify,
	}

	categoriesCmd = &cobra.Command{
		Use:   "categories",
		Short: "Print the category taxonomy, one per line",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, c := range domain.CategoryLabels() {
				fmt.Fprintln(cmd.OutOrStdout(), c)
			}
		},
	}
)

func init() {
	buildCmd.Flags().BoolVar(&buildForce, "force", false, "rebuild even when the skills index is unchanged")
	buildCmd.Flags().BoolVar(&buildAllowEmpty, "allow-empty", false, "accept a skills index with no items")
	buildCmd.Flags().StringVar(&buildFormat, "format", "json", "output format: json or yaml")
	buildCmd.Flags().StringVar(&buildOutput, "output", "", "output path (default from config)")

	classifyCmd.Flags().StringVar(&classifySource, "source", "", "source repository name")
	classifyCmd.Flags().StringVar(&classifyID, "id", "", "skill identifier")
	classifyCmd.Flags().StringVar(&classifyTitle, "title", "", "display title")
	classifyCmd.Flags().StringVar(&classifyDescFile, "description-file", "", "file holding the skill description")
}

// openRepository opens the run store when persistence is configured
func openRepository() (repository.Repository, func(), error) {
	if !cfg.PersistenceEnabled() {
		return nil, func() {}, nil
	}
	repo, err := sqlite.New(cfg.Database.Path)
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("database opened", "path", cfg.Database.Path)
	return repo, func() { repo.Close() }, nil
}

// syncOptions maps config onto a sync request
func syncOptions() service.SyncOptions {
	return service.SyncOptions{
		IndexPath:  cfg.Paths.Index,
		OutputPath: cfg.Paths.Output,
		YAMLPath:   cfg.Paths.YAMLOutput,
		Workers:    cfg.Classifier.Workers,
		AllowEmpty: cfg.AllowEmpty,
	}
}

func runBuild(cmd *cobra.Command, args []string) error {
	repo, closeRepo, err := openRepository()
	if err != nil {
		return err
	}
	defer closeRepo()

	svc := service.NewIndexService(newClassifier(), repo, nil, logger)

	opts := syncOptions()
	opts.Force = buildForce
	opts.AllowEmpty = opts.AllowEmpty || buildAllowEmpty
	opts.Format = buildFormat
	if buildOutput != "" {
		opts.OutputPath = buildOutput
	}

	res, err := svc.Sync(cmd.Context(), opts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if res.Unchanged {
		fmt.Fprintf(out, "unchanged: %s is up to date\n", opts.OutputPath)
		return nil
	}
	fmt.Fprintf(out, "wrote %s: %d skills", res.Run.OutputPath, res.Run.Total)
	if res.Run.Skipped > 0 {
		fmt.Fprintf(out, " (%d without id skipped)", res.Run.Skipped)
	}
	fmt.Fprintln(out)
	return nil
}

func runClassify(cmd *cobra.Command, args []string) error {
	if classifySource == "" && classifyID == "" && classifyTitle == "" && classifyDescFile == "" {
		return fmt.Errorf("at least one of --source, --id, --title or --description-file is required")
	}

	var text string
	if classifyDescFile != "" {
		abs, err := filepath.Abs(classifyDescFile)
		if err != nil {
			return fmt.Errorf("resolve description file: %w", err)
		}
		loader := description.NewLoader(filepath.Dir(abs), cfg.Classifier.DescriptionBudget)
		var ok bool
		if text, ok = loader.Description(filepath.Base(abs)); !ok {
			return fmt.Errorf("read description file %s", classifyDescFile)
		}
	}

	svc := service.NewIndexService(newClassifier(), nil, nil, logger)
	c := svc.ClassifyText(classifySource, classifyID, classifyTitle, text)

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
