package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kozaktomas/securevote/internal/biometric"
	"github.com/kozaktomas/securevote/internal/database"
	"github.com/kozaktomas/securevote/internal/database/postgres"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var votersImportCmd = &cobra.Command{
	Use:   "import <directory>",
	Short: "Bulk-enroll voters from a directory of face images",
	Long: `Bulk-enroll voters from a directory of face images.
Each file must be named <national_id>__<display name>.<ext>, for example
"9876543210__Jane Doe.jpg". Images are sent to the extraction service and
the resulting templates are stored. Already-registered national ids and
images without a detectable face are skipped with a warning.`,
	Args: cobra.ExactArgs(1),
	RunE: runVotersImport,
}

func init() {
	votersCmd.AddCommand(votersImportCmd)
}

// parseImportFilename splits "<national_id>__<display name>.<ext>" into its parts.
func parseImportFilename(name string) (nationalID, displayName string, ok bool) {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	parts := strings.SplitN(base, "__", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}

func runVotersImport(cmd *cobra.Command, args []string) error {
	dir := args[0]

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading directory: %w", err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".jpg", ".jpeg", ".png":
			files = append(files, e.Name())
		}
	}
	if len(files) == 0 {
		return errors.New("no image files found")
	}

	cfg, pool, err := initStorage()
	if err != nil {
		return err
	}
	defer pool.Close()

	voterRepo := postgres.NewVoterRepository(pool)
	extractor := biometric.NewExtractor(cfg.Extractor.URL, cfg.Extractor.Timeout)
	ctx := context.Background()

	bar := progressbar.NewOptions(len(files),
		progressbar.OptionSetDescription("Enrolling voters"),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("voters"),
		progressbar.OptionShowElapsedTimeOnFinish(),
	)

	var enrolled, skipped int
	for _, name := range files {
		bar.Add(1)

		nationalID, displayName, ok := parseImportFilename(name)
		if !ok {
			fmt.Fprintf(os.Stderr, "\nSkipping %s: name must be <national_id>__<display name>.<ext>\n", name)
			skipped++
			continue
		}

		imageData, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			fmt.Fprintf(os.Stderr, "\nSkipping %s: %v\n", name, err)
			skipped++
			continue
		}

		template, err := extractor.Extract(ctx, imageData)
		if err != nil {
			if errors.Is(err, biometric.ErrNoFaceDetected) {
				fmt.Fprintf(os.Stderr, "\nSkipping %s: no face detected\n", name)
				skipped++
				continue
			}
			return fmt.Errorf("extracting template for %s: %w", name, err)
		}

		if _, err := voterRepo.Enroll(ctx, nationalID, displayName, template); err != nil {
			if errors.Is(err, database.ErrDuplicateIdentity) {
				fmt.Fprintf(os.Stderr, "\nSkipping %s: national id already registered\n", name)
				skipped++
				continue
			}
			return fmt.Errorf("enrolling %s: %w", name, err)
		}
		enrolled++
	}

	fmt.Printf("\nEnrolled %d voters, skipped %d\n", enrolled, skipped)
	return nil
}
