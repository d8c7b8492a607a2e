package cmd

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/taigrr/colorhash"
)

// NewSeedCmd creates and returns the seed subcommand for the assetmin CLI.
// It generates a tree of unminified JavaScript and CSS files for trying out minify.
func NewSeedCmd() *cobra.Command {
	var (
		outputPath string
		fileCount  int
		buckets    int
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Generate unminified JavaScript and CSS test files",
		Long: `Generate a tree of unminified JavaScript and CSS files for testing assetmin.

Each file is built around a fresh UUID and placed in one of --buckets
subdirectories chosen by hashing that UUID. Roughly two thirds of the files
are JavaScript, the rest CSS. Comments and indentation are included so the
minified outputs show a real size reduction.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd, outputPath, fileCount, buckets, verbose)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Path to output directory (required)")
	cmd.Flags().IntVarP(&fileCount, "count", "n", 100, "Number of files to generate")
	cmd.Flags().IntVarP(&buckets, "buckets", "b", 10, "Number of subdirectories to spread files across")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	cmd.MarkFlagRequired("output")

	return cmd
}

func runSeed(cmd *cobra.Command, outputPath string, fileCount, buckets int, verbose bool) error {
	if buckets < 1 || buckets > 1000 {
		return fmt.Errorf("buckets must be between 1 and 1000, got %d", buckets)
	}
	out := cmd.OutOrStdout()
	if verbose {
		fmt.Fprintf(out, "Generating %d test files in %s\n", fileCount, outputPath)
	}

	if err := os.MkdirAll(outputPath, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	dirFileCounts := make(map[string]int)
	var jsFiles, cssFiles int

	for i := 0; i < fileCount; i++ {
		id := uuid.New().String()
		bucket := int(colorhash.HashString(id)%1000) % buckets
		if bucket < 0 {
			bucket = -bucket
		}
		dirPath := filepath.Join(outputPath, fmt.Sprintf("b%03d", bucket))
		if err := os.MkdirAll(dirPath, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dirPath, err)
		}

		kind, _ := rand.Int(rand.Reader, big.NewInt(3))
		name, content := seedJS(id)
		if kind.Int64() == 0 {
			name, content = seedCSS(id)
			cssFiles++
		} else {
			jsFiles++
		}

		filePath := filepath.Join(dirPath, name)
		if err := os.WriteFile(filePath, []byte(content), 0o644); err != nil {
			return fmt.Errorf("failed to write file %s: %w", filePath, err)
		}
		dirFileCounts[dirPath]++

		if verbose && (i+1)%100 == 0 {
			fmt.Fprintf(out, "Created %d/%d files...\n", i+1, fileCount)
		}
	}

	fmt.Fprintf(out, "Created %d files (%d JS, %d CSS) across %d directories\n",
		jsFiles+cssFiles, jsFiles, cssFiles, len(dirFileCounts))
	return nil
}

// seedIdent turns a UUID into a JavaScript identifier and CSS class name.
func seedIdent(id string) string {
	return "x" + strings.ReplaceAll(id, "-", "")
}

func seedJS(id string) (string, string) {
	ident := seedIdent(id)
	content := fmt.Sprintf(`/*
 * Generated fixture %[1]s
 */
function %[2]s(firstArgument, secondArgument) {
    // combine both arguments with the fixture id
    var combinedResult = firstArgument + secondArgument;
    var fixtureIdentifier = "%[1]s";
    return combinedResult + ":" + fixtureIdentifier;
}

var %[2]sResult = %[2]s(1, 2);
`, id, ident)
	return id + ".js", content
}

func seedCSS(id string) (string, string) {
	ident := seedIdent(id)
	content := fmt.Sprintf(`/* Generated fixture %[1]s */
.%[2]s {
    color: #ff0000;
    margin: 0px 0px 0px 0px;
    padding: 10px;
}

.%[2]s > a:hover {
    text-decoration: underline;
}
`, id, ident)
	return id + ".css", content
}
