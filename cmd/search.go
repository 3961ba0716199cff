package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/docbrowser/internal/documents"
	"github.com/ziadkadry99/docbrowser/internal/progress"
	"github.com/ziadkadry99/docbrowser/internal/render"
)

var searchCmd = &cobra.Command{
	Use:   "search [term]",
	Short: "Search the documents API from the terminal",
	Long:  `Runs the same document search as the browser and prints the reports and SQL queries it finds.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSearch,
}

func init() {
	searchCmd.Flags().String("owner", "", "filter by owner")
	searchCmd.Flags().String("author", "", "filter by author (default all)")
	searchCmd.Flags().String("category", "", "filter by category prefix")
	searchCmd.Flags().String("status", "", "filter by publishing status")
	searchCmd.Flags().Bool("json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	params := documents.DefaultSearchParams()
	if len(args) == 1 {
		params.Search = args[0]
	}
	if v, _ := cmd.Flags().GetString("owner"); v != "" {
		params.Owner = v
	}
	if v, _ := cmd.Flags().GetString("author"); v != "" {
		params.Author = v
	}
	if v, _ := cmd.Flags().GetString("category"); v != "" {
		params.CategoryPrefix = v
	}
	if v, _ := cmd.Flags().GetString("status"); v != "" {
		params.PublishingStatus = v
	}
	jsonOutput, _ := cmd.Flags().GetBool("json")

	reporter := progress.NewReporter(os.Stderr)
	reporter.Start("Searching documents")
	result, err := newDocumentsClient(cfg).Search(ctx, params)
	reporter.Finish()
	if err != nil {
		var failed *documents.SearchRequestFailedError
		if errors.As(err, &failed) {
			color.Red("An error occured: %s", failed.StatusText)
		}
		return err
	}

	rows := searchRows(result.Documents, time.Now())
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	}

	if len(rows) == 0 {
		fmt.Println("No documents found.")
		return nil
	}
	printSearchRows(rows)
	return nil
}

type searchRowJSON struct {
	UUID     string         `json:"uuid"`
	Name     string         `json:"name"`
	Type     documents.Type `json:"type"`
	Path     string         `json:"path"`
	Modified string         `json:"modified"`
}

// searchRows keeps the documents the browser would list.
func searchRows(docs []documents.Document, now time.Time) []searchRowJSON {
	out := []searchRowJSON{}
	for _, doc := range docs {
		path, ok := documents.DetailPath(doc)
		if !ok {
			continue
		}
		out = append(out, searchRowJSON{
			UUID:     doc.UUID,
			Name:     doc.Name,
			Type:     doc.Type,
			Path:     path,
			Modified: render.TimeAgo(doc.ModifiedAt(), now),
		})
	}
	return out
}

func printSearchRows(rows []searchRowJSON) {
	bold := color.New(color.Bold).SprintFunc()
	faint := color.New(color.FgHiBlack).SprintFunc()
	typeColor := map[documents.Type]*color.Color{
		documents.TypeReport:   color.New(color.FgCyan),
		documents.TypeSQLQuery: color.New(color.FgGreen),
	}

	fmt.Printf("Found %d documents:\n\n", len(rows))
	for i, r := range rows {
		fmt.Printf("  %d. %s %s\n", i+1, bold(r.Name), typeColor[r.Type].Sprintf("[%s]", r.Type))
		fmt.Printf("     %s  %s\n\n", r.Path, faint(r.Modified))
	}
}
