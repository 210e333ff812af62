// Package cmd: convert command.
// Converts a single built page to Markdown and prints it, which is handy for
// checking how a page will look in llms-full.txt.
package cmd

import (
	"fmt"
	"os"

	"github.com/gaurav-prasanna/llmsdocs/core"
	"github.com/gaurav-prasanna/llmsdocs/core/convert"
	"github.com/gaurav-prasanna/llmsdocs/core/links"
	"github.com/spf13/cobra"
)

// Flag variables.
var (
	flagStripHTML bool
	flagBaseURL   string
	flagURLPath   string
)

var convertCmd = &cobra.Command{
	Use:   "convert <file.html>",
	Short: "Convert one built HTML page to Markdown",
	Long: `Convert extracts the documentation body of a built page, converts it to
Markdown and prints the result. With --base-url, internal links are rewritten
the way generate rewrites them.

Examples:
  llmsdocs convert build/docs/intro.html
  llmsdocs convert build/docs/intro.html --base-url https://docs.example.com --url-path /docs/intro`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().BoolVar(&flagStripHTML, "strip-html", true, "Remove raw HTML left after conversion")
	convertCmd.Flags().StringVar(&flagBaseURL, "base-url", "", "Rewrite internal links against this site URL")
	convertCmd.Flags().StringVar(&flagURLPath, "url-path", "/", "URL path of the page, used to resolve relative links")
}

func runConvert(cmd *cobra.Command, args []string) error {
	page, err := convertPage(args[0], flagStripHTML, flagBaseURL, flagURLPath)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), page.Content)
	return nil
}

// convertPage reads and converts one HTML file. Links are rewritten only
// when baseURL is set.
func convertPage(path string, stripHTML bool, baseURL, urlPath string) (core.ParsedHTML, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return core.ParsedHTML{}, fmt.Errorf("reading %s: %w", path, err)
	}
	page := convert.HTML(string(data), stripHTML)
	if baseURL != "" {
		page.Content = links.Transform(page.Content, baseURL, urlPath)
	}
	return page, nil
}
