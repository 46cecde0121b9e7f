package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/DjordjeVuckovic/x-hunter/internal/search"
	"github.com/DjordjeVuckovic/x-hunter/internal/timeline"
	"github.com/DjordjeVuckovic/x-hunter/pkg/stringsutil"
)

const summaryWidth = 140

var (
	searchMax  int
	searchMode string
)

func init() {
	searchCmd.Flags().IntVar(&searchMax, "max", 20, "Maximum number of posts to print")
	searchCmd.Flags().StringVar(&searchMode, "mode", "top", "Search mode: top, latest, photos or videos (users is rejected, use the profiles command)")
	profilesCmd.Flags().IntVar(&searchMax, "max", 20, "Maximum number of profiles to print")
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search posts",
	Long: `Search posts and print one summary line per post.

Examples:
  # Latest 50 posts about Go
  xhunter search "golang" --mode latest --max 50

  # Posts from one account
  xhunter search "from:golang" --max 10`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

var profilesCmd = &cobra.Command{
	Use:   "profiles <query>",
	Short: "Search user profiles",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runProfiles,
}

func runSearch(cmd *cobra.Command, args []string) error {
	mode, err := search.ParseMode(searchMode)
	if err != nil {
		return err
	}

	client, err := newSearchClient()
	if err != nil {
		return err
	}

	seq, err := client.SearchItems(cmd.Context(), strings.Join(args, " "), searchMax, mode)
	if err != nil {
		return err
	}

	n := 0
	for tweet, err := range seq {
		if err != nil {
			return fmt.Errorf("search stopped after %d posts: %w", n, err)
		}
		n++
		printTweet(cmd.OutOrStdout(), n, tweet)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%d posts\n", n)

	return nil
}

func runProfiles(cmd *cobra.Command, args []string) error {
	client, err := newSearchClient()
	if err != nil {
		return err
	}

	seq, err := client.SearchProfiles(cmd.Context(), strings.Join(args, " "), searchMax)
	if err != nil {
		return err
	}

	n := 0
	for profile, err := range seq {
		if err != nil {
			return fmt.Errorf("search stopped after %d profiles: %w", n, err)
		}
		n++
		printProfile(cmd.OutOrStdout(), n, profile)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%d profiles\n", n)

	return nil
}

func newSearchClient() (*search.Client, error) {
	sess, err := appConfig.NewSession()
	if err != nil {
		return nil, err
	}
	return search.NewClient(sess, appConfig.NewTransport()), nil
}

func printTweet(w io.Writer, n int, t timeline.Tweet) {
	fmt.Fprintf(w, "%d. @%s (%s) %s\n", n, t.Username, t.ID, stringsutil.Truncate(stringsutil.Collapse(t.Text), summaryWidth))
}

func printProfile(w io.Writer, n int, p timeline.Profile) {
	fmt.Fprintf(w, "%d. @%s %s, %d followers: %s\n", n, p.Username, p.Name, p.Followers,
		stringsutil.Truncate(stringsutil.Collapse(p.Biography), summaryWidth))
}
