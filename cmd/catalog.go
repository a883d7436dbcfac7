package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/marcus/tvnav/internal/db"
	"github.com/marcus/tvnav/internal/models"
	"github.com/marcus/tvnav/internal/output"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Manage the demo video catalog",
}

var catalogSeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Fill the catalog with demo channels, videos and hero slides",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg, err := loadConfig()
		if err != nil {
			output.Error("%v", err)
			return err
		}
		database, err := openCatalog(cfg)
		if err != nil {
			output.Error("%v", err)
			return err
		}
		defer database.Close()

		opts := db.DefaultSeed
		opts.Channels, _ = cmd.Flags().GetInt("channels")
		opts.VideosPerChannel, _ = cmd.Flags().GetInt("videos")
		opts.HeroSlides, _ = cmd.Flags().GetInt("slides")

		if reset, _ := cmd.Flags().GetBool("reset"); reset {
			yes, _ := cmd.Flags().GetBool("yes")
			if !yes {
				ok, err := confirmReset(database.Path())
				if err != nil {
					output.Error("%v", err)
					return err
				}
				if !ok {
					fmt.Fprintln(output.Stdout, "Aborted")
					return nil
				}
			}
			if err := database.Reset(ctx); err != nil {
				output.Error("reset catalog: %v", err)
				return err
			}
		}

		stats, err := database.Seed(ctx, opts)
		if err != nil {
			output.Error("seed catalog: %v", err)
			return err
		}
		output.Success("SEEDED %d channels, %d videos (%d paid), %d hero slides",
			stats.Channels, stats.Videos, stats.Paid, stats.Slides)
		return nil
	},
}

// confirmReset asks before wiping the catalog. Without a terminal it refuses.
func confirmReset(path string) (bool, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return false, fmt.Errorf("refusing to reset %s without a terminal; pass --yes", path)
	}
	var ok bool
	err := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title("Reset the catalog?").
			Description("Every channel, video and My List entry in " + path + " is deleted.").
			Affirmative("Reset").
			Negative("Cancel").
			Value(&ok),
	)).Run()
	return ok, err
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List one page of videos",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg, err := loadConfig()
		if err != nil {
			output.Error("%v", err)
			return err
		}
		database, err := openCatalog(cfg)
		if err != nil {
			output.Error("%v", err)
			return err
		}
		defer database.Close()

		q := db.VideoQuery{}
		q.ChannelID, _ = cmd.Flags().GetString("channel")
		category, _ := cmd.Flags().GetString("category")
		q.Category = models.Category(category)
		q.MyList, _ = cmd.Flags().GetBool("mylist")
		if views, _ := cmd.Flags().GetBool("by-views"); views {
			q.Sort = db.SortViews
		}
		page, _ := cmd.Flags().GetInt("page")
		limit, _ := cmd.Flags().GetInt("limit")
		if limit <= 0 {
			limit = cfg.PageSize
		}

		res, err := database.ListVideos(ctx, q, db.NormalizePage(page), db.NormalizeLimit(limit))
		if err != nil {
			output.Error("list videos: %v", err)
			return err
		}

		if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
			return output.JSON(res)
		}
		for _, v := range res.Items {
			fmt.Fprintln(output.Stdout, formatVideoLine(v))
		}
		if len(res.Items) == 0 {
			fmt.Fprintln(output.Stdout, "No videos")
			return nil
		}
		fmt.Fprintf(output.Stdout, "page %d/%d, %d videos\n", res.Page, res.TotalPages, res.Total)
		return nil
	},
}

var catalogSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Rank videos against a query the way the search screen does",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			output.Error("%v", err)
			return err
		}
		database, err := openCatalog(cfg)
		if err != nil {
			output.Error("%v", err)
			return err
		}
		defer database.Close()

		results, err := database.SearchVideosRanked(cmd.Context(), args[0])
		if err != nil {
			output.Error("search failed: %v", err)
			return err
		}
		for _, r := range results {
			fmt.Fprintf(output.Stdout, "%3d %-11s %s\n", r.Score, r.MatchField, formatVideoLine(r.Video))
		}
		if len(results) == 0 {
			fmt.Fprintf(output.Stdout, "No videos matching '%s'\n", args[0])
		}
		return nil
	},
}

var catalogStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Count catalog rows",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			output.Error("%v", err)
			return err
		}
		database, err := openCatalog(cfg)
		if err != nil {
			output.Error("%v", err)
			return err
		}
		defer database.Close()

		stats, err := database.Stats(cmd.Context())
		if err != nil {
			output.Error("%v", err)
			return err
		}
		if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
			return output.JSON(stats)
		}
		fmt.Fprintf(output.Stdout, "catalog:     %s (%s)\n", database.Path(), database.Driver())
		fmt.Fprintf(output.Stdout, "channels:    %d\n", stats.Channels)
		fmt.Fprintf(output.Stdout, "videos:      %d (%d paid)\n", stats.Videos, stats.Paid)
		fmt.Fprintf(output.Stdout, "hero slides: %d\n", stats.Slides)
		fmt.Fprintf(output.Stdout, "my list:     %d\n", stats.MyList)
		return nil
	},
}

// formatVideoLine renders a video as one list line
func formatVideoLine(v models.Video) string {
	line := fmt.Sprintf("%s  %-28s %-9s %6d views", v.ID, v.Title, v.Category, v.Views)
	if v.Paid() {
		line += "  \u265b" // ♛
	}
	if v.InMyList {
		line += "  [my list]"
	}
	return line
}

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.AddCommand(catalogSeedCmd, catalogListCmd, catalogSearchCmd, catalogStatsCmd)

	catalogSeedCmd.Flags().Bool("reset", false, "Delete the existing catalog first")
	catalogSeedCmd.Flags().BoolP("yes", "y", false, "Skip the reset confirmation")
	catalogSeedCmd.Flags().Int("channels", db.DefaultSeed.Channels, "Number of channels")
	catalogSeedCmd.Flags().Int("videos", db.DefaultSeed.VideosPerChannel, "Videos per channel")
	catalogSeedCmd.Flags().Int("slides", db.DefaultSeed.HeroSlides, "Hero slides")

	catalogListCmd.Flags().String("channel", "", "Filter by channel id")
	catalogListCmd.Flags().String("category", "", "Filter by category: tvshows, movies or featured")
	catalogListCmd.Flags().Bool("mylist", false, "Only videos on My List")
	catalogListCmd.Flags().Bool("by-views", false, "Sort by views (the Trending order)")
	catalogListCmd.Flags().Int("page", 1, "Page number")
	catalogListCmd.Flags().Int("limit", 0, "Page size (default: page_size from config)")
	catalogListCmd.Flags().Bool("json", false, "Output JSON")

	catalogStatsCmd.Flags().Bool("json", false, "Output JSON")
}
