package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mrlokans/slokas/internal/entrypoint"
)

func newServeCommand(version string, load ConfigLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return entrypoint.Run(load(), version)
		},
	}
}

func newDailyCommand(load ConfigLoader, opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "daily",
		Short: "Print today's sloka",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), load, func(app *entrypoint.App) error {
				s, err := app.Tracker.DailySloka(cmd.Context())
				if err != nil {
					return err
				}
				return printSloka(cmd.OutOrStdout(), opts, s)
			})
		},
	}
}

func newRandomCommand(load ConfigLoader, opts *options) *cobra.Command {
	var exclude string
	cmd := &cobra.Command{
		Use:   "random",
		Short: "Print a random sloka",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), load, func(app *entrypoint.App) error {
				s, err := app.Tracker.RandomSloka(exclude, app.Slokas.All())
				if err != nil {
					return err
				}
				return printSloka(cmd.OutOrStdout(), opts, s)
			})
		},
	}
	cmd.Flags().StringVar(&exclude, "exclude", "", "Sloka id that must not be picked")
	return cmd
}

func newChapterCommand(load ConfigLoader, opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "chapter [number]",
		Short: "List chapters, or print the slokas of one chapter",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), load, func(app *entrypoint.App) error {
				out := cmd.OutOrStdout()
				if len(args) == 0 {
					return printChapters(out, opts, app.Slokas.Chapters())
				}

				number, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("invalid chapter number %q", args[0])
				}
				slokas := app.Slokas.Chapter(number)
				if opts.jsonOut {
					return printJSON(out, slokas)
				}
				if len(slokas) == 0 {
					fmt.Fprintf(out, "Chapter %d has no slokas\n", number)
					return nil
				}
				if info, ok := app.Slokas.ChapterInfo(number); ok {
					fmt.Fprintf(out, "%s\n\n", chapterTitle(info))
				}
				for i, s := range slokas {
					if i > 0 {
						fmt.Fprintln(out)
					}
					if err := printSloka(out, opts, s); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
}

func newFavouriteCommand(load ConfigLoader, opts *options) *cobra.Command {
	var remove bool
	cmd := &cobra.Command{
		Use:     "favourite [id]",
		Aliases: []string{"favorite", "fav"},
		Short:   "Toggle a favourite, or list favourites without an id",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), load, func(app *entrypoint.App) error {
				out := cmd.OutOrStdout()
				ctx := cmd.Context()

				if len(args) == 0 {
					return printFavourites(out, opts, app.Tracker.Favorites())
				}

				id := args[0]
				if remove {
					return printFavourites(out, opts, app.Tracker.RemoveFavorite(ctx, id))
				}

				s, ok := app.Slokas.ByID(id)
				if !ok {
					return fmt.Errorf("sloka %s not found", id)
				}
				favourites := app.Tracker.ToggleFavorite(ctx, s)
				if !opts.jsonOut {
					if app.Tracker.IsFavorite(id) {
						fmt.Fprintf(out, "Added %s to favourites\n", id)
					} else {
						fmt.Fprintf(out, "Removed %s from favourites\n", id)
					}
				}
				return printFavourites(out, opts, favourites)
			})
		},
	}
	cmd.Flags().BoolVar(&remove, "remove", false, "Remove the id instead of toggling it")
	return cmd
}

func newReadCommand(load ConfigLoader, opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "read <id>",
		Short: "Mark a sloka as read",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), load, func(app *entrypoint.App) error {
				s, ok := app.Slokas.ByID(args[0])
				if !ok {
					return fmt.Errorf("sloka %s not found", args[0])
				}
				count := app.Tracker.MarkRead(cmd.Context(), s.ID)
				if opts.jsonOut {
					return printJSON(cmd.OutOrStdout(), map[string]any{"id": s.ID, "read_count": count})
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Slokas read: %d\n", count)
				return nil
			})
		},
	}
}

func newStatsCommand(load ConfigLoader, opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print reading statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), load, func(app *entrypoint.App) error {
				snap := app.Tracker.Snapshot()
				st := stats{
					Username:        app.Profile.Username(cmd.Context()),
					ReadCount:       snap.ReadCount,
					FavouritesCount: len(snap.Favorites),
					VisitedCount:    snap.VisitedCount,
					TotalSlokas:     app.Slokas.Len(),
				}
				if snap.Daily != nil {
					st.DailySloka = snap.Daily.SlokaID
					st.DailyDate = snap.Daily.LastVisitDate
				}
				return printStats(cmd.OutOrStdout(), opts, st)
			})
		},
	}
}

func newUsernameCommand(load ConfigLoader, opts *options) *cobra.Command {
	var reset bool
	cmd := &cobra.Command{
		Use:   "username [name]",
		Short: "Show or change the profile name",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), load, func(app *entrypoint.App) error {
				ctx := cmd.Context()
				switch {
				case reset:
					if err := app.Profile.ClearUsername(ctx); err != nil {
						return err
					}
				case len(args) == 1:
					if err := app.Profile.SetUsername(ctx, args[0]); err != nil {
						return err
					}
				}

				info := app.Profile.UsernameInfo(ctx)
				if opts.jsonOut {
					return printJSON(cmd.OutOrStdout(), info)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", info.Username, info.Source)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&reset, "clear", false, "Remove the stored name")
	return cmd
}
