// gametracker is the terminal front end for the catalog: the list, form
// and review views map to commands, and every mutating action reloads
// the view it affects.
package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gametracker/backend/internal/client"
	"gametracker/backend/internal/controller"
	"gametracker/backend/internal/platform"

	"github.com/spf13/cobra"
)

var (
	apiBase string
	api     *client.Client
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "gametracker",
		Short:         "Track your game catalog and reviews",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			api = client.New(apiBase)
		},
	}

	defaultBase := os.Getenv("API_BASE_URL")
	if defaultBase == "" {
		defaultBase = "http://localhost:8080"
	}
	root.PersistentFlags().StringVar(&apiBase, "api", defaultBase, "backend origin")

	root.AddCommand(listCmd(), addCmd(), editCmd(), deleteCmd(), reviewsCmd())
	return root
}

// stdinConfirm is the interactive yes/no gate for destructive actions.
func stdinConfirm(prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

// region --- catalog view ---

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show the game catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog := controller.NewCatalog(api, stdinConfirm)
			if err := catalog.Load(cmd.Context()); err != nil {
				return err
			}
			printCatalog(cmd, catalog)
			return nil
		},
	}
}

func printCatalog(cmd *cobra.Command, catalog *controller.Catalog) {
	games := catalog.Games()
	cmd.Printf("Tracked games (%d)\n", len(games))
	if len(games) == 0 {
		cmd.Println("No games registered yet. Add one!")
		return
	}

	for _, game := range games {
		status := "pending"
		if game.Completed {
			status = "completed"
		}

		cmd.Printf("\n#%d  %s\n", game.ID, game.Title)
		cmd.Printf("    Platforms: %s\n", platform.Join(game.Platform))
		cmd.Printf("    Hours played: %.1fh  Status: %s\n", game.HoursPlayed, status)
		if game.ImageURL != "" {
			cmd.Printf("    Cover: %s\n", api.ResolveImageURL(game.ImageURL))
		}

		// Per-card aggregate; a failed fetch renders as "no ratings".
		page := controller.NewReviewPage(api, game.ID, stdinConfirm)
		_ = page.Refresh(cmd.Context())
		summary := page.Summary()
		cmd.Printf("    Rating: %s %s (%d reviews)\n", starBar(summary.Stars()), summary.Display(), summary.Count)
	}
}

func starBar(filled int) string {
	return strings.Repeat("★", filled) + strings.Repeat("☆", 5-filled)
}

// endregion

// region --- form view ---

func addCmd() *cobra.Command {
	var (
		title     string
		platforms string
		hours     float64
		completed bool
		imagePath string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a new game",
		RunE: func(cmd *cobra.Command, args []string) error {
			form := controller.NewForm(api, nil)
			form.Title = title
			form.PlatformText = platforms
			form.HoursPlayed = hours
			form.Completed = completed

			if imagePath != "" {
				if err := attachFile(form, imagePath); err != nil {
					return err
				}
			}

			saved, err := form.Submit(cmd.Context())
			if err != nil {
				return err
			}
			cmd.Printf("Game %q added (id %d).\n", saved.Title, saved.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "game title")
	cmd.Flags().StringVar(&platforms, "platforms", "", "comma-separated platform list")
	cmd.Flags().Float64Var(&hours, "hours", 0, "hours played")
	cmd.Flags().BoolVar(&completed, "completed", false, "mark as completed")
	cmd.Flags().StringVar(&imagePath, "image", "", "path to a cover image")
	return cmd
}

func editCmd() *cobra.Command {
	var (
		title     string
		platforms string
		hours     float64
		completed bool
		imagePath string
	)

	cmd := &cobra.Command{
		Use:   "edit <gameID>",
		Short: "Edit an existing game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			catalog := controller.NewCatalog(api, stdinConfirm)
			if err := catalog.Load(cmd.Context()); err != nil {
				return err
			}

			game, ok := catalog.RequestEdit(id)
			if !ok {
				return fmt.Errorf("game %d not found", id)
			}

			form := controller.NewForm(api, catalog.NotifyChanged)
			form.SetGame(&game)

			if cmd.Flags().Changed("title") {
				form.Title = title
			}
			if cmd.Flags().Changed("platforms") {
				form.PlatformText = platforms
			}
			if cmd.Flags().Changed("hours") {
				form.HoursPlayed = hours
			}
			if cmd.Flags().Changed("completed") {
				form.Completed = completed
			}
			if imagePath != "" {
				if err := attachFile(form, imagePath); err != nil {
					return err
				}
			}

			saved, err := form.Submit(cmd.Context())
			if err != nil {
				return err
			}
			cmd.Printf("Game %q updated.\n", saved.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "game title")
	cmd.Flags().StringVar(&platforms, "platforms", "", "comma-separated platform list")
	cmd.Flags().Float64Var(&hours, "hours", 0, "hours played")
	cmd.Flags().BoolVar(&completed, "completed", false, "mark as completed")
	cmd.Flags().StringVar(&imagePath, "image", "", "path to a new cover image")
	return cmd
}

func attachFile(form *controller.Form, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening image: %w", err)
	}
	defer file.Close()
	return form.AttachImage(filepath.Base(path), file)
}

func deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <gameID>",
		Short: "Delete a game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			catalog := controller.NewCatalog(api, stdinConfirm)
			if err := catalog.Load(cmd.Context()); err != nil {
				return err
			}

			game, ok := catalog.RequestEdit(id)
			if !ok {
				return fmt.Errorf("game %d not found", id)
			}

			deleted, err := catalog.Delete(cmd.Context(), game)
			if err != nil {
				return err
			}
			if !deleted {
				cmd.Println("Cancelled.")
				return nil
			}
			cmd.Printf("Game %q deleted.\n", game.Title)
			return nil
		},
	}
}

// endregion

// region --- review view ---

func reviewsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reviews <gameID>",
		Short: "Show the review page for a game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			page := controller.NewReviewPage(api, id, stdinConfirm)
			if err := page.Refresh(cmd.Context()); err != nil {
				return err
			}

			summary := page.Summary()
			cmd.Printf("Reviews for game %d — %s %s (%d reviews)\n",
				id, starBar(summary.Stars()), summary.Display(), summary.Count)
			for _, review := range page.Reviews() {
				cmd.Printf("\n#%d  %s\n", review.ID, starBar(review.Rating))
				cmd.Printf("    %s\n", review.Comment)
				cmd.Printf("    %s\n", review.CreatedAt.Format("2006-01-02"))
			}
			return nil
		},
	}

	cmd.AddCommand(reviewAddCmd(), reviewEditCmd(), reviewDeleteCmd())
	return cmd
}

func reviewAddCmd() *cobra.Command {
	var (
		stars   int
		comment string
	)

	cmd := &cobra.Command{
		Use:   "add <gameID>",
		Short: "Add a review to a game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			page := controller.NewReviewPage(api, id, stdinConfirm)
			page.Rating = stars
			page.Comment = comment

			saved, err := page.Submit(cmd.Context())
			if err != nil {
				return err
			}
			cmd.Printf("Review %d added to game %d.\n", saved.ID, saved.Game)
			return nil
		},
	}

	cmd.Flags().IntVar(&stars, "rating", 0, "star rating, 1-5")
	cmd.Flags().StringVar(&comment, "comment", "", "review comment")
	return cmd
}

func reviewEditCmd() *cobra.Command {
	var (
		stars   int
		comment string
	)

	cmd := &cobra.Command{
		Use:   "edit <gameID> <reviewID>",
		Short: "Edit one of a game's reviews",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			gameID, err := parseID(args[0])
			if err != nil {
				return err
			}
			reviewID, err := parseID(args[1])
			if err != nil {
				return err
			}

			page := controller.NewReviewPage(api, gameID, stdinConfirm)
			if err := page.Refresh(cmd.Context()); err != nil {
				return err
			}

			target, ok := findReview(page.Reviews(), reviewID)
			if !ok {
				return fmt.Errorf("review %d not found for game %d", reviewID, gameID)
			}

			page.Edit(target)
			if cmd.Flags().Changed("rating") {
				page.Rating = stars
			}
			if cmd.Flags().Changed("comment") {
				page.Comment = comment
			}

			saved, err := page.Submit(cmd.Context())
			if err != nil {
				return err
			}
			cmd.Printf("Review %d updated.\n", saved.ID)
			return nil
		},
	}

	cmd.Flags().IntVar(&stars, "rating", 0, "star rating, 1-5")
	cmd.Flags().StringVar(&comment, "comment", "", "review comment")
	return cmd
}

func reviewDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <gameID> <reviewID>",
		Short: "Delete one of a game's reviews",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			gameID, err := parseID(args[0])
			if err != nil {
				return err
			}
			reviewID, err := parseID(args[1])
			if err != nil {
				return err
			}

			page := controller.NewReviewPage(api, gameID, stdinConfirm)
			if err := page.Refresh(cmd.Context()); err != nil {
				return err
			}

			target, ok := findReview(page.Reviews(), reviewID)
			if !ok {
				return fmt.Errorf("review %d not found for game %d", reviewID, gameID)
			}

			deleted, err := page.Delete(cmd.Context(), target)
			if err != nil {
				return err
			}
			if !deleted {
				cmd.Println("Cancelled.")
				return nil
			}
			cmd.Printf("Review %d deleted.\n", reviewID)
			return nil
		},
	}
}

func findReview(reviews []client.Review, id uint) (client.Review, bool) {
	for _, review := range reviews {
		if review.ID == id {
			return review, true
		}
	}
	return client.Review{}, false
}

// endregion

func parseID(s string) (uint, error) {
	id, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return uint(id), nil
}
