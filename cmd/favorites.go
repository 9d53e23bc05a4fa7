package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var favoriteDetails bool

// favoritesCmd groups the favorites commands
var favoritesCmd = &cobra.Command{
	Use:     "favorites",
	Aliases: []string{"fav"},
	Short:   "Manage the favorites list",
}

// favoritesListCmd represents the favorites list command
var favoritesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List favorite movies",
	RunE:  runFavoritesList,
}

// favoritesAddCmd represents the favorites add command
var favoritesAddCmd = &cobra.Command{
	Use:   "add <movie-id>",
	Short: "Add a movie to the favorites list",
	Args:  cobra.ExactArgs(1),
	RunE:  runFavoritesAdd,
}

// favoritesRemoveCmd represents the favorites remove command
var favoritesRemoveCmd = &cobra.Command{
	Use:   "remove <movie-id>",
	Short: "Remove a movie from the favorites list",
	Args:  cobra.ExactArgs(1),
	RunE:  runFavoritesRemove,
}

func init() {
	favoritesListCmd.Flags().BoolVar(&favoriteDetails, "details", false, "resolve IDs to full catalog entries")

	favoritesCmd.AddCommand(favoritesListCmd)
	favoritesCmd.AddCommand(favoritesAddCmd)
	favoritesCmd.AddCommand(favoritesRemoveCmd)
	rootCmd.AddCommand(favoritesCmd)
}

func runFavoritesList(cmd *cobra.Command, args []string) error {
	if err := requireSession(); err != nil {
		return err
	}

	ctx := context.Background()

	if favoriteDetails {
		movies, err := operations.FavoriteDetails(ctx)
		if err != nil {
			return err
		}
		printMovies(movies)
		return nil
	}

	favorites, err := operations.GetFavoriteMovies(ctx)
	if err != nil {
		return err
	}

	if len(favorites) == 0 {
		fmt.Println("No favorite movies yet.")
		return nil
	}

	for _, id := range favorites {
		fmt.Println(id)
	}
	return nil
}

func runFavoritesAdd(cmd *cobra.Command, args []string) error {
	if err := requireSession(); err != nil {
		return err
	}

	user, err := operations.AddFavoriteMovie(context.Background(), args[0])
	if err != nil {
		return err
	}

	fmt.Printf("Added. %s now has %d favorites.\n", user.Username, len(user.FavoriteMovies))
	return nil
}

func runFavoritesRemove(cmd *cobra.Command, args []string) error {
	if err := requireSession(); err != nil {
		return err
	}

	user, err := operations.RemoveFavoriteMovie(context.Background(), args[0])
	if err != nil {
		return err
	}

	fmt.Printf("Removed. %s now has %d favorites.\n", user.Username, len(user.FavoriteMovies))
	return nil
}
