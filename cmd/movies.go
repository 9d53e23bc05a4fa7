package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/flixops/flixctl/filter"
	"github.com/flixops/flixctl/myflix"
)

var (
	filterExpr  string
	showDetails bool
)

// moviesCmd groups the catalog commands
var moviesCmd = &cobra.Command{
	Use:   "movies",
	Short: "Browse the movie catalog",
}

// moviesListCmd represents the movies list command
var moviesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List movies, optionally filtered",
	Long: `List the movie catalog. With --filter, only movies matching the
expression are shown, e.g.:

  flixctl movies list --filter 'Genre.Name == "Thriller"'
  flixctl movies list --filter 'contains(Director.Name, "kubrick")'`,
	RunE: runMoviesList,
}

// moviesGetCmd represents the movies get command
var moviesGetCmd = &cobra.Command{
	Use:   "get <title>",
	Short: "Show a single movie by title",
	Args:  cobra.ExactArgs(1),
	RunE:  runMoviesGet,
}

// moviesDirectorCmd represents the movies director command
var moviesDirectorCmd = &cobra.Command{
	Use:   "director <name>",
	Short: "List movies by director",
	Args:  cobra.ExactArgs(1),
	RunE:  runMoviesDirector,
}

// moviesGenreCmd represents the movies genre command
var moviesGenreCmd = &cobra.Command{
	Use:   "genre <name>",
	Short: "List movies in a genre",
	Args:  cobra.ExactArgs(1),
	RunE:  runMoviesGenre,
}

func init() {
	moviesListCmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter expression")
	moviesListCmd.Flags().BoolVar(&showDetails, "details", false, "show descriptions")

	moviesCmd.AddCommand(moviesListCmd)
	moviesCmd.AddCommand(moviesGetCmd)
	moviesCmd.AddCommand(moviesDirectorCmd)
	moviesCmd.AddCommand(moviesGenreCmd)
	rootCmd.AddCommand(moviesCmd)
}

func runMoviesList(cmd *cobra.Command, args []string) error {
	if err := requireSession(); err != nil {
		return err
	}

	movies, err := operations.ListMovies(context.Background())
	if err != nil {
		return err
	}

	if filterExpr != "" {
		f, err := filter.Compile(filterExpr)
		if err != nil {
			return fmt.Errorf("invalid filter expression: %w", err)
		}
		movies, err = f.Apply(movies)
		if err != nil {
			return err
		}
	}

	printMovies(movies)
	return nil
}

func runMoviesGet(cmd *cobra.Command, args []string) error {
	if err := requireSession(); err != nil {
		return err
	}

	movie, err := operations.GetMovie(context.Background(), args[0])
	if err != nil {
		return err
	}

	fmt.Printf("%s\n", movie.Title)
	fmt.Println(strings.Repeat("-", 80))
	fmt.Printf("  Director: %s\n", movie.Director.Name)
	fmt.Printf("  Genre:    %s\n", movie.Genre.Name)
	if movie.Description != "" {
		fmt.Printf("  %s\n", movie.Description)
	}
	return nil
}

func runMoviesDirector(cmd *cobra.Command, args []string) error {
	if err := requireSession(); err != nil {
		return err
	}

	movies, err := operations.GetDirector(context.Background(), args[0])
	if err != nil {
		return err
	}

	printMovies(movies)
	return nil
}

func runMoviesGenre(cmd *cobra.Command, args []string) error {
	if err := requireSession(); err != nil {
		return err
	}

	movies, err := operations.GetGenre(context.Background(), args[0])
	if err != nil {
		return err
	}

	printMovies(movies)
	return nil
}

// printMovies renders a movie list to stdout.
func printMovies(movies []myflix.Movie) {
	if len(movies) == 0 {
		fmt.Println("No movies found.")
		return
	}

	fmt.Printf("\nFound %d movies:\n", len(movies))
	fmt.Println(strings.Repeat("-", 80))

	for _, movie := range movies {
		fmt.Printf("• %s", movie.Title)
		if movie.Featured {
			fmt.Printf(" [FEATURED]")
		}
		fmt.Println()
		fmt.Printf("  Director: %s | Genre: %s\n", movie.Director.Name, movie.Genre.Name)
		if showDetails && movie.Description != "" {
			fmt.Printf("  %s\n", movie.Description)
		}
	}
}
