package myflix

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// catalogCacheKey is the single key under which the movie catalog is cached.
const catalogCacheKey = "catalog"

// Operations is the caller-facing facade: one method per API endpoint.
// Every per-user endpoint resolves {username} from the injected session
// store, binding each call to the logged-in user. Login owns the session
// write and DeleteUser owns the clear, so the token-iff-username
// invariant is enforced in one place.
type Operations struct {
	client  *Client
	session SessionSource
	logger  zerolog.Logger
	catalog *gocache.Cache
}

// NewOperations creates a new Operations instance bound to the given
// client and session store.
func NewOperations(client *Client, sess SessionSource, logger zerolog.Logger) *Operations {
	return &Operations{
		client:  client,
		session: sess,
		logger:  logger,
	}
}

// EnableCatalogCache caches ListMovies results for the given TTL.
// Favorites and profile reads are never cached.
func (o *Operations) EnableCatalogCache(ttl time.Duration) {
	o.catalog = gocache.New(ttl, 2*ttl)
}

// decode unmarshals a normalized success body into v. A 2xx payload
// that does not parse (e.g. an HTML gateway page) is folded into the
// same normalized error shape as any other failure; the parse detail
// stays in the logs and on the error struct.
func (o *Operations) decode(raw json.RawMessage, v any) error {
	if err := json.Unmarshal(raw, v); err != nil {
		o.logger.Error().
			Err(err).
			Str("body", string(raw)).
			Msg("Failed to parse response body")
		return &ClientError{Kind: KindTransport, Err: fmt.Errorf("failed to parse response: %w", err)}
	}
	return nil
}

// Register creates a new user account. No authentication required.
func (o *Operations) Register(ctx context.Context, details User) (User, error) {
	raw, err := o.client.do(ctx, http.MethodPost, "/users", details, false)
	if err != nil {
		return User{}, err
	}

	var created User
	if err := o.decode(raw, &created); err != nil {
		return User{}, err
	}
	return created, nil
}

// Login authenticates the given credentials and, on success, persists
// the returned identity and token to the session store before handing
// the payload back.
func (o *Operations) Login(ctx context.Context, creds Credentials) (LoginResponse, error) {
	raw, err := o.client.do(ctx, http.MethodPost, "/login", creds, false)
	if err != nil {
		return LoginResponse{}, err
	}

	var resp LoginResponse
	if err := o.decode(raw, &resp); err != nil {
		return LoginResponse{}, err
	}

	if err := o.session.Set(resp.User.Username, resp.Token); err != nil {
		return LoginResponse{}, fmt.Errorf("failed to persist session: %w", err)
	}

	o.logger.Info().Str("username", resp.User.Username).Msg("Logged in")
	return resp, nil
}

// Logout clears the persisted session. No server call is involved; the
// bearer token is simply forgotten.
func (o *Operations) Logout() error {
	username := o.session.Get().Username
	if err := o.session.Clear(); err != nil {
		return err
	}
	if username != "" {
		o.logger.Info().Str("username", username).Msg("Logged out")
	}
	return nil
}

// ListMovies returns the full movie catalog.
func (o *Operations) ListMovies(ctx context.Context) ([]Movie, error) {
	if o.catalog != nil {
		if cached, ok := o.catalog.Get(catalogCacheKey); ok {
			return cached.([]Movie), nil
		}
	}

	raw, err := o.client.do(ctx, http.MethodGet, "/movies", nil, true)
	if err != nil {
		return nil, err
	}

	var movies []Movie
	if err := o.decode(raw, &movies); err != nil {
		return nil, err
	}

	if o.catalog != nil {
		o.catalog.Set(catalogCacheKey, movies, gocache.DefaultExpiration)
	}

	o.logger.Debug().Int("count", len(movies)).Msg("Retrieved movie catalog")
	return movies, nil
}

// GetMovie returns a single movie by title.
func (o *Operations) GetMovie(ctx context.Context, title string) (Movie, error) {
	raw, err := o.client.do(ctx, http.MethodGet, "/movies/"+url.PathEscape(title), nil, true)
	if err != nil {
		return Movie{}, err
	}

	var movie Movie
	if err := o.decode(raw, &movie); err != nil {
		return Movie{}, err
	}
	return movie, nil
}

// GetDirector returns the movies directed by the named director.
func (o *Operations) GetDirector(ctx context.Context, name string) ([]Movie, error) {
	raw, err := o.client.do(ctx, http.MethodGet, "/movies/directors/"+url.PathEscape(name), nil, true)
	if err != nil {
		return nil, err
	}

	var movies []Movie
	if err := o.decode(raw, &movies); err != nil {
		return nil, err
	}
	return movies, nil
}

// GetGenre returns the movies in the named genre.
func (o *Operations) GetGenre(ctx context.Context, name string) ([]Movie, error) {
	raw, err := o.client.do(ctx, http.MethodGet, "/movies/genre/"+url.PathEscape(name), nil, true)
	if err != nil {
		return nil, err
	}

	var movies []Movie
	if err := o.decode(raw, &movies); err != nil {
		return nil, err
	}
	return movies, nil
}

// GetUser returns the logged-in user's profile.
func (o *Operations) GetUser(ctx context.Context) (User, error) {
	raw, err := o.client.do(ctx, http.MethodGet, o.userPath(), nil, true)
	if err != nil {
		return User{}, err
	}

	var user User
	if err := o.decode(raw, &user); err != nil {
		return User{}, err
	}
	return user, nil
}

// GetFavoriteMovies returns the logged-in user's favorite movie IDs. It
// is a pure projection over GetUser, never a separate network shape.
func (o *Operations) GetFavoriteMovies(ctx context.Context) ([]string, error) {
	user, err := o.GetUser(ctx)
	if err != nil {
		return nil, err
	}
	return user.FavoriteMovies, nil
}

// FavoriteDetails resolves the logged-in user's favorite IDs to full
// catalog records. Profile and catalog are fetched concurrently.
func (o *Operations) FavoriteDetails(ctx context.Context) ([]Movie, error) {
	var (
		user   User
		movies []Movie
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		user, err = o.GetUser(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		movies, err = o.ListMovies(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	byID := make(map[string]Movie, len(movies))
	for _, m := range movies {
		byID[m.ID] = m
	}

	var favorites []Movie
	for _, id := range user.FavoriteMovies {
		if m, ok := byID[id]; ok {
			favorites = append(favorites, m)
		} else {
			o.logger.Warn().Str("movie_id", id).Msg("Favorite not present in catalog")
		}
	}
	return favorites, nil
}

// AddFavoriteMovie adds the movie to the logged-in user's favorites and
// returns the updated profile.
func (o *Operations) AddFavoriteMovie(ctx context.Context, movieID string) (User, error) {
	body := favoriteBody{FavoriteMovie: movieID}
	raw, err := o.client.do(ctx, http.MethodPost, o.userPath()+"/movies/"+url.PathEscape(movieID), body, true)
	if err != nil {
		return User{}, err
	}

	var user User
	if err := o.decode(raw, &user); err != nil {
		return User{}, err
	}
	return user, nil
}

// RemoveFavoriteMovie removes the movie from the logged-in user's
// favorites and returns the updated profile.
func (o *Operations) RemoveFavoriteMovie(ctx context.Context, movieID string) (User, error) {
	raw, err := o.client.do(ctx, http.MethodDelete, o.userPath()+"/movies/"+url.PathEscape(movieID), nil, true)
	if err != nil {
		return User{}, err
	}

	var user User
	if err := o.decode(raw, &user); err != nil {
		return User{}, err
	}
	return user, nil
}

// EditUser updates the logged-in user's profile fields and returns the
// updated record.
func (o *Operations) EditUser(ctx context.Context, update UserUpdate) (User, error) {
	raw, err := o.client.do(ctx, http.MethodPut, o.userPath(), update, true)
	if err != nil {
		return User{}, err
	}

	var user User
	if err := o.decode(raw, &user); err != nil {
		return User{}, err
	}
	return user, nil
}

// DeleteUser deletes the logged-in user's account and clears the local
// session. Returns the server's confirmation message.
func (o *Operations) DeleteUser(ctx context.Context) (string, error) {
	raw, err := o.client.do(ctx, http.MethodDelete, o.userPath(), nil, true)
	if err != nil {
		return "", err
	}

	if err := o.session.Clear(); err != nil {
		o.logger.Warn().Err(err).Msg("Account deleted but clearing local session failed")
	}

	return string(raw), nil
}

// userPath is the endpoint prefix for the logged-in user. The username
// always comes from the session store, never from a caller.
func (o *Operations) userPath() string {
	return "/users/" + url.PathEscape(o.session.Get().Username)
}
