package myflix

// Movie is a catalog entry as returned by the myFlix API. The client
// treats it as a pass-through value; Title is the lookup key.
type Movie struct {
	ID          string   `json:"_id"`
	Title       string   `json:"Title"`
	Description string   `json:"Description"`
	Genre       Genre    `json:"Genre"`
	Director    Director `json:"Director"`
	ImagePath   string   `json:"ImagePath"`
	Featured    bool     `json:"Featured"`
}

// Genre describes a movie genre.
type Genre struct {
	Name        string `json:"Name"`
	Description string `json:"Description"`
}

// Director describes a movie director.
type Director struct {
	Name  string `json:"Name"`
	Bio   string `json:"Bio"`
	Birth string `json:"Birth,omitempty"`
	Death string `json:"Death,omitempty"`
}

// User is a profile record as returned by the server. Password is
// write-only: it is sent on registration and edits but the server never
// echoes it back.
type User struct {
	ID             string   `json:"_id,omitempty"`
	Username       string   `json:"Username"`
	Password       string   `json:"Password,omitempty"`
	Email          string   `json:"Email,omitempty"`
	Birthday       string   `json:"Birthday,omitempty"`
	FavoriteMovies []string `json:"FavoriteMovies,omitempty"`
}

// Credentials is the login request body.
type Credentials struct {
	Username string `json:"Username"`
	Password string `json:"Password"`
}

// LoginResponse is the success payload of the login endpoint.
type LoginResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// UserUpdate carries the editable profile fields. Zero-valued fields are
// omitted from the request body so the server only sees what changed.
type UserUpdate struct {
	Username string `json:"Username,omitempty"`
	Password string `json:"Password,omitempty"`
	Email    string `json:"Email,omitempty"`
	Birthday string `json:"Birthday,omitempty"`
}

// favoriteBody is the request body for adding a favorite movie.
type favoriteBody struct {
	FavoriteMovie string `json:"FavoriteMovie"`
}
