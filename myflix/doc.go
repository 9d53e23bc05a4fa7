// Package myflix provides a client for the myFlix movie-catalog REST API.
//
// The package is the API access and session layer of flixctl: it builds
// every outbound request (base URL, JSON bodies, bearer-token auth),
// normalizes heterogeneous response and error shapes into one contract,
// and routes the per-user endpoints through the injected session store.
//
// # Usage
//
//	sess, err := session.Open(path)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	client, err := myflix.NewClient("https://myflix.example.com", sess, logger)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	ops := myflix.NewOperations(client, sess, logger)
//
//	// Log in; the session store is populated on success.
//	resp, err := ops.Login(ctx, myflix.Credentials{Username: "alice", Password: "pw"})
//
//	// Authenticated calls pick up the stored token automatically.
//	movies, err := ops.ListMovies(ctx)
//
// # Error Handling
//
// Every failed operation returns a *ClientError. Its Error method is the
// fixed user-safe message; Kind, StatusCode and Body carry the detail
// for callers that branch on it:
//
//	var clientErr *myflix.ClientError
//	if errors.As(err, &clientErr) && clientErr.IsUnauthorized() {
//	    // prompt for re-login
//	}
package myflix
