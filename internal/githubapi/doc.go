// Package githubapi is Kōwhai's gateway to the GitHub REST API, built
// on go-github with an oauth2 static token source.
//
// The client exposes exactly the calls the secrets workflows need:
// identity lookup, repository and organization listing, and the Actions
// secrets operations (public key retrieval, create/update, list,
// delete). PutSecret accepts only sealed ciphertext plus a key ID —
// plaintext secret values have no route through this package.
//
// API failures wrap ErrAPIRequestFailed, except that a 401 response
// wraps ErrBadCredentials (the token is bad, so the caller should
// re-authenticate rather than retry) and deleting a secret that does
// not exist wraps ErrSecretNotFound. WithBaseURL redirects all calls
// to a test server.
package githubapi
