package deck

// Package deck is the REST client for the Nextcloud Deck API (v1.0) and the
// OCS app-password endpoints used to sign in and out. Every call takes a
// context, reads credentials at request time and treats any status other than
// 200 as an *APIError.
