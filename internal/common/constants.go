package common

// SessionTokenHeaderName is the HTTP header that carries the session token,
// both on authenticated requests and on signup/login responses.
const SessionTokenHeaderName = "x-auth"

// SessionAccessAuth is the access class recorded for interactive sessions.
// Tokens minted for other purposes must not resolve as auth sessions.
const SessionAccessAuth = "auth"
