// Package auth authenticates the admin of the web service and the web service
// itself towards the store backend.
//
// LocalProvider checks a username, an Argon2id password hash and, when the
// account has a TOTP secret, a one-time code against the local database.
//
// RequireAdmin is the fiber middleware protecting the admin API. It reads the
// session cookie written at login and stores the user in fiber.Locals.
//
// SignToken and RequireToken carry a short lived HS256 JWT between the web
// service and the store backend:
//
//	token, err := auth.SignToken(secret, auth.IssuerWeb, time.Now())
//	req.Header.Set("Authorization", "Bearer "+token)
//
//	r.With(auth.RequireToken(secret)).Post("/api/portfolio", h.save)
package auth
