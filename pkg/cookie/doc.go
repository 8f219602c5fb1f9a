// Package cookie manages HTTP cookies with optional HMAC-SHA256 signing.
//
// Signed cookies make values tamper-evident without encrypting them: the
// value is transported as base64url(value) + "|" + base64url(tag), so it is
// safe for the cookie header alphabet and any modification fails
// verification. This is the right tool for opaque identifiers (session IDs,
// device IDs) where integrity matters but the value itself is not secret.
//
// Multiple secrets enable key rotation: the first secret signs new cookies
// while every listed secret verifies, so old cookies stay valid until
// rotated out.
//
//	mgr, err := cookie.New([]string{os.Getenv("SECRET_KEY")})
//	if err != nil { ... }
//
//	mgr.SetSigned(w, "session", id, cookie.WithMaxAge(3600))
//	id, err := mgr.GetSigned(r, "session")
package cookie
