// Package cookie manages HTTP cookies with optional signing and encryption.
//
//	m, err := cookie.New([]string{os.Getenv("COOKIE_SECRET")})
//	if err != nil {
//		return err
//	}
//
//	m.Set(w, "lang", "fr", cookie.WithMaxAge(365*24*60*60))
//	m.SetSigned(w, "tz", "Europe/Paris")
//	m.SetEncrypted(w, "session", token)
//
// Signing and encryption keys are derived from each secret with HKDF-SHA256,
// so one secret never serves both purposes. The cookie name is bound into the
// signature and the GCM additional data, which prevents moving a value from one
// cookie to another. Pass several secrets to rotate keys: the first one writes,
// all of them are tried on read.
package cookie
