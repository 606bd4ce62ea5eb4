// Package sessiontransport moves session tokens between the server and the
// client. Cookie stores the token in a signed cookie whose max age follows
// the session expiration.
//
//	mgr := session.NewManager[Prefs](store)
//	transport := sessiontransport.NewCookie(mgr, cookies, "__session")
//	r.Use(middleware.Session[*router.Context, Prefs](transport))
package sessiontransport
