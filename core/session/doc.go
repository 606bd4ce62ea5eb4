// Package session manages anonymous visitor sessions with typed data.
//
// A Manager creates sessions, loads them by token from a Store and decides
// on each request whether they need saving. Fresh sessions stay in memory
// until the application stores data in them, so visitors who never set a
// preference cost nothing:
//
//	mgr := session.NewManager[Prefs](session.NewMemoryStore[Prefs](),
//		session.WithTTL(30*24*time.Hour),
//	)
//
//	sess, _ := mgr.New()
//	sess.SetData(Prefs{Timezone: "Europe/Madrid"})
//	written, err := mgr.Store(ctx, sess)
//
// Stored sessions have their expiration pushed forward at most once per
// TouchInterval. Transports such as sessiontransport.Cookie carry the token
// between requests.
package session
