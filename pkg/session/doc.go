// Package session resolves a server side session for every request. Alert
// scopes are derived from it: the session token for anonymous visitors and the
// user id once Authenticate has bound one.
//
// A Manager reads the token through a Transport (an encrypted cookie by
// default, or a request header when Config.HeaderName is set) and loads the
// session from a Store. MemoryStore is the bundled Store.
//
//	cookies, _ := cookie.New([]string{secret})
//	sessions, err := session.NewFromConfig(cfg,
//	    session.WithCookieManager(cookies),
//	    session.WithLogger(log),
//	)
//	if err != nil {
//	    return err
//	}
//	defer sessions.Close()
//
//	r.Use(sessions.EnsureSession)
//
// Activity timestamps are written by a background worker; updates are dropped
// when its queue is full.
package session
