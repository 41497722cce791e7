// Package alerts provides flash alerts for web applications: one-shot
// success, error, warning and info messages queued during a request and shown
// on the next rendered page.
//
// # Architecture
//
// The package is made of three parts:
//
//   - Alert: the value object (type, message, presentation and timing fields)
//   - Builder: a chainable API that composes an alert and stores it on Commit
//   - Manager: the ordered collection of one request or session with
//     queries, expiry cleanup and rendering
//
// Persistence across requests goes through the Store interface. MemoryStore
// lives here; Redis, Postgres, MongoDB, NATS, cache and session adapters live
// in pkg/alertstore. Rendering goes through the Renderer interface,
// implemented with templ in pkg/alertrender.
//
// # Basic Usage
//
//	m := alerts.NewManager()
//
//	m.Success("Profile saved", "")
//	m.New(alerts.TypeWarning, "Your trial ends tomorrow").
//	    WithTitle("Heads up").
//	    AsToast().
//	    Flash(5 * time.Second).
//	    Commit()
//
//	for _, a := range m.Flush() {
//	    fmt.Println(a.Type, a.Message)
//	}
//
// # Expiry
//
// Expiry is evaluated lazily. An alert whose ExpiresAt has passed stays in the
// collection until CleanupExpired runs; Expired lists such alerts without
// removing them. Auto-dismiss is a client-side timer and never removes alerts
// on the server.
//
// # Permissive input
//
// The manager does not validate input. Unknown type strings, empty messages and
// negative delays are stored verbatim so the same manager can serve trusted and
// untrusted call sites; validation belongs to the caller.
//
// # Options
//
// Options enumerates every recognised presentation setting. OptionsFromMap
// converts a loosely typed bag (for example a JSON request body) and returns
// the keys it did not recognise; those keys are ignored.
package alerts
