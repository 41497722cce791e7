// Package relay forwards new alerts to channels outside the page render cycle.
//
// A Relay receives the alerts created for a scope (session token or user id)
// and delivers them somewhere else: in-process subscribers (Broadcast), a
// NATS subject (NATS) or an email inbox (Email). Multi fans out to several
// relays and Filter narrows what reaches one.
//
// Relaying is best effort. The Dispatcher stores alerts before relaying them,
// so a failed relay never loses an alert; it is shown on the next page load.
//
//	push := relay.NewBroadcast(16)
//	d := relay.NewDispatcher(store, relay.NewMulti([]relay.Relay{
//	    push,
//	    relay.NewFilter(relay.NewEmail(sender, renderer, lookupEmail), relay.MinPriority(10)),
//	}))
//
//	_ = d.Publish(ctx, userID, alerts.NewBuilder(alerts.TypeSuccess, "Import finished").Build())
package relay
