// Package broadcast fans typed messages out to in-process subscribers.
//
// relay.Broadcast keeps one MemoryBroadcaster per alert scope and the SSE and
// websocket endpoints subscribe to it:
//
//	b := broadcast.NewMemoryBroadcaster[relay.Event](16)
//	sub := b.Subscribe(r.Context())
//	for msg := range sub.Receive(r.Context()) {
//		// write msg.Data to the client
//	}
//
// Delivery never blocks the sender. A subscriber that cannot keep up is
// dropped and its channel closed; clients reconnect to resume.
package broadcast
