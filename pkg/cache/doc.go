// Package cache provides a generic LRU map used to bound per-scope state such
// as cached alert lists and live push broadcasters.
//
//	lru := cache.NewLRUCache[string, []alerts.Alert](1000)
//	lru.SetEvictCallback(func(scope string, _ []alerts.Alert) {
//	    log.Printf("scope %s evicted", scope)
//	})
//
//	lru.Update("user_42", func(list []alerts.Alert, _ bool) ([]alerts.Alert, bool) {
//	    return append(list, a), true
//	})
//
// Update is the read-modify-write primitive: fn runs under the cache lock so
// concurrent appends to the same key never lose writes.
package cache
