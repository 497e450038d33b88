// Package event provides a small synchronous publish/subscribe bus.
//
// Topics are dot-separated names such as "history.undone". Subscriptions use
// topic patterns where "*" matches exactly one segment and "**" matches zero
// or more segments:
//
//	bus := event.NewBus()
//	sub, _ := bus.Subscribe("history.*", func(ev event.Event) {
//	    log.Println(ev.Topic)
//	})
//	defer bus.Unsubscribe(sub)
//
// Handlers run on the publishing goroutine in subscription order. A handler
// panic is recovered and reported to the panic handler, if one is set.
package event
