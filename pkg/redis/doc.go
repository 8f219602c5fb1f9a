// Package redis provides connection helpers around the go-redis client.
//
// Two connection styles are supported:
//
//   - Connect dials eagerly with retries and a ping, for services that should
//     refuse to start without their store.
//   - Lazy defers the dial until first use and then shares one client for
//     the process lifetime, for layers that degrade gracefully when the
//     store is down.
//
// Configuration comes from the Config struct, whose fields carry
// github.com/caarlos0/env tags:
//
//	var cfg redis.Config
//	config.MustLoad(&cfg)
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//	    // store is required: terminate
//	}
//	defer client.Close()
//
// Healthcheck wires the client into liveness and readiness probes.
package redis
