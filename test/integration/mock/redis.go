//go:build integration

package mock

import (
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

// Redis is an in-process Redis server with a connected client.
type Redis struct {
	Server *miniredis.Miniredis
	Client *redis.Client
}

// NewRedis starts a miniredis server.
func NewRedis() (*Redis, error) {
	server, err := miniredis.Run()
	if err != nil {
		return nil, err
	}
	return &Redis{
		Server: server,
		Client: redis.NewClient(&redis.Options{Addr: server.Addr()}),
	}, nil
}

// FastForward expires keys as if d had passed.
func (r *Redis) FastForward(d time.Duration) {
	r.Server.FastForward(d)
}

// Close stops the client and the server.
func (r *Redis) Close() {
	_ = r.Client.Close()
	r.Server.Close()
}
