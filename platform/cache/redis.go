package cache

import (
	"time"

	"github.com/gomodule/redigo/redis"
)

// Pool hands out connections. *redis.Pool satisfies it.
type Pool interface {
	Get() redis.Conn
}

func CreateRedisPool(url string) *redis.Pool {
	return &redis.Pool{
		MaxIdle:     10,
		IdleTimeout: 60 * time.Second,
		Dial:        func() (redis.Conn, error) { return redis.Dial("tcp", url) },
		TestOnBorrow: func(c redis.Conn, t time.Time) error {
			if time.Since(t) < time.Minute {
				return nil
			}
			_, err := c.Do("PING")
			return err
		},
	}
}
