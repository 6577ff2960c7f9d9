package cache

import (
	"github.com/gomodule/redigo/redis"
)

func GetBytes(conn redis.Conn, key string) ([]byte, error) {
	return redis.Bytes(conn.Do("GET", key))
}

func Set(conn redis.Conn, key string, value interface{}) error {
	reply, err := redis.String(conn.Do("SET", key, value))
	if err != nil {
		return err
	}
	if reply != "OK" {
		return redis.Error("unexpected SET reply: " + reply)
	}
	return nil
}

func Del(conn redis.Conn, keys ...string) error {
	_, err := conn.Do("DEL", redis.Args{}.AddFlat(keys)...)
	return err
}

func Expire(conn redis.Conn, key string, seconds int) error {
	_, err := conn.Do("EXPIRE", key, seconds)
	return err
}
