package redis

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/redis/go-redis/v9"
)

type Store struct {
	client *redis.Client
	ctx    context.Context
}

var rdb *Store

func InitRedis(ctx context.Context) *Store {
	redisHost := os.Getenv("REDIS_HOST")
	redisPort := os.Getenv("REDIS_PORT")
	redisPassword := os.Getenv("REDIS_PASSWORD")

	redisDB := 0
	if raw := os.Getenv("REDIS_DB"); raw != "" {
		var err error
		redisDB, err = strconv.Atoi(raw)
		if err != nil {
			log.Fatalf("REDIS_DB is not a number: %v", err)
		}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", redisHost, redisPort),
		Password: redisPassword,
		DB:       redisDB,
	})

	if _, err := client.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	rdb = &Store{client, ctx}

	log.Println("Connected to Redis successfully")
	return rdb
}
