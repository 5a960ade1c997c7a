package db

import (
	"log"
	"strconv"

	"github.com/go-redis/redis"
)

const mainLevel = "main"

// RdbSetUser stores the dialogue level of a user. Levels survive restarts so
// that a half-finished purchase keeps its state.
func RdbSetUser(rdb *redis.Client, userID int64, level string) {
	userKey := userLevelKey(userID)
	_, err := rdb.Set(userKey, level, 0).Result()
	if err != nil {
		log.Println(err)
	}
}

func GetLevel(rdb *redis.Client, userID int64) string {
	userKey := userLevelKey(userID)
	level, err := rdb.Get(userKey).Result()
	if err == redis.Nil || level == "" {
		return mainLevel
	}

	return level
}

func ResetUser(rdb *redis.Client, userID int64) {
	RdbSetUser(rdb, userID, mainLevel)
}

func userLevelKey(userID int64) string {
	return "user:level:" + strconv.FormatInt(userID, 10)
}
