package redis

import (
	"fmt"

	"github.com/chessladder/chessladder/internal/model"
)

// Key prefix for all ladder data
const keyPrefix = "chessladder"

// playerKey returns the Redis key for a Player record
func playerKey(name model.PlayerName) string {
	return fmt.Sprintf("%s:player:%s", keyPrefix, name)
}

// playerOrderKey returns the Redis key for the list of player names
// in registration order
func playerOrderKey() string {
	return fmt.Sprintf("%s:players:order", keyPrefix)
}

// gameLogKey returns the Redis key for the append-only game log list
func gameLogKey() string {
	return fmt.Sprintf("%s:games", keyPrefix)
}
