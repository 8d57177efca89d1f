package redis

import (
	"fmt"

	"github.com/mossvale/mossvale/internal/model"
)

// Key prefix for all game-related data
const keyPrefix = "mossvale"

// accountKey returns the Redis key for an Account
func accountKey(id model.AccountID) string {
	return fmt.Sprintf("%s:account:%s", keyPrefix, id)
}

// usernameIndexKey returns the Redis key for the username -> account_id index
func usernameIndexKey(username string) string {
	return fmt.Sprintf("%s:idx:username:%s", keyPrefix, username)
}

// playerKey returns the Redis key for a Player
func playerKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:player:%s", keyPrefix, id)
}

// playersForAccountIndexKey returns the Redis key for the SET of player keys
// belonging to an account
func playersForAccountIndexKey(accountID model.AccountID) string {
	return fmt.Sprintf("%s:idx:players_for_account:%s", keyPrefix, accountID)
}

// inventoryKey returns the Redis key for a player's inventory HASH
// (field: item definition id, value: quantity)
func inventoryKey(playerID model.PlayerID) string {
	return fmt.Sprintf("%s:inventory:%s", keyPrefix, playerID)
}
