package redis

import "fmt"

// Key prefix for all profile data
const keyPrefix = "ghostduel"

// profileKey returns the Redis key for a Profile, keyed by its token
func profileKey(token string) string {
	return fmt.Sprintf("%s:profile:%s", keyPrefix, token)
}
