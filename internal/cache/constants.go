package cache

import (
	"fmt"
	"time"

	redis "github.com/redis/go-redis/v9"
)

// key names definition
// key names in lua script should follow these formats
const (
	FlashKey = "session:%s:flash" // list of pending flash messages, '%s' is session id
)

// a flash message that is never read is dropped after this long
const FlashTTL = 10 * time.Minute

func MakeFlashKey(sessionID string) string {
	return fmt.Sprintf(FlashKey, sessionID)
}

// lua scripts
var pushFlashScript = redis.NewScript(`
	-- KEYS[1] = session:{session_id}:flash
	-- ARGV[1] = message
	-- ARGV[2] = ttl in seconds

	local n = redis.call("RPUSH", KEYS[1], ARGV[1])
	redis.call("EXPIRE", KEYS[1], tonumber(ARGV[2]))
	return n
`)

var popFlashesScript = redis.NewScript(`
	-- KEYS[1] = session:{session_id}:flash

	-- read and clear in one step so a message is shown exactly once
	local messages = redis.call("LRANGE", KEYS[1], 0, -1)
	redis.call("DEL", KEYS[1])
	return messages
`)
