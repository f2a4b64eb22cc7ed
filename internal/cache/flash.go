package cache

import (
	"context"
	"fmt"
)

/*
* one-shot flash messages, keyed by session id
 */

func (r *RedisCache) PushFlash(ctx context.Context, sessionID string, message string) error {
	key := MakeFlashKey(sessionID)
	if err := pushFlashScript.Run(ctx, r.Client, []string{key}, message, int(FlashTTL.Seconds())).Err(); err != nil {
		return fmt.Errorf("failed to push flash message: %w", err)
	}
	return nil
}

// PopFlashes returns every pending message for the session in push order and
// clears them.
func (r *RedisCache) PopFlashes(ctx context.Context, sessionID string) ([]string, error) {
	key := MakeFlashKey(sessionID)
	messages, err := popFlashesScript.Run(ctx, r.Client, []string{key}).StringSlice()
	if err != nil {
		return nil, fmt.Errorf("failed to pop flash messages: %w", err)
	}
	return messages, nil
}
