package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	profileKeyPrefix = "profile:%d"
	githubKeyPrefix  = "github:%s"

	// ProfileListKey caches the public profile listing.
	ProfileListKey = "profiles:all"
)

const (
	ProfileTTL     = 5 * time.Minute
	ProfileListTTL = 1 * time.Minute
	GithubTTL      = 10 * time.Minute
)

// ProfileKey returns the cache key for a profile, keyed by owning user id.
func ProfileKey(userID uint) string {
	return fmt.Sprintf(profileKeyPrefix, userID)
}

// GithubKey returns the cache key for a GitHub repository listing.
func GithubKey(username string) string {
	return fmt.Sprintf(githubKeyPrefix, username)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

// InvalidateProfile drops a user's cached profile and the profile list.
func InvalidateProfile(ctx context.Context, userID uint) {
	Invalidate(ctx, ProfileKey(userID))
	Invalidate(ctx, ProfileListKey)
}
