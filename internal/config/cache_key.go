package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// QuizSessionKey returns the cache key holding one quiz session document.
func (r *CacheKeyStruct) QuizSessionKey(sessionID string) string {
	return fmt.Sprintf("quiz:session:%s", sessionID)
}

// OAuthStateKey returns the cache key for a pending OAuth state nonce.
func (r *CacheKeyStruct) OAuthStateKey(state string) string {
	return fmt.Sprintf("oauth:state:%s", state)
}

// PublicSlugsKey returns the cache key for the public simulator slug list
// served to the sitemap feed.
func (r *CacheKeyStruct) PublicSlugsKey() string {
	return "catalog:public_slugs"
}

var CacheKey = NewCacheKeyStruct()
