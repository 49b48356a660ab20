package main

import (
	"context"
	"encoding/json"
	"time"

	"foodRecipesWebsite/internal/api"
	"foodRecipesWebsite/internal/logger"
	"foodRecipesWebsite/internal/models"
	"foodRecipesWebsite/internal/utils"
)

const countriesCacheKey = "countries"

// CountryCache serves the country list from a cache, falling back to the
// API on a miss. Cache failures are logged and bypassed.
type CountryCache struct {
	cache utils.Cache
	ttl   time.Duration
}

func NewCountryCache(cache utils.Cache, ttl time.Duration) *CountryCache {
	return &CountryCache{cache: cache, ttl: ttl}
}

func (c *CountryCache) Countries(ctx context.Context, client *api.Client) ([]models.Country, error) {
	if raw, ok, err := c.cache.Get(ctx, countriesCacheKey); err != nil {
		logger.Log.WithError(err).Warn("Country cache read failed")
	} else if ok {
		var countries []models.Country
		if err := json.Unmarshal([]byte(raw), &countries); err == nil {
			return countries, nil
		}
		logger.Log.Warn("Discarding unreadable cached country list")
	}

	countries, err := client.Countries(ctx)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(countries); err == nil {
		if err := c.cache.Set(ctx, countriesCacheKey, string(raw), c.ttl); err != nil {
			logger.Log.WithError(err).Warn("Country cache write failed")
		}
	}
	return countries, nil
}
