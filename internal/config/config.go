// Package config reads tool configuration from the environment. Mains load
// a .env file first via godotenv, so a local file works the same as real
// environment variables.
package config

import (
	"fmt"
	"os"

	"github.com/adityakr/cctracker/internal/catalog"
)

type Config struct {
	DBPath   string
	LogLevel string

	// CardMapping resolves the last-4 digits in an SMS to a card.
	CardMapping map[string]catalog.Card

	DiscordBotToken  string
	DiscordChannelID string
}

func Load() (*Config, error) {
	cfg := &Config{
		DBPath:   getEnv("CCTRACKER_DB", "cctracker.db"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		CardMapping: map[string]catalog.Card{
			getEnv("CARD_AIRTEL_LAST4", "8316"):   catalog.Airtel,
			getEnv("CARD_FLIPKART_LAST4", "5214"): catalog.Flipkart,
		},
		DiscordBotToken:  os.Getenv("DISCORD_BOT_TOKEN"),
		DiscordChannelID: os.Getenv("DISCORD_CHANNEL_ID"),
	}
	return cfg, nil
}

// RequireDiscord validates the settings only the bot binary needs.
func (c *Config) RequireDiscord() error {
	if c.DiscordBotToken == "" {
		return fmt.Errorf("DISCORD_BOT_TOKEN is not set")
	}
	if c.DiscordChannelID == "" {
		return fmt.Errorf("DISCORD_CHANNEL_ID is not set")
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}
