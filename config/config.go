package config

import (
	"fmt"
	"os"
)

// placeholders are sample values sometimes left in data.env; seeing one
// means the real token was never filled in.
var placeholders = map[string]struct{}{
	"PASTE-TOKEN-HERE": {},
	"your_token_here":  {},
}

type Config struct {
	VkGroupToken string
	TgChatToken  string
}

func New() (*Config, error) {
	vkGroupToken, err := getEnv("RACEVK_BOT")
	if err != nil {
		return nil, err
	}

	tgChatToken, err := getEnv("RACETG_BOT")
	if err != nil {
		return nil, err
	}

	return &Config{
		VkGroupToken: vkGroupToken,
		TgChatToken:  tgChatToken,
	}, nil
}

func getEnv(key string) (string, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return "", fmt.Errorf("error getting environment %s: not set", key)
	}
	if _, isPlaceholder := placeholders[value]; isPlaceholder {
		return "", fmt.Errorf("error getting environment %s: placeholder value, put the real token", key)
	}
	return value, nil
}
