package config

import (
	"encoding/json"
	"os"
	"sync"
)

type Config struct {
	ListenAddr        string `json:"listenAddr"`
	DBPath            string `json:"dbPath"`
	AdvisorEndpoint   string `json:"advisorEndpoint"`
	AdvisorAPIKey     string `json:"advisorAPIKey"`
	AdvisorModel      string `json:"advisorModel"`
	UndoSeconds       int    `json:"undoSeconds"`
	LowStockThreshold int    `json:"lowStockThreshold"`
	Kiosk             bool   `json:"kiosk"`
}

var (
	cfg Config
	mu  sync.RWMutex
)

const configFilePath = "./regi_config.json"

func applyDefaults(c *Config) {
	if c.ListenAddr == "" {
		c.ListenAddr = ":8080"
	}
	if c.DBPath == "" {
		c.DBPath = "./regi.db"
	}
	if c.AdvisorEndpoint == "" {
		c.AdvisorEndpoint = "https://api.openai.com/v1/chat/completions"
	}
	if c.AdvisorModel == "" {
		c.AdvisorModel = "gpt-4o-mini"
	}
	if c.UndoSeconds == 0 {
		c.UndoSeconds = 5
	}
	if c.LowStockThreshold == 0 {
		c.LowStockThreshold = 5
	}
}

func LoadConfig() (Config, error) {
	mu.Lock()
	defer mu.Unlock()

	file, err := os.ReadFile(configFilePath)
	if err != nil {
		if os.IsNotExist(err) {
			applyDefaults(&cfg)
			return cfg, nil
		}
		return Config{}, err
	}

	var tempCfg Config
	if err := json.Unmarshal(file, &tempCfg); err != nil {
		applyDefaults(&cfg)
		return Config{}, err
	}
	cfg = tempCfg

	applyDefaults(&cfg)

	return cfg, nil
}

func SaveConfig(newCfg Config) error {
	mu.Lock()
	defer mu.Unlock()

	applyDefaults(&newCfg)

	file, err := json.MarshalIndent(newCfg, "", "  ")
	if err != nil {
		return err
	}

	if err := os.WriteFile(configFilePath, file, 0644); err != nil {
		return err
	}
	cfg = newCfg
	return nil
}

func GetConfig() Config {
	mu.RLock()
	defer mu.RUnlock()
	return cfg
}
