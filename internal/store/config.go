package store

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Timezone            string `yaml:"timezone"`
	Worksheet           string `yaml:"worksheet"`
	PollIntervalSeconds int    `yaml:"poll_interval_seconds"`
	PollTimeoutSeconds  int    `yaml:"poll_timeout_seconds"`
	StateFile           string `yaml:"state_file"`
	StartFromLatest     bool   `yaml:"start_from_latest"`
	Sheets              struct {
		IDMap map[string]string `yaml:"id_map"`
	} `yaml:"sheets"`
	Upbit struct {
		Enabled     bool   `yaml:"enabled"`
		Market      string `yaml:"market"`
		MarketAsset string `yaml:"market_asset"`
		SheetSymbol string `yaml:"sheet_symbol"`
		BaseURL     string `yaml:"base_url"`
		OrdersPath  string `yaml:"orders_path"`
		MaxPages    int    `yaml:"max_pages"`
		CommandText string `yaml:"command_text"`
	} `yaml:"upbit"`
	Backup struct {
		Enabled bool   `yaml:"enabled"`
		Dir     string `yaml:"dir"`
	} `yaml:"backup"`
	Eod struct {
		Enabled bool `yaml:"enabled"`
		Hour    int  `yaml:"hour"`
	} `yaml:"eod"`
}

func (c *Config) Validate() error {
	if c.PollIntervalSeconds <= 0 {
		return fmt.Errorf("poll_interval_seconds must be positive, got %d", c.PollIntervalSeconds)
	}
	if c.PollTimeoutSeconds < 0 {
		return fmt.Errorf("poll_timeout_seconds must not be negative, got %d", c.PollTimeoutSeconds)
	}
	if c.Upbit.Enabled && !strings.Contains(c.Upbit.Market, "-") {
		return fmt.Errorf("upbit.market must look like QUOTE-BASE, got '%s'", c.Upbit.Market)
	}
	if c.Eod.Hour < 0 || c.Eod.Hour > 23 {
		return fmt.Errorf("eod.hour must be between 0-23, got %d", c.Eod.Hour)
	}
	return nil
}

func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}

	if c.Timezone == "" {
		c.Timezone = "Asia/Seoul"
	}
	if c.PollIntervalSeconds == 0 {
		c.PollIntervalSeconds = 2
	}
	if c.PollTimeoutSeconds == 0 {
		c.PollTimeoutSeconds = 30
	}
	if c.StateFile == "" {
		c.StateFile = "state.json"
	}
	if c.Upbit.Market == "" {
		c.Upbit.Market = "KRW-BTC"
	}
	if c.Upbit.MarketAsset == "" {
		c.Upbit.MarketAsset = "BTC"
	}
	if c.Upbit.SheetSymbol == "" {
		c.Upbit.SheetSymbol = "BTC"
	}
	if c.Upbit.BaseURL == "" {
		c.Upbit.BaseURL = "https://api.upbit.com"
	}
	if c.Upbit.OrdersPath == "" {
		c.Upbit.OrdersPath = "/v1/orders/closed"
	}
	if c.Upbit.MaxPages == 0 {
		c.Upbit.MaxPages = 30
	}
	if c.Upbit.CommandText == "" {
		c.Upbit.CommandText = "업비트 기록 수행"
	}
	if c.Backup.Dir == "" {
		c.Backup.Dir = "backups"
	}
	if c.Eod.Hour == 0 {
		c.Eod.Hour = 23
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &c, nil
}

// SheetID resolves the spreadsheet mapped to a symbol. The
// SPREADSHEET_ID_MAP environment variable ("TQQQ:<id>,BTC:<id>") overrides
// entries from the config file.
func (c *Config) SheetID(symbol string) (string, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if id, ok := ParseIDMap(os.Getenv("SPREADSHEET_ID_MAP"))[symbol]; ok {
		return id, nil
	}
	if id, ok := c.Sheets.IDMap[symbol]; ok && id != "" {
		return id, nil
	}
	return "", fmt.Errorf("no spreadsheet mapped for symbol %s (sheets.id_map or SPREADSHEET_ID_MAP)", symbol)
}

// ParseIDMap parses a symbol-to-spreadsheet mapping of the form
// "TQQQ:<id>,BTC:<id>". Malformed pairs are dropped.
func ParseIDMap(raw string) map[string]string {
	out := map[string]string{}
	for _, item := range strings.Split(raw, ",") {
		pair := strings.TrimSpace(item)
		if pair == "" || !strings.Contains(pair, ":") {
			continue
		}
		symbol, id, _ := strings.Cut(pair, ":")
		symbol = strings.ToUpper(strings.TrimSpace(symbol))
		id = strings.TrimSpace(id)
		if symbol != "" && id != "" {
			out[symbol] = id
		}
	}
	return out
}
