package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"doaharian/internal/util"
)

type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

type AdMode string

const (
	AdsOff  AdMode = "off"
	AdsDemo AdMode = "demo"
)

const (
	DefaultBaseURL = "https://api.baserow.io"
	DefaultTableID = "581962"
)

type Config struct {
	BaseURL    string
	TableID    string
	Token      string
	TimeoutSec int
	Theme      Theme
	Ads        AdMode
	AdWatchSec int
	Addr       string
	// SourceFile, when set, replaces the API with a local NDJSON file.
	SourceFile string

	theme string
	ads   string
}

// Load reads .env (when present) and environment defaults. Flags bound via
// BindFlags override them; call Validate after parsing.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}
	cfg := &Config{
		BaseURL:    getenvDefault("DOAHARIAN_BASE_URL", DefaultBaseURL),
		TableID:    getenvDefault("DOAHARIAN_TABLE_ID", DefaultTableID),
		Token:      os.Getenv("DOAHARIAN_TOKEN"),
		TimeoutSec: getenvDefaultInt("DOAHARIAN_TIMEOUT_SEC", 0),
		AdWatchSec: getenvDefaultInt("DOAHARIAN_AD_WATCH_SEC", 3),
		Addr:       getenvDefault("DOAHARIAN_ADDR", ":8080"),
		SourceFile: os.Getenv("DOAHARIAN_SOURCE_FILE"),
		theme:      getenvDefault("DOAHARIAN_THEME", string(ThemeDark)),
		ads:        getenvDefault("DOAHARIAN_ADS", string(AdsDemo)),
	}
	return cfg, nil
}

func (c *Config) BindFlags(fs *pflag.FlagSet) {
	fs.StringVar(&c.BaseURL, "base-url", c.BaseURL, "prayer API base URL")
	fs.StringVar(&c.TableID, "table", c.TableID, "Baserow table id")
	fs.StringVar(&c.Token, "token", c.Token, "API token (default $DOAHARIAN_TOKEN)")
	fs.IntVar(&c.TimeoutSec, "timeout-sec", c.TimeoutSec, "fetch timeout in seconds (0=none)")
	fs.StringVar(&c.theme, "theme", c.theme, "theme: dark|light")
	fs.StringVar(&c.ads, "ads", c.ads, "rewarded ads: off|demo")
	fs.IntVar(&c.AdWatchSec, "ad-watch-sec", c.AdWatchSec, "simulated ad length in seconds (demo ads)")
	fs.StringVar(&c.SourceFile, "source-file", c.SourceFile, "read prayers from an NDJSON file instead of the API ('-' for stdin)")
}

func (c *Config) Validate() error {
	c.Theme = Theme(strings.ToLower(c.theme))
	if c.Theme != ThemeDark && c.Theme != ThemeLight {
		return fmt.Errorf("invalid --theme %q: want dark|light", c.theme)
	}
	c.Ads = AdMode(strings.ToLower(c.ads))
	if c.Ads != AdsOff && c.Ads != AdsDemo {
		return fmt.Errorf("invalid --ads %q: want off|demo", c.ads)
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid --base-url %q", c.BaseURL)
	}
	if strings.TrimSpace(c.TableID) == "" {
		return errors.New("--table is required")
	}
	if c.SourceFile == "" && strings.TrimSpace(c.Token) == "" {
		return errors.New("missing API token: set DOAHARIAN_TOKEN or --token")
	}
	if c.TimeoutSec < 0 {
		c.TimeoutSec = 0
	}
	if c.AdWatchSec < 0 {
		c.AdWatchSec = 0
	}
	return nil
}

func (c *Config) Timeout() time.Duration { return time.Duration(c.TimeoutSec) * time.Second }

func (c *Config) AdWatch() time.Duration { return time.Duration(c.AdWatchSec) * time.Second }

func getenvDefault(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getenvDefaultInt(k string, d int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return d
}

func (c *Config) String() string {
	s := fmt.Sprintf("base=%s table=%s token=%s timeout=%ds theme=%s ads=%s", c.BaseURL, c.TableID, c.Token, c.TimeoutSec, c.Theme, c.Ads)
	if c.SourceFile != "" {
		s += " source-file=" + c.SourceFile
	}
	return util.RedactSecrets(s, c.Token)
}
