package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/daybrief/daybrief/enums"
)

type Config struct {
	NotifierType enums.NotifierType

	TelegramBotToken string
	TelegramChatID   string
	DingTalkWebhook  string
	DingTalkSecret   string
	FeishuWebhook    string
	WeComWebhook     string

	EnableGitHub   bool
	EnableZepp     bool
	EnableWeRead   bool
	EnableDuolingo bool
	EnablePoem     bool
	EnableHealth   bool
	EnableSteam    bool

	GitHubToken      string
	GitHubUsername   string
	ZeppUsername     string
	ZeppPassword     string
	WeReadCookie     string
	DuolingoUsername string
	DuolingoJWT      string
	SteamAPIKey      string
	SteamID          string

	// Raw values; the health source does its own sanitization.
	HealthSteps      string
	HealthSleepHours string

	StepGoal       int
	SleepGoalHours float64

	Location       *time.Location
	ProxyURL       string
	PushgatewayURL string
	LogLevel       slog.Level
}

// Load reads the whole configuration from the environment. Numeric or
// timezone values that fail to parse are errors; a bad LOG_LEVEL only falls
// back to INFO.
func Load() (*Config, error) {
	cfg := &Config{}

	cfg.NotifierType = enums.NotifierType(strings.ToLower(loadOptional("NOTIFIER_TYPE", "telegram")))

	cfg.TelegramBotToken = os.Getenv("TELEGRAM_BOT_TOKEN")
	cfg.TelegramChatID = os.Getenv("TELEGRAM_CHAT_ID")
	cfg.DingTalkWebhook = os.Getenv("DINGTALK_WEBHOOK")
	cfg.DingTalkSecret = os.Getenv("DINGTALK_SECRET")
	cfg.FeishuWebhook = os.Getenv("FEISHU_WEBHOOK")
	cfg.WeComWebhook = os.Getenv("WECOM_WEBHOOK")

	cfg.EnableGitHub = loadBool("ENABLE_GITHUB_STATS", true)
	cfg.EnableZepp = loadBool("ENABLE_ZEPP", true)
	cfg.EnableWeRead = loadBool("ENABLE_WEREAD", true)
	cfg.EnableDuolingo = loadBool("ENABLE_DUOLINGO", true)
	cfg.EnablePoem = loadBool("ENABLE_POEM", true)
	cfg.EnableHealth = loadBool("ENABLE_HEALTH", true)
	cfg.EnableSteam = loadBool("ENABLE_STEAM", true)

	cfg.GitHubToken = os.Getenv("GITHUB_TOKEN")
	cfg.GitHubUsername = os.Getenv("GITHUB_USERNAME")
	cfg.ZeppUsername = os.Getenv("ZEPP_USERNAME")
	cfg.ZeppPassword = os.Getenv("ZEPP_PASSWORD")
	cfg.WeReadCookie = os.Getenv("WEREAD_COOKIE")
	cfg.DuolingoUsername = os.Getenv("DUOLINGO_USERNAME")
	cfg.DuolingoJWT = os.Getenv("DUOLINGO_JWT_TOKEN")
	cfg.SteamAPIKey = os.Getenv("STEAM_API_KEY")
	cfg.SteamID = os.Getenv("STEAM_ID")

	cfg.HealthSteps = os.Getenv("HEALTH_STEPS")
	cfg.HealthSleepHours = os.Getenv("HEALTH_SLEEP_HOURS")

	var err error
	cfg.StepGoal, err = loadInt("STEP_GOAL", 10000)
	if err != nil {
		return nil, err
	}
	cfg.SleepGoalHours, err = loadFloat("SLEEP_GOAL_HOURS", 7.5)
	if err != nil {
		return nil, err
	}

	timezone := loadOptional("TIMEZONE", "Asia/Shanghai")
	cfg.Location, err = time.LoadLocation(timezone)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid TIMEZONE %q", timezone)
	}

	cfg.ProxyURL = os.Getenv("PROXY_URL")
	cfg.PushgatewayURL = os.Getenv("PUSHGATEWAY_URL")

	levelString := loadOptional("LOG_LEVEL", "INFO")
	cfg.LogLevel, err = parseLogLevel(levelString)
	if err != nil {
		slog.Error("Invalid LOG_LEVEL", "error", err)
		cfg.LogLevel = slog.LevelInfo
	}

	return cfg, nil
}

// Validate checks the selected notifier's credentials before any network
// activity happens.
func (c *Config) Validate() error {
	switch c.NotifierType {
	case enums.NotifierTelegram:
		if c.TelegramBotToken == "" {
			return errors.New("TELEGRAM_BOT_TOKEN not set")
		}
		if c.TelegramChatID == "" {
			return errors.New("TELEGRAM_CHAT_ID not set")
		}
	case enums.NotifierDingTalk:
		if c.DingTalkWebhook == "" {
			return errors.New("DINGTALK_WEBHOOK not set")
		}
	case enums.NotifierFeishu:
		if c.FeishuWebhook == "" {
			return errors.New("FEISHU_WEBHOOK not set")
		}
	case enums.NotifierWeCom:
		if c.WeComWebhook == "" {
			return errors.New("WECOM_WEBHOOK not set")
		}
	default:
		return errors.Errorf("unsupported notifier type: %s", c.NotifierType)
	}

	if c.StepGoal < 0 {
		return errors.New("STEP_GOAL must not be negative")
	}
	if c.SleepGoalHours < 0 {
		return errors.New("SLEEP_GOAL_HOURS must not be negative")
	}

	return nil
}

// A source runs when its flag is on and its credentials are present.

func (c *Config) GitHubEnabled() bool {
	return c.EnableGitHub && c.GitHubToken != "" && c.GitHubUsername != ""
}

func (c *Config) ZeppEnabled() bool {
	return c.EnableZepp && c.ZeppUsername != "" && c.ZeppPassword != ""
}

func (c *Config) WeReadEnabled() bool {
	return c.EnableWeRead && c.WeReadCookie != ""
}

func (c *Config) DuolingoEnabled() bool {
	return c.EnableDuolingo && c.DuolingoUsername != "" && c.DuolingoJWT != ""
}

func (c *Config) PoemEnabled() bool {
	return c.EnablePoem
}

func (c *Config) HealthEnabled() bool {
	return c.EnableHealth && (c.HealthSteps != "" || c.HealthSleepHours != "")
}

func (c *Config) SteamEnabled() bool {
	return c.EnableSteam && c.SteamAPIKey != "" && c.SteamID != ""
}

func parseLogLevel(s string) (slog.Level, error) {
	var level slog.Level
	var err = level.UnmarshalText([]byte(s))
	return level, err
}

func loadOptional(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func loadBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return strings.ToLower(value) == "true"
}

func loadInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid %s", key)
	}
	return parsed, nil
}

func loadFloat(key string, defaultValue float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid %s", key)
	}
	return parsed, nil
}
