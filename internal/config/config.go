package config

import (
	"os"
	"strings"
	"time"
)

// SubmitterKind selects which external endpoint receives verification
// submissions for this deployment.
type SubmitterKind string

const (
	SubmitterFormSpark  SubmitterKind = "formspark"
	SubmitterWebinarJam SubmitterKind = "webinarjam"
)

type Config struct {
	BotToken string
	GuildID  string

	VerifyRoleID       string
	UnverifiedRoleID   string
	WhitelistedRoleIDs []string

	FreeChannelID        string
	FreeSessionChannelID string

	FormSparkURL    string
	WebinarAPIURL   string
	WebinarAPIKey   string
	WebinarID       string
	WebinarSchedule string

	OpenAIAPIKey string
	OpenAIModel  string

	ProhibitedPhraseAction string
	SafeSearchEnabled      bool

	OpsAddr      string
	OpsJWTSecret string

	MuteDuration time.Duration
	MaxMessages  int
	TimeWindow   time.Duration
	MaxLength    int
}

func Load() *Config {
	return &Config{
		BotToken: os.Getenv("BOT_TOKEN"),
		GuildID:  os.Getenv("GUILD_ID"),

		VerifyRoleID:       os.Getenv("VERIFY_ROLE_ID"),
		UnverifiedRoleID:   os.Getenv("UNVERIFIED_ROLE_ID"),
		WhitelistedRoleIDs: splitList(os.Getenv("WHITE_LISTED_ROLE_IDS")),

		FreeChannelID:        os.Getenv("FREE_CHANNEL_ID"),
		FreeSessionChannelID: os.Getenv("FREE_SESSION_CHANNEL_ID"),

		FormSparkURL:    os.Getenv("FORMSPARK_URL"),
		WebinarAPIURL:   os.Getenv("WEBINAR_API_URL"),
		WebinarAPIKey:   os.Getenv("WEBINAR_API_KEY"),
		WebinarID:       os.Getenv("WEBINAR_ID"),
		WebinarSchedule: getEnv("WEBINAR_SCHEDULE", "0"),

		OpenAIAPIKey: os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:  getEnv("OPENAI_MODEL", "gpt-4o-mini"),

		ProhibitedPhraseAction: os.Getenv("PROHIBITED_PHRASE_ACTION"),
		SafeSearchEnabled:      os.Getenv("SAFESEARCH_ENABLED") == "true",

		OpsAddr:      getEnv("OPS_ADDR", ":8080"),
		OpsJWTSecret: os.Getenv("OPS_JWT_SECRET"),

		MuteDuration: 15 * time.Minute,
		MaxMessages:  5,
		TimeWindow:   5 * time.Second,
		MaxLength:    300,
	}
}

// Submitter reports which verification backend this deployment targets.
// A configured WebinarJam API wins over FormSpark.
func (c *Config) Submitter() SubmitterKind {
	if c.WebinarAPIURL != "" {
		return SubmitterWebinarJam
	}
	return SubmitterFormSpark
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func splitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
