package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	SMTP     SMTPConfig
	Twilio   TwilioConfig
	Payment  PaymentConfig
	Google   GoogleConfig
	Ai       AIConfig
	Deals    DealConfig
	Feedback FeedbackConfig
	JWT      JWTConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string
}

type SMTPConfig struct {
	Host       string
	Port       int
	Email      string
	Password   string
	SenderName string
}

type TwilioConfig struct {
	AccountSID     string
	AuthToken      string
	SMSNumber      string
	WhatsAppNumber string
}

type PaymentConfig struct {
	Provider             string // "mock", "razorpay" or "midtrans"
	RazorpayKeyID        string
	RazorpayKeySecret    string
	MidtransServerKey    string
	MidtransIsProduction bool
}

type GoogleConfig struct {
	OAuthClientID     string
	OAuthClientSecret string
	OAuthRedirectURL  string
	CalendarEnabled   bool
}

type AIConfig struct {
	LLMProvider       string // "openrouter" or "ollama"
	LLMModel          string
	OpenRouterAPIKey  string
	OpenRouterBaseURL string
	OllamaBaseURL     string
	EmbeddingProvider string // "jina" or "ollama"
	OllamaEmbedModel  string
	JinaAPIKey        string
	PlannerTimeoutSec int
}

type DealConfig struct {
	PerDay       int
	CronSchedule string
}

type FeedbackConfig struct {
	CronSchedule string
}

type JWTConfig struct {
	Secret string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:5173"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", ""),
			Port:       getEnvAsInt("SMTP_PORT", 587),
			Email:      getEnv("SMTP_EMAIL", ""),
			Password:   getEnv("SMTP_PASSWORD", ""),
			SenderName: getEnv("SMTP_SENDER_NAME", "TravelOrbit"),
		},
		Twilio: TwilioConfig{
			AccountSID:     getEnv("TWILIO_ACCOUNT_SID", ""),
			AuthToken:      getEnv("TWILIO_AUTH_TOKEN", ""),
			SMSNumber:      getEnv("TWILIO_SMS_NUMBER", ""),
			WhatsAppNumber: getEnv("TWILIO_WHATSAPP_NUMBER", ""),
		},
		Payment: PaymentConfig{
			Provider:             getEnv("PAYMENT_PROVIDER", "mock"),
			RazorpayKeyID:        getEnv("RAZORPAY_KEY_ID", ""),
			RazorpayKeySecret:    getEnv("RAZORPAY_KEY_SECRET", ""),
			MidtransServerKey:    getEnv("MIDTRANS_SERVER_KEY", ""),
			MidtransIsProduction: getEnvAsBool("MIDTRANS_IS_PRODUCTION", false),
		},
		Google: GoogleConfig{
			OAuthClientID:     getEnv("GOOGLE_OAUTH_CLIENT_ID", ""),
			OAuthClientSecret: getEnv("GOOGLE_OAUTH_CLIENT_SECRET", ""),
			OAuthRedirectURL:  getEnv("GOOGLE_OAUTH_REDIRECT_URL", ""),
			CalendarEnabled:   getEnvAsBool("GOOGLE_CALENDAR_ENABLED", false),
		},
		Ai: AIConfig{
			LLMProvider:       getEnv("LLM_PROVIDER", "openrouter"),
			LLMModel:          getEnv("LLM_MODEL", "openrouter/gpt-4.1-mini"),
			OpenRouterAPIKey:  getEnv("OPENROUTER_API_KEY", ""),
			OpenRouterBaseURL: getEnv("OPENROUTER_BASE_URL", ""),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "jina"),
			OllamaEmbedModel:  getEnv("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text"),
			JinaAPIKey:        getEnv("JINA_API_KEY", ""),
			PlannerTimeoutSec: getEnvAsInt("PLANNER_TIMEOUT_SECONDS", 60),
		},
		Deals: DealConfig{
			PerDay:       getEnvAsInt("DEALS_PER_DAY", 5),
			CronSchedule: getEnv("DEALS_CRON_SCHEDULE", "0 6 * * *"),
		},
		Feedback: FeedbackConfig{
			CronSchedule: getEnv("FEEDBACK_CRON_SCHEDULE", "0 8 * * *"),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", "default_secret"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}
