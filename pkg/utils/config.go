package utils

import (
	"github.com/spf13/viper"
)

type Config struct {
	App          AppConfig
	Database     DatabaseConfig
	Session      SessionConfig
	Google       GoogleConfig
	Cloudinary   CloudinaryConfig
	Twilio       TwilioConfig
	Verification VerificationConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type SessionConfig struct {
	Secret     string
	ExpiryDays int
	CookieName string
}

type GoogleConfig struct {
	ClientID       string
	ClientSecret   string
	CallbackSecret string
}

type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
	Folder    string
}

type TwilioConfig struct {
	AccountSID string
	AuthToken  string
	FromNumber string
}

type VerificationConfig struct {
	CodeExpiryMinutes int
	CodeLength        int
	MaxAttempts       int
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("SESSION_EXPIRY_DAYS", 30)
	viper.SetDefault("SESSION_COOKIE_NAME", "session_token")
	viper.SetDefault("CLOUDINARY_FOLDER", "shop-mkononi")
	viper.SetDefault("CODE_EXPIRY_MINUTES", 15)
	viper.SetDefault("CODE_LENGTH", 6)
	viper.SetDefault("CODE_MAX_ATTEMPTS", 5)
	viper.SetDefault("LOG_PATH", "logs/")

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		Session: SessionConfig{
			Secret:     viper.GetString("SESSION_SECRET"),
			ExpiryDays: viper.GetInt("SESSION_EXPIRY_DAYS"),
			CookieName: viper.GetString("SESSION_COOKIE_NAME"),
		},
		Google: GoogleConfig{
			ClientID:       viper.GetString("GOOGLE_CLIENT_ID"),
			ClientSecret:   viper.GetString("GOOGLE_CLIENT_SECRET"),
			CallbackSecret: viper.GetString("GOOGLE_CALLBACK_SECRET"),
		},
		Cloudinary: CloudinaryConfig{
			CloudName: viper.GetString("CLOUDINARY_CLOUD_NAME"),
			APIKey:    viper.GetString("CLOUDINARY_API_KEY"),
			APISecret: viper.GetString("CLOUDINARY_API_SECRET"),
			Folder:    viper.GetString("CLOUDINARY_FOLDER"),
		},
		Twilio: TwilioConfig{
			AccountSID: viper.GetString("TWILIO_ACCOUNT_SID"),
			AuthToken:  viper.GetString("TWILIO_AUTH_TOKEN"),
			FromNumber: viper.GetString("TWILIO_PHONE_NUMBER"),
		},
		Verification: VerificationConfig{
			CodeExpiryMinutes: viper.GetInt("CODE_EXPIRY_MINUTES"),
			CodeLength:        viper.GetInt("CODE_LENGTH"),
			MaxAttempts:       viper.GetInt("CODE_MAX_ATTEMPTS"),
		},
	}

	return config, nil
}
