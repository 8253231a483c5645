package config

import (
	"errors"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App        AppConfig
	DB         DBConfig
	Redis      RedisConfig
	JWT        JWTConfig
	Admin      AdminConfig
	Cloudinary CloudinaryConfig
	SMTP       SMTPConfig
	Site       SiteConfig
}

type AppConfig struct {
	Port       string
	Env        string
	LogLevel   string
	Timezone   string
	CORSOrigin string
}

type DBConfig struct {
	Host          string
	Port          string
	User          string
	Password      string
	Name          string
	RunMigrations bool
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret        string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

// AdminConfig holds the single operator account. PasswordHash is a bcrypt hash.
type AdminConfig struct {
	Email        string
	PasswordHash string
}

type CloudinaryConfig struct {
	CloudName    string
	APIKey       string
	APISecret    string
	UploadPreset string
	Folder       string
}

type SMTPConfig struct {
	Host       string
	Port       int
	User       string
	Password   string
	From       string
	AdminInbox string
}

// SiteConfig carries the hospital-facing constants shown by the site.
type SiteConfig struct {
	HospitalName        string
	MessagingHost       string
	DefaultCountryCode  string
	PaymentQRURL        string
	PaymentPayee        string
	ConfirmationDisplay time.Duration
	DigestSchedule      string
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		// Running from the environment only is fine.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	accessExpiry, err := time.ParseDuration(viper.GetString("JWT_ACCESS_EXPIRY"))
	if err != nil {
		accessExpiry = 15 * time.Minute
	}

	refreshExpiry, err := time.ParseDuration(viper.GetString("JWT_REFRESH_EXPIRY"))
	if err != nil {
		refreshExpiry = 7 * 24 * time.Hour
	}

	confirmationDisplay, err := time.ParseDuration(viper.GetString("FORM_CONFIRMATION_DISPLAY"))
	if err != nil {
		confirmationDisplay = 3 * time.Second
	}

	config := &Config{
		App: AppConfig{
			Port:       viper.GetString("APP_PORT"),
			Env:        viper.GetString("APP_ENV"),
			LogLevel:   viper.GetString("LOG_LEVEL"),
			Timezone:   viper.GetString("APP_TIMEZONE"),
			CORSOrigin: viper.GetString("APP_CORS_ORIGIN"),
		},
		DB: DBConfig{
			Host:          viper.GetString("DB_HOST"),
			Port:          viper.GetString("DB_PORT"),
			User:          viper.GetString("DB_USER"),
			Password:      viper.GetString("DB_PASSWORD"),
			Name:          viper.GetString("DB_NAME"),
			RunMigrations: viper.GetBool("DB_RUN_MIGRATIONS"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret:        viper.GetString("JWT_SECRET"),
			AccessExpiry:  accessExpiry,
			RefreshExpiry: refreshExpiry,
		},
		Admin: AdminConfig{
			Email:        viper.GetString("ADMIN_EMAIL"),
			PasswordHash: viper.GetString("ADMIN_PASSWORD_HASH"),
		},
		Cloudinary: CloudinaryConfig{
			CloudName:    viper.GetString("CLOUDINARY_CLOUD_NAME"),
			APIKey:       viper.GetString("CLOUDINARY_API_KEY"),
			APISecret:    viper.GetString("CLOUDINARY_API_SECRET"),
			UploadPreset: viper.GetString("CLOUDINARY_UPLOAD_PRESET"),
			Folder:       viper.GetString("CLOUDINARY_FOLDER"),
		},
		SMTP: SMTPConfig{
			Host:       viper.GetString("SMTP_HOST"),
			Port:       viper.GetInt("SMTP_PORT"),
			User:       viper.GetString("SMTP_USER"),
			Password:   viper.GetString("SMTP_PASSWORD"),
			From:       viper.GetString("SMTP_FROM"),
			AdminInbox: viper.GetString("SMTP_ADMIN_INBOX"),
		},
		Site: SiteConfig{
			HospitalName:        viper.GetString("SITE_HOSPITAL_NAME"),
			MessagingHost:       viper.GetString("SITE_MESSAGING_HOST"),
			DefaultCountryCode:  viper.GetString("SITE_DEFAULT_COUNTRY_CODE"),
			PaymentQRURL:        viper.GetString("SITE_PAYMENT_QR_URL"),
			PaymentPayee:        viper.GetString("SITE_PAYMENT_PAYEE"),
			ConfirmationDisplay: confirmationDisplay,
			DigestSchedule:      viper.GetString("SITE_DIGEST_SCHEDULE"),
		},
	}

	return config, nil
}

func setDefaults() {
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("APP_TIMEZONE", "Local")
	viper.SetDefault("DB_RUN_MIGRATIONS", true)
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("CLOUDINARY_FOLDER", "hospital")
	viper.SetDefault("SITE_HOSPITAL_NAME", "HealthCare Plus")
	viper.SetDefault("SITE_MESSAGING_HOST", "wa.me")
	viper.SetDefault("SITE_DEFAULT_COUNTRY_CODE", "+91")
	viper.SetDefault("SITE_DIGEST_SCHEDULE", "0 8 * * *")
}

// Location resolves App.Timezone, falling back to the process local zone.
func (c AppConfig) Location() *time.Location {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}
