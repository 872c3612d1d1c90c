// Package config предоставляет структуры и функцию для парсинга и загрузки конфига
package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config общая структура для хранения настроек
type Config struct {
	Env                     string        `yaml:"env" env:"ENV" env-default:"local"`
	StorageConnectionString string        `yaml:"storage_connection_string" env:"STORAGE_CONNECTION_STRING"`
	MigrationsPath          string        `yaml:"migrations_path" env:"MIGRATIONS_PATH" env-default:"./migrations"`
	RabbitMQURL             string        `yaml:"rabbitmq_url" env:"RABBITMQ_URL"`
	RabbitMQMaxRetries      int           `yaml:"rabbitmq_max_retries" env-default:"10"`
	RabbitMQRetryDelay      time.Duration `yaml:"rabbitmq_retry_delay" env-default:"3s"`
	RedisConnection         `yaml:"redis_connection"`
	HTTPServer              `yaml:"http_server"`
	Automation              `yaml:"automation"`
	Twilio                  `yaml:"twilio"`
	SMTP                    `yaml:"smtp"`
	Admin                   `yaml:"admin"`
	JWTToken                `yaml:"jwttoken"`
	Billing                 `yaml:"billing"`
}

// HTTPServer структура для настройки сервера
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp" env-default:"0.0.0.0:8080"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env-default:"5s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// RedisConnection структура для настройки подключения к redis
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis" env:"REDIS_ADDRESS"`
	Password     string        `yaml:"password" env:"REDIS_PASSWORD"`
	User         string        `yaml:"user"`
	DB           int           `yaml:"db"`
	MaxRetries   int           `yaml:"max_retries" env-default:"3"`
	DialTimeout  time.Duration `yaml:"dial_timeout" env-default:"5s"`
	TimeoutRedis time.Duration `yaml:"timeoutredis" env-default:"3s"`
}

// Automation структура с настройками цикла уведомлений
type Automation struct {
	Enabled              bool          `yaml:"enabled" env-default:"true"`
	CheckInterval        time.Duration `yaml:"check_interval" env-default:"60s"`
	BusinessHoursStart   int           `yaml:"business_hours_start" env-default:"8"`
	BusinessHoursEnd     int           `yaml:"business_hours_end" env-default:"18"`
	WorkDays             []int         `yaml:"work_days" env-default:"1,2,3,4,5"`
	ReminderDays         int           `yaml:"reminder_days" env-default:"3"`
	OverdueEscalation    []int         `yaml:"overdue_escalation" env-default:"1,3,7,15,30"`
	MaxMessagesPerDay    int           `yaml:"max_messages_per_day" env-default:"100"`
	DelayBetweenMessages time.Duration `yaml:"delay_between_messages" env-default:"5s"`
}

// Twilio структура с учетными данными канала WhatsApp
type Twilio struct {
	AccountSID     string `yaml:"account_sid" env:"TWILIO_ACCOUNT_SID"`
	AuthToken      string `yaml:"auth_token" env:"TWILIO_AUTH_TOKEN"`
	WhatsAppNumber string `yaml:"whatsapp_number" env:"TWILIO_WHATSAPP_NUMBER"`
}

// SMTP структура с настройками почтового транспорта
type SMTP struct {
	SMTPHost string `yaml:"smtp_host" env:"SMTP_HOST"`
	SMTPPort string `yaml:"smtp_port" env-default:"587"`
	SMTPUser string `yaml:"smtp_user" env:"SMTP_USER"`
	SMTPPass string `yaml:"smtp_pass" env:"SMTP_PASS"`
}

// Admin учетные данные администратора панели управления.
// Пароль хранится в виде bcrypt-хеша.
type Admin struct {
	AdminUser         string `yaml:"admin_user" env:"ADMIN_USER" env-default:"admin"`
	AdminPasswordHash string `yaml:"admin_password_hash" env:"ADMIN_PASSWORD_HASH"`
}

// JWTToken структура для работы с jwt-токеном
type JWTToken struct {
	JWTSecretKey string        `yaml:"jwt_secret_key" env:"JWT_SECRET_KEY"`
	TokenTTL     time.Duration `yaml:"token_ttl" env-default:"24h"`
}

// Billing структура с настройками генератора счетов
type Billing struct {
	GenerateCronSpec  string `yaml:"generate_cron_spec" env-default:"0 7 * * *"`
	PaymentWindowDays int    `yaml:"payment_window_days" env-default:"7"`
}

// MustLoad функция для загрузки конфига, путь берется из CONFIG_PATH
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("file: %s - does not exist", configPath)
	}
	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return &cfg
}
