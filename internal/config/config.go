// Package config предоставляет структуры и функцию для парсинга и загрузки конфига
package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config общая структура для хранения настроек
type Config struct {
	Env                     string  `yaml:"env"`
	StorageConnectionString string  `yaml:"storage_connection_string"`
	RabbitMQURL             string  `yaml:"rabbitmq_url"`
	VIPDiscount             float64 `yaml:"vip_discount" env-default:"0.5"`
	RedisConnection         `yaml:"redis_connection"`
	HTTPServer              `yaml:"http_server"`
	JWTToken                `yaml:"jwttoken"`
	DataCache               `yaml:"data_cache"`
	SMSGateway              `yaml:"sms_gateway"`
}

// HTTPServer структура для настройки сервера
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

// RedisConnection структура для настройки подключения к redis
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis"`
	Password     string        `yaml:"password"`
	User         string        `yaml:"user"`
	DB           int           `yaml:"db"`
	MaxRetries   int           `yaml:"max_retries"`
	DialTimeout  time.Duration `yaml:"dial_timeout"`
	TimeoutRedis time.Duration `yaml:"timeoutredis"`
	Enabled      bool          `yaml:"enabled"` // При false используется кеш в памяти процесса
}

// JWTToken структура для работы с jwt-токеном
type JWTToken struct {
	JWTSecretKey string        `yaml:"jwt_secret_key"`
	TokenTTL     time.Duration `yaml:"token_ttl"`
}

// DataCache настройки слоя кешированного доступа к данным
type DataCache struct {
	TTL          time.Duration `yaml:"ttl" env-default:"5m"`            // Время жизни записи кеша
	FetchTimeout time.Duration `yaml:"fetch_timeout" env-default:"3s"` // Таймаут похода в источник
}

// SMSGateway настройки HTTP-шлюза отправки SMS
type SMSGateway struct {
	APIURL     string        `yaml:"api_url"`
	APIKey     string        `yaml:"api_key"`
	SenderID   string        `yaml:"sender_id" env-default:"VIPMKT"`
	TimeoutSMS time.Duration `yaml:"timeoutsms" env-default:"5s"`
}

// MustLoad функция для загрузки конфига, возвращает конфиг, прочитанный
// из файла по пути CONFIG_PATH
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

func (c *Config) String() string {
	return fmt.Sprintf(
		"Env: %s\n"+
			"StorageConnectionString: %s\n"+
			"RabbitMQURL: %s\n"+
			"VIPDiscount: %.2f\n"+
			"RedisConnection:\n"+
			"  Addr: %s\n"+
			"  DB: %d\n"+
			"  Enabled: %t\n"+
			"HTTPServer:\n"+
			"  Address: %s\n"+
			"  Timeout: %s\n"+
			"  IdleTimeout: %s\n"+
			"DataCache:\n"+
			"  TTL: %s\n"+
			"  FetchTimeout: %s\n"+
			"JWTToken:\n"+
			"  TokenTTL: %s\n",
		c.Env,
		c.StorageConnectionString,
		c.RabbitMQURL,
		c.VIPDiscount,
		c.AddressRedis,
		c.DB,
		c.Enabled,
		c.AddressHTTP,
		c.TimeoutHTTP,
		c.IdleTimeout,
		c.TTL,
		c.FetchTimeout,
		c.TokenTTL,
	)
}
