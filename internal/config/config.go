package config

import (
	"errors"
	"fmt"
	"time"
	_ "time/tzdata"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"

	"github.com/m04kA/SMC-CarWash/internal/domain"
	"github.com/m04kA/SMC-CarWash/pkg/types"
)

// EnvPrefix префикс переменных окружения, переопределяющих файл конфигурации
const EnvPrefix = "CARWASH"

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

// ErrInvalidConfig возвращается, если конфигурация не прошла валидацию
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Server      Server        `toml:"server" split_words:"true"`
	Database    Database      `toml:"database" split_words:"true"`
	Storage     Storage       `toml:"storage" split_words:"true"`
	Booking     Booking       `toml:"booking" split_words:"true"`
	Scheduler   Scheduler     `toml:"scheduler" split_words:"true"`
	ShopService ServiceClient `toml:"shop_service" split_words:"true"`
	UserService ServiceClient `toml:"user_service" split_words:"true"`
	Logs        Logs          `toml:"logs" split_words:"true"`
	Metrics     Metrics       `toml:"metrics" split_words:"true"`
	Shops       []Shop        `toml:"shops" ignored:"true"`
}

// Server настройки HTTP сервера (таймауты в секундах)
type Server struct {
	HTTPPort        int `toml:"http_port" split_words:"true"`
	ReadTimeout     int `toml:"read_timeout" split_words:"true"`
	WriteTimeout    int `toml:"write_timeout" split_words:"true"`
	IdleTimeout     int `toml:"idle_timeout" split_words:"true"`
	ShutdownTimeout int `toml:"shutdown_timeout" split_words:"true"`
}

// Database настройки подключения к Postgres
type Database struct {
	Host            string `toml:"host" split_words:"true"`
	Port            int    `toml:"port" split_words:"true"`
	User            string `toml:"user" split_words:"true"`
	Password        string `toml:"password" split_words:"true"`
	DBName          string `toml:"dbname" split_words:"true"`
	SSLMode         string `toml:"sslmode" split_words:"true"`
	MaxOpenConns    int    `toml:"max_open_conns" split_words:"true"`
	MaxIdleConns    int    `toml:"max_idle_conns" split_words:"true"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime" split_words:"true"` // секунды
}

// DSN строка подключения для lib/pq
func (d Database) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// Storage выбор хранилища бронирований
type Storage struct {
	Driver string `toml:"driver" split_words:"true"` // postgres | memory
}

// Booking правила бронирования
type Booking struct {
	AdvanceBookingDays       int    `toml:"advance_booking_days" split_words:"true"`
	MinBookingNoticeMinutes  int    `toml:"min_booking_notice_minutes" split_words:"true"`
	CancellationLeadMinutes  int    `toml:"cancellation_lead_minutes" split_words:"true"`
	AutoConfirmWindowMinutes int    `toml:"auto_confirm_window_minutes" split_words:"true"`
	Timezone                 string `toml:"timezone" split_words:"true"`
}

// Policy собирает доменную политику бронирования
func (b Booking) Policy() (domain.BookingPolicy, error) {
	loc, err := time.LoadLocation(b.Timezone)
	if err != nil {
		return domain.BookingPolicy{}, fmt.Errorf("%w: unknown timezone %q: %v", ErrInvalidConfig, b.Timezone, err)
	}

	policy := domain.BookingPolicy{
		AdvanceBookingDays:       b.AdvanceBookingDays,
		MinBookingNoticeMinutes:  b.MinBookingNoticeMinutes,
		CancellationLeadMinutes:  b.CancellationLeadMinutes,
		AutoConfirmWindowMinutes: b.AutoConfirmWindowMinutes,
		Location:                 loc,
	}
	if err := policy.Validate(); err != nil {
		return domain.BookingPolicy{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return policy, nil
}

// Scheduler периодическое автоподтверждение. Interval 0 отключает планировщик.
// Пустой TriggerToken отключает внешний HTTP триггер.
type Scheduler struct {
	AutoConfirmInterval int    `toml:"auto_confirm_interval" split_words:"true"` // секунды
	TriggerToken        string `toml:"trigger_token" split_words:"true"`
}

// ServiceClient настройки HTTP клиента внешнего сервиса
type ServiceClient struct {
	URL     string `toml:"url" split_words:"true"`
	Timeout int    `toml:"timeout" split_words:"true"` // секунды
}

// Enabled true, если адрес сервиса задан
func (c ServiceClient) Enabled() bool {
	return c.URL != ""
}

// Logs настройки логирования
type Logs struct {
	Level string `toml:"level" split_words:"true"`
	File  string `toml:"file" split_words:"true"`
}

// Metrics настройки prometheus
type Metrics struct {
	Enabled     bool   `toml:"enabled" split_words:"true"`
	Path        string `toml:"path" split_words:"true"`
	ServiceName string `toml:"service_name" split_words:"true"`
}

// Shop мойка из локального каталога (используется, когда shop_service не задан)
type Shop struct {
	ID         string    `toml:"id"`
	Name       string    `toml:"name"`
	OpenTime   string    `toml:"open_time"`
	CloseTime  string    `toml:"close_time"`
	AutoAccept bool      `toml:"auto_accept"`
	AdminIDs   []int64   `toml:"admin_ids"`
	Services   []Service `toml:"services"`
}

// Service услуга мойки из локального каталога
type Service struct {
	ID              string  `toml:"id"`
	Name            string  `toml:"name"`
	DurationMinutes int     `toml:"duration_minutes"`
	Price           float64 `toml:"price"`
}

// ToDomain конвертирует запись каталога в доменную модель
func (s Shop) ToDomain() domain.Shop {
	services := make([]domain.Service, 0, len(s.Services))
	for _, svc := range s.Services {
		services = append(services, domain.Service{
			ID:              svc.ID,
			Name:            svc.Name,
			DurationMinutes: svc.DurationMinutes,
			Price:           svc.Price,
		})
	}

	return domain.Shop{
		ID:         s.ID,
		Name:       s.Name,
		OpenTime:   types.TimeString(s.OpenTime),
		CloseTime:  types.TimeString(s.CloseTime),
		AutoAccept: s.AutoAccept,
		Services:   services,
		AdminIDs:   s.AdminIDs,
	}
}

// Default значения по умолчанию
func Default() Config {
	return Config{
		Server: Server{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: Database{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Storage: Storage{Driver: StorageDriverPostgres},
		Booking: Booking{
			AdvanceBookingDays:       domain.DefaultAdvanceBookingDays,
			MinBookingNoticeMinutes:  domain.DefaultMinBookingNoticeMinutes,
			CancellationLeadMinutes:  domain.DefaultCancellationLeadMinutes,
			AutoConfirmWindowMinutes: domain.DefaultAutoConfirmWindowMinutes,
			Timezone:                 "UTC",
		},
		Scheduler:   Scheduler{AutoConfirmInterval: 60},
		ShopService: ServiceClient{Timeout: 5},
		UserService: ServiceClient{Timeout: 5},
		Logs:        Logs{Level: "info"},
		Metrics: Metrics{
			Enabled:     true,
			Path:        "/metrics",
			ServiceName: "carwash",
		},
	}
}

// Load читает файл конфигурации и применяет переменные окружения CARWASH_*
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("config: env overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate проверяет корректность значений
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port must be in 1..65535", ErrInvalidConfig)
	}

	switch c.Storage.Driver {
	case StorageDriverPostgres:
		if c.Database.Host == "" || c.Database.DBName == "" {
			return fmt.Errorf("%w: database.host and database.dbname are required for postgres storage", ErrInvalidConfig)
		}
	case StorageDriverMemory:
	default:
		return fmt.Errorf("%w: unknown storage.driver %q", ErrInvalidConfig, c.Storage.Driver)
	}

	if _, err := c.Booking.Policy(); err != nil {
		return err
	}

	if c.Scheduler.AutoConfirmInterval < 0 {
		return fmt.Errorf("%w: scheduler.auto_confirm_interval must be non-negative", ErrInvalidConfig)
	}

	if c.Metrics.Enabled && c.Metrics.Path == "" {
		return fmt.Errorf("%w: metrics.path is required when metrics are enabled", ErrInvalidConfig)
	}

	if !c.ShopService.Enabled() && len(c.Shops) == 0 {
		return fmt.Errorf("%w: either shop_service.url or [[shops]] must be configured", ErrInvalidConfig)
	}

	for _, shop := range c.Shops {
		if err := validateShop(shop); err != nil {
			return err
		}
	}

	return nil
}

func validateShop(s Shop) error {
	if s.ID == "" {
		return fmt.Errorf("%w: shop id is required", ErrInvalidConfig)
	}

	open, err := types.TimeToMinutes(s.OpenTime)
	if err != nil {
		return fmt.Errorf("%w: shop %s open_time: %v", ErrInvalidConfig, s.ID, err)
	}
	closeAt, err := types.TimeToMinutes(s.CloseTime)
	if err != nil {
		return fmt.Errorf("%w: shop %s close_time: %v", ErrInvalidConfig, s.ID, err)
	}
	if open >= closeAt {
		return fmt.Errorf("%w: shop %s must open before it closes", ErrInvalidConfig, s.ID)
	}

	for _, svc := range s.Services {
		if svc.ID == "" || svc.DurationMinutes <= 0 {
			return fmt.Errorf("%w: shop %s has service with empty id or non-positive duration", ErrInvalidConfig, s.ID)
		}
	}

	return nil
}
