package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	mapstructure "github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

var (
	ErrFileNotFound          = errors.New(" file not found")
	ErrPrefixListIDRequired  = errors.New("monitor.prefix_list_id is required")
	ErrInvalidCIDRSuffix     = errors.New("monitor.cidr_suffix must be in range 0..32")
	ErrInvalidCheckInterval  = errors.New("monitor.check_interval must be positive")
	ErrEmptyIPServiceURL     = errors.New("ip_service.url must not be empty")
	ErrInvalidFetchTimeout   = errors.New("ip_service.timeout must be positive")
	ErrEmptyEntryDescription = errors.New("monitor.entry_description must not be empty")
)

type App struct {
	Name string `mapstructure:"name"`
}

type AWS struct {
	// Регион AWS. Если пуст — используется стандартная цепочка настроек SDK.
	Region string `mapstructure:"region"`
}

type Monitor struct {
	// ID managed prefix list'а, который обновляем. Обязательный параметр.
	PrefixListID string `mapstructure:"prefix_list_id"`
	// Описание записи. По нему сервис узнаёт "свои" записи в списке.
	EntryDescription string `mapstructure:"entry_description"`
	// Интервал между циклами проверки.
	CheckInterval time.Duration `mapstructure:"check_interval"`
	// Суффикс CIDR для адреса хоста (обычно 32).
	CIDRSuffix int `mapstructure:"cidr_suffix"`
	// Выполнить один цикл и завершиться.
	Once bool `mapstructure:"once"`
}

type IPService struct {
	URL string `mapstructure:"url"`
	// Таймаут одного запроса к сервису определения IP.
	Timeout time.Duration `mapstructure:"timeout"`
}

type Logger struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

type Metrics struct {
	Enabled bool   `mapstructure:"enabled"`
	Address string `mapstructure:"address"`
}

type Config struct {
	App       App       `mapstructure:"app"`
	AWS       AWS       `mapstructure:"aws"`
	Monitor   Monitor   `mapstructure:"monitor"`
	IPService IPService `mapstructure:"ip_service"`
	Logger    Logger    `mapstructure:"logger"`
	Metrics   Metrics   `mapstructure:"metrics"`
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil
}

func setDefaults(v *viper.Viper) {
	// Дефолты
	v.SetDefault("app.name", "prefix-list-updater")
	v.SetDefault("aws.region", "")
	v.SetDefault("monitor.entry_description", "Auto-updated host IP")
	v.SetDefault("monitor.check_interval", "5m")
	v.SetDefault("monitor.cidr_suffix", 32)
	v.SetDefault("monitor.once", false)
	v.SetDefault("ip_service.url", "https://api.ipify.org")
	v.SetDefault("ip_service.timeout", "10s")
	v.SetDefault("logger.level", "info")
	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.address", ":9090")

	// Бинд без дефолта: обязательный параметр должен читаться из ENV,
	// даже когда файла конфигурации нет.
	_ = v.BindEnv("monitor.prefix_list_id")
}

func LoadConfig(cfgFilePath string) (*Config, error) {
	v := viper.New()

	// ENV с префиксом PLU (от Prefix List Updater), __ вместо . и _ вместо - в ключах
	v.SetEnvPrefix("PLU")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "__", "-", "_"))
	v.AutomaticEnv()

	// устанавливаем дефолты и бинды для загрузки из ENV
	setDefaults(v)

	// если конфиг не задан - ищем по стандартным путям
	if cfgFilePath == "" {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/prefix-list-updater")
		// Файл конфигурации опционален: всё настраивается через ENV
		_ = v.ReadInConfig()
	} else {
		if !fileExists(cfgFilePath) {
			return nil, ErrFileNotFound
		}
		v.SetConfigFile(cfgFilePath)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	var cfg Config
	decoderCfg := &mapstructure.DecoderConfig{
		TagName:          "mapstructure",
		Result:           &cfg,
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
		),
	}
	dec, err := mapstructure.NewDecoder(decoderCfg)
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(v.AllSettings()); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate проверяет параметры, без которых запуск не имеет смысла.
// Любая ошибка отсюда фатальна и должна завершать процесс до первого цикла.
func (c *Config) Validate() error {
	if c.Monitor.PrefixListID == "" {
		return ErrPrefixListIDRequired
	}
	if c.Monitor.EntryDescription == "" {
		return ErrEmptyEntryDescription
	}
	if c.Monitor.CIDRSuffix < 0 || c.Monitor.CIDRSuffix > 32 {
		return fmt.Errorf("%w: got %d", ErrInvalidCIDRSuffix, c.Monitor.CIDRSuffix)
	}
	if c.Monitor.CheckInterval <= 0 {
		return ErrInvalidCheckInterval
	}
	if c.IPService.URL == "" {
		return ErrEmptyIPServiceURL
	}
	// Запрос без таймаута может зависнуть навсегда и остановить цикл проверок
	if c.IPService.Timeout <= 0 {
		return ErrInvalidFetchTimeout
	}
	return nil
}
