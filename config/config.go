// config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config содержит конфигурацию дашборда
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Dataset  DatasetConfig  `yaml:"dataset"`
	Defaults Defaults       `yaml:"defaults"`
	Chart    ChartConfig    `yaml:"chart"`
	Sessions SessionsConfig `yaml:"sessions"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ServerConfig настройки HTTP-сервера
type ServerConfig struct {
	Addr         string        `yaml:"addr"`
	StaticDir    string        `yaml:"static_dir"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	IdleTimeout  time.Duration `yaml:"idle_timeout"`
}

// DatasetConfig источник данных: CSV-файл или таблица MySQL
type DatasetConfig struct {
	Source string         `yaml:"source"`
	Path   string         `yaml:"path"`
	MySQL  DatabaseConfig `yaml:"mysql"`
}

// DatabaseConfig содержит настройки подключения к базе данных
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	Table    string `yaml:"table"`
}

// Defaults начальные значения элементов управления
type Defaults struct {
	Indicator  string `yaml:"indicator"`
	StartDate  string `yaml:"start_date"`
	ChartStyle string `yaml:"chart_style"`
	Country1   string `yaml:"country1"`
	Country2   string `yaml:"country2"`
}

// ChartConfig размеры графиков в дюймах
type ChartConfig struct {
	WidthIn  float64 `yaml:"width_in"`
	HeightIn float64 `yaml:"height_in"`
}

// SessionsConfig параметры очистки неактивных сессий
type SessionsConfig struct {
	SweepInterval     time.Duration `yaml:"sweep_interval"`
	InactivityTimeout time.Duration `yaml:"inactivity_timeout"`
}

// LoggingConfig настройки логирования
type LoggingConfig struct {
	Verbose bool   `yaml:"verbose"`
	File    string `yaml:"file"`
}

const (
	SourceCSV   = "csv"
	SourceMySQL = "mysql"
)

// Default возвращает конфигурацию по умолчанию
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:         ":8080",
			StaticDir:    "public",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		Dataset: DatasetConfig{
			Source: SourceCSV,
			Path:   "dados_tratados.csv",
			MySQL: DatabaseConfig{
				Host:   "localhost",
				Port:   3306,
				User:   "root",
				DBName: "macro",
				Table:  "dados_tratados",
			},
		},
		Defaults: Defaults{
			Indicator:  "PIB (%, cresc. anual)",
			StartDate:  "2000-01-01",
			ChartStyle: "Linha",
			Country1:   "Brazil",
			Country2:   "Argentina",
		},
		Chart: ChartConfig{
			WidthIn:  6.5,
			HeightIn: 3,
		},
		Sessions: SessionsConfig{
			SweepInterval:     30 * time.Second,
			InactivityTimeout: 65 * time.Second,
		},
	}
}

// Load читает YAML-файл поверх значений по умолчанию.
// Пустой путь означает конфигурацию по умолчанию.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return &cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения файла конфигурации: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("ошибка разбора конфигурации: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Addr == "" {
		return errors.New("server.addr обязателен")
	}
	switch c.Dataset.Source {
	case SourceCSV:
		if c.Dataset.Path == "" {
			return errors.New("dataset.path обязателен для источника csv")
		}
	case SourceMySQL:
		if c.Dataset.MySQL.Host == "" || c.Dataset.MySQL.DBName == "" || c.Dataset.MySQL.Table == "" {
			return errors.New("dataset.mysql: host, dbname и table обязательны")
		}
	default:
		return fmt.Errorf("dataset.source должен быть csv или mysql, получено %q", c.Dataset.Source)
	}
	if _, err := time.Parse("2006-01-02", c.Defaults.StartDate); err != nil {
		return fmt.Errorf("defaults.start_date: %w", err)
	}
	if c.Chart.WidthIn <= 0 || c.Chart.HeightIn <= 0 {
		return errors.New("chart: размеры должны быть положительными")
	}
	if c.Sessions.SweepInterval <= 0 || c.Sessions.InactivityTimeout <= 0 {
		return errors.New("sessions: интервалы должны быть положительными")
	}
	return nil
}
