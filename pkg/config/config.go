package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Drivers válidos para el almacén de snapshots.
const (
	CacheDriverFile     = "file"
	CacheDriverMemory   = "memory"
	CacheDriverPostgres = "postgres"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App    AppConfig
	HTTP   HTTPConfig
	Remote RemoteConfig
	Cache  CacheConfig
	DB     DBConfig
	Kafka  KafkaConfig
	Report ReportConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// RemoteConfig configuración del cliente de la API demo de comercio.
type RemoteConfig struct {
	BaseURL      string
	Timeout      time.Duration
	MaxRetries   int
	WriteThrough bool // true: las mutaciones de entidades remotas se replican en la API
	OrdersLimit  int  // 0 = todos los carritos
}

// CacheConfig configuración del almacén local de snapshots.
type CacheConfig struct {
	Driver string // file, memory, postgres
	Dir    string // solo driver file
}

// DBConfig configuración de PostgreSQL (driver postgres de la caché).
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// KafkaConfig publicación de eventos de cambio. Sin brokers no se publica nada.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// Enabled indica si hay brokers configurados.
func (c KafkaConfig) Enabled() bool { return len(c.Brokers) > 0 }

// ReportConfig parámetros de los reportes del dashboard.
type ReportConfig struct {
	Year int // año por defecto del rollup mensual
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, HTTP_PORT, REMOTE_BASE_URL, CACHE_DRIVER, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "tienda-admin"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Remote: RemoteConfig{
			BaseURL:      strings.TrimRight(getString(v, "REMOTE_BASE_URL", "https://fakestoreapi.com"), "/"),
			Timeout:      time.Duration(getInt(v, "REMOTE_TIMEOUT_SECONDS", 15)) * time.Second,
			MaxRetries:   getInt(v, "REMOTE_MAX_RETRIES", 2),
			WriteThrough: getBool(v, "REMOTE_WRITE_THROUGH", true),
			OrdersLimit:  getInt(v, "ORDERS_FETCH_LIMIT", 0),
		},
		Cache: CacheConfig{
			Driver: strings.ToLower(getString(v, "CACHE_DRIVER", CacheDriverFile)),
			Dir:    getString(v, "CACHE_DIR", "./data/cache"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "tienda_admin"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
		Kafka: KafkaConfig{
			Brokers: splitList(getString(v, "KAFKA_BROKERS", "")),
			Topic:   getString(v, "KAFKA_TOPIC", "tienda-admin.changes"),
		},
		Report: ReportConfig{
			Year: getInt(v, "REPORT_YEAR", 2020),
		},
	}

	switch cfg.Cache.Driver {
	case CacheDriverFile, CacheDriverMemory, CacheDriverPostgres:
	default:
		return nil, fmt.Errorf("config: CACHE_DRIVER desconocido %q", cfg.Cache.Driver)
	}
	if cfg.Remote.MaxRetries < 0 {
		cfg.Remote.MaxRetries = 0
	}
	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		return v.GetBool(key)
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
