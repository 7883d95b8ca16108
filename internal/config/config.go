package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all runtime settings. Values come from environment variables
// (prefix COSSPOS_) with development defaults.
type Config struct {
	Entorno    string
	PuertoHTTP string

	DBHost     string
	DBPuerto   string
	DBUsuario  string
	DBPassword string
	DBNombre   string
	DBSSLMode  string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	JWTSecreto  string
	JWTDuracion time.Duration

	SMTPHost        string
	SMTPPuerto      int
	SMTPUsuario     string
	SMTPPassword    string
	SMTPRemitente   string
	AlertasDestino  string
	AlertasCadaCuanto time.Duration

	WorkersAlertas int
	RateLimitRPS   int
}

// Cargar reads configuration from the environment.
func Cargar() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("COSSPOS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("ENTORNO", "desarrollo")
	v.SetDefault("PUERTO_HTTP", "8080")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PUERTO", "5432")
	v.SetDefault("DB_USUARIO", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NOMBRE", "cosspos")
	v.SetDefault("DB_SSLMODE", "disable")

	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("JWT_SECRETO", "cambiar-en-produccion")
	v.SetDefault("JWT_DURACION", "12h")

	v.SetDefault("SMTP_HOST", "")
	v.SetDefault("SMTP_PUERTO", 587)
	v.SetDefault("SMTP_USUARIO", "")
	v.SetDefault("SMTP_PASSWORD", "")
	v.SetDefault("SMTP_REMITENTE", "alertas@cosspos.local")
	v.SetDefault("ALERTAS_DESTINO", "")
	v.SetDefault("ALERTAS_CADA_CUANTO", "6h")

	v.SetDefault("WORKERS_ALERTAS", 2)
	v.SetDefault("RATE_LIMIT_RPS", 20)

	cfg := &Config{
		Entorno:    v.GetString("ENTORNO"),
		PuertoHTTP: v.GetString("PUERTO_HTTP"),

		DBHost:     v.GetString("DB_HOST"),
		DBPuerto:   v.GetString("DB_PUERTO"),
		DBUsuario:  v.GetString("DB_USUARIO"),
		DBPassword: v.GetString("DB_PASSWORD"),
		DBNombre:   v.GetString("DB_NOMBRE"),
		DBSSLMode:  v.GetString("DB_SSLMODE"),

		RedisAddr:     v.GetString("REDIS_ADDR"),
		RedisPassword: v.GetString("REDIS_PASSWORD"),
		RedisDB:       v.GetInt("REDIS_DB"),

		JWTSecreto:  v.GetString("JWT_SECRETO"),
		JWTDuracion: v.GetDuration("JWT_DURACION"),

		SMTPHost:          v.GetString("SMTP_HOST"),
		SMTPPuerto:        v.GetInt("SMTP_PUERTO"),
		SMTPUsuario:       v.GetString("SMTP_USUARIO"),
		SMTPPassword:      v.GetString("SMTP_PASSWORD"),
		SMTPRemitente:     v.GetString("SMTP_REMITENTE"),
		AlertasDestino:    v.GetString("ALERTAS_DESTINO"),
		AlertasCadaCuanto: v.GetDuration("ALERTAS_CADA_CUANTO"),

		WorkersAlertas: v.GetInt("WORKERS_ALERTAS"),
		RateLimitRPS:   v.GetInt("RATE_LIMIT_RPS"),
	}
	return cfg, nil
}

// EsProduccion reports whether the server runs in production mode.
func (c *Config) EsProduccion() bool { return c.Entorno == "produccion" }
