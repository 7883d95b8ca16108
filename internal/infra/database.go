package infra

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"cosspos/internal/config"
	"cosspos/internal/model"
)

// ConectarDB opens the Postgres pool and runs migrations.
func ConectarDB(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=America/Lima",
		cfg.DBHost, cfg.DBPuerto, cfg.DBUsuario, cfg.DBPassword, cfg.DBNombre, cfg.DBSSLMode,
	)
	nivel := logger.Warn
	if !cfg.EsProduccion() {
		nivel = logger.Info
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(nivel),
	})
	if err != nil {
		return nil, fmt.Errorf("conectando a postgres: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	if err := migrar(db); err != nil {
		return nil, fmt.Errorf("migrando esquema: %w", err)
	}
	log.Info().Str("host", cfg.DBHost).Str("db", cfg.DBNombre).Msg("conexión a postgres establecida")
	return db, nil
}

func migrar(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Usuario{},
		&model.Departamento{},
		&model.Producto{},
		&model.MovimientoStock{},
		&model.Turno{},
		&model.Gasto{},
		&model.Pedido{},
		&model.Venta{},
	); err != nil {
		return err
	}
	// Backstop for the single-open-turno invariant: the service checks before
	// opening, this index closes the race between two concurrent opens.
	return db.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_turno_abierto_unico
		 ON turnos (estado) WHERE estado = 'ABIERTO'`,
	).Error
}
