package app

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/alanCEI/negromate-alanfs-borrador3/internal/config"
	_ "github.com/lib/pq"
)

type App struct {
	Config *config.Config
	Logger *slog.Logger
	DB     *sql.DB
}

// NewApp crea el contenedor de la aplicación con la conexión a la base
// de datos ya verificada.
func NewApp(log *slog.Logger, cfg *config.Config) (*App, error) {
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.Name,
	)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &App{
		Config: cfg,
		Logger: log,
		DB:     db,
	}, nil
}
