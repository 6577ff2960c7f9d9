package database

import (
	"context"

	"github.com/DedS3t/monopoly-engine/app/models"
	"github.com/DedS3t/monopoly-engine/platform/config"
	"github.com/go-pg/pg/v10"
	"github.com/go-pg/pg/v10/orm"
)

func PostgreSQLConnection(cfg *config.Config) *pg.DB {
	return pg.Connect(&pg.Options{
		User:     cfg.DBUser,
		Addr:     cfg.DBAddr,
		Password: cfg.DBPassword,
		Database: cfg.DBName,
	})
}

// CreateSchema creates the games and users tables when missing.
func CreateSchema(ctx context.Context, db *pg.DB) error {
	if err := db.Ping(ctx); err != nil {
		return err
	}
	for _, model := range []interface{}{(*models.User)(nil), (*models.Game)(nil)} {
		err := db.Model(model).CreateTable(&orm.CreateTableOptions{IfNotExists: true})
		if err != nil {
			return err
		}
	}
	return nil
}
