// Package testdb fournit une base sqlite en mémoire migrée, propre à chaque test.
package testdb

import (
	"fmt"
	"testing"

	"gestionmax.fr/hub/database"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open crée une base isolée (cache partagé nommé, sinon chaque connexion du pool
// verrait sa propre base vide) et applique toutes les migrations.
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("ouverture sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("pool sqlite: %v", err)
	}
	// Une seule connexion : pas de verrou de table entre connexions du cache partagé.
	sqlDB.SetMaxOpenConns(1)

	if err := database.RunMigrationsInOrder(db); err != nil {
		t.Fatalf("migrations: %v", err)
	}

	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}
