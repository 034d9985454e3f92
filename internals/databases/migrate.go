package database

import (
	"embed"
	"io/fs"
	"log"
	"sort"
	"strings"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// RunMigrations menjalankan seluruh file migrations/*.sql berurutan nama file.
// Semua DDL di dalamnya idempoten (IF NOT EXISTS), jadi aman dipanggil tiap boot.
// Index parsial (mis. uq_assignment_active_pair) hanya hidup lewat jalur ini —
// tag GORM tidak bisa mengekspresikannya.
func RunMigrations() {
	entries, err := fs.ReadDir(migrationFS, "migrations")
	if err != nil {
		log.Fatalf("❌ Gagal membaca direktori migrasi: %v", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".sql") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		ddl, err := migrationFS.ReadFile("migrations/" + name)
		if err != nil {
			log.Fatalf("❌ Gagal membaca migrasi %s: %v", name, err)
		}
		if err := DB.Exec(string(ddl)).Error; err != nil {
			log.Fatalf("❌ Migrasi %s gagal: %v", name, err)
		}
		log.Printf("✅ Migrasi %s diterapkan.", name)
	}
}
