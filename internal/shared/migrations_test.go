package shared

import (
	"testing"
)

func TestMigrationRunner(t *testing.T) {
	t.Run("loadMigrations", func(t *testing.T) {
		migrations, err := loadMigrations()
		if err != nil {
			t.Fatalf("failed to load migrations: %v", err)
		}

		if len(migrations) == 0 {
			t.Fatal("expected at least one migration")
		}

		for i := 1; i < len(migrations); i++ {
			if migrations[i].Version <= migrations[i-1].Version {
				t.Errorf("migrations not sorted: version %d comes after %d", migrations[i].Version, migrations[i-1].Version)
			}
		}

		for _, m := range migrations {
			if m.Up == "" {
				t.Errorf("migration version %d missing up SQL", m.Version)
			}
			if m.Down == "" {
				t.Errorf("migration version %d missing down SQL", m.Version)
			}
		}
	})

	t.Run("RunMigrations And Rollback", func(t *testing.T) {
		db, err := NewDatabase(":memory:")
		if err != nil {
			t.Fatalf("failed to create database: %v", err)
		}
		defer db.Close()

		if err := RunMigrations(db); err != nil {
			t.Fatalf("failed to run migrations: %v", err)
		}

		var count int
		if err := db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count); err != nil {
			t.Fatalf("failed to query schema_migrations: %v", err)
		}
		if count == 0 {
			t.Fatal("expected applied migrations to be recorded")
		}

		// The kv table must exist after migrating up.
		if _, err := db.Exec("INSERT INTO kv (key, value) VALUES ('probe', '{}')"); err != nil {
			t.Fatalf("expected kv table to exist: %v", err)
		}

		t.Run("is idempotent", func(t *testing.T) {
			if err := RunMigrations(db); err != nil {
				t.Fatalf("expected re-run to be a no-op: %v", err)
			}

			var again int
			db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&again)
			if again != count {
				t.Errorf("expected %d applied migrations, got %d", count, again)
			}
		})

		t.Run("rolls back the latest migration", func(t *testing.T) {
			if err := RollbackMigration(db); err != nil {
				t.Fatalf("failed to rollback: %v", err)
			}

			var remaining int
			db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&remaining)
			if remaining != count-1 {
				t.Errorf("expected %d applied migrations after rollback, got %d", count-1, remaining)
			}
		})
	})

	t.Run("Rollback Without Migrations", func(t *testing.T) {
		db, err := NewDatabase(":memory:")
		if err != nil {
			t.Fatalf("failed to create database: %v", err)
		}
		defer db.Close()

		if _, err := db.Exec("CREATE TABLE schema_migrations (version INTEGER PRIMARY KEY)"); err != nil {
			t.Fatalf("failed to create table: %v", err)
		}

		if err := RollbackMigration(db); err == nil {
			t.Error("expected error when nothing is applied")
		}
	})

	t.Run("stripSQLComments", func(t *testing.T) {
		in := "-- drop everything\nDROP TABLE kv; -- trailing\n"
		out := stripSQLComments(in)
		if out != "DROP TABLE kv;" {
			t.Errorf("unexpected result: %q", out)
		}
	})
}
