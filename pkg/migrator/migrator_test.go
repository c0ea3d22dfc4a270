package migrator

import (
	"testing"
	"testing/fstest"

	"github.com/ghuser/smartfridge/pkg/database"
)

func TestDialect(t *testing.T) {
	tests := []struct {
		driver  string
		want    string
		wantErr bool
	}{
		{database.SQLDriverPostgres, "postgres", false},
		{database.SQLDriverMySQL, "mysql", false},
		{"sqlite3", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.driver, func(t *testing.T) {
			got, err := Dialect(tt.driver)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Dialect(%q) error = %v, wantErr = %v", tt.driver, err, tt.wantErr)
			}
			if got != tt.want {
				t.Fatalf("Dialect(%q) = %q, want %q", tt.driver, got, tt.want)
			}
		})
	}
}

func TestRunMigrations_UnsupportedDriver(t *testing.T) {
	if err := RunMigrations("sqlite3", "file::memory:", fstest.MapFS{}); err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}
