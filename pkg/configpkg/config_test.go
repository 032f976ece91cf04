package configpkg

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeEnvFile(t *testing.T, content string) string {
	t.Helper()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "app.env"), []byte(content), 0o600); err != nil {
		t.Fatalf("os.WriteFile() returned error: %v", err)
	}

	return dir
}

func TestLoad(t *testing.T) {
	dir := writeEnvFile(t, `STORE_DRIVER=bolt
BOLT_PATH=/tmp/accounts.db
SERVER_ADDRESS=127.0.0.1:9090
GO_ENV=development
`)

	got, err := Load(dir)
	if err != nil {
		t.Fatalf("Load(%q) returned error: %v", dir, err)
	}

	want := Config{
		StoreDriver:   StoreBolt,
		DBDriver:      "postgres",
		BoltPath:      "/tmp/accounts.db",
		RedisAddr:     "localhost:6379",
		ServerAddress: "127.0.0.1:9090",
		Environment:   "development",
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := writeEnvFile(t, "STORE_DRIVER=bolt\n")

	t.Setenv("STORE_DRIVER", StoreMemory)
	t.Setenv("MIGRATE_ON_START", "true")

	got, err := Load(dir)
	if err != nil {
		t.Fatalf("Load(%q) returned error: %v", dir, err)
	}

	if got.StoreDriver != StoreMemory {
		t.Errorf("StoreDriver=%q, want %q", got.StoreDriver, StoreMemory)
	}

	if !got.MigrateOnStart {
		t.Error("MigrateOnStart=false, want true")
	}
}

func TestLoadWithoutFile(t *testing.T) {
	t.Setenv("STORE_DRIVER", StoreMemory)

	got, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if got.ServerAddress != "0.0.0.0:8080" {
		t.Errorf("ServerAddress=%q, want default", got.ServerAddress)
	}
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{name: "Memory", config: Config{StoreDriver: StoreMemory}},
		{name: "Postgres", config: Config{StoreDriver: StorePostgres, DBSource: "postgres://x"}},
		{name: "PostgresNoSource", config: Config{StoreDriver: StorePostgres}, wantErr: true},
		{name: "BoltNoPath", config: Config{StoreDriver: StoreBolt}, wantErr: true},
		{name: "RedisNoAddr", config: Config{StoreDriver: StoreRedis}, wantErr: true},
		{name: "Unknown", config: Config{StoreDriver: "mongo"}, wantErr: true},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			err := tc.config.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() err=%v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}
