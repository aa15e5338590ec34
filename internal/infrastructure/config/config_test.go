package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("BOOKSTORE_ENV", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 60*time.Second, cfg.Server.ListCacheMaxAge)
	assert.Equal(t, DriverMySQL, cfg.Database.Driver)
	assert.False(t, cfg.Events.Enabled)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
  mode: release
  list_cache_max_age: 30s
database:
  driver: postgres
  host: db.internal
  port: 5432
  user: books
  password: secret
  dbname: inventory
log:
  level: debug
  format: json
`)

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Server.ListCacheMaxAge)
	assert.Equal(t, "host=db.internal port=5432 user=books password=secret dbname=inventory sslmode=disable", cfg.Database.DSN())
	assert.Equal(t, "json", cfg.Log.Format)
	// 未配置的字段使用默认值
	assert.Equal(t, 20, cfg.Database.MaxOpenConns)
}

func TestLoadFile_EnvOverride(t *testing.T) {
	path := writeConfig(t, "database:\n  password: from-file\n")
	t.Setenv("BOOKSTORE_DATABASE_PASSWORD", "from-env")
	t.Setenv("BOOKSTORE_SERVER_PORT", "7070")

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Database.Password)
	assert.Equal(t, 7070, cfg.Server.Port)
}

func TestLoadFile_Invalid(t *testing.T) {
	cases := map[string]string{
		"端口越界":   "server:\n  port: 70000\n",
		"未知驱动":   "database:\n  driver: oracle\n",
		"未知日志级别": "log:\n  level: loud\n",
		"采样比例越界": "tracing:\n  sample_ratio: 2\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadFile(writeConfig(t, content))
			assert.Error(t, err)
		})
	}
}

func TestDSN_MySQL(t *testing.T) {
	d := DatabaseConfig{
		Driver: DriverMySQL, User: "root", Password: "pw", Host: "127.0.0.1", Port: 3306,
		DBName: "bookstore", Charset: "utf8mb4", ParseTime: true, Loc: "Asia/Shanghai",
	}
	assert.Equal(t, "root:pw@tcp(127.0.0.1:3306)/bookstore?charset=utf8mb4&parseTime=true&loc=Asia%2FShanghai", d.DSN())

	assert.Equal(t, ":memory:", DatabaseConfig{Driver: DriverSQLite, Path: ":memory:"}.DSN())
}

func TestLoadFile_SampleConfig(t *testing.T) {
	cfg, err := LoadFile(filepath.Join("..", "..", "..", "config", "config.yaml"))
	require.NoError(t, err)

	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "bookstore.db", cfg.Database.DSN())
	assert.Equal(t, time.Hour, cfg.Database.ConnMaxLifetime)
	assert.Equal(t, 60*time.Second, cfg.Server.ListCacheMaxAge)
	assert.False(t, cfg.Events.Enabled)
}
