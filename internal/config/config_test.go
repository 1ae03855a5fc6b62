package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.HTTPAddr != ":8080" {
		t.Errorf("HTTPAddr = %q, want :8080", cfg.HTTPAddr)
	}
	if cfg.DBMaxConns != 10 || cfg.DBMinConns != 2 {
		t.Errorf("pool defaults = max %d / min %d, want 10/2", cfg.DBMaxConns, cfg.DBMinConns)
	}
	if cfg.DBConnLifetimeMin != 60 {
		t.Errorf("DBConnLifetimeMin = %d, want 60", cfg.DBConnLifetimeMin)
	}
	if cfg.AccessTokenTTLMin != 15 || cfg.RefreshTokenTTLDays != 30 {
		t.Errorf("token TTLs = %d min / %d days, want 15/30", cfg.AccessTokenTTLMin, cfg.RefreshTokenTTLDays)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DB_MAX_CONNS", "25")
	t.Setenv("DB_MIN_CONNS", "5")
	t.Setenv("DB_CONN_LIFETIME_MIN", "120")
	t.Setenv("HTTP_ADDR", ":9090")

	cfg := Load()

	if cfg.DBMaxConns != 25 || cfg.DBMinConns != 5 || cfg.DBConnLifetimeMin != 120 {
		t.Errorf("pool config = %d/%d/%d, want 25/5/120", cfg.DBMaxConns, cfg.DBMinConns, cfg.DBConnLifetimeMin)
	}
	if cfg.HTTPAddr != ":9090" {
		t.Errorf("HTTPAddr = %q, want :9090", cfg.HTTPAddr)
	}
}

func TestLoadIgnoresBadInt(t *testing.T) {
	t.Setenv("DB_MAX_CONNS", "lots")

	if got := Load().DBMaxConns; got != 10 {
		t.Errorf("DBMaxConns = %d, want default 10 for unparsable value", got)
	}
}
