package database

import (
	"strings"
	"testing"

	"github.com/go-sql-driver/mysql"
)

func TestDSN_ParsesBackWithUTCAndParseTime(t *testing.T) {
	s := dsn("app", "s3cret", "db.internal", "3306", "mentorhub")

	cfg, err := mysql.ParseDSN(s)
	if err != nil {
		t.Fatalf("ParseDSN: %v", err)
	}
	if cfg.User != "app" || cfg.Passwd != "s3cret" {
		t.Errorf("credentials: got %s/%s", cfg.User, cfg.Passwd)
	}
	if cfg.Addr != "db.internal:3306" {
		t.Errorf("addr: got %q, want db.internal:3306", cfg.Addr)
	}
	if cfg.DBName != "mentorhub" {
		t.Errorf("dbname: got %q, want mentorhub", cfg.DBName)
	}
	if !cfg.ParseTime {
		t.Error("ParseTime must be enabled so DATETIME scans into time.Time")
	}
	if cfg.Loc.String() != "UTC" {
		t.Errorf("loc: got %v, want UTC", cfg.Loc)
	}
	if !strings.Contains(s, "charset=utf8mb4") {
		t.Errorf("dsn %q missing charset param", s)
	}
}

func TestDSN_EmptyPassword(t *testing.T) {
	cfg, err := mysql.ParseDSN(dsn("app", "", "localhost", "3306", "mentorhub"))
	if err != nil {
		t.Fatalf("ParseDSN: %v", err)
	}
	if cfg.Passwd != "" {
		t.Errorf("password: got %q, want empty", cfg.Passwd)
	}
}
