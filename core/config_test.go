package core

import (
	"os"
	"testing"
	"time"
)

func TestNewConfig_defaults(t *testing.T) {
	os.Unsetenv("ENV")

	conf := NewConfig()

	if conf.Env != "DEV" {
		t.Errorf("Env = %s; want DEV", conf.Env)
	}
	if conf.TestMode {
		t.Error("TestMode = true; want false")
	}
	if conf.AppName != "CampusDesk" {
		t.Errorf("AppName = %s; want CampusDesk", conf.AppName)
	}
	if conf.TemplateStudent != 1 {
		t.Errorf("TemplateStudent = %d; want 1", conf.TemplateStudent)
	}
	if conf.Server.JWTExpirationDelta != 1*time.Hour {
		t.Errorf("JWTExpirationDelta = %v; want 1h", conf.Server.JWTExpirationDelta)
	}
	if got := conf.Server.Addr(); got != "0.0.0.0:8000" {
		t.Errorf("Server.Addr() = %s; want 0.0.0.0:8000", got)
	}
	if got := conf.Database.Address(); got != "localhost:5432" {
		t.Errorf("Database.Address() = %s; want localhost:5432", got)
	}
	if len(conf.Server.AllowedOrigins) == 0 {
		t.Error("AllowedOrigins is empty; want the local frontend origin")
	}
}

func TestNewConfig_testEnv(t *testing.T) {
	os.Setenv("ENV", "TEST")
	defer os.Unsetenv("ENV")

	conf := NewConfig()

	if conf.Env != "TEST" {
		t.Errorf("Env = %s; want TEST", conf.Env)
	}
	if !conf.TestMode {
		t.Error("TestMode = false; want true")
	}
}

func TestCleanString(t *testing.T) {
	if got := CleanString("  Hero@Test.CD "); got != "Hero@Test.CD" {
		t.Errorf("CleanString() = %q", got)
	}
	if got := CleanString("  Hero@Test.CD ", true); got != "hero@test.cd" {
		t.Errorf("CleanString(lower) = %q", got)
	}
}
