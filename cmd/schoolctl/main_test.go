package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/polinatih/school-proj/config"
	"github.com/polinatih/school-proj/pkg/jwt"
)

const testSecret = "schoolctl-test-secret-0123"

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("SCHOOL_AUTH_SESSION_SECRET", testSecret)
	t.Setenv("SCHOOL_LOG_LEVEL", "error")

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestTokenCmd(t *testing.T) {
	out, err := run(t, "token", "--user", "teacher1")
	if err != nil {
		t.Fatalf("token: %v", err)
	}

	mgr := jwt.NewManager(&config.AuthConfig{SessionSecret: testSecret, SessionIssuer: "school-proj"})
	claims, err := mgr.ParseToken(strings.TrimSpace(out))
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.UserID() != "teacher1" {
		t.Errorf("subject = %s", claims.UserID())
	}
}

func TestTokenCmd_RequiresUser(t *testing.T) {
	if _, err := run(t, "token"); err == nil {
		t.Fatal("expected an error without --user")
	}
}

func TestMigrateDown_RejectsBadCount(t *testing.T) {
	_, err := run(t, "migrate", "down", "two")
	if err == nil || !strings.Contains(err.Error(), "positive integer") {
		t.Fatalf("err = %v", err)
	}
}
