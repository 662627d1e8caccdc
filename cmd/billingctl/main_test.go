package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hugohenrick/billing-dashboard/pkg/auth"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestTokenCommand(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "cli-test-secret")
	t.Setenv("STORE_DRIVER", "memory")

	out, err := execute(t, "token", "--owner", "user-42", "--email", "alex@example.com")
	if err != nil {
		t.Fatalf("token: %v", err)
	}

	service, err := auth.NewJWTService("cli-test-secret", cfg.JWTExpiration, cfg.JWTIssuer)
	if err != nil {
		t.Fatalf("NewJWTService: %v", err)
	}
	claims, err := service.ValidateToken(strings.TrimSpace(out))
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.OwnerID() != "user-42" || claims.Email != "alex@example.com" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestTokenCommandRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "")

	if _, err := execute(t, "token", "--owner", "user-42"); err == nil {
		t.Fatal("expected error without JWT_SECRET_KEY")
	}
}

func TestRenderCommand(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")
	output := filepath.Join(t.TempDir(), "INV-001.pdf")

	if _, err := execute(t, "render", "inv1", "--format", "pdf", "-o", output); err != nil {
		t.Fatalf("render: %v", err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Error("output is not a PDF")
	}
}

func TestRenderCommandErrors(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")

	if _, err := execute(t, "render", "inv1", "--format", "docx", "-o", ""); err == nil {
		t.Error("expected error for unknown format")
	}
	if _, err := execute(t, "render", "missing", "--format", "html", "-o", ""); err == nil {
		t.Error("expected error for unknown invoice")
	}
}
