package service

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/bitewise/meal-tracker/internal/core/domain"
)

func captureAudit(development bool, emit func(a *AuditLogger)) string {
	var buf bytes.Buffer
	log := zerolog.New(&buf)
	emit(NewAuditLogger(log, development))
	return buf.String()
}

func TestAuditLogger_RedactsIdentifiersInProduction(t *testing.T) {
	res := &domain.MergeResult{
		GuestUserID: "guest-1234567890",
		AuthUserID:  "auth-0987654321",
		AuthMethod:  domain.AuthMethodUser,
		MealLogs:    3,
	}
	out := captureAudit(false, func(a *AuditLogger) {
		a.MergeCompleted(res, "203.0.113.7")
	})

	if strings.Contains(out, "guest-1234567890") || strings.Contains(out, "auth-0987654321") {
		t.Fatalf("raw identifiers leaked into audit log: %s", out)
	}
	if !strings.Contains(out, `"action":"identity_merge"`) {
		t.Fatalf("missing action field: %s", out)
	}
	if !strings.Contains(out, `"auth_method":"user"`) {
		t.Fatalf("missing auth method: %s", out)
	}
	if !strings.Contains(out, `"meal_logs_transferred":3`) {
		t.Fatalf("missing transferred count: %s", out)
	}
}

func TestAuditLogger_TruncatedIdentifiersInDevelopment(t *testing.T) {
	res := &domain.MergeResult{
		GuestUserID: "guest-1234567890",
		AuthUserID:  "auth-0987654321",
		AuthMethod:  domain.AuthMethodAdmin,
	}
	out := captureAudit(true, func(a *AuditLogger) {
		a.MergeCompleted(res, "203.0.113.7")
	})

	if strings.Contains(out, "guest-1234567890") {
		t.Fatalf("development log should truncate, not print full id: %s", out)
	}
	if !strings.Contains(out, "guest-12") {
		t.Fatalf("development log lost the identifier prefix: %s", out)
	}
}

func TestAuditLogger_RejectionCarriesReason(t *testing.T) {
	out := captureAudit(false, func(a *AuditLogger) {
		a.MergeRejected("g-1", "a-1", "unknown", "stale_guest_data")
	})

	if !strings.Contains(out, `"reason":"stale_guest_data"`) {
		t.Fatalf("missing rejection reason: %s", out)
	}
	if !strings.Contains(out, `"client_key":"unknown"`) {
		t.Fatalf("missing client key: %s", out)
	}
}
