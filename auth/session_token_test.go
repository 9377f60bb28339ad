package auth

import (
	"testing"
	"time"
)

func TestIssueAndParseSessionToken(t *testing.T) {
	token, err := IssueSessionToken("test-secret", "caller-123", time.Hour)
	if err != nil {
		t.Fatalf("IssueSessionToken failed: %v", err)
	}

	claims, err := ParseSessionToken("test-secret", token)
	if err != nil {
		t.Fatalf("ParseSessionToken failed: %v", err)
	}
	if claims.Subject != "caller-123" {
		t.Errorf("expected subject %q, got %q", "caller-123", claims.Subject)
	}
}

func TestParseSessionToken_WrongSecret(t *testing.T) {
	token, err := IssueSessionToken("right-secret", "caller-123", time.Hour)
	if err != nil {
		t.Fatalf("IssueSessionToken failed: %v", err)
	}

	if _, err := ParseSessionToken("wrong-secret", token); err == nil {
		t.Error("expected an error parsing a token signed with a different secret")
	}
}

func TestParseSessionToken_Expired(t *testing.T) {
	token, err := IssueSessionToken("test-secret", "caller-123", -time.Minute)
	if err != nil {
		t.Fatalf("IssueSessionToken failed: %v", err)
	}

	if _, err := ParseSessionToken("test-secret", token); err == nil {
		t.Error("expected an error parsing an expired token")
	}
}
