package token

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

func TestIssueAndVerify(t *testing.T) {
	issuer := NewIssuer("test-secret", time.Hour)
	verifier := NewVerifier("test-secret")

	userID := uuid.New()
	raw, err := issuer.Issue(userID, "A", "a@x.com")
	if err != nil {
		t.Fatalf("Issue() error: %v", err)
	}

	got, err := verifier.Verify(raw)
	if err != nil {
		t.Fatalf("Verify() error: %v", err)
	}
	if got != userID {
		t.Errorf("Verify() subject = %v; want %v", got, userID)
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	issuer := NewIssuer("secret-a", time.Hour)
	verifier := NewVerifier("secret-b")

	raw, err := issuer.Issue(uuid.New(), "A", "a@x.com")
	if err != nil {
		t.Fatalf("Issue() error: %v", err)
	}

	if _, err := verifier.Verify(raw); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Verify() error = %v; want ErrInvalidToken", err)
	}
}

func TestVerify_Expired(t *testing.T) {
	issuer := NewIssuer("test-secret", time.Hour)
	issuer.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	raw, err := issuer.Issue(uuid.New(), "A", "a@x.com")
	if err != nil {
		t.Fatalf("Issue() error: %v", err)
	}

	verifier := NewVerifier("test-secret")
	if _, err := verifier.Verify(raw); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Verify() error = %v; want ErrInvalidToken", err)
	}
}

func TestVerify_Tampered(t *testing.T) {
	issuer := NewIssuer("test-secret", time.Hour)
	verifier := NewVerifier("test-secret")

	raw, err := issuer.Issue(uuid.New(), "A", "a@x.com")
	if err != nil {
		t.Fatalf("Issue() error: %v", err)
	}

	// Flip a character in the payload segment.
	parts := strings.Split(raw, ".")
	if len(parts) != 3 {
		t.Fatalf("token has %d segments; want 3", len(parts))
	}
	payload := []byte(parts[1])
	if payload[0] == 'A' {
		payload[0] = 'B'
	} else {
		payload[0] = 'A'
	}
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	if _, err := verifier.Verify(tampered); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Verify() error = %v; want ErrInvalidToken", err)
	}
}

func TestVerify_Malformed(t *testing.T) {
	verifier := NewVerifier("test-secret")

	for _, raw := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := verifier.Verify(raw); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("Verify(%q) error = %v; want ErrInvalidToken", raw, err)
		}
	}
}

func TestVerify_RejectsUnsignedToken(t *testing.T) {
	// alg=none tokens must never verify, regardless of payload.
	claims := Claims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   uuid.New().String(),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none token: %v", err)
	}

	verifier := NewVerifier("test-secret")
	if _, err := verifier.Verify(raw); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Verify() error = %v; want ErrInvalidToken", err)
	}
}

func TestVerify_NonUUIDSubject(t *testing.T) {
	secret := []byte("test-secret")
	claims := jwt.RegisteredClaims{
		Subject:   "not-a-uuid",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	verifier := NewVerifier("test-secret")
	if _, err := verifier.Verify(raw); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Verify() error = %v; want ErrInvalidToken", err)
	}
}
