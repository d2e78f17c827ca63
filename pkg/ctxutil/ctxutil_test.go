package ctxutil

import (
	"context"
	"testing"
)

func TestRequestIDRoundTrip(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-1")
	if got := RequestID(ctx); got != "req-1" {
		t.Fatalf("want req-1, got %q", got)
	}
}

func TestClientIDRoundTrip(t *testing.T) {
	ctx := WithClientID(context.Background(), "cli-1")
	if got := ClientID(ctx); got != "cli-1" {
		t.Fatalf("want cli-1, got %q", got)
	}
}

func TestMissingValuesAreEmpty(t *testing.T) {
	ctx := context.Background()
	if got := RequestID(ctx); got != "" {
		t.Fatalf("want empty request id, got %q", got)
	}
	if got := ClientID(ctx); got != "" {
		t.Fatalf("want empty client id, got %q", got)
	}
}

func TestKeysDoNotCollide(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-1")
	ctx = WithClientID(ctx, "cli-1")
	if RequestID(ctx) != "req-1" || ClientID(ctx) != "cli-1" {
		t.Fatalf("keys collided: request=%q client=%q", RequestID(ctx), ClientID(ctx))
	}
}
