package blockchain

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"oqassets-backend/internal/domain/asset"
)

const testOwner = "0xAbCd000000000000000000000000000000000001"

func testMeta() asset.MintMetadata {
	return asset.MintMetadata{
		DocHash:   "a3f5c2e8b1d4a7f09c6e3b8d5a2f7c4e1b8d5a2f7c4e1b8d5a2f7c4e1b8d5a2f",
		Valuation: decimal.RequireFromString("10470.59"),
		AssetType: "invoice",
	}
}

func TestMintAsset_Receipt(t *testing.T) {
	s := NewSimulatedSubmitter(0, 0)

	r, err := s.MintAsset(context.Background(), testOwner, testMeta())
	if err != nil {
		t.Fatalf("MintAsset: unexpected err: %v", err)
	}
	if !strings.HasPrefix(r.TxHash, "0x") || len(r.TxHash) != 66 {
		t.Fatalf("MintAsset: want 32-byte tx hash, got %q", r.TxHash)
	}
	if r.TokenID == "" {
		t.Fatalf("MintAsset: empty token id")
	}
}

func TestMintAsset_NonceVariesHash(t *testing.T) {
	s := NewSimulatedSubmitter(0, 0)

	first, err := s.MintAsset(context.Background(), testOwner, testMeta())
	if err != nil {
		t.Fatalf("MintAsset: unexpected err: %v", err)
	}
	second, err := s.MintAsset(context.Background(), testOwner, testMeta())
	if err != nil {
		t.Fatalf("MintAsset: unexpected err: %v", err)
	}
	if first.TxHash == second.TxHash {
		t.Fatalf("MintAsset: repeated mints must produce distinct tx hashes")
	}
}

func TestMintAsset_InvalidOwner(t *testing.T) {
	s := NewSimulatedSubmitter(0, 0)
	if _, err := s.MintAsset(context.Background(), "not-an-address", testMeta()); err == nil {
		t.Fatalf("MintAsset: want error for invalid owner address")
	}
}

func TestMintAsset_FailureInjection(t *testing.T) {
	// Every 2nd call fails.
	s := NewSimulatedSubmitter(0, 2)

	if _, err := s.MintAsset(context.Background(), testOwner, testMeta()); err != nil {
		t.Fatalf("MintAsset call 1: unexpected err: %v", err)
	}
	if _, err := s.MintAsset(context.Background(), testOwner, testMeta()); err == nil {
		t.Fatalf("MintAsset call 2: want injected failure")
	}
	if _, err := s.MintAsset(context.Background(), testOwner, testMeta()); err != nil {
		t.Fatalf("MintAsset call 3: unexpected err: %v", err)
	}
}

func TestMintAsset_HonorsContext(t *testing.T) {
	s := NewSimulatedSubmitter(time.Second, 0)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	if _, err := s.MintAsset(ctx, testOwner, testMeta()); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("MintAsset: want DeadlineExceeded, got %v", err)
	}
}
