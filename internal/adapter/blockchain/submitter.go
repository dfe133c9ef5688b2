package blockchain

import (
	"context"
	"encoding/binary"
	"fmt"
	"strconv"
	"sync/atomic"
	"time"

	"oqassets-backend/internal/domain/asset"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// SimulatedSubmitter stands in for the chain gateway: it derives tx hash and
// token id the way the contract would, with an optional deterministic failure
// injection so callers' error paths stay exercised.
type SimulatedSubmitter struct {
	latency time.Duration
	// failEvery > 0 makes every Nth mint fail.
	failEvery uint64
	calls     atomic.Uint64
}

func NewSimulatedSubmitter(latency time.Duration, failEvery uint64) *SimulatedSubmitter {
	return &SimulatedSubmitter{latency: latency, failEvery: failEvery}
}

func (s *SimulatedSubmitter) MintAsset(ctx context.Context, ownerAddress string, meta asset.MintMetadata) (*asset.MintReceipt, error) {
	if !common.IsHexAddress(ownerAddress) {
		return nil, fmt.Errorf("invalid owner address %q", ownerAddress)
	}
	if s.latency > 0 {
		t := time.NewTimer(s.latency)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-t.C:
		}
	}

	n := s.calls.Add(1)
	if s.failEvery > 0 && n%s.failEvery == 0 {
		return nil, fmt.Errorf("chain rejected mint submission (nonce %d)", n)
	}

	var nonce [8]byte
	binary.BigEndian.PutUint64(nonce[:], n)
	h := crypto.Keccak256Hash(
		common.HexToAddress(ownerAddress).Bytes(),
		[]byte(meta.DocHash),
		[]byte(meta.Valuation.String()),
		[]byte(meta.AssetType),
		nonce[:],
	)
	tokenID := binary.BigEndian.Uint64(h.Bytes()[:8])

	return &asset.MintReceipt{
		TxHash:  h.Hex(),
		TokenID: strconv.FormatUint(tokenID, 10),
	}, nil
}
