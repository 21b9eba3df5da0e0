// Package angstrom fetches and packs Angstrom hook attestations for
// Uniswap V4 pools that route through the Angstrom hook. Adapted from the
// teacher's http.Client wrapper (bytes.NewReader body, json.Decoder
// response, explicit status-code check) into a context-aware JSON client,
// since the teacher's client never needed a cancelable blocking call.
package angstrom

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/tycho-go/router-encoding/tychoerr"
)

const (
	defaultAPIURL        = "https://attestations.angstrom.xyz/getAttestations"
	defaultBlocksInFuture = 1

	// attestationByteLen is the fixed wire size of one packed attestation:
	// an 8-byte block number followed by 85 bytes of unlock data.
	attestationByteLen = 93
	unlockDataByteLen   = 85
)

// Attestation is one Angstrom hook unlock attestation for a future block.
type Attestation struct {
	BlockNumber uint64
	UnlockData  []byte
}

// Client fetches attestations from the Angstrom attestation API.
type Client struct {
	httpClient     *http.Client
	apiURL         string
	apiKey         string
	blocksInFuture uint64
}

// NewClientFromEnv builds a Client from ANGSTROM_API_URL (default
// defaultAPIURL), ANGSTROM_API_KEY (required), and
// ANGSTROM_BLOCKS_IN_FUTURE (default defaultBlocksInFuture).
func NewClientFromEnv() (*Client, error) {
	apiKey := os.Getenv("ANGSTROM_API_KEY")
	if apiKey == "" {
		return nil, tychoerr.Fatalf("ANGSTROM_API_KEY must be set to fetch Angstrom attestations")
	}

	apiURL := os.Getenv("ANGSTROM_API_URL")
	if apiURL == "" {
		apiURL = defaultAPIURL
	}

	blocksInFuture := uint64(defaultBlocksInFuture)
	if raw := os.Getenv("ANGSTROM_BLOCKS_IN_FUTURE"); raw != "" {
		n, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return nil, tychoerr.WrapFatal(err, "invalid ANGSTROM_BLOCKS_IN_FUTURE %q", raw)
		}
		blocksInFuture = n
	}

	return &Client{
		httpClient:     &http.Client{Timeout: 10 * time.Second},
		apiURL:         apiURL,
		apiKey:         apiKey,
		blocksInFuture: blocksInFuture,
	}, nil
}

type attestationsRequest struct {
	BlocksInFuture uint64 `json:"blocks_in_future"`
}

type attestationDTO struct {
	BlockNumber uint64 `json:"blockNumber"`
	UnlockData  string `json:"unlockData"`
}

type attestationsResponse struct {
	Success       bool             `json:"success"`
	Attestations  []attestationDTO `json:"attestations"`
}

// FetchAttestations performs a blocking POST to the attestation API and
// returns the parsed, validated attestation list.
func (c *Client) FetchAttestations(ctx context.Context) ([]Attestation, error) {
	body, err := json.Marshal(attestationsRequest{BlocksInFuture: c.blocksInFuture})
	if err != nil {
		return nil, tychoerr.WrapFatal(err, "failed to marshal angstrom attestation request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		return nil, tychoerr.WrapFatal(err, "failed to build angstrom attestation request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Api-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, tychoerr.WrapRecoverable(ctx.Err(), "angstrom attestation fetch canceled")
		}
		return nil, tychoerr.WrapRecoverable(err, "angstrom attestation fetch failed")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, tychoerr.WrapRecoverable(err, "failed to read angstrom attestation response")
	}
	if resp.StatusCode >= 400 {
		return nil, tychoerr.Recoverablef("angstrom attestation API returned status %d: %s", resp.StatusCode, string(raw))
	}

	var parsed attestationsResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, tychoerr.WrapFatal(err, "failed to decode angstrom attestation response")
	}
	if !parsed.Success {
		return nil, tychoerr.Fatalf("angstrom attestation API reported failure")
	}

	out := make([]Attestation, 0, len(parsed.Attestations))
	for _, a := range parsed.Attestations {
		unlock, err := hex.DecodeString(strings.TrimPrefix(a.UnlockData, "0x"))
		if err != nil {
			return nil, tychoerr.WrapFatal(err, "invalid unlockData hex for block %d", a.BlockNumber)
		}
		if len(unlock) != unlockDataByteLen {
			return nil, tychoerr.Fatalf("angstrom unlockData for block %d has %d bytes, want %d", a.BlockNumber, len(unlock), unlockDataByteLen)
		}
		out = append(out, Attestation{BlockNumber: a.BlockNumber, UnlockData: unlock})
	}
	return out, nil
}

// Encode packs attestations as block_number(8 BE bytes) ++ unlock_data(85
// bytes), concatenated in order.
func Encode(attestations []Attestation) []byte {
	out := make([]byte, 0, len(attestations)*attestationByteLen)
	for _, a := range attestations {
		var blockNum [8]byte
		for i := 7; i >= 0; i-- {
			blockNum[i] = byte(a.BlockNumber)
			a.BlockNumber >>= 8
		}
		out = append(out, blockNum[:]...)
		out = append(out, a.UnlockData...)
	}
	return out
}
