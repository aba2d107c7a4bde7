package tron

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sweeplabs/sweepd/internal/core/domain"
)

const apiKeyHeader = "TRON-PRO-API-KEY"

// Service talks to a Tron full node over its HTTP API. It implements
// ports.LedgerService.
type Service struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewService(nodeURL, apiKey string) *Service {
	return &Service{
		baseURL: strings.TrimRight(nodeURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type accountResponse struct {
	Balance          int64 `json:"balance"`
	ActivePermission []struct {
		ID             int32  `json:"id"`
		PermissionName string `json:"permission_name"`
		Keys           []struct {
			Address string `json:"address"`
			Weight  int64  `json:"weight"`
		} `json:"keys"`
	} `json:"active_permission"`
}

func (s *Service) GetAccount(ctx context.Context, address string) (*domain.AccountSnapshot, error) {
	var resp accountResponse
	body := map[string]any{"address": address, "visible": true}
	if err := s.post(ctx, "/wallet/getaccount", body, &resp); err != nil {
		return nil, fmt.Errorf("get account %s: %w", address, err)
	}

	// An account the chain has never seen comes back as an empty
	// object, equivalent to a zero balance with no permissions.
	snapshot := &domain.AccountSnapshot{
		Address:    address,
		BalanceSun: resp.Balance,
	}
	for _, perm := range resp.ActivePermission {
		keys := make([]domain.PermissionKey, 0, len(perm.Keys))
		for _, key := range perm.Keys {
			keys = append(keys, domain.PermissionKey{Address: key.Address, Weight: key.Weight})
		}
		snapshot.ActivePermissions = append(snapshot.ActivePermissions, domain.Permission{
			ID:   perm.ID,
			Name: perm.PermissionName,
			Keys: keys,
		})
	}
	return snapshot, nil
}

type nowBlockResponse struct {
	BlockID     string `json:"blockID"`
	BlockHeader struct {
		RawData struct {
			Number    int64 `json:"number"`
			Timestamp int64 `json:"timestamp"`
		} `json:"raw_data"`
	} `json:"block_header"`
}

func (s *Service) GetNowBlock(ctx context.Context) (*domain.BlockRef, error) {
	var resp nowBlockResponse
	if err := s.post(ctx, "/wallet/getnowblock", map[string]any{}, &resp); err != nil {
		return nil, fmt.Errorf("get now block: %w", err)
	}
	if resp.BlockID == "" {
		return nil, fmt.Errorf("node returned block without id")
	}
	return &domain.BlockRef{
		ID:        resp.BlockID,
		Number:    resp.BlockHeader.RawData.Number,
		Timestamp: resp.BlockHeader.RawData.Timestamp,
	}, nil
}

type createTransactionResponse struct {
	TxID       string `json:"txID"`
	RawDataHex string `json:"raw_data_hex"`
	Error      string `json:"Error"`
}

func (s *Service) CreateTransfer(
	ctx context.Context, from, to string, amountSun int64, permissionID int32,
) (*domain.UnsignedTx, error) {
	body := map[string]any{
		"owner_address": from,
		"to_address":    to,
		"amount":        amountSun,
		"visible":       true,
		"Permission_id": permissionID,
	}

	var raw json.RawMessage
	if err := s.post(ctx, "/wallet/createtransaction", body, &raw); err != nil {
		return nil, fmt.Errorf("create transfer: %w", err)
	}

	var resp createTransactionResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("parse create transfer response: %w", err)
	}
	if resp.Error != "" {
		return nil, fmt.Errorf("create transfer rejected: %s", resp.Error)
	}
	if resp.TxID == "" {
		return nil, fmt.Errorf("create transfer response missing txID")
	}

	return &domain.UnsignedTx{
		TxID:       resp.TxID,
		RawDataHex: resp.RawDataHex,
		Payload:    raw,
	}, nil
}

type broadcastResponse struct {
	Result  bool   `json:"result"`
	TxID    string `json:"txid"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *Service) Broadcast(ctx context.Context, tx *domain.SignedTx) (*domain.BroadcastResult, error) {
	// Keep the node's payload fields as raw JSON so large numbers are
	// not round-tripped through float64.
	var body map[string]json.RawMessage
	if err := json.Unmarshal(tx.Payload, &body); err != nil {
		return nil, fmt.Errorf("rebuild transaction payload: %w", err)
	}
	signature, err := json.Marshal([]string{tx.SignatureHex})
	if err != nil {
		return nil, fmt.Errorf("encode signature: %w", err)
	}
	body["signature"] = signature

	var resp broadcastResponse
	if err := s.post(ctx, "/wallet/broadcasttransaction", body, &resp); err != nil {
		return nil, fmt.Errorf("broadcast: %w", err)
	}

	return &domain.BroadcastResult{
		Accepted: resp.Result,
		TxID:     resp.TxID,
		Code:     resp.Code,
		Message:  decodeNodeMessage(resp.Message),
	}, nil
}

func (s *Service) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, s.baseURL+path, bytes.NewReader(payload),
	)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set(apiKeyHeader, s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}

	if err := json.Unmarshal(b, out); err != nil {
		return fmt.Errorf("parse response: %w", err)
	}
	return nil
}

// decodeNodeMessage turns the hex-encoded error message full nodes
// return into readable text, passing it through untouched when it is
// not hex.
func decodeNodeMessage(message string) string {
	if message == "" {
		return ""
	}
	decoded, err := hex.DecodeString(message)
	if err != nil {
		return message
	}
	return string(decoded)
}
