package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"sync/atomic"
	"time"
)

const rpcDialTimeout = 5 * time.Second

// rpcClient speaks JSON-RPC 2.0 to the serve process over its unix
// socket, one connection per call.
type rpcClient struct {
	socket string
	lastID atomic.Int64
}

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	Method  string `json:"method"`
	Params  any    `json:"params"`
	ID      int64  `json:"id"`
}

type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	Result  json.RawMessage `json:"result"`
	Error   *rpcRespError   `json:"error"`
	ID      json.Number     `json:"id"`
}

type rpcRespError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func newRPCClient(socket string) *rpcClient {
	return &rpcClient{socket: socket}
}

func (c *rpcClient) call(ctx context.Context, method string, params any, out any) error {
	dialer := net.Dialer{Timeout: rpcDialTimeout}
	conn, err := dialer.DialContext(ctx, "unix", c.socket)
	if err != nil {
		return fmt.Errorf("%s: is the byteful server running? %w", method, err)
	}
	defer func() { _ = conn.Close() }()

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	id := c.lastID.Add(1)
	req := rpcRequest{JSONRPC: "2.0", Method: method, Params: params, ID: id}
	if err := json.NewEncoder(conn).Encode(req); err != nil {
		return fmt.Errorf("%s: %w", method, err)
	}

	var resp rpcResponse
	if err := json.NewDecoder(conn).Decode(&resp); err != nil {
		return fmt.Errorf("%s: %w", method, err)
	}
	if resp.Error != nil {
		return fmt.Errorf("%s: rpc error (%d): %s", method, resp.Error.Code, resp.Error.Message)
	}
	if got, err := resp.ID.Int64(); err != nil || got != id {
		return fmt.Errorf("%s: response id %q does not match request id %d", method, resp.ID, id)
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(resp.Result, out)
}
