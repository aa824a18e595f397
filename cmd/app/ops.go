package main

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

func doLogin(ctx context.Context, cfg cliConfig, username, pin string, out any) error {
	if cfg.Transport == "uds" {
		client := newRPCClient(cfg.Socket)
		return client.call(ctx, "auth.login", map[string]any{"username": username, "pin": pin}, out)
	}
	client := newAPIClient(cfg.Server)
	return client.request(ctx, http.MethodPost, "/api/auth/login", map[string]any{"username": username, "pin": pin}, out)
}

func doItemsList(ctx context.Context, cfg cliConfig, out any) error {
	if cfg.Transport == "uds" {
		client := newRPCClient(cfg.Socket)
		return client.call(ctx, "items.list", map[string]any{}, out)
	}
	client := newAPIClient(cfg.Server)
	return client.request(ctx, http.MethodGet, "/api/items", nil, out)
}

func doItemsGet(ctx context.Context, cfg cliConfig, id int64, out any) error {
	if cfg.Transport == "uds" {
		client := newRPCClient(cfg.Socket)
		return client.call(ctx, "items.get", map[string]any{"id": id}, out)
	}
	client := newAPIClient(cfg.Server)
	return client.request(ctx, http.MethodGet, "/api/items/"+strconv.FormatInt(id, 10), nil, out)
}

func doItemsCreate(ctx context.Context, cfg cliConfig, fields map[string]any, out any) error {
	if cfg.Transport == "uds" {
		client := newRPCClient(cfg.Socket)
		return client.call(ctx, "items.create", fields, out)
	}
	client := newAPIClient(cfg.Server)
	return client.request(ctx, http.MethodPost, "/api/items", fields, out)
}

func doItemsUpdate(ctx context.Context, cfg cliConfig, id int64, fields map[string]any, out any) error {
	if cfg.Transport == "uds" {
		client := newRPCClient(cfg.Socket)
		payload := map[string]any{"id": id}
		for k, v := range fields {
			payload[k] = v
		}
		return client.call(ctx, "items.update", payload, out)
	}
	client := newAPIClient(cfg.Server)
	return client.request(ctx, http.MethodPut, "/api/items/"+strconv.FormatInt(id, 10), fields, out)
}

func doItemsDelete(ctx context.Context, cfg cliConfig, id int64, out any) error {
	if cfg.Transport == "uds" {
		client := newRPCClient(cfg.Socket)
		return client.call(ctx, "items.delete", map[string]any{"id": id}, out)
	}
	client := newAPIClient(cfg.Server)
	return client.request(ctx, http.MethodDelete, "/api/items/"+strconv.FormatInt(id, 10), nil, out)
}

func doItemsSearch(ctx context.Context, cfg cliConfig, query string, out any) error {
	if cfg.Transport == "uds" {
		client := newRPCClient(cfg.Socket)
		return client.call(ctx, "items.search", map[string]any{"query": query}, out)
	}
	client := newAPIClient(cfg.Server)
	return client.request(ctx, http.MethodGet, "/api/items/search/"+url.PathEscape(query), nil, out)
}

func doItemsByType(ctx context.Context, cfg cliConfig, itemType string, out any) error {
	if cfg.Transport == "uds" {
		client := newRPCClient(cfg.Socket)
		return client.call(ctx, "items.listByType", map[string]any{"type": itemType}, out)
	}
	client := newAPIClient(cfg.Server)
	return client.request(ctx, http.MethodGet, "/api/items/type/"+url.PathEscape(itemType), nil, out)
}

func doTypesList(ctx context.Context, cfg cliConfig, out any) error {
	if cfg.Transport == "uds" {
		client := newRPCClient(cfg.Socket)
		return client.call(ctx, "types.list", map[string]any{}, out)
	}
	client := newAPIClient(cfg.Server)
	return client.request(ctx, http.MethodGet, "/api/types", nil, out)
}

func doTypeNames(ctx context.Context, cfg cliConfig, out any) error {
	if cfg.Transport == "uds" {
		client := newRPCClient(cfg.Socket)
		return client.call(ctx, "types.names", map[string]any{}, out)
	}
	client := newAPIClient(cfg.Server)
	return client.request(ctx, http.MethodGet, "/api/items/types", nil, out)
}

func doTypesCreate(ctx context.Context, cfg cliConfig, name string, out any) error {
	if cfg.Transport == "uds" {
		client := newRPCClient(cfg.Socket)
		return client.call(ctx, "types.create", map[string]any{"name": name}, out)
	}
	client := newAPIClient(cfg.Server)
	return client.request(ctx, http.MethodPost, "/api/types", map[string]any{"name": name}, out)
}

func doTypesRename(ctx context.Context, cfg cliConfig, id int64, name string, out any) error {
	if cfg.Transport == "uds" {
		client := newRPCClient(cfg.Socket)
		return client.call(ctx, "types.rename", map[string]any{"id": id, "name": name}, out)
	}
	client := newAPIClient(cfg.Server)
	return client.request(ctx, http.MethodPut, "/api/types/"+strconv.FormatInt(id, 10), map[string]any{"name": name}, out)
}

func doTypesDelete(ctx context.Context, cfg cliConfig, id int64, out any) error {
	if cfg.Transport == "uds" {
		client := newRPCClient(cfg.Socket)
		return client.call(ctx, "types.delete", map[string]any{"id": id}, out)
	}
	client := newAPIClient(cfg.Server)
	return client.request(ctx, http.MethodDelete, "/api/types/"+strconv.FormatInt(id, 10), nil, out)
}
