// Package zabbix implements a minimal JSON-RPC 2.0 client for the Zabbix API,
// covering the subset of methods used by the sync service. Read calls are cached
// with short TTLs to keep the load on the monitoring server down.
package zabbix

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	cache "github.com/go-pkgz/expirable-cache/v3"
	log "github.com/go-pkgz/lgr"
)

// cache TTLs per method, matching how volatile each data set is
const (
	hostsCacheTTL    = time.Minute
	groupsCacheTTL   = 5 * time.Minute
	itemsCacheTTL    = 2 * time.Minute
	triggersCacheTTL = time.Minute
	problemsCacheTTL = 30 * time.Second
	eventsCacheTTL   = 15 * time.Second
)

// Client talks to a single Zabbix server. Safe for concurrent use.
// Zero value is not usable, make it with NewClient.
type Client struct {
	url     string
	user    string
	passwd  string
	httpCli *http.Client

	authMu sync.Mutex
	auth   string

	reqID atomic.Int64
	cache cache.Cache[string, json.RawMessage]
}

// Params holds connection parameters for the Zabbix API
type Params struct {
	URL      string // full api endpoint, i.e. http://10.0.0.1/zabbix/api_jsonrpc.php
	User     string
	Password string
	Timeout  time.Duration
	Client   *http.Client // optional, used instead of the default client if set
}

// APIError is a error response from the Zabbix server
type APIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    string `json:"data"`
}

// Error returns string representation of the error
func (e *APIError) Error() string {
	if e.Data == "" {
		return fmt.Sprintf("zabbix api error %d: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("zabbix api error %d: %s (%s)", e.Code, e.Message, e.Data)
}

type request struct {
	JSONRPC string `json:"jsonrpc"`
	Method  string `json:"method"`
	Params  any    `json:"params"`
	Auth    string `json:"auth,omitempty"`
	ID      int64  `json:"id"`
}

type response struct {
	JSONRPC string          `json:"jsonrpc"`
	Result  json.RawMessage `json:"result"`
	Error   *APIError       `json:"error"`
	ID      int64           `json:"id"`
}

// NewClient makes a client for the given server. No connection made here,
// Login has to be called before any authenticated request.
func NewClient(p Params) *Client {
	if p.Timeout == 0 {
		p.Timeout = 30 * time.Second
	}
	httpCli := p.Client
	if httpCli == nil {
		httpCli = &http.Client{Timeout: p.Timeout}
	}
	return &Client{
		url:     p.URL,
		user:    p.User,
		passwd:  p.Password,
		httpCli: httpCli,
		cache:   cache.NewCache[string, json.RawMessage]().WithMaxKeys(1000),
	}
}

// Login authenticates and keeps the token for the following calls
func (c *Client) Login(ctx context.Context) error {
	params := map[string]string{"username": c.user, "password": c.passwd}
	res, err := c.call(ctx, "user.login", params, false)
	if err != nil {
		return fmt.Errorf("login to %s failed: %w", c.url, err)
	}
	var token string
	if err := json.Unmarshal(res, &token); err != nil {
		return fmt.Errorf("can't decode auth token: %w", err)
	}
	c.authMu.Lock()
	c.auth = token
	c.authMu.Unlock()
	log.Printf("[INFO] logged in to zabbix api at %s", c.url)
	return nil
}

// Logout invalidates the token on the server side
func (c *Client) Logout(ctx context.Context) error {
	c.authMu.Lock()
	token := c.auth
	c.auth = ""
	c.authMu.Unlock()
	if token == "" {
		return nil
	}
	if _, err := c.call(ctx, "user.logout", []string{}, true); err != nil {
		return fmt.Errorf("logout failed: %w", err)
	}
	return nil
}

// Version returns the api version, the only method callable without auth
func (c *Client) Version(ctx context.Context) (string, error) {
	res, err := c.call(ctx, "apiinfo.version", []string{}, false)
	if err != nil {
		return "", fmt.Errorf("can't get api version: %w", err)
	}
	var ver string
	if err := json.Unmarshal(res, &ver); err != nil {
		return "", fmt.Errorf("can't decode api version: %w", err)
	}
	return ver, nil
}

// HostGet returns hosts matching the params, with interfaces resolved
func (c *Client) HostGet(ctx context.Context, params HostGetParams) ([]Host, error) {
	if len(params.Output) == 0 {
		params.Output = []string{"hostid", "host", "name", "status", "description"}
	}
	if len(params.SelectInterfaces) == 0 {
		params.SelectInterfaces = []string{"interfaceid", "ip", "dns", "port", "type"}
	}
	var hosts []Host
	if err := c.cachedCall(ctx, "host.get", params, hostsCacheTTL, &hosts); err != nil {
		return nil, fmt.Errorf("can't get hosts: %w", err)
	}
	return hosts, nil
}

// HostCreate makes a new host and returns its id
func (c *Client) HostCreate(ctx context.Context, host HostCreateParams) (string, error) {
	res, err := c.call(ctx, "host.create", host, true)
	if err != nil {
		return "", fmt.Errorf("can't create host %q: %w", host.Host, err)
	}
	var ids hostIDs
	if err := json.Unmarshal(res, &ids); err != nil {
		return "", fmt.Errorf("can't decode host.create response: %w", err)
	}
	if len(ids.HostIDs) == 0 {
		return "", fmt.Errorf("host.create for %q returned no ids", host.Host)
	}
	c.invalidate("host.get")
	return ids.HostIDs[0], nil
}

// HostUpdate updates an existing host, the id has to be set in params
func (c *Client) HostUpdate(ctx context.Context, host HostUpdateParams) error {
	if host.HostID == "" {
		return fmt.Errorf("host update requires hostid")
	}
	if _, err := c.call(ctx, "host.update", host, true); err != nil {
		return fmt.Errorf("can't update host %s: %w", host.HostID, err)
	}
	c.invalidate("host.get")
	return nil
}

// HostDelete removes hosts by ids
func (c *Client) HostDelete(ctx context.Context, hostIDs ...string) error {
	if _, err := c.call(ctx, "host.delete", hostIDs, true); err != nil {
		return fmt.Errorf("can't delete hosts %v: %w", hostIDs, err)
	}
	c.invalidate("host.get")
	return nil
}

// HostGroupGet returns groups, optionally filtered by exact name
func (c *Client) HostGroupGet(ctx context.Context, name string) ([]HostGroup, error) {
	params := map[string]any{"output": []string{"groupid", "name"}}
	if name != "" {
		params["filter"] = map[string][]string{"name": {name}}
	}
	var groups []HostGroup
	if err := c.cachedCall(ctx, "hostgroup.get", params, groupsCacheTTL, &groups); err != nil {
		return nil, fmt.Errorf("can't get host groups: %w", err)
	}
	return groups, nil
}

// HostGroupCreate makes a new host group and returns its id
func (c *Client) HostGroupCreate(ctx context.Context, name string) (string, error) {
	res, err := c.call(ctx, "hostgroup.create", map[string]string{"name": name}, true)
	if err != nil {
		return "", fmt.Errorf("can't create host group %q: %w", name, err)
	}
	var ids groupIDs
	if err := json.Unmarshal(res, &ids); err != nil {
		return "", fmt.Errorf("can't decode hostgroup.create response: %w", err)
	}
	if len(ids.GroupIDs) == 0 {
		return "", fmt.Errorf("hostgroup.create for %q returned no ids", name)
	}
	c.invalidate("hostgroup.get")
	return ids.GroupIDs[0], nil
}

// TemplateGet returns templates matching the exact technical name
func (c *Client) TemplateGet(ctx context.Context, name string) ([]Template, error) {
	params := map[string]any{
		"output": []string{"templateid", "host", "name"},
		"filter": map[string][]string{"host": {name}},
	}
	var templates []Template
	if err := c.cachedCall(ctx, "template.get", params, groupsCacheTTL, &templates); err != nil {
		return nil, fmt.Errorf("can't get template %q: %w", name, err)
	}
	return templates, nil
}

// ItemGet returns items (metrics) for the given hosts
func (c *Client) ItemGet(ctx context.Context, params ItemGetParams) ([]Item, error) {
	if len(params.Output) == 0 {
		params.Output = []string{"itemid", "hostid", "name", "key_", "value_type", "lastvalue", "lastclock", "units"}
	}
	params.Monitored = true
	var items []Item
	if err := c.cachedCall(ctx, "item.get", params, itemsCacheTTL, &items); err != nil {
		return nil, fmt.Errorf("can't get items: %w", err)
	}
	return items, nil
}

// TriggerGet returns triggers for the given hosts
func (c *Client) TriggerGet(ctx context.Context, params TriggerGetParams) ([]Trigger, error) {
	if len(params.Output) == 0 {
		params.Output = []string{"triggerid", "description", "status", "priority", "value", "lastchange"}
	}
	params.Monitored = true
	params.SkipDependent = true
	var triggers []Trigger
	if err := c.cachedCall(ctx, "trigger.get", params, triggersCacheTTL, &triggers); err != nil {
		return nil, fmt.Errorf("can't get triggers: %w", err)
	}
	return triggers, nil
}

// ProblemGet returns current problems, most recent first
func (c *Client) ProblemGet(ctx context.Context, params ProblemGetParams) ([]Problem, error) {
	params.Output = "extend"
	params.Recent = "true"
	params.SortField = []string{"eventid"}
	params.SortOrder = "DESC"
	var problems []Problem
	if err := c.cachedCall(ctx, "problem.get", params, problemsCacheTTL, &problems); err != nil {
		return nil, fmt.Errorf("can't get problems: %w", err)
	}
	return problems, nil
}

// EventGet returns recent events, most recent first
func (c *Client) EventGet(ctx context.Context, limit int) ([]Event, error) {
	params := map[string]any{
		"output":    "extend",
		"sortfield": []string{"clock"},
		"sortorder": "DESC",
		"limit":     limit,
	}
	var events []Event
	if err := c.cachedCall(ctx, "event.get", params, eventsCacheTTL, &events); err != nil {
		return nil, fmt.Errorf("can't get events: %w", err)
	}
	return events, nil
}

// EventAcknowledge acks the problem event with a message.
// Action 6 is "add message and acknowledge" in zabbix terms.
func (c *Client) EventAcknowledge(ctx context.Context, eventID, message, user string) error {
	params := map[string]any{
		"eventids": eventID,
		"action":   6,
		"message":  fmt.Sprintf("Acknowledged by %s: %s", user, message),
	}
	if _, err := c.call(ctx, "event.acknowledge", params, true); err != nil {
		return fmt.Errorf("can't acknowledge event %s: %w", eventID, err)
	}
	c.invalidate("problem.get")
	log.Printf("[INFO] event %s acknowledged by %s", eventID, user)
	return nil
}

// HistoryGet returns history entries for the given item, oldest first
func (c *Client) HistoryGet(ctx context.Context, params HistoryGetParams) ([]HistoryEntry, error) {
	if params.SortField == "" {
		params.SortField = "clock"
	}
	if params.SortOrder == "" {
		params.SortOrder = "ASC"
	}
	var history []HistoryEntry
	res, err := c.call(ctx, "history.get", params, true)
	if err != nil {
		return nil, fmt.Errorf("can't get history: %w", err)
	}
	if err := json.Unmarshal(res, &history); err != nil {
		return nil, fmt.Errorf("can't decode history: %w", err)
	}
	return history, nil
}

// cachedCall runs an authenticated call with caching by method+params
func (c *Client) cachedCall(ctx context.Context, method string, params any, ttl time.Duration, dest any) error {
	key, err := cacheKey(method, params)
	if err != nil {
		return err
	}
	if raw, ok := c.cache.Get(key); ok {
		return json.Unmarshal(raw, dest)
	}
	raw, err := c.call(ctx, method, params, true)
	if err != nil {
		return err
	}
	c.cache.Set(key, raw, ttl)
	return json.Unmarshal(raw, dest)
}

// call runs a single json-rpc request. On "not authorised" error with auth
// enabled it re-logins once and retries, covering expired tokens.
func (c *Client) call(ctx context.Context, method string, params any, withAuth bool) (json.RawMessage, error) {
	res, err := c.callOnce(ctx, method, params, withAuth)
	if err == nil || !withAuth || !isAuthError(err) {
		return res, err
	}
	log.Printf("[DEBUG] auth expired on %s, re-login", method)
	if e := c.Login(ctx); e != nil {
		return nil, e
	}
	return c.callOnce(ctx, method, params, withAuth)
}

func (c *Client) callOnce(ctx context.Context, method string, params any, withAuth bool) (json.RawMessage, error) {
	req := request{JSONRPC: "2.0", Method: method, Params: params, ID: c.reqID.Add(1)}
	if withAuth {
		c.authMu.Lock()
		req.Auth = c.auth
		c.authMu.Unlock()
		if req.Auth == "" {
			if err := c.Login(ctx); err != nil {
				return nil, err
			}
			c.authMu.Lock()
			req.Auth = c.auth
			c.authMu.Unlock()
		}
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("can't marshal request for %s: %w", method, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("can't make request for %s: %w", method, err)
	}
	httpReq.Header.Set("Content-Type", "application/json-rpc")

	httpResp, err := c.httpCli.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request %s failed: %w", method, err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, httpResp.Body)
		_ = httpResp.Body.Close()
	}()

	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("request %s failed with status %s", method, httpResp.Status)
	}

	var resp response
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return nil, fmt.Errorf("can't decode response for %s: %w", method, err)
	}
	if resp.Error != nil {
		return nil, resp.Error
	}
	return resp.Result, nil
}

// invalidate drops all cache entries for the method
func (c *Client) invalidate(method string) {
	for _, key := range c.cache.Keys() {
		if len(key) > len(method) && key[:len(method)] == method {
			c.cache.Invalidate(key)
		}
	}
}

func cacheKey(method string, params any) (string, error) {
	data, err := json.Marshal(params)
	if err != nil {
		return "", fmt.Errorf("can't marshal params for cache key: %w", err)
	}
	h := sha256.Sum256(data)
	return method + ":" + hex.EncodeToString(h[:8]), nil
}

func isAuthError(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	// -32602 with "re-login" data or -32500 "not authorised" depending on version
	return apiErr.Code == -32602 || apiErr.Code == -32500
}
