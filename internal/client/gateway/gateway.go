package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/gallerykeeper/internal/common"
	"github.com/dmitrijs2005/gallerykeeper/internal/logging"
	"github.com/google/uuid"
)

// Procedure names a remote procedure exposed by the backend.
type Procedure string

const (
	ProcAdminAuth    Procedure = "admin-auth"
	ProcManagePhotos Procedure = "manage-photos"
	ProcUploadPhoto  Procedure = "upload-photo"
)

// Valid reports whether p is one of the known procedures.
func (p Procedure) Valid() bool {
	switch p {
	case ProcAdminAuth, ProcManagePhotos, ProcUploadPhoto:
		return true
	}
	return false
}

// Gateway invokes a remote procedure with a JSON-serializable payload and
// decodes the `data` part of the response into out. A nil out discards it.
type Gateway interface {
	Invoke(ctx context.Context, procedure Procedure, payload any, out any) error
}

const (
	functionsPath = "/functions/v1/"
	clientInfo    = common.AppName + "-go"

	RequestIDHeader = "X-Request-Id"
)

// envelope is the response body shape shared by all procedures.
type envelope struct {
	Data    json.RawMessage `json:"data"`
	Error   json.RawMessage `json:"error"`
	Message string          `json:"message"`
}

// HTTPGateway calls the backend's functions over HTTP. It holds no
// per-call state and is safe for concurrent use.
type HTTPGateway struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	log        logging.Logger
}

// Option configures an HTTPGateway.
type Option func(*HTTPGateway)

// WithHTTPClient replaces http.DefaultClient.
func WithHTTPClient(c *http.Client) Option {
	return func(g *HTTPGateway) { g.httpClient = c }
}

// WithLogger sets the logger used for per-call records.
func WithLogger(l logging.Logger) Option {
	return func(g *HTTPGateway) { g.log = l }
}

// NewHTTPGateway builds a gateway for the backend at baseURL. The API key is
// the project's public key; privileged keys are rejected (see CheckAPIKey).
func NewHTTPGateway(baseURL, apiKey string, opts ...Option) (*HTTPGateway, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("base url %q must be an absolute http(s) url", baseURL)
	}
	if err := CheckAPIKey(apiKey); err != nil {
		return nil, err
	}

	g := &HTTPGateway{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: http.DefaultClient,
		log:        logging.Nop(),
	}
	for _, o := range opts {
		o(g)
	}
	return g, nil
}

func (g *HTTPGateway) endpoint(p Procedure) string {
	return g.baseURL + functionsPath + string(p)
}

// Invoke posts payload as JSON to the procedure's endpoint and decodes the
// data member of the reply into out. Failures are returned as *Error, except
// a cancelled ctx, which is returned as is. Each call is attempted once.
func (g *HTTPGateway) Invoke(ctx context.Context, procedure Procedure, payload any, out any) error {
	if !procedure.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownProcedure, procedure)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode %s payload: %w", procedure, err)
	}

	requestID := uuid.NewString()
	log := g.log.With("procedure", string(procedure), "request_id", requestID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint(procedure), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build %s request: %w", procedure, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Client-Info", clientInfo)
	req.Header.Set(RequestIDHeader, requestID)
	if g.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+g.apiKey)
		req.Header.Set("apikey", g.apiKey)
	}

	log.Debug(ctx, "invoking remote procedure", "bytes", len(body))

	resp, err := g.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		log.Error(ctx, "remote procedure unreachable", "error", err)
		return &Error{Procedure: procedure, Message: err.Error(), Err: ErrUnavailable}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Procedure: procedure, Status: resp.StatusCode, Message: err.Error(), Err: ErrUnavailable}
	}

	if err := decodeResponse(procedure, resp.StatusCode, raw, out); err != nil {
		log.Error(ctx, "remote procedure failed", "status", resp.StatusCode, "error", err)
		return err
	}

	log.Debug(ctx, "remote procedure done", "status", resp.StatusCode)
	return nil
}

// decodeResponse turns a raw HTTP response into either the decoded data
// member or an *Error.
func decodeResponse(procedure Procedure, status int, raw []byte, out any) error {
	var env envelope
	jsonErr := json.Unmarshal(raw, &env)

	if status < 200 || status > 299 {
		var msg string
		if jsonErr == nil {
			msg = errorMessage(env.Error)
			if msg == "" {
				msg = env.Message
			}
		} else {
			msg = strings.TrimSpace(string(raw))
		}
		return &Error{Procedure: procedure, Status: status, Message: msg, Err: mapStatus(status)}
	}

	if jsonErr != nil {
		return &Error{Procedure: procedure, Status: status, Message: "malformed response", Err: ErrRemote}
	}

	if len(env.Error) > 0 && string(env.Error) != "null" {
		return &Error{Procedure: procedure, Status: status, Message: errorMessage(env.Error), Err: ErrRemote}
	}

	if out == nil || len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}

	if err := json.Unmarshal(env.Data, out); err != nil {
		return &Error{Procedure: procedure, Status: status, Message: "malformed response data", Err: ErrRemote}
	}
	return nil
}

// errorMessage reads the error member, which the backend sends either as a
// plain string or as an object with a message field.
func errorMessage(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	var obj struct {
		Message string `json:"message"`
		Code    string `json:"code"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil {
		if obj.Message != "" {
			return obj.Message
		}
		return obj.Code
	}
	return ""
}
