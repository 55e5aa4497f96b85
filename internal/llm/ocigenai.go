package llm

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"

	"genai-chat/internal/chat"
	app_errors "genai-chat/internal/errors"
	"genai-chat/internal/model"
)

const maxErrorBody = 64 << 10

// Provider defines the interface for interacting with the inference service.
type Provider interface {
	Chat(ctx context.Context, req *chat.Request) (*ChatResponse, error)
	ChatStream(ctx context.Context, req *chat.Request) (*EventStream, error)
	ApplyGuardrails(ctx context.Context, in model.GuardrailsInput) (*model.Findings, error)
}

// ChatResponse is a synchronous chat payload.
type ChatResponse struct {
	RequestID    string
	ModelID      string
	ModelVersion string
	Final        model.Final
}

// Options configures the OCI Generative AI provider.
type Options struct {
	Endpoint            string
	CompartmentID       string
	ModelID             string
	ServingType         string
	DedicatedEndpointID string
	ConnectTimeout      time.Duration
	ReadTimeout         time.Duration
	Signer              RequestSigner
}

type ociProvider struct {
	client *http.Client
	opts   Options
}

func NewOCIProvider(opts Options) Provider {
	if opts.ServingType == "" {
		opts.ServingType = ServingOnDemand
	}
	if opts.Signer == nil {
		opts.Signer = NopSigner{}
	}
	opts.Endpoint = strings.TrimRight(opts.Endpoint, "/")

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if opts.ConnectTimeout > 0 {
		transport.DialContext = (&net.Dialer{Timeout: opts.ConnectTimeout, KeepAlive: 30 * time.Second}).DialContext
		transport.TLSHandshakeTimeout = opts.ConnectTimeout
	}
	transport.ResponseHeaderTimeout = opts.ReadTimeout

	return &ociProvider{
		client: &http.Client{Transport: transport},
		opts:   opts,
	}
}

type requestIDKey struct{}

// WithRequestID makes the next call on ctx use id as its opc-request-id.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func requestIDFrom(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok && id != "" {
		return id
	}
	return uuid.NewString()
}

func (p *ociProvider) servingMode() servingMode {
	if p.opts.ServingType == ServingDedicated {
		return servingMode{ServingType: ServingDedicated, EndpointID: p.opts.DedicatedEndpointID}
	}
	return servingMode{ServingType: ServingOnDemand, ModelID: p.opts.ModelID}
}

func (p *ociProvider) chatDetails(req *chat.Request, stream bool) chatDetails {
	cr := toCohereRequest(req)
	cr.IsStream = stream
	return chatDetails{
		CompartmentID: p.opts.CompartmentID,
		ServingMode:   p.servingMode(),
		ChatRequest:   cr,
	}
}

func (p *ociProvider) Chat(ctx context.Context, req *chat.Request) (*ChatResponse, error) {
	resp, requestID, err := p.post(ctx, "chat", p.chatDetails(req, false), "application/json")
	if err != nil {
		return nil, err
	}
	body := newIdleTimeoutReader(resp.Body, p.opts.ReadTimeout)
	defer body.Close()

	bodyBytes, err := io.ReadAll(body)
	if err != nil {
		return nil, classifyError(err)
	}
	var result chatResult
	if err := sonic.Unmarshal(bodyBytes, &result); err != nil {
		return nil, fmt.Errorf("%w: could not decode chat response: %v", app_errors.ErrProtocolViolation, err)
	}
	if result.ChatResponse.FinishReason == nil && result.ChatResponse.Text == nil {
		return nil, fmt.Errorf("%w: chat response carries neither text nor finish reason", app_errors.ErrProtocolViolation)
	}

	return &ChatResponse{
		RequestID:    requestID,
		ModelID:      result.ModelID,
		ModelVersion: result.ModelVersion,
		Final:        result.ChatResponse.toFinal(),
	}, nil
}

// ChatStream starts a streaming chat. The caller owns the returned stream
// and must close it.
func (p *ociProvider) ChatStream(ctx context.Context, req *chat.Request) (*EventStream, error) {
	resp, requestID, err := p.post(ctx, "chat", p.chatDetails(req, true), "text/event-stream")
	if err != nil {
		return nil, err
	}
	if ct := resp.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "text/event-stream") {
		slog.Debug("Streaming chat answered with unexpected content type", "content_type", ct, "request_id", requestID)
	}
	return NewEventStream(newIdleTimeoutReader(resp.Body, p.opts.ReadTimeout), requestID), nil
}

func (p *ociProvider) ApplyGuardrails(ctx context.Context, in model.GuardrailsInput) (*model.Findings, error) {
	details := applyGuardrailsDetails{
		Input: guardrailsTextInput{
			Type:         "TEXT",
			Content:      in.Text,
			LanguageCode: in.LanguageCode,
		},
		CompartmentID: p.opts.CompartmentID,
	}
	// PII detection always runs; no types means every category.
	details.GuardrailConfigs.PII = &piiConfig{Types: in.PIITypes}
	if in.ContentModeration {
		details.GuardrailConfigs.ContentModeration = &contentModerationConfig{}
	}
	if in.PromptInjection {
		details.GuardrailConfigs.PromptInjection = &promptInjectionConfig{}
	}

	resp, requestID, err := p.post(ctx, "applyGuardrails", details, "application/json")
	if err != nil {
		return nil, err
	}
	body := newIdleTimeoutReader(resp.Body, p.opts.ReadTimeout)
	defer body.Close()

	bodyBytes, err := io.ReadAll(body)
	if err != nil {
		return nil, classifyError(err)
	}
	var result guardrailsResult
	if err := sonic.Unmarshal(bodyBytes, &result); err != nil {
		return nil, fmt.Errorf("%w: could not decode guardrails response: %v", app_errors.ErrProtocolViolation, err)
	}

	findings := &model.Findings{RequestID: requestID, PII: []model.PIIFinding{}}
	for _, pii := range result.Results.PersonallyIdentifiableInformation {
		findings.PII = append(findings.PII, model.PIIFinding{
			Label:  pii.Label,
			Text:   pii.Text,
			Offset: pii.Offset,
			Length: pii.Length,
			Score:  pii.Score,
		})
	}
	if cm := result.Results.ContentModeration; cm != nil {
		for _, c := range cm.Categories {
			findings.ContentModeration = append(findings.ContentModeration, model.CategoryScore{Name: c.Name, Score: c.Score})
		}
	}
	if pi := result.Results.PromptInjection; pi != nil {
		score := pi.Score
		findings.PromptInjection = &score
	}
	return findings, nil
}

// post signs and sends one action call. A non-2xx answer is returned as a
// *errors.RemoteError with the body already consumed.
func (p *ociProvider) post(ctx context.Context, action string, payload any, accept string) (*http.Response, string, error) {
	body, err := sonic.Marshal(payload)
	if err != nil {
		return nil, "", fmt.Errorf("could not marshal request: %w", err)
	}

	requestID := requestIDFrom(ctx)
	endpoint := fmt.Sprintf("%s/%s/actions/%s", p.opts.Endpoint, apiVersion, action)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, "", fmt.Errorf("could not create http request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", accept)
	httpReq.Header.Set("Date", time.Now().UTC().Format(http.TimeFormat))
	httpReq.Header.Set("opc-request-id", requestID)
	if err := p.opts.Signer.Sign(httpReq); err != nil {
		return nil, "", fmt.Errorf("%w: could not sign request: %w", app_errors.ErrTransport, err)
	}

	slog.Debug("Calling inference service", "action", action, "request_id", requestID, "serving_type", p.opts.ServingType)
	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, "", classifyError(err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		return nil, "", remoteError(resp, requestID)
	}
	return resp, requestID, nil
}

func remoteError(resp *http.Response, requestID string) error {
	bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	rerr := &app_errors.RemoteError{StatusCode: resp.StatusCode, RequestID: requestID}
	if id := resp.Header.Get("opc-request-id"); id != "" {
		rerr.RequestID = id
	}
	var se serviceError
	if err := sonic.Unmarshal(bodyBytes, &se); err == nil && (se.Code != "" || se.Message != "") {
		rerr.Code = se.Code
		rerr.Message = se.Message
	} else {
		rerr.Message = strings.TrimSpace(string(bodyBytes))
	}
	return rerr
}

// classifyError sorts transport failures into timeouts and everything else.
func classifyError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, app_errors.ErrTimeout) || errors.Is(err, app_errors.ErrTransport) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", app_errors.ErrTimeout, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %w", app_errors.ErrTimeout, err)
	}
	return fmt.Errorf("%w: %w", app_errors.ErrTransport, err)
}
