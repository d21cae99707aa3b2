package rdkit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sony/gobreaker"

	"github.com/turtacn/molforge/internal/domain/molecule"
	"github.com/turtacn/molforge/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/molforge/pkg/errors"
)

const (
	structuresPath = "/v1/structures"
	healthPath     = "/healthz"

	// maxResponseBytes bounds a sidecar response. PDB blocks of drug-like
	// molecules are a few hundred kilobytes at most.
	maxResponseBytes = 16 << 20
)

// HTTPProvider calls an RDKit sidecar over HTTP. Transport errors and 5xx
// responses are retried with exponential backoff, and a circuit breaker stops
// calls while the sidecar keeps failing.
type HTTPProvider struct {
	endpoint string
	client   *http.Client
	breaker  *gobreaker.CircuitBreaker
	cfg      Config
	logger   logging.Logger
}

// NewHTTPProvider creates an HTTPProvider. A nil client gets one bounded by
// cfg.Timeout.
func NewHTTPProvider(cfg Config, client *http.Client, logger logging.Logger) (*HTTPProvider, error) {
	cfg.applyDefaults()
	endpoint := strings.TrimRight(cfg.Endpoint, "/")
	if endpoint == "" {
		return nil, fmt.Errorf("rdkit: endpoint is required for the http driver")
	}
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	p := &HTTPProvider{
		endpoint: endpoint,
		client:   client,
		cfg:      cfg,
		logger:   logger.Named("rdkit"),
	}
	p.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:     "rdkit-sidecar",
		Interval: cfg.BreakerInterval,
		Timeout:  cfg.BreakerTimeout,
		ReadyToTrip: func(c gobreaker.Counts) bool {
			return c.ConsecutiveFailures >= uint32(cfg.BreakerFailures)
		},
		// Rejected input says nothing about the sidecar's health.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.IsClientError(errors.GetCode(err))
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			p.logger.Warn("circuit breaker state changed",
				logging.String("breaker", name),
				logging.String("from", from.String()),
				logging.String("to", to.String()))
		},
	})
	return p, nil
}

// Name implements molecule.StructureProvider.
func (p *HTTPProvider) Name() string { return DriverHTTP }

// Generate implements molecule.StructureProvider.
func (p *HTTPProvider) Generate(ctx context.Context, smiles string) (*molecule.Structure, error) {
	body, err := json.Marshal(newRequest(smiles, p.cfg.RandomSeed))
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeSerialization, "failed to encode engine request")
	}

	out, err := p.breaker.Execute(func() (interface{}, error) {
		return p.postWithRetry(ctx, body)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, errors.New(errors.ErrCodeChemBackendUnavailable, "chemistry backend unavailable").WithCause(err)
		}
		return nil, err
	}

	resp := out.(*GenerateResponse)
	return toStructure(smiles, []byte(resp.PDB), resp.Descriptors)
}

func (p *HTTPProvider) postWithRetry(ctx context.Context, body []byte) (*GenerateResponse, error) {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = p.cfg.RetryInitialInterval
	bo.MaxInterval = p.cfg.RetryMaxInterval
	bo.MaxElapsedTime = p.cfg.Timeout

	attempt := 0
	op := func() (*GenerateResponse, error) {
		attempt++
		resp, err := p.post(ctx, body)
		if err == nil {
			return resp, nil
		}
		if ctx.Err() != nil || errors.IsClientError(errors.GetCode(err)) {
			return nil, backoff.Permanent(err)
		}
		p.logger.Warn("engine request failed",
			logging.Int("attempt", attempt),
			logging.Err(err))
		return nil, err
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(bo, uint64(p.cfg.RetryMaxAttempts-1)), ctx)
	return backoff.RetryWithData(op, policy)
}

func (p *HTTPProvider) post(ctx context.Context, body []byte) (*GenerateResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint+structuresPath, bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to build engine request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	res, err := p.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, errors.Wrap(ctx.Err(), errors.ErrCodeTimeout, "structure generation timed out")
		}
		return nil, errors.Wrap(err, errors.ErrCodeChemBackendUnavailable, "chemistry backend unreachable")
	}
	defer res.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(res.Body, maxResponseBytes))
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeChemBackendFailed, "failed to read engine response")
	}

	switch {
	case res.StatusCode >= http.StatusInternalServerError:
		return nil, errors.Newf(errors.ErrCodeChemBackendFailed, "engine returned %d", res.StatusCode).
			WithDetail(truncate(string(payload), 256))
	case res.StatusCode == http.StatusUnprocessableEntity:
		// Valid SMILES that could not be embedded or optimised.
		return nil, errors.New(errors.ErrCodeMoleculeConversionFailed, errors.DefaultMessageForCode(errors.ErrCodeMoleculeConversionFailed)).
			WithDetail(truncate(string(payload), 256))
	case res.StatusCode >= http.StatusBadRequest && res.StatusCode != http.StatusBadRequest:
		return nil, errors.Newf(errors.ErrCodeChemBackendProtocol, "engine returned %d", res.StatusCode)
	}

	// 200 and 400 both carry a GenerateResponse; 400 has valid=false.
	return decodeResponse(payload)
}

// Ping implements molecule.StructureProvider.
func (p *HTTPProvider) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.endpoint+healthPath, nil)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "failed to build health request")
	}
	res, err := p.client.Do(req)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeChemBackendUnavailable, "chemistry backend unreachable")
	}
	defer res.Body.Close()
	_, _ = io.Copy(io.Discard, res.Body)

	if res.StatusCode != http.StatusOK {
		return errors.Newf(errors.ErrCodeChemBackendUnavailable, "chemistry backend health returned %d", res.StatusCode)
	}
	return nil
}

// BreakerState exposes the circuit breaker state for readiness reporting.
func (p *HTTPProvider) BreakerState() string {
	return p.breaker.State().String()
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

//Personal.AI order the ending
