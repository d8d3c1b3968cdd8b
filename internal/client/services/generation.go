package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/nexuspost/internal/client/client"
	"github.com/dmitrijs2005/nexuspost/internal/client/models"
	"github.com/dmitrijs2005/nexuspost/internal/logging"
)

type GenerationState string

const (
	GenUnconfigured GenerationState = "unconfigured"
	GenConfigured   GenerationState = "configured"
	GenGenerating   GenerationState = "generating"
	GenRendered     GenerationState = "rendered"
)

var (
	// ErrNotConfigured is wrapped by the validation error returned when
	// Generate is called before the provider keys were initialized.
	ErrNotConfigured = errors.New("provider keys not initialized")

	// ErrStaleResult is returned to a submission whose response arrived
	// after a newer submission was started. Its result is discarded.
	ErrStaleResult = errors.New("superseded by a newer generation request")
)

// GenerationService runs the Unconfigured → Configured → Generating →
// Rendered workflow.
//
// Every submission is stamped with a sequence number; only the response to
// the newest submission is applied, so overlapping submissions resolve to
// the latest one regardless of arrival order. A failed submission leaves no
// partial result and returns the workflow to its previous resting state.
type GenerationService struct {
	api   client.Client
	store SessionStore
	log   logging.Logger

	mu     sync.Mutex
	state  GenerationState
	result *models.GenerationResult
	seq    uint64
}

func NewGenerationService(api client.Client, store SessionStore, log logging.Logger) *GenerationService {
	if log == nil {
		log = logging.Nop()
	}
	return &GenerationService{
		api:   api,
		store: store,
		log:   log.With("component", "generation"),
		state: GenUnconfigured,
	}
}

func (g *GenerationService) State() GenerationState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Result returns a copy of the rendered result, or nil.
func (g *GenerationService) Result() *models.GenerationResult {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.result == nil {
		return nil
	}
	r := *g.result
	r.Images = append([]string(nil), g.result.Images...)
	return &r
}

// PrefillKeys returns previously stored provider keys for use as input
// defaults. It does not change the workflow state: keys are only trusted
// after a successful Initialize.
func (g *GenerationService) PrefillKeys(ctx context.Context) (models.ProviderKeys, error) {
	sess, err := g.store.Get(ctx)
	if err != nil {
		return models.ProviderKeys{}, err
	}
	if sess.ProviderKeys == nil {
		return models.ProviderKeys{}, nil
	}
	return *sess.ProviderKeys, nil
}

// Initialize forwards the provider keys to the backend and, once accepted,
// stores them. Both keys must be non-empty; otherwise nothing is sent.
func (g *GenerationService) Initialize(ctx context.Context, keys models.ProviderKeys) error {
	keys.HuggingFace = strings.TrimSpace(keys.HuggingFace)
	keys.Gemini = strings.TrimSpace(keys.Gemini)
	if !keys.Complete() {
		return &models.ValidationError{Field: "api_keys", Message: "Please enter both API keys"}
	}

	if err := g.api.Initialize(ctx, keys); err != nil {
		g.log.Warn(ctx, "initialize failed", "error", err)
		return err
	}

	if err := g.store.SetProviderKeys(ctx, keys); err != nil {
		return fmt.Errorf("save provider keys: %w", err)
	}

	g.mu.Lock()
	if g.state == GenUnconfigured {
		g.state = GenConfigured
	}
	g.mu.Unlock()

	g.log.Info(ctx, "provider keys initialized")
	return nil
}

// Generate submits req. Validation and configuration are checked before any
// network call. On success the previous result is replaced entirely.
func (g *GenerationService) Generate(ctx context.Context, req models.GenerationRequest) (*models.GenerationResult, error) {
	req.Topic = strings.TrimSpace(req.Topic)
	if err := req.Validate(); err != nil {
		return nil, err
	}

	g.mu.Lock()
	if g.state == GenUnconfigured {
		g.mu.Unlock()
		return nil, &models.ValidationError{Field: "api_keys", Message: "Please initialize your API keys first", Err: ErrNotConfigured}
	}
	g.seq++
	ticket := g.seq
	g.state = GenGenerating
	g.mu.Unlock()

	g.log.Info(ctx, "generating post", "seq", ticket, "platform", req.Platform, "images", req.ImageCount, "length", req.PostLength)

	res, err := g.api.GeneratePost(ctx, req)

	g.mu.Lock()
	defer g.mu.Unlock()

	if ticket != g.seq {
		g.log.Debug(ctx, "dropping stale generation response", "seq", ticket, "latest", g.seq)
		return nil, ErrStaleResult
	}

	if err != nil {
		g.state = g.restingState()
		g.log.Warn(ctx, "generation failed", "seq", ticket, "error", err)
		return nil, err
	}

	g.result = res
	g.state = GenRendered
	g.log.Info(ctx, "post generated", "seq", ticket, "images", len(res.Images), "score", res.EngagementScore)

	out := *res
	out.Images = append([]string(nil), res.Images...)
	return &out, nil
}

// restingState is where a failed submission lands; g.mu must be held.
func (g *GenerationService) restingState() GenerationState {
	if g.result != nil {
		return GenRendered
	}
	return GenConfigured
}

// Reset returns the workflow to Unconfigured and drops the result. Responses
// still in flight are discarded as stale.
func (g *GenerationService) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.seq++
	g.state = GenUnconfigured
	g.result = nil
}
