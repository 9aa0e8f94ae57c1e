package controller

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yildizm/TextLens/internal/analysis"
	"github.com/yildizm/TextLens/internal/client"
	"github.com/yildizm/TextLens/internal/config"
	"github.com/yildizm/TextLens/internal/formatter"
	"github.com/yildizm/TextLens/internal/logger"
	"github.com/yildizm/TextLens/internal/results"
	"github.com/yildizm/TextLens/internal/session"
	"golang.org/x/sync/errgroup"
)

// AllFailedMessage is shown when every branch of AnalyzeAll fails
const AllFailedMessage = "All analyses failed"

// ErrAllFailed is returned by AnalyzeAll when no kind succeeded
var ErrAllFailed = errors.New("all analyses failed")

// StateSurface is implemented by surfaces that also display the character
// count and busy state. It is optional.
type StateSurface interface {
	SetCharCount(n int)
	SetBusy(busy bool)
}

// Controller wires the session state, the analysis service and the result
// sink. Only one AnalyzeOne or AnalyzeAll runs at a time.
type Controller struct {
	service client.Service
	state   *session.State
	sink    *results.Sink
	surface results.Surface
	logger  *logger.Logger
	now     func() time.Time
	layout  string
}

// Option configures a Controller
type Option func(*Controller)

// WithLogger sets the controller logger
func WithLogger(l *logger.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// WithClock overrides the time source used for entry timestamps
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// WithTimestampFormat sets the Go time layout for entry timestamps
func WithTimestampFormat(layout string) Option {
	return func(c *Controller) {
		if layout != "" {
			c.layout = layout
		}
	}
}

// New creates a controller. surface may be nil.
func New(service client.Service, surface results.Surface, opts ...Option) *Controller {
	if surface == nil {
		surface = results.NopSurface{}
	}
	c := &Controller{
		service: service,
		state:   session.New(),
		surface: surface,
		logger:  logger.Discard(),
		now:     time.Now,
		layout:  config.DefaultTimestampFormat,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.sink = results.NewSink(surface)
	c.publishState()
	return c
}

// State returns the session state
func (c *Controller) State() *session.State { return c.state }

// Sink returns the result sink
func (c *Controller) Sink() *results.Sink { return c.sink }

// Snapshot returns a copy of the session state
func (c *Controller) Snapshot() session.Snapshot { return c.state.Snapshot() }

// SetText replaces the input text. It reports false while busy.
func (c *Controller) SetText(text string) bool {
	if !c.state.SetText(text) {
		return false
	}
	c.publishState()
	return true
}

// SelectKind changes the selected kind. It reports false while busy.
func (c *Controller) SelectKind(kind analysis.Kind) bool {
	return c.state.SelectKind(kind)
}

// Submit runs AnalyzeOne for the selected kind and current text
func (c *Controller) Submit(ctx context.Context) error {
	snap := c.state.Snapshot()
	return c.AnalyzeOne(ctx, snap.SelectedKind, snap.Text)
}

// SubmitAll runs AnalyzeAll for the current text
func (c *Controller) SubmitAll(ctx context.Context) error {
	return c.AnalyzeAll(ctx, c.state.Text())
}

// ClearAll clears text, error and entries. It reports false while busy.
func (c *Controller) ClearAll() bool {
	if !c.state.ClearAll() {
		return false
	}
	c.sink.Clear()
	c.sink.HideError()
	c.publishState()
	return true
}

// ClearResults clears only the entries. It reports false while busy or when
// there is nothing to clear.
func (c *Controller) ClearResults() bool {
	if c.state.IsBusy() || c.sink.Len() == 0 {
		return false
	}
	c.sink.Clear()
	return true
}

// AnalyzeOne sends text to the service for kind and renders the result.
// Blank text fails with *analysis.EmptyInputError before any request is made.
// Service and transport failures are shown on the error banner and returned.
func (c *Controller) AnalyzeOne(ctx context.Context, kind analysis.Kind, text string) error {
	text, err := c.begin(text)
	if err != nil {
		return err
	}
	defer c.end()

	log := c.logger.WithComponent("controller")
	start := c.now()

	payload, err := c.service.Analyze(ctx, kind, text)
	if err != nil {
		message := analysis.UserMessage(kind, err)
		c.showError(message)
		log.ErrorWithFields("analysis failed", []logger.Field{logger.F("kind", string(kind)), logger.Error(err)})
		return err
	}

	rendered, err := c.render(kind, payload)
	if err != nil {
		c.showError(analysis.UserMessage(kind, err))
		log.ErrorWithFields("analysis failed", []logger.Field{logger.F("kind", string(kind)), logger.Error(err)})
		return err
	}
	log.InfoWithFields("analysis complete", []logger.Field{
		logger.F("kind", string(kind)),
		logger.F("rendered", rendered),
		logger.Duration(c.now().Sub(start)),
	})
	return nil
}

type outcome struct {
	payload json.RawMessage
	err     error
}

// AnalyzeAll requests every kind concurrently, waits for all of them, then
// renders the successes in summarize, sentiment, intent, classify order.
// Individual failures are logged and skipped. If every kind fails the banner
// shows AllFailedMessage and an error wrapping ErrAllFailed is returned.
func (c *Controller) AnalyzeAll(ctx context.Context, text string) error {
	text, err := c.begin(text)
	if err != nil {
		return err
	}
	defer c.end()

	log := c.logger.WithComponent("controller")
	kinds := analysis.Kinds()
	outcomes := make([]outcome, len(kinds))

	var g errgroup.Group
	for i, kind := range kinds {
		g.Go(func() error {
			payload, err := c.service.Analyze(ctx, kind, text)
			outcomes[i] = outcome{payload: payload, err: err}
			// failures are recorded per kind, never returned to the group
			return nil
		})
	}
	_ = g.Wait()

	var errs []error
	rendered := 0
	for i, kind := range kinds {
		if err := outcomes[i].err; err != nil {
			log.WarnWithFields("analysis error", []logger.Field{logger.F("kind", string(kind)), logger.Error(err)})
			errs = append(errs, err)
			continue
		}
		ok, err := c.render(kind, outcomes[i].payload)
		if err != nil {
			log.WarnWithFields("analysis error", []logger.Field{logger.F("kind", string(kind)), logger.Error(err)})
			errs = append(errs, err)
			continue
		}
		if ok {
			rendered++
		}
	}

	log.InfoWithFields("fan-out complete", []logger.Field{
		logger.Count(rendered),
		logger.F("failed", len(errs)),
	})

	if len(errs) == len(kinds) {
		c.showError(AllFailedMessage)
		return fmt.Errorf("%w: %w", ErrAllFailed, errors.Join(errs...))
	}
	return nil
}

// begin checks the input, takes the busy flag and clears the banner
func (c *Controller) begin(text string) (string, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		c.showError(analysis.EmptyInputMessage)
		return "", &analysis.EmptyInputError{}
	}
	if !c.state.BeginBusy() {
		return "", analysis.ErrBusy
	}
	c.publishBusy(true)
	c.state.ClearError()
	c.sink.HideError()
	return trimmed, nil
}

func (c *Controller) end() {
	c.state.EndBusy()
	c.publishBusy(false)
}

// render formats payload and pushes it. Payloads without the kind's
// discriminator are skipped; any other decode failure is a malformed
// response and comes back as a *analysis.TransportError.
func (c *Controller) render(kind analysis.Kind, payload json.RawMessage) (bool, error) {
	card, err := formatter.Format(kind, payload)
	if errors.Is(err, analysis.ErrMissingDiscriminator) {
		c.logger.WithComponent("controller").Debug("skipping %s payload without a renderable result", kind)
		return false, nil
	}
	if err != nil {
		return false, analysis.NewTransportError(kind, "malformed response", err)
	}
	c.sink.Push(results.NewEntry(card.Result, card.Body, c.now(), c.layout))
	return true, nil
}

func (c *Controller) showError(message string) {
	c.state.SetError(message)
	c.sink.ShowError(message)
}

func (c *Controller) publishState() {
	if s, ok := c.surface.(StateSurface); ok {
		snap := c.state.Snapshot()
		s.SetCharCount(snap.CharCount)
		s.SetBusy(snap.Busy)
	}
}

func (c *Controller) publishBusy(busy bool) {
	if s, ok := c.surface.(StateSurface); ok {
		s.SetBusy(busy)
	}
}
