// Package relay routes inbound platform messages through the per-user
// session state machine to AI providers, one-shot flows, or canned
// replies, and renders outcomes into user-facing text.
package relay

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"go-chatrelay-svc/internal/ai"
	"go-chatrelay-svc/internal/session"
	"go-chatrelay-svc/internal/workspace"
)

// Command is a discrete action invoked by the platform adapter. Commands
// mutate session state or query the workspace; they never read the user's
// free-form message text.
type Command string

const (
	CmdStart     Command = "start"
	CmdHelp      Command = "help"
	CmdToggleAI  Command = "ai"
	CmdProvider  Command = "provider"
	CmdDummy     Command = "dummy"
	CmdSentiment Command = "sentiment"
	CmdSave      Command = "save"
	CmdNotes     Command = "notes"
	CmdSearch    Command = "search"
)

// Options tunes dispatcher behavior.
type Options struct {
	// CallTimeout bounds each collaborator call.
	CallTimeout time.Duration
	// EnrichContext attaches workspace search hits to AI generation
	// requests when a workspace client is configured.
	EnrichContext bool
}

// Dispatcher is the message router. All session mutation goes through the
// injected store; collaborators are stateless.
type Dispatcher struct {
	sessions  *session.Store
	clients   map[ai.Provider]ai.TextClient
	sentiment ai.SentimentClient
	ws        workspace.Client // nil when the workspace integration is off
	locales   LocaleDetector
	format    *Formatter
	logger    *zap.Logger
	opts      Options
}

// NewDispatcher wires the router. ws may be nil.
func NewDispatcher(
	sessions *session.Store,
	clients map[ai.Provider]ai.TextClient,
	sentiment ai.SentimentClient,
	ws workspace.Client,
	locales LocaleDetector,
	format *Formatter,
	logger *zap.Logger,
	opts Options,
) *Dispatcher {
	if opts.CallTimeout <= 0 {
		opts.CallTimeout = 30 * time.Second
	}
	return &Dispatcher{
		sessions:  sessions,
		clients:   clients,
		sentiment: sentiment,
		ws:        ws,
		locales:   locales,
		format:    format,
		logger:    logger,
		opts:      opts,
	}
}

// HandleMessage routes one free-form text message. Exactly one of the
// mutually exclusive paths applies, checked in fixed priority order:
// pending note, pending sentiment, dummy mode, disabled, AI dispatch.
func (d *Dispatcher) HandleMessage(ctx context.Context, uid, text string) []string {
	turn := uuid.NewString()
	locale := d.locales.Detect(text)
	log := d.logger.With(zap.String("turn", turn), zap.String("user_id", uid))

	d.sessions.Ensure(uid)

	// An empty update carries nothing to route and must not consume a
	// pending action.
	if strings.TrimSpace(text) == "" {
		return []string{d.format.EmptyMessage(locale)}
	}

	// The pending action is consumed before the collaborator call runs, so
	// a failed or timed-out call can never re-trigger it.
	if pending := d.sessions.TakePending(uid); pending != nil {
		switch pending.Kind {
		case session.PendingNote:
			return d.completeNoteSave(ctx, log, locale, pending.Title, text)
		case session.PendingSentiment:
			return d.completeSentiment(ctx, log, locale, text)
		}
	}

	if d.sessions.IsDummy(uid) {
		return []string{d.format.DummyReply(locale)}
	}
	if !d.sessions.IsEnabled(uid) {
		return []string{d.format.DisabledReply(locale)}
	}

	return d.dispatchAI(ctx, log, locale, uid, text)
}

// HandleCommand executes one discrete command. Unrecognized commands get
// a help hint.
func (d *Dispatcher) HandleCommand(ctx context.Context, uid string, cmd Command, args string) []string {
	turn := uuid.NewString()
	locale := d.locales.Detect(args)
	log := d.logger.With(zap.String("turn", turn), zap.String("user_id", uid), zap.String("command", string(cmd)))
	args = strings.TrimSpace(args)

	d.sessions.Ensure(uid)

	switch cmd {
	case CmdStart:
		return []string{d.format.Welcome(locale)}

	case CmdHelp:
		return []string{d.format.Help(locale)}

	case CmdToggleAI:
		if d.sessions.IsEnabled(uid) {
			d.sessions.Disable(uid)
			log.Info("ai disabled")
			return []string{d.format.AIDisabled(locale)}
		}
		active := d.sessions.Enable(uid, nil)
		log.Info("ai enabled", zap.String("provider", ai.DisplayName(active)))
		return []string{d.format.AIEnabled(locale, active)}

	case CmdProvider:
		if args == "" {
			return []string{d.format.UnknownProvider(locale, args)}
		}
		p, ok := ai.ParseProvider(args)
		if !ok {
			return []string{d.format.UnknownProvider(locale, args)}
		}
		d.sessions.SwitchProvider(uid, p)
		log.Info("provider switched", zap.String("provider", ai.DisplayName(p)))
		return []string{d.format.ProviderSwitched(locale, p)}

	case CmdDummy:
		d.sessions.SwitchProvider(uid, ai.ProviderDisabled)
		log.Info("dummy mode entered")
		return []string{d.format.DummyBanner(locale)}

	case CmdSentiment:
		d.sessions.ArmPending(uid, session.PendingAction{Kind: session.PendingSentiment})
		return []string{d.format.ArmedSentiment(locale)}

	case CmdSave:
		if args == "" {
			return []string{d.format.UsageSave(locale)}
		}
		d.sessions.ArmPending(uid, session.PendingAction{Kind: session.PendingNote, Title: args})
		return []string{d.format.ArmedNote(locale, args)}

	case CmdNotes:
		return d.listCollections(ctx, log, locale)

	case CmdSearch:
		if args == "" {
			return []string{d.format.UsageSearch(locale)}
		}
		return d.searchWorkspace(ctx, log, locale, args)

	default:
		return []string{d.format.UnknownCommand(locale)}
	}
}

// dispatchAI forwards the message to the user's active provider. Session
// state is never altered by a downstream failure.
func (d *Dispatcher) dispatchAI(ctx context.Context, log *zap.Logger, locale, uid, text string) []string {
	provider, ok := d.sessions.ActiveProvider(uid)
	if !ok {
		return []string{d.format.DisabledReply(locale)}
	}
	client, ok := d.clients[provider]
	if !ok {
		log.Error("no client registered for provider", zap.String("provider", ai.DisplayName(provider)))
		return []string{d.format.Failure(locale, ErrorGeneric)}
	}

	callCtx, cancel := context.WithTimeout(ctx, d.opts.CallTimeout)
	defer cancel()

	reply, err := client.Generate(callCtx, text, d.buildContext(callCtx, log, text))
	if err != nil {
		kind := classifyError(err)
		log.Error("ai generation failed",
			zap.String("provider", ai.DisplayName(provider)),
			zap.Error(err),
		)
		return []string{d.format.Failure(locale, kind)}
	}
	return []string{reply}
}

// buildContext assembles opaque workspace context for generation. Any
// failure degrades to no enrichment, never to a user-visible error.
func (d *Dispatcher) buildContext(ctx context.Context, log *zap.Logger, text string) *ai.Context {
	if !d.opts.EnrichContext || d.ws == nil {
		return nil
	}
	hits, err := d.ws.Search(ctx, text)
	if err != nil {
		log.Warn("context enrichment search failed", zap.Error(err))
		return nil
	}
	if len(hits) == 0 {
		return nil
	}
	snippets := make([]string, 0, len(hits))
	for _, h := range hits {
		snippets = append(snippets, h.Title+" — "+h.URL)
	}
	return &ai.Context{Snippets: snippets}
}

func (d *Dispatcher) completeNoteSave(ctx context.Context, log *zap.Logger, locale, title, body string) []string {
	if d.ws == nil {
		log.Warn("note save requested but no workspace is configured")
		return []string{d.format.Failure(locale, ErrorGeneric)}
	}

	callCtx, cancel := context.WithTimeout(ctx, d.opts.CallTimeout)
	defer cancel()

	entry, err := d.ws.CreateEntry(callCtx, title, body)
	if err != nil {
		kind := classifyError(err)
		log.Error("note creation failed", zap.String("title", title), zap.Error(err))
		return []string{d.format.Failure(locale, kind)}
	}
	log.Info("note created", zap.String("entry_id", entry.ID), zap.Bool("truncated", entry.Truncated))
	return []string{d.format.NoteSaved(locale, entry)}
}

func (d *Dispatcher) completeSentiment(ctx context.Context, log *zap.Logger, locale, text string) []string {
	callCtx, cancel := context.WithTimeout(ctx, d.opts.CallTimeout)
	defer cancel()

	verdicts, err := d.sentiment.Analyze(callCtx, text)
	if err != nil {
		// Only timeouts get a distinct message here; everything else is a
		// generic retry prompt.
		kind := classifyError(err)
		if kind != ErrorTimeout {
			kind = ErrorGeneric
		}
		log.Error("sentiment analysis failed", zap.Error(err))
		return []string{d.format.Failure(locale, kind)}
	}
	return []string{d.format.SentimentReport(locale, verdicts)}
}

func (d *Dispatcher) listCollections(ctx context.Context, log *zap.Logger, locale string) []string {
	if d.ws == nil {
		return []string{d.format.Failure(locale, ErrorGeneric)}
	}

	callCtx, cancel := context.WithTimeout(ctx, d.opts.CallTimeout)
	defer cancel()

	cols, err := d.ws.ListCollections(callCtx)
	if err != nil {
		kind := classifyError(err)
		log.Error("workspace listing failed", zap.Error(err))
		return []string{d.format.Failure(locale, kind)}
	}
	return []string{d.format.Collections(locale, cols)}
}

func (d *Dispatcher) searchWorkspace(ctx context.Context, log *zap.Logger, locale, query string) []string {
	if d.ws == nil {
		return []string{d.format.Failure(locale, ErrorGeneric)}
	}

	callCtx, cancel := context.WithTimeout(ctx, d.opts.CallTimeout)
	defer cancel()

	results, err := d.ws.Search(callCtx, query)
	if err != nil {
		kind := classifyError(err)
		log.Error("workspace search failed", zap.String("query", query), zap.Error(err))
		return []string{d.format.Failure(locale, kind)}
	}
	return []string{d.format.SearchResults(locale, results)}
}
