package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/spf13/viper"

	"github.com/mstanton/daybrief/internal/classify"
	"github.com/mstanton/daybrief/internal/config"
	"github.com/mstanton/daybrief/internal/domains"
	"github.com/mstanton/daybrief/internal/gather"
	"github.com/mstanton/daybrief/internal/model"
	"github.com/mstanton/daybrief/internal/source"
	"github.com/mstanton/daybrief/internal/storage"
)

// loadPipelineConfig builds the typed configuration and fills in the
// default storage and output locations.
func loadPipelineConfig() (*config.Pipeline, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	if cfg.DBPath == "" {
		cfg.DBPath = config.ExpandPath("$HOME/.local/share/daybrief/daybrief.db")
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = config.ExpandPath("$HOME/.local/share/daybrief/out")
	}
	return cfg, nil
}

// openStore opens and migrates the embedded store. The store is an
// optional dependency: any failure here is logged and the run proceeds
// without history context.
func openStore(ctx context.Context, cfg *config.Pipeline) *storage.Store {
	store, err := storage.NewStore(cfg.DBPath)
	if err != nil {
		slog.Warn("embedded store unavailable, continuing without history",
			"path", cfg.DBPath, "error", err)
		return nil
	}

	if err := store.Migrate(ctx); err != nil {
		slog.Warn("store migration failed, continuing without history",
			"path", cfg.DBPath, "error", err)
		_ = store.Close()
		return nil
	}
	return store
}

// Bound on the cross-account open action list carried in a directive.
const maxDirectiveActions = 25

// loadOpenActions pulls the cross-account open action list for the
// actions document. Best-effort like every other store read.
func loadOpenActions(ctx context.Context, store *storage.Store) []model.ActionItem {
	if store == nil {
		return nil
	}
	items, err := store.AllOpenActions(ctx, maxDirectiveActions)
	if err != nil {
		slog.Warn("open actions load failed, continuing without them", "error", err)
		return nil
	}
	return items
}

// buildResolver loads the domain cache snapshot (when the store is
// available) and constructs the resolver for this run.
func buildResolver(ctx context.Context, cfg *config.Pipeline, store *storage.Store) *domains.Resolver {
	var rules []model.DomainRule
	if store != nil {
		loaded, err := store.DomainRules(ctx)
		if err != nil {
			slog.Warn("domain cache load failed, resolving without it", "error", err)
		} else {
			rules = loaded
		}
	}
	return domains.NewResolver(cfg, rules)
}

// buildEventSource picks the configured calendar adapter. A run with no
// configured source is a configuration error surfaced to the user.
func buildEventSource() source.EventSource {
	if path := config.ExpandPath(viper.GetString("sources.fixturePath")); path != "" {
		return source.NewFixture(path)
	}
	if path := config.ExpandPath(viper.GetString("sources.icsPath")); path != "" {
		return source.NewICSFile(path)
	}
	return nil
}

// buildMessageSource picks the configured inbox adapter, or nil when the
// run has no inbox to summarize.
func buildMessageSource() source.MessageSource {
	if path := config.ExpandPath(viper.GetString("sources.fixturePath")); path != "" {
		return source.NewFixture(path)
	}
	return nil
}

// gatherContexts runs the context gatherer over every classified event
// that wants preparation, keyed by event ID.
func gatherContexts(ctx context.Context, cfg *config.Pipeline, store *storage.Store, events []model.ClassifiedEvent, now time.Time) map[string]model.MeetingContext {
	var history gather.HistoryStore
	if store != nil {
		history = store
	}
	g := gather.NewGatherer(cfg.WorkspaceDir, history)

	contexts := make(map[string]model.MeetingContext)
	for _, ce := range events {
		mtype := ce.Classification.Type
		if !mtype.NeedsDeepPrep() && !mtype.NeedsLightPrep() {
			continue
		}
		contexts[ce.Event.ID] = g.Gather(ctx, ce, now)
	}
	return contexts
}

// classifyMessages fetches and prioritizes unread messages. Returns nil
// when the run has no message source, which downstream renders as an
// omitted email summary.
func classifyMessages(ctx context.Context, cfg *config.Pipeline, msgSource source.MessageSource, events []model.ClassifiedEvent) []model.ClassifiedMessage {
	if msgSource == nil {
		return nil
	}

	messages, err := msgSource.UnreadMessages(ctx, cfg.EmailLimit)
	if err != nil {
		slog.Warn("message fetch failed, skipping email summary", "error", err)
		return nil
	}

	emailClassifier := classify.NewEmailClassifier(cfg)
	run := emailClassifier.RunContext(events)

	classified := make([]model.ClassifiedMessage, 0, len(messages))
	for _, msg := range messages {
		classified = append(classified, model.ClassifiedMessage{
			Message:  msg,
			Priority: emailClassifier.Classify(msg, run),
		})
	}
	return classified
}
