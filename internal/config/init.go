package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"slices"
	"strings"
)

// Prompter collects answers from the user. Implementations return an error
// when the user cancels or the terminal goes away.
type Prompter interface {
	// Input asks for free text. secret masks the typed characters.
	Input(ctx context.Context, label, initial string, secret bool) (string, error)
	// Select asks the user to pick one of options.
	Select(ctx context.Context, label string, options []string, initial string) (string, error)
	// Confirm asks a yes/no question.
	Confirm(ctx context.Context, label string, initial bool) (bool, error)
}

// Initializer loads the config file and fills in whatever is missing, either
// from the static defaults or by asking the user.
type Initializer struct {
	store  *Store
	prompt Prompter
	log    *slog.Logger
}

// NewInitializer returns an Initializer. prompt may be nil when only
// non-interactive initialization is needed.
func NewInitializer(store *Store, prompt Prompter, log *slog.Logger) *Initializer {
	if log == nil {
		log = slog.Default()
	}
	return &Initializer{store: store, prompt: prompt, log: log}
}

// Init returns a usable configuration. It never fails: on any internal error
// the error is logged and the static defaults are returned.
func (in *Initializer) Init(ctx context.Context, nonInteractive bool) Config {
	if in.prompt == nil {
		nonInteractive = true
	}
	c, err := in.init(ctx, nonInteractive)
	if err != nil {
		in.log.Error("config initialization failed, using defaults",
			"path", in.store.Path(), "error", err)
		d := Defaults()
		d.Source = SourceFallback
		return d
	}
	in.log.Debug("config ready", "path", in.store.Path(), "source", c.Source)
	return c
}

func (in *Initializer) init(ctx context.Context, nonInteractive bool) (Config, error) {
	if err := in.store.EnsureDir(); err != nil {
		return Config{}, err
	}

	doc, err := in.store.LoadDocument()
	switch {
	case err == nil:
		if len(doc.Invalid) > 0 {
			in.log.Warn("config fields have the wrong type, treating them as missing",
				"path", in.store.Path(), "fields", doc.Invalid)
		}
		return in.complete(ctx, doc, nonInteractive)
	case errors.Is(err, fs.ErrNotExist):
		return in.fresh(ctx, nonInteractive)
	case errors.Is(err, ErrMalformed):
		in.log.Warn("config file unreadable, writing defaults", "error", err)
		return in.save(Document{Config: Defaults()})
	default:
		return Config{}, err
	}
}

// fresh handles a missing config file.
func (in *Initializer) fresh(ctx context.Context, nonInteractive bool) (Config, error) {
	if nonInteractive {
		return in.save(Document{Config: Defaults()})
	}

	fields := []Field{FieldAPIKey, FieldProvider, FieldModel, FieldCustomEndpoint, FieldHistory}
	c, err := in.ask(ctx, Config{}, fields)
	if err != nil {
		in.log.Warn("prompt interrupted, filling remaining fields with defaults", "error", err)
		c = FillMissing(c, MissingFields(c))
		c.Source = SourceDefaults
		return in.save(Document{Config: c})
	}
	c.Source = SourceUserInput
	return in.save(Document{Config: c})
}

// complete handles an existing, parseable config file. Keys other than the
// config fields are written back as they were.
func (in *Initializer) complete(ctx context.Context, doc Document, nonInteractive bool) (Config, error) {
	c := doc.Config
	missing := MissingFields(c)
	if len(missing) == 0 {
		c.Source = SourceExistingValid
		return c, nil
	}
	in.log.Debug("config incomplete", "missing", fieldNames(missing))

	if nonInteractive {
		doc.Config = FillMissing(c, missing)
		doc.Config.Source = SourceExistingDefaults
		return in.save(doc)
	}

	asked, err := in.ask(ctx, c, missing)
	if err != nil {
		in.log.Warn("prompt interrupted, filling missing fields with defaults", "error", err)
		doc.Config = FillMissing(asked, MissingFields(asked))
		doc.Config.Source = SourceExistingDefaults
		return in.save(doc)
	}
	doc.Config = asked
	doc.Config.Source = SourceExistingInput
	return in.save(doc)
}

// ask prompts for each field in prompt order and returns c with the answers
// applied. The model is also asked whenever the current value is not offered
// by the current provider, even if it was not listed. On error the answers
// collected so far are returned along with it.
func (in *Initializer) ask(ctx context.Context, c Config, fields []Field) (Config, error) {
	steps := slices.Clone(fields)
	if !slices.Contains(steps, FieldModel) {
		steps = append(steps, FieldModel)
	}
	slices.Sort(steps)

	for _, f := range steps {
		if f == FieldModel && !slices.Contains(fields, FieldModel) && HasModel(c.APIProvider, c.APIModel) {
			continue
		}
		if err := in.askField(ctx, &c, f); err != nil {
			return c, fmt.Errorf("prompt %s: %w", f, err)
		}
	}
	return c, nil
}

func (in *Initializer) askField(ctx context.Context, c *Config, f Field) error {
	switch f {
	case FieldAPIKey:
		v, err := in.prompt.Input(ctx, "API key", c.APIKey, true)
		if err != nil {
			return err
		}
		c.APIKey = strings.TrimSpace(v)

	case FieldProvider:
		initial := c.APIProvider
		if !KnownProvider(initial) {
			initial = DefaultProvider
		}
		v, err := in.prompt.Select(ctx, "API provider", Providers(), initial)
		if err != nil {
			return err
		}
		c.APIProvider = v

	case FieldModel:
		models := ModelsFor(c.APIProvider)
		initial := c.APIModel
		if !slices.Contains(models, initial) {
			initial = models[0]
		}
		v, err := in.prompt.Select(ctx, "Model ("+providerLabel(c.APIProvider)+")", models, initial)
		if err != nil {
			return err
		}
		c.APIModel = v

	case FieldCustomEndpoint:
		initial := c.APICustomEndpoint
		if initial == "" {
			initial = SuggestedEndpoint(c.APIProvider)
		}
		v, err := in.prompt.Input(ctx, "Custom API endpoint (optional)", initial, false)
		if err != nil {
			return err
		}
		c.APICustomEndpoint = strings.TrimSpace(v)

	case FieldHistory:
		initial := DefaultHistory
		if c.HistoryEnable != nil {
			initial = *c.HistoryEnable
		}
		v, err := in.prompt.Confirm(ctx, "Enable history?", initial)
		if err != nil {
			return err
		}
		c.HistoryEnable = Bool(v)
	}
	return nil
}

func (in *Initializer) save(d Document) (Config, error) {
	if err := in.store.SaveDocument(d); err != nil {
		return Config{}, err
	}
	return d.Config, nil
}

func providerLabel(p string) string {
	if p == "" {
		return DefaultProvider
	}
	return p
}

func fieldNames(fields []Field) []string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.String()
	}
	return names
}
