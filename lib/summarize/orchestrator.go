package summarize

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/calebns/notelet/lib/apperr"
	"github.com/calebns/notelet/lib/noteservice"
	"github.com/calebns/notelet/types"
)

// DefaultTimeout bounds a single provider call. The provider itself never
// times out, so the orchestrator owns the deadline.
const DefaultTimeout = 60 * time.Second

// Options are the caller-selected generation preferences. Text overrides
// the stored body as the source text; empty means "use what is stored".
type Options struct {
	Model  string `json:"model"`
	Length string `json:"length"`
	Tone   string `json:"tone"`
	Text   string `json:"text"`
}

// Draft is a generated candidate that has not been persisted. SourceText is
// the body the candidate was generated from; saving the draft writes both.
type Draft struct {
	NoteID     string `json:"note_id"`
	SourceText string `json:"source_text"`
	Summary    string `json:"summary"`
}

// Orchestrator runs the summary workflow: first-load generation persists
// automatically, regeneration yields a draft, and saving a draft writes
// summary and source body together.
type Orchestrator struct {
	notes   *noteservice.Service
	gen     Generator
	timeout time.Duration
}

func NewOrchestrator(notes *noteservice.Service, gen Generator, timeout time.Duration) *Orchestrator {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Orchestrator{notes: notes, gen: gen, timeout: timeout}
}

// EnsureSummary returns the note with a summary present. If one is already
// stored it is returned untouched, stale or not. Otherwise a summary is
// generated from the current body and persisted together with that body.
// On generation failure nothing is written.
func (o *Orchestrator) EnsureSummary(ctx context.Context, id string, owner uint, opts Options) (types.Note, error) {
	note, err := o.notes.Get(ctx, id, owner)
	if err != nil {
		return types.Note{}, err
	}
	if note.HasSummary() {
		return note, nil
	}

	draft, err := o.generate(ctx, note, opts)
	if err != nil {
		return types.Note{}, err
	}

	logrus.Debugf("Persisting first summary for note %s", note.ID)
	return o.SaveDraft(ctx, id, owner, draft)
}

// Regenerate always calls the provider and hands back a draft. The stored
// summary is not touched; the caller decides whether to save.
func (o *Orchestrator) Regenerate(ctx context.Context, id string, owner uint, opts Options) (Draft, error) {
	note, err := o.notes.Get(ctx, id, owner)
	if err != nil {
		return Draft{}, err
	}
	return o.generate(ctx, note, opts)
}

// SaveDraft persists a draft as the note's summary. The draft's source text
// is written back as the body in the same update, so a body that diverged
// in the store since generation is overwritten (last write wins).
func (o *Orchestrator) SaveDraft(ctx context.Context, id string, owner uint, draft Draft) (types.Note, error) {
	if strings.TrimSpace(draft.Summary) == "" {
		return types.Note{}, errors.Wrap(apperr.ErrValidation, "draft summary is empty")
	}
	if strings.TrimSpace(draft.SourceText) == "" {
		return types.Note{}, errors.Wrap(apperr.ErrValidation, "draft source text is empty")
	}
	return o.notes.Update(ctx, id, owner, noteservice.Patch{
		Body:    &draft.SourceText,
		Summary: &draft.Summary,
	})
}

func (o *Orchestrator) generate(ctx context.Context, note types.Note, opts Options) (Draft, error) {
	text := opts.Text
	if text == "" {
		text = note.Body
	}
	if strings.TrimSpace(text) == "" {
		return Draft{}, errors.Wrap(apperr.ErrValidation, "note has no content to summarize")
	}

	req := Request{
		Text:   text,
		Model:  opts.Model,
		Length: opts.Length,
		Tone:   opts.Tone,
	}
	req.ApplyDefaults()
	if err := req.Validate(); err != nil {
		return Draft{}, errors.Wrapf(apperr.ErrValidation, "summary request: %v", err)
	}

	genCtx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	summary, err := o.gen.Generate(genCtx, req)
	if err != nil {
		return Draft{}, err
	}

	return Draft{NoteID: note.ID, SourceText: text, Summary: summary}, nil
}
