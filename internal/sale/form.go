package sale

import (
	"context"
	"sync"
	"time"

	"comptoir/internal/bridge"
	"comptoir/internal/catalog"
	"comptoir/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type FormOptions struct {
	Compensate bool
	// OnSaved runs after every line was committed, before the form resets.
	OnSaved func(Order, *Result)
	Now     func() time.Time
}

// Form is one opened sale form: its catalog snapshot, its state and the
// pipeline that submits it. Subscribers receive every new state.
type Form struct {
	id       string
	catalog  *catalog.Cache
	pipeline *Pipeline
	onSaved  func(Order, *Result)
	now      func() time.Time

	mu      sync.Mutex
	state   FormState
	subs    map[int]func(FormState)
	nextSub int
}

func NewForm(invoker bridge.Invoker, opts FormOptions) *Form {
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	cache := catalog.NewCache(invoker)

	return &Form{
		id:       uuid.New().String(),
		catalog:  cache,
		pipeline: NewPipeline(invoker, cache, PipelineOptions{Compensate: opts.Compensate}),
		onSaved:  opts.OnSaved,
		now:      now,
		state:    NewFormState(now()),
		subs:     make(map[int]func(FormState)),
	}
}

func (f *Form) ID() string {
	return f.id
}

// Context tags ctx with the form session ID for logging.
func (f *Form) Context(ctx context.Context) context.Context {
	return logger.WithSessionID(ctx, f.id)
}

func (f *Form) Catalog() *catalog.Cache {
	return f.catalog
}

// State returns a copy of the current state.
func (f *Form) State() FormState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state.clone()
}

// Subscribe registers fn for every state change and returns its cancel func.
func (f *Form) Subscribe(fn func(FormState)) func() {
	f.mu.Lock()
	id := f.nextSub
	f.nextSub++
	f.subs[id] = fn
	f.mu.Unlock()

	return func() {
		f.mu.Lock()
		delete(f.subs, id)
		f.mu.Unlock()
	}
}

// Mount loads the catalog. A failure shows the banner but leaves the form
// usable with no products to choose from.
func (f *Form) Mount(ctx context.Context) error {
	ctx = f.Context(ctx)

	if err := f.catalog.Load(ctx); err != nil {
		f.transition(func(s FormState) FormState {
			s = s.clone()
			s.Error = Message(err)
			return s
		})
		return err
	}
	return nil
}

func (f *Form) AddLine() error {
	return f.edit(func(s FormState) FormState { return s.AddLine() })
}

func (f *Form) RemoveLine(i int) error {
	return f.edit(func(s FormState) FormState { return s.RemoveLine(i) })
}

func (f *Form) UpdateLine(i int, field Field, value string) error {
	return f.edit(func(s FormState) FormState { return s.UpdateLine(i, field, value, f.catalog) })
}

func (f *Form) SelectProduct(i int, productID int64) error {
	return f.edit(func(s FormState) FormState { return s.SelectProduct(i, productID, f.catalog) })
}

func (f *Form) SetClientName(name string) error {
	return f.edit(func(s FormState) FormState { return s.SetClientName(name) })
}

func (f *Form) SetStatus(status Status) error {
	if !status.Valid() {
		return ErrInvalidStatus
	}
	return f.edit(func(s FormState) FormState { return s.SetStatus(status) })
}

func (f *Form) SetDate(t time.Time) error {
	return f.edit(func(s FormState) FormState { return s.SetDate(t) })
}

// Cancel discards the composed sale and closes the form. An in-flight
// submission cannot be cancelled.
func (f *Form) Cancel() error {
	return f.edit(func(s FormState) FormState {
		out := s.Reset(f.now())
		out.Closed = true
		return out
	})
}

// Submit validates and commits the current order. While it runs the form
// is frozen: edits fail with ErrFrozen and a second Submit with
// ErrSubmitInProgress. On success the form resets and closes; on failure it
// stays open with the message set.
func (f *Form) Submit(ctx context.Context) (*Result, error) {
	ctx = f.Context(ctx)
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "sale"),
		zap.String("method", "Submit"),
	)

	f.mu.Lock()
	switch {
	case f.state.Closed:
		f.mu.Unlock()
		return nil, ErrClosed
	case f.state.Submitting:
		f.mu.Unlock()
		return nil, ErrSubmitInProgress
	}
	next := f.state.clone()
	next.Phase = PhaseValidating
	next.Submitting = true
	next.Error = ""
	order := next.clone().Order
	f.state = next
	f.mu.Unlock()
	f.publish(next)

	if err := f.pipeline.Validate(order); err != nil {
		log.Info("sale rejected by validation", zap.Error(err))
		f.fail(err)
		return nil, err
	}

	f.transition(func(s FormState) FormState {
		s = s.clone()
		s.Phase = PhaseSubmitting
		return s
	})

	res, err := f.pipeline.Commit(ctx, order)
	if err != nil {
		f.fail(err)
		return nil, err
	}

	f.transition(func(s FormState) FormState {
		s = s.clone()
		s.Phase = PhaseSuccess
		return s
	})

	if f.onSaved != nil {
		f.onSaved(order, res)
	}

	f.transition(func(s FormState) FormState {
		out := s.Reset(f.now())
		out.Closed = true
		return out
	})

	log.Info("sale submitted", zap.Int("sale_count", len(res.SaleIDs)))
	return res, nil
}

func (f *Form) fail(err error) {
	f.transition(func(s FormState) FormState {
		s = s.clone()
		s.Phase = PhaseFailed
		s.Submitting = false
		s.Error = Message(err)
		return s
	})
}

// edit applies a user edit unless the form is frozen or closed.
func (f *Form) edit(reduce func(FormState) FormState) error {
	f.mu.Lock()
	switch {
	case f.state.Submitting:
		f.mu.Unlock()
		return ErrFrozen
	case f.state.Closed:
		f.mu.Unlock()
		return ErrClosed
	}
	f.state = reduce(f.state)
	next := f.state.clone()
	f.mu.Unlock()

	f.publish(next)
	return nil
}

// transition applies an internal state change regardless of the freeze.
func (f *Form) transition(reduce func(FormState) FormState) {
	f.mu.Lock()
	f.state = reduce(f.state)
	next := f.state.clone()
	f.mu.Unlock()

	f.publish(next)
}

func (f *Form) publish(s FormState) {
	f.mu.Lock()
	subs := make([]func(FormState), 0, len(f.subs))
	for _, fn := range f.subs {
		subs = append(subs, fn)
	}
	f.mu.Unlock()

	for _, fn := range subs {
		fn(s.clone())
	}
}
