package eligibility

import (
	"errors"
	"fmt"
)

// Outcome slugs appear in outcome URLs in place of the internal category
// keys, so a rejection reason is not discoverable from the URL and outcome
// pages cannot be enumerated. Slugs are pre-assigned 4-character tokens
// (first letters of the key words, left-padded with 'r'), never derived at
// runtime.
const (
	SlugOtherState     = "rros"
	SlugExpansionState = "rres"
	SlugUndesirableZip = "ruzc"
)

var ErrOutcomeNotFound = errors.New("outcome not found")

// Context is the display payload for one outcome page.
type Context struct {
	Message string `json:"message"`
}

// Registry maps rejection categories to slugs and slugs to display contexts.
// Immutable after construction.
type Registry struct {
	slugs    map[Category]string
	contexts map[string]Context
}

// NewRegistry builds the static outcome registry and checks that the two maps
// agree: every category's slug must have a context and vice versa, and every
// context must carry a message.
func NewRegistry() (*Registry, error) {
	r := &Registry{
		slugs: map[Category]string{
			CategoryOtherState:     SlugOtherState,
			CategoryExpansionState: SlugExpansionState,
			CategoryUndesirableZip: SlugUndesirableZip,
		},
		contexts: map[string]Context{
			SlugOtherState: {
				Message: "We're sorry, we are not operating in your state yet.",
			},
			SlugExpansionState: {
				Message: "We're sorry, we are not in your state yet -- but we're on our way. We'll let you know as soon as we arrive.",
			},
			SlugUndesirableZip: {
				Message: "We're sorry, we are unable to make investments in your area at this time.",
			},
		},
	}
	if err := r.validate(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Registry) validate() error {
	if len(r.slugs) != len(r.contexts) {
		return fmt.Errorf("outcome registry: %d slugs vs %d contexts", len(r.slugs), len(r.contexts))
	}
	for category, slug := range r.slugs {
		context, ok := r.contexts[slug]
		if !ok {
			return fmt.Errorf("outcome registry: category %q slug %q has no context", category, slug)
		}
		if context.Message == "" {
			return fmt.Errorf("outcome registry: slug %q has an empty message", slug)
		}
	}
	return nil
}

// Resolve maps a rejection category to its outcome slug.
func (r *Registry) Resolve(category Category) (string, bool) {
	slug, ok := r.slugs[category]
	return slug, ok
}

// ContextFor returns the display context for a slug, or ErrOutcomeNotFound
// for slugs outside the registry.
func (r *Registry) ContextFor(slug string) (Context, error) {
	context, ok := r.contexts[slug]
	if !ok {
		return Context{}, ErrOutcomeNotFound
	}
	return context, nil
}

// Slugs returns every registered outcome slug.
func (r *Registry) Slugs() []string {
	out := make([]string, 0, len(r.contexts))
	for slug := range r.contexts {
		out = append(out, slug)
	}
	return out
}
