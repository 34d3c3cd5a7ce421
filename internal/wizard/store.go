package wizard

import (
	"context"
	"encoding/json"
)

// PrefillKeyPrefix marks session values carried over from the upstream
// fit-quiz flow. Keys are stripped of the prefix before pre-populating the
// first step.
const PrefillKeyPrefix = "fit_quiz_"

// Store is the session-scoped key-value storage behind the wizard: validated
// step data, the current step pointer, and upstream prefill values. One store
// entry per browser session.
type Store interface {
	Current(ctx context.Context, sessionID string) (Step, bool, error)
	SetCurrent(ctx context.Context, sessionID string, step Step) error
	StepData(ctx context.Context, sessionID string, step Step) (json.RawMessage, bool, error)
	SetStepData(ctx context.Context, sessionID string, step Step, data json.RawMessage) error
	// Prefill returns the raw session values written by the upstream flow,
	// keyed with PrefillKeyPrefix intact.
	Prefill(ctx context.Context, sessionID string) (map[string]string, error)
	SetPrefill(ctx context.Context, sessionID, key, value string) error
	Clear(ctx context.Context, sessionID string) error
}

func getStep[T any](ctx context.Context, store Store, sessionID string, step Step) (*T, error) {
	raw, ok, err := store.StepData(ctx, sessionID, step)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	var data T
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

func putStep[T any](ctx context.Context, store Store, sessionID string, step Step, data T) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return store.SetStepData(ctx, sessionID, step, raw)
}
