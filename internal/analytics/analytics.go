// Package analytics emits tracking events. Emission is fire-and-forget:
// failures are logged and never retried, and no caller blocks on delivery.
package analytics

import (
	"context"
	"sync"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/hearthshare/inquiry/internal/clock"
)

type Emitter interface {
	Emit(identity, event string, properties map[string]any)
}

type logEmitter struct {
	log *zap.Logger
}

// NewLogEmitter writes events to the structured log, where the warehouse
// pipeline picks them up.
func NewLogEmitter(log *zap.Logger) Emitter {
	return &logEmitter{log: log.Named("analytics")}
}

func (e *logEmitter) Emit(identity, event string, properties map[string]any) {
	e.log.Info("track",
		zap.String("identity", identity),
		zap.String("event", event),
		zap.Any("properties", properties),
	)
}

type dbEmitter struct {
	db   *gorm.DB
	node *snowflake.Node
	clk  clock.Clock
	log  *zap.Logger
}

// NewDBEmitter persists events to the analytics_events table. Write failures
// are logged and the event is dropped.
func NewDBEmitter(conn *gorm.DB, node *snowflake.Node, clk clock.Clock, log *zap.Logger) Emitter {
	return &dbEmitter{db: conn, node: node, clk: clk, log: log.Named("analytics")}
}

func (e *dbEmitter) Emit(identity, event string, properties map[string]any) {
	props := datatypes.JSONMap(properties)
	if props == nil {
		props = datatypes.JSONMap{}
	}
	row := Event{
		ID:         e.node.Generate(),
		Identity:   identity,
		Event:      event,
		Properties: props,
		CreatedAt:  e.clk.Now(),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := e.db.WithContext(ctx).Create(&row).Error; err != nil {
		e.log.Warn("event not persisted", zap.String("event", event), zap.Error(err))
	}
}

type fanout []Emitter

func (f fanout) Emit(identity, event string, properties map[string]any) {
	for _, e := range f {
		e.Emit(identity, event, properties)
	}
}

type Params struct {
	fx.In

	Log   *zap.Logger
	DB    *gorm.DB
	Node  *snowflake.Node
	Clock clock.Clock
}

// NewEmitter mirrors every event to the structured log and persists it.
func NewEmitter(p Params) Emitter {
	return fanout{
		NewLogEmitter(p.Log),
		NewDBEmitter(p.DB, p.Node, p.Clock, p.Log),
	}
}

// Recorder captures events for assertions in tests.
type Recorder struct {
	mu     sync.Mutex
	events []RecordedEvent
}

type RecordedEvent struct {
	Identity   string
	Event      string
	Properties map[string]any
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Emit(identity, event string, properties map[string]any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, RecordedEvent{Identity: identity, Event: event, Properties: properties})
}

func (r *Recorder) Events() []RecordedEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]RecordedEvent, len(r.events))
	copy(out, r.events)
	return out
}

var Module = fx.Module("analytics",
	fx.Provide(NewEmitter),
)
