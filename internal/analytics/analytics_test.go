package analytics

import (
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/hearthshare/inquiry/internal/clock"
	"github.com/hearthshare/inquiry/pkg/db"
)

func newDBEmitterFixture(t *testing.T) (Emitter, func() []Event) {
	t.Helper()

	conn, err := db.NewTest()
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := conn.AutoMigrate(&Event{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake: %v", err)
	}
	fake := clock.NewFakeClock(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))

	rows := func() []Event {
		var out []Event
		if err := conn.Order("id").Find(&out).Error; err != nil {
			t.Fatalf("find events: %v", err)
		}
		return out
	}
	return NewDBEmitter(conn, node, fake, zap.NewNop()), rows
}

func TestDBEmitterPersistsEvent(t *testing.T) {
	emitter, rows := newDBEmitterFixture(t)

	emitter.Emit("ada@example.com", "investment inquiry - first screen submitted", map[string]any{
		"tracking_status": "first screen submitted",
		"zip_code":        "02108",
	})

	got := rows()
	if len(got) != 1 {
		t.Fatalf("got %d events, want 1", len(got))
	}
	assert.Equal(t, "ada@example.com", got[0].Identity)
	assert.Equal(t, "investment inquiry - first screen submitted", got[0].Event)
	assert.Equal(t, "first screen submitted", got[0].Properties["tracking_status"])
	assert.Equal(t, "02108", got[0].Properties["zip_code"])
	assert.NotZero(t, got[0].ID)
}

func TestDBEmitterNilProperties(t *testing.T) {
	emitter, rows := newDBEmitterFixture(t)

	emitter.Emit("", "inquiry.created", nil)

	got := rows()
	if len(got) != 1 {
		t.Fatalf("got %d events, want 1", len(got))
	}
	assert.NotNil(t, got[0].Properties)
	assert.Empty(t, got[0].Properties)
}

func TestFanoutEmitsToAll(t *testing.T) {
	a, b := NewRecorder(), NewRecorder()
	fanout{a, b}.Emit("id", "event", map[string]any{"k": "v"})

	for _, r := range []*Recorder{a, b} {
		events := r.Events()
		if len(events) != 1 {
			t.Fatalf("got %d events, want 1", len(events))
		}
		assert.Equal(t, "event", events[0].Event)
	}
}
