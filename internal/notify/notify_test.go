package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/badrsabra/clinicpro/internal/events"
	"github.com/badrsabra/clinicpro/internal/storage"
	"github.com/badrsabra/clinicpro/internal/store"
	"github.com/badrsabra/clinicpro/internal/testutil"
)

var notifyStart = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func newService(t *testing.T) (*Service, *store.DB, *testutil.ManualClock) {
	t.Helper()

	clk := testutil.NewManualClock(notifyStart)
	db, err := store.New(storage.NewMemory(), store.Options{
		Bus:   events.NewBus(),
		Clock: clk,
		NewID: testutil.NewIDSequence().Next,
	})
	require.NoError(t, err)
	return NewService(db), db, clk
}

func TestCreate(t *testing.T) {
	svc, _, _ := newService(t)

	res := svc.Create("user_1", "Signed in", "You signed in to your account", "success")
	require.True(t, res.Success)

	doc := res.Data
	assert.Equal(t, "user_1", doc["userId"])
	assert.Equal(t, false, doc["isRead"])
	assert.Equal(t, "2025-03-17T12:00:00Z", doc["expiresAt"], "expiry is seven days out")
}

func TestForUser(t *testing.T) {
	svc, _, clk := newService(t)

	svc.Create("user_1", "First", "m", "info")
	clk.Advance(time.Minute)
	svc.Create("user_1", "Second", "m", "info")
	clk.Advance(time.Minute)
	svc.Create("user_2", "Other", "m", "info")

	items, err := svc.ForUser("user_1", false)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Second", items[0].Title, "newest first")
	assert.Equal(t, "First", items[1].Title)
}

func TestForUser_UnreadOnly(t *testing.T) {
	svc, _, _ := newService(t)

	first := svc.Create("user_1", "First", "m", "info")
	svc.Create("user_1", "Second", "m", "info")

	require.True(t, svc.MarkRead(first.Data.ID()).Success)

	unread, err := svc.ForUser("user_1", true)
	require.NoError(t, err)
	require.Len(t, unread, 1)
	assert.Equal(t, "Second", unread[0].Title)

	all, err := svc.ForUser("user_1", false)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestMarkRead(t *testing.T) {
	svc, db, _ := newService(t)

	created := svc.Create("user_1", "First", "m", "info")
	id := created.Data.ID()

	require.True(t, svc.MarkRead(id).Success)

	doc := db.GetByID(store.Notifications, id)
	assert.Equal(t, true, doc["isRead"])
	assert.Equal(t, "2025-03-10T12:00:00Z", doc["readAt"])
}

func TestMarkRead_Absent(t *testing.T) {
	svc, _, _ := newService(t)

	res := svc.MarkRead("notif_missing")
	require.False(t, res.Success)
	assert.Equal(t, string(store.CodeRecordNotFound), res.Error)
}
