package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"roomescape/internal/models"
	"roomescape/internal/queue"
)

// testDB подключается к базе из TEST_DB_*; без неё тест пропускается.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := OpenTesting(context.Background())
	require.NoError(t, err)
	if db == nil {
		t.Skip("TEST_DB_HOST is not set")
	}

	require.NoError(t, db.Exec("DROP TABLE IF EXISTS waitings, schedules, themes, members CASCADE").Error)
	require.NoError(t, NewMigrator(db, "").Auto())
	return db
}

type seed struct {
	today, past models.Schedule
	kim, lee    models.Member
}

func seedCatalog(t *testing.T, db *gorm.DB) seed {
	t.Helper()
	theme := models.Theme{Name: "Prison Break", Desc: "escape", Price: 22000}
	require.NoError(t, db.Create(&theme).Error)

	s := seed{
		today: models.Schedule{ThemeID: theme.ID, Date: time.Now().AddDate(0, 0, 1), Time: "13:00:00"},
		past:  models.Schedule{ThemeID: theme.ID, Date: time.Now().AddDate(0, 0, -3), Time: "18:30:00"},
		kim:   models.Member{Username: "kim", Name: "Kim", Role: "MEMBER"},
		lee:   models.Member{Username: "lee", Name: "Lee", Role: "MEMBER"},
	}
	require.NoError(t, db.Create(&s.today).Error)
	require.NoError(t, db.Create(&s.past).Error)
	require.NoError(t, db.Create(&s.kim).Error)
	require.NoError(t, db.Create(&s.lee).Error)
	return s
}

func TestWaitingStoreLifecycle(t *testing.T) {
	db := testDB(t)
	s := seedCatalog(t, db)
	store := NewWaitingStore(db)
	ctx := context.Background()

	first, err := store.Insert(ctx, s.today.ID, s.kim.ID)
	require.NoError(t, err)
	second, err := store.Insert(ctx, s.today.ID, s.lee.ID)
	require.NoError(t, err)
	assert.Less(t, first, second)

	e, err := store.GetByID(ctx, second)
	require.NoError(t, err)
	assert.Equal(t, "Prison Break", e.Slot.ThemeName)
	assert.Equal(t, 22000, e.Slot.Price)
	assert.Equal(t, "13:00", e.Slot.Time)
	assert.Equal(t, "Lee", e.Member.Name)

	n, err := store.CountAhead(ctx, s.today.ID, second)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	head, err := store.HeadOfLine(ctx, s.today.ID)
	require.NoError(t, err)
	assert.Equal(t, first, head.ID)

	require.NoError(t, store.DeleteByID(ctx, first))
	assert.True(t, queue.IsNotFound(store.DeleteByID(ctx, first)))

	head, err = store.HeadOfLine(ctx, s.today.ID)
	require.NoError(t, err)
	assert.Equal(t, second, head.ID)

	_, err = store.GetByID(ctx, first)
	assert.Equal(t, queue.KindWaiting, queue.NotFoundKind(err))
}

func TestWaitingStoreListsAndPurge(t *testing.T) {
	db := testDB(t)
	s := seedCatalog(t, db)
	store := NewWaitingStore(db)
	ctx := context.Background()

	a, _ := store.Insert(ctx, s.today.ID, s.kim.ID)
	b, _ := store.Insert(ctx, s.past.ID, s.kim.ID)
	c, _ := store.Insert(ctx, s.today.ID, s.lee.ID)

	list, err := store.ListBySchedule(ctx, s.today.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, a, list[0].ID)
	assert.Equal(t, c, list[1].ID)

	mine, err := store.ListByMember(ctx, s.kim.ID)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, b, mine[1].ID)

	purged, err := store.PurgeBefore(ctx, time.Now().Format(dateLayout))
	require.NoError(t, err)
	assert.EqualValues(t, 1, purged)

	_, err = store.GetByID(ctx, b)
	assert.True(t, queue.IsNotFound(err))
}

func TestWaitingStoreInsertDanglingReference(t *testing.T) {
	db := testDB(t)
	s := seedCatalog(t, db)
	store := NewWaitingStore(db)
	ctx := context.Background()

	_, err := store.Insert(ctx, 999999, s.kim.ID)
	assert.Equal(t, queue.KindSchedule, queue.NotFoundKind(err))

	_, err = store.Insert(ctx, s.today.ID, 999999)
	assert.Equal(t, queue.KindMember, queue.NotFoundKind(err))
}

func TestDirectoryResolve(t *testing.T) {
	db := testDB(t)
	s := seedCatalog(t, db)
	dir := NewDirectory(db)
	ctx := context.Background()

	slot, err := dir.ResolveSlot(ctx, s.today.ID)
	require.NoError(t, err)
	assert.Equal(t, "Prison Break", slot.ThemeName)

	_, err = dir.ResolveSlot(ctx, 999999)
	assert.Equal(t, queue.KindSchedule, queue.NotFoundKind(err))

	m, err := dir.ResolveMember(ctx, s.lee.ID)
	require.NoError(t, err)
	assert.Equal(t, "lee", m.Username)

	_, err = dir.ResolveMember(ctx, 999999)
	assert.Equal(t, queue.KindMember, queue.NotFoundKind(err))
}
