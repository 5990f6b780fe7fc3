package repository

import (
	"os"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/animew/internal/model"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// 游客 Cookie 被伪造成用户自身标识时归并必须是 no-op，否则自合并会删光历史
func TestReassignGuestSelfIdentityIsNoop(t *testing.T) {
	r := NewHistoryRepository(nil)

	// 标识相同时在触碰数据库之前就返回
	assert.NoError(t, r.ReassignGuest(UserOwnerID(7), 7))
}

// testDB 连接 TEST_DATABASE_URL 指向的数据库，未设置时跳过
func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL 未设置，跳过数据库测试")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Anime{}, &model.History{}))
	require.NoError(t, db.Exec("DELETE FROM histories").Error)

	return db
}

func TestRecordEpisodeSetSemantics(t *testing.T) {
	r := NewHistoryRepository(testDB(t))

	// 同一集看两遍，再看另一集
	require.NoError(t, r.RecordEpisode("guest-1", 1, 3))
	require.NoError(t, r.RecordEpisode("guest-1", 1, 3))
	require.NoError(t, r.RecordEpisode("guest-1", 1, 5))

	histories, err := r.ListByOwner("guest-1")
	require.NoError(t, err)
	require.Len(t, histories, 1)
	assert.Equal(t, pq.Int64Array{3, 5}, histories[0].Episodes)
}

func TestReassignGuestMergesAndIsIdempotent(t *testing.T) {
	db := testDB(t)
	r := NewHistoryRepository(db)
	owner := UserOwnerID(7)

	// 用户和游客在番剧 1 上有重叠记录，游客独占番剧 2
	require.NoError(t, r.RecordEpisode(owner, 1, 1))
	require.NoError(t, r.RecordEpisode("guest-x", 1, 2))
	require.NoError(t, r.RecordEpisode("guest-x", 2, 4))
	require.NoError(t, db.Exec("UPDATE histories SET watched_minutes = 10 WHERE owner_id = ?", owner).Error)
	require.NoError(t, db.Exec("UPDATE histories SET watched_minutes = 5 WHERE owner_id = ?", "guest-x").Error)

	require.NoError(t, r.ReassignGuest("guest-x", 7))

	byAnime := func() map[int]*model.History {
		histories, err := r.ListByOwner(owner)
		require.NoError(t, err)
		m := make(map[int]*model.History, len(histories))
		for _, h := range histories {
			m[h.AnimeID] = h
		}
		return m
	}

	merged := byAnime()
	require.Len(t, merged, 2)
	assert.Equal(t, pq.Int64Array{1, 2}, merged[1].Episodes)
	assert.Equal(t, 15, merged[1].WatchedMinutes)
	assert.Equal(t, pq.Int64Array{4}, merged[2].Episodes)
	assert.Equal(t, 5, merged[2].WatchedMinutes)

	guestLeft, err := r.ListByOwner("guest-x")
	require.NoError(t, err)
	assert.Empty(t, guestLeft)

	// 重复执行找不到游客记录，结果不变
	require.NoError(t, r.ReassignGuest("guest-x", 7))
	repeated := byAnime()
	require.Len(t, repeated, 2)
	assert.Equal(t, 15, repeated[1].WatchedMinutes)
	assert.Equal(t, pq.Int64Array{1, 2}, repeated[1].Episodes)
}
