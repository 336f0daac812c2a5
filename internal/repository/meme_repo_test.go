package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/timmy/memelens/internal/domain"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, Migrate(db))
	return db
}

func TestMemeRepository_FindOrCreate_CreatesWhenAbsent(t *testing.T) {
	repo := NewMemeRepository(newTestDB(t))
	ctx := context.Background()

	meme, err := repo.FindOrCreate(ctx, &domain.Meme{
		Language:     domain.LanguageChinese,
		Term:         "蚌埠住了",
		Explanation:  "谐音“绷不住了”，表示忍不住笑或情绪失控",
		ReferenceURL: "https://example.com/bengbu",
	})
	require.NoError(t, err)
	assert.NotZero(t, meme.ID)

	stored, err := repo.FindByTerm(ctx, "蚌埠住了")
	require.NoError(t, err)
	assert.Equal(t, meme.ID, stored.ID)
	assert.Equal(t, "https://example.com/bengbu", stored.ReferenceURL)
}

func TestMemeRepository_FindOrCreate_ReusesWithoutUpdating(t *testing.T) {
	repo := NewMemeRepository(newTestDB(t))
	ctx := context.Background()

	first, err := repo.FindOrCreate(ctx, &domain.Meme{Term: "X", Explanation: "original"})
	require.NoError(t, err)

	second, err := repo.FindOrCreate(ctx, &domain.Meme{Term: "X", Explanation: "changed"})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "original", second.Explanation)

	stored, err := repo.FindByTerm(ctx, "X")
	require.NoError(t, err)
	assert.Equal(t, "original", stored.Explanation)
}

func TestMemeRepository_FindOrCreate_TermIsCaseSensitive(t *testing.T) {
	repo := NewMemeRepository(newTestDB(t))
	ctx := context.Background()

	lower, err := repo.FindOrCreate(ctx, &domain.Meme{Term: "yyds", Explanation: "永远的神"})
	require.NoError(t, err)

	upper, err := repo.FindOrCreate(ctx, &domain.Meme{Term: "YYDS", Explanation: "shouting variant"})
	require.NoError(t, err)

	assert.NotEqual(t, lower.ID, upper.ID)
}

func TestMemeRepository_SoftDeletedTermCanBeRecreated(t *testing.T) {
	repo := NewMemeRepository(newTestDB(t))
	ctx := context.Background()

	first, err := repo.FindOrCreate(ctx, &domain.Meme{Term: "摆烂", Explanation: "放弃挣扎"})
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, first.ID))

	// The term no longer resolves, and a new live row can take its place.
	_, err = repo.FindByTerm(ctx, "摆烂")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	second, err := repo.FindOrCreate(ctx, &domain.Meme{Term: "摆烂", Explanation: "重新收录"})
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, "重新收录", second.Explanation)
}

func TestMemeRepository_ListExcludesSoftDeleted(t *testing.T) {
	repo := NewMemeRepository(newTestDB(t))
	ctx := context.Background()

	kept, err := repo.FindOrCreate(ctx, &domain.Meme{Term: "kept", Explanation: "stays"})
	require.NoError(t, err)

	gone, err := repo.FindOrCreate(ctx, &domain.Meme{Term: "gone", Explanation: "leaves"})
	require.NoError(t, err)
	require.NoError(t, repo.Delete(ctx, gone.ID))

	memes, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, memes, 1)
	assert.Equal(t, kept.ID, memes[0].ID)
}

func TestMemeRepository_CreateDefaultsLanguage(t *testing.T) {
	repo := NewMemeRepository(newTestDB(t))
	ctx := context.Background()

	meme := &domain.Meme{Term: "plain", Explanation: "no language set"}
	require.NoError(t, repo.Create(ctx, meme))

	stored, err := repo.GetByID(ctx, meme.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.LanguageChinese, stored.Language)
}
