package redis

import (
	"context"
	"os"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alem-hub/gradebook/internal/domain/grade"
	"github.com/alem-hub/gradebook/internal/domain/student"
)

func newStudent(t *testing.T, name string, marks ...float64) *student.Student {
	t.Helper()
	s, err := student.NewStudent(student.NewStudentParams{ID: uuid.NewString(), Name: name, Marks: marks})
	require.NoError(t, err)
	return s
}

func TestRankMember(t *testing.T) {
	for _, seq := range []int64{1, 2, 10, 12345} {
		member := rankMember(seq)
		assert.Len(t, member, rankMemberWidth)

		back, err := seqFromRankMember(member)
		require.NoError(t, err)
		assert.Equal(t, seq, back)
	}

	// Reverse lexical order of members is ascending seq order.
	members := []string{rankMember(3), rankMember(1), rankMember(10), rankMember(2)}
	sort.Sort(sort.Reverse(sort.StringSlice(members)))
	var seqs []int64
	for _, m := range members {
		seq, err := seqFromRankMember(m)
		require.NoError(t, err)
		seqs = append(seqs, seq)
	}
	assert.Equal(t, []int64{1, 2, 3, 10}, seqs)

	for _, bad := range []string{"", "abc", "1", "999999999999", "-00000000001"} {
		_, err := seqFromRankMember(bad)
		assert.ErrorIs(t, err, ErrBadRankMember, bad)
	}
}

func TestStudentRecord(t *testing.T) {
	s := newStudent(t, "Bob Smith", 76.2, 82.5, 74.8, 79.0, 81.3)

	rec := newStudentRecord(s)
	assert.Equal(t, "B", rec.Grade)
	assert.Equal(t, s.Scores.Get(student.Arts), rec.Scores[student.Arts])

	raw := `{"id":"x","name":"Bob Smith","scores":[76.2,82.5,74.8,79,81.3],` +
		`"total":393.8,"average":78.76,"grade":"B","created_at":"2024-01-02T03:04:05Z"}`
	back, err := decodeStudent(raw, 4)
	require.NoError(t, err)
	assert.Equal(t, int64(4), back.Seq)
	assert.Equal(t, grade.B, back.Grade)
	assert.Equal(t, 78.76, back.Average)
	assert.Equal(t, 82.5, back.Scores.Get(student.Science))

	_, err = decodeStudent(`{"grade":"Q"}`, 1)
	assert.ErrorIs(t, err, ErrCacheSerialization)
	_, err = decodeStudent(`not json`, 1)
	assert.ErrorIs(t, err, ErrCacheSerialization)
}

func TestConfigOptions(t *testing.T) {
	opts, err := Config{URL: "redis://:secret@cache:6380/2", PoolSize: 3}.Options()
	require.NoError(t, err)
	assert.Equal(t, "cache:6380", opts.Addr)
	assert.Equal(t, "secret", opts.Password)
	assert.Equal(t, 2, opts.DB)
	assert.Equal(t, 3, opts.PoolSize)

	opts, err = DefaultConfig().Options()
	require.NoError(t, err)
	assert.Equal(t, "localhost:6379", opts.Addr)

	_, err = Config{}.Options()
	assert.ErrorIs(t, err, ErrCacheConfig)
	_, err = Config{URL: "http://nope"}.Options()
	assert.ErrorIs(t, err, ErrCacheConfig)
}

func TestSessionKey(t *testing.T) {
	assert.Equal(t, "gradebook:session:abc:roster", SessionKey("abc", "roster"))
}

// TestRosterStore_Integration runs against a real server when
// GRADEBOOK_TEST_REDIS_URL is set.
func TestRosterStore_Integration(t *testing.T) {
	url := os.Getenv("GRADEBOOK_TEST_REDIS_URL")
	if url == "" {
		t.Skip("GRADEBOOK_TEST_REDIS_URL not set")
	}

	ctx := context.Background()
	cache, err := NewCache(ctx, Config{URL: url})
	require.NoError(t, err)
	defer cache.Close()

	store := NewRosterStore(cache, uuid.NewString(), time.Minute)
	defer func() { _ = store.Close(ctx) }()

	first := newStudent(t, "Tie One", 80, 80, 80, 80, 80)
	second := newStudent(t, "Tie Two", 80, 80, 80, 80, 80)
	best := newStudent(t, "Best", 99, 99, 99, 99, 99)
	for _, s := range []*student.Student{first, second, best} {
		require.NoError(t, store.Append(ctx, s))
	}
	assert.Equal(t, int64(3), best.Seq)

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	top, err := store.Top(ctx, 3)
	require.NoError(t, err)
	require.Len(t, top, 3)
	assert.Equal(t, "Best", top[0].Name)
	assert.Equal(t, "Tie One", top[1].Name)
	assert.Equal(t, "Tie Two", top[2].Name)

	require.NoError(t, store.Close(ctx))
	list, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}
