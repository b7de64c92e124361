package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/alem-hub/gradebook/internal/domain/grade"
	"github.com/alem-hub/gradebook/internal/domain/roster"
	"github.com/alem-hub/gradebook/internal/domain/student"
)

// ══════════════════════════════════════════════════════════════════════════════
// ROSTER STORE ERRORS
// ══════════════════════════════════════════════════════════════════════════════

var (
	// ErrNilStudent is returned when Append receives nil.
	ErrNilStudent = errors.New("roster_store: student cannot be nil")

	// ErrBadRankMember is returned when a ranking member cannot be decoded.
	ErrBadRankMember = errors.New("roster_store: malformed ranking member")
)

// ══════════════════════════════════════════════════════════════════════════════
// ROSTER STORE
// ══════════════════════════════════════════════════════════════════════════════

// RosterStore keeps one session's roster in Redis.
//
// Architecture:
//   - List "gradebook:session:{id}:roster" holds student JSON in insertion
//     order; the 1-based list position is the student's Seq
//   - Sorted Set "gradebook:session:{id}:ranking" maps rank members to averages
//
// Both keys carry the session TTL and are deleted on Close.
type RosterStore struct {
	cache      *Cache
	rosterKey  string
	rankingKey string
	ttl        time.Duration
}

var (
	_ roster.Repository = (*RosterStore)(nil)
	_ roster.Ranker     = (*RosterStore)(nil)
)

// NewRosterStore creates a store bound to sessionID. ttl <= 0 disables
// expiry.
func NewRosterStore(cache *Cache, sessionID string, ttl time.Duration) *RosterStore {
	return &RosterStore{
		cache:      cache,
		rosterKey:  SessionKey(sessionID, "roster"),
		rankingKey: SessionKey(sessionID, "ranking"),
		ttl:        ttl,
	}
}

// rankBase - seq is the ranking member. ZREVRANGE orders equal scores by
// member descending, so a smaller seq sorts first among equal averages.
// The base stays below 2^53 so the Lua side computes it exactly.
const (
	rankBase        = int64(999_999_999_999)
	rankMemberWidth = 12
)

// appendScript pushes the record and indexes it in one round trip so the
// list position and the ranking member always agree.
var appendScript = redis.NewScript(`
local seq = redis.call('RPUSH', KEYS[1], ARGV[1])
redis.call('ZADD', KEYS[2], ARGV[2], string.format('%012d', tonumber(ARGV[3]) - seq))
local ttl = tonumber(ARGV[4])
if ttl > 0 then
	redis.call('PEXPIRE', KEYS[1], ttl)
	redis.call('PEXPIRE', KEYS[2], ttl)
end
return seq
`)

// Append stores s and assigns its Seq.
func (r *RosterStore) Append(ctx context.Context, s *student.Student) error {
	if s == nil {
		return ErrNilStudent
	}

	data, err := json.Marshal(newStudentRecord(s))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCacheSerialization, err)
	}

	seq, err := appendScript.Run(ctx, r.cache.Client(),
		[]string{r.rosterKey, r.rankingKey},
		data,
		strconv.FormatFloat(s.Average, 'f', -1, 64),
		rankBase,
		r.ttl.Milliseconds(),
	).Int64()
	if err != nil {
		return fmt.Errorf("roster_store: append student %s: %w", s.ID, err)
	}

	s.Seq = seq
	return nil
}

// List returns all students in insertion order.
func (r *RosterStore) List(ctx context.Context) ([]*student.Student, error) {
	raw, err := r.cache.Client().LRange(ctx, r.rosterKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("roster_store: list: %w", err)
	}

	students := make([]*student.Student, 0, len(raw))
	for i, item := range raw {
		s, err := decodeStudent(item, int64(i)+1)
		if err != nil {
			return nil, err
		}
		students = append(students, s)
	}
	return students, nil
}

// Count returns the number of students.
func (r *RosterStore) Count(ctx context.Context) (int, error) {
	n, err := r.cache.Client().LLen(ctx, r.rosterKey).Result()
	if err != nil {
		return 0, fmt.Errorf("roster_store: count: %w", err)
	}
	return int(n), nil
}

// Top returns the n best averages from the sorted set, ties in insertion
// order.
func (r *RosterStore) Top(ctx context.Context, n int) ([]*student.Student, error) {
	if n <= 0 {
		return []*student.Student{}, nil
	}

	client := r.cache.Client()
	members, err := client.ZRevRange(ctx, r.rankingKey, 0, int64(n-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("roster_store: top: %w", err)
	}
	if len(members) == 0 {
		return []*student.Student{}, nil
	}

	seqs := make([]int64, len(members))
	pipe := client.Pipeline()
	cmds := make([]*redis.StringCmd, len(members))
	for i, member := range members {
		seq, err := seqFromRankMember(member)
		if err != nil {
			return nil, err
		}
		seqs[i] = seq
		cmds[i] = pipe.LIndex(ctx, r.rosterKey, seq-1)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("roster_store: top: fetch records: %w", err)
	}

	top := make([]*student.Student, 0, len(cmds))
	for i, cmd := range cmds {
		s, err := decodeStudent(cmd.Val(), seqs[i])
		if err != nil {
			return nil, err
		}
		top = append(top, s)
	}
	return top, nil
}

// Close deletes the session keys. The client itself is owned by the caller.
func (r *RosterStore) Close(ctx context.Context) error {
	if err := r.cache.Client().Del(ctx, r.rosterKey, r.rankingKey).Err(); err != nil {
		return fmt.Errorf("roster_store: purge session: %w", err)
	}
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// ENCODING
// ─────────────────────────────────────────────────────────────────────────────

// rankMember encodes seq the same way appendScript does.
func rankMember(seq int64) string {
	return fmt.Sprintf("%0*d", rankMemberWidth, rankBase-seq)
}

func seqFromRankMember(member string) (int64, error) {
	v, err := strconv.ParseInt(member, 10, 64)
	if err != nil || len(member) != rankMemberWidth || v >= rankBase || v < 0 {
		return 0, fmt.Errorf("%w: %q", ErrBadRankMember, member)
	}
	return rankBase - v, nil
}

// studentRecord is the JSON form of a student in the roster list.
type studentRecord struct {
	ID        string                        `json:"id"`
	Name      string                        `json:"name"`
	Scores    [student.SubjectCount]float64 `json:"scores"`
	Total     float64                       `json:"total"`
	Average   float64                       `json:"average"`
	Grade     string                        `json:"grade"`
	CreatedAt time.Time                     `json:"created_at"`
}

func newStudentRecord(s *student.Student) studentRecord {
	return studentRecord{
		ID:        s.ID,
		Name:      s.Name,
		Scores:    s.Scores,
		Total:     s.Total,
		Average:   s.Average,
		Grade:     s.Grade.String(),
		CreatedAt: s.CreatedAt,
	}
}

func decodeStudent(raw string, seq int64) (*student.Student, error) {
	var rec studentRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCacheSerialization, err)
	}

	g := grade.Grade(rec.Grade)
	if !g.IsValid() {
		return nil, fmt.Errorf("%w: unknown grade %q", ErrCacheSerialization, rec.Grade)
	}

	return &student.Student{
		ID:        rec.ID,
		Seq:       seq,
		Name:      rec.Name,
		Scores:    student.Scores(rec.Scores),
		Total:     rec.Total,
		Average:   rec.Average,
		Grade:     g,
		CreatedAt: rec.CreatedAt,
	}, nil
}
