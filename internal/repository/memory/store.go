// Package memory is the in-process entity store: id-keyed tables with
// per-type counters, secondary indexes, and composite uniqueness enforced
// under a single store-wide lock.
package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/hackmap/engine/internal/models"
	"github.com/hackmap/engine/internal/repository"
)

type pair struct{ a, b uint }

// Store implements repository.Store in memory.
type Store struct {
	scope

	mu  sync.RWMutex
	now func() time.Time

	users         *table[models.User]
	hackathons    *table[models.Hackathon]
	registrations *table[models.Registration]
	teams         *table[models.Team]
	members       *table[models.TeamMember]
	ideas         *table[models.ProjectIdea]
	comments      *table[models.Comment]
	endorsements  *table[models.Endorsement]
	notifications *table[models.Notification]

	usernames           map[string]uint
	emails              map[string]uint
	registrationsByPair map[pair]uint // (user, hackathon)
	registrationsByUser map[uint][]uint
	teamsByCode         map[string]uint
	teamsByHackathon    map[uint][]uint
	membersByPair       map[pair]uint // (team, user)
	membersByTeam       map[uint][]uint
	membersByUser       map[uint][]uint
	commentsByProject   map[uint][]uint
	endorsementsByPair  map[pair]uint // (project, user)
	endorsementCounts   map[uint]int
	notificationsByUser map[uint][]uint
}

var _ repository.Store = (*Store)(nil)

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the clock used to stamp rows created without a timestamp.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func New(opts ...Option) *Store {
	s := &Store{
		now:                 time.Now,
		users:               newTable[models.User](),
		hackathons:          newTable[models.Hackathon](),
		registrations:       newTable[models.Registration](),
		teams:               newTable[models.Team](),
		members:             newTable[models.TeamMember](),
		ideas:               newTable[models.ProjectIdea](),
		comments:            newTable[models.Comment](),
		endorsements:        newTable[models.Endorsement](),
		notifications:       newTable[models.Notification](),
		usernames:           map[string]uint{},
		emails:              map[string]uint{},
		registrationsByPair: map[pair]uint{},
		registrationsByUser: map[uint][]uint{},
		teamsByCode:         map[string]uint{},
		teamsByHackathon:    map[uint][]uint{},
		membersByPair:       map[pair]uint{},
		membersByTeam:       map[uint][]uint{},
		membersByUser:       map[uint][]uint{},
		commentsByProject:   map[uint][]uint{},
		endorsementsByPair:  map[pair]uint{},
		endorsementCounts:   map[uint]int{},
		notificationsByUser: map[uint][]uint{},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.scope = scope{s: s}
	return s
}

// scope is a view of the store. Outside a transaction every call takes the
// lock itself; inside one the lock is already held and writes are journaled
// so they can be undone.
type scope struct {
	s       *Store
	journal *[]func()
}

func (sc scope) inTx() bool { return sc.journal != nil }

func (sc scope) rlock() func() {
	if sc.inTx() {
		return func() {}
	}
	sc.s.mu.RLock()
	return sc.s.mu.RUnlock
}

func (sc scope) lock() func() {
	if sc.inTx() {
		return func() {}
	}
	sc.s.mu.Lock()
	return sc.s.mu.Unlock
}

// undo registers a compensating action for a write made in a transaction.
func (sc scope) undo(fn func()) {
	if sc.inTx() {
		*sc.journal = append(*sc.journal, fn)
	}
}

func (sc scope) stamp(t time.Time) time.Time {
	if t.IsZero() {
		return sc.s.now()
	}
	return t
}

func (sc scope) Users() repository.UserRepository                 { return userRepo{sc} }
func (sc scope) Hackathons() repository.HackathonRepository       { return hackathonRepo{sc} }
func (sc scope) Registrations() repository.RegistrationRepository { return registrationRepo{sc} }
func (sc scope) Teams() repository.TeamRepository                 { return teamRepo{sc} }
func (sc scope) TeamMembers() repository.TeamMemberRepository     { return memberRepo{sc} }
func (sc scope) Ideas() repository.ProjectIdeaRepository          { return ideaRepo{sc} }
func (sc scope) Comments() repository.CommentRepository           { return commentRepo{sc} }
func (sc scope) Endorsements() repository.EndorsementRepository   { return endorsementRepo{sc} }
func (sc scope) Notifications() repository.NotificationRepository { return notificationRepo{sc} }

func (sc scope) WithinTx(ctx context.Context, fn func(tx repository.Store) error) error {
	if sc.inTx() {
		return fn(sc)
	}
	sc.s.mu.Lock()
	defer sc.s.mu.Unlock()

	var journal []func()
	if err := fn(scope{s: sc.s, journal: &journal}); err != nil {
		for i := len(journal) - 1; i >= 0; i-- {
			journal[i]()
		}
		return err
	}
	return nil
}

// table is an id-keyed collection that remembers insertion order.
// Ids come from a per-table counter starting at 1 and are never reused.
type table[T any] struct {
	seq   uint
	rows  map[uint]T
	order []uint
}

func newTable[T any]() *table[T] {
	return &table[T]{rows: map[uint]T{}}
}

func (t *table[T]) nextID() uint {
	t.seq++
	return t.seq
}

func (t *table[T]) put(id uint, row T) {
	if _, ok := t.rows[id]; !ok {
		t.order = append(t.order, id)
	}
	t.rows[id] = row
}

func (t *table[T]) get(id uint) (T, bool) {
	row, ok := t.rows[id]
	return row, ok
}

func (t *table[T]) remove(id uint) {
	if _, ok := t.rows[id]; !ok {
		return
	}
	delete(t.rows, id)
	t.order = removeID(t.order, id)
}

func (t *table[T]) all() []T {
	out := make([]T, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, t.rows[id])
	}
	return out
}

func (t *table[T]) pick(ids []uint) []T {
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		if row, ok := t.rows[id]; ok {
			out = append(out, row)
		}
	}
	return out
}

func removeID(ids []uint, id uint) []uint {
	if i := slices.Index(ids, id); i >= 0 {
		return slices.Delete(ids, i, i+1)
	}
	return ids
}

func copyPtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func ptrOf[T any](v T, ok bool) *T {
	if !ok {
		return nil
	}
	return &v
}

func mapRows[T any](rows []T, clone func(T) T) []T {
	for i := range rows {
		rows[i] = clone(rows[i])
	}
	return rows
}
