package service

import (
	"context"
	"sort"
	"sync"

	"travelorbit-be/internal/entity"
	"travelorbit-be/internal/pkg/logger"
	"travelorbit-be/internal/repository/contract"
	"travelorbit-be/internal/repository/specification"
	"travelorbit-be/internal/repository/unitofwork"
	"travelorbit-be/pkg/llm"

	"github.com/google/uuid"
)

// memStore is the shared backing state for the in-memory repositories.
// Every write copies and every read hands out copies, mirroring how GORM
// hydrates fresh structs per query, so a stale in-handler copy stays stale.
type memStore struct {
	mu       sync.Mutex
	users    []entity.User
	trips    []entity.Trip
	messages []entity.TripMessage
	groups   []entity.TravelGroup
	members  []entity.GroupMember
	votes    []entity.GroupVote
	feedback []entity.TripFeedback

	// groupCreateErr, when set, decides the outcome of each group insert.
	groupCreateErr func(code string) error
	// beforeMarkConverted runs inside MarkConverted ahead of the NULL
	// check, standing in for a concurrent converter.
	beforeMarkConverted func(s *memStore)
}

func newMemStore() *memStore {
	return &memStore{}
}

func (s *memStore) tripByID(id uuid.UUID) *entity.Trip {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.trips {
		if s.trips[i].Id == id {
			trip := s.trips[i]
			return &trip
		}
	}
	return nil
}

func (s *memStore) setTrip(trip entity.Trip) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.trips {
		if s.trips[i].Id == trip.Id {
			s.trips[i] = trip
			return
		}
	}
	s.trips = append(s.trips, trip)
}

func (s *memStore) groupByID(id uuid.UUID) *entity.TravelGroup {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.groups {
		if s.groups[i].Id == id {
			g := s.groups[i]
			return &g
		}
	}
	return nil
}

// fakeFactory satisfies unitofwork.RepositoryFactory over a memStore.
type fakeFactory struct {
	store *memStore
}

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &fakeUnitOfWork{store: f.store}
}

type fakeUnitOfWork struct {
	store *memStore
}

func (u *fakeUnitOfWork) Begin(ctx context.Context) error { return nil }
func (u *fakeUnitOfWork) Commit() error                   { return nil }
func (u *fakeUnitOfWork) Rollback() error                 { return nil }

func (u *fakeUnitOfWork) UserRepository() contract.UserRepository {
	return &fakeUserRepo{store: u.store}
}
func (u *fakeUnitOfWork) OtpRepository() contract.OtpRepository { return nil }
func (u *fakeUnitOfWork) TripRepository() contract.TripRepository {
	return &fakeTripRepo{store: u.store}
}
func (u *fakeUnitOfWork) TripMessageRepository() contract.TripMessageRepository {
	return &fakeTripMessageRepo{store: u.store}
}
func (u *fakeUnitOfWork) TripFeedbackRepository() contract.TripFeedbackRepository {
	return &fakeTripFeedbackRepo{store: u.store}
}
func (u *fakeUnitOfWork) TravelGroupRepository() contract.TravelGroupRepository {
	return &fakeTravelGroupRepo{store: u.store}
}
func (u *fakeUnitOfWork) GroupMemberRepository() contract.GroupMemberRepository {
	return &fakeGroupMemberRepo{store: u.store}
}
func (u *fakeUnitOfWork) GroupVoteRepository() contract.GroupVoteRepository {
	return &fakeGroupVoteRepo{store: u.store}
}
func (u *fakeUnitOfWork) DealRepository() contract.DealRepository       { return nil }
func (u *fakeUnitOfWork) PaymentRepository() contract.PaymentRepository { return nil }

// querySpec is the interpreted form of a specification list.
type querySpec struct {
	orderField string
	orderDesc  bool
	limit      int
	offset     int
}

func interpret(specs []specification.Specification) (querySpec, []specification.Specification) {
	q := querySpec{limit: -1}
	filters := make([]specification.Specification, 0, len(specs))
	for _, spec := range specs {
		switch v := spec.(type) {
		case specification.OrderBy:
			q.orderField = v.Field
			q.orderDesc = v.Desc
		case specification.Pagination:
			q.limit = v.Limit
			q.offset = v.Offset
		case specification.ForUpdate:
			// Row locking has no observable effect on a single store.
		default:
			filters = append(filters, spec)
		}
	}
	return q, filters
}

// Trip repository

type fakeTripRepo struct {
	store *memStore
}

func tripMatches(t *entity.Trip, spec specification.Specification) bool {
	switch v := spec.(type) {
	case specification.ByID:
		return t.Id == v.ID
	case specification.ByUserID:
		return t.UserId == v.UserID
	case specification.ByOwnerEmail:
		return t.Email == v.Email
	case specification.ByStatus:
		return string(t.Status) == v.Status
	case specification.OpenTrips:
		return t.Status == entity.TripStatusDraft || t.Status == entity.TripStatusPlanned
	case specification.EndedOn:
		return t.EndDate != nil && t.EndDate.Format("2006-01-02") == v.Date.Format("2006-01-02")
	case specification.FeedbackEmailPending:
		return !t.FeedbackEmailSent &&
			(t.Status == entity.TripStatusPlanned || t.Status == entity.TripStatusPaid)
	default:
		return true
	}
}

func (r *fakeTripRepo) collect(specs ...specification.Specification) []entity.Trip {
	q, filters := interpret(specs)

	r.store.mu.Lock()
	var out []entity.Trip
	for _, t := range r.store.trips {
		ok := true
		for _, f := range filters {
			if !tripMatches(&t, f) {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, t)
		}
	}
	r.store.mu.Unlock()

	if q.orderField == "created_at" {
		sort.SliceStable(out, func(i, j int) bool {
			if q.orderDesc {
				return out[i].CreatedAt.After(out[j].CreatedAt)
			}
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		})
	}
	if q.offset > 0 && q.offset < len(out) {
		out = out[q.offset:]
	} else if q.offset >= len(out) && q.offset > 0 {
		out = nil
	}
	if q.limit >= 0 && q.limit < len(out) {
		out = out[:q.limit]
	}
	return out
}

func (r *fakeTripRepo) Create(ctx context.Context, trip *entity.Trip) error {
	r.store.setTrip(*trip)
	return nil
}

func (r *fakeTripRepo) Update(ctx context.Context, trip *entity.Trip) error {
	r.store.setTrip(*trip)
	return nil
}

func (r *fakeTripRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i := range r.store.trips {
		if r.store.trips[i].Id == id {
			r.store.trips = append(r.store.trips[:i], r.store.trips[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *fakeTripRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Trip, error) {
	out := r.collect(specs...)
	if len(out) == 0 {
		return nil, nil
	}
	trip := out[0]
	return &trip, nil
}

func (r *fakeTripRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Trip, error) {
	out := r.collect(specs...)
	trips := make([]*entity.Trip, len(out))
	for i := range out {
		trip := out[i]
		trips[i] = &trip
	}
	return trips, nil
}

func (r *fakeTripRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.collect(specs...))), nil
}

// Trip message repository

type fakeTripMessageRepo struct {
	store *memStore
}

func messageMatches(m *entity.TripMessage, spec specification.Specification) bool {
	switch v := spec.(type) {
	case specification.ByTripID:
		return m.TripId == v.TripID
	default:
		return true
	}
}

func (r *fakeTripMessageRepo) collect(specs ...specification.Specification) []entity.TripMessage {
	_, filters := interpret(specs)

	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []entity.TripMessage
	for _, m := range r.store.messages {
		ok := true
		for _, f := range filters {
			if !messageMatches(&m, f) {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, m)
		}
	}
	// Insertion order doubles as created_at order for same-instant writes.
	return out
}

func (r *fakeTripMessageRepo) Create(ctx context.Context, message *entity.TripMessage) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.messages = append(r.store.messages, *message)
	return nil
}

func (r *fakeTripMessageRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.TripMessage, error) {
	out := r.collect(specs...)
	msgs := make([]*entity.TripMessage, len(out))
	for i := range out {
		m := out[i]
		msgs[i] = &m
	}
	return msgs, nil
}

func (r *fakeTripMessageRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.collect(specs...))), nil
}

func (r *fakeTripMessageRepo) DeleteByTripId(ctx context.Context, tripId uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var kept []entity.TripMessage
	for _, m := range r.store.messages {
		if m.TripId != tripId {
			kept = append(kept, m)
		}
	}
	r.store.messages = kept
	return nil
}

// Feedback repository

type fakeTripFeedbackRepo struct {
	store *memStore
}

func feedbackMatches(fb *entity.TripFeedback, spec specification.Specification) bool {
	switch v := spec.(type) {
	case specification.ByTripID:
		return fb.TripId == v.TripID
	default:
		return true
	}
}

func (r *fakeTripFeedbackRepo) collect(specs ...specification.Specification) []entity.TripFeedback {
	_, filters := interpret(specs)

	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []entity.TripFeedback
	for _, fb := range r.store.feedback {
		ok := true
		for _, f := range filters {
			if !feedbackMatches(&fb, f) {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, fb)
		}
	}
	return out
}

func (r *fakeTripFeedbackRepo) Create(ctx context.Context, feedback *entity.TripFeedback) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.feedback = append(r.store.feedback, *feedback)
	return nil
}

func (r *fakeTripFeedbackRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.TripFeedback, error) {
	out := r.collect(specs...)
	fbs := make([]*entity.TripFeedback, len(out))
	for i := range out {
		fb := out[i]
		fbs[i] = &fb
	}
	return fbs, nil
}

func (r *fakeTripFeedbackRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.collect(specs...))), nil
}

// User repository

type fakeUserRepo struct {
	store *memStore
}

func userMatches(u *entity.User, spec specification.Specification) bool {
	switch v := spec.(type) {
	case specification.ByID:
		return u.Id == v.ID
	case specification.ByEmail:
		return u.Email == v.Email
	default:
		return true
	}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.users = append(r.store.users, *user)
	return nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i := range r.store.users {
		if r.store.users[i].Id == user.Id {
			r.store.users[i] = *user
			return nil
		}
	}
	return nil
}

func (r *fakeUserRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	_, filters := interpret(specs)
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, u := range r.store.users {
		ok := true
		for _, f := range filters {
			if !userMatches(&u, f) {
				ok = false
				break
			}
		}
		if ok {
			user := u
			return &user, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.User, error) {
	return nil, nil
}

// Travel group repository

type fakeTravelGroupRepo struct {
	store *memStore
}

func groupMatches(g *entity.TravelGroup, spec specification.Specification) bool {
	switch v := spec.(type) {
	case specification.ByID:
		return g.Id == v.ID
	case specification.ByCode:
		return g.Code == v.Code
	default:
		return true
	}
}

func (r *fakeTravelGroupRepo) Create(ctx context.Context, group *entity.TravelGroup) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.groupCreateErr != nil {
		if err := r.store.groupCreateErr(group.Code); err != nil {
			return err
		}
	}
	for _, g := range r.store.groups {
		if g.Code == group.Code {
			return contract.ErrDuplicateGroupCode
		}
	}
	r.store.groups = append(r.store.groups, *group)
	return nil
}

func (r *fakeTravelGroupRepo) Update(ctx context.Context, group *entity.TravelGroup) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i := range r.store.groups {
		if r.store.groups[i].Id == group.Id {
			r.store.groups[i] = *group
			return nil
		}
	}
	return nil
}

func (r *fakeTravelGroupRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.TravelGroup, error) {
	_, filters := interpret(specs)
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, g := range r.store.groups {
		ok := true
		for _, f := range filters {
			if !groupMatches(&g, f) {
				ok = false
				break
			}
		}
		if ok {
			group := g
			return &group, nil
		}
	}
	return nil, nil
}

func (r *fakeTravelGroupRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.TravelGroup, error) {
	return nil, nil
}

func (r *fakeTravelGroupRepo) MarkConverted(ctx context.Context, groupId uuid.UUID, tripId uuid.UUID) (bool, error) {
	if r.store.beforeMarkConverted != nil {
		hook := r.store.beforeMarkConverted
		r.store.beforeMarkConverted = nil
		hook(r.store)
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i := range r.store.groups {
		if r.store.groups[i].Id == groupId {
			if r.store.groups[i].ConvertedTripId != nil {
				return false, nil
			}
			id := tripId
			r.store.groups[i].ConvertedTripId = &id
			return true, nil
		}
	}
	return false, nil
}

// Group member repository

type fakeGroupMemberRepo struct {
	store *memStore
}

func memberMatches(m *entity.GroupMember, spec specification.Specification) bool {
	switch v := spec.(type) {
	case specification.ByGroupID:
		return m.GroupId == v.GroupID
	case specification.ByMemberEmail:
		return m.Email == v.Email
	default:
		return true
	}
}

func (r *fakeGroupMemberRepo) Create(ctx context.Context, member *entity.GroupMember) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.members = append(r.store.members, *member)
	return nil
}

func (r *fakeGroupMemberRepo) Update(ctx context.Context, member *entity.GroupMember) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i := range r.store.members {
		if r.store.members[i].Id == member.Id {
			r.store.members[i] = *member
			return nil
		}
	}
	return nil
}

func (r *fakeGroupMemberRepo) collect(specs ...specification.Specification) []entity.GroupMember {
	_, filters := interpret(specs)
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []entity.GroupMember
	for _, m := range r.store.members {
		ok := true
		for _, f := range filters {
			if !memberMatches(&m, f) {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, m)
		}
	}
	return out
}

func (r *fakeGroupMemberRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.GroupMember, error) {
	out := r.collect(specs...)
	if len(out) == 0 {
		return nil, nil
	}
	m := out[0]
	return &m, nil
}

func (r *fakeGroupMemberRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.GroupMember, error) {
	out := r.collect(specs...)
	ms := make([]*entity.GroupMember, len(out))
	for i := range out {
		m := out[i]
		ms[i] = &m
	}
	return ms, nil
}

func (r *fakeGroupMemberRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.collect(specs...))), nil
}

// Group vote repository

type fakeGroupVoteRepo struct {
	store *memStore
}

func voteMatches(v *entity.GroupVote, spec specification.Specification) bool {
	switch sv := spec.(type) {
	case specification.ByGroupID:
		return v.GroupId == sv.GroupID
	case specification.ByVoterEmail:
		return v.VoterEmail == sv.Email
	default:
		return true
	}
}

func (r *fakeGroupVoteRepo) Create(ctx context.Context, vote *entity.GroupVote) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, existing := range r.store.votes {
		if existing.GroupId == vote.GroupId && existing.VoterEmail == vote.VoterEmail {
			return contract.ErrDuplicateVote
		}
	}
	r.store.votes = append(r.store.votes, *vote)
	return nil
}

func (r *fakeGroupVoteRepo) Update(ctx context.Context, vote *entity.GroupVote) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i := range r.store.votes {
		if r.store.votes[i].Id == vote.Id {
			r.store.votes[i] = *vote
			return nil
		}
	}
	return nil
}

func (r *fakeGroupVoteRepo) collect(specs ...specification.Specification) []entity.GroupVote {
	_, filters := interpret(specs)
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []entity.GroupVote
	for _, v := range r.store.votes {
		ok := true
		for _, f := range filters {
			if !voteMatches(&v, f) {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, v)
		}
	}
	return out
}

func (r *fakeGroupVoteRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.GroupVote, error) {
	out := r.collect(specs...)
	if len(out) == 0 {
		return nil, nil
	}
	v := out[0]
	return &v, nil
}

func (r *fakeGroupVoteRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.GroupVote, error) {
	out := r.collect(specs...)
	vs := make([]*entity.GroupVote, len(out))
	for i := range out {
		v := out[i]
		vs[i] = &v
	}
	return vs, nil
}

func (r *fakeGroupVoteRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.collect(specs...))), nil
}

// scriptedLLM serves canned completions and counts calls. An optional
// onChat hook runs before each reply, which lets a test mutate the store
// while a "model call" is in flight.
type scriptedLLM struct {
	mu      sync.Mutex
	replies []string
	err     error
	calls   int
	onChat  func(call int)
}

func (p *scriptedLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	p.mu.Lock()
	p.calls++
	call := p.calls
	hook := p.onChat
	p.mu.Unlock()

	if hook != nil {
		hook(call)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return "", p.err
	}
	if len(p.replies) == 0 {
		return "", nil
	}
	reply := p.replies[0]
	if len(p.replies) > 1 {
		p.replies = p.replies[1:]
	}
	return reply, nil
}

func (p *scriptedLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return p.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, options...)
}

func (p *scriptedLLM) callCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

// nopLogger discards everything.
type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

var _ logger.ILogger = nopLogger{}
