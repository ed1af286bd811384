package app

import (
	"context"
	"sync"

	"pick_day_bot/internal/domain/calendar"
	"pick_day_bot/internal/domain/group"
	"pick_day_bot/internal/domain/member"
	"pick_day_bot/internal/domain/messaging"
	"pick_day_bot/internal/domain/schedule"
	"pick_day_bot/internal/domain/vote"
	idb "pick_day_bot/internal/infra/database"
)

// In-memory fakes returning the same sentinel errors as the Postgres
// implementations, so services exercise the identical branch logic.

type fakeGroupRepo struct {
	mu     sync.Mutex
	active *group.Group
}

func (f *fakeGroupRepo) GetActive(ctx context.Context) (*group.Group, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.active == nil {
		return nil, idb.ErrGroupNotFound
	}
	g := *f.active
	return &g, nil
}

func (f *fakeGroupRepo) Save(ctx context.Context, g *group.Group) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	saved := *g
	f.active = &saved
	return nil
}

func (f *fakeGroupRepo) UpdateWindow(ctx context.Context, groupID string, startDay, endDay int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.active == nil || f.active.ID != groupID {
		return idb.ErrGroupNotFound
	}
	f.active.AutoVoteStartDay = startDay
	f.active.AutoVoteEndDay = endDay
	return nil
}

type fakeScheduleRepo struct {
	mu      sync.Mutex
	records map[string]*schedule.Record
}

func newFakeScheduleRepo() *fakeScheduleRepo {
	return &fakeScheduleRepo{records: make(map[string]*schedule.Record)}
}

func scheduleKey(groupID, yearMonth string) string { return groupID + "_" + yearMonth }

func (f *fakeScheduleRepo) Get(ctx context.Context, groupID, yearMonth string) (*schedule.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.records[scheduleKey(groupID, yearMonth)]
	if !ok {
		return nil, idb.ErrScheduleNotFound
	}
	cp := *rec
	return &cp, nil
}

func (f *fakeScheduleRepo) Open(ctx context.Context, groupID, yearMonth string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := scheduleKey(groupID, yearMonth)
	if rec, ok := f.records[key]; ok {
		rec.Status = schedule.StatusOpen
		return nil
	}
	f.records[key] = &schedule.Record{GroupID: groupID, YearMonth: yearMonth, Status: schedule.StatusOpen}
	return nil
}

func (f *fakeScheduleRepo) Close(ctx context.Context, groupID, yearMonth string, final []schedule.FinalDate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.records[scheduleKey(groupID, yearMonth)]
	if !ok {
		return idb.ErrScheduleNotFound
	}
	rec.Status = schedule.StatusClosed
	rec.FinalSelection = final
	return nil
}

type fakeLedger struct {
	mu      sync.Mutex
	choices map[string]map[string]vote.Choice // date key -> user -> choice
	order   map[string][]string               // date key -> arrival order
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{
		choices: make(map[string]map[string]vote.Choice),
		order:   make(map[string][]string),
	}
}

func dateKey(groupID string, date calendar.Date) string { return groupID + "_" + date.String() }

func (f *fakeLedger) SetChoice(ctx context.Context, groupID string, date calendar.Date, userID string, choice vote.Choice) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := dateKey(groupID, date)
	if f.choices[key] == nil {
		f.choices[key] = make(map[string]vote.Choice)
	}
	if _, seen := f.choices[key][userID]; !seen {
		f.order[key] = append(f.order[key], userID)
	}
	f.choices[key][userID] = choice
	return nil
}

func (f *fakeLedger) Get(ctx context.Context, groupID string, date calendar.Date) (*vote.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := dateKey(groupID, date)
	rec := &vote.Record{GroupID: groupID, Date: date}
	for _, userID := range f.order[key] {
		switch f.choices[key][userID] {
		case vote.ChoiceYes:
			rec.YesVoters = append(rec.YesVoters, userID)
		case vote.ChoiceNo:
			rec.NoVoters = append(rec.NoVoters, userID)
		}
	}
	return rec, nil
}

type fakeMemberRepo struct {
	mu       sync.Mutex
	profiles map[string]member.Profile
}

func newFakeMemberRepo() *fakeMemberRepo {
	return &fakeMemberRepo{profiles: make(map[string]member.Profile)}
}

func (f *fakeMemberRepo) Upsert(ctx context.Context, p *member.Profile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.profiles[p.UserID] = *p
	return nil
}

func (f *fakeMemberRepo) GetByID(ctx context.Context, userID string) (*member.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.profiles[userID]
	if !ok {
		return nil, idb.ErrMemberNotFound
	}
	return &p, nil
}

type sentPush struct {
	chatID  int64
	payload messaging.Payload
}

type fakeNotifier struct {
	mu      sync.Mutex
	sent    []sentPush
	sendErr error
}

func (f *fakeNotifier) Send(ctx context.Context, chatID int64, payload messaging.Payload) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, sentPush{chatID: chatID, payload: payload})
	return nil
}

func (f *fakeNotifier) sentCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}
