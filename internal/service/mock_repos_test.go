package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/madtung/sanghak2/config"
	"github.com/madtung/sanghak2/internal/ledger"
	"github.com/madtung/sanghak2/internal/model"
	pkgerrors "github.com/madtung/sanghak2/pkg/errors"
	"github.com/madtung/sanghak2/pkg/queue"
)

// ── Mock RecordRepository ──

type mockRecordRepo struct {
	mu      sync.Mutex
	records map[string]model.Record
	saves   [][]string // 每次 SaveAll 写入的键
	saveErr error
}

func newMockRecordRepo() *mockRecordRepo {
	return &mockRecordRepo{records: make(map[string]model.Record)}
}

func (m *mockRecordRepo) List(_ context.Context) ([]model.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Record
	for _, r := range m.records {
		out = append(out, r)
	}
	return out, nil
}

func (m *mockRecordRepo) Get(_ context.Context, key string) (*model.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r, ok := m.records[key]; ok {
		return &r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRecordRepo) SaveAll(_ context.Context, records []*model.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	for _, rec := range records {
		cur, exists := m.records[rec.Key]
		if (rec.Version == 0 && exists) || (rec.Version != 0 && cur.Version != rec.Version) {
			return pkgerrors.ErrOptimisticLock
		}
	}
	keys := make([]string, 0, len(records))
	for _, rec := range records {
		rec.Version++
		m.records[rec.Key] = *rec
		keys = append(keys, rec.Key)
	}
	m.saves = append(m.saves, keys)
	return nil
}

// put 模拟其他进程直接写入
func (m *mockRecordRepo) put(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec := m.records[key]
	rec.Key = key
	rec.Value = value
	rec.Version++
	m.records[key] = rec
}

func (m *mockRecordRepo) value(key string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.records[key].Value
}

// ── Mock ChangeNotifier ──

type mockNotifier struct {
	calls [][]string
}

func (m *mockNotifier) NotifyLedgerChanged(records []string) {
	m.calls = append(m.calls, records)
}

// ── Mock EventPublisher ──

type mockPublisher struct {
	mu     sync.Mutex
	events []queue.LedgerEvent
	err    error
}

func (m *mockPublisher) Publish(_ context.Context, ev queue.LedgerEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, ev)
	return m.err
}

func (m *mockPublisher) list() []queue.LedgerEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]queue.LedgerEvent(nil), m.events...)
}

// ── Mock TokenBlacklist ──

type mockBlacklist struct {
	jti string
	ttl time.Duration
}

func (m *mockBlacklist) BlacklistToken(_ context.Context, jti string, ttl time.Duration) error {
	m.jti, m.ttl = jti, ttl
	return nil
}

// ── 测试环境 ──

var testLoc = time.FixedZone("KST", 9*60*60)

func testKioskConfig() config.KioskConfig {
	return config.KioskConfig{
		OpenHour:             9,
		CloseHour:            22,
		SlotMinutes:          30,
		StudyRoomCount:       2,
		BookingWindowDays:    7,
		StudentIDMaxUnits:    2,
		InitialAdminPassword: "1111",
		Timezone:             "Asia/Seoul",
	}
}

type testEnv struct {
	ledger   *Ledger
	repo     *mockRecordRepo
	notifier *mockNotifier
	now      time.Time
}

// setupTestLedger 2026-10-16 10:05 (KST)，名册含 B100/20101 与 B200/20102
func setupTestLedger() *testEnv {
	env := &testEnv{
		repo:     newMockRecordRepo(),
		notifier: &mockNotifier{},
		now:      time.Date(2026, 10, 16, 10, 5, 0, 0, testLoc),
	}
	kiosk := testKioskConfig()
	store := NewLedgerStore(env.repo, func() ledger.State {
		return ledger.Defaults(kiosk.InitialAdminPassword)
	}, env.notifier, zap.NewNop())

	env.ledger = &Ledger{
		Store:  store,
		Engine: NewEngine(&kiosk),
		Kiosk:  kiosk,
		Now:    func() time.Time { return env.now },
	}

	_, _ = store.Mutate(context.Background(), func(st ledger.State) (ledger.State, error) {
		st.Students = []model.Student{
			{StudentID: "20101", Name: "김민수", Barcode: "B100"},
			{StudentID: "20102", Name: "이서연", Barcode: "B200"},
		}
		return st, nil
	})
	env.notifier.calls = nil
	env.repo.saves = nil
	return env
}

// seedStudents 追加 n 名学生（条码 C000 起）并返回其条码
func seedStudents(env *testEnv, n int) []string {
	barcodes := make([]string, n)
	_, _ = env.ledger.Store.Mutate(context.Background(), func(st ledger.State) (ledger.State, error) {
		students := append([]model.Student(nil), st.Students...)
		for i := 0; i < n; i++ {
			barcodes[i] = fmt.Sprintf("C%03d", i)
			students = append(students, model.Student{
				StudentID: fmt.Sprintf("3%04d", i),
				Name:      fmt.Sprintf("학생%d", i),
				Barcode:   barcodes[i],
			})
		}
		st.Students = students
		return st, nil
	})
	return barcodes
}
