package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/madtung/sanghak2/internal/ledger"
	"github.com/madtung/sanghak2/internal/model"
)

func newTestStore(repo *mockRecordRepo, notifier ChangeNotifier) *LedgerStore {
	return NewLedgerStore(repo, func() ledger.State { return ledger.Defaults("1111") }, notifier, zap.NewNop())
}

func TestLedgerStore_Load_Defaults(t *testing.T) {
	repo := newMockRecordRepo()
	store := newTestStore(repo, nil)

	if err := store.Load(context.Background()); err != nil {
		t.Fatalf("Load 应成功: %v", err)
	}
	st := store.Snapshot()
	if st.AdminPassword != "1111" || len(st.SeatLayout) == 0 || st.Students == nil {
		t.Errorf("空库应使用默认值: %+v", st.AdminPassword)
	}
}

func TestLedgerStore_Load_MalformedRecordFallsBack(t *testing.T) {
	repo := newMockRecordRepo()
	repo.put(model.RecordStudents, `{not json`)
	repo.put(model.RecordAdminPassword, `"9999"`)
	repo.put(model.RecordLogs, `null`)
	store := newTestStore(repo, nil)

	if err := store.Load(context.Background()); err != nil {
		t.Fatalf("Load 应成功: %v", err)
	}
	st := store.Snapshot()
	if len(st.Students) != 0 {
		t.Errorf("损坏的名册应回退为空，实际 %d", len(st.Students))
	}
	if st.Logs == nil {
		t.Error("null 日志应回退为空切片")
	}
	if st.AdminPassword != "9999" {
		t.Errorf("有效记录应被加载，实际 %q", st.AdminPassword)
	}
}

func TestLedgerStore_Load_SeatNumbersAsNumbers(t *testing.T) {
	repo := newMockRecordRepo()
	repo.put(model.RecordSeatReservations, `[{"seatNumber":12,"studentBarcode":"B1","startTime":"09:00","endTime":"10:00"},{"seatNumber":"7A","studentBarcode":"B2","startTime":"09:00","endTime":"10:00"}]`)
	store := newTestStore(repo, nil)

	if err := store.Load(context.Background()); err != nil {
		t.Fatalf("Load 应成功: %v", err)
	}
	res := store.Snapshot().SeatReservations
	if len(res) != 2 || res[0].SeatNumber != "12" || res[1].SeatNumber != "7A" {
		t.Errorf("座位编号解析不正确: %+v", res)
	}
}

func TestLedgerStore_Mutate_WritesOnlyChangedRecords(t *testing.T) {
	repo := newMockRecordRepo()
	notifier := &mockNotifier{}
	store := newTestStore(repo, notifier)
	ctx := context.Background()
	_ = store.Load(ctx)

	// 第一次写入：所有记录都不存在
	if _, err := store.Mutate(ctx, func(st ledger.State) (ledger.State, error) { return st, nil }); err != nil {
		t.Fatalf("Mutate 应成功: %v", err)
	}
	if len(repo.saves) != 1 || len(repo.saves[0]) != len(model.RecordKeys) {
		t.Fatalf("首次应写入全部记录，实际 %v", repo.saves)
	}

	_, err := store.Mutate(ctx, func(st ledger.State) (ledger.State, error) {
		st.Announcements = "<p>변경</p>"
		return st, nil
	})
	if err != nil {
		t.Fatalf("Mutate 应成功: %v", err)
	}
	if len(repo.saves) != 2 || len(repo.saves[1]) != 1 || repo.saves[1][0] != model.RecordAnnouncements {
		t.Errorf("只应写入公告记录，实际 %v", repo.saves)
	}
	if repo.value(model.RecordAnnouncements) != `"<p>변경</p>"` {
		t.Errorf("持久化值不正确: %s", repo.value(model.RecordAnnouncements))
	}
	reloaded := newTestStore(repo, nil)
	if err := reloaded.Load(ctx); err != nil || reloaded.Snapshot().Announcements != "<p>변경</p>" {
		t.Errorf("重新加载公告不正确: %q, err=%v", reloaded.Snapshot().Announcements, err)
	}
	if len(notifier.calls) != 2 || notifier.calls[1][0] != model.RecordAnnouncements {
		t.Errorf("看板通知不正确: %v", notifier.calls)
	}

	// 无变化不写入、不通知
	_, _ = store.Mutate(ctx, func(st ledger.State) (ledger.State, error) { return st, nil })
	if len(repo.saves) != 2 || len(notifier.calls) != 2 {
		t.Error("无变化时不应写入")
	}
}

func TestLedgerStore_Mutate_ErrorKeepsState(t *testing.T) {
	repo := newMockRecordRepo()
	store := newTestStore(repo, nil)
	ctx := context.Background()
	_ = store.Load(ctx)

	boom := errors.New("boom")
	_, err := store.Mutate(ctx, func(st ledger.State) (ledger.State, error) {
		st.AdminPassword = "changed"
		return st, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("期望原样返回错误，实际 %v", err)
	}
	if store.Snapshot().AdminPassword != "1111" || len(repo.saves) != 0 {
		t.Error("失败时状态不应变化")
	}

	repo.saveErr = errors.New("db down")
	_, err = store.Mutate(ctx, func(st ledger.State) (ledger.State, error) {
		st.AdminPassword = "changed"
		return st, nil
	})
	if err == nil || store.Snapshot().AdminPassword != "1111" {
		t.Error("持久化失败时内存状态不应替换")
	}
}

func TestLedgerStore_Mutate_ConflictReloads(t *testing.T) {
	repo := newMockRecordRepo()
	store := newTestStore(repo, nil)
	ctx := context.Background()
	_ = store.Load(ctx)
	_, _ = store.Mutate(ctx, func(st ledger.State) (ledger.State, error) { return st, nil })

	// 其他进程修改了名册
	repo.put(model.RecordStudents, `[{"studentId":"1","name":"외부","barcode":"X1"}]`)

	_, err := store.Mutate(ctx, func(st ledger.State) (ledger.State, error) {
		st.Students = append([]model.Student{}, model.Student{StudentID: "2", Name: "로컬", Barcode: "X2"})
		return st, nil
	})
	if !errors.Is(err, ErrLedgerConflict) {
		t.Fatalf("期望 ErrLedgerConflict，实际 %v", err)
	}

	st := store.Snapshot()
	if len(st.Students) != 1 || st.Students[0].Barcode != "X1" {
		t.Errorf("冲突后应重新加载外部数据，实际 %+v", st.Students)
	}

	// 重试成功
	if _, err := store.Mutate(ctx, func(st ledger.State) (ledger.State, error) {
		st.Students = append([]model.Student{}, st.Students...)
		st.Students = append(st.Students, model.Student{StudentID: "2", Name: "로컬", Barcode: "X2"})
		return st, nil
	}); err != nil {
		t.Fatalf("重试应成功: %v", err)
	}
	if len(store.Snapshot().Students) != 2 {
		t.Error("重试后名册应为 2 人")
	}
}

func TestLedgerStore_Mutate_OnCommit(t *testing.T) {
	repo := newMockRecordRepo()
	store := newTestStore(repo, nil)
	ctx := context.Background()
	_ = store.Load(ctx)

	var committed []string
	record := func(name string) func(ledger.State) {
		return func(st ledger.State) { committed = append(committed, name+":"+st.LogoURL) }
	}

	_, _ = store.Mutate(ctx, func(st ledger.State) (ledger.State, error) {
		st.LogoURL = "a"
		return st, nil
	}, record("first"), record("second"))

	_, _ = store.Mutate(ctx, func(st ledger.State) (ledger.State, error) {
		return st, errors.New("rejected")
	}, record("rejected"))

	repo.saveErr = errors.New("db down")
	_, _ = store.Mutate(ctx, func(st ledger.State) (ledger.State, error) {
		st.LogoURL = "b"
		return st, nil
	}, record("failed"))

	if len(committed) != 2 || committed[0] != "first:a" || committed[1] != "second:a" {
		t.Errorf("只应在提交成功后按顺序回调，实际 %v", committed)
	}
}
