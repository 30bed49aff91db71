package service

import (
	"context"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/madtung/sanghak2/internal/dto"
	"github.com/madtung/sanghak2/internal/ledger"
	"github.com/madtung/sanghak2/internal/model"
)

// StudentService 学生名册管理接口
type StudentService interface {
	List(ctx context.Context) []dto.StudentResponse
	Create(ctx context.Context, req *dto.CreateStudentRequest) (*dto.StudentResponse, error)
	Update(ctx context.Context, barcode string, req *dto.UpdateStudentRequest) (*dto.StudentResponse, error)
	Delete(ctx context.Context, barcode string) error
	// Import 从 Excel 导入并按条码合并；文件无效时名册不变
	Import(ctx context.Context, r io.Reader) (*dto.ImportStudentResponse, error)
}

type studentService struct {
	ledger *Ledger
	logger *zap.Logger
}

// NewStudentService 创建 StudentService 实例
func NewStudentService(l *Ledger, logger *zap.Logger) StudentService {
	return &studentService{ledger: l, logger: logger}
}

// ────────────────────── List ──────────────────────

func (s *studentService) List(_ context.Context) []dto.StudentResponse {
	students := s.ledger.Store.Snapshot().Students
	out := make([]dto.StudentResponse, len(students))
	for i, st := range students {
		out[i] = toStudentResponse(st)
	}
	return out
}

// ────────────────────── Create ──────────────────────

func (s *studentService) Create(ctx context.Context, req *dto.CreateStudentRequest) (*dto.StudentResponse, error) {
	st := model.Student{
		StudentID: strings.TrimSpace(req.StudentID),
		Name:      strings.TrimSpace(req.Name),
		Barcode:   strings.TrimSpace(req.Barcode),
	}
	_, err := s.ledger.Store.Mutate(ctx, func(cur ledger.State) (ledger.State, error) {
		return s.ledger.Engine.AddStudent(cur, st)
	})
	if err != nil {
		return nil, err
	}
	resp := toStudentResponse(st)
	return &resp, nil
}

// ────────────────────── Update ──────────────────────

func (s *studentService) Update(ctx context.Context, barcode string, req *dto.UpdateStudentRequest) (*dto.StudentResponse, error) {
	upd := ledger.StudentUpdate{StudentID: trimPtr(req.StudentID), Name: trimPtr(req.Name)}

	var updated model.Student
	_, err := s.ledger.Store.Mutate(ctx, func(cur ledger.State) (ledger.State, error) {
		var (
			next ledger.State
			err  error
		)
		next, updated, err = s.ledger.Engine.UpdateStudent(cur, barcode, upd)
		return next, err
	})
	if err != nil {
		return nil, err
	}
	resp := toStudentResponse(updated)
	return &resp, nil
}

// ────────────────────── Delete ──────────────────────

func (s *studentService) Delete(ctx context.Context, barcode string) error {
	_, err := s.ledger.Store.Mutate(ctx, func(cur ledger.State) (ledger.State, error) {
		return s.ledger.Engine.DeleteStudent(cur, barcode)
	})
	return err
}

// ────────────────────── Import ──────────────────────

func (s *studentService) Import(ctx context.Context, r io.Reader) (*dto.ImportStudentResponse, error) {
	parsed, err := parseRosterWorkbook(r)
	if err != nil {
		return nil, err
	}

	resp := &dto.ImportStudentResponse{
		Rows:     parsed.Rows,
		Imported: len(parsed.Students),
		Skipped:  parsed.Skipped,
	}
	next, err := s.ledger.Store.Mutate(ctx, func(cur ledger.State) (ledger.State, error) {
		seen := make(map[string]bool, len(cur.Students))
		for _, st := range cur.Students {
			seen[st.Barcode] = true
		}
		resp.Added, resp.Updated = 0, 0
		for _, st := range parsed.Students {
			if seen[st.Barcode] {
				resp.Updated++
				continue
			}
			seen[st.Barcode] = true
			resp.Added++
		}
		return s.ledger.Engine.MergeStudents(cur, parsed.Students), nil
	})
	if err != nil {
		return nil, err
	}

	resp.Total = len(next.Students)
	s.logger.Info("名册导入完成",
		zap.Int("rows", resp.Rows), zap.Int("added", resp.Added),
		zap.Int("updated", resp.Updated), zap.Int("skipped", resp.Skipped))
	return resp, nil
}

func trimPtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := strings.TrimSpace(*p)
	return &v
}
