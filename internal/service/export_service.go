package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// ── 导出模块业务错误 ──

var ErrExportGenerateFail = errors.New("엑셀 파일 생성에 실패했습니다")

// ExportService 导出业务接口
//
// 导出以 bytes.Buffer 返回，由 Handler 层设置下载响应头后写入
type ExportService interface {
	// ExportLogs 导出全部日志（个人 / 共同两个工作表）
	ExportLogs(ctx context.Context) (*bytes.Buffer, string, error)
	// ExportRoster 导出学生名册，格式可直接再导入
	ExportRoster(ctx context.Context) (*bytes.Buffer, string, error)
}

type exportService struct {
	ledger *Ledger
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(l *Ledger, logger *zap.Logger) ExportService {
	return &exportService{ledger: l, logger: logger}
}

func (s *exportService) ExportLogs(_ context.Context) (*bytes.Buffer, string, error) {
	buf, err := writeLogWorkbook(s.ledger.Store.Snapshot().Logs)
	if err != nil {
		s.logger.Error("生成日志 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}
	return buf, fmt.Sprintf("자율학습실_로그_%s.xlsx", s.ledger.Today()), nil
}

func (s *exportService) ExportRoster(_ context.Context) (*bytes.Buffer, string, error) {
	buf, err := writeRosterWorkbook(s.ledger.Store.Snapshot().Students)
	if err != nil {
		s.logger.Error("生成名册 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}
	return buf, fmt.Sprintf("학생명단_%s.xlsx", s.ledger.Today()), nil
}
