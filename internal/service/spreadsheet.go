package service

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/madtung/sanghak2/internal/model"
)

// ── 名册表头 ──

const (
	headerStudentID = "학번"
	headerName      = "이름"
	headerBarcode   = "고유코드(바코드)"

	rosterSheet     = "학생 명단"
	individualSheet = "개인 로그"
	groupSheet      = "공동 로그"
)

var (
	individualHeaders = []interface{}{"입력일시", "학번", "이름", "입실/퇴실", "예약 시간(H)"}
	groupHeaders      = []interface{}{"입력일시", "학번", "이름", "예약 날짜", "예약 시간", "이용 인원"}
)

// ── 导入错误 ──

var (
	ErrImportUnreadable = errors.New("엑셀 파일을 처리하는 중 오류가 발생했습니다")
	ErrImportBadHeader  = errors.New("파일의 첫 줄에 '학번', '이름', '고유코드(바코드)' 헤더가 있는지 확인해주세요")
)

// rosterImport 名册解析结果
type rosterImport struct {
	Students []model.Student
	Rows     int // 非空数据行
	Skipped  int // 缺少字段被丢弃的行
}

// parseRosterWorkbook 读取第一个工作表。表头缺列或文件无法解析时整体拒绝。
func parseRosterWorkbook(r io.Reader) (*rosterImport, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImportUnreadable, err)
	}
	defer f.Close()

	// 数字单元格取原始值，避免按显示格式输出
	rows, err := f.GetRows(f.GetSheetName(0), excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImportUnreadable, err)
	}
	if len(rows) == 0 {
		return nil, ErrImportBadHeader
	}

	col := map[string]int{headerStudentID: -1, headerName: -1, headerBarcode: -1}
	for i, h := range rows[0] {
		h = strings.TrimSpace(h)
		if idx, ok := col[h]; ok && idx < 0 {
			col[h] = i
		}
	}
	for _, idx := range col {
		if idx < 0 {
			return nil, ErrImportBadHeader
		}
	}

	cellAt := func(row []string, idx int) string {
		if idx < len(row) {
			return strings.TrimSpace(row[idx])
		}
		return ""
	}

	out := &rosterImport{}
	for _, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}
		out.Rows++
		st := model.Student{
			StudentID: cellAt(row, col[headerStudentID]),
			Name:      cellAt(row, col[headerName]),
			Barcode:   cellAt(row, col[headerBarcode]),
		}
		if st.StudentID == "" || st.Name == "" || st.Barcode == "" {
			out.Skipped++
			continue
		}
		out.Students = append(out.Students, st)
	}
	return out, nil
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// writeRosterWorkbook 导出名册，表头与导入一致。单元格均写为文本以保留前导零。
func writeRosterWorkbook(students []model.Student) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", rosterSheet); err != nil {
		return nil, err
	}
	if err := writeHeader(f, rosterSheet, []interface{}{headerStudentID, headerName, headerBarcode}); err != nil {
		return nil, err
	}
	for i, st := range students {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(rosterSheet, cell, &[]interface{}{st.StudentID, st.Name, st.Barcode}); err != nil {
			return nil, err
		}
	}
	f.SetColWidth(rosterSheet, "A", "C", 18)

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// writeLogWorkbook 导出日志：个人日志、共同日志各一个工作表，保持新的在前
func writeLogWorkbook(logs []model.Log) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", individualSheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(groupSheet); err != nil {
		return nil, err
	}
	if err := writeHeader(f, individualSheet, individualHeaders); err != nil {
		return nil, err
	}
	if err := writeHeader(f, groupSheet, groupHeaders); err != nil {
		return nil, err
	}

	indRow, grpRow := 2, 2
	for _, l := range logs {
		switch l.Type {
		case model.LogTypeIndividual:
			var duration interface{} = ""
			if l.Duration != nil {
				duration = *l.Duration
			}
			cell, _ := excelize.CoordinatesToCellName(1, indRow)
			if err := f.SetSheetRow(individualSheet, cell, &[]interface{}{
				l.Timestamp, l.StudentID, l.Name, l.Action.Label(), duration,
			}); err != nil {
				return nil, err
			}
			indRow++
		case model.LogTypeGroup:
			cell, _ := excelize.CoordinatesToCellName(1, grpRow)
			if err := f.SetSheetRow(groupSheet, cell, &[]interface{}{
				l.Timestamp, l.StudentID, l.Name, l.ReservationDate, l.ReservationTime, l.Attendees,
			}); err != nil {
				return nil, err
			}
			grpRow++
		}
	}
	f.SetColWidth(individualSheet, "A", "A", 26)
	f.SetColWidth(groupSheet, "A", "A", 26)
	f.SetColWidth(groupSheet, "E", "E", 16)

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

func writeHeader(f *excelize.File, sheet string, headers []interface{}) error {
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return err
	}
	style, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return err
	}
	last, _ := excelize.CoordinatesToCellName(len(headers), 1)
	return f.SetCellStyle(sheet, "A1", last, style)
}
