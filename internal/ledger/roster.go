package ledger

import (
	"sort"

	"github.com/madtung/sanghak2/internal/model"
)

// AddStudent 新增学生：三个字段必填，条码不可重复；新增后名册按学号排序
func (e *Engine) AddStudent(s State, st model.Student) (State, error) {
	if st.StudentID == "" || st.Name == "" || st.Barcode == "" {
		return s, ErrStudentFieldsRequired
	}
	if _, exists := s.FindStudentByBarcode(st.Barcode); exists {
		return s, ErrDuplicateBarcode
	}

	students := appendCopy(s.Students, st)
	sort.SliceStable(students, func(i, j int) bool {
		return students[i].StudentID < students[j].StudentID
	})

	next := s
	next.Students = students
	return next, nil
}

// StudentUpdate 可修改字段（条码不可修改）
type StudentUpdate struct {
	StudentID *string
	Name      *string
}

// UpdateStudent 按条码修改学生信息
func (e *Engine) UpdateStudent(s State, barcode string, upd StudentUpdate) (State, model.Student, error) {
	idx := -1
	for i, st := range s.Students {
		if st.Barcode == barcode {
			idx = i
			break
		}
	}
	if idx < 0 {
		return s, model.Student{}, ErrStudentNotFound
	}

	st := s.Students[idx]
	if upd.StudentID != nil {
		st.StudentID = *upd.StudentID
	}
	if upd.Name != nil {
		st.Name = *upd.Name
	}
	if st.StudentID == "" || st.Name == "" {
		return s, model.Student{}, ErrStudentFieldsRequired
	}

	students := appendCopy(s.Students)
	students[idx] = st

	next := s
	next.Students = students
	return next, st, nil
}

// DeleteStudent 按条码删除学生。已有的预约保留，看板与退室日志按 N/A 处理。
func (e *Engine) DeleteStudent(s State, barcode string) (State, error) {
	students, ok := removeFirst(s.Students, func(st model.Student) bool {
		return st.Barcode == barcode
	})
	if !ok {
		return s, ErrStudentNotFound
	}

	next := s
	next.Students = students
	return next, nil
}

// MergeStudents 以条码为键合并导入的名册：同条码覆盖原位置，否则追加到末尾
func (e *Engine) MergeStudents(s State, imported []model.Student) State {
	students := appendCopy(s.Students)
	pos := make(map[string]int, len(students))
	for i, st := range students {
		pos[st.Barcode] = i
	}
	for _, st := range imported {
		if i, ok := pos[st.Barcode]; ok {
			students[i] = st
			continue
		}
		pos[st.Barcode] = len(students)
		students = append(students, st)
	}

	next := s
	next.Students = students
	return next
}
