package dto

// ── 学生名册 DTO ──

// CreateStudentRequest 新增学生
type CreateStudentRequest struct {
	StudentID string `json:"student_id" binding:"required,max=20"`
	Name      string `json:"name"       binding:"required,max=50"`
	Barcode   string `json:"barcode"    binding:"required,max=64"`
}

// UpdateStudentRequest 修改学生（条码不可修改）
type UpdateStudentRequest struct {
	StudentID *string `json:"student_id" binding:"omitempty,min=1,max=20"`
	Name      *string `json:"name"       binding:"omitempty,min=1,max=50"`
}

// StudentResponse 学生信息
type StudentResponse struct {
	StudentID string `json:"student_id"`
	Name      string `json:"name"`
	Barcode   string `json:"barcode"`
}

// ImportStudentResponse 名册导入结果
type ImportStudentResponse struct {
	Rows     int `json:"rows"`     // 表头以外的数据行数
	Imported int `json:"imported"` // 有效行数
	Skipped  int `json:"skipped"`  // 缺少字段被丢弃的行数
	Added    int `json:"added"`
	Updated  int `json:"updated"`
	Total    int `json:"total"` // 合并后的名册人数
}
