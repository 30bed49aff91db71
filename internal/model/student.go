package model

// Student 学生名册条目。Barcode 为唯一标识，创建后不可修改（座位与学习室预约以其为外键）。
type Student struct {
	StudentID string `json:"studentId"`
	Name      string `json:"name"`
	Barcode   string `json:"barcode"`
}
