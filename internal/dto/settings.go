package dto

// ── 站点设置 DTO ──

// ChangeAdminPasswordRequest 修改管理员密码（长度在业务层校验）
type ChangeAdminPasswordRequest struct {
	NewPassword     string `json:"new_password"     binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

// MoveLayoutItemRequest 移动布局元素
type MoveLayoutItemRequest struct {
	X *int `json:"x" binding:"required"`
	Y *int `json:"y" binding:"required"`
}

// AnnouncementsRequest 更新公告
type AnnouncementsRequest struct {
	HTML string `json:"html" binding:"max=20000"`
}

// LogoRequest 更新 Logo
type LogoRequest struct {
	URL string `json:"url" binding:"required,max=2000000"`
}

// SettingsResponse 站点设置
type SettingsResponse struct {
	Announcements string `json:"announcements"`
	LogoURL       string `json:"logo_url"`
}
