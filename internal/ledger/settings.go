package ledger

import (
	"math"
	"unicode/utf8"

	"github.com/madtung/sanghak2/internal/model"
)

const (
	minAdminPasswordLen = 4
	layoutSnapGrid      = 10
)

// VerifyAdminPassword 明文比较管理员密码
func (s State) VerifyAdminPassword(password string) bool {
	return password == s.AdminPassword
}

// ChangeAdminPassword 修改管理员密码：至少 4 个字符，且两次输入一致
func (e *Engine) ChangeAdminPassword(s State, password, confirm string) (State, error) {
	if utf8.RuneCountInString(password) < minAdminPasswordLen {
		return s, ErrPasswordTooShort
	}
	if password != confirm {
		return s, ErrPasswordMismatch
	}
	next := s
	next.AdminPassword = password
	return next, nil
}

// MoveLayoutItem 移动布局元素，坐标吸附到 10 像素网格
func (e *Engine) MoveLayoutItem(s State, id model.SeatID, x, y int) (State, model.Seat, error) {
	idx := -1
	for i, seat := range s.SeatLayout {
		if seat.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return s, model.Seat{}, ErrLayoutItemNotFound
	}

	layout := appendCopy(s.SeatLayout)
	layout[idx].X = snap(x)
	layout[idx].Y = snap(y)

	next := s
	next.SeatLayout = layout
	return next, layout[idx], nil
}

// ResetLayout 恢复内置默认布局
func (e *Engine) ResetLayout(s State) State {
	next := s
	next.SeatLayout = DefaultSeatLayout()
	return next
}

// SetAnnouncements 更新公告（HTML）
func (e *Engine) SetAnnouncements(s State, html string) State {
	next := s
	next.Announcements = html
	return next
}

// SetLogoURL 更新 Logo（data URL 或普通 URL）
func (e *Engine) SetLogoURL(s State, url string) State {
	next := s
	next.LogoURL = url
	return next
}

func snap(v int) int {
	return int(math.Round(float64(v)/layoutSnapGrid)) * layoutSnapGrid
}
