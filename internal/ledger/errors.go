package ledger

import "errors"

// ── 台账业务错误 ──

var (
	ErrStudentNotFound     = errors.New("등록되지 않은 학번 또는 학생증 바코드입니다")
	ErrAlreadySeated       = errors.New("이미 예약된 좌석이 있습니다")
	ErrSeatOccupied        = errors.New("이미 사용 중인 좌석입니다")
	ErrSeatNotFound        = errors.New("존재하지 않는 좌석입니다")
	ErrInvalidSlot         = errors.New("예약할 수 없는 시간입니다")
	ErrInvalidDuration     = errors.New("예약 시간이 올바르지 않습니다")
	ErrReservationNotFound = errors.New("예약 정보를 찾을 수 없습니다")
	ErrCheckoutDenied      = errors.New("학생증 바코드 또는 관리자 비밀번호가 일치하지 않습니다")

	ErrRoomSlotTaken = errors.New("선택한 시간에 이미 예약이 있습니다")
	ErrRoomNotFound  = errors.New("존재하지 않는 공동학습실입니다")

	ErrStudentFieldsRequired = errors.New("모든 필드를 입력해주세요")
	ErrDuplicateBarcode      = errors.New("이미 등록된 바코드입니다")

	ErrPasswordTooShort   = errors.New("비밀번호는 4자 이상이어야 합니다")
	ErrPasswordMismatch   = errors.New("새 비밀번호가 일치하지 않습니다")
	ErrLayoutItemNotFound = errors.New("레이아웃 항목을 찾을 수 없습니다")
)
