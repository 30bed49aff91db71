// Package errors 跨层共享的基础设施错误
package errors

import "errors"

// ErrOptimisticLock 乐观锁冲突：台账记录的版本号已被其他进程推进
var ErrOptimisticLock = errors.New("台账记录已被其他进程修改")
