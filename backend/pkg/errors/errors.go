package errors

import "errors"

// ErrConflict 唯一约束冲突：同一键的记录已存在
var ErrConflict = errors.New("记录已存在，请勿重复提交")
