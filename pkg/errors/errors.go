package errors

import "errors"

// ErrDuplicateKey 主键或唯一约束冲突：记录已存在
var ErrDuplicateKey = errors.New("记录已存在，主键或唯一约束冲突")
