package book

import (
	"errors"
	"fmt"
)

var (
	// ErrIllegalTransition 请求违反了部件之间的依赖关系（如书合着时翻页）
	ErrIllegalTransition = errors.New("illegal transition")

	// ErrMissingAsset 模型没有提供请求涉及的部件片段，请求被静默忽略
	ErrMissingAsset = errors.New("missing asset")
)

// TransitionError 描述一个被拒绝的状态请求
type TransitionError struct {
	Part    Part
	Desired State
	Reason  string
}

// Error 实现 error 接口
func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot set %s to %s: %s", e.Part, e.Desired, e.Reason)
}

// Is 使 errors.Is(err, ErrIllegalTransition) 成立
func (e *TransitionError) Is(target error) bool {
	return target == ErrIllegalTransition
}

// 拒绝原因
const (
	reasonBookClosed       = "cannot turn pages while the book is closed"
	reasonLaterPagesOpen   = "close later pages first"
	reasonFrontCoverIsOpen = "cannot close latch while front cover is open"
)

func illegal(p Part, desired State, reason string) *TransitionError {
	return &TransitionError{Part: p, Desired: desired, Reason: reason}
}

func missing(p Part) error {
	return fmt.Errorf("%s: %w", p, ErrMissingAsset)
}
