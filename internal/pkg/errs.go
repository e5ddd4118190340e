package pkg

import "errors"

// 业务错误集中定义，service 层只返回这些哨兵错误，
// handler 层统一按 Kind 翻译成 HTTP 状态码，核心逻辑不打日志不吞错。
var (
	// 参数校验类
	ErrEmptyBody       = errors.New("comment body is empty")
	ErrSelfApplication = errors.New("leader cannot apply to own group")
	ErrInvalidCapacity = errors.New("capacity must be positive")

	// 冲突类
	ErrDuplicateApplication = errors.New("application already exists")
	ErrCapacityExceeded     = errors.New("group capacity exceeded")
	ErrInvalidState         = errors.New("application is not pending")

	// 权限类
	ErrNotOwner  = errors.New("not the application owner")
	ErrNotLeader = errors.New("not the group leader")
	ErrNotMember = errors.New("not a group member")
	ErrNotAuthor = errors.New("not the comment author")

	// 不存在类
	ErrGroupNotFound       = errors.New("group not found")
	ErrApplicationNotFound = errors.New("application not found")
	ErrCommentNotFound     = errors.New("comment not found")
)

type ErrKind int8

const (
	KindInternal ErrKind = iota
	KindValidation
	KindConflict
	KindAuthorization
	KindNotFound
)

// KindOf 返回错误所属类别，未知错误一律按内部错误处理
func KindOf(err error) ErrKind {
	switch {
	case errors.Is(err, ErrEmptyBody),
		errors.Is(err, ErrSelfApplication),
		errors.Is(err, ErrInvalidCapacity):
		return KindValidation
	case errors.Is(err, ErrDuplicateApplication),
		errors.Is(err, ErrCapacityExceeded),
		errors.Is(err, ErrInvalidState):
		return KindConflict
	case errors.Is(err, ErrNotOwner),
		errors.Is(err, ErrNotLeader),
		errors.Is(err, ErrNotMember),
		errors.Is(err, ErrNotAuthor):
		return KindAuthorization
	case errors.Is(err, ErrGroupNotFound),
		errors.Is(err, ErrApplicationNotFound),
		errors.Is(err, ErrCommentNotFound):
		return KindNotFound
	default:
		return KindInternal
	}
}
