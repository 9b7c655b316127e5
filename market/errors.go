package market

import "fmt"

// ErrorKind 区分领域错误类型。
type ErrorKind int

const (
	// InvalidArgument 非正价格/数量/面值等非法入参。
	InvalidArgument ErrorKind = iota
	// DivisionByZero 是 InvalidArgument 的特例：收益率或市盈率分母为 0。
	DivisionByZero
)

func (k ErrorKind) String() string {
	switch k {
	case InvalidArgument:
		return "invalid argument"
	case DivisionByZero:
		return "division by zero"
	default:
		return "unknown"
	}
}

var (
	ErrInvalidArgument = &DomainError{Kind: InvalidArgument}
	ErrDivisionByZero  = &DomainError{Kind: DivisionByZero}
)

// DomainError 描述一次同步失败，Op 记录出错的操作名。
type DomainError struct {
	Kind    ErrorKind
	Op      string
	Message string
}

func (e *DomainError) Error() string {
	switch {
	case e.Op != "" && e.Message != "":
		return fmt.Sprintf("%s: %s: %s", e.Op, e.Kind, e.Message)
	case e.Message != "":
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	case e.Op != "":
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	default:
		return e.Kind.String()
	}
}

// Is 按 Kind 匹配；DivisionByZero 同时满足 ErrInvalidArgument。
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	if t.Kind == e.Kind {
		return true
	}
	return t.Kind == InvalidArgument && e.Kind == DivisionByZero
}

func invalidArgument(op, format string, args ...any) error {
	return &DomainError{Kind: InvalidArgument, Op: op, Message: fmt.Sprintf(format, args...)}
}

func divisionByZero(op, format string, args ...any) error {
	return &DomainError{Kind: DivisionByZero, Op: op, Message: fmt.Sprintf(format, args...)}
}
