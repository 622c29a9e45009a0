package errors

func (d Definition) Error() string {
	return d.Message
}

// Definition 表示业务错误码及默认信息。
type Definition struct {
	Code    string
	Message string
}

// 计时器相关错误。
var (
	InvalidConfig = Definition{Code: "INVALID_CONFIG", Message: "Timer duration out of range"}
)

// 存储相关错误，只在边界处记录，不向组件逻辑传播。
var (
	PersistenceUnavailable = Definition{Code: "PERSISTENCE_UNAVAILABLE", Message: "Persistence unavailable"}
)

// 打卡日历错误。
var (
	InvalidDate  = Definition{Code: "INVALID_DATE", Message: "Invalid calendar date"}
	InvalidMonth = Definition{Code: "INVALID_MONTH", Message: "Invalid month"}
)

// 任务清单错误。
var (
	TaskTextEmpty = Definition{Code: "TASK_TEXT_EMPTY", Message: "Task text is empty"}
	TaskNotFound  = Definition{Code: "TASK_NOT_FOUND", Message: "Task not found"}
)

// 请求错误。
var (
	InvalidRequest = Definition{Code: "INVALID_REQUEST", Message: "Invalid request"}
)

// Lookup 提供错误码查询能力。
var Lookup = map[string]Definition{
	InvalidConfig.Code:          InvalidConfig,
	PersistenceUnavailable.Code: PersistenceUnavailable,
	InvalidDate.Code:            InvalidDate,
	InvalidMonth.Code:           InvalidMonth,
	TaskTextEmpty.Code:          TaskTextEmpty,
	TaskNotFound.Code:           TaskNotFound,
	InvalidRequest.Code:         InvalidRequest,
}

// Get 根据错误码返回 Definition，若不存在则返回空 Definition。
func Get(code string) Definition {
	if def, ok := Lookup[code]; ok {
		return def
	}
	return Definition{Code: code, Message: "Unexpected error"}
}
