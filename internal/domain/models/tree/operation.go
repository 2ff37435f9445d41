package tree

// OperationResult is the outcome reported by every folder mutation.
type OperationResult struct {
	Succeeded bool        `json:"succeeded"`
	Message   string      `json:"message"`
	ErrorCode string      `json:"errorCode,omitempty"`
	Removed   *RemovedSet `json:"removed,omitempty"`
}

// RemovedSet counts the rows a subtree delete removed, by type.
type RemovedSet struct {
	Folders int `json:"folders"`
	Pages   int `json:"pages"`
	Assets  int `json:"assets"`
}

// Succeed builds a successful result.
func Succeed(message string) *OperationResult {
	return &OperationResult{Succeeded: true, Message: message}
}

// Fail builds a failed result carrying a stable error code.
func Fail(code, message string) *OperationResult {
	return &OperationResult{Succeeded: false, Message: message, ErrorCode: code}
}
