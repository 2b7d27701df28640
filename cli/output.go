package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/cockroachdb/errors"
)

// 프로세스 종료 코드
const (
	ExitSuccess      = 0 // 성공
	ExitFailure      = 1 // 실행 중 실패
	ExitCommandError = 2 // 잘못된 플래그나 설정
	ExitUnsorted     = 3 // 정확성 검사 실패
)

// ExitError 실패한 명령의 종료 코드와 원인
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// WrapExitError err 에 종료 코드와 문맥을 붙인다.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode err 체인에서 종료 코드를 꺼낸다.
// nil 은 ExitSuccess, ExitError 가 없으면 ExitFailure 다.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// newLogger 진단 로그용 slog. 상태 줄과 CSV 줄은 로거를 거치지 않는다.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
