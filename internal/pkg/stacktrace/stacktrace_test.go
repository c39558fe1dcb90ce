package stacktrace

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInternalPaths(t *testing.T) {
	stack := []byte(`goroutine 7 [running]:
runtime/debug.Stack()
	/usr/local/go/src/runtime/debug/stack.go:26 +0x5e
github.com/shandysiswandi/vocatrack/internal/pkg/goroutine.(*Manager).recordPanic(...)
	/src/vocatrack/internal/pkg/goroutine/goroutine.go:82 +0x25
github.com/shandysiswandi/vocatrack/internal/attendance/usecase.(*Usecase).Verify(...)
	/src/vocatrack/internal/attendance/usecase/verify.go:61
github.com/jackc/pgx/v5.(*Conn).Exec(...)
	/go/pkg/mod/github.com/jackc/pgx/v5@v5.8.0/conn.go:12 +0x1
`)

	assert.Equal(t, []string{
		"internal/pkg/goroutine/goroutine.go:82",
		"internal/attendance/usecase/verify.go:61",
	}, InternalPaths(stack))

	assert.Empty(t, InternalPaths([]byte("goroutine 1 [running]:\nmain.main()\n\t/src/main.go:9 +0x1\n")))
}
