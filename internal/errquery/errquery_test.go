package errquery

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistill(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "case folded",
			in:   "NullPointerException in Main",
			want: "nullpointerexception in main",
		},
		{
			name: "hex addresses stripped",
			in:   "segfault at 0xDEADBEEF unmapped",
			want: "segfault at unmapped",
		},
		{
			name: "unix path stripped",
			in:   "cannot open /usr/local/lib/libfoo.so missing",
			want: "cannot open missing",
		},
		{
			name: "line and column refs stripped",
			in:   "SyntaxError: unexpected token, line 42",
			want: "syntaxerror: unexpected token,",
		},
		{
			name: "source location suffix stripped",
			in:   "panic in main.go:17:3",
			want: "panic in main.go",
		},
		{
			name: "long ids stripped",
			in:   "order 1234567890 rejected",
			want: "order rejected",
		},
		{
			name: "whitespace collapsed",
			in:   "too   many\n\topen  files",
			want: "too many open files",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Distill(tt.in))
		})
	}
}

func TestDistill_BoundsLength(t *testing.T) {
	got := Distill(strings.Repeat("connection refused ", 50))
	assert.LessOrEqual(t, len(got), 240)
	assert.False(t, strings.HasSuffix(got, " "), "cut lands on a word boundary")
}

func TestFirstErrorLine_GoPanic(t *testing.T) {
	trace := `panic: runtime error: index out of range [3] with length 2

goroutine 1 [running]:
main.main()
	/app/main.go:9 +0x1d`
	assert.Equal(t, "panic: runtime error: index out of range [3] with length 2", FirstErrorLine(trace))
}

func TestFirstErrorLine_PythonTraceback(t *testing.T) {
	trace := `Traceback (most recent call last):
  File "app.py", line 3, in <module>
    main()
TypeError: 'NoneType' object is not callable`
	assert.Equal(t, "TypeError: 'NoneType' object is not callable", FirstErrorLine(trace))
}

func TestFirstErrorLine_PlainMessage(t *testing.T) {
	assert.Equal(t, "connection refused", FirstErrorLine("\n connection refused \n"))
}
