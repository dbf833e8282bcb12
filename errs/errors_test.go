package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSentinelCodes(t *testing.T) {
	tests := []struct {
		err  *Error
		code int
	}{
		{ErrWriteToStreamFailed, -3000},
		{ErrStrTooLong, -3001},
		{ErrWriteLengthMismatch, -3002},
		{ErrDataTooLong, -3003},
		{ErrInvalidOutgoingThreadState, -3004},
		{ErrRecordSizeTooLarge, -3005},
		{ErrInvalidArgType, -3006},
		{ErrArgNameTooLong, -3007},
		{ErrArgStrValueTooLong, -3008},
		{ErrTooManyArgs, -3009},
	}

	seen := make(map[int]bool)
	for _, tt := range tests {
		require.Equal(t, tt.code, tt.err.Code())
		require.NotEmpty(t, tt.err.Error())
		require.False(t, seen[tt.code], "duplicate code %d", tt.code)
		seen[tt.code] = true
	}
}

func TestCode(t *testing.T) {
	require.Equal(t, 0, Code(nil))
	require.Equal(t, -3001, Code(ErrStrTooLong))
	require.Equal(t, -1, Code(errors.New("foreign")))

	// Wrapped sentinels keep their code.
	wrapped := fmt.Errorf("%w: disk full", ErrWriteToStreamFailed)
	require.Equal(t, -3000, Code(wrapped))
	require.ErrorIs(t, wrapped, ErrWriteToStreamFailed)
}
