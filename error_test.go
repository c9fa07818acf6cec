package seatsync_test

import (
	"errors"
	"testing"

	seatsync "github.com/elliotttmiller/seatsync"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := seatsync.Errorf(seatsync.EBLOCKED, "source %q blocked", "stubhub")

	assert.Equal(t, seatsync.EBLOCKED, seatsync.ErrorCode(err))
	assert.Equal(t, "source \"stubhub\" blocked", seatsync.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, seatsync.ErrorCode(nil))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, seatsync.EINTERNAL, seatsync.ErrorCode(errors.New("boom")))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, seatsync.ErrorMessage(nil))
}

func TestRetryable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"timeout", seatsync.Errorf(seatsync.ETIMEOUT, "slow"), true},
		{"network", seatsync.Errorf(seatsync.ENETWORK, "refused"), true},
		{"unavailable", seatsync.Errorf(seatsync.EUNAVAILABLE, "no browser"), false},
		{"blocked", seatsync.Errorf(seatsync.EBLOCKED, "challenged"), false},
		{"plain", errors.New("boom"), false},
		{"nil", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, seatsync.Retryable(tt.err))
		})
	}
}
