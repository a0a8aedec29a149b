package persist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBindingRecordEncodeTrailingZeroCompression(t *testing.T) {
	t.Run("FullRecordWhenBothParamsNonzero", func(t *testing.T) {
		r := BindingRecord{BehaviorLocalID: 7, Param1: 0x2A, Param2: 0x01}
		assert.Len(t, r.Encode(), 12)
	})

	t.Run("EightBytesWhenParam2Zero", func(t *testing.T) {
		r := BindingRecord{BehaviorLocalID: 7, Param1: 0x2A, Param2: 0}
		assert.Len(t, r.Encode(), 8)
	})

	t.Run("FourBytesWhenBothParamsZero", func(t *testing.T) {
		r := BindingRecord{BehaviorLocalID: 7}
		assert.Len(t, r.Encode(), 4)
	})
}

func TestBindingRecordRoundTrip(t *testing.T) {
	cases := []BindingRecord{
		{BehaviorLocalID: 1},
		{BehaviorLocalID: 2, Param1: 99},
		{BehaviorLocalID: 3, Param1: 0x2A, Param2: 7},
	}

	for _, want := range cases {
		encoded := want.Encode()
		got, err := DecodeBindingRecord(encoded)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestDecodeBindingRecordRejectsBadLength(t *testing.T) {
	_, err := DecodeBindingRecord([]byte{1, 2, 3})
	assert.Error(t, err)
}
