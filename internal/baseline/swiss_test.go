package baseline

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTable(expected int) *swissTable {
	var tt swissTable
	tt.init(expected)

	return &tt
}

func TestNextPowerOf2(t *testing.T) {
	tests := []struct {
		in, want uint32
	}{
		{1, 1},
		{2, 2},
		{3, 4},
		{8, 8},
		{9, 16},
		{1000, 1024},
	}

	for _, tt := range tests {
		t.Run(strconv.Itoa(int(tt.in)), func(t *testing.T) {
			require.Equal(t, tt.want, nextPowerOf2(tt.in))
		})
	}
}

func TestHashSplit(t *testing.T) {
	h1, h2 := hashSplit(0xABCD1234567890EF)

	require.Equal(t, uintptr(0xABCD1234567890EF>>7), h1)
	require.Equal(t, uint8(0xEF&0x7F), h2)
}

func TestSwissTable_init(t *testing.T) {
	tests := []struct {
		name       string
		expected   int
		wantGroups int
	}{
		{"zero", 0, 1},
		{"one group", 6, 1},
		{"two groups", 7, 2},
		{"thousand", 1000, 256},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := newTable(tt.expected)

			require.Len(t, st.groups, tt.wantGroups)
			require.Equal(t, uintptr(tt.wantGroups-1), st.numGroupsMask)
			require.GreaterOrEqual(t, int(st.capacityEffective), tt.expected)

			for i := range st.groups {
				require.Equal(t, emptyCtrls, st.groups[i].ctrls)
			}
		})
	}
}

func TestSwissTable_put(t *testing.T) {
	st := newTable(16)

	ok, err := st.put("foo", 1)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = st.put("foo", 2)
	require.NoError(t, err)
	require.False(t, ok)

	v, found := st.get("foo")
	require.True(t, found)
	assert.Equal(t, uint32(1), v)

	_, found = st.get("bar")
	assert.False(t, found)
}

func TestSwissTable_Fill(t *testing.T) {
	st := newTable(100)
	limit := int(st.capacityEffective)

	for i := range limit {
		ok, err := st.put(strconv.Itoa(i), uint32(i))
		require.NoError(t, err)
		require.True(t, ok)
	}

	_, err := st.put("overflow", 0)
	require.ErrorIs(t, err, ErrTableFull)

	for i := range limit {
		v, ok := st.get(strconv.Itoa(i))
		require.True(t, ok)
		require.Equal(t, uint32(i), v)
	}
}
