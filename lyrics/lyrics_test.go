package lyrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []Line
	}{
		{
			name: "sorted output",
			in:   "[00:20.00]second\n[00:10.00]first",
			want: []Line{{10000, "first"}, {20000, "second"}},
		},
		{
			name: "duplicate timestamps keep last",
			in:   "[00:10.00]first\n[00:10.00]second",
			want: []Line{{10000, "second"}},
		},
		{
			name: "multiple tags per line",
			in:   "[00:01.00][00:05.00]chorus",
			want: []Line{{1000, "chorus"}, {5000, "chorus"}},
		},
		{
			name: "metadata tags skipped",
			in:   "[ti:Song]\n[ar:Artist]\n[00:02.50]words",
			want: []Line{{2500, "words"}},
		},
		{
			name: "offset shifts later lines",
			in:   "[offset:1000]\n[00:10.00]shifted",
			want: []Line{{9000, "shifted"}},
		},
		{
			name: "offset clamps at zero",
			in:   "[offset:5000]\n[00:01.00]early",
			want: []Line{{0, "early"}},
		},
		{
			name: "fraction digit variants",
			in:   "[00:01.5]a\n[00:02.50]b\n[00:03.500]c",
			want: []Line{{1500, "a"}, {2500, "b"}, {3500, "c"}},
		},
		{
			name: "colon fraction separator",
			in:   "[00:04:25]d",
			want: []Line{{4250, "d"}},
		},
		{
			name: "untimed and empty lines skipped",
			in:   "just words\n\n[00:01.00]\n[00:02.00]kept",
			want: []Line{{2000, "kept"}},
		},
		{
			name: "empty input",
			in:   "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.in)
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseIsSorted(t *testing.T) {
	got := Parse("[01:00.00]c\n[00:30.00]b\n[02:00.00]d\n[00:01.00]a")
	require.Len(t, got, 4)
	for i := 1; i < len(got); i++ {
		assert.LessOrEqual(t, got[i-1].Time, got[i].Time)
	}
}

func TestIndex(t *testing.T) {
	lines := []Line{{1000, "a"}, {5000, "b"}, {9000, "c"}}

	tests := []struct {
		position int
		want     int
	}{
		{0, -1},
		{999, -1},
		{1000, 0},
		{4999, 0},
		{5000, 1},
		{9000, 2},
		{100000, 2},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Index(lines, tt.position), "position %d", tt.position)
	}

	assert.Equal(t, -1, Index(nil, 1000))
}

func TestTimesynced(t *testing.T) {
	assert.True(t, Timesynced([]Line{{0, "a"}, {1000, "b"}}))
	assert.False(t, Timesynced([]Line{{0, "a"}, {0, "b"}}))
	assert.False(t, Timesynced(nil))
}

func TestFormatRoundTrip(t *testing.T) {
	lines := []Line{
		{0, "leading"},
		{12340, "middle line"},
		{75010, "later on"},
		{3599990, "way out"},
	}
	assert.Equal(t, lines, Parse(Format(lines)))
}
