package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    Date
		wantErr bool
	}{
		{name: "calendar day", in: "2025-03-21", want: NewDate(2025, time.March, 21)},
		{name: "RFC 3339 timestamp", in: "2025-03-21T00:00:00.000Z", want: NewDate(2025, time.March, 21)},
		{name: "empty string is zero", in: "", want: Date{}},
		{name: "garbage", in: "next tuesday", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidDate)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got.Time), "got %s want %s", got, tt.want)
		})
	}
}

func TestDateJSON(t *testing.T) {
	t.Run("marshals as calendar day", func(t *testing.T) {
		data, err := json.Marshal(NewDate(2025, time.March, 21))
		require.NoError(t, err)
		assert.Equal(t, `"2025-03-21"`, string(data))
	})

	t.Run("zero date marshals as empty string", func(t *testing.T) {
		data, err := json.Marshal(Date{})
		require.NoError(t, err)
		assert.Equal(t, `""`, string(data))
	})

	t.Run("null and empty decode to zero", func(t *testing.T) {
		for _, in := range []string{`null`, `""`} {
			d := NewDate(2020, time.January, 1)
			require.NoError(t, json.Unmarshal([]byte(in), &d))
			assert.True(t, d.IsZero(), "input %s", in)
		}
	})

	t.Run("non-string is rejected", func(t *testing.T) {
		var d Date
		assert.ErrorIs(t, json.Unmarshal([]byte(`20250321`), &d), ErrInvalidDate)
	})

	t.Run("unparsable text round-trips unchanged", func(t *testing.T) {
		var d Date
		require.NoError(t, json.Unmarshal([]byte(`"20250321"`), &d))
		assert.True(t, d.IsZero())
		assert.Equal(t, "20250321", d.Unparsed())
		assert.Equal(t, "20250321", d.String())

		data, err := json.Marshal(d)
		require.NoError(t, err)
		assert.Equal(t, `"20250321"`, string(data))
	})
}

func TestDateFromText(t *testing.T) {
	assert.Equal(t, NewDate(2025, time.March, 21), DateFromText("2025-03-21"))
	assert.Equal(t, "", DateFromText("2025-03-21").Unparsed())
	assert.Equal(t, "next tuesday", DateFromText("next tuesday").Unparsed())
	assert.Equal(t, Date{}, DateFromText(""))

	_, err := ParseDate("20250321")
	assert.ErrorIs(t, err, ErrInvalidDate, "user input is still strict")
}
