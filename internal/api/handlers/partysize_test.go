package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePartySize(t *testing.T) {
	cases := []struct {
		raw     string
		want    int
		wantErr bool
	}{
		{raw: "4", want: 4},
		{raw: " 12 ", want: 12},
		{raw: "20", want: 20},
		{raw: "20+", want: 20}, // сентинел больших компаний
		{raw: "21+", wantErr: true},
		{raw: "4+", wantErr: true},
		{raw: "+", wantErr: true},
		{raw: "", wantErr: true},
		{raw: "four", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			got, err := ParsePartySize(tc.raw)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
