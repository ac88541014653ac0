package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexDateUnmarshal(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    time.Time
		wantNil bool
		wantErr bool
	}{
		{name: "date only", in: `"2026-10-01"`, want: time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)},
		{name: "rfc3339", in: `"2026-10-01T14:30:00Z"`, want: time.Date(2026, 10, 1, 14, 30, 0, 0, time.UTC)},
		{name: "no zone", in: `"2026-10-01T14:30:00"`, want: time.Date(2026, 10, 1, 14, 30, 0, 0, time.UTC)},
		{name: "null", in: `null`, wantNil: true},
		{name: "empty string", in: `""`, wantNil: true},
		{name: "blank string", in: `"   "`, wantNil: true},
		{name: "garbage", in: `"next tuesday"`, wantErr: true},
		{name: "number", in: `20261001`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d FlexDate
			err := json.Unmarshal([]byte(tt.in), &d)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.wantNil {
				assert.Nil(t, d.Ptr())
				return
			}
			require.NotNil(t, d.Ptr())
			assert.True(t, d.Ptr().Equal(tt.want), "got %s", d.Ptr())
		})
	}
}

func TestFlexDateInRequestBody(t *testing.T) {
	var req CreateClientRequest
	body := `{"name":"Harbor Labs","go_live_date":"2026-10-01","contract_date":"2026-08-15T09:00:00Z"}`
	require.NoError(t, json.Unmarshal([]byte(body), &req))
	require.NotNil(t, req.GoLiveDate.Ptr())
	assert.Equal(t, "2026-10-01", req.GoLiveDate.Ptr().Format("2006-01-02"))
	require.NotNil(t, req.ContractDate.Ptr())
	assert.Equal(t, 9, req.ContractDate.Ptr().Hour())
}
