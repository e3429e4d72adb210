package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApprovalValue(t *testing.T) {
	v, err := ApprovalUnset.Value()
	assert.NoError(t, err)
	assert.Nil(t, v)

	v, err = ApprovalGranted.Value()
	assert.NoError(t, err)
	assert.Equal(t, true, v)

	v, err = ApprovalDenied.Value()
	assert.NoError(t, err)
	assert.Equal(t, false, v)
}

func TestApprovalScan(t *testing.T) {
	tests := []struct {
		name string
		src  any
		want Approval
	}{
		{"null column", nil, ApprovalUnset},
		{"bool true", true, ApprovalGranted},
		{"bool false", false, ApprovalDenied},
		{"int64 one", int64(1), ApprovalGranted},
		{"int64 zero", int64(0), ApprovalDenied},
		{"bytes true", []byte("true"), ApprovalGranted},
		{"string f", "f", ApprovalDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var a Approval
			assert.NoError(t, a.Scan(tt.src))
			assert.Equal(t, tt.want, a)
		})
	}

	var a Approval
	assert.Error(t, a.Scan("maybe"))
	assert.Error(t, a.Scan(3.14))
}

func TestApprovalJSONRoundTrip(t *testing.T) {
	type gates struct {
		Manager  Approval `json:"manager_approval"`
		Security Approval `json:"security_approval"`
		Exit     Approval `json:"manager_exit_approval"`
	}

	out, err := json.Marshal(gates{Manager: ApprovalGranted, Security: ApprovalDenied})
	assert.NoError(t, err)
	assert.JSONEq(t, `{"manager_approval":true,"security_approval":false,"manager_exit_approval":null}`, string(out))

	var in gates
	err = json.Unmarshal([]byte(`{"manager_approval":null,"security_approval":true,"manager_exit_approval":false}`), &in)
	assert.NoError(t, err)
	assert.Equal(t, ApprovalUnset, in.Manager)
	assert.Equal(t, ApprovalGranted, in.Security)
	assert.Equal(t, ApprovalDenied, in.Exit)
}
