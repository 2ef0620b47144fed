package gateway

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLightReport(t *testing.T) {
	tests := []struct {
		record string
		want   LightReport
		ok     bool
		tagged bool
	}{
		{"node42:light_report:true", LightReport{"node42", true}, true, true},
		{"3257191425:light_report:false", LightReport{"3257191425", false}, true, true},
		{" node42:light_report:true ", LightReport{"node42", true}, true, true},
		{"node42:light_report:maybe", LightReport{}, false, true},
		{"node42:light_report", LightReport{}, false, true},
		{"node42:light_report:true:extra", LightReport{}, false, true},
		{":light_report:true", LightReport{}, false, true},
		{"light_report", LightReport{}, false, true},
		{"node42:status:true", LightReport{}, false, false},
		{"garbage", LightReport{}, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.record, func(t *testing.T) {
			got, ok, tagged := ParseLightReport(tt.record)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.tagged, tagged)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSplitRecords(t *testing.T) {
	assert.Equal(t,
		[]string{"a:light_report:true", "heartbeat", "b:light_report:false"},
		SplitRecords([]byte("a:light_report:true\r\nheartbeat\n\n  \nb:light_report:false\n")),
	)
	assert.Empty(t, SplitRecords([]byte("\n\n")))
	assert.Equal(t, []string{"garbage"}, SplitRecords([]byte("garbage")))
}
