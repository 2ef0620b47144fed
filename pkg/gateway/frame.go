package gateway

import (
	"strings"
)

// lightReportTag marks a status report in the gateway's text protocol.
const lightReportTag = "light_report"

// LightReport is a parsed "<nodeID>:light_report:<true|false>" record.
type LightReport struct {
	NodeID string
	IsOn   bool
}

// SplitRecords splits one event stream message into its newline-delimited records,
// dropping blank lines and trailing carriage returns.
func SplitRecords(msg []byte) []string {
	var records []string
	for line := range strings.SplitSeq(string(msg), "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		records = append(records, line)
	}
	return records
}

// ParseLightReport reports whether record is a well-formed light report.
// tagged is true when the record mentions the tag at all, so callers can tell a
// malformed report apart from unrelated telemetry.
func ParseLightReport(record string) (report LightReport, ok, tagged bool) {
	if !strings.Contains(record, lightReportTag) {
		return LightReport{}, false, false
	}

	fields := strings.Split(strings.TrimSpace(record), ":")
	if len(fields) != 3 || fields[1] != lightReportTag || fields[0] == "" {
		return LightReport{}, false, true
	}

	switch fields[2] {
	case "true":
		return LightReport{NodeID: fields[0], IsOn: true}, true, true
	case "false":
		return LightReport{NodeID: fields[0], IsOn: false}, true, true
	default:
		return LightReport{}, false, true
	}
}
