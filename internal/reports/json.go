package reports

import "encoding/json"

// JSON output is pretty-printed so reports are readable when piped to a
// file as well as to jq.

func FormatDailyJSON(report *DailyReport) ([]byte, error) {
	return marshalReport(report)
}

func FormatWeeklyJSON(report *WeeklyReport) ([]byte, error) {
	return marshalReport(report)
}

func marshalReport(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}
