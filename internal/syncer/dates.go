package syncer

import (
	"database/sql"
	"time"
)

// The operations site runs on fixed UTC−6 wall-clock time. Scheduling
// screens must show the clock value that was entered upstream, so
// timestamps are normalized to naive local strings instead of UTC.
var siteZone = time.FixedZone("UTC-6", -6*60*60)

const naiveLayout = "2006-01-02T15:04:05"

// NormalizeTimestamp converts a workspace timestamp to the canonical naive
// local form:
//   - empty stays empty, pure calendar dates (YYYY-MM-DD) pass through,
//   - values carrying a Z or numeric offset are shifted into site time and
//     re-rendered without the offset,
//   - offset-less values are taken as already-local and keep their clock,
//   - anything unparseable is returned unchanged, never an error.
func NormalizeTimestamp(raw string) string {
	if raw == "" {
		return ""
	}
	if len(raw) == 10 {
		return raw
	}

	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.In(siteZone).Format(naiveLayout)
	}

	// No offset: interpret in site time. Parse tolerates fractional
	// seconds even though the layout carries none.
	if t, err := time.ParseInLocation(naiveLayout, raw, siteZone); err == nil {
		return t.Format(naiveLayout)
	}

	return raw
}

// nullTimestamp maps a normalized timestamp to its nullable column value.
func nullTimestamp(raw string) sql.NullString {
	norm := NormalizeTimestamp(raw)
	return sql.NullString{String: norm, Valid: norm != ""}
}

// parseDate reads the calendar-date prefix of a workspace date value.
func parseDate(raw string) sql.NullTime {
	if len(raw) < 10 {
		return sql.NullTime{}
	}
	t, err := time.ParseInLocation("2006-01-02", raw[:10], siteZone)
	if err != nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t, Valid: true}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullTime(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t, Valid: !t.IsZero()}
}
