package models

// RejectReason identifies why a survey row (or a whole city group) was
// excluded from the canonical dataset. Drops are a cleaning policy, not
// errors, but every one of them is accounted for.
type RejectReason string

const (
	ReasonMissingValue     RejectReason = "missing_value"
	ReasonCountryNotInList RejectReason = "country_not_allowed"
	ReasonUntrusted        RejectReason = "untrusted"
	ReasonInvalidNumber    RejectReason = "invalid_number"
	ReasonNotFound         RejectReason = "location_not_found"
	ReasonGeocodeFailed    RejectReason = "geocode_failed"
	ReasonCountryMismatch  RejectReason = "country_mismatch"
	ReasonNoRepresentative RejectReason = "no_representative_row"
)

// Rejection records one dropped row together with the reason and an optional
// free-form detail (e.g. the mismatched country returned by the geocoder).
type Rejection struct {
	City    string
	Country string
	Reason  RejectReason
	Detail  string
}

// CountByReason tallies rejections per reason, for drop-summary logging.
func CountByReason(rejections []Rejection) map[RejectReason]int {
	counts := make(map[RejectReason]int)
	for _, r := range rejections {
		counts[r.Reason]++
	}
	return counts
}
