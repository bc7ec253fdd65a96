package dataset

import (
	"github.com/pkg/errors"
)

// Feature identifies one numeric behavioral column of the customer table.
type Feature int

const (
	TotalBookings Feature = iota
	CancelRate
	MeanADR
	AvgStayNights
	SpecialRequestsMean
	BookingChangesMean
	UsedPromoRate
	RecencyDays
	LoyaltyIndex
	EngagementScore

	numFeatures
)

var columnNames = [numFeatures]string{
	TotalBookings:       "total_bookings",
	CancelRate:          "cancel_rate",
	MeanADR:             "mean_adr",
	AvgStayNights:       "avg_stay_nights",
	SpecialRequestsMean: "special_requests_mean",
	BookingChangesMean:  "booking_changes_mean",
	UsedPromoRate:       "used_promo_rate",
	RecencyDays:         "recency_days",
	LoyaltyIndex:        "loyalty_index",
	EngagementScore:     "engagement_score",
}

// ClusterColumn is the header of the pre-assigned cluster ID column.
const ClusterColumn = "cluster"

// ErrUnknownFeature is returned by ParseFeature for names outside the feature set.
var ErrUnknownFeature = errors.New("unknown feature")

// Features returns the behavioral feature set in display order.
func Features() []Feature {
	out := make([]Feature, numFeatures)
	for i := range out {
		out[i] = Feature(i)
	}
	return out
}

// Column returns the CSV header name of f.
func (f Feature) Column() string {
	if !f.Valid() {
		return ""
	}
	return columnNames[f]
}

func (f Feature) String() string { return f.Column() }

func (f Feature) Valid() bool { return f >= 0 && f < numFeatures }

// ParseFeature maps a column name back to its Feature.
func ParseFeature(column string) (Feature, error) {
	for i, name := range columnNames {
		if name == column {
			return Feature(i), nil
		}
	}
	return 0, errors.Wrapf(ErrUnknownFeature, "%q", column)
}
