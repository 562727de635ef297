package sink

import "github.com/lexcloud/lexcloud/pkg/cloud"

// RenderJSON serializes the layout itself. The output round-trips
// through [cloud.UnmarshalLayout], so a JSON artifact can be re-rendered
// later in any other format without recomputing the placement.
func RenderJSON(l cloud.Layout) ([]byte, error) {
	return cloud.MarshalLayout(l)
}
