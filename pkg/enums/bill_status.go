package enums

// BillStatus tracks the processing state of an uploaded bill. Bills are only
// persisted once the full pipeline succeeds, so completed is the sole stored
// value today.
type BillStatus string

const (
	BillStatusCompleted BillStatus = "completed"
)

// IsValid checks whether the given status is recognized.
func (b BillStatus) IsValid() bool {
	return b == BillStatusCompleted
}
