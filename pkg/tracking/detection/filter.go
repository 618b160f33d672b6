package detection

// Default area bounds in square pixels, tuned for a mouse filmed from above.
const (
	DefaultMinArea = 200
	DefaultMaxArea = 500
)

// AreaFilter drops regions that are camera noise or several merged blobs.
// Both bounds are exclusive.
type AreaFilter struct {
	Min float64
	Max float64
}

// Accept reports whether r has an area strictly between Min and Max.
func (f AreaFilter) Accept(r Region) bool {
	return f.Min < r.Area && r.Area < f.Max
}
