package vak

// Learning style labels as produced by the classification microservice.
const (
	StyleVisual      = "Visual"
	StyleAuditory    = "Auditory"
	StyleKinesthetic = "Kinesthetic"
)

// NormalizeStyle guards against the classifier returning an empty label.
// The original model occasionally yields no prediction; Visual is the
// agreed default in that case. Unknown non-empty labels pass through and
// get the standard prompt variant.
func NormalizeStyle(label string) string {
	if label == "" {
		return StyleVisual
	}
	return label
}
