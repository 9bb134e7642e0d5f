package constants

import "fmt"

// dimensionSpans holds, per dimension, how many indicators the evaluation
// instrument defines. Dimension 1 runs 1.1..1.24, dimension 2 runs
// 2.1..2.16 and dimension 3 runs 3.1..3.17.
var dimensionSpans = []struct {
	Dimension int
	Count     int
}{
	{1, 24},
	{2, 16},
	{3, 17},
}

// Dimensions lists the three top-level grouping categories of the instrument.
var Dimensions = []int{1, 2, 3}

var (
	allIndicators   []string
	validIndicators map[string]struct{}
)

func init() {
	validIndicators = make(map[string]struct{})
	for _, span := range dimensionSpans {
		for i := 1; i <= span.Count; i++ {
			id := fmt.Sprintf("%d.%d", span.Dimension, i)
			allIndicators = append(allIndicators, id)
			validIndicators[id] = struct{}{}
		}
	}
}

// AllIndicators returns every valid indicator id in instrument order
// (1.1..1.24, 2.1..2.16, 3.1..3.17). The returned slice must not be mutated.
func AllIndicators() []string {
	return allIndicators
}

// IsValidIndicator reports whether id belongs to the known indicator set.
// Segmented blocks outside this set are dropped, never stored.
func IsValidIndicator(id string) bool {
	_, ok := validIndicators[id]
	return ok
}
