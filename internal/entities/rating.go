package entities

// MinRating and MaxRating bound a single submitted rating value.
const (
	MinRating = 1
	MaxRating = 5
)

// Rating aggregates the values submitted for one book. ID matches the book's ID.
type Rating struct {
	ID      string  `gorm:"primaryKey;size:20" json:"id"`
	Title   string  `gorm:"size:512" json:"title"`
	Values  []int   `gorm:"serializer:json" json:"values"`
	Average float64 `json:"average"`
}

func NewRating(id, title string) Rating {
	return Rating{ID: id, Title: title, Values: []int{}}
}

// AddValue appends a value and recomputes the average.
func (r *Rating) AddValue(value int) {
	r.Values = append(r.Values, value)
	r.Average = AverageOf(r.Values)
}

// AverageOf returns the mean of values rounded half away from zero to two decimals.
// The rounding is done in integer hundredths so equal inputs always yield equal floats.
func AverageOf(values []int) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}
	sum := 0
	for _, v := range values {
		sum += v
	}
	hundredths := (200*sum + n) / (2 * n)
	return float64(hundredths) / 100
}
