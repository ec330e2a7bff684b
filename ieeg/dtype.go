package ieeg

// DType identifies the element type of the source data behind a Recording.
// Columns are always held as float64 in memory for analysis; the DType
// records the numeric precision the values were produced from, so quality
// checks can flag recordings built from truncated or raw integer counts.
type DType string

// Element type constants
const (
	Float64 DType = "float64"
	Float32 DType = "float32"
	Int32   DType = "int32"
	Int16   DType = "int16"
)

// ValidDTypes contains all valid element type values
var ValidDTypes = []DType{Float64, Float32, Int32, Int16}

// Valid checks if the element type is in the list of valid types
func (d DType) Valid() bool {
	for _, v := range ValidDTypes {
		if d == v {
			return true
		}
	}
	return false
}

func (d DType) String() string {
	return string(d)
}
