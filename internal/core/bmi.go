package core

// Weight status categories.
const (
	StatusUnknown     = "Unknown"
	StatusUnderweight = "Underweight"
	StatusNormal      = "Normal weight"
	StatusOverweight  = "Overweight"
	StatusObese       = "Obese"
)

// WeightStatuses lists the categories in ascending BMI order, Unknown last.
var WeightStatuses = []string{StatusUnderweight, StatusNormal, StatusOverweight, StatusObese, StatusUnknown}

// BMI thresholds. Each band is lower-inclusive.
const (
	bmiNormalFrom     = 18.5
	bmiOverweightFrom = 25.0
	bmiObeseFrom      = 30.0
)

// BMI returns weight / (height in metres)^2. It is missing when either input is
// missing or the height is not positive.
func BMI(weightKg, heightCm any) (float64, bool) {
	w, ok := ToNumber(weightKg)
	if !ok {
		return 0, false
	}
	h, ok := ToNumber(heightCm)
	if !ok || h <= 0 {
		return 0, false
	}
	m := h / 100
	return w / (m * m), true
}

// WeightStatus maps a BMI to its category. ok=false yields StatusUnknown.
func WeightStatus(bmi float64, ok bool) string {
	switch {
	case !ok:
		return StatusUnknown
	case bmi < bmiNormalFrom:
		return StatusUnderweight
	case bmi < bmiOverweightFrom:
		return StatusNormal
	case bmi < bmiObeseFrom:
		return StatusOverweight
	default:
		return StatusObese
	}
}
