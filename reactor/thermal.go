package reactor

const (
	// RodTotal is the number of control rods every reactor owns
	RodTotal = 300

	celsiusAmbient    = 22.22222
	fahrenheitAmbient = 72.0

	// temperature rise per withdrawn rod, in Celsius degrees
	heatPerRod = 2.45168
	// sensor noise span with coolant on, in Celsius degrees
	coolantNoiseSpan = 10.0
	// upward drift span per tick with coolant off, in the current unit
	uncooledDriftSpan = 20.0
	// degrees above the meltdown threshold that force an emergency shutdown
	meltdownMargin = 50.0
)

// ToFahrenheit converts a Celsius temperature
func ToFahrenheit(c float64) float64 {
	return c*9/5 + 32
}

// ToCelsius converts a Fahrenheit temperature
func ToCelsius(f float64) float64 {
	return (f - 32) * 5 / 9
}

// Ambient returns the idle baseline temperature in unit
func Ambient(unit TemperatureUnit) float64 {
	if unit == Fahrenheit {
		return fahrenheitAmbient
	}
	return celsiusAmbient
}

// degreeScale is the size of one Celsius degree expressed in unit
func degreeScale(unit TemperatureUnit) float64 {
	if unit == Fahrenheit {
		return 1.8
	}
	return 1
}

func convertValue(v float64, from, to TemperatureUnit) float64 {
	switch {
	case from == Celsius && to == Fahrenheit:
		return ToFahrenheit(v)
	case from == Fahrenheit && to == Celsius:
		return ToCelsius(v)
	default:
		return v
	}
}

// Thresholds are the four safety boundaries, expressed in one unit
type Thresholds struct {
	MaxSafe  float64
	Caution  float64
	Danger   float64
	Meltdown float64
}

// DefaultThresholds returns the factory thresholds in Celsius
func DefaultThresholds() Thresholds {
	return Thresholds{
		MaxSafe:  736,
		Caution:  800,
		Danger:   850,
		Meltdown: 900,
	}
}

func (t Thresholds) convert(from, to TemperatureUnit) Thresholds {
	return Thresholds{
		MaxSafe:  convertValue(t.MaxSafe, from, to),
		Caution:  convertValue(t.Caution, from, to),
		Danger:   convertValue(t.Danger, from, to),
		Meltdown: convertValue(t.Meltdown, from, to),
	}
}

// ShutdownLimit is the temperature above which a running reactor is forced
// into emergency shutdown
func (t Thresholds) ShutdownLimit() float64 {
	return t.Meltdown + meltdownMargin
}

// Classify returns the status band for amount. beyondLimit is true when amount
// lies above ShutdownLimit; the band is then Meltdown.
func (t Thresholds) Classify(amount float64) (status TemperatureStatus, beyondLimit bool) {
	switch {
	case amount <= t.MaxSafe:
		return Safe, false
	case amount <= t.Caution:
		return Caution, false
	case amount <= t.Danger:
		return Danger, false
	case amount <= t.ShutdownLimit():
		return Meltdown, false
	default:
		return Meltdown, true
	}
}

// Temperature keeps a reading together with the thresholds it is judged
// against. Both are always stored in Unit; Convert is the only way to change
// the unit and rescales all of them together.
type Temperature struct {
	Amount     float64
	Unit       TemperatureUnit
	Status     TemperatureStatus
	thresholds Thresholds
}

// NewTemperature builds a temperature in unit with the factory thresholds
// converted into that unit
func NewTemperature(amount float64, unit TemperatureUnit, status TemperatureStatus) Temperature {
	if !unit.Valid() {
		unit = Celsius
	}
	return Temperature{
		Amount:     amount,
		Unit:       unit,
		Status:     status,
		thresholds: DefaultThresholds().convert(Celsius, unit),
	}
}

// Thresholds returns the thresholds in the temperature's current unit
func (t Temperature) Thresholds() Thresholds {
	return t.thresholds
}

// Reading returns the externally visible view
func (t Temperature) Reading() TemperatureReading {
	return TemperatureReading{Amount: t.Amount, Unit: t.Unit, Status: t.Status}
}

// Convert rescales the amount, then the thresholds, into unit. It returns
// false and changes nothing when unit is already current or unknown.
func (t *Temperature) Convert(unit TemperatureUnit) bool {
	if unit == t.Unit || !unit.Valid() {
		return false
	}
	t.Amount = convertValue(t.Amount, t.Unit, unit)
	t.thresholds = t.thresholds.convert(t.Unit, unit)
	t.Unit = unit
	return true
}

// Classify classifies the current amount against the stored thresholds
func (t Temperature) Classify() (TemperatureStatus, bool) {
	return t.thresholds.Classify(t.Amount)
}

// cooled returns the actively cooled temperature for the given withdrawn rods
// and noise sample in [0,1)
func cooled(unit TemperatureUnit, rodsOut int, sample float64) float64 {
	scale := degreeScale(unit)
	return Ambient(unit) + float64(rodsOut)*heatPerRod*scale + sample*coolantNoiseSpan*scale
}
