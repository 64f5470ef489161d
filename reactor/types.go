package reactor

// State is a reactor's operating state
type State string

const (
	Active            State = "Active"
	Offline           State = "Offline"
	Maintenance       State = "Maintenance"
	EmergencyShutdown State = "Emergency Shutdown"
)

// Coolant is the coolant pump state
type Coolant string

const (
	CoolantOn  Coolant = "on"
	CoolantOff Coolant = "off"
)

// Valid reports whether c is on or off
func (c Coolant) Valid() bool {
	return c == CoolantOn || c == CoolantOff
}

// TemperatureUnit is the unit a reactor reports and stores temperatures in
type TemperatureUnit string

const (
	Celsius    TemperatureUnit = "celsius"
	Fahrenheit TemperatureUnit = "fahrenheit"
)

// Valid reports whether u is a known unit
func (u TemperatureUnit) Valid() bool {
	return u == Celsius || u == Fahrenheit
}

// TemperatureStatus is the safety band the current temperature falls in
type TemperatureStatus string

const (
	Safe     TemperatureStatus = "Safe"
	Caution  TemperatureStatus = "Caution"
	Danger   TemperatureStatus = "Danger"
	Meltdown TemperatureStatus = "Meltdown"
)

// OutputUnit is the display unit of the power output. It is never converted.
type OutputUnit string

const (
	Megawatt OutputUnit = "Megawatt (MW)"
	Gigawatt OutputUnit = "Gigawatt (GW)"
)

// ControlRods is the split of the fixed rod inventory between inserted and
// withdrawn. In+Out always equals RodTotal.
type ControlRods struct {
	In  int `json:"in"`
	Out int `json:"out"`
}

// TemperatureReading is the externally visible part of a reactor temperature
type TemperatureReading struct {
	Amount float64           `json:"amount"`
	Unit   TemperatureUnit   `json:"unit"`
	Status TemperatureStatus `json:"status"`
}

// Output is the reactor's power output
type Output struct {
	Amount float64    `json:"amount"`
	Unit   OutputUnit `json:"unit"`
}

// Summary identifies a reactor in plant listings
type Summary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
