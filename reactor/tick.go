package reactor

const (
	// rods inserted per tick while an emergency shutdown is in progress
	scramRodsPerTick = 35
	// upper bound of the fuel burnt per active tick, in percentage points
	maxFuelBurn = 0.2
	// power produced per withdrawn rod, in MW
	outputPerRod = 3.98
)

var statusMessages = map[TemperatureStatus]string{
	Safe:     "Reactor returned to safe temperature levels.",
	Caution:  "Reactor exceeding safe temperature level - caution is advised.",
	Danger:   "Reactor critically exceeding safe temperature level - danger.",
	Meltdown: "Reactor has begun meltdown process. Recommending controlled shutdown or emergency shutdown immediately.",
}

// Tick advances the reactor by one simulation step
func (r *Reactor) Tick() {
	switch r.state {
	case Maintenance, Offline:
		r.rods = ControlRods{In: RodTotal, Out: 0}
		r.temperature.Amount = Ambient(r.temperature.Unit)

	case EmergencyShutdown:
		if r.rods.In != RodTotal {
			r.DropControlRods(scramRodsPerTick)
			r.temperature.Amount = cooled(r.temperature.Unit, r.rods.Out, r.noise.Float64())
		}
		if r.coolant != CoolantOn {
			r.coolant = CoolantOn
			r.AddLog("Coolant was enabled due to Emergency shutdown mode.")
		}

	default:
		r.burnFuel()
		if r.state == Active {
			r.heat()
		}
	}

	r.updateStatus()
	r.output.Amount = float64(r.rods.Out) * outputPerRod
}

func (r *Reactor) burnFuel() {
	burn := r.noise.Float64() * maxFuelBurn
	if r.fuel-burn >= 0 {
		r.fuel -= burn
		return
	}
	r.fuel = 0
	r.state = Offline
	r.AddLog("Reactor shut down due to lack of fuel.")
}

func (r *Reactor) heat() {
	if r.coolant == CoolantOn {
		r.temperature.Amount = cooled(r.temperature.Unit, r.rods.Out, r.noise.Float64())
		return
	}
	r.temperature.Amount += r.noise.Float64() * uncooledDriftSpan
}

func (r *Reactor) updateStatus() {
	status, beyondLimit := r.temperature.Classify()
	if !beyondLimit {
		if status != r.temperature.Status {
			r.temperature.Status = status
			r.AddLog(statusMessages[status])
		}
		return
	}
	if r.state != EmergencyShutdown {
		r.temperature.Status = Meltdown
		r.state = EmergencyShutdown
		r.AddLog("Emergency shutdown mode automatically activated!")
	}
}
