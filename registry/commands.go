package registry

// Command names, used for metrics labels and access rules
const (
	CommandFindAll            = "find_all"
	CommandTemperature        = "temperature"
	CommandCoolant            = "coolant"
	CommandOutput             = "output"
	CommandFuel               = "fuel"
	CommandRodState           = "rod_state"
	CommandReactorState       = "reactor_state"
	CommandLogs               = "logs"
	CommandPlantName          = "plant_name"
	CommandReactorName        = "reactor_name"
	CommandTemperatureUnit    = "temperature_unit"
	CommandRaiseRod           = "raise_rod"
	CommandDropRod            = "drop_rod"
	CommandStart              = "start"
	CommandControlledShutdown = "controlled_shutdown"
	CommandEmergencyShutdown  = "emergency_shutdown"
	CommandMaintenance        = "maintenance"
	CommandRefuel             = "refuel"
	CommandSetCoolant         = "set_coolant"
	CommandReset              = "reset"
)

// RodStep is the number of rods a single raise or drop command moves
const RodStep = 1
