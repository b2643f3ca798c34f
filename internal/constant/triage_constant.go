package constant

// National emergency numbers quoted in citizen-facing confirmations.
const (
	EmergencyNumberRescue = "1122"
	EmergencyNumberPolice = "15"
)

// Critical one-line actions for lite-mode confirmations, keyed by case type.
const (
	LiteActionHealth   = "Emergency " + EmergencyNumberRescue + ", go to nearest ER"
	LiteActionCrime    = "Call " + EmergencyNumberPolice + ", report at nearest station"
	LiteActionDisaster = "Call " + EmergencyNumberRescue + ", move to safe ground"
	LiteActionUnknown  = "Report recorded, help is being arranged"
)
