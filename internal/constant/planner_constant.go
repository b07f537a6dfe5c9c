package constant

// Logger module names.
const (
	ModulePlannerService  = "PlannerService"
	ModuleConsumerService = "ConsumerService"
	ModuleSelectionWS     = "SelectionHandler"
	ModuleHub             = "Hub"
)

// WebSocket message types.
const (
	WsTypeSelectTransport     = "select_transport"
	WsTypeSelectAccommodation = "select_accommodation"
	WsTypeReset               = "reset"

	WsTypeSessionSnapshot  = "session_snapshot"
	WsTypeSessionUpdated   = "session_updated"
	WsTypeGenerationFailed = "generation_failed"
	WsTypeSessionDeleted   = "session_deleted"
	WsTypeError            = "error"
)

// Event payload keys.
const (
	EventKeyBaseCost     = "base_cost"
	EventKeyDerivedTotal = "derived_total"
	EventKeyTotalDefined = "total_defined"
	EventKeyCurrency     = "currency"
	EventKeyTitle        = "title"
	EventKeySelection    = "selection"
	EventKeyMode         = "mode"
	EventKeyDirection    = "direction"
	EventKeyLocation     = "location"
	EventKeyIndex        = "index"
	EventKeyMessage      = "message"

	SelectionTransport     = "transport"
	SelectionAccommodation = "accommodation"
)

// RedisChannelPlannerEvents carries hub deliveries between instances.
const RedisChannelPlannerEvents = "planner_events"
