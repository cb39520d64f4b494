package calendar

// eventSpecSchema validates the JSON shape accepted by the import action.
// Kept as a raw document so the contract can be shared with external tools.
const eventSpecSchema = `{
	"type": "object",
	"properties": {
		"title": {"type": "string", "minLength": 1},
		"start": {"type": "string", "format": "date-time"},
		"end": {"type": "string", "format": "date-time"},
		"location": {"type": "string"},
		"description": {"type": "string"}
	},
	"required": ["title", "start"],
	"additionalProperties": false
}`

const (
	ActionCreate = "create"
	ActionList   = "list"
	ActionRemind = "remind"
	ActionSearch = "search"
	ActionImport = "import"
)

// DefaultEventDuration applies when a created event names no end time.
const defaultEventDurationHours = 1
