package event

// Buttons
type ButtonId int

const (
	SCREEN_BUTTON ButtonId = iota
	POWER_KEY
)

func (b ButtonId) String() string {
	switch b {
	case SCREEN_BUTTON:
		return "screen button"
	case POWER_KEY:
		return "power key"
	default:
		return "unknown button"
	}
}

type ButtonEventType int

const (
	PRESS_EVENT_TYPE ButtonEventType = iota
	RELEASE_EVENT_TYPE
)

type ButtonEvent struct {
	ButtonId        ButtonId
	ButtonEventType ButtonEventType
	PressStepCount  int64
}

// Api
type ApiEvent struct {
	Result chan error
	Data   interface{}
}

type ApiEventScreenData struct {
	Screen string
}

type ApiEventToggleScreenData struct{}

type ApiEventModeData struct {
	Mode string
}
