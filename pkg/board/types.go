// Package board owns all mutable domain state of the AAC app: categories
// and their symbols, the sentence being assembled, favorites, the agenda,
// user settings, and the navigation position. The TypeScript UI renders
// from snapshots of this state and dispatches every user action through
// the operations on Board.
package board

// ColorCode is the Fitzgerald linguistic color of a symbol border
// (yellow = people, green = verbs, and so on).
type ColorCode string

const (
	ColorYellow ColorCode = "yellow"
	ColorGreen  ColorCode = "green"
	ColorBlue   ColorCode = "blue"
	ColorRed    ColorCode = "red"
	ColorPurple ColorCode = "purple"
	ColorWhite  ColorCode = "white"
)

// Symbol is a single pictogram button. Maps 1:1 to the TypeScript
// SymbolItem interface.
type Symbol struct {
	ID         string    `json:"id"`
	Label      string    `json:"label"`
	IconName   string    `json:"iconName,omitempty"`
	Image      string    `json:"image,omitempty"`
	ColorCode  ColorCode `json:"colorCode,omitempty"`
	SpeechText string    `json:"speechText,omitempty"`
}

// SpokenText returns the text to feed the speech engine: the speech
// override when set, the display label otherwise.
func (s Symbol) SpokenText() string {
	if s.SpeechText != "" {
		return s.SpeechText
	}
	return s.Label
}

// CoreCategoryID is the permanent quick-access category. It is never
// deletable and always present after reconciliation.
const CoreCategoryID = "core"

// Category is a named, colored grouping of symbols. Item order is
// meaningful: drag-reorder in the UI must survive a round trip.
type Category struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Icon     string   `json:"icon"`
	Color    string   `json:"color"`
	Items    []Symbol `json:"items"`
	IsCustom bool     `json:"isCustom,omitempty"`
}

// SentenceItem is a symbol placed into the in-progress utterance. The
// same symbol may appear several times in one sentence; each insertion
// gets its own TempID so it can be removed individually.
type SentenceItem struct {
	Symbol
	TempID string `json:"tempId"`
}

// AgendaType categorizes an agenda entry.
type AgendaType string

const (
	AgendaEvent AgendaType = "event"
	AgendaClass AgendaType = "class"
	AgendaTask  AgendaType = "task"
)

// AgendaItem is a scheduled activity. Date is a calendar date string
// ("2006-01-02"); Time is an optional clock time for display only.
// Whether an item is archived is derived at read time, never stored.
type AgendaItem struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Type      AgendaType `json:"type"`
	Date      string     `json:"date"`
	Time      string     `json:"time,omitempty"`
	Completed bool       `json:"completed"`
}

// GridSize selects the symbol grid density.
type GridSize string

const (
	GridSmall  GridSize = "small"
	GridMedium GridSize = "medium"
	GridLarge  GridSize = "large"
)

// Settings are the user's presentation and speech preferences. Numeric
// ranges are not validated here; the UI constrains its own inputs and
// the speech engine clamps what it cannot render.
type Settings struct {
	HighContrast       bool     `json:"highContrast"`
	VoiceID            string   `json:"voiceId,omitempty"`
	GridSize           GridSize `json:"gridSize"`
	SpeakingRate       float64  `json:"speakingRate"`
	DoubleClickToSpeak bool     `json:"doubleClickToSpeak,omitempty"`
	SpeakOnlyOnPlay    bool     `json:"speakOnlyOnPlay,omitempty"`
}

// DefaultSettings are applied at board creation and whenever no
// persisted settings exist for the active scope.
func DefaultSettings() Settings {
	return Settings{
		HighContrast: false,
		GridSize:     GridMedium,
		SpeakingRate: 1.0,
	}
}

// Tab is a top-level navigation position.
type Tab string

const (
	TabHome      Tab = "home"
	TabFavorites Tab = "favorites"
	TabAgenda    Tab = "agenda"
	TabManage    Tab = "manage"
	TabProfile   Tab = "profile"
)

// CategoryPatch carries the fields of an updateCategory call. Nil
// pointers leave the current value untouched.
type CategoryPatch struct {
	Name  *string `json:"name,omitempty"`
	Icon  *string `json:"icon,omitempty"`
	Color *string `json:"color,omitempty"`
}

// SymbolPatch carries the fields of an updateSymbol call.
type SymbolPatch struct {
	Label      *string    `json:"label,omitempty"`
	IconName   *string    `json:"iconName,omitempty"`
	Image      *string    `json:"image,omitempty"`
	ColorCode  *ColorCode `json:"colorCode,omitempty"`
	SpeechText *string    `json:"speechText,omitempty"`
}

// SettingsPatch carries a partial settings update. Patches compose:
// merging {speakingRate} and then {highContrast} leaves both applied.
type SettingsPatch struct {
	HighContrast       *bool     `json:"highContrast,omitempty"`
	VoiceID            *string   `json:"voiceId,omitempty"`
	GridSize           *GridSize `json:"gridSize,omitempty"`
	SpeakingRate       *float64  `json:"speakingRate,omitempty"`
	DoubleClickToSpeak *bool     `json:"doubleClickToSpeak,omitempty"`
	SpeakOnlyOnPlay    *bool     `json:"speakOnlyOnPlay,omitempty"`
}

func (p CategoryPatch) apply(c *Category) {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Icon != nil {
		c.Icon = *p.Icon
	}
	if p.Color != nil {
		c.Color = *p.Color
	}
}

func (p SymbolPatch) apply(s *Symbol) {
	if p.Label != nil {
		s.Label = *p.Label
	}
	if p.IconName != nil {
		s.IconName = *p.IconName
	}
	if p.Image != nil {
		s.Image = *p.Image
	}
	if p.ColorCode != nil {
		s.ColorCode = *p.ColorCode
	}
	if p.SpeechText != nil {
		s.SpeechText = *p.SpeechText
	}
}

func (p SettingsPatch) apply(s *Settings) {
	if p.HighContrast != nil {
		s.HighContrast = *p.HighContrast
	}
	if p.VoiceID != nil {
		s.VoiceID = *p.VoiceID
	}
	if p.GridSize != nil {
		s.GridSize = *p.GridSize
	}
	if p.SpeakingRate != nil {
		s.SpeakingRate = *p.SpeakingRate
	}
	if p.DoubleClickToSpeak != nil {
		s.DoubleClickToSpeak = *p.DoubleClickToSpeak
	}
	if p.SpeakOnlyOnPlay != nil {
		s.SpeakOnlyOnPlay = *p.SpeakOnlyOnPlay
	}
}
