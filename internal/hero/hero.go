package hero

type Attribute string

const (
	Strength     Attribute = "STRENGTH"
	Agility      Attribute = "AGILITY"
	Intelligence Attribute = "INTELLIGENCE"
	Universal    Attribute = "UNIVERSAL"
)

// AttributeOrder fixes the display order of roster groups.
var AttributeOrder = []Attribute{Strength, Agility, Intelligence, Universal}

func ParseAttribute(s string) (Attribute, bool) {
	switch Attribute(s) {
	case Strength:
		return Strength, true
	case Agility:
		return Agility, true
	case Intelligence:
		return Intelligence, true
	case Universal:
		return Universal, true
	default:
		return "", false
	}
}

// Hero is one roster entry as served by the roster source. The collection is
// replaced wholesale on every load, individual entries never change.
type Hero struct {
	ID               int64     `json:"id"`
	Name             string    `json:"name"`
	PrimaryAttribute Attribute `json:"primaryAttribute"`
	ImageURL         string    `json:"imageUrl"`
	Roles            []string  `json:"roles,omitempty"`
}
