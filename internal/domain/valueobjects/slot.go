package valueobjects

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalidSlot = errors.New("invalid appointment date/time")
)

const (
	dateLayout  = "2006-01-02"
	clockLayout = "15:04:05"
	isoLayout   = "2006-01-02T15:04:05.000Z"
)

// Formatos aceites na entrada, por ordem. Sem fuso horário assume-se UTC.
var slotLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	dateLayout,
}

// Slot é o par data/hora de uma consulta, sempre em UTC e com precisão de segundos.
// Na base de dados é guardado em duas colunas (date, time).
type Slot struct {
	at time.Time
}

// ParseSlot interpreta o timestamp enviado pelo cliente
func ParseSlot(value string) (Slot, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return Slot{}, ErrInvalidSlot
	}

	for _, layout := range slotLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return SlotFromTime(t), nil
		}
	}

	return Slot{}, ErrInvalidSlot
}

// NewSlot reconstrói o slot a partir das colunas guardadas
func NewSlot(date, clock string) (Slot, error) {
	if len(clock) == len("15:04") {
		clock += ":00"
	}
	t, err := time.Parse(dateLayout+" "+clockLayout, date+" "+clock)
	if err != nil {
		return Slot{}, ErrInvalidSlot
	}
	return Slot{at: t}, nil
}

// SlotFromTime converte um instante para slot
func SlotFromTime(t time.Time) Slot {
	return Slot{at: t.UTC().Truncate(time.Second)}
}

// Date devolve a parte de data (YYYY-MM-DD)
func (s Slot) Date() string {
	return s.at.Format(dateLayout)
}

// Clock devolve a parte de hora (HH:MM:SS)
func (s Slot) Clock() string {
	return s.at.Format(clockLayout)
}

// ISO recombina data e hora num timestamp ISO 8601 em UTC
func (s Slot) ISO() string {
	if s.IsZero() {
		return ""
	}
	return s.at.Format(isoLayout)
}

// Time devolve o instante
func (s Slot) Time() time.Time {
	return s.at
}

func (s Slot) IsZero() bool {
	return s.at.IsZero()
}
