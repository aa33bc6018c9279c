// Package schedule contains pure slot arithmetic over minutes since midnight.
package schedule

import "github.com/m04kA/SMC-CarWash/pkg/types"

// Window is a half-open reservation interval [Start, Start+Duration) in minutes
type Window struct {
	Start    int
	Duration int
}

// End returns the exclusive end of the window
func (w Window) End() int {
	return w.Start + w.Duration
}

// NewWindow builds a window from a clock time
func NewWindow(start types.TimeString, duration int) (Window, error) {
	minutes, err := start.Minutes()
	if err != nil {
		return Window{}, err
	}
	return Window{Start: minutes, Duration: duration}, nil
}

// GenerateSlots возвращает все начала слотов длительностью duration между open и close.
// Слоты идут от open с шагом duration, последний заканчивается не позже close.
// Переход через полночь не поддерживается: при open >= close результат пустой.
func GenerateSlots(duration int, open, close types.TimeString) ([]types.TimeString, error) {
	slots := make([]types.TimeString, 0)

	if duration <= 0 {
		return slots, nil
	}

	openMinutes, err := open.Minutes()
	if err != nil {
		return nil, err
	}
	closeMinutes, err := close.Minutes()
	if err != nil {
		return nil, err
	}

	for start := openMinutes; start+duration <= closeMinutes; start += duration {
		slots = append(slots, types.NewTimeStringFromMinutes(start))
	}

	return slots, nil
}

// Overlaps проверяет, пересекается ли кандидат [start, start+duration) хотя бы с одним окном.
// Граничащие интервалы (конец одного равен началу другого) не пересекаются.
func Overlaps(existing []Window, start, duration int) bool {
	candidate := Window{Start: start, Duration: duration}
	for _, w := range existing {
		if intersects(w, candidate) {
			return true
		}
	}
	return false
}

// Free возвращает слоты, не пересекающиеся ни с одним из окон
func Free(slots []types.TimeString, duration int, existing []Window) ([]types.TimeString, error) {
	free := make([]types.TimeString, 0, len(slots))
	for _, slot := range slots {
		start, err := slot.Minutes()
		if err != nil {
			return nil, err
		}
		if !Overlaps(existing, start, duration) {
			free = append(free, slot)
		}
	}
	return free, nil
}

func intersects(a, b Window) bool {
	return a.Start < b.End() && b.Start < a.End()
}
