package presets

import (
	"strings"

	"ptz-panel/internal/types"
)

// zones зоны поля в порядке сетки 3x3 (по строкам)
var zones = []types.Zone{
	{ID: 1, Position: "top-left", Key: "q"},
	{ID: 2, Position: "top-center", Key: "w"},
	{ID: 3, Position: "top-right", Key: "e"},
	{ID: 4, Position: "middle-left", Key: "a"},
	{ID: 5, Position: "center", Key: "s"},
	{ID: 6, Position: "middle-right", Key: "d"},
	{ID: 7, Position: "bottom-left", Key: "z"},
	{ID: 8, Position: "bottom-center", Key: "x"},
	{ID: 9, Position: "bottom-right", Key: "c"},
}

// keyMap клавиша -> идентификатор зоны
var keyMap = func() map[string]int {
	m := make(map[string]int, len(zones))
	for _, z := range zones {
		m[z.Key] = z.ID
	}
	return m
}()

// Zones возвращает копию таблицы зон
func Zones() []types.Zone {
	out := make([]types.Zone, len(zones))
	copy(out, zones)
	return out
}

// Keys возвращает назначенные клавиши в порядке зон
func Keys() []string {
	keys := make([]string, 0, len(zones))
	for _, z := range zones {
		keys = append(keys, z.Key)
	}
	return keys
}

// Lookup возвращает зону для клавиши без учета регистра.
// Учитываются только одиночные символы, "Shift" или "Escape" не совпадут ни с чем.
func Lookup(key string) (int, bool) {
	id, ok := keyMap[strings.ToLower(key)]
	return id, ok
}

// Valid проверяет идентификатор зоны
func Valid(id int) bool {
	return id >= 1 && id <= len(zones)
}

// Zone возвращает зону по идентификатору
func Zone(id int) (types.Zone, bool) {
	if !Valid(id) {
		return types.Zone{}, false
	}
	return zones[id-1], true
}

// Dispatch находит зону для клавиши и вызывает action.
// Возвращает false для неназначенных клавиш, action при этом не вызывается.
func Dispatch(key string, action func(zoneID int)) bool {
	id, ok := Lookup(key)
	if !ok {
		return false
	}
	action(id)
	return true
}
