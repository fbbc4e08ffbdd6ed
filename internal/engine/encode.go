package engine

import (
	"strconv"
	"strings"
)

// ActionSeparator joins the per-slot commands of one batch.
const ActionSeparator = ", "

// Encode serialises one action. It does not check legality.
func Encode(a ChosenAction) string {
	var b strings.Builder

	switch a.Kind {
	case ActionMove:
		b.WriteString("move ")
		b.WriteString(strconv.Itoa(a.Move))
		if a.Target != 0 {
			b.WriteByte(' ')
			b.WriteString(strconv.Itoa(a.Target))
		}
		if a.ZMove {
			b.WriteString(" zmove")
		}
		if a.Transform != TransformNone {
			b.WriteByte(' ')
			b.WriteString(string(a.Transform))
		}
	case ActionSwitch:
		b.WriteString("switch ")
		b.WriteString(strconv.Itoa(a.Switch))
	case ActionTeam:
		b.WriteString("team ")
		b.WriteString(encodeTeamOrder(a.TeamOrder))
	case ActionDefault:
		b.WriteString("default")
	default:
		b.WriteString("pass")
	}

	return b.String()
}

// EncodeBatch serialises the actions of a batch in slot order.
func EncodeBatch(actions []ChosenAction) string {
	parts := make([]string, len(actions))
	for i, a := range actions {
		parts[i] = Encode(a)
	}
	return strings.Join(parts, ActionSeparator)
}

// encodeTeamOrder writes single digits back to back and falls back to commas
// once any index needs two digits.
func encodeTeamOrder(order []int) string {
	sep := ""
	for _, slot := range order {
		if slot > 9 {
			sep = ","
			break
		}
	}

	parts := make([]string, len(order))
	for i, slot := range order {
		parts[i] = strconv.Itoa(slot)
	}
	return strings.Join(parts, sep)
}
