package engine

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/KirkDiggler/showdown-player/internal/entities/showdown"
)

// Summary is render-ready data about what a request allows
type Summary struct {
	Kind        RequestKind       `json:"kind"`
	RQID        int               `json:"rqid"`
	Slots       []SlotSummary     `json:"slots,omitempty"`
	Team        []SwitchCandidate `json:"team,omitempty"`
	MaxTeamSize int               `json:"max_team_size,omitempty"`
}

// SlotSummary describes one active position
type SlotSummary struct {
	Index      int               `json:"index"`
	Pokemon    string            `json:"pokemon"`
	Fainted    bool              `json:"fainted"`
	MustSwitch bool              `json:"must_switch"`
	Trapped    bool              `json:"trapped"`
	CanMegaEvo bool              `json:"can_mega_evo"`
	CanUltra   bool              `json:"can_ultra_burst"`
	CanDynamax bool              `json:"can_dynamax"`
	Moves      []MoveSummary     `json:"moves,omitempty"`
	ZMoves     []MoveSummary     `json:"zmoves,omitempty"`
	MaxMoves   []MoveSummary     `json:"max_moves,omitempty"`
	Switches   []SwitchCandidate `json:"switches,omitempty"`
}

// MoveSummary describes one move entry
type MoveSummary struct {
	Index       int                 `json:"index"`
	Name        string              `json:"name"`
	DisplayName string              `json:"display_name"`
	PP          int                 `json:"pp,omitempty"`
	MaxPP       int                 `json:"maxpp,omitempty"`
	Disabled    bool                `json:"disabled"`
	Target      showdown.MoveTarget `json:"target,omitempty"`
}

// SwitchCandidate describes one roster entry
type SwitchCandidate struct {
	Slot      int    `json:"slot"`
	ID        string `json:"id"`
	Name      string `json:"name"`
	Condition string `json:"condition"`
	Active    bool   `json:"active"`
	Fainted   bool   `json:"fainted"`
}

// Summarize lists the options of a request without choosing anything.
// Switch lists follow the same rules as resolution, without batch history.
func Summarize(req *showdown.Request) *Summary {
	summary := &Summary{
		Kind: Classify(req),
		RQID: req.RQID,
	}
	roster := req.Roster()

	switch summary.Kind {
	case KindForcedSwitch:
		switches := CandidatesFor(EnumerateForcedSwitches(roster, len(req.ForceSwitch), nil))
		for i, must := range req.ForceSwitch {
			slot := SlotSummary{
				Index:      i,
				MustSwitch: must,
			}
			if i < len(roster) {
				slot.Pokemon = roster[i].Name()
				slot.Fainted = roster[i].Fainted()
			}
			if must {
				slot.Switches = switches
			}
			summary.Slots = append(summary.Slots, slot)
		}
	case KindActiveChoice:
		for i, active := range req.Active {
			summary.Slots = append(summary.Slots, SummarizeSlot(i, active, roster))
		}
	case KindTeamPreview:
		summary.Team = CandidatesFor(allSlots(roster))
		summary.MaxTeamSize = req.MaxChosenTeamSize
	}

	return summary
}

// SummarizeSlot describes one active slot, ignoring choices made by other slots.
func SummarizeSlot(index int, active *showdown.ActivePokemon, roster []*showdown.Pokemon) SlotSummary {
	slot := SlotSummary{
		Index:      index,
		Trapped:    active.Trapped,
		CanMegaEvo: active.CanMegaEvo,
		CanUltra:   active.CanUltraBurst,
		CanDynamax: active.CanDynamax,
	}
	if index < len(roster) {
		slot.Pokemon = roster[index].Name()
		slot.Fainted = roster[index].Fainted()
	}

	for i, m := range active.Moves {
		slot.Moves = append(slot.Moves, MoveSummary{
			Index:       i + 1,
			Name:        m.Move,
			DisplayName: DisplayMoveName(m.Move),
			PP:          m.PP,
			MaxPP:       m.MaxPP,
			Disabled:    bool(m.Disabled),
			Target:      m.Target,
		})
	}
	for i, z := range active.CanZMove {
		if z == nil {
			continue
		}
		slot.ZMoves = append(slot.ZMoves, MoveSummary{
			Index:       i + 1,
			Name:        z.Move,
			DisplayName: DisplayMoveName(z.Move),
			Target:      z.Target,
		})
	}
	if active.MaxMoves != nil {
		for i, m := range active.MaxMoves.MaxMoves {
			slot.MaxMoves = append(slot.MaxMoves, MoveSummary{
				Index:       i + 1,
				Name:        m.Move,
				DisplayName: DisplayMoveName(m.Move),
				Disabled:    bool(m.Disabled),
				Target:      m.Target,
			})
		}
	}

	if !slot.Fainted {
		slot.Switches = CandidatesFor(EnumerateSwitches(roster, nil, active.Trapped))
	}
	return slot
}

// CandidatesFor converts switch options into summaries.
func CandidatesFor(switches []SwitchOption) []SwitchCandidate {
	candidates := make([]SwitchCandidate, 0, len(switches))
	for _, s := range switches {
		candidates = append(candidates, SwitchCandidate{
			Slot:      s.Slot,
			ID:        s.Pokemon.GetID(),
			Name:      s.Pokemon.Name(),
			Condition: s.Pokemon.Condition,
			Active:    s.Pokemon.Active,
			Fainted:   s.Pokemon.Fainted(),
		})
	}
	return candidates
}

func allSlots(roster []*showdown.Pokemon) []SwitchOption {
	options := make([]SwitchOption, len(roster))
	for i, p := range roster {
		options[i] = SwitchOption{Slot: i + 1, Pokemon: p}
	}
	return options
}

// Max-move id prefixes
const (
	gmaxPrefix = "gmax"
	maxPrefix  = "max"
)

// DisplayMoveName turns a lowercase move id such as "maxstrike" into "Max Strike".
// Names that already carry capitals or spaces are returned unchanged.
func DisplayMoveName(name string) string {
	if name == "" || name != strings.ToLower(name) || strings.ContainsAny(name, " -") {
		return name
	}

	title := cases.Title(language.English)
	switch {
	case strings.HasPrefix(name, gmaxPrefix) && len(name) > len(gmaxPrefix):
		return "G-Max " + title.String(name[len(gmaxPrefix):])
	case strings.HasPrefix(name, maxPrefix) && len(name) > len(maxPrefix):
		return "Max " + title.String(name[len(maxPrefix):])
	default:
		return title.String(name)
	}
}
