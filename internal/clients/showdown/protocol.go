package showdown

import (
	"strings"
)

// Message types the player reacts to
const (
	MessageRequest    = "request"
	MessageError      = "error"
	MessageWin        = "win"
	MessageTie        = "tie"
	MessageChallstr   = "challstr"
	MessageUpdateUser = "updateuser"
	MessageInit       = "init"
	MessageDeinit     = "deinit"
	MessagePopup      = "popup"
	MessageNoInit     = "noinit"
)

// Frame is one websocket message: an optional room header and its lines
type Frame struct {
	// Room is empty for the global room
	Room  string
	Lines []Line
}

// Line is one protocol line such as "|request|{...}"
type Line struct {
	Type string
	Args []string
	Raw  string
}

// Arg returns argument i or "" when absent
func (l Line) Arg(i int) string {
	if i < 0 || i >= len(l.Args) {
		return ""
	}
	return l.Args[i]
}

// ParseFrame splits a raw websocket message into its room and lines.
// Lines that are not protocol messages (chat log text) get an empty Type.
func ParseFrame(data string) *Frame {
	frame := &Frame{}
	lines := strings.Split(strings.TrimRight(data, "\n"), "\n")

	if len(lines) > 0 && strings.HasPrefix(lines[0], ">") {
		frame.Room = strings.TrimSpace(strings.TrimPrefix(lines[0], ">"))
		lines = lines[1:]
	}

	for _, raw := range lines {
		if raw == "" {
			continue
		}
		frame.Lines = append(frame.Lines, ParseLine(raw))
	}
	return frame
}

// ParseLine parses one protocol line. Request, error, popup and challstr
// payloads may contain "|" and are kept whole as a single argument.
func ParseLine(raw string) Line {
	line := Line{Raw: raw}
	if !strings.HasPrefix(raw, "|") {
		return line
	}

	rest := raw[1:]
	msgType, payload, hasPayload := strings.Cut(rest, "|")
	line.Type = msgType
	if !hasPayload {
		return line
	}

	switch msgType {
	case MessageRequest, MessageError, MessageChallstr, MessagePopup:
		line.Args = []string{payload}
	default:
		line.Args = strings.Split(payload, "|")
	}
	return line
}
