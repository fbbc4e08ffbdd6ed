package showdown

import (
	"fmt"
	"strings"
)

// JoinRoom joins a battle or chat room
func JoinRoom(c Client, room string) error {
	return c.Send("", "/join "+room)
}

// LeaveRoom leaves a room
func LeaveRoom(c Client, room string) error {
	return c.Send("", "/leave "+room)
}

// Choose submits a choice for the request with the given rqid.
// An rqid of zero is left off.
func Choose(c Client, room, choice string, rqid int) error {
	command := "/choose " + choice
	if rqid > 0 {
		command = fmt.Sprintf("%s|%d", command, rqid)
	}
	return c.Send(room, command)
}

// Challenge challenges a user to a battle in the given format
func Challenge(c Client, user, format string) error {
	return c.Send("", fmt.Sprintf("/challenge %s, %s", user, format))
}

// Search looks for a ladder battle in the given format
func Search(c Client, format string) error {
	return c.Send("", "/search "+format)
}

// Rename logs in as name with an assertion from the login server
func Rename(c Client, name, assertion string) error {
	return c.Send("", fmt.Sprintf("/trn %s,0,%s", name, assertion))
}

// ToID normalises a user or format name the way the server does:
// lowercase letters and digits only
func ToID(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
