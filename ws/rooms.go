package ws

import (
	"sort"
	"strings"
)

// ChatRoomID derives the room key for a job conversation between two users.
// Participant ids are sorted so both sides compute the same key.
func ChatRoomID(jobID string, participantA, participantB string) string {
	participants := []string{participantA, participantB}
	sort.Strings(participants)
	return jobID + "-" + strings.Join(participants, "-")
}
