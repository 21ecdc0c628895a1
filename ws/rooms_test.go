package ws

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChatRoomIDIsOrderIndependent(t *testing.T) {
	a := ChatRoomID("job-1", "user-b", "user-a")
	b := ChatRoomID("job-1", "user-a", "user-b")
	assert.Equal(t, a, b)
	assert.Equal(t, "job-1-user-a-user-b", a)
}

func TestChatRoomIDSeparatesJobs(t *testing.T) {
	assert.NotEqual(t,
		ChatRoomID("job-1", "user-a", "user-b"),
		ChatRoomID("job-2", "user-a", "user-b"),
	)
}
