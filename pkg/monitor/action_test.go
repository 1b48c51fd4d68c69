package monitor

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestActionStatePollBeforeResultIsNoop(t *testing.T) {
	var a actionState

	ch := a.start()
	assert.True(t, a.InProgress())

	a.poll()
	assert.True(t, a.InProgress())

	ch <- ActionResult{Message: "done"}
	a.poll()

	assert.False(t, a.InProgress())
	assert.Equal(t, "done", a.LastStatus())
}

func TestActionStateRecordsErrorMessage(t *testing.T) {
	var a actionState

	ch := a.start()
	ch <- ActionResult{Err: errors.New("boom")}
	a.poll()

	assert.False(t, a.InProgress())
	assert.Equal(t, "boom", a.LastStatus())
}
