package messages

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/tripdata/internal/core/ports/driving"
)

func TestSheetsLoaded(t *testing.T) {
	msg := SheetsLoaded{Previews: []driving.SheetPreview{{Name: "Foods"}}}

	assert.Len(t, msg.Previews, 1)
	assert.NoError(t, msg.Err)

	msg = SheetsLoaded{Err: errors.New("boom")}
	assert.Empty(t, msg.Previews)
	assert.EqualError(t, msg.Err, "boom")
}
