package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorBuilder(t *testing.T) {
	base := stderrors.New("database locked")

	ee := New(base).
		Component("datastore").
		Category(CategoryDatabase).
		Context("table", "observations").
		FileContext("/var/lib/trailcam.db").
		Build()

	assert.Equal(t, "database locked", ee.Error())
	assert.Equal(t, "datastore", ee.Component)
	assert.Equal(t, CategoryDatabase, ee.Category)
	assert.Equal(t, "observations", ee.Context["table"])
	assert.Equal(t, "/var/lib/trailcam.db", ee.Context["file_path"])
	assert.False(t, ee.Timestamp.IsZero())
}

func TestErrorUnwrap(t *testing.T) {
	base := stderrors.New("no such file")
	ee := New(base).Category(CategoryFileIO).Build()

	require.ErrorIs(t, ee, base)
	assert.Equal(t, base, stderrors.Unwrap(ee))
}

func TestNewfDefaults(t *testing.T) {
	ee := Newf("bad stamp text %q", "garbage").Build()

	assert.Equal(t, ComponentUnknown, ee.Component)
	assert.Equal(t, CategoryGeneric, ee.Category)
	assert.Contains(t, ee.Error(), "garbage")
}

func TestGetContextReturnsCopy(t *testing.T) {
	ee := New(stderrors.New("x")).Context("camera", "gate").Build()

	ctx := ee.GetContext()
	ctx["camera"] = "feeder"
	assert.Equal(t, "gate", ee.Context["camera"])
}
