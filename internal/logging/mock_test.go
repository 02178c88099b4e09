package logging

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockLogger_RecordsEntries(t *testing.T) {
	mock := &MockLogger{}

	mock.Info("started", Field{Key: FieldStage, Value: "filter"})
	mock.Warn("dropped row")
	mock.Error("lookup failed")

	require.Len(t, mock.Entries, 3)
	assert.True(t, mock.HasEntry("INFO", "started"))
	assert.True(t, mock.HasEntry("WARN", "dropped row"))
	assert.False(t, mock.HasEntry("INFO", "dropped row"))

	assert.Len(t, mock.GetEntriesByLevel("ERROR"), 1)
	assert.Empty(t, mock.GetEntriesByLevel("FATAL"))
}

func TestMockLogger_WithFieldsAndError(t *testing.T) {
	mock := &MockLogger{}

	derived := mock.WithField(FieldCity, "Vienna").WithError(errors.New("boom"))
	derived.Error("lookup failed")

	// Derived loggers share the parent's entry slice semantics only through
	// their own recordings; assert on the derived logger itself.
	child, ok := derived.(*MockLogger)
	require.True(t, ok)
	require.Len(t, child.Entries, 1)

	entry := child.Entries[0]
	assert.Equal(t, "ERROR", entry.Level)
	assert.EqualError(t, entry.Error, "boom")
	require.Len(t, entry.Fields, 1)
	assert.Equal(t, FieldCity, entry.Fields[0].Key)
	assert.Equal(t, "Vienna", entry.Fields[0].Value)
}

func TestMockLogger_Clear(t *testing.T) {
	mock := &MockLogger{}
	mock.Info("one")
	mock.Clear()
	assert.Empty(t, mock.Entries)
}

func TestLogrusAdapter_Construction(t *testing.T) {
	assert.NotNil(t, NewLogrusAdapter("debug", "json"))
	assert.NotNil(t, NewLogrusAdapter("invalid-level", "text"))
	assert.NotNil(t, NewLogrusAdapterFromLogger(nil))
	assert.NotNil(t, GetLogger())
}
