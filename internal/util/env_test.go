package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEnvOrDefault(t *testing.T) {
	t.Setenv("TASKBOARD_TEST_VALUE", "")
	assert.Equal(t, "fallback", EnvOrDefault("TASKBOARD_TEST_VALUE", "fallback"))

	t.Setenv("TASKBOARD_TEST_VALUE", "set")
	assert.Equal(t, "set", EnvOrDefault("TASKBOARD_TEST_VALUE", "fallback"))
}

func TestEnvDuration(t *testing.T) {
	t.Setenv("TASKBOARD_TEST_TTL", "90m")
	d, ok := EnvDuration("TASKBOARD_TEST_TTL", time.Hour)
	assert.True(t, ok)
	assert.Equal(t, 90*time.Minute, d)

	t.Setenv("TASKBOARD_TEST_TTL", "soon")
	d, ok = EnvDuration("TASKBOARD_TEST_TTL", time.Hour)
	assert.False(t, ok)
	assert.Equal(t, time.Hour, d)
}

func TestEnvList(t *testing.T) {
	assert.Equal(t, []string{"a"}, EnvList("TASKBOARD_TEST_UNSET_LIST", []string{"a"}))

	t.Setenv("TASKBOARD_TEST_LIST", " http://a.test, ,http://b.test ")
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, EnvList("TASKBOARD_TEST_LIST", nil))

	t.Setenv("TASKBOARD_TEST_LIST", "")
	assert.Empty(t, EnvList("TASKBOARD_TEST_LIST", []string{"a"}))
}
