package logging

import (
	"bytes"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
	"go.viam.com/test"
)

func TestLevelGating(t *testing.T) {
	logger, observed := NewObservedTestLogger(t)
	logger.SetLevel(WARN)

	logger.Debug("hidden")
	logger.Infof("hidden %d", 1)
	logger.Warnw("shown", "joint", "j1")
	logger.Error("shown too")

	test.That(t, observed.Len(), test.ShouldEqual, 2)
	entries := observed.All()
	test.That(t, entries[0].Level, test.ShouldEqual, zapcore.WarnLevel)
	test.That(t, entries[0].ContextMap()["joint"], test.ShouldEqual, "j1")
	test.That(t, entries[1].Message, test.ShouldEqual, "shown too")
}

func TestSubloggerNaming(t *testing.T) {
	var buf bytes.Buffer
	logger := NewBlankLogger("chomp")
	logger.AddAppender(NewWriterAppender(&buf))

	sub := logger.Sublogger("planner")
	sub.Info("hello")

	line := buf.String()
	test.That(t, line, test.ShouldContainSubstring, "chomp.planner")
	test.That(t, line, test.ShouldContainSubstring, "hello")
	// The caller is this test file, not the logging implementation.
	test.That(t, line, test.ShouldContainSubstring, "impl_test.go")
	test.That(t, strings.Count(line, "\n"), test.ShouldEqual, 1)
}

func TestUnpairedKey(t *testing.T) {
	logger, observed := NewObservedTestLogger(t)
	logger.Infow("msg", "lonely")

	test.That(t, observed.Len(), test.ShouldEqual, 1)
	_, exists := observed.All()[0].ContextMap()["lonely"]
	test.That(t, exists, test.ShouldBeTrue)
}

func TestLevelFromString(t *testing.T) {
	level, err := LevelFromString("WARN")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, level, test.ShouldEqual, WARN)

	_, err = LevelFromString("loud")
	test.That(t, err, test.ShouldNotBeNil)

	var parsed Level
	test.That(t, parsed.UnmarshalJSON([]byte(`"debug"`)), test.ShouldBeNil)
	test.That(t, parsed, test.ShouldEqual, DEBUG)
}
