package utils

import (
	"math"
	"testing"

	"go.viam.com/test"
)

func TestNormalizeAngle(t *testing.T) {
	test.That(t, NormalizeAngle(0), test.ShouldEqual, 0)
	test.That(t, NormalizeAngle(math.Pi), test.ShouldAlmostEqual, math.Pi)
	test.That(t, NormalizeAngle(-math.Pi), test.ShouldAlmostEqual, math.Pi)
	test.That(t, NormalizeAngle(3*math.Pi/2), test.ShouldAlmostEqual, -math.Pi/2)
	test.That(t, NormalizeAngle(-5*math.Pi/2), test.ShouldAlmostEqual, -math.Pi/2)
	test.That(t, NormalizeAnglePositive(-math.Pi/2), test.ShouldAlmostEqual, 3*math.Pi/2)
}

func TestShortestAngularDistance(t *testing.T) {
	d := ShortestAngularDistance(0.1, 6.0)
	test.That(t, d, test.ShouldAlmostEqual, 6.0-0.1-2*math.Pi)
	test.That(t, math.Abs(d), test.ShouldBeLessThanOrEqualTo, math.Pi)

	test.That(t, ShortestAngularDistance(1, 2), test.ShouldAlmostEqual, 1)
	test.That(t, ShortestAngularDistance(2, 1), test.ShouldAlmostEqual, -1)
	test.That(t, ShortestAngularDistance(-3, 3), test.ShouldAlmostEqual, 6-2*math.Pi)

	// Opposite angles resolve to +π.
	test.That(t, ShortestAngularDistance(0, math.Pi), test.ShouldAlmostEqual, math.Pi)
}

func TestGetenvInt(t *testing.T) {
	t.Setenv("CHOMP_TEST_INT", "7")
	test.That(t, GetenvInt("CHOMP_TEST_INT", 3), test.ShouldEqual, 7)

	t.Setenv("CHOMP_TEST_INT", "seven")
	test.That(t, GetenvInt("CHOMP_TEST_INT", 3), test.ShouldEqual, 3)
	test.That(t, GetenvInt("CHOMP_TEST_UNSET_INT", 3), test.ShouldEqual, 3)
}
