// Package vlntest provides a test harness for sensors and tasks.
package vlntest

import (
	"reflect"
	"testing"

	"github.com/embodied-nav/vln-sdk/domain/entities"
	"github.com/embodied-nav/vln-sdk/domain/ports"
)

// TestCase defines a test case for a sensor.
type TestCase struct {
	Name         string
	Episode      ports.Episode
	Observations entities.Observations
	Validate     func(t *testing.T, value any, err error)
}

// RunSensorTests runs a suite of tests against a sensor. Every case also checks
// that the sensor's uuid and space do not change across calls.
func RunSensorTests(t *testing.T, s ports.Sensor, tests []TestCase) {
	t.Helper()

	uuid := s.UUID()
	space := s.ObservationSpace()

	for _, tc := range tests {
		t.Run(tc.Name, func(t *testing.T) {
			value, err := s.Observation(tc.Observations, tc.Episode)

			if tc.Validate != nil {
				tc.Validate(t, value, err)
			}

			if got := s.UUID(); got != uuid {
				t.Errorf("uuid changed: %q -> %q", uuid, got)
			}
			if got := s.ObservationSpace(); !got.Equal(space) {
				t.Errorf("observation space changed: %v -> %v", space, got)
			}
		})
	}
}

// AssertNoError fails the test if err is non-nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertSpace asserts a sensor declares the expected space.
func AssertSpace(t *testing.T, s ports.Sensor, expected entities.BoxSpace) {
	t.Helper()
	if got := s.ObservationSpace(); !got.Equal(expected) {
		t.Errorf("expected space %v, got %v", expected, got)
	}
}

// AssertObservationField asserts a field of an observation's map form matches.
// value must be a map[string]any or expose AsMap() map[string]any.
func AssertObservationField(t *testing.T, value any, key string, expected any) {
	t.Helper()

	m, ok := asMap(value)
	if !ok {
		t.Errorf("observation %T has no map form", value)
		return
	}

	val, ok := m[key]
	if !ok {
		t.Errorf("missing observation field %q", key)
		return
	}

	if expectedNum, ok := toFloat64(expected); ok {
		if actualNum, ok := toFloat64(val); ok {
			if expectedNum != actualNum {
				t.Errorf("field %q: expected %v, got %v", key, expected, val)
			}
			return
		}
	}

	if !reflect.DeepEqual(val, expected) {
		t.Errorf("field %q: expected %v, got %v", key, expected, val)
	}
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case interface{ AsMap() map[string]any }:
		return m.AsMap(), true
	default:
		return nil, false
	}
}

func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case float32:
		return float64(n), true
	default:
		return 0, false
	}
}
