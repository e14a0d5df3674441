package executors_test

import "testing"

func mustEqual(t *testing.T, actual, expect interface{}) {
	t.Helper()
	if actual != expect {
		t.Fatalf("%+v != %+v", actual, expect)
	}
}

func shouldEqual(t *testing.T, actual, expect interface{}) {
	t.Helper()
	if actual != expect {
		t.Errorf("%+v != %+v", actual, expect)
	}
}
