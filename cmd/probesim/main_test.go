package main

import "testing"

func TestParseSets(t *testing.T) {
	got, err := parseSets([]string{"setpoint=0.7", " cap =12"})
	if err != nil {
		t.Fatal(err)
	}
	if got["setpoint"] != 0.7 || got["cap"] != 12 {
		t.Errorf("parseSets() = %v", got)
	}

	for _, bad := range []string{"setpoint", "=1", "cap=x"} {
		if _, err := parseSets([]string{bad}); err == nil {
			t.Errorf("parseSets(%q) should fail", bad)
		}
	}
}
