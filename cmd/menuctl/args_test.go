package main

import (
	"reflect"
	"testing"
)

func TestParseIDs(t *testing.T) {
	tests := []struct {
		in      string
		want    []uint
		wantErr bool
	}{
		{"1,2,3", []uint{1, 2, 3}, false},
		{" 4 , ,5,", []uint{4, 5}, false},
		{"", nil, true},
		{"1,x", nil, true},
		{"0", nil, true},
		{"-3", nil, true},
	}
	for _, tt := range tests {
		got, err := parseIDs(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseIDs(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("parseIDs(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseAssignments(t *testing.T) {
	got, err := parseAssignments("active=false, price=12.5,name=Soup du jour,featured=true,image=,seasonal=1")
	if err != nil {
		t.Fatalf("parseAssignments: %v", err)
	}
	want := map[string]any{
		"active":   false,
		"price":    12.5,
		"name":     "Soup du jour",
		"featured": true,
		"image":    "",
		"seasonal": 1.0,
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("parseAssignments = %v, want %v", got, want)
	}

	for _, bad := range []string{"", "active", "=true", " , "} {
		if _, err := parseAssignments(bad); err == nil {
			t.Errorf("parseAssignments(%q) should fail", bad)
		}
	}
}
