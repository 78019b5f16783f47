package domain

import (
	"math"
	"testing"
)

func TestParseNutrient(t *testing.T) {
	tests := []struct {
		in   string
		want Nutrient
		ok   bool
	}{
		{"calories", NutrientCalories, true},
		{" KCAL ", NutrientCalories, true},
		{"Carbohydrates", NutrientCarbs, true},
		{"fibre", NutrientFiber, true},
		{"sugars", NutrientSugar, true},
		{"sodium", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseNutrient(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseNutrient(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestNutrientProfile_Arithmetic(t *testing.T) {
	beef := NutrientProfile{Calories: 250, Protein: 26, Fat: 15}
	rice := NutrientProfile{Calories: 130, Protein: 2.7, Carbohydrates: 28, Fat: 0.3, Fiber: 0.4, Sugar: 0.1}

	sum := beef.Add(rice)
	if sum.Calories != 380 || sum.Carbohydrates != 28 || sum.Fiber != 0.4 {
		t.Errorf("Add = %+v", sum)
	}

	diff := rice.Sub(beef)
	if diff.Calories != -120 || math.Abs(diff.Fat+14.7) > 1e-9 {
		t.Errorf("Sub = %+v", diff)
	}

	half := beef.Scale(0.5)
	if half.Calories != 125 || half.Protein != 13 || half.Fat != 7.5 {
		t.Errorf("Scale = %+v", half)
	}

	if beef.Calories != 250 {
		t.Error("operations must not modify the receiver")
	}
}

func TestNutrientProfile_Get(t *testing.T) {
	p := NutrientProfile{Calories: 1, Protein: 2, Carbohydrates: 3, Fat: 4, Fiber: 5, Sugar: 6}
	for i, n := range AllNutrients {
		if got := p.Get(n); got != float64(i+1) {
			t.Errorf("Get(%s) = %v, want %v", n, got, i+1)
		}
	}
	if p.Get("sodium") != 0 {
		t.Error("unknown nutrient should read as zero")
	}
}

func TestDerivedCalories(t *testing.T) {
	if got := DerivedCalories(10, 20, 5); got != 165 {
		t.Errorf("DerivedCalories = %v, want 165", got)
	}
}

func TestNutrient_Unit(t *testing.T) {
	if NutrientCalories.Unit() != "kcal" || NutrientFat.Unit() != "g" {
		t.Error("unexpected units")
	}
}
