package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFragility_Ordinal(t *testing.T) {
	tests := []struct {
		fragility Fragility
		want      float64
	}{
		{FragilityLow, 0},
		{FragilityMedium, 1},
		{FragilityHigh, 2},
		{FragilityExtreme, 3},
		{Fragility("UNKNOWN"), 0},
		{Fragility(""), 0},
	}

	for _, tt := range tests {
		t.Run(string(tt.fragility), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.fragility.Ordinal())
		})
	}
}

func TestFragility_Normalize(t *testing.T) {
	assert.Equal(t, FragilityHigh, FragilityHigh.Normalize())
	assert.Equal(t, FragilityLow, Fragility("fragile").Normalize())
	assert.Equal(t, FragilityLow, Fragility("").Normalize())
}

func TestPackagingType_Target(t *testing.T) {
	tests := []struct {
		packagingType PackagingType
		want          PackagingTarget
		found         bool
	}{
		{PackagingBox, PackagingTarget{Utilization: 0.87, Clearance: 1.8}, true},
		{PackagingMailer, PackagingTarget{Utilization: 0.82, Clearance: 1.2}, true},
		{PackagingEnvelope, PackagingTarget{Utilization: 0.78, Clearance: 0.8}, true},
		{PackagingTube, PackagingTarget{Utilization: 0.8, Clearance: 1.5}, true},
		{PackagingType("Crate"), PackagingTarget{}, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.packagingType), func(t *testing.T) {
			got, ok := tt.packagingType.Target()
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPackagingType_IsDuplex(t *testing.T) {
	assert.True(t, PackagingMailer.IsDuplex())
	assert.True(t, PackagingEnvelope.IsDuplex())
	assert.False(t, PackagingBox.IsDuplex())
	assert.False(t, PackagingTube.IsDuplex())
	assert.False(t, PackagingType("Crate").IsDuplex())
}

func TestThicknessForLevel(t *testing.T) {
	tests := []struct {
		name  string
		level int
		want  ThicknessSpec
	}{
		{name: "lowest", level: 1, want: ThicknessSpec{Level: 1, Type: "Single Wall - E Flute"}},
		{name: "middle", level: 4, want: ThicknessSpec{Level: 4, Type: "Double Wall - BC Flute"}},
		{name: "highest", level: 7, want: ThicknessSpec{Level: 7, Type: "Heavy Duty Industrial"}},
		{name: "below range clamps up", level: 0, want: ThicknessSpec{Level: 1, Type: "Single Wall - E Flute"}},
		{name: "above range clamps down", level: 12, want: ThicknessSpec{Level: 7, Type: "Heavy Duty Industrial"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ThicknessForLevel(tt.level))
		})
	}
}

func TestThicknessCatalog_ReturnsCopy(t *testing.T) {
	catalog := ThicknessCatalog()
	assert.Len(t, catalog, 7)

	catalog[0].Type = "changed"
	assert.Equal(t, "Single Wall - E Flute", ThicknessCatalog()[0].Type)
}

func TestProduct_Sanitized(t *testing.T) {
	p := Product{Width: math.NaN(), Height: math.Inf(1), Depth: 3, Weight: math.Inf(-1)}.Sanitized()

	assert.Equal(t, Product{Depth: 3}, p)
	assert.Equal(t, float64(0), p.Volume())
}

func TestBoxDimensions_SurfaceArea(t *testing.T) {
	box := BoxDimensions{Width: 2, Height: 3, Depth: 4}

	assert.Equal(t, float64(52), box.SurfaceArea())
	assert.Equal(t, float64(24), box.Volume())
	assert.Equal(t, float64(0), BoxDimensions{Width: math.NaN()}.SurfaceArea())
}

func TestRound1(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{13.12, 13.1},
		{0.05, 0.1},
		{-0.05, -0.1},
		{76.84, 76.8},
		{math.NaN(), 0},
		{math.Inf(1), 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Round1(tt.in))
	}
}
