package block

import "testing"

func TestAirIsZeroValue(t *testing.T) {
	var t0 Type
	if t0 != Air {
		t.Fatal("zero value of Type must be Air")
	}
	if !t0.IsAir() {
		t.Fatal("Air.IsAir() must be true")
	}
	if t0.IsSolid() {
		t.Fatal("Air must not be solid")
	}
}

func TestMeshVisibilityClasses(t *testing.T) {
	if !Stone.IsSolid() || Stone.IsTransparent() {
		t.Fatal("Stone should be solid and opaque")
	}
	if !LeavesOak.IsSolid() || !LeavesOak.IsTransparent() {
		t.Fatal("LeavesOak should be solid and transparent")
	}
	if Water.IsSolid() || !Water.IsTransparent() {
		t.Fatal("Water should be non-solid and transparent")
	}
}

func TestWoodAndLeavesClassification(t *testing.T) {
	if !WoodOak.IsWood() || WoodOak.IsLeaves() {
		t.Fatal("WoodOak classification wrong")
	}
	if LeavesSpruce.IsLeaves() == false {
		t.Fatal("LeavesSpruce should classify as leaves")
	}
}

func TestWaterMetadataRoundTrip(t *testing.T) {
	for level := 0; level <= 7; level++ {
		for _, falling := range []bool{true, false} {
			m := NewWaterMetadata(level, falling)
			if m.WaterLevel() != level {
				t.Fatalf("level round-trip failed: got %d want %d", m.WaterLevel(), level)
			}
			if m.WaterFalling() != falling {
				t.Fatalf("falling round-trip failed for level %d", level)
			}
		}
	}
}

func TestDropFor(t *testing.T) {
	if DropFor(Bedrock) != Air {
		t.Fatal("bedrock should not drop anything")
	}
	if DropFor(Stone) != Stone {
		t.Fatal("stone should drop itself")
	}
}
