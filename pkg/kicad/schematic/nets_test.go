package schematic

import (
	"strings"
	"testing"
)

func TestRenameNet(t *testing.T) {
	for name, src := range fixtures {
		t.Run(name, func(t *testing.T) {
			s := mustLoad(t, src)
			count, err := s.RenameNet("SPI1_SCK", "SPI2_SCK")
			if err != nil {
				t.Fatalf("RenameNet failed: %v", err)
			}
			if count != 2 {
				t.Errorf("Renamed %d labels, want 2 (label + global_label)", count)
			}
			out := string(s.Doc().Bytes())
			if strings.Contains(out, `"SPI1_SCK"`) {
				t.Error("Old net name still present")
			}
			if got := strings.Count(out, `"SPI2_SCK"`); got != 2 {
				t.Errorf("New net name appears %d times, want 2", got)
			}
			// Only the two name tokens change.
			diff := changedLines(t, src, out)
			if len(diff) != 2 {
				t.Errorf("Expected exactly 2 changed lines, got %d", len(diff))
			}
		})
	}
}

func TestRenameNetNoMatches(t *testing.T) {
	s := mustLoad(t, fixtureV6)
	count, err := s.RenameNet("NONEXISTENT", "X")
	if err != nil {
		t.Fatalf("RenameNet failed: %v", err)
	}
	if count != 0 {
		t.Errorf("Renamed %d labels, want 0", count)
	}
	if out := string(s.Doc().Bytes()); out != fixtureV6 {
		t.Error("No-match rename changed bytes")
	}
}

func TestFindLabelsByKind(t *testing.T) {
	s := mustLoad(t, fixtureV9)
	if got := len(s.FindLabels([]string{"label"}, "")); got != 1 {
		t.Errorf("Found %d local labels, want 1", got)
	}
	if got := len(s.FindLabels([]string{"global_label"}, "")); got != 1 {
		t.Errorf("Found %d global labels, want 1", got)
	}
	if got := len(s.FindLabels(LabelKinds, "SPI1_SCK")); got != 2 {
		t.Errorf("Found %d labels named SPI1_SCK, want 2", got)
	}
	if got := len(s.FindLabels(LabelKinds, "NONE")); got != 0 {
		t.Errorf("Found %d labels for missing net, want 0", got)
	}
}

func TestNetNames(t *testing.T) {
	s := mustLoad(t, fixtureV6)
	names := s.NetNames()
	if len(names) != 1 || names[0] != "SPI1_SCK" {
		t.Errorf("NetNames = %v", names)
	}
}
