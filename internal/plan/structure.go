// internal/plan/structure.go
package plan

import (
	"fmt"

	"rcollier/ultra-tracker/internal/domain"
)

// WeekDescriptor is one row of the compressed plan structure: where the week
// sits in the new 32-week calendar, which week of the authored 36-week plan
// it carries content from, and its weekly targets.
type WeekDescriptor struct {
	WeekNumber         int
	OriginalWeekNumber int
	Phase              domain.Phase
	Theme              string
	BlockType          string // sub-phase label, only set within Durability
	TargetMiles        float64
	TargetVert         float64
}

// Phase week counts for the compressed calendar.
const (
	FoundationWeeks  = 10
	DurabilityWeeks  = 14
	SpecificityWeeks = 8
	TotalWeeks       = FoundationWeeks + DurabilityWeeks + SpecificityWeeks
)

// compressedStructure is the hand-curated remapping of the authored 36-week
// plan onto 32 weeks. Compression is a scheduling policy, not a formula: per
// phase it decides which original weeks to keep or drop so that progressive
// overload and the deload cadence survive the shortening. Foundation drops
// originals 7 and 11, Durability is kept whole, Specificity drops 32 and 35.
var compressedStructure = []WeekDescriptor{
	// Foundation: weeks 1-10 (originals 1-12)
	{WeekNumber: 1, OriginalWeekNumber: 1, Phase: domain.PhaseFoundation, Theme: "Base building", TargetMiles: 20, TargetVert: 2000},
	{WeekNumber: 2, OriginalWeekNumber: 2, Phase: domain.PhaseFoundation, Theme: "Base building", TargetMiles: 22, TargetVert: 2500},
	{WeekNumber: 3, OriginalWeekNumber: 3, Phase: domain.PhaseFoundation, Theme: "Aerobic development", TargetMiles: 25, TargetVert: 3000},
	{WeekNumber: 4, OriginalWeekNumber: 4, Phase: domain.PhaseFoundation, Theme: "DELOAD", TargetMiles: 18, TargetVert: 1500},
	{WeekNumber: 5, OriginalWeekNumber: 5, Phase: domain.PhaseFoundation, Theme: "Aerobic development", TargetMiles: 28, TargetVert: 3500},
	{WeekNumber: 6, OriginalWeekNumber: 6, Phase: domain.PhaseFoundation, Theme: "Strength emphasis", TargetMiles: 30, TargetVert: 4000},
	{WeekNumber: 7, OriginalWeekNumber: 8, Phase: domain.PhaseFoundation, Theme: "DELOAD", TargetMiles: 20, TargetVert: 2000},
	{WeekNumber: 8, OriginalWeekNumber: 9, Phase: domain.PhaseFoundation, Theme: "Aerobic development", TargetMiles: 32, TargetVert: 4500},
	{WeekNumber: 9, OriginalWeekNumber: 10, Phase: domain.PhaseFoundation, Theme: "Strength emphasis", TargetMiles: 35, TargetVert: 5000},
	{WeekNumber: 10, OriginalWeekNumber: 12, Phase: domain.PhaseFoundation, Theme: "DELOAD", TargetMiles: 24, TargetVert: 2500},

	// Durability: weeks 11-24 (originals 13-26, kept whole)
	{WeekNumber: 11, OriginalWeekNumber: 13, Phase: domain.PhaseDurability, Theme: "Volume build", BlockType: "Steady State", TargetMiles: 38, TargetVert: 5500},
	{WeekNumber: 12, OriginalWeekNumber: 14, Phase: domain.PhaseDurability, Theme: "Volume build", BlockType: "Steady State", TargetMiles: 40, TargetVert: 6000},
	{WeekNumber: 13, OriginalWeekNumber: 15, Phase: domain.PhaseDurability, Theme: "Volume build", BlockType: "Steady State", TargetMiles: 42, TargetVert: 6500},
	{WeekNumber: 14, OriginalWeekNumber: 16, Phase: domain.PhaseDurability, Theme: "DELOAD", BlockType: "Steady State", TargetMiles: 28, TargetVert: 3000},
	{WeekNumber: 15, OriginalWeekNumber: 17, Phase: domain.PhaseDurability, Theme: "Intensity intro", BlockType: "Tempo", TargetMiles: 44, TargetVert: 7000},
	{WeekNumber: 16, OriginalWeekNumber: 18, Phase: domain.PhaseDurability, Theme: "Intensity build", BlockType: "Tempo", TargetMiles: 46, TargetVert: 7500},
	{WeekNumber: 17, OriginalWeekNumber: 19, Phase: domain.PhaseDurability, Theme: "Intensity build", BlockType: "Tempo", TargetMiles: 46, TargetVert: 7500},
	{WeekNumber: 18, OriginalWeekNumber: 20, Phase: domain.PhaseDurability, Theme: "DELOAD", BlockType: "Tempo", TargetMiles: 30, TargetVert: 3500},
	{WeekNumber: 19, OriginalWeekNumber: 21, Phase: domain.PhaseDurability, Theme: "Climbing focus", BlockType: "Hill Repeats", TargetMiles: 48, TargetVert: 8500},
	{WeekNumber: 20, OriginalWeekNumber: 22, Phase: domain.PhaseDurability, Theme: "Climbing focus", BlockType: "Hill Repeats", TargetMiles: 50, TargetVert: 9000},
	{WeekNumber: 21, OriginalWeekNumber: 23, Phase: domain.PhaseDurability, Theme: "Climbing focus", BlockType: "Hill Repeats", TargetMiles: 50, TargetVert: 9500},
	{WeekNumber: 22, OriginalWeekNumber: 24, Phase: domain.PhaseDurability, Theme: "DELOAD", BlockType: "Hill Repeats", TargetMiles: 32, TargetVert: 4000},
	{WeekNumber: 23, OriginalWeekNumber: 25, Phase: domain.PhaseDurability, Theme: "Top-end sharpening", BlockType: "VO2 Max", TargetMiles: 45, TargetVert: 8000},
	{WeekNumber: 24, OriginalWeekNumber: 26, Phase: domain.PhaseDurability, Theme: "Top-end sharpening", BlockType: "VO2 Max", TargetMiles: 45, TargetVert: 8500},

	// Specificity: weeks 25-32 (originals 27-36, drops 32 and 35)
	{WeekNumber: 25, OriginalWeekNumber: 27, Phase: domain.PhaseSpecificity, Theme: "Race simulation", TargetMiles: 52, TargetVert: 10000},
	{WeekNumber: 26, OriginalWeekNumber: 28, Phase: domain.PhaseSpecificity, Theme: "Peak volume", TargetMiles: 55, TargetVert: 11000},
	{WeekNumber: 27, OriginalWeekNumber: 29, Phase: domain.PhaseSpecificity, Theme: "Peak volume", TargetMiles: 55, TargetVert: 11500},
	{WeekNumber: 28, OriginalWeekNumber: 30, Phase: domain.PhaseSpecificity, Theme: "DELOAD", TargetMiles: 35, TargetVert: 4500},
	{WeekNumber: 29, OriginalWeekNumber: 31, Phase: domain.PhaseSpecificity, Theme: "Race simulation", TargetMiles: 50, TargetVert: 10000},
	{WeekNumber: 30, OriginalWeekNumber: 33, Phase: domain.PhaseSpecificity, Theme: "Taper begins", TargetMiles: 40, TargetVert: 7000},
	{WeekNumber: 31, OriginalWeekNumber: 34, Phase: domain.PhaseSpecificity, Theme: "Taper", TargetMiles: 28, TargetVert: 4000},
	{WeekNumber: 32, OriginalWeekNumber: 36, Phase: domain.PhaseSpecificity, Theme: "RACE WEEK", TargetMiles: 15, TargetVert: 2000},
}

// CompressedPlanStructure returns the 32 week descriptors of the compressed
// calendar in ascending week order. The returned slice is a copy; callers
// may not mutate the table.
func CompressedPlanStructure() []WeekDescriptor {
	out := make([]WeekDescriptor, len(compressedStructure))
	copy(out, compressedStructure)
	return out
}

// DescriptorForWeek looks up the descriptor for a compressed week number.
// The second return is false when the week is outside 1..32.
func DescriptorForWeek(weekNumber int) (WeekDescriptor, bool) {
	for _, d := range compressedStructure {
		if d.WeekNumber == weekNumber {
			return d, true
		}
	}
	return WeekDescriptor{}, false
}

// OriginalWeek maps a compressed week number to its original week number,
// returning the input unchanged when the week is not in the table. Callers
// that need to distinguish a miss should use DescriptorForWeek instead.
func OriginalWeek(weekNumber int) int {
	if d, ok := DescriptorForWeek(weekNumber); ok {
		return d.OriginalWeekNumber
	}
	return weekNumber
}

// ValidateStructure checks the partition invariant of the compressed table:
// exactly 32 rows numbered 1..32 in ascending order, splitting into 10
// Foundation, 14 Durability and 8 Specificity weeks, contiguous per phase.
// The table is hand-authored, so a violation is a programming error; call
// this at startup rather than trusting the author.
func ValidateStructure() error {
	if len(compressedStructure) != TotalWeeks {
		return fmt.Errorf("plan structure has %d weeks, want %d", len(compressedStructure), TotalWeeks)
	}
	phaseCounts := map[domain.Phase]int{}
	var prevPhase domain.Phase
	for i, d := range compressedStructure {
		if d.WeekNumber != i+1 {
			return fmt.Errorf("week at index %d numbered %d, want %d", i, d.WeekNumber, i+1)
		}
		if d.OriginalWeekNumber < 1 || d.OriginalWeekNumber > 36 {
			return fmt.Errorf("week %d maps to original week %d, outside 1..36", d.WeekNumber, d.OriginalWeekNumber)
		}
		switch d.Phase {
		case domain.PhaseFoundation, domain.PhaseDurability, domain.PhaseSpecificity:
		default:
			return fmt.Errorf("week %d has unknown phase %q", d.WeekNumber, d.Phase)
		}
		if d.Phase != prevPhase && phaseCounts[d.Phase] > 0 {
			return fmt.Errorf("phase %q is not contiguous at week %d", d.Phase, d.WeekNumber)
		}
		phaseCounts[d.Phase]++
		prevPhase = d.Phase
	}
	if phaseCounts[domain.PhaseFoundation] != FoundationWeeks {
		return fmt.Errorf("foundation has %d weeks, want %d", phaseCounts[domain.PhaseFoundation], FoundationWeeks)
	}
	if phaseCounts[domain.PhaseDurability] != DurabilityWeeks {
		return fmt.Errorf("durability has %d weeks, want %d", phaseCounts[domain.PhaseDurability], DurabilityWeeks)
	}
	if phaseCounts[domain.PhaseSpecificity] != SpecificityWeeks {
		return fmt.Errorf("specificity has %d weeks, want %d", phaseCounts[domain.PhaseSpecificity], SpecificityWeeks)
	}
	return nil
}
