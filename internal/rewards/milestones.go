package rewards

import model "refashion/internal/models"

// Milestones are the balances at which the rewards page unlocks a badge
var Milestones = []int{50, 100, 200, 350, 500}

// Progress locates points between the previous and the next milestone
func Progress(points int) model.MilestoneProgress {
	next := 0
	for _, m := range Milestones {
		if m > points {
			next = m
			break
		}
	}
	if next == 0 {
		if points > 0 {
			next = points + 100
		} else {
			next = Milestones[0]
		}
	}

	previous := 0
	for i := len(Milestones) - 1; i >= 0; i-- {
		if Milestones[i] <= points {
			previous = Milestones[i]
			break
		}
	}

	progress := 0.0
	if span := next - previous; span > 0 {
		progress = float64(points-previous) / float64(span) * 100
	}
	if progress < 0 {
		progress = 0
	}
	if progress > 100 {
		progress = 100
	}

	return model.MilestoneProgress{
		Points:   points,
		Previous: previous,
		Next:     next,
		Progress: progress,
	}
}
